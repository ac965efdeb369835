package sim

import (
	"log"

	"labyrinth-hunt/server/logging"
)

// Deps carries shared infrastructure dependencies required by the
// simulation engine. Zero values are safe: a nil logger or publisher
// silences output and a nil metrics store drops counters.
type Deps struct {
	Logger    *log.Logger
	Metrics   *logging.Metrics
	Clock     logging.Clock
	Publisher logging.Publisher
}

func (d Deps) logf(format string, args ...any) {
	if d.Logger == nil {
		return
	}
	d.Logger.Printf(format, args...)
}

func (d Deps) now() logging.Clock {
	if d.Clock == nil {
		return logging.SystemClock()
	}
	return d.Clock
}
