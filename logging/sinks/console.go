package sinks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"labyrinth-hunt/server/logging"
)

// Console writes one human-readable line per event. Intended for
// development runs where the JSON sink would be noise.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Write(_ context.Context, event logging.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.out == nil {
		return nil
	}
	_, err := fmt.Fprintf(c.out, "%s [%s] turn=%d %s actor=%s/%s\n",
		event.Time.Format("15:04:05.000"),
		severityLabel(event.Severity),
		event.Turn,
		event.Type,
		event.Actor.Kind,
		event.Actor.ID,
	)
	return err
}

func (c *Console) Close() error { return nil }

func severityLabel(s logging.Severity) string {
	switch s {
	case logging.SeverityDebug:
		return "DEBUG"
	case logging.SeverityInfo:
		return "INFO"
	case logging.SeverityWarn:
		return "WARN"
	case logging.SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
