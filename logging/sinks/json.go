package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"labyrinth-hunt/server/logging"
)

// JSON appends newline-delimited JSON events to a writer, flushing on a
// timer so a crash loses at most one interval of events.
type JSON struct {
	mu     sync.Mutex
	writer *bufio.Writer
	closer io.Closer
	ticker *time.Ticker
	stop   chan struct{}
	done   chan struct{}
}

func NewJSON(out io.Writer, flushInterval time.Duration) *JSON {
	if flushInterval <= 0 {
		flushInterval = 2 * time.Second
	}
	sink := &JSON{
		writer: bufio.NewWriter(out),
		ticker: time.NewTicker(flushInterval),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if closer, ok := out.(io.Closer); ok {
		sink.closer = closer
	}
	go sink.flushLoop()
	return sink
}

func (j *JSON) flushLoop() {
	defer close(j.done)
	for {
		select {
		case <-j.ticker.C:
			j.mu.Lock()
			_ = j.writer.Flush()
			j.mu.Unlock()
		case <-j.stop:
			return
		}
	}
}

func (j *JSON) Write(_ context.Context, event logging.Event) error {
	encoded, err := json.Marshal(event)
	if err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.writer.Write(encoded); err != nil {
		return err
	}
	return j.writer.WriteByte('\n')
}

func (j *JSON) Close() error {
	close(j.stop)
	<-j.done
	j.ticker.Stop()
	j.mu.Lock()
	err := j.writer.Flush()
	j.mu.Unlock()
	if j.closer != nil {
		if closeErr := j.closer.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
