package logging

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Clock supplies timestamps for events that arrive without one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Sink receives events accepted by the router. Implementations must be
// safe for use from a single dedicated worker goroutine.
type Sink interface {
	Write(ctx context.Context, event Event) error
	Close() error
}

// NamedSink pairs a sink with the name used in Config.Sinks.
type NamedSink struct {
	Name string
	Sink Sink
}

// Router fans events out to sinks on dedicated worker goroutines. Each
// sink gets its own buffered queue so a slow sink cannot stall the
// simulation; when a queue is full the event is dropped and counted.
type Router struct {
	clock   Clock
	cfg     Config
	fields  map[string]any
	workers []*sinkWorker

	mu     sync.Mutex
	closed bool

	dropped uint64
}

type sinkWorker struct {
	name  string
	sink  Sink
	queue chan Event
	done  chan struct{}

	dropped uint64
}

// NewRouter wires the configured sinks into a running router. Sinks not
// named in cfg.Sinks are closed immediately and never receive events.
func NewRouter(clock Clock, cfg Config, namedSinks []NamedSink) *Router {
	if clock == nil {
		clock = SystemClock()
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	router := &Router{
		clock:  clock,
		cfg:    cfg,
		fields: cfg.CloneFields(),
	}
	for _, named := range namedSinks {
		if named.Sink == nil {
			continue
		}
		if !cfg.HasSink(named.Name) {
			_ = named.Sink.Close()
			continue
		}
		worker := &sinkWorker{
			name:  named.Name,
			sink:  named.Sink,
			queue: make(chan Event, cfg.BufferSize),
			done:  make(chan struct{}),
		}
		router.workers = append(router.workers, worker)
		go worker.run()
	}
	return router
}

func (w *sinkWorker) run() {
	defer close(w.done)
	for event := range w.queue {
		_ = w.sink.Write(context.Background(), event)
	}
	_ = w.sink.Close()
}

// Publish stamps the event and enqueues it on every worker. Events below
// the configured severity floor are discarded before queueing.
func (r *Router) Publish(ctx context.Context, event Event) {
	if r == nil {
		return
	}
	if event.Severity < r.cfg.MinSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	if len(r.fields) > 0 {
		if event.Extra == nil {
			event.Extra = make(map[string]any, len(r.fields))
		}
		for k, v := range r.fields {
			if _, exists := event.Extra[k]; !exists {
				event.Extra[k] = v
			}
		}
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	workers := r.workers
	r.mu.Unlock()

	for _, worker := range workers {
		select {
		case worker.queue <- event:
		default:
			atomic.AddUint64(&worker.dropped, 1)
			atomic.AddUint64(&r.dropped, 1)
		}
	}
}

// Dropped reports the number of events discarded because a sink queue
// was full.
func (r *Router) Dropped() uint64 {
	if r == nil {
		return 0
	}
	return atomic.LoadUint64(&r.dropped)
}

// DroppedBySink reports per-sink drop counts keyed by sink name.
func (r *Router) DroppedBySink() map[string]uint64 {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	workers := r.workers
	r.mu.Unlock()
	counts := make(map[string]uint64, len(workers))
	for _, worker := range workers {
		counts[worker.name] = atomic.LoadUint64(&worker.dropped)
	}
	return counts
}

// Close drains every sink queue and waits for the workers to exit.
// Publishing after Close is a no-op.
func (r *Router) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	workers := r.workers
	r.mu.Unlock()

	for _, worker := range workers {
		close(worker.queue)
	}
	for _, worker := range workers {
		<-worker.done
	}
	return nil
}
