// Package journal keeps the append-only turn log for one game
// instance: one record per completed turn, retained under count and
// age limits, plus the replay scripts derived from the log.
package journal

import (
	"sync"

	"labyrinth-hunt/server/internal/sim"
	"labyrinth-hunt/server/internal/simutil"
)

// Record pairs the command that drove a turn with the snapshot the
// turn produced. Together with the instance config the sequence of
// records is sufficient to replay the run.
type Record struct {
	Command  sim.Command      `json:"command"`
	Snapshot sim.TurnSnapshot `json:"snapshot"`
}

// Clone returns a deep copy with independent payload storage.
func (r Record) Clone() Record {
	return Record{
		Command:  simutil.CloneCommand(r.Command),
		Snapshot: r.Snapshot.Clone(),
	}
}

// Eviction describes a record dropped to satisfy a retention limit.
type Eviction struct {
	Sequence uint64
	Reason   string
}

// AppendResult reports the retention window after an append.
type AppendResult struct {
	Size           int
	OldestSequence uint64
	NewestSequence uint64
	Evicted        []Eviction
}

// Journal is the bounded turn log for a single instance. Appends come
// from the session goroutine; reads may come from any goroutine.
type Journal struct {
	mu        sync.RWMutex
	records   []Record
	retention Retention
}

// New constructs a journal with the given retention limits.
func New(retention Retention) *Journal {
	retention = retention.normalized()
	return &Journal{
		records:   make([]Record, 0, retention.MaxRecords),
		retention: retention,
	}
}

// Append stores one turn record and enforces the retention limits. Age
// eviction keys off each snapshot's RecordedAt stamp so replays under a
// fixed clock stay deterministic.
func (j *Journal) Append(cmd sim.Command, snapshot sim.TurnSnapshot) AppendResult {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.records = append(j.records, Record{
		Command:  simutil.CloneCommand(cmd),
		Snapshot: snapshot.Clone(),
	})

	var evicted []Eviction
	cutoff := snapshot.RecordedAt.Add(-j.retention.MaxAge)
	idx := 0
	for idx < len(j.records) {
		if !j.records[idx].Snapshot.RecordedAt.Before(cutoff) {
			break
		}
		evicted = append(evicted, Eviction{
			Sequence: j.records[idx].Snapshot.Sequence,
			Reason:   "expired",
		})
		idx++
	}
	if idx > 0 {
		copy(j.records, j.records[idx:])
		j.records = j.records[:len(j.records)-idx]
	}

	if len(j.records) > j.retention.MaxRecords {
		overflow := len(j.records) - j.retention.MaxRecords
		for i := 0; i < overflow; i++ {
			evicted = append(evicted, Eviction{
				Sequence: j.records[i].Snapshot.Sequence,
				Reason:   "count",
			})
		}
		copy(j.records, j.records[overflow:])
		j.records = j.records[:len(j.records)-overflow]
	}

	result := AppendResult{Size: len(j.records), Evicted: evicted}
	if len(j.records) > 0 {
		result.OldestSequence = j.records[0].Snapshot.Sequence
		result.NewestSequence = j.records[len(j.records)-1].Snapshot.Sequence
	}
	return result
}

// Records returns a deep copy of the retained log in turn order.
func (j *Journal) Records() []Record {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return cloneRecords(j.records)
}

// Window returns up to limit records with sequence numbers strictly
// greater than since, oldest first. A non-positive limit means no cap.
func (j *Journal) Window(since uint64, limit int) []Record {
	j.mu.RLock()
	defer j.mu.RUnlock()
	selected := make([]Record, 0, len(j.records))
	for _, record := range j.records {
		if record.Snapshot.Sequence <= since {
			continue
		}
		selected = append(selected, record.Clone())
		if limit > 0 && len(selected) >= limit {
			break
		}
	}
	if len(selected) == 0 {
		return nil
	}
	return selected
}

// BySequence returns the retained record for the given turn, if any.
func (j *Journal) BySequence(sequence uint64) (Record, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, record := range j.records {
		if record.Snapshot.Sequence == sequence {
			return record.Clone(), true
		}
	}
	return Record{}, false
}

// Drain returns every retained record and clears the journal. Used by
// callers that move the log into external storage.
func (j *Journal) Drain() []Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.records) == 0 {
		return nil
	}
	drained := cloneRecords(j.records)
	j.records = j.records[:0]
	return drained
}

// Bounds reports the retention window: record count plus the oldest
// and newest retained sequence numbers.
func (j *Journal) Bounds() (size int, oldest, newest uint64) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	size = len(j.records)
	if size == 0 {
		return size, 0, 0
	}
	return size, j.records[0].Snapshot.Sequence, j.records[size-1].Snapshot.Sequence
}

func cloneRecords(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}
	cloned := make([]Record, len(records))
	for i, record := range records {
		cloned[i] = record.Clone()
	}
	return cloned
}
