// File: pkg/chunker/accumulator.go
package chunker

// EmitFunc receives each closed chunk in index order.
type EmitFunc func(Chunk) error

// Accumulator packs rendered entries greedily into chunks of at most
// capacity units. An entry is never split: one that is larger than the
// capacity on its own becomes a chunk by itself.
type Accumulator struct {
	capacity int
	measure  Metric
	emit     EmitFunc

	entries []string
	size    int
	next    int
	written int
}

// NewAccumulator creates an accumulator. capacity must be positive.
func NewAccumulator(capacity int, measure Metric, emit EmitFunc) *Accumulator {
	if measure == nil {
		measure = countBytes
	}
	return &Accumulator{
		capacity: capacity,
		measure:  measure,
		emit:     emit,
	}
}

// Add renders rec and places it. The only error is one returned by emit.
func (a *Accumulator) Add(rec TextRecord) error {
	entry := Render(rec)
	s := a.measure(entry)

	if len(a.entries) > 0 && a.size+s > a.capacity {
		if err := a.Flush(); err != nil {
			return err
		}
	}

	if len(a.entries) == 0 && s > a.capacity {
		return a.close([]string{entry}, s)
	}

	a.entries = append(a.entries, entry)
	a.size += s
	return nil
}

// Flush emits the pending buffer, if any.
func (a *Accumulator) Flush() error {
	if len(a.entries) == 0 {
		return nil
	}
	entries, size := a.entries, a.size
	a.entries, a.size = nil, 0
	return a.close(entries, size)
}

// Chunks returns how many chunks have been emitted successfully.
func (a *Accumulator) Chunks() int {
	return a.next
}

// Written returns how many entries belong to successfully emitted chunks.
func (a *Accumulator) Written() int {
	return a.written
}

func (a *Accumulator) close(entries []string, size int) error {
	c := Chunk{Index: a.next, Entries: entries, Size: size}
	if a.emit != nil {
		if err := a.emit(c); err != nil {
			return err
		}
	}
	a.next++
	a.written += len(entries)
	return nil
}
