package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DefaultHoldSize is the number of records a [Hold] keeps when given a
// non-positive size.
const DefaultHoldSize = 256

// Hold is an [io.Writer] that keeps the most recent writes in memory.
//
// Log output is routed to a Hold while a frame is on the terminal, since
// anything printed to stderr would shear the screen. The held records are
// written out with [Hold.WriteTo] once the terminal is released.
type Hold struct {
	recs    [][]byte
	next    int
	n       int
	dropped int
	mu      sync.Mutex
}

// NewHold creates a [Hold] for up to size records.
func NewHold(size int) *Hold {
	if size <= 0 {
		size = DefaultHoldSize
	}

	return &Hold{recs: make([][]byte, size)}
}

// Write stores a copy of p as one record, replacing the oldest record when
// the hold is full.
func (h *Hold) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.recs[h.next] = bytes.Clone(p)
	h.next = (h.next + 1) % len(h.recs)

	if h.n < len(h.recs) {
		h.n++
	} else {
		h.dropped++
	}

	return len(p), nil
}

// Records returns copies of the held records, oldest first.
func (h *Hold) Records() [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([][]byte, 0, h.n)

	start := (h.next - h.n + len(h.recs)) % len(h.recs)
	for i := range h.n {
		out = append(out, bytes.Clone(h.recs[(start+i)%len(h.recs)]))
	}

	return out
}

// Len returns the number of held records.
func (h *Hold) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.n
}

// Dropped returns how many records were overwritten since the last reset.
func (h *Hold) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.dropped
}

// Cap returns the maximum number of held records.
func (h *Hold) Cap() int {
	return len(h.recs)
}

// Reset discards every record.
func (h *Hold) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.recs)
	h.next, h.n, h.dropped = 0, 0, 0
}

// WriteTo writes the held records to w, oldest first, and resets the hold.
func (h *Hold) WriteTo(w io.Writer) (int64, error) {
	recs := h.Records()
	dropped := h.Dropped()
	h.Reset()

	var total int64

	if dropped > 0 {
		n, err := fmt.Fprintf(w, "... %d earlier log records dropped\n", dropped)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write held logs: %w", err)
		}
	}

	for _, r := range recs {
		n, err := w.Write(r)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write held logs: %w", err)
		}
	}

	return total, nil
}
