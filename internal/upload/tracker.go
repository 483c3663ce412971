// Package upload converts byte-level transfer progress into a displayable
// percentage. The tracker is fed by the HTTP transport as it consumes the
// multipart body, so it must tolerate concurrent observation.
package upload

import (
	"math"
	"sync"
)

// Tracker accumulates (bytesSent, totalBytes) samples into a 0-100 percentage.
type Tracker struct {
	mu      sync.Mutex
	percent int
}

// NewTracker returns a tracker at 0 percent.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe records a progress sample. Samples with an unknown total
// (totalBytes <= 0) are ignored so the last known percentage is retained
// instead of emitting a misleading 0 or dividing by zero.
func (t *Tracker) Observe(bytesSent, totalBytes int64) {
	if totalBytes <= 0 {
		return
	}

	pct := int(math.Round(float64(bytesSent) / float64(totalBytes) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	t.mu.Lock()
	t.percent = pct
	t.mu.Unlock()
}

// Percent returns the last observed percentage.
func (t *Tracker) Percent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.percent
}

// Reset returns the tracker to 0. Called at the start of every upload
// attempt and at its conclusion, success or failure, so a stale percentage
// never leaks into unrelated state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.percent = 0
	t.mu.Unlock()
}
