package upload

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
)

func TestTracker_Observe(t *testing.T) {
	tests := []struct {
		name     string
		sent     int64
		total    int64
		expected int
	}{
		{"zero of hundred", 0, 100, 0},
		{"half", 50, 100, 50},
		{"complete", 100, 100, 100},
		{"rounds up", 667, 1000, 67},
		{"rounds down", 664, 1000, 66},
		{"rounds half up", 5, 1000, 1}, // 0.5% rounds to 1
		{"overshoot clamps", 150, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			tr.Observe(tt.sent, tt.total)
			if got := tr.Percent(); got != tt.expected {
				t.Errorf("Percent() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestTracker_UnknownTotalRetainsLastValue(t *testing.T) {
	tr := NewTracker()
	tr.Observe(50, 100)

	tr.Observe(75, 0)
	if got := tr.Percent(); got != 50 {
		t.Errorf("Percent() after unknown total = %d, want 50", got)
	}

	tr.Observe(75, -1)
	if got := tr.Percent(); got != 50 {
		t.Errorf("Percent() after negative total = %d, want 50", got)
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.Observe(80, 100)
	tr.Reset()
	if got := tr.Percent(); got != 0 {
		t.Errorf("Percent() after Reset = %d, want 0", got)
	}
}

func TestTracker_ConcurrentObserve(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			tr.Observe(n, 100)
		}(int64(i))
	}
	wg.Wait()

	if got := tr.Percent(); got < 0 || got > 100 {
		t.Errorf("Percent() = %d, want value in [0,100]", got)
	}
}

func TestProgressReader_ReportsCumulativeBytes(t *testing.T) {
	payload := strings.Repeat("x", 1000)
	var samples [][2]int64
	pr := NewProgressReader(strings.NewReader(payload), int64(len(payload)), func(sent, total int64) {
		samples = append(samples, [2]int64{sent, total})
	})

	var out bytes.Buffer
	n, err := io.CopyBuffer(&out, pr, make([]byte, 256))
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if n != 1000 {
		t.Fatalf("copied %d bytes, want 1000", n)
	}

	if len(samples) == 0 {
		t.Fatal("no progress samples emitted")
	}
	last := samples[len(samples)-1]
	if last[0] != 1000 || last[1] != 1000 {
		t.Errorf("final sample = %v, want [1000 1000]", last)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i][0] < samples[i-1][0] {
			t.Errorf("samples not monotonic: %v", samples)
			break
		}
	}
}

func TestProgressReader_NilCallback(t *testing.T) {
	pr := NewProgressReader(strings.NewReader("data"), 4, nil)
	out, err := io.ReadAll(pr)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(out) != "data" {
		t.Errorf("read %q, want %q", out, "data")
	}
}

func TestTrackerWithProgressReader(t *testing.T) {
	tr := NewTracker()
	payload := strings.Repeat("y", 400)
	pr := NewProgressReader(strings.NewReader(payload), int64(len(payload)), tr.Observe)

	if _, err := io.ReadAll(pr); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got := tr.Percent(); got != 100 {
		t.Errorf("Percent() = %d, want 100", got)
	}
}
