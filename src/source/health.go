package source

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/lost-woods/rngaudit/src/samples"
)

// ErrStuck wraps every health failure caused by the source output itself.
var ErrStuck = errors.New("sample source appears stuck")

const (
	probeBytes       = 256
	minDistinctBytes = 8
	maxRepeatedWords = 20
)

// HealthStatus is a point-in-time view of a Health.
type HealthStatus struct {
	OK        bool      `json:"ok"`
	Reason    string    `json:"reason,omitempty"`
	CheckedAt time.Time `json:"last_checked"`
	Checks    int       `json:"checks"`
}

// Health tracks whether the attached device still looks alive. It starts
// unhealthy until the first successful check.
type Health struct {
	mu       sync.RWMutex
	status   HealthStatus
	lastWord uint32
	repeats  int
}

func NewHealth() *Health { return &Health{} }

func (h *Health) Set(ok bool, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(ok, reason)
}

func (h *Health) record(ok bool, reason string) {
	h.status.OK = ok
	h.status.Reason = reason
	h.status.CheckedAt = time.Now()
	h.status.Checks++
}

func (h *Health) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// CheckSource reads a probe from r and rejects output that is obviously
// broken: a single repeated byte, mostly repeating 32-bit words, or fewer
// than minDistinctBytes values. Passing says nothing about quality; that is
// what the battery is for.
func CheckSource(r io.Reader, h *Health) error {
	buf := make([]byte, probeBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("sample source read failed: %w", err)
	}
	last, err := checkProbe(buf)
	if h != nil && err == nil {
		h.mu.Lock()
		h.lastWord, h.repeats = last, 0
		h.mu.Unlock()
	}
	return err
}

func checkProbe(buf []byte) (uint32, error) {
	hist := samples.New(buf, samples.Options{}).Histogram()
	distinct := 0
	for _, n := range hist {
		if n > 0 {
			distinct++
		}
	}
	if distinct == 1 {
		return 0, fmt.Errorf("%w: all sampled bytes identical", ErrStuck)
	}

	var prev uint32
	repeats, words := 0, len(buf)/4
	for i := 0; i < words; i++ {
		w := binary.BigEndian.Uint32(buf[i*4:])
		if i > 0 && w == prev {
			repeats++
		}
		prev = w
	}
	if words > 1 && repeats > (words-1)*3/4 {
		return 0, fmt.Errorf("%w: 32-bit words repeating excessively", ErrStuck)
	}

	if distinct < minDistinctBytes {
		return 0, fmt.Errorf("%w: only %d distinct byte values", ErrStuck, distinct)
	}
	return prev, nil
}

// observe feeds one 32-bit word into the repeat tracker.
func (h *Health) observe(w uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w == h.lastWord {
		h.repeats++
	} else {
		h.repeats = 0
	}
	h.lastWord = w

	if h.repeats >= maxRepeatedWords {
		h.record(false, ErrStuck.Error()+": repeating identical 32-bit outputs")
		return
	}
	h.record(true, "")
}

// PeriodicHealthCheck samples a word from r on every tick until ctx is done.
func PeriodicHealthCheck(ctx context.Context, r io.Reader, h *Health, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var buf [4]byte
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if err := readFull(r, buf[:]); err != nil {
			h.Set(false, "sample source read failed: "+err.Error())
			continue
		}
		h.observe(binary.BigEndian.Uint32(buf[:]))
	}
}
