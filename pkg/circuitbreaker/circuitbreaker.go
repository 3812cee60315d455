package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

type state uint8

const (
	closed state = iota
	open
	halfOpen
)

var ErrOpen = errors.New("circuit breaker is open")

// Breaker tracks the failure rate over a sliding window of calls. When the
// rate crosses the threshold the breaker opens and rejects calls until the
// cooldown elapses; it then lets probes through and closes again after
// enough consecutive successes.
type Breaker struct {
	mu sync.Mutex

	st         state
	window     []bool
	pos        int
	threshold  float64
	cooldown   time.Duration
	openedAt   time.Time
	probeQuota int
	probesOK   int
}

func New(windowSize int, cooldown time.Duration, threshold float64, probeQuota int) *Breaker {
	return &Breaker{
		st:         closed,
		window:     make([]bool, windowSize),
		threshold:  threshold,
		cooldown:   cooldown,
		probeQuota: probeQuota,
	}
}

func (b *Breaker) Call(fn func() error) error {
	b.mu.Lock()
	if b.st == open {
		if time.Since(b.openedAt) < b.cooldown {
			b.mu.Unlock()
			return ErrOpen
		}
		b.st = halfOpen
		b.probesOK = 0
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.window[b.pos] = err != nil
	b.pos = (b.pos + 1) % len(b.window)

	switch b.st {
	case halfOpen:
		if err != nil {
			b.trip()
			return err
		}
		b.probesOK++
		if b.probesOK >= b.probeQuota {
			b.reset()
		}
	case closed:
		if b.failureRate() >= b.threshold {
			b.trip()
		}
	}
	return err
}

func (b *Breaker) failureRate() float64 {
	fails := 0
	for _, failed := range b.window {
		if failed {
			fails++
		}
	}
	return float64(fails) / float64(len(b.window))
}

func (b *Breaker) trip() {
	b.st = open
	b.probesOK = 0
	b.openedAt = time.Now()
}

func (b *Breaker) reset() {
	for i := range b.window {
		b.window[i] = false
	}
	b.pos = 0
	b.probesOK = 0
	b.st = closed
}
