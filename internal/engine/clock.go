package engine

import (
	"sync"
	"time"
)

// PhaseClock owns one pending timer per game. Scheduling always cancels
// and replaces, so a game can never have two live timers; a canceled
// timer never runs its callback.
type PhaseClock struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewPhaseClock creates an empty clock.
func NewPhaseClock() *PhaseClock {
	return &PhaseClock{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arms a single deferred callback for the game, replacing any
// pending one.
func (c *PhaseClock) Schedule(gameID string, d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[gameID]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		// Only forget the entry if it still refers to this timer; a
		// replacement scheduled between fire and lock stays armed.
		if c.timers[gameID] == timer {
			delete(c.timers, gameID)
		}
		c.mu.Unlock()

		fn()
	})
	c.timers[gameID] = timer
}

// Cancel stops and removes the game's pending timer, if any.
func (c *PhaseClock) Cancel(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[gameID]; ok {
		t.Stop()
		delete(c.timers, gameID)
	}
}

// Stop cancels every pending timer. Used on shutdown.
func (c *PhaseClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}

// Pending reports whether the game has a timer armed.
func (c *PhaseClock) Pending(gameID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.timers[gameID]
	return ok
}
