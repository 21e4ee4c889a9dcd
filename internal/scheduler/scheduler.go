// Package scheduler drives the periodic status-line redraw.
package scheduler

import (
	"errors"
	"sync"
	"time"
)

// State represents the lifecycle of the redraw loop.
type State int

const (
	// StateIdle is the initial state before Start.
	StateIdle State = iota

	// StateRunning indicates the tick loop is active.
	StateRunning

	// StateStopped indicates the loop has been stopped and will never
	// tick again.
	StateStopped
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrNotIdle is returned by Start when the scheduler has already been
// started or stopped.
var ErrNotIdle = errors.New("scheduler: already started")

// Scheduler invokes a tick callback immediately on Start and then once
// per interval, on its own goroutine, until Stop is called.
//
// Stop is synchronous: when it returns, any in-flight tick has
// completed and no further tick will ever run. That handshake is what
// lets the caller finalize the status line without racing a stray
// redraw.
type Scheduler struct {
	interval time.Duration
	tick     func()

	mu    sync.Mutex
	state State
	quit  chan struct{}
	done  chan struct{}
}

// New creates a Scheduler. interval must be positive; tick must not be
// nil.
func New(interval time.Duration, tick func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		tick:     tick,
		state:    StateIdle,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start transitions Idle -> Running and launches the tick loop. The
// first tick fires immediately so the status line appears at t=0, not
// one interval in.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrNotIdle
	}
	s.state = StateRunning
	go s.loop()
	return nil
}

// Stop transitions Running -> Stopped and blocks until the loop
// goroutine has exited. Safe to call more than once and safe to call
// on a never-started scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	switch s.state {
	case StateIdle:
		s.state = StateStopped
		close(s.done) // loop never ran
		s.mu.Unlock()
		return
	case StateStopped:
		s.mu.Unlock()
		<-s.done
		return
	}
	s.state = StateStopped
	close(s.quit)
	s.mu.Unlock()

	<-s.done
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick()
	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			// A tick that raced the stop request must not fire.
			select {
			case <-s.quit:
				return
			default:
			}
			s.tick()
		}
	}
}
