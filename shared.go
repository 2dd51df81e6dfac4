package html2pdf

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// SharedEngine owns the process-lifetime engine singleton used by shared
// mode. It holds at most one live handle and at most one in-flight launch;
// concurrent Acquire calls during a launch all await the same result.
//
// State machine: Absent -> Launching -> Ready -> (Disconnected -> Absent).
type SharedEngine struct {
	launch LaunchFunc

	mu     sync.Mutex
	handle Engine

	group singleflight.Group
}

// launchKey is the single-flight key: there is only ever one shared engine,
// so every launch deduplicates onto the same flight.
const launchKey = "launch"

// NewSharedEngine creates a manager that launches engines with launch.
// No engine is started until the first Acquire.
func NewSharedEngine(launch LaunchFunc) *SharedEngine {
	return &SharedEngine{launch: launch}
}

// Acquire returns the shared engine handle, launching it if absent or
// disconnected. ctx bounds only this caller's wait: an abandoned launch
// keeps running and its result is shared with the remaining waiters.
func (s *SharedEngine) Acquire(ctx context.Context) (Engine, error) {
	if eng := s.current(); eng != nil {
		return eng, nil
	}

	ch := s.group.DoChan(launchKey, func() (any, error) {
		// A concurrent launch may have settled between the fast path
		// and joining the flight.
		if eng := s.current(); eng != nil {
			return eng, nil
		}

		eng, err := s.launch()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.handle = eng
		s.mu.Unlock()

		// Registered after the store so an engine that dies instantly
		// still clears itself. Idempotent forget: a stale notification
		// from an already replaced handle must not un-set its
		// successor, so the observer captures the handle it was
		// registered on.
		eng.OnDisconnect(func() { s.forget(eng) })

		return eng, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Engine), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// current returns the stored handle if it is still connected.
func (s *SharedEngine) current() Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil && s.handle.Connected() {
		return s.handle
	}
	return nil
}

// forget clears the stored handle if it is still eng. A subsequent Acquire
// re-enters the launch path.
func (s *SharedEngine) forget(eng Engine) {
	s.mu.Lock()
	if s.handle == eng {
		s.handle = nil
	}
	s.mu.Unlock()
}

// Close shuts down the stored handle if present. An in-flight launch is not
// cancelled; its engine will be orphaned with the process exit.
func (s *SharedEngine) Close() error {
	s.mu.Lock()
	eng := s.handle
	s.handle = nil
	s.mu.Unlock()

	if eng == nil {
		return nil
	}
	return eng.Close()
}
