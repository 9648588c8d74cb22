package capability

import "sync"

// Status exposes per-adapter loading and last-error observables for UI
// feedback. A zero Status is ready to use.
type Status struct {
	mu       sync.Mutex
	inFlight int
	lastErr  error
}

// Begin marks one operation as in flight and clears the last error.
func (s *Status) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight++
	s.lastErr = nil
}

// End marks one operation as finished and records its outcome.
func (s *Status) End(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight > 0 {
		s.inFlight--
	}
	if err != nil {
		s.lastErr = err
	}
}

// Record stores an error without touching the in-flight counter.
func (s *Status) Record(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// Loading reports whether any operation is currently in flight.
func (s *Status) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// LastError returns the most recent failure, or nil.
func (s *Status) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
