// Package scan governs the lifecycle of one form capture: when the mapping
// collaborator may be invoked and when the guided-fill navigator is valid to
// query.
package scan

import (
	"errors"
	"sync"

	"formsaathi/internal/models"
	"formsaathi/internal/overlay"
)

// State of one capture session.
type State string

const (
	// StateIdle: no result; the capture surface (live feed) is active.
	StateIdle State = "idle"
	// StateAnalyzing: a mapping request is in flight; a second capture is
	// rejected until it resolves.
	StateAnalyzing State = "analyzing"
	// StateReady: a scan result is present and the navigator is live.
	StateReady State = "ready"
)

var (
	ErrBusyAnalyzing = errors.New("a mapping request is already in flight for this scan")
	ErrResultPresent = errors.New("a scan result is already present; retake first")
	ErrNotAnalyzing  = errors.New("no mapping request in flight")
	ErrNotReady      = errors.New("no scan result yet")
)

// Session is the capture state machine for one active scan. All mutation is
// event-driven; the mutex only serializes HTTP handlers racing on the same
// session id.
type Session struct {
	mu     sync.Mutex
	state  State
	result *models.ScanResult
	nav    *overlay.Navigator
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeginAnalysis enters analyzing. Only valid from idle: at most one
// outstanding mapping request per active scan.
func (s *Session) BeginAnalysis() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateAnalyzing:
		return ErrBusyAnalyzing
	case StateReady:
		return ErrResultPresent
	}
	s.state = StateAnalyzing
	return nil
}

// CompleteAnalysis installs the mapping result and brings up a fresh
// navigator at the first field.
func (s *Session) CompleteAnalysis(res models.ScanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAnalyzing {
		return ErrNotAnalyzing
	}
	s.result = &res
	s.nav = overlay.NewNavigator(res.Overlays)
	s.state = StateReady
	return nil
}

// FailAnalysis returns to idle so the capture surface can resume.
func (s *Session) FailAnalysis() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAnalyzing {
		s.state = StateIdle
	}
}

// UseTemplate installs a result produced synchronously by template
// rebinding; the mapping collaborator is never invoked on this path.
func (s *Session) UseTemplate(res models.ScanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateAnalyzing:
		return ErrBusyAnalyzing
	case StateReady:
		return ErrResultPresent
	}
	s.result = &res
	s.nav = overlay.NewNavigator(res.Overlays)
	s.state = StateReady
	return nil
}

// Retake discards the result and navigator and returns to idle.
func (s *Session) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	s.result = nil
	s.nav = nil
	s.state = StateIdle
	return nil
}

// Navigator is valid to query only once a result is ready.
func (s *Session) Navigator() (*overlay.Navigator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ErrNotReady
	}
	return s.nav, nil
}

func (s *Session) Result() (*models.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ErrNotReady
	}
	return s.result, nil
}
