package scan

import "sync"

// Registry maps session ids to their live capture sessions. Scan state is
// in-memory only; it dies with the process, durable data lives elsewhere.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Get returns the capture session for the id, creating an idle one on first
// use.
func (r *Registry) Get(sessionID string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		return s
	}
	s = NewSession()
	r.sessions[sessionID] = s
	return s
}

// Drop forgets a session, e.g. when the user closes the scanner.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}
