package decision

import (
	"errors"
	"sync"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
)

// ErrNoRecommendations signals that a session has not generated a decision
// result yet.
var ErrNoRecommendations = errors.New("no recommendations generated for this session")

// sessionState is everything the dashboard keeps per browser session: the
// theme flag and the last generated decision result.
type sessionState struct {
	theme  models.Theme
	result *models.DecisionResult
}

// SessionManager handles per-session dashboard state, keyed by the
// X-Session-ID header value.
type SessionManager struct {
	sessions map[string]*sessionState
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*sessionState),
	}
}

// Theme retrieves the session's theme, defaulting to light.
func (sm *SessionManager) Theme(sessionID string) models.Theme {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if state, exists := sm.sessions[sessionID]; exists {
		return state.theme
	}
	return models.ThemeLight
}

// SetTheme updates the session's theme.
func (sm *SessionManager) SetTheme(sessionID string, theme models.Theme) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.state(sessionID).theme = theme
}

// Result retrieves the session's cached decision result. It returns
// ErrNoRecommendations when the session has not generated one.
func (sm *SessionManager) Result(sessionID string) (models.DecisionResult, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if state, exists := sm.sessions[sessionID]; exists && state.result != nil {
		return *state.result, nil
	}
	return models.DecisionResult{}, ErrNoRecommendations
}

// StoreResult caches a generated decision result for the session.
func (sm *SessionManager) StoreResult(sessionID string, result models.DecisionResult) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.state(sessionID).result = &result
}

// Clear removes a session's state.
func (sm *SessionManager) Clear(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, sessionID)
}

// state returns the session's entry, creating an empty one if needed.
// Callers must hold the write lock.
func (sm *SessionManager) state(sessionID string) *sessionState {
	st, exists := sm.sessions[sessionID]
	if !exists {
		st = &sessionState{theme: models.ThemeLight}
		sm.sessions[sessionID] = st
	}
	return st
}
