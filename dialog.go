package main

import (
	"regexp"
	"sync"
)

// Stage represents the current step of a user's registration dialog.
type Stage int

const (
	StageSubscription Stage = iota // instructions shown, waiting for the "I subscribed" tap
	StageNickname                  // waiting for the GGPoker nickname
	StageEmail                     // nickname staged, waiting for the email
	StageConfirm                   // nickname and email staged, waiting for the confirm tap
)

// Session holds the staged data of one incomplete registration attempt.
// Nickname is set from StageEmail onward, Email from StageConfirm onward.
type Session struct {
	Stage    Stage
	Nickname string
	Email    string
}

// SessionManager keeps one session per user with an unfinished registration.
// A session exists if and only if the attempt is incomplete; confirmation and
// ban both remove it. Sessions are memory-only and do not survive a restart.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewSessionManager creates an empty SessionManager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[int64]*Session)}
}

// Begin opens a session at the subscription stage, replacing any previous one.
func (m *SessionManager) Begin(userID int64) {
	m.mu.Lock()
	m.sessions[userID] = &Session{Stage: StageSubscription}
	m.mu.Unlock()
}

// Subscribed advances the user past the membership check.
func (m *SessionManager) Subscribed(userID int64) {
	m.mu.Lock()
	m.sessions[userID] = &Session{Stage: StageNickname}
	m.mu.Unlock()
}

// SetNickname stages the nickname and advances to the email step.
func (m *SessionManager) SetNickname(userID int64, nickname string) {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		s.Nickname = nickname
		s.Stage = StageEmail
	}
	m.mu.Unlock()
}

// SetEmail stages the email and advances to the confirmation step.
func (m *SessionManager) SetEmail(userID int64, email string) {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		s.Email = email
		s.Stage = StageConfirm
	}
	m.mu.Unlock()
}

// Get returns a copy of the user's session, if any.
func (m *SessionManager) Get(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		return *s, true
	}
	return Session{}, false
}

// Clear deletes the user's session.
func (m *SessionManager) Clear(userID int64) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}

// AdminStage represents a pending multi-step admin operation.
type AdminStage int

const (
	AdminIdle AdminStage = iota
	AdminAwaitingBroadcast
	AdminAwaitingSchedule
	AdminAwaitingDelete
)

// AdminStateManager tracks pending admin operations. A pending state is
// consumed by the next input regardless of whether it succeeds.
type AdminStateManager struct {
	mu     sync.Mutex
	states map[int64]AdminStage
}

// NewAdminStateManager creates an empty AdminStateManager.
func NewAdminStateManager() *AdminStateManager {
	return &AdminStateManager{states: make(map[int64]AdminStage)}
}

// Set records the pending operation for an admin.
func (m *AdminStateManager) Set(userID int64, stage AdminStage) {
	m.mu.Lock()
	m.states[userID] = stage
	m.mu.Unlock()
}

// Take returns the pending operation and clears it.
func (m *AdminStateManager) Take(userID int64) AdminStage {
	m.mu.Lock()
	defer m.mu.Unlock()
	stage, ok := m.states[userID]
	if !ok {
		return AdminIdle
	}
	delete(m.states, userID)
	return stage
}

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// ValidateEmail validates an email address against the canonical pattern:
// ASCII local part with dots, dashes, plus and percent, a domain and a TLD of
// at least two letters.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}
