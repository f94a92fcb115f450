package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
)

// Registration rejection reasons. A duplicate attempt is treated as fraud,
// not as a user error: the caller bans the offending user.
var (
	ErrDuplicateID       = errors.New("participant with this telegram id already registered")
	ErrDuplicateNickname = errors.New("participant with this nickname already registered")
)

// ParticipantStore is the durable record of registered participants.
// The SQLite table is the authoritative backend; the id and nickname indexes
// are kept in memory so the check-then-write in Register is a single locked
// region even when broadcasts and scheduled jobs run off the dispatch loop.
type ParticipantStore struct {
	mu       sync.Mutex
	repo     Repository
	nickByID map[int64]string
	idByNick map[string]int64
}

// NewParticipantStore loads existing participants and builds the indexes.
func NewParticipantStore(repo Repository) (*ParticipantStore, error) {
	participants, err := repo.ListParticipants()
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	s := &ParticipantStore{
		repo:     repo,
		nickByID: make(map[int64]string, len(participants)),
		idByNick: make(map[string]int64, len(participants)),
	}
	for _, p := range participants {
		s.nickByID[p.TelegramID] = p.Nickname
		s.idByNick[p.Nickname] = p.TelegramID
	}
	return s, nil
}

// Register commits a participant. It rejects duplicates by telegram id or by
// nickname without touching the backend.
func (s *ParticipantStore) Register(p Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nickByID[p.TelegramID]; exists {
		return ErrDuplicateID
	}
	if _, exists := s.idByNick[p.Nickname]; exists {
		return ErrDuplicateNickname
	}
	if err := s.repo.InsertParticipant(p); err != nil {
		return err
	}
	s.nickByID[p.TelegramID] = p.Nickname
	s.idByNick[p.Nickname] = p.TelegramID
	return nil
}

// Delete removes a participant from the backend and the indexes.
// Deleting an unknown id is a no-op.
func (s *ParticipantStore) Delete(telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteParticipant(telegramID); err != nil {
		return err
	}
	if nick, ok := s.nickByID[telegramID]; ok {
		delete(s.idByNick, nick)
		delete(s.nickByID, telegramID)
	}
	return nil
}

// ListAll returns all participants in insertion order.
func (s *ParticipantStore) ListAll() ([]Participant, error) {
	return s.repo.ListParticipants()
}

// Count returns the number of registered participants.
func (s *ParticipantStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nickByID)
}

// IsParticipant checks whether the user already completed registration.
func (s *ParticipantStore) IsParticipant(telegramID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.nickByID[telegramID]
	return ok
}

// ExportCSV writes the participant list as CSV. A UTF-8 BOM is prepended for
// Excel compatibility.
func (s *ParticipantStore) ExportCSV(w io.Writer) error {
	participants, err := s.repo.ListParticipants()
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte("\xEF\xBB\xBF")); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{"Telegram ID", "Username", "Full Name", "Дата участі", "GGPoker Нік", "Email"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, p := range participants {
		row := []string{
			strconv.FormatInt(p.TelegramID, 10),
			p.Username,
			p.FullName,
			p.JoinedAt.Format("2006-01-02 15:04"),
			p.Nickname,
			p.Email,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
