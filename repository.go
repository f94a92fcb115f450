package main

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Repository defines the interface for database operations.
type Repository interface {
	CreateTables() error
	InsertParticipant(p Participant) error
	DeleteParticipant(telegramID int64) error
	ListParticipants() ([]Participant, error)
	CountParticipants() (int, error)
	InsertBroadcastLog(l BroadcastLog) error
}

// SQLiteRepository implements the Repository interface.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLiteRepository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateTables creates the participants and broadcast log tables.
func (r *SQLiteRepository) CreateTables() error {
	participantTable := `CREATE TABLE IF NOT EXISTS participants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		telegram_id INTEGER UNIQUE,
		username TEXT,
		full_name TEXT,
		joined_at DATETIME,
		nickname TEXT,
		email TEXT
	);`

	logTable := `CREATE TABLE IF NOT EXISTS broadcast_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME,
		message TEXT,
		success_count INTEGER,
		failed_ids TEXT
	);`

	if _, err := r.db.Exec(participantTable); err != nil {
		return err
	}
	if _, err := r.db.Exec(logTable); err != nil {
		return err
	}
	return nil
}

// InsertParticipant appends a participant row. A pre-existing row with the
// same telegram id is left untouched; the in-memory index is the primary
// duplicate guard and the conflict clause is a second layer beneath it.
func (r *SQLiteRepository) InsertParticipant(p Participant) error {
	stmt, err := r.db.Prepare("INSERT OR IGNORE INTO participants (telegram_id, username, full_name, joined_at, nickname, email) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	_, err = stmt.Exec(p.TelegramID, p.Username, p.FullName, p.JoinedAt.Format(time.RFC3339), p.Nickname, p.Email)
	return err
}

// DeleteParticipant removes the row matching the telegram id.
// Absence of a matching row is not an error.
func (r *SQLiteRepository) DeleteParticipant(telegramID int64) error {
	stmt, err := r.db.Prepare("DELETE FROM participants WHERE telegram_id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()
	_, err = stmt.Exec(telegramID)
	return err
}

// ListParticipants returns all participants in insertion order.
func (r *SQLiteRepository) ListParticipants() ([]Participant, error) {
	rows, err := r.db.Query("SELECT telegram_id, username, full_name, joined_at, nickname, email FROM participants ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		var joinedStr string
		if err := rows.Scan(&p.TelegramID, &p.Username, &p.FullName, &joinedStr, &p.Nickname, &p.Email); err != nil {
			return nil, err
		}
		p.JoinedAt, _ = time.Parse(time.RFC3339, joinedStr)
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return participants, nil
}

// CountParticipants returns the number of registered participants.
func (r *SQLiteRepository) CountParticipants() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM participants").Scan(&count)
	return count, err
}

// InsertBroadcastLog appends one row for a completed broadcast.
func (r *SQLiteRepository) InsertBroadcastLog(l BroadcastLog) error {
	stmt, err := r.db.Prepare("INSERT INTO broadcast_logs (created_at, message, success_count, failed_ids) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	failed := make([]string, 0, len(l.FailedIDs))
	for _, id := range l.FailedIDs {
		failed = append(failed, strconv.FormatInt(id, 10))
	}
	_, err = stmt.Exec(l.CreatedAt.Format(time.RFC3339), l.Message, l.SuccessCount, strings.Join(failed, ", "))
	return err
}
