package main

import "time"

// Participant represents a registered giveaway participant.
type Participant struct {
	TelegramID int64     // TelegramID is the unique identifier for the user on Telegram.
	Username   string    // Username is the user's Telegram username with a leading @.
	FullName   string    // FullName is the user's full name composed at registration time.
	JoinedAt   time.Time // JoinedAt is the date and time when the user registered.
	Nickname   string    // Nickname is the GGPoker nickname supplied by the user. Unique.
	Email      string    // Email is the user's contact email address.
}

// BroadcastLog represents one completed broadcast. Write-only audit trail.
type BroadcastLog struct {
	CreatedAt    time.Time
	Message      string
	SuccessCount int
	FailedIDs    []int64
}
