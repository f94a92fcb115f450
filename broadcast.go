package main

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

// Broadcaster delivers an operator-supplied message to every known
// participant, tallying per-recipient outcomes.
type Broadcaster struct {
	api   BotClient
	store *ParticipantStore
	repo  Repository
	log   *zap.Logger
}

// NewBroadcaster creates a Broadcaster.
func NewBroadcaster(api BotClient, store *ParticipantStore, repo Repository, log *zap.Logger) *Broadcaster {
	return &Broadcaster{api: api, store: store, repo: repo, log: log}
}

// Broadcast sends the body to every participant known at the moment the
// broadcast starts. Per-recipient delivery failure is recorded and never
// aborts the remaining deliveries. Exactly one log entry is appended per
// completed pass.
func (b *Broadcaster) Broadcast(body string) (delivered int, failed []int64, err error) {
	participants, err := b.store.ListAll()
	if err != nil {
		return 0, nil, err
	}

	for _, p := range participants {
		if _, sendErr := b.api.Send(tgbotapi.NewMessage(p.TelegramID, body)); sendErr != nil {
			failed = append(failed, p.TelegramID)
			b.log.Warn("broadcast delivery failed",
				zap.Int64("telegram_id", p.TelegramID),
				zap.Error(sendErr))
			continue
		}
		delivered++
	}

	entry := BroadcastLog{
		CreatedAt:    time.Now(),
		Message:      body,
		SuccessCount: delivered,
		FailedIDs:    failed,
	}
	if logErr := b.repo.InsertBroadcastLog(entry); logErr != nil {
		// The audit trail is best effort; the broadcast itself already ran.
		b.log.Error("append broadcast log", zap.Error(logErr))
	}

	b.log.Info("broadcast finished",
		zap.Int("delivered", delivered),
		zap.Int("failed", len(failed)))
	return delivered, failed, nil
}
