package main

import (
	"database/sql"
	"errors"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// fakeAPI is a scripted in-memory BotClient.
type fakeAPI struct {
	mu           sync.Mutex
	sent         []tgbotapi.Chattable
	callbacks    []tgbotapi.CallbackConfig
	failChats    map[int64]bool
	memberStatus string
	memberErr    error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{failChats: make(map[int64]bool), memberStatus: "member"}
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if mc, ok := c.(tgbotapi.MessageConfig); ok && f.failChats[mc.ChatID] {
		return tgbotapi.Message{}, errors.New("forbidden: bot was blocked by the user")
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetChatMember(cfg tgbotapi.ChatConfigWithUser) (tgbotapi.ChatMember, error) {
	return tgbotapi.ChatMember{Status: f.memberStatus}, f.memberErr
}

func (f *fakeAPI) AnswerCallbackQuery(cfg tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, cfg)
	return tgbotapi.APIResponse{Ok: true}, nil
}

// textsTo returns the plain message texts delivered to a chat, in order.
func (f *fakeAPI) textsTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var texts []string
	for _, c := range f.sent {
		if mc, ok := c.(tgbotapi.MessageConfig); ok && mc.ChatID == chatID {
			texts = append(texts, mc.Text)
		}
	}
	return texts
}

func (f *fakeAPI) lastTextTo(chatID int64) string {
	texts := f.textsTo(chatID)
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// newTestRepo opens an in-memory SQLite repository. A single connection is
// forced because every new :memory: connection is a fresh database.
func newTestRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteRepository(db)
	if err := repo.CreateTables(); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return repo, db
}

func newTestStore(t *testing.T) (*ParticipantStore, *SQLiteRepository, *sql.DB) {
	t.Helper()
	repo, db := newTestRepo(t)
	store, err := NewParticipantStore(repo)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store, repo, db
}

const testAdminID int64 = 99

// newTestBot wires a Bot around the fake transport with throttling disabled.
func newTestBot(t *testing.T, api *fakeAPI) (*Bot, *sql.DB) {
	t.Helper()
	cfg := &Config{
		BotToken:        "test-token",
		AdminIDs:        []int64{testAdminID},
		ChannelUsername: "@giveaway_channel",
		SupportUsername: "@support",
		Cooldown:        0,
	}
	store, repo, db := newTestStore(t)
	return NewBot(cfg, zap.NewNop(), api, store, repo), db
}

func userMessage(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: int(userID), UserName: "user", FirstName: "Test", LastName: "User"},
		Chat: &tgbotapi.Chat{ID: userID},
		Text: text,
	}}
}

func userCallback(userID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: int(userID), UserName: "user", FirstName: "Test", LastName: "User"},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: userID}},
		Data:    data,
	}}
}
