package main

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

// BotClient is the slice of the Telegram transport the bot consumes.
// *tgbotapi.BotAPI satisfies it.
type BotClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetChatMember(cfg tgbotapi.ChatConfigWithUser) (tgbotapi.ChatMember, error)
	AnswerCallbackQuery(cfg tgbotapi.CallbackConfig) (tgbotapi.APIResponse, error)
}

// Bot owns all process-wide state and dispatches inbound updates.
type Bot struct {
	api         BotClient
	cfg         *Config
	log         *zap.Logger
	store       *ParticipantStore
	sessions    *SessionManager
	adminStates *AdminStateManager
	bans        *BanList
	limiter     *RateLimiter
	broadcaster *Broadcaster
	scheduler   *Scheduler
}

// NewBot wires the bot together.
func NewBot(cfg *Config, log *zap.Logger, api BotClient, store *ParticipantStore, repo Repository) *Bot {
	return &Bot{
		api:         api,
		cfg:         cfg,
		log:         log,
		store:       store,
		sessions:    NewSessionManager(),
		adminStates: NewAdminStateManager(),
		bans:        NewBanList(),
		limiter:     NewRateLimiter(cfg.Cooldown),
		broadcaster: NewBroadcaster(api, store, repo, log),
		scheduler:   NewScheduler(log),
	}
}

// HandleUpdate processes one inbound update. A panicking handler is recovered
// and logged so one bad event cannot kill the dispatch loop.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("handler panic", zap.Any("panic", r), zap.Int("update_id", update.UpdateID))
		}
	}()

	if update.CallbackQuery != nil {
		if b.bans.Contains(int64(update.CallbackQuery.From.ID)) {
			return
		}
		handleCallbackQuery(b, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.From == nil {
		return
	}
	b.handleMessage(update.Message)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	userID := int64(msg.From.ID)

	// Banned users are ignored everywhere, /start included.
	if b.bans.Contains(userID) {
		return
	}
	if !b.limiter.Admit(userID) {
		b.log.Debug("message throttled", zap.Int64("user_id", userID))
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			handleStart(b, msg)
		default:
			b.send(msg.Chat.ID, "Невідома команда. Оберіть опцію в меню.")
		}
		return
	}

	// A user mid-registration gets the next text routed into the state
	// machine. Subscription and confirm stages advance only via inline
	// buttons, so their texts fall through to the menu.
	if s, ok := b.sessions.Get(userID); ok {
		switch s.Stage {
		case StageNickname:
			handleNicknameInput(b, msg)
			return
		case StageEmail:
			handleEmailInput(b, msg)
			return
		}
	}

	// A pending admin operation consumes the next input whatever it is.
	if stage := b.adminStates.Take(userID); stage != AdminIdle && b.cfg.IsAdmin(userID) {
		handleAdminInput(b, msg, stage)
		return
	}

	handleMenuText(b, msg)
}

// send sends a plain text message to the given chat.
func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Warn("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendWithMarkup sends a text message with a reply or inline keyboard.
func (b *Bot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	message := tgbotapi.NewMessage(chatID, text)
	message.ReplyMarkup = markup
	if _, err := b.api.Send(message); err != nil {
		b.log.Warn("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// notifyAdmins reports an incident to every configured admin. Delivery is
// best effort.
func (b *Bot) notifyAdmins(text string) {
	for _, id := range b.cfg.AdminIDs {
		if _, err := b.api.Send(tgbotapi.NewMessage(id, text)); err != nil {
			b.log.Warn("notify admin", zap.Int64("admin_id", id), zap.Error(err))
		}
	}
}

// answerCallback acknowledges a callback query, optionally with an alert.
func (b *Bot) answerCallback(id, text string, alert bool) {
	cb := tgbotapi.NewCallback(id, text)
	if alert {
		cb = tgbotapi.NewCallbackWithAlert(id, text)
	}
	if _, err := b.api.AnswerCallbackQuery(cb); err != nil {
		b.log.Warn("answer callback", zap.Error(err))
	}
}

// displayUsername renders the @handle the way exported rows show it.
func displayUsername(u *tgbotapi.User) string {
	if u.UserName == "" {
		return "(без username)"
	}
	return "@" + u.UserName
}

// displayFullName composes the user's full name.
func displayFullName(u *tgbotapi.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
