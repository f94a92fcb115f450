package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// handleStart greets the user with the main menu.
func handleStart(b *Bot, msg *tgbotapi.Message) {
	b.sendWithMarkup(msg.Chat.ID,
		"👋 Вітаємо у GGpoker Telegram боті! Це не просто бот для участі в розіграші, "+
			"а також ваш персональний асистент для отримання новин, бонусів та корисної "+
			"інформації про GGpoker. Натисніть кнопку нижче, щоб розпочати.",
		mainMenu(b.cfg.IsAdmin(int64(msg.From.ID))))
}

// handleMenuText dispatches reply keyboard buttons.
func handleMenuText(b *Bot, msg *tgbotapi.Message) {
	switch msg.Text {
	case btnParticipate:
		handleParticipate(b, msg)
	case btnTerms:
		b.send(msg.Chat.ID, fmt.Sprintf("📜 Умови:\n1. Підписка на %s\n2. YouTube: %s\n3. Twitch: %s",
			b.cfg.ChannelUsername, b.cfg.YouTubeLink, b.cfg.TwitchLink))
	case btnPrizes:
		b.send(msg.Chat.ID, "🎁 Призовий фонд: бонуси для 3 учасників!")
	case btnStatus:
		if b.store.IsParticipant(int64(msg.From.ID)) {
			b.send(msg.Chat.ID, "✅ Ви берете участь!")
		} else {
			b.send(msg.Chat.ID, "❌ Ви ще не брали участі.")
		}
	case btnSupport:
		b.sendWithMarkup(msg.Chat.ID, "Оберіть варіант:", supportMenu())
	case btnWriteSupport:
		b.send(msg.Chat.ID, "Зв'яжіться з підтримкою тут: https://t.me/"+strings.TrimPrefix(b.cfg.SupportUsername, "@"))
	case btnFAQ:
		b.send(msg.Chat.ID, "ℹ️ Часті питання:\n- Як дізнатися чи я зареєстрований?\n- Як змінити нікнейм?\n- Як зв'язатися з підтримкою?")
	case btnBackToMenu:
		b.sendWithMarkup(msg.Chat.ID, "🔙 Повертаємося до головного меню:", mainMenu(b.cfg.IsAdmin(int64(msg.From.ID))))
	case btnAdminPanel:
		adminOnly(handleAdminPanel)(b, msg)
	case btnParticipants:
		adminOnly(handleParticipantsList)(b, msg)
	case btnExport:
		adminOnly(handleExport)(b, msg)
	case btnStats:
		adminOnly(handleStats)(b, msg)
	case btnBroadcast:
		adminOnly(handleBroadcastPrompt)(b, msg)
	case btnSchedule:
		adminOnly(handleSchedulePrompt)(b, msg)
	case btnBanned:
		adminOnly(handleBannedList)(b, msg)
	case btnDelete:
		adminOnly(handleDeletePrompt)(b, msg)
	case btnQRCode:
		adminOnly(handleQRCode)(b, msg)
	case btnBack:
		adminOnly(handleBackToMain)(b, msg)
	default:
		b.log.Debug("unmatched text ignored", zap.Int64("user_id", int64(msg.From.ID)))
	}
}

// handleParticipate shows the subscription instructions and opens a session.
func handleParticipate(b *Bot, msg *tgbotapi.Message) {
	b.sessions.Begin(int64(msg.From.ID))
	b.sendWithMarkup(msg.Chat.ID,
		fmt.Sprintf("📋 Для участі в розіграші потрібно:\n"+
			"1. Підписатися на Telegram канал: %s\n"+
			"2. Підписатися на YouTube: %s\n"+
			"3. Підписатися на Twitch: %s\n\n"+
			"Після цього натисніть кнопку нижче, щоб продовжити.",
			b.cfg.ChannelUsername, b.cfg.YouTubeLink, b.cfg.TwitchLink),
		subscribeKeyboard())
}

// handleCallbackQuery handles inline button callbacks.
func handleCallbackQuery(b *Bot, cq *tgbotapi.CallbackQuery) {
	switch cq.Data {
	case callbackParticipate:
		handleSubscriptionCheck(b, cq)
	case callbackConfirm:
		handleConfirm(b, cq)
	default:
		b.answerCallback(cq.ID, "", false)
	}
}

// handleSubscriptionCheck verifies channel membership and, if the user is
// subscribed, advances the session to the nickname step.
func handleSubscriptionCheck(b *Bot, cq *tgbotapi.CallbackQuery) {
	userID := int64(cq.From.ID)

	member, err := b.api.GetChatMember(tgbotapi.ChatConfigWithUser{
		SuperGroupUsername: b.cfg.ChannelUsername,
		UserID:             cq.From.ID,
	})
	if err != nil {
		// Transport failure, not a refusal: drop the session and ask the
		// user to retry later.
		b.sessions.Clear(userID)
		b.answerCallback(cq.ID, "⚠️ Неможливо перевірити підписку. Спробуйте пізніше.", true)
		b.notifyAdmins("❗ Помилка перевірки підписки: " + err.Error())
		b.log.Warn("membership check failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	switch member.Status {
	case "member", "administrator", "creator":
	default:
		b.sessions.Clear(userID)
		b.answerCallback(cq.ID, "❌ Спочатку підпишіться на Telegram-канал!", true)
		return
	}

	b.sessions.Subscribed(userID)
	b.send(cq.Message.Chat.ID, "✅ Ви приєдналися! Введіть ваш GGPoker нікнейм.")
	b.answerCallback(cq.ID, "", false)
}

// handleNicknameInput stages the nickname and asks for the email.
func handleNicknameInput(b *Bot, msg *tgbotapi.Message) {
	b.sessions.SetNickname(int64(msg.From.ID), strings.TrimSpace(msg.Text))
	b.send(msg.Chat.ID, "📧 Введіть вашу електронну пошту:")
}

// handleEmailInput validates the email; on success the user is asked to
// confirm, on failure the prompt repeats and the stage does not advance.
func handleEmailInput(b *Bot, msg *tgbotapi.Message) {
	email := strings.TrimSpace(msg.Text)
	if !ValidateEmail(email) {
		b.send(msg.Chat.ID, "❌ Невірний формат email. Спробуйте ще раз:")
		return
	}
	b.sessions.SetEmail(int64(msg.From.ID), email)
	b.sendWithMarkup(msg.Chat.ID, "✅ Все готово! Підтвердьте участь:", confirmKeyboard())
}

// handleConfirm commits the staged registration. Duplicates result in a ban,
// not merely a rejection.
func handleConfirm(b *Bot, cq *tgbotapi.CallbackQuery) {
	userID := int64(cq.From.ID)
	s, ok := b.sessions.Get(userID)
	if !ok || s.Stage != StageConfirm {
		b.answerCallback(cq.ID, "⚠️ Щось пішло не так. Спробуйте ще.", false)
		return
	}

	participant := Participant{
		TelegramID: userID,
		Username:   displayUsername(cq.From),
		FullName:   displayFullName(cq.From),
		JoinedAt:   time.Now(),
		Nickname:   s.Nickname,
		Email:      s.Email,
	}

	err := b.store.Register(participant)
	b.sessions.Clear(userID)

	switch {
	case err == nil:
		b.sendWithMarkup(cq.Message.Chat.ID,
			"✅ Участь підтверджено! Успіхів!",
			mainMenu(b.cfg.IsAdmin(userID)))
		b.log.Info("participant registered",
			zap.Int64("telegram_id", userID),
			zap.String("nickname", s.Nickname))
	case err == ErrDuplicateID || err == ErrDuplicateNickname:
		b.bans.Add(userID)
		b.send(cq.Message.Chat.ID, "🚫 Ви вже брали участь у розіграші або намагалися обманути систему.")
		b.log.Warn("duplicate registration attempt, user banned",
			zap.Int64("telegram_id", userID),
			zap.String("nickname", s.Nickname))
	default:
		// Unexpected storage failure: the admins hear about it and the user
		// is told to retry rather than left in silence.
		b.send(cq.Message.Chat.ID, "⚠️ Сталася помилка. Спробуйте пізніше.")
		b.notifyAdmins("❗ Помилка збереження учасника: " + err.Error())
		b.log.Error("register participant", zap.Int64("telegram_id", userID), zap.Error(err))
	}
	b.answerCallback(cq.ID, "", false)
}

// handleAdminPanel opens the admin menu.
func handleAdminPanel(b *Bot, msg *tgbotapi.Message) {
	b.sendWithMarkup(msg.Chat.ID, "🔐 Вхід в адмін-панель.", adminMenu())
}

// handleBackToMain returns the admin to the main menu.
func handleBackToMain(b *Bot, msg *tgbotapi.Message) {
	b.sendWithMarkup(msg.Chat.ID, "🔙 Повертаємося до головного меню:", mainMenu(true))
}

// handleParticipantsList sends the participant list as text.
func handleParticipantsList(b *Bot, msg *tgbotapi.Message) {
	participants, err := b.store.ListAll()
	if err != nil {
		b.send(msg.Chat.ID, "❌ Помилка отримання списку учасників.")
		b.log.Error("list participants", zap.Error(err))
		return
	}
	if len(participants) == 0 {
		b.send(msg.Chat.ID, "👥 Список учасників порожній.")
		return
	}
	lines := make([]string, 0, len(participants))
	for _, p := range participants {
		lines = append(lines, fmt.Sprintf("%d | %s | %s | %s | %s",
			p.TelegramID, p.Username, p.FullName, p.Nickname, p.Email))
	}
	b.send(msg.Chat.ID, "👥 Список учасників:\n"+strings.Join(lines, "\n"))
}

// handleExport sends the participant list as a CSV document.
func handleExport(b *Bot, msg *tgbotapi.Message) {
	var buf bytes.Buffer
	if err := b.store.ExportCSV(&buf); err != nil {
		b.send(msg.Chat.ID, "❌ Помилка експорту: "+err.Error())
		b.log.Error("export participants", zap.Error(err))
		return
	}

	filename := "participants_" + time.Now().Format("20060102_150405") + ".csv"
	doc := tgbotapi.NewDocumentUpload(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("Експорт учасників (%d записів)", b.store.Count())
	if _, err := b.api.Send(doc); err != nil {
		b.send(msg.Chat.ID, "❌ Помилка відправки файлу.")
		b.log.Error("send export", zap.Error(err))
	}
}

// handleStats reports the aggregate participant count.
func handleStats(b *Bot, msg *tgbotapi.Message) {
	b.send(msg.Chat.ID, fmt.Sprintf("📊 Загальна кількість зареєстрованих учасників: %d", b.store.Count()))
}

// handleBannedList lists banned user ids.
func handleBannedList(b *Bot, msg *tgbotapi.Message) {
	ids := b.bans.List()
	if len(ids) == 0 {
		b.send(msg.Chat.ID, "✅ Немає забанених користувачів.")
		return
	}
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, strconv.FormatInt(id, 10))
	}
	b.send(msg.Chat.ID, "🚫 Забанені користувачі:\n"+strings.Join(lines, "\n"))
}

// handleBroadcastPrompt asks for the broadcast text.
func handleBroadcastPrompt(b *Bot, msg *tgbotapi.Message) {
	b.adminStates.Set(int64(msg.From.ID), AdminAwaitingBroadcast)
	b.send(msg.Chat.ID, "✉️ Введіть текст для розсилки.")
}

// handleSchedulePrompt asks for the schedule input.
func handleSchedulePrompt(b *Bot, msg *tgbotapi.Message) {
	b.adminStates.Set(int64(msg.From.ID), AdminAwaitingSchedule)
	b.send(msg.Chat.ID, "🕒 Введіть дату, час (YYYY-MM-DD HH:MM) та текст:")
}

// handleDeletePrompt asks for the participant id to delete.
func handleDeletePrompt(b *Bot, msg *tgbotapi.Message) {
	b.adminStates.Set(int64(msg.From.ID), AdminAwaitingDelete)
	b.send(msg.Chat.ID, "🔍 Введіть Telegram ID учасника для видалення:")
}

// handleAdminInput processes the single input a pending admin operation
// consumes. The pending state was already cleared by the caller.
func handleAdminInput(b *Bot, msg *tgbotapi.Message, stage AdminStage) {
	switch stage {
	case AdminAwaitingBroadcast:
		body := strings.TrimSpace(msg.Text)
		if body == "" {
			b.send(msg.Chat.ID, "⚠️ Не вдалося отримати текст розсилки. Спробуйте ще раз.")
			return
		}
		b.send(msg.Chat.ID, "🔄 Розсилку розпочато...")
		// The delivery pass may stall on slow recipients; keep it off the
		// dispatch loop.
		go runBroadcast(b, msg.Chat.ID, body)

	case AdminAwaitingSchedule:
		at, body, err := parseScheduleInput(msg.Text)
		if err != nil {
			b.send(msg.Chat.ID, "❌ Невірний формат або помилка: "+err.Error())
			return
		}
		jobID, err := b.scheduler.Schedule(at, func() {
			b.notifyAdmins(body)
		})
		if err != nil {
			b.send(msg.Chat.ID, "❌ Невірний формат або помилка: "+err.Error())
			return
		}
		b.send(msg.Chat.ID, fmt.Sprintf("🕒 Розсилку заплановано на %s (завдання %s)", at.Format(scheduleLayout), jobID))

	case AdminAwaitingDelete:
		id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
		if err != nil {
			b.send(msg.Chat.ID, "❌ Неправильний формат ID.")
			return
		}
		if err := b.store.Delete(id); err != nil {
			b.send(msg.Chat.ID, "❌ Помилка видалення: "+err.Error())
			b.log.Error("delete participant", zap.Int64("telegram_id", id), zap.Error(err))
			return
		}
		b.send(msg.Chat.ID, fmt.Sprintf("🗑️ Учасника з ID %d видалено.", id))
	}
}

// runBroadcast runs one full broadcast pass and reports the tally back to the
// initiating admin.
func runBroadcast(b *Bot, adminChatID int64, body string) {
	delivered, failed, err := b.broadcaster.Broadcast(body)
	if err != nil {
		b.send(adminChatID, "❌ Помилка розсилки: "+err.Error())
		return
	}
	b.send(adminChatID, fmt.Sprintf("✅ Розсилку завершено. Доставлено: %d. Не вдалося: %d.", delivered, len(failed)))
}

// handleQRCode sends a QR code with the bot deep link for offline promotion.
func handleQRCode(b *Bot, msg *tgbotapi.Message) {
	if b.cfg.BotLink == "" {
		b.send(msg.Chat.ID, "⚠️ BOT_LINK не налаштовано.")
		return
	}
	png, err := qrcode.Encode(b.cfg.BotLink, qrcode.Medium, 256)
	if err != nil {
		b.send(msg.Chat.ID, "❌ Помилка генерації QR-коду.")
		b.log.Error("generate qr code", zap.Error(err))
		return
	}
	photo := tgbotapi.NewPhotoUpload(msg.Chat.ID, tgbotapi.FileBytes{Name: "giveaway_qr.png", Bytes: png})
	photo.Caption = "QR-код з посиланням на бота"
	if _, err := b.api.Send(photo); err != nil {
		b.log.Error("send qr code", zap.Error(err))
	}
}
