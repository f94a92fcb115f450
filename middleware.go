package main

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

// messageHandler is the signature shared by all message handlers.
type messageHandler func(b *Bot, msg *tgbotapi.Message)

// adminOnly wraps a message handler with an allow-list check. Non-admins get
// a generic denial with no hint of what the command would have done.
func adminOnly(handler messageHandler) messageHandler {
	return func(b *Bot, msg *tgbotapi.Message) {
		if !b.cfg.IsAdmin(int64(msg.From.ID)) {
			b.send(msg.Chat.ID, "❌ У вас немає доступу до цієї команди.")
			return
		}
		handler(b, msg)
	}
}
