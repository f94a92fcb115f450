package main

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

// Main menu buttons.
const (
	btnTerms        = "📜 Умови"
	btnPrizes       = "🎁 Призи"
	btnSupport      = "📞 Підтримка"
	btnStatus       = "📍 Мій статус"
	btnParticipate  = "🎉 Взяти участь у розіграші"
	btnFAQ          = "❓ FAQ"
	btnAdminPanel   = "🔐 Admin panel"
	btnWriteSupport = "✍️ Написати в підтримку"
	btnBackToMenu   = "↩️ Назад до меню"
)

// Admin menu buttons.
const (
	btnParticipants = "👥 Учасники"
	btnExport       = "📥 Експорт CSV"
	btnStats        = "📊 Статистика"
	btnBroadcast    = "📣 Розсилка"
	btnSchedule     = "🕒 Планувати розсилку"
	btnBanned       = "⛔ Забанені"
	btnDelete       = "🗑️ Видалити учасника"
	btnQRCode       = "🔗 QR-код"
	btnBack         = "↩️ Повернутись"
)

// Callback data values.
const (
	callbackParticipate = "participate"
	callbackConfirm     = "confirm_participation"
)

// mainMenu builds the main reply keyboard.
func mainMenu(isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnTerms), tgbotapi.NewKeyboardButton(btnPrizes)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSupport), tgbotapi.NewKeyboardButton(btnStatus)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnParticipate), tgbotapi.NewKeyboardButton(btnFAQ)),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAdminPanel)))
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

// adminMenu builds the admin panel reply keyboard.
func adminMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnParticipants), tgbotapi.NewKeyboardButton(btnExport)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnStats), tgbotapi.NewKeyboardButton(btnBroadcast)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSchedule), tgbotapi.NewKeyboardButton(btnBanned)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnDelete), tgbotapi.NewKeyboardButton(btnQRCode)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)
}

// supportMenu builds the support submenu.
func supportMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnWriteSupport)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBackToMenu)),
	)
}

// subscribeKeyboard builds the inline "I subscribed" button.
func subscribeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Я підписався", callbackParticipate),
		),
	)
}

// confirmKeyboard builds the inline registration confirm button.
func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Підтверджую участь", callbackConfirm),
		),
	)
}
