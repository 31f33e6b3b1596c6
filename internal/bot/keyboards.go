package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

const (
	btnAdd   = "Добавить трату"
	btnMonth = "Показать траты за месяц"
	btnToday = "Показать траты за сегодня"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAdd)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMonth),
			tgbotapi.NewKeyboardButton(btnToday),
		),
	)
	kb.ResizeKeyboard = true
	kb.InputFieldPlaceholder = "Воспользуйтесь кнопками ниже."
	return kb
}

// editDeleteKeyboard — кнопки "Изменить/Удалить" под строкой траты.
// В callback data кладём токен траты: prefix:uuid.
func editDeleteKeyboard(id uuid.UUID) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Изменить", fmt.Sprintf("edit:%s", id)),
			tgbotapi.NewInlineKeyboardButtonData("Удалить", fmt.Sprintf("delete:%s", id)),
		),
	)
}

func dateKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Сегодня", "date_today"),
			tgbotapi.NewInlineKeyboardButtonData("Другая дата", "date_other"),
		),
	)
}
