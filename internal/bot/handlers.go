package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
	"github.com/StpaPSBB/TBotFinancial/internal/service"
)

const msgRetry = "Вы ввели неправильные данные, попробуйте еще раз."

type Handler struct {
	api *tgbotapi.BotAPI

	users   *service.Users
	txs     *service.Transactions
	reports *service.Reports

	sessions *sessions
	now      func() time.Time
	log      zerolog.Logger
}

func NewHandler(api *tgbotapi.BotAPI, users *service.Users, txs *service.Transactions, reports *service.Reports, log zerolog.Logger) *Handler {
	return &Handler{
		api:      api,
		users:    users,
		txs:      txs,
		reports:  reports,
		sessions: newSessions(),
		now:      time.Now,
		log:      log,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		h.handleCallback(ctx, upd.CallbackQuery)
		return
	}

	if upd.Message == nil {
		return
	}

	msg := upd.Message
	// работаем только в личке
	if !msg.Chat.IsPrivate() {
		return
	}

	// Регистрация при первом контакте: upsert на каждое сообщение,
	// дата регистрации ставится только при создании строки.
	user, created := h.users.GetOrCreate(ctx, msg.From.ID, displayName(msg.From))
	if user == nil {
		h.reply(msg.Chat.ID, msgRetry)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		h.handleStart(msg.Chat.ID, user.Name, created)
	case strings.HasPrefix(text, "/help"):
		h.reply(msg.Chat.ID, "Я бот для учета личных расходов.\nТы можешь добавлять новые траты за день и получить список трат за текущий месяц.")
	case text == btnAdd:
		h.step(ctx, msg.Chat.ID, msg.From.ID, event{Kind: evStartAdd})
	case text == btnMonth:
		h.showTransactions(ctx, msg.Chat.ID, msg.From.ID, true)
	case text == btnToday:
		h.showTransactions(ctx, msg.Chat.ID, msg.From.ID, false)
	default:
		h.step(ctx, msg.Chat.ID, msg.From.ID, event{Kind: evText, Text: text})
	}
}

func (h *Handler) handleStart(chatID int64, name string, created bool) {
	var text string
	if created {
		text = fmt.Sprintf("Привет, %s! Я бот для учета финансов. Для помощи в моей работе используй команду: /help.", name)
	} else {
		text = fmt.Sprintf("Привет, %s! Мы уже знакомы!", name)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainKeyboard()
	if _, err := h.api.Send(msg); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("не удалось отправить приветствие")
	}
}

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	// обязательно отвечаем Telegram
	defer h.api.Request(tgbotapi.NewCallback(q.ID, ""))

	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID

	switch {
	case q.Data == "date_today":
		h.step(ctx, chatID, q.From.ID, event{Kind: evPickToday})
		return
	case q.Data == "date_other":
		h.step(ctx, chatID, q.From.ID, event{Kind: evPickOther})
		return
	}

	prefix, raw, ok := strings.Cut(q.Data, ":")
	if !ok {
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.log.Error().Str("data", q.Data).Msg("callback с некорректным токеном траты")
		return
	}

	switch prefix {
	case "edit":
		h.step(ctx, chatID, q.From.ID, event{Kind: evStartEdit, TxID: id})
	case "delete":
		if h.txs.Delete(ctx, id) {
			h.editText(chatID, q.Message.MessageID, "Трата удалена.")
		} else {
			h.editText(chatID, q.Message.MessageID, msgRetry)
		}
	}
}

// step прогоняет одно событие через автомат диалога и исполняет действие.
func (h *Handler) step(ctx context.Context, chatID, telegramID int64, ev event) {
	next, act := advance(h.sessions.get(telegramID), ev)
	h.sessions.set(telegramID, next)

	switch act.Kind {
	case actHint:
		h.reply(chatID, "Воспользуйтесь кнопками ниже.")
	case actPromptName:
		h.reply(chatID, "Введите название траты.")
	case actPromptPrice:
		h.reply(chatID, "Введите цену траты в виде '120.00'.")
	case actPromptDate:
		msg := tgbotapi.NewMessage(chatID, "Выберите дату траты.")
		msg.ReplyMarkup = dateKeyboard()
		if _, err := h.api.Send(msg); err != nil {
			h.log.Error().Err(err).Int64("chat_id", chatID).Msg("не удалось отправить выбор даты")
		}
	case actPromptDateText:
		h.reply(chatID, "Введите дату в формате ДД.ММ.ГГГГ.")
	case actCommitCreate:
		h.commitCreate(ctx, chatID, telegramID, act)
	case actCommitEdit:
		h.commitEdit(ctx, chatID, act)
	}
}

// commitCreate — финал диалога добавления: парсим накопленные поля и
// сохраняем. Любая ошибка превращается в общий ответ-повтор, диалог уже сброшен.
func (h *Handler) commitCreate(ctx context.Context, chatID, telegramID int64, act action) {
	price, err := ParsePrice(act.Price)
	if err != nil {
		h.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("добавление траты: не разобрана цена")
		h.reply(chatID, msgRetry)
		return
	}

	date := h.now()
	if !act.Today {
		if date, err = ParseDate(act.Date); err != nil {
			h.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("добавление траты: не разобрана дата")
			h.reply(chatID, msgRetry)
			return
		}
	}

	name, ok := h.txs.Create(ctx, telegramID, act.Name, price, date)
	if !ok {
		h.reply(chatID, msgRetry)
		return
	}
	h.reply(chatID, fmt.Sprintf("Трата '%s' успешно добавлена в ваши траты.", name))
}

func (h *Handler) commitEdit(ctx context.Context, chatID int64, act action) {
	price, err := ParsePrice(act.Price)
	if err != nil {
		h.log.Error().Err(err).Str("id", act.TxID.String()).Msg("изменение траты: не разобрана цена")
		h.reply(chatID, msgRetry)
		return
	}
	if !h.txs.Edit(ctx, act.TxID, act.Name, price) {
		h.reply(chatID, msgRetry)
		return
	}
	h.reply(chatID, "Трата успешно изменена.")
}

// showTransactions выводит список трат за месяц или за сегодня: по строке на
// трату с кнопками "Изменить/Удалить", затем сообщение с общей суммой.
func (h *Handler) showTransactions(ctx context.Context, chatID, telegramID int64, month bool) {
	var (
		err   error
		list  []listEntry
		total string
	)
	if month {
		list, total, err = h.collect(ctx, telegramID, h.reports.ListMonth, h.reports.TotalMonth)
	} else {
		list, total, err = h.collect(ctx, telegramID, h.reports.ListToday, h.reports.TotalToday)
	}
	if err != nil {
		h.reply(chatID, msgRetry)
		return
	}

	if len(list) == 0 {
		if month {
			h.reply(chatID, "Вы пока не добавляли никаких трат в этом месяце.")
		} else {
			h.reply(chatID, "Вы пока не добавляли никаких трат сегодня.")
		}
		return
	}

	for _, e := range list {
		msg := tgbotapi.NewMessage(chatID, e.text)
		msg.ReplyMarkup = e.keyboard
		if _, err := h.api.Send(msg); err != nil {
			h.log.Error().Err(err).Int64("chat_id", chatID).Msg("не удалось отправить строку траты")
		}
	}

	if month {
		h.reply(chatID, fmt.Sprintf("Общие траты за месяц - %s рублей.", total))
	} else {
		h.reply(chatID, fmt.Sprintf("Общие траты за сегодня - %s рублей.", total))
	}
}

type listEntry struct {
	text     string
	keyboard tgbotapi.InlineKeyboardMarkup
}

type (
	listFn  func(context.Context, int64) ([]domain.Transaction, error)
	totalFn func(context.Context, int64) (decimal.Decimal, error)
)

func (h *Handler) collect(ctx context.Context, telegramID int64, list listFn, total totalFn) ([]listEntry, string, error) {
	txs, err := list(ctx, telegramID)
	if err != nil {
		return nil, "", err
	}
	sum, err := total(ctx, telegramID)
	if err != nil {
		return nil, "", err
	}

	out := make([]listEntry, 0, len(txs))
	for i, t := range txs {
		out = append(out, listEntry{
			text: fmt.Sprintf("%d. Трата: %s. Цена: %s рублей. Дата: %s",
				i+1, t.Name, formatPrice(t.Price), formatDate(t.CreatedAt)),
			keyboard: editDeleteKeyboard(t.ID),
		})
	}
	return out, formatPrice(sum), nil
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("не удалось отправить сообщение")
	}
}

func (h *Handler) editText(chatID int64, messageID int, text string) {
	if _, err := h.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("не удалось изменить сообщение")
	}
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return "unknown"
	}
	if name := strings.TrimSpace(u.FirstName); name != "" {
		return name
	}
	if u.UserName != "" {
		return u.UserName
	}
	return "unknown"
}
