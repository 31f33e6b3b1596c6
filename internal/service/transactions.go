package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

// Transactions управляет жизненным циклом одной траты: создание,
// редактирование, удаление.
type Transactions struct {
	users UserStore
	store TxStore
	log   zerolog.Logger
}

func NewTransactions(users UserStore, store TxStore, log zerolog.Logger) *Transactions {
	return &Transactions{users: users, store: store, log: log}
}

// Create проверяет владельца и дату, генерирует токен и сохраняет трату.
// Возвращает название созданной траты для подтверждения пользователю.
// Дата не может быть раньше даты регистрации владельца.
func (s *Transactions) Create(ctx context.Context, telegramID int64, name string, price decimal.Decimal, date time.Time) (string, bool) {
	user, err := s.users.Get(ctx, telegramID)
	if err != nil {
		s.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("создание траты: пользователь не найден")
		return "", false
	}

	date = domain.DateOnly(date)
	if date.Before(user.CreatedAt) {
		s.log.Error().
			Int64("telegram_id", telegramID).
			Time("date", date).
			Time("registered_at", user.CreatedAt).
			Msg("создание траты: дата раньше даты регистрации")
		return "", false
	}

	t := domain.Transaction{
		ID:             uuid.New(),
		UserTelegramID: telegramID,
		Name:           name,
		Price:          price,
		CreatedAt:      date,
	}
	if err := s.store.Create(ctx, t); err != nil {
		s.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("не удалось сохранить трату")
		return "", false
	}

	s.log.Info().Str("id", t.ID.String()).Str("name", t.Name).Msg("трата добавлена")
	return t.Name, true
}

// Edit перезаписывает название и цену. Дата и токен остаются прежними.
func (s *Transactions) Edit(ctx context.Context, id uuid.UUID, name string, price decimal.Decimal) bool {
	if err := s.store.UpdateNamePrice(ctx, id, name, price); err != nil {
		s.log.Error().Err(err).Str("id", id.String()).Msg("не удалось изменить трату")
		return false
	}
	s.log.Info().Str("id", id.String()).Str("name", name).Msg("трата изменена")
	return true
}

// Delete удаляет трату навсегда.
func (s *Transactions) Delete(ctx context.Context, id uuid.UUID) bool {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("id", id.String()).Msg("не удалось удалить трату")
		return false
	}
	s.log.Info().Str("id", id.String()).Msg("трата удалена")
	return true
}
