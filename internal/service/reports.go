package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

// Reports отдаёт списки трат и суммы за текущий день и месяц.
// Окна считаются от "сегодня" в момент вызова; часы инжектируются для тестов.
type Reports struct {
	users UserStore
	store TxStore
	now   func() time.Time
	log   zerolog.Logger
}

func NewReports(users UserStore, store TxStore, now func() time.Time, log zerolog.Logger) *Reports {
	if now == nil {
		now = time.Now
	}
	return &Reports{users: users, store: store, now: now, log: log}
}

// ListMonth возвращает траты за текущий календарный месяц,
// упорядоченные по дате (токен — стабильный tiebreaker).
func (s *Reports) ListMonth(ctx context.Context, telegramID int64) ([]domain.Transaction, error) {
	from, to := monthWindow(s.now())
	return s.list(ctx, telegramID, from, to)
}

// ListToday возвращает траты с сегодняшней датой.
func (s *Reports) ListToday(ctx context.Context, telegramID int64) ([]domain.Transaction, error) {
	from, to := dayWindow(s.now())
	return s.list(ctx, telegramID, from, to)
}

// TotalMonth считает точную сумму трат за текущий месяц; 0.00 если трат нет.
func (s *Reports) TotalMonth(ctx context.Context, telegramID int64) (decimal.Decimal, error) {
	from, to := monthWindow(s.now())
	return s.total(ctx, telegramID, from, to)
}

// TotalToday считает точную сумму трат за сегодня; 0.00 если трат нет.
func (s *Reports) TotalToday(ctx context.Context, telegramID int64) (decimal.Decimal, error) {
	from, to := dayWindow(s.now())
	return s.total(ctx, telegramID, from, to)
}

func (s *Reports) list(ctx context.Context, telegramID int64, from, to time.Time) ([]domain.Transaction, error) {
	if _, err := s.users.Get(ctx, telegramID); err != nil {
		s.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("список трат: пользователь не найден")
		return nil, err
	}
	list, err := s.store.ListRange(ctx, telegramID, from, to)
	if err != nil {
		s.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("не удалось получить список трат")
		return nil, err
	}
	return list, nil
}

func (s *Reports) total(ctx context.Context, telegramID int64, from, to time.Time) (decimal.Decimal, error) {
	if _, err := s.users.Get(ctx, telegramID); err != nil {
		s.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("сумма трат: пользователь не найден")
		return decimal.Zero, err
	}
	total, err := s.store.SumRange(ctx, telegramID, from, to)
	if err != nil {
		s.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("не удалось посчитать сумму трат")
		return decimal.Zero, err
	}
	return total, nil
}
