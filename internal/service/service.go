// Package service contains the bot's domain logic: user registration,
// transaction lifecycle and day/month aggregation. All operations follow the
// same contract: lookup and storage failures are logged here with their
// diagnostic context and converted into a clean nil/false result or a sentinel
// error from the domain package, so the conversational layer only ever has to
// render a confirmation or a generic retry prompt.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

// UserStore is the part of the Domain Store the services need for users.
// Implemented by repo.Users.
type UserStore interface {
	GetOrCreate(ctx context.Context, telegramID int64, name string, today time.Time) (domain.User, bool, error)
	Get(ctx context.Context, telegramID int64) (domain.User, error)
}

// TxStore is the part of the Domain Store the services need for transactions.
// Implemented by repo.Transactions.
type TxStore interface {
	Create(ctx context.Context, t domain.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
	UpdateNamePrice(ctx context.Context, id uuid.UUID, name string, price decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListRange(ctx context.Context, telegramID int64, from, to time.Time) ([]domain.Transaction, error)
	SumRange(ctx context.Context, telegramID int64, from, to time.Time) (decimal.Decimal, error)
}

// monthWindow возвращает границы текущего месяца: [первое число, первое число
// следующего месяца). Для декабря верхняя граница — 1 января следующего года.
func monthWindow(today time.Time) (time.Time, time.Time) {
	y, m, _ := today.Date()
	from := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	if m == time.December {
		return from, time.Date(y+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return from, time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
}

// dayWindow возвращает границы текущего дня: [сегодня, завтра).
func dayWindow(today time.Time) (time.Time, time.Time) {
	from := domain.DateOnly(today)
	return from, from.AddDate(0, 0, 1)
}
