package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	TelegramID int64
	Name       string
	CreatedAt  time.Time // дата регистрации, date-only
}

type Transaction struct {
	ID             uuid.UUID
	UserTelegramID int64
	Name           string
	Price          decimal.Decimal
	CreatedAt      time.Time // дата траты, date-only
}

// DateOnly обрезает время до календарной даты (UTC-полночь).
// В БД даты хранятся как DATE, сравнивать их нужно без времени суток.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
