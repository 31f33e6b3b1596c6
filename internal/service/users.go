package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

// Users выполняет регистрацию пользователя при первом контакте.
type Users struct {
	store UserStore
	now   func() time.Time
	log   zerolog.Logger
}

func NewUsers(store UserStore, now func() time.Time, log zerolog.Logger) *Users {
	if now == nil {
		now = time.Now
	}
	return &Users{store: store, now: now, log: log}
}

// GetOrCreate возвращает пользователя и флаг "создан впервые".
// Дата регистрации ставится один раз — в день первого сообщения.
// При ошибке хранилища возвращает nil: бот ответит общей просьбой повторить.
func (s *Users) GetOrCreate(ctx context.Context, telegramID int64, name string) (*domain.User, bool) {
	u, created, err := s.store.GetOrCreate(ctx, telegramID, name, s.now())
	if err != nil {
		s.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("не удалось создать или получить пользователя")
		return nil, false
	}
	if created {
		s.log.Info().Int64("telegram_id", telegramID).Str("name", u.Name).Msg("новый пользователь зарегистрирован")
	}
	return &u, created
}
