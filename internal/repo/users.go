package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

type Users struct{ pool *pgxpool.Pool }

func NewUsers(p *pgxpool.Pool) *Users { return &Users{pool: p} }

// GetOrCreate регистрирует пользователя при первом контакте.
// INSERT .. ON CONFLICT DO NOTHING атомарен: при гонке двух первых сообщений
// строка создаётся ровно один раз, created=true получает только один вызов.
func (r *Users) GetOrCreate(ctx context.Context, telegramID int64, name string, today time.Time) (domain.User, bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO users(telegram_id, name, created_at)
		VALUES($1,$2,$3)
		ON CONFLICT (telegram_id) DO NOTHING
	`, telegramID, name, domain.DateOnly(today))
	if err != nil {
		return domain.User{}, false, err
	}
	created := tag.RowsAffected() == 1

	u, err := r.Get(ctx, telegramID)
	if err != nil {
		return domain.User{}, false, err
	}
	return u, created, nil
}

func (r *Users) Get(ctx context.Context, telegramID int64) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT telegram_id, name, created_at
		FROM users
		WHERE telegram_id=$1
	`, telegramID).Scan(&u.TelegramID, &u.Name, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.CreatedAt = domain.DateOnly(u.CreatedAt)
	return u, nil
}

// Delete удаляет пользователя; транзакции уходят каскадом (ON DELETE CASCADE).
func (r *Users) Delete(ctx context.Context, telegramID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE telegram_id=$1`, telegramID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
