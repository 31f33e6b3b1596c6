package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

type Transactions struct{ pool *pgxpool.Pool }

func NewTransactions(p *pgxpool.Pool) *Transactions { return &Transactions{pool: p} }

func (r *Transactions) Create(ctx context.Context, t domain.Transaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions(id, user_telegram_id, name, price, created_at)
		VALUES($1,$2,$3,$4,$5)
	`, t.ID, t.UserTelegramID, t.Name, t.Price, domain.DateOnly(t.CreatedAt))
	return err
}

func (r *Transactions) Get(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	var t domain.Transaction
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_telegram_id, name, price, created_at
		FROM transactions
		WHERE id=$1
	`, id).Scan(&t.ID, &t.UserTelegramID, &t.Name, &t.Price, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}
	if err != nil {
		return domain.Transaction{}, err
	}
	t.CreatedAt = domain.DateOnly(t.CreatedAt)
	return t, nil
}

// UpdateNamePrice меняет название и цену. Дата и id траты неизменяемы.
func (r *Transactions) UpdateNamePrice(ctx context.Context, id uuid.UUID, name string, price decimal.Decimal) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions
		SET name=$2, price=$3
		WHERE id=$1
	`, id, name, price)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *Transactions) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// ListRange возвращает траты пользователя с датой в [from, to).
// Порядок: по дате, при равенстве — по id, чтобы выдача была стабильной.
func (r *Transactions) ListRange(ctx context.Context, telegramID int64, from, to time.Time) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_telegram_id, name, price, created_at
		FROM transactions
		WHERE user_telegram_id=$1
		  AND created_at >= $2
		  AND created_at < $3
		ORDER BY created_at, id
	`, telegramID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if e := rows.Scan(&t.ID, &t.UserTelegramID, &t.Name, &t.Price, &t.CreatedAt); e != nil {
			return nil, e
		}
		t.CreatedAt = domain.DateOnly(t.CreatedAt)
		out = append(out, t)
	}
	return out, rows.Err()
}

// SumRange считает сумму цен за [from, to). Пустое окно даёт ровно 0, не NULL.
func (r *Transactions) SumRange(ctx context.Context, telegramID int64, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(price), 0)
		FROM transactions
		WHERE user_telegram_id=$1
		  AND created_at >= $2
		  AND created_at < $3
	`, telegramID, domain.DateOnly(from), domain.DateOnly(to)).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
