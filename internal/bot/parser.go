package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

const dateLayout = "02.01.2006"

// ParsePrice разбирает цену как точный decimal: "120", "120.5", "120.50".
// Больше двух знаков после запятой не пропускаем — колонка DECIMAL(10,2).
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: цена %q", domain.ErrMalformedInput, s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("%w: цена %q точнее копеек", domain.ErrMalformedInput, s)
	}
	return d, nil
}

// ParseDate разбирает дату в виде ДД.ММ.ГГГГ. time.Parse отвергает
// несуществующие календарные даты вроде 31.06.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: дата %q", domain.ErrMalformedInput, s)
	}
	return domain.DateOnly(t), nil
}

func formatPrice(d decimal.Decimal) string { return d.StringFixed(2) }

func formatDate(t time.Time) string { return t.Format(dateLayout) }
