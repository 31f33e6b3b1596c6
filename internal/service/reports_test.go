package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

func newReports(today time.Time) (*Reports, *fakeStore) {
	st := newFakeStore()
	st.users[userID] = domain.User{TelegramID: userID, Name: "Степан", CreatedAt: date(2025, time.January, 1)}
	now := func() time.Time { return today }
	return NewReports(st, fakeTxStore{st}, now, zerolog.Nop()), st
}

func addTx(st *fakeStore, name, p string, d time.Time) {
	id := uuid.New()
	st.txs[id] = domain.Transaction{
		ID:             id,
		UserTelegramID: userID,
		Name:           name,
		Price:          price(p),
		CreatedAt:      d,
	}
}

func TestMonthWindow(t *testing.T) {
	from, to := monthWindow(date(2025, time.June, 17))
	if !from.Equal(date(2025, time.June, 1)) || !to.Equal(date(2025, time.July, 1)) {
		t.Fatalf("june window = [%v, %v)", from, to)
	}
}

func TestMonthWindowDecemberRollsToNextYear(t *testing.T) {
	from, to := monthWindow(date(2025, time.December, 31))
	if !from.Equal(date(2025, time.December, 1)) || !to.Equal(date(2026, time.January, 1)) {
		t.Fatalf("december window = [%v, %v)", from, to)
	}
}

func TestListMonthBoundaries(t *testing.T) {
	svc, st := newReports(date(2025, time.January, 20))
	addTx(st, "первое число", "10.00", date(2025, time.January, 1))
	addTx(st, "следующий месяц", "99.00", date(2025, time.February, 1))
	addTx(st, "прошлый год", "99.00", date(2024, time.December, 31))

	list, err := svc.ListMonth(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}
	if len(list) != 1 || list[0].Name != "первое число" {
		t.Fatalf("month window wrong, got %+v", list)
	}
}

func TestListTodayMatchesExactDate(t *testing.T) {
	svc, st := newReports(date(2025, time.January, 15))
	addTx(st, "сегодня", "3.50", date(2025, time.January, 15))
	addTx(st, "вчера", "5.00", date(2025, time.January, 14))

	list, err := svc.ListToday(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListToday: %v", err)
	}
	if len(list) != 1 || list[0].Name != "сегодня" {
		t.Fatalf("day window wrong, got %+v", list)
	}
}

// Сумма за месяц равна точной десятичной сумме списка за месяц.
func TestTotalMatchesListSum(t *testing.T) {
	svc, st := newReports(date(2025, time.January, 20))
	addTx(st, "кофе", "3.50", date(2025, time.January, 15))
	addTx(st, "обед", "450.99", date(2025, time.January, 16))
	addTx(st, "такси", "0.01", date(2025, time.January, 17))

	list, err := svc.ListMonth(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}
	want := decimal.Zero
	for _, tx := range list {
		want = want.Add(tx.Price)
	}

	total, err := svc.TotalMonth(context.Background(), userID)
	if err != nil {
		t.Fatalf("TotalMonth: %v", err)
	}
	if !total.Equal(want) {
		t.Fatalf("TotalMonth = %s, want %s", total, want)
	}
	if total.StringFixed(2) != "454.50" {
		t.Fatalf("TotalMonth = %s, want 454.50", total.StringFixed(2))
	}
}

func TestTotalIsExactZeroWhenEmpty(t *testing.T) {
	svc, _ := newReports(date(2025, time.February, 5))

	total, err := svc.TotalMonth(context.Background(), userID)
	if err != nil {
		t.Fatalf("TotalMonth: %v", err)
	}
	if !total.Equal(decimal.Zero) {
		t.Fatalf("TotalMonth = %s, want 0", total)
	}
	if total.StringFixed(2) != "0.00" {
		t.Fatalf("render = %s, want 0.00", total.StringFixed(2))
	}
}

func TestReportsUnknownUser(t *testing.T) {
	svc, _ := newReports(date(2025, time.January, 20))

	if _, err := svc.ListMonth(context.Background(), 777); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("ListMonth: got %v, want ErrUserNotFound", err)
	}
	if _, err := svc.TotalToday(context.Background(), 777); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("TotalToday: got %v, want ErrUserNotFound", err)
	}
}

// Сценарий: регистрация 10.01.2025, трата "coffee" 3.50 за 15.01.
// В январе — одна запись и сумма 3.50, в феврале — пусто и 0.00.
func TestMonthScenario(t *testing.T) {
	st := newFakeStore()
	st.users[userID] = domain.User{TelegramID: userID, Name: "Степан", CreatedAt: date(2025, time.January, 10)}

	txSvc := NewTransactions(st, fakeTxStore{st}, zerolog.Nop())
	if _, ok := txSvc.Create(context.Background(), userID, "coffee", price("3.50"), date(2025, time.January, 15)); !ok {
		t.Fatal("Create failed")
	}

	january := NewReports(st, fakeTxStore{st}, func() time.Time { return date(2025, time.January, 20) }, zerolog.Nop())
	list, err := january.ListMonth(context.Background(), userID)
	if err != nil || len(list) != 1 {
		t.Fatalf("january list: %v, %+v", err, list)
	}
	if list[0].Name != "coffee" || !list[0].Price.Equal(price("3.50")) {
		t.Fatalf("january entry: %+v", list[0])
	}
	if total, _ := january.TotalMonth(context.Background(), userID); total.StringFixed(2) != "3.50" {
		t.Fatalf("january total = %s", total.StringFixed(2))
	}

	february := NewReports(st, fakeTxStore{st}, func() time.Time { return date(2025, time.February, 20) }, zerolog.Nop())
	list, err = february.ListMonth(context.Background(), userID)
	if err != nil || len(list) != 0 {
		t.Fatalf("february list: %v, %+v", err, list)
	}
	if total, _ := february.TotalMonth(context.Background(), userID); total.StringFixed(2) != "0.00" {
		t.Fatalf("february total = %s", total.StringFixed(2))
	}
}
