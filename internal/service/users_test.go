package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

func TestGetOrCreateUser(t *testing.T) {
	st := newFakeStore()
	svc := NewUsers(st, func() time.Time { return date(2025, time.January, 10) }, zerolog.Nop())

	u, created := svc.GetOrCreate(context.Background(), userID, "Степан")
	if u == nil || !created {
		t.Fatalf("first contact must create: user=%v created=%v", u, created)
	}
	if !u.CreatedAt.Equal(date(2025, time.January, 10)) {
		t.Fatalf("registration date = %v, want first contact day", u.CreatedAt)
	}

	// повторный контакт: created=false, дата регистрации не меняется
	later := NewUsers(st, func() time.Time { return date(2025, time.March, 1) }, zerolog.Nop())
	u2, created := later.GetOrCreate(context.Background(), userID, "Степан")
	if u2 == nil || created {
		t.Fatalf("second contact must not create: user=%v created=%v", u2, created)
	}
	if !u2.CreatedAt.Equal(date(2025, time.January, 10)) {
		t.Fatalf("registration date changed to %v", u2.CreatedAt)
	}
	if len(st.users) != 1 {
		t.Fatalf("expected single user row, got %d", len(st.users))
	}
}

func TestGetOrCreateFailsSoft(t *testing.T) {
	st := newFakeStore()
	st.fail = domain.ErrUserNotFound // любой сбой хранилища
	svc := NewUsers(st, nil, zerolog.Nop())

	if u, created := svc.GetOrCreate(context.Background(), userID, "Степан"); u != nil || created {
		t.Fatalf("storage failure must yield nil: user=%v created=%v", u, created)
	}
}
