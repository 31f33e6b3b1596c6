package bot

import (
	"errors"
	"testing"
	"time"

	"github.com/StpaPSBB/TBotFinancial/internal/domain"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"120.00", "120.00", true},
		{"120", "120.00", true},
		{"120.5", "120.50", true},
		{" 3,50 ", "3.50", true},
		{"0", "0.00", true},
		{"120.555", "", false},
		{"сто рублей", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParsePrice(c.in)
			if c.ok {
				if err != nil {
					t.Fatalf("ParsePrice(%q): unexpected error %v", c.in, err)
				}
				if got.StringFixed(2) != c.want {
					t.Fatalf("ParsePrice(%q) = %s, want %s", c.in, got.StringFixed(2), c.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("ParsePrice(%q): expected error, got %s", c.in, got)
			}
			if !errors.Is(err, domain.ErrMalformedInput) {
				t.Fatalf("ParsePrice(%q): error %v is not ErrMalformedInput", c.in, err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("15.01.2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}
}

func TestParseDateRejectsImpossibleCalendarDates(t *testing.T) {
	for _, in := range []string{"31.06.2025", "30.02.2025", "32.01.2025", "15.13.2025", "2025-01-15", "15.1.25", "мусор"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseDate(in); err == nil {
				t.Fatalf("ParseDate(%q): expected error", in)
			} else if !errors.Is(err, domain.ErrMalformedInput) {
				t.Fatalf("ParseDate(%q): error %v is not ErrMalformedInput", in, err)
			}
		})
	}
}
