package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    decimal.Decimal
		wantErr bool
	}{
		{name: "integer", input: "1000", want: decimal.NewFromInt(1000)},
		{name: "fractional", input: " 12.34 ", want: decimal.RequireFromString("12.34")},
		{name: "zero allowed", input: "0", want: decimal.Zero},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "ten", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "too large", input: "1000000000001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("expected ErrInvalidAmount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %s", d)
	}

	for _, bad := range []string{"", "01/09/2024", "2024-13-01", "2024-02-30"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDate(%q): expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestParsePercent(t *testing.T) {
	t.Parallel()

	if p, err := ParsePercent(""); err != nil || !p.IsZero() {
		t.Fatalf("expected empty percent to default to 0, got %s err=%v", p, err)
	}

	if p, err := ParsePercent("33.5"); err != nil || !p.Equal(decimal.RequireFromString("33.5")) {
		t.Fatalf("expected 33.5, got %s err=%v", p, err)
	}

	for _, bad := range []string{"abc", "-1", "100.01"} {
		if _, err := ParsePercent(bad); !errors.Is(err, ErrInvalidAllocation) {
			t.Fatalf("ParsePercent(%q): expected ErrInvalidAllocation, got %v", bad, err)
		}
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	if k, err := ParseKind("income"); err != nil || k != KindIncome {
		t.Fatalf("expected income, got %s err=%v", k, err)
	}
	if k, err := ParseKind(" Expense "); err != nil || k != KindExpense {
		t.Fatalf("expected expense, got %s err=%v", k, err)
	}
	if _, err := ParseKind("refund"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	if err := ValidateCategory("Food"); err != nil {
		t.Fatalf("expected valid category, got %v", err)
	}

	if err := ValidateCategory("   "); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}

	if err := ValidateCategory(strings.Repeat("a", MaxCategoryLength+1)); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory for long category, got %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	if err := ValidateDescription(""); err != nil {
		t.Fatalf("expected empty description to be allowed, got %v", err)
	}

	if err := ValidateDescription(strings.Repeat("d", MaxDescriptionLength+1)); !errors.Is(err, ErrInvalidDescription) {
		t.Fatalf("expected ErrInvalidDescription, got %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail("USER@example.com"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}

	if err := ValidateEmail("invalid-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("StrongPass1"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}

	if err := ValidatePassword("short1A"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak for short password, got %v", err)
	}

	if err := ValidatePassword(strings.Repeat("A", MaxPasswordLength+1)); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak for overly long password, got %v", err)
	}

	if err := ValidatePassword("alllowercase1"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak for missing upper case, got %v", err)
	}

	if err := ValidatePassword("NoDigitsHere"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak for missing digits, got %v", err)
	}
}
