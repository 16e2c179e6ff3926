package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewSeller(t *testing.T) {
	t.Run("truncates birth date to the day", func(t *testing.T) {
		birth := time.Date(1998, 1, 1, 17, 45, 12, 500, time.FixedZone("X", -3*3600))
		s := NewSeller("Bob", "bob@x.com", birth, decimal.NewFromInt(1000), NewDepartment(1, "Computers"))

		want := time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC)
		if !s.BirthDate.Equal(want) {
			t.Errorf("expected BirthDate %v, got %v", want, s.BirthDate)
		}
		if !s.IsNew() {
			t.Error("expected new seller to report IsNew")
		}
		if s.DepartmentID() != 1 {
			t.Errorf("expected DepartmentID 1, got %d", s.DepartmentID())
		}
	})

	t.Run("seller without department", func(t *testing.T) {
		s := &Seller{ID: 3}
		if s.IsNew() {
			t.Error("expected seller with id to not be new")
		}
		if s.DepartmentID() != 0 {
			t.Errorf("expected DepartmentID 0, got %d", s.DepartmentID())
		}
	})
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"1998-01-01", time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"2000-02-29", time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"01/01/1998", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSellerString(t *testing.T) {
	s := &Seller{
		ID:         7,
		Name:       "Alex",
		Email:      "alex@x.com",
		BirthDate:  time.Date(1990, 5, 6, 0, 0, 0, 0, time.UTC),
		BaseSalary: decimal.RequireFromString("2500.5"),
		Department: NewDepartment(2, "Electronics"),
	}

	want := "Seller[id=7, name=Alex, email=alex@x.com, birthDate=1990-05-06, baseSalary=2500.50, department=Department[id=2, name=Electronics]]"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
