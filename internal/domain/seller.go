package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the textual form of a birth date
const DateLayout = "2006-01-02"

// Seller represents a salesperson owned by one department
type Seller struct {
	ID         int             `json:"id"`
	Name       string          `json:"name" validate:"required"`
	Email      string          `json:"email" validate:"required,email"`
	BirthDate  time.Time       `json:"birth_date" validate:"required"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Department *Department     `json:"department" validate:"required"`
}

// NewSeller creates a seller that has not been persisted yet
func NewSeller(name, email string, birthDate time.Time, baseSalary decimal.Decimal, dep *Department) *Seller {
	return &Seller{
		Name:       name,
		Email:      email,
		BirthDate:  DateOf(birthDate),
		BaseSalary: baseSalary,
		Department: dep,
	}
}

// IsNew reports whether the seller still lacks a store-assigned identifier
func (s *Seller) IsNew() bool {
	return s.ID == 0
}

// DepartmentID returns the owning department's id, or 0 when unset
func (s *Seller) DepartmentID() int {
	if s.Department == nil {
		return 0
	}
	return s.Department.ID
}

func (s *Seller) String() string {
	return fmt.Sprintf("Seller[id=%d, name=%s, email=%s, birthDate=%s, baseSalary=%s, department=%v]",
		s.ID, s.Name, s.Email, s.BirthDate.Format(DateLayout), s.BaseSalary.StringFixed(2), s.Department)
}

// DateOf truncates t to its calendar day in UTC.
// The calendar day is taken in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD birth date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
