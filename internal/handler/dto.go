package handler

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sellerstore/internal/domain"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SellerRequest is the body of create and update calls
type SellerRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	BirthDate    string          `json:"birth_date"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	DepartmentID int             `json:"department_id"`
}

// toDomain builds the seller described by the request. Field rules are
// checked by the service; only the date format is checked here.
func (r *SellerRequest) toDomain(id int) (*domain.Seller, error) {
	birth, err := domain.ParseDate(r.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("birth_date: %w", err)
	}
	s := domain.NewSeller(r.Name, r.Email, birth, r.BaseSalary, &domain.Department{ID: r.DepartmentID})
	s.ID = id
	return s, nil
}

// DepartmentResponse is the JSON form of a department
type DepartmentResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SellerResponse is the JSON form of a seller
type SellerResponse struct {
	ID         int                 `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	BirthDate  string              `json:"birth_date"`
	BaseSalary string              `json:"base_salary"`
	Department *DepartmentResponse `json:"department"`
}

func newDepartmentResponse(d *domain.Department) *DepartmentResponse {
	if d == nil {
		return nil
	}
	return &DepartmentResponse{ID: d.ID, Name: d.Name}
}

func newSellerResponse(s *domain.Seller) SellerResponse {
	return SellerResponse{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		BirthDate:  s.BirthDate.Format(domain.DateLayout),
		BaseSalary: s.BaseSalary.StringFixed(2),
		Department: newDepartmentResponse(s.Department),
	}
}

func newSellerResponses(sellers []*domain.Seller) []SellerResponse {
	out := make([]SellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, newSellerResponse(s))
	}
	return out
}
