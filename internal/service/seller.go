package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"sellerstore/internal/domain"
	"sellerstore/internal/repository"
)

var (
	// ErrNotFound reports a seller or department id with no stored row
	ErrNotFound = errors.New("not found")
	// ErrInvalidSeller reports input that fails validation
	ErrInvalidSeller = errors.New("invalid seller")
)

// SellerService provides business logic for seller operations
type SellerService struct {
	sellers     repository.SellerRepository
	departments repository.DepartmentRepository
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewSellerService creates a new seller service
func NewSellerService(sellers repository.SellerRepository, departments repository.DepartmentRepository, log zerolog.Logger) *SellerService {
	return &SellerService{
		sellers:     sellers,
		departments: departments,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		log:         log.With().Str("component", "seller_service").Logger(),
	}
}

// GetSeller retrieves a single seller by ID
func (s *SellerService) GetSeller(ctx context.Context, id int) (*domain.Seller, error) {
	seller, err := s.sellers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller %d: %w", id, err)
	}
	if seller == nil {
		return nil, fmt.Errorf("seller %d %w", id, ErrNotFound)
	}
	return seller, nil
}

// ListSellers returns all sellers ordered by name
func (s *SellerService) ListSellers(ctx context.Context) ([]*domain.Seller, error) {
	sellers, err := s.sellers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}
	return sellers, nil
}

// ListSellersByDepartment returns the sellers of one department ordered by name
func (s *SellerService) ListSellersByDepartment(ctx context.Context, departmentID int) ([]*domain.Seller, error) {
	dep, err := s.departments.FindByID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get department %d: %w", departmentID, err)
	}
	if dep == nil {
		return nil, fmt.Errorf("department %d %w", departmentID, ErrNotFound)
	}

	sellers, err := s.sellers.FindByDepartment(ctx, dep)
	if err != nil {
		return nil, fmt.Errorf("failed to list sellers of department %d: %w", departmentID, err)
	}
	return sellers, nil
}

// ListDepartments returns all departments ordered by name
func (s *SellerService) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	deps, err := s.departments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return deps, nil
}

// CreateSeller validates and stores a new seller, assigning seller.ID
func (s *SellerService) CreateSeller(ctx context.Context, seller *domain.Seller) error {
	if err := s.validateSeller(seller); err != nil {
		return err
	}
	if !seller.IsNew() {
		return fmt.Errorf("%w: new seller must not carry an id (got %d)", ErrInvalidSeller, seller.ID)
	}

	if err := s.sellers.Insert(ctx, seller); err != nil {
		s.log.Error().Err(err).Str("name", seller.Name).Msg("seller insert failed")
		return fmt.Errorf("failed to create seller: %w", err)
	}

	s.log.Info().
		Int("seller_id", seller.ID).
		Int("department_id", seller.DepartmentID()).
		Msg("seller created")
	return nil
}

// UpdateSeller validates and overwrites an existing seller
func (s *SellerService) UpdateSeller(ctx context.Context, seller *domain.Seller) error {
	if err := s.validateSeller(seller); err != nil {
		return err
	}
	if seller.IsNew() {
		return fmt.Errorf("%w: seller id is required for update", ErrInvalidSeller)
	}

	// The repository treats an update of a missing row as success;
	// callers of the service get a not-found instead.
	if _, err := s.GetSeller(ctx, seller.ID); err != nil {
		return err
	}

	if err := s.sellers.Update(ctx, seller); err != nil {
		s.log.Error().Err(err).Int("seller_id", seller.ID).Msg("seller update failed")
		return fmt.Errorf("failed to update seller %d: %w", seller.ID, err)
	}

	s.log.Info().Int("seller_id", seller.ID).Msg("seller updated")
	return nil
}

// DeleteSeller removes a seller. Deleting an unknown id succeeds.
func (s *SellerService) DeleteSeller(ctx context.Context, id int) error {
	if err := s.sellers.DeleteByID(ctx, id); err != nil {
		s.log.Error().Err(err).Int("seller_id", id).Msg("seller delete failed")
		return fmt.Errorf("failed to delete seller %d: %w", id, err)
	}

	s.log.Info().Int("seller_id", id).Msg("seller deleted")
	return nil
}

func (s *SellerService) validateSeller(seller *domain.Seller) error {
	if seller == nil {
		return fmt.Errorf("%w: seller is required", ErrInvalidSeller)
	}
	if err := s.validate.Struct(seller); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSeller, err)
	}
	if seller.BaseSalary.IsNegative() {
		return fmt.Errorf("%w: base salary must not be negative", ErrInvalidSeller)
	}
	return nil
}
