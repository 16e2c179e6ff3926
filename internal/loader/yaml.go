package loader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"sellerstore/internal/domain"
	"sellerstore/internal/repository"
)

// SeedYAML represents the seed file structure
type SeedYAML struct {
	Departments []DepartmentYAML `yaml:"departments"`
	Sellers     []SellerYAML     `yaml:"sellers"`
}

// DepartmentYAML represents a department in YAML format
type DepartmentYAML struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// SellerYAML represents a seller in YAML format. Salary is kept as text so
// no precision is lost on the way to decimal.
type SellerYAML struct {
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	BirthDate    string `yaml:"birth_date"`
	BaseSalary   string `yaml:"base_salary"`
	DepartmentID int    `yaml:"department_id"`
}

// Seed is a parsed seed file. Sellers reference entries of Departments.
type Seed struct {
	Departments []*domain.Department
	Sellers     []*domain.Seller
}

// ImportResult counts what Import wrote and skipped
type ImportResult struct {
	Departments        int
	Sellers            int
	SkippedDepartments int
	SkippedSellers     int
}

// LoadSeedFile loads a seed from a YAML file
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseSeed(data)
}

// ParseSeed parses a seed from YAML bytes
func ParseSeed(data []byte) (*Seed, error) {
	var y SeedYAML
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return convertYAMLToSeed(&y)
}

func convertYAMLToSeed(y *SeedYAML) (*Seed, error) {
	seed := &Seed{}
	byID := make(map[int]*domain.Department, len(y.Departments))

	for i, d := range y.Departments {
		if d.ID <= 0 {
			return nil, fmt.Errorf("department %d: id must be positive", i)
		}
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("department %d: name is required", d.ID)
		}
		if _, dup := byID[d.ID]; dup {
			return nil, fmt.Errorf("department %d: duplicate id", d.ID)
		}
		dep := domain.NewDepartment(d.ID, d.Name)
		byID[d.ID] = dep
		seed.Departments = append(seed.Departments, dep)
	}

	for i, s := range y.Sellers {
		dep, ok := byID[s.DepartmentID]
		if !ok {
			// the department may already exist in the store
			dep = &domain.Department{ID: s.DepartmentID}
		}

		birth, err := domain.ParseDate(s.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("seller %d (%s): birth_date: %w", i, s.Name, err)
		}

		salary := decimal.Zero
		if s.BaseSalary != "" {
			salary, err = decimal.NewFromString(s.BaseSalary)
			if err != nil {
				return nil, fmt.Errorf("seller %d (%s): base_salary: %w", i, s.Name, err)
			}
		}

		seed.Sellers = append(seed.Sellers, domain.NewSeller(s.Name, s.Email, birth, salary, dep))
	}

	return seed, nil
}

// Import writes the seed through the repositories, departments first.
// Departments whose id already exists and sellers whose email is already
// stored are skipped, so importing the same file twice is harmless.
func Import(ctx context.Context, departments repository.DepartmentRepository, sellers repository.SellerRepository, seed *Seed) (*ImportResult, error) {
	res := &ImportResult{}

	for _, dep := range seed.Departments {
		existing, err := departments.FindByID(ctx, dep.ID)
		if err != nil {
			return res, err
		}
		if existing != nil {
			res.SkippedDepartments++
			continue
		}
		if err := departments.Insert(ctx, dep); err != nil {
			return res, err
		}
		res.Departments++
	}

	stored, err := sellers.FindAll(ctx)
	if err != nil {
		return res, err
	}
	emails := make(map[string]bool, len(stored))
	for _, s := range stored {
		emails[strings.ToLower(s.Email)] = true
	}

	for _, s := range seed.Sellers {
		key := strings.ToLower(s.Email)
		if emails[key] {
			res.SkippedSellers++
			continue
		}
		if err := sellers.Insert(ctx, s); err != nil {
			return res, fmt.Errorf("seller %s: %w", s.Name, err)
		}
		emails[key] = true
		res.Sellers++
	}

	return res, nil
}

// Export reads every department and seller back into seed form
func Export(ctx context.Context, departments repository.DepartmentRepository, sellers repository.SellerRepository) (*Seed, error) {
	deps, err := departments.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	all, err := sellers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Seed{Departments: deps, Sellers: all}, nil
}

// ExportYAML exports a seed to YAML format
func ExportYAML(seed *Seed) ([]byte, error) {
	y := &SeedYAML{
		Departments: make([]DepartmentYAML, 0, len(seed.Departments)),
		Sellers:     make([]SellerYAML, 0, len(seed.Sellers)),
	}

	for _, d := range seed.Departments {
		y.Departments = append(y.Departments, DepartmentYAML{ID: d.ID, Name: d.Name})
	}

	for _, s := range seed.Sellers {
		y.Sellers = append(y.Sellers, SellerYAML{
			Name:         s.Name,
			Email:        s.Email,
			BirthDate:    s.BirthDate.Format(domain.DateLayout),
			BaseSalary:   s.BaseSalary.StringFixed(2),
			DepartmentID: s.DepartmentID(),
		})
	}

	return yaml.Marshal(y)
}
