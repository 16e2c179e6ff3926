package domain

import "fmt"

// Department is an organizational unit sellers belong to
type Department struct {
	ID   int    `json:"id" yaml:"id" validate:"gt=0"`
	Name string `json:"name" yaml:"name"`
}

// NewDepartment creates a department reference
func NewDepartment(id int, name string) *Department {
	return &Department{ID: id, Name: name}
}

func (d *Department) String() string {
	return fmt.Sprintf("Department[id=%d, name=%s]", d.ID, d.Name)
}
