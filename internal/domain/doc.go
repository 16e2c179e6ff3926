// Package domain defines the core domain types for the sellerstore system.
//
// # Core Types
//
// Seller represents a salesperson. Every Seller belongs to exactly one
// Department and carries its own contact data, birth date and base salary.
//
// Department represents an organizational unit. Departments are reference
// data: sellers point at them, many sellers may share one.
//
// # Dates
//
// Birth dates are calendar days. DateOf strips the clock and location from a
// time.Time so values compare at day granularity regardless of how the
// database driver returned them.
//
// # Design Principles
//
// - No database or transport dependencies
// - Validation rules expressed as struct tags, enforced by the service layer
package domain
