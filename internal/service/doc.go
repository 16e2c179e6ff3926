// Package service implements business logic for the sellerstore application.
//
// This package sits between the HTTP handlers and the repository layer. It
// validates sellers before they reach the database, turns a missing seller
// or department into ErrNotFound, and logs every write.
//
// # Services
//
// SellerService manages sellers and exposes the department list used to
// browse them.
//
// # Validation
//
// Validation rules live as validate tags on the domain structs and are
// enforced with go-playground/validator. Failures wrap ErrInvalidSeller.
package service
