// Package handler implements the HTTP API for sellerstore.
//
// Routes are served by gin and delegate to the service layer:
//
//	GET    /healthz
//	GET    /api/sellers
//	POST   /api/sellers
//	GET    /api/sellers/:id
//	PUT    /api/sellers/:id
//	DELETE /api/sellers/:id
//	GET    /api/departments
//	GET    /api/departments/:id/sellers
//
// Request and response bodies are JSON. Birth dates travel as YYYY-MM-DD and
// base salaries as decimal strings with two places.
//
// # Errors
//
// Validation failures map to 400, unknown ids to 404 and everything else,
// including store errors, to 500. Error bodies use ErrorResponse.
package handler
