package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sellerstore/internal/domain"
	"sellerstore/internal/service"
)

// SellerService is the subset of the service layer the handler calls
type SellerService interface {
	GetSeller(ctx context.Context, id int) (*domain.Seller, error)
	ListSellers(ctx context.Context) ([]*domain.Seller, error)
	ListSellersByDepartment(ctx context.Context, departmentID int) ([]*domain.Seller, error)
	ListDepartments(ctx context.Context) ([]*domain.Department, error)
	CreateSeller(ctx context.Context, seller *domain.Seller) error
	UpdateSeller(ctx context.Context, seller *domain.Seller) error
	DeleteSeller(ctx context.Context, id int) error
}

// SellerHandler handles seller and department API requests
type SellerHandler struct {
	svc SellerService
	log zerolog.Logger
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(svc SellerService, log zerolog.Logger) *SellerHandler {
	return &SellerHandler{svc: svc, log: log}
}

// Register mounts the API routes on r
func (h *SellerHandler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/sellers", h.ListSellers)
	api.POST("/sellers", h.CreateSeller)
	api.GET("/sellers/:id", h.GetSeller)
	api.PUT("/sellers/:id", h.UpdateSeller)
	api.DELETE("/sellers/:id", h.DeleteSeller)
	api.GET("/departments", h.ListDepartments)
	api.GET("/departments/:id/sellers", h.ListSellersByDepartment)
}

// ListSellers returns all sellers
func (h *SellerHandler) ListSellers(c *gin.Context) {
	sellers, err := h.svc.ListSellers(c.Request.Context())
	if err != nil {
		h.writeError(c, "Failed to list sellers", err)
		return
	}
	c.JSON(http.StatusOK, newSellerResponses(sellers))
}

// GetSeller returns a single seller
func (h *SellerHandler) GetSeller(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	seller, err := h.svc.GetSeller(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "Failed to get seller", err)
		return
	}
	c.JSON(http.StatusOK, newSellerResponse(seller))
}

// CreateSeller stores a new seller and returns it with its assigned id
func (h *SellerHandler) CreateSeller(c *gin.Context) {
	seller, ok := h.bindSeller(c, 0)
	if !ok {
		return
	}

	if err := h.svc.CreateSeller(c.Request.Context(), seller); err != nil {
		h.writeError(c, "Failed to create seller", err)
		return
	}
	c.JSON(http.StatusCreated, newSellerResponse(seller))
}

// UpdateSeller overwrites an existing seller
func (h *SellerHandler) UpdateSeller(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	seller, ok := h.bindSeller(c, id)
	if !ok {
		return
	}

	if err := h.svc.UpdateSeller(c.Request.Context(), seller); err != nil {
		h.writeError(c, "Failed to update seller", err)
		return
	}

	// reload so the response carries the department name
	updated, err := h.svc.GetSeller(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "Failed to get seller", err)
		return
	}
	c.JSON(http.StatusOK, newSellerResponse(updated))
}

// DeleteSeller removes a seller
func (h *SellerHandler) DeleteSeller(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteSeller(c.Request.Context(), id); err != nil {
		h.writeError(c, "Failed to delete seller", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDepartments returns all departments
func (h *SellerHandler) ListDepartments(c *gin.Context) {
	deps, err := h.svc.ListDepartments(c.Request.Context())
	if err != nil {
		h.writeError(c, "Failed to list departments", err)
		return
	}
	out := make([]*DepartmentResponse, 0, len(deps))
	for _, d := range deps {
		out = append(out, newDepartmentResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

// ListSellersByDepartment returns the sellers of one department
func (h *SellerHandler) ListSellersByDepartment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	sellers, err := h.svc.ListSellersByDepartment(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "Failed to list sellers", err)
		return
	}
	c.JSON(http.StatusOK, newSellerResponses(sellers))
}

func (h *SellerHandler) pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid ID", Details: "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

func (h *SellerHandler) bindSeller(c *gin.Context, id int) (*domain.Seller, bool) {
	var req SellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return nil, false
	}

	seller, err := req.toDomain(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return nil, false
	}
	return seller, true
}

func (h *SellerHandler) writeError(c *gin.Context, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidSeller):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg(msg)
	}
	c.JSON(status, ErrorResponse{Error: msg, Details: err.Error()})
}
