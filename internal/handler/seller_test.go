package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerstore/internal/domain"
	"sellerstore/internal/repository"
	"sellerstore/internal/repository/sqlstore"
	"sellerstore/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Departments().Insert(ctx, &domain.Department{ID: 1, Name: "Computers"}))
	require.NoError(t, db.Departments().Insert(ctx, &domain.Department{ID: 2, Name: "Electronics"}))

	svc := service.NewSellerService(db.Sellers(), db.Departments(), zerolog.Nop())
	return NewRouter(NewSellerHandler(svc, zerolog.Nop()), zerolog.Nop())
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSeller(t *testing.T, r http.Handler, name string, depID int) SellerResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/sellers", map[string]any{
		"name":          name,
		"email":         "seller@x.com",
		"birth_date":    "1998-01-01",
		"base_salary":   "1000.0",
		"department_id": depID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out SellerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateAndGetSeller(t *testing.T) {
	r := setupRouter(t)

	created := createSeller(t, r, "Bob", 1)
	require.NotZero(t, created.ID)
	assert.Equal(t, "1000.00", created.BaseSalary)

	w := doJSON(t, r, http.MethodGet, "/api/sellers/"+strconv.Itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got SellerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Bob", got.Name)
	assert.Equal(t, "1998-01-01", got.BirthDate)
	require.NotNil(t, got.Department)
	assert.Equal(t, 1, got.Department.ID)
	assert.Equal(t, "Computers", got.Department.Name)
}

func TestCreateSellerRejectsBadInput(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"malformed json", "{"},
		{"bad date", map[string]any{"name": "Bob", "email": "bob@x.com", "birth_date": "01/01/1998", "base_salary": "1", "department_id": 1}},
		{"bad email", map[string]any{"name": "Bob", "email": "bob", "birth_date": "1998-01-01", "base_salary": "1", "department_id": 1}},
		{"no department", map[string]any{"name": "Bob", "email": "bob@x.com", "birth_date": "1998-01-01", "base_salary": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/sellers", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestCreateSellerUnknownDepartment(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/sellers", map[string]any{
		"name": "Bob", "email": "bob@x.com", "birth_date": "1998-01-01", "base_salary": "1", "department_id": 9,
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetSellerErrors(t *testing.T) {
	r := setupRouter(t)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/api/sellers/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/sellers/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/api/sellers/0", nil).Code)
}

func TestListSellers(t *testing.T) {
	r := setupRouter(t)
	createSeller(t, r, "Maria", 2)
	createSeller(t, r, "Alex", 1)
	createSeller(t, r, "Donald", 2)

	w := doJSON(t, r, http.MethodGet, "/api/sellers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []SellerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "Alex", out[0].Name)
	assert.Equal(t, "Donald", out[1].Name)
	assert.Equal(t, "Maria", out[2].Name)
}

func TestListSellersEmpty(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/sellers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdateSeller(t *testing.T) {
	r := setupRouter(t)
	created := createSeller(t, r, "Bob", 1)

	w := doJSON(t, r, http.MethodPut, "/api/sellers/"+strconv.Itoa(created.ID), map[string]any{
		"name": "Robert", "email": "robert@x.com", "birth_date": "1990-06-15", "base_salary": 2500.5, "department_id": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got SellerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Robert", got.Name)
	assert.Equal(t, "1990-06-15", got.BirthDate)
	assert.Equal(t, "2500.50", got.BaseSalary)
	assert.Equal(t, "Electronics", got.Department.Name)

	w = doJSON(t, r, http.MethodPut, "/api/sellers/4040", map[string]any{
		"name": "X", "email": "x@x.com", "birth_date": "1990-06-15", "base_salary": "1", "department_id": 2,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSeller(t *testing.T) {
	r := setupRouter(t)
	created := createSeller(t, r, "Bob", 1)

	w := doJSON(t, r, http.MethodDelete, "/api/sellers/"+strconv.Itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/api/sellers/"+strconv.Itoa(created.ID), nil).Code)

	// deleting again is still a success
	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodDelete, "/api/sellers/"+strconv.Itoa(created.ID), nil).Code)
}

func TestDepartmentRoutes(t *testing.T) {
	r := setupRouter(t)
	createSeller(t, r, "Maria", 2)
	createSeller(t, r, "Alex", 1)
	createSeller(t, r, "Anna", 2)

	w := doJSON(t, r, http.MethodGet, "/api/departments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Computers"},{"id":2,"name":"Electronics"}]`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/departments/2/sellers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out []SellerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Anna", out[0].Name)
	assert.Equal(t, "Maria", out[1].Name)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/api/departments/7/sellers", nil).Code)
}

// brokenService fails ListSellers with a store error
type brokenService struct {
	SellerService
}

func (brokenService) ListSellers(context.Context) ([]*domain.Seller, error) {
	return nil, repository.NewStoreError("find all sellers", errors.New("disk I/O error"))
}

func TestStoreErrorIsInternal(t *testing.T) {
	r := NewRouter(NewSellerHandler(brokenService{}, zerolog.Nop()), zerolog.Nop())

	w := doJSON(t, r, http.MethodGet, "/api/sellers", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to list sellers", body.Error)
	assert.Contains(t, body.Details, "disk I/O error")
}
