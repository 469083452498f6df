package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/productadmin/internal/config"
	"github.com/jafarshop/productadmin/internal/domain"
	"github.com/jafarshop/productadmin/internal/service"
	apperrors "github.com/jafarshop/productadmin/pkg/errors"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, after string) service.ListResult {
	args := m.Called(ctx, after)
	return args.Get(0).(service.ListResult)
}

func (m *mockService) Update(ctx context.Context, params service.UpdateParams) (*domain.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func newTestRouter(t *testing.T, svc *mockService, adminKeyHash string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Environment: "test",
		API:         config.APIConfig{AdminKeyHash: adminKeyHash},
	}
	return NewRouter(cfg, svc, zap.NewNop())
}

func doJSON(router *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

func TestHealth(t *testing.T) {
	router := newTestRouter(t, new(mockService), "")
	w := doJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListProductsOK(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, "").Return(service.ListResult{
		Outcome: service.ListOK,
		Products: []domain.Product{
			{ID: "gid://shopify/Product/1", Title: "Blue Mug", Status: domain.ProductStatusActive},
		},
		PageInfo: domain.PageInfo{HasNextPage: true, EndCursor: strPtr("cursor-1")},
	})

	router := newTestRouter(t, svc, "")
	w := doJSON(router, http.MethodGet, "/api/products", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Products []domain.Product `json:"products"`
		PageInfo domain.PageInfo  `json:"pageInfo"`
		Error    string           `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, "Blue Mug", body.Products[0].Title)
	assert.True(t, body.PageInfo.HasNextPage)
	require.NotNil(t, body.PageInfo.EndCursor)
	assert.Equal(t, "cursor-1", *body.PageInfo.EndCursor)
	assert.Empty(t, body.Error)
}

func TestListProductsForwardsCursor(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, "opaque-cursor==").Return(service.ListResult{
		Outcome:  service.ListOK,
		Products: []domain.Product{},
		PageInfo: domain.PageInfo{},
	})

	router := newTestRouter(t, svc, "")
	w := doJSON(router, http.MethodGet, "/api/products?after=opaque-cursor%3D%3D", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListProductsUpstreamFailureIsDegenerate200(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, "").Return(service.ListResult{
		Outcome: service.ListFailed,
		Err:     &apperrors.ErrUpstream{Op: "list products", Err: errors.New("connection refused")},
	})

	router := newTestRouter(t, svc, "")
	w := doJSON(router, http.MethodGet, "/api/products", nil)

	// Frozen contract: failures come back as 200 with an empty list and a
	// non-empty error string, never as a transport status.
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body["products"], 0)
	assert.NotEmpty(t, body["error"])
	assert.Contains(t, body["error"], "connection refused")
}

func TestListProductsEmptyHasNoErrorField(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, "").Return(service.ListResult{Outcome: service.ListEmpty})

	router := newTestRouter(t, svc, "")
	w := doJSON(router, http.MethodGet, "/api/products", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body["products"], 0)
	_, hasError := body["error"]
	assert.False(t, hasError)
}

func TestUpdateProductSuccess(t *testing.T) {
	svc := new(mockService)
	svc.On("Update", mock.Anything, service.UpdateParams{
		ID:     "gid://shopify/Product/1",
		Title:  "X",
		Status: domain.ProductStatusActive,
		Tags:   []string{"sale"},
	}).Return(&domain.Product{
		ID:     "gid://shopify/Product/1",
		Title:  "X",
		Status: domain.ProductStatusActive,
		Tags:   []string{"sale"},
	}, nil)

	router := newTestRouter(t, svc, "")
	w := doJSON(router, http.MethodPost, "/api/products/update", map[string]interface{}{
		"id":     "gid://shopify/Product/1",
		"title":  "X",
		"status": "ACTIVE",
		"tags":   []string{"sale"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success        bool           `json:"success"`
		UpdatedProduct domain.Product `json:"updatedProduct"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "X", body.UpdatedProduct.Title)
	assert.Equal(t, domain.ProductStatusActive, body.UpdatedProduct.Status)
}

func TestUpdateProductUserErrorsAre400(t *testing.T) {
	svc := new(mockService)
	svc.On("Update", mock.Anything, mock.Anything).Return(nil, &apperrors.ErrUserErrors{
		Errors: []domain.UserError{{Field: []string{"title"}, Message: "Title can't be blank"}},
	})

	router := newTestRouter(t, svc, "")
	w := doJSON(router, http.MethodPost, "/api/products/update", map[string]interface{}{
		"id": "gid://shopify/Product/1", "title": "", "status": "ACTIVE",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Success bool               `json:"success"`
		Errors  []domain.UserError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, []string{"title"}, body.Errors[0].Field)
	assert.Equal(t, "Title can't be blank", body.Errors[0].Message)
}

func TestUpdateProductTransportFailureIs500(t *testing.T) {
	svc := new(mockService)
	svc.On("Update", mock.Anything, mock.Anything).Return(nil, &apperrors.ErrUpstream{
		Op: "update product", Err: errors.New("dial tcp: timeout"),
	})

	router := newTestRouter(t, svc, "")
	w := doJSON(router, http.MethodPost, "/api/products/update", map[string]interface{}{
		"id": "gid://shopify/Product/1", "title": "X", "status": "ACTIVE",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "dial tcp: timeout")
	// Never a partially filled success body
	_, hasProduct := body["updatedProduct"]
	assert.False(t, hasProduct)
}

func TestUpdateProductMalformedBodyIs400(t *testing.T) {
	router := newTestRouter(t, new(mockService), "")

	req := httptest.NewRequest(http.MethodPost, "/api/products/update", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProductSuccess(t *testing.T) {
	svc := new(mockService)
	svc.On("Delete", mock.Anything, "gid://shopify/Product/123").Return("gid://shopify/Product/123", nil)

	router := newTestRouter(t, svc, "")
	w := doJSON(router, http.MethodPost, "/api/products/delete", map[string]interface{}{
		"id": "gid://shopify/Product/123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "gid://shopify/Product/123", body["deletedId"])
}

func TestDeleteProductUnknownIDIs400(t *testing.T) {
	svc := new(mockService)
	svc.On("Delete", mock.Anything, mock.Anything).Return("", &apperrors.ErrUserErrors{
		Errors: []domain.UserError{{Field: []string{"id"}, Message: "Product does not exist"}},
	})

	router := newTestRouter(t, svc, "")
	w := doJSON(router, http.MethodPost, "/api/products/delete", map[string]interface{}{
		"id": "gid://shopify/Product/999",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Success bool               `json:"success"`
		Errors  []domain.UserError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Product does not exist", body.Errors[0].Message)
}

func TestAuthRequiredWhenHashConfigured(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sekret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := new(mockService)
	svc.On("List", mock.Anything, "").Return(service.ListResult{Outcome: service.ListEmpty})
	router := newTestRouter(t, svc, string(hash))

	// Missing header
	w := doJSON(router, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong key
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct key
	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer sekret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays open
	w = doJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDEchoed(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, "").Return(service.ListResult{Outcome: service.ListEmpty})
	router := newTestRouter(t, svc, "")

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	// Generated when absent
	w = doJSON(router, http.MethodGet, "/api/products", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
