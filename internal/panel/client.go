package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/productadmin/internal/domain"
)

// Client calls the product admin API the way the browser panel does.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an admin API client. apiKey may be empty when the server
// runs with authentication disabled.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// ListResponse is the body of GET /api/products. A non-empty Error with an
// empty product list means the call failed upstream, not that the catalog
// is empty.
type ListResponse struct {
	Products []domain.Product `json:"products"`
	PageInfo domain.PageInfo  `json:"pageInfo"`
	Error    string           `json:"error,omitempty"`
}

// MutationResponse is the body of the update/delete endpoints.
type MutationResponse struct {
	Success        bool               `json:"success"`
	UpdatedProduct *domain.Product    `json:"updatedProduct,omitempty"`
	DeletedID      string             `json:"deletedId,omitempty"`
	Errors         []domain.UserError `json:"errors,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// ListProducts fetches one page. after is the previous page's endCursor, or
// "" for the first page.
func (c *Client) ListProducts(ctx context.Context, after string) (*ListResponse, error) {
	u, err := url.Parse(c.baseURL + "/api/products")
	if err != nil {
		return nil, err
	}
	if after != "" {
		q := u.Query()
		q.Set("after", after)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Product list request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("admin API returned %d: %s", resp.StatusCode, string(body))
	}

	var out ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}
	return &out, nil
}

// UpdateProduct submits an edit. The returned MutationResponse carries either
// the updated product or the upstream userErrors (HTTP 400 is not an error
// here; it is a validation outcome the panel shows the user).
func (c *Client) UpdateProduct(ctx context.Context, id, title string, status domain.ProductStatus, tags []string) (*MutationResponse, error) {
	payload := map[string]interface{}{
		"id":     id,
		"title":  title,
		"status": string(status),
		"tags":   tags,
	}
	return c.postMutation(ctx, "/api/products/update", payload)
}

// DeleteProduct deletes a product by GID.
func (c *Client) DeleteProduct(ctx context.Context, id string) (*MutationResponse, error) {
	return c.postMutation(ctx, "/api/products/delete", map[string]interface{}{"id": id})
}

func (c *Client) postMutation(ctx context.Context, path string, payload map[string]interface{}) (*MutationResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Product mutation request failed", zap.Error(err), zap.String("path", path))
		return nil, err
	}
	defer resp.Body.Close()

	// 400 and 500 still carry a structured body; only decode failures are
	// transport errors from the panel's point of view.
	var out MutationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode mutation response (status %d): %w", resp.StatusCode, err)
	}
	return &out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
