package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/productadmin/internal/domain"
	"github.com/jafarshop/productadmin/internal/shopify"
	apperrors "github.com/jafarshop/productadmin/pkg/errors"
)

// PageSize is the fixed page size requested from Shopify per list call.
const PageSize = 5

// Executor executes a GraphQL document against the Shopify Admin API. The
// concrete client is injected, never obtained ambiently.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
}

type ProductService struct {
	exec   Executor
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(exec Executor, logger *zap.Logger) *ProductService {
	return &ProductService{
		exec:   exec,
		logger: logger,
	}
}

// ListOutcome distinguishes "page of data", "upstream had nothing for us",
// and "the call failed" so callers never confuse an error with end of data.
type ListOutcome int

const (
	ListOK ListOutcome = iota
	ListEmpty
	ListFailed
)

type ListResult struct {
	Outcome  ListOutcome
	Products []domain.Product
	PageInfo domain.PageInfo
	Err      error
}

// productNode mirrors the node selection in shopify.ProductsQuery.
type productNode struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Handle        string   `json:"handle"`
	Status        string   `json:"status"`
	Tags          []string `json:"tags"`
	FeaturedImage *struct {
		URL     string `json:"url"`
		AltText string `json:"altText"`
	} `json:"featuredImage"`
	Variants struct {
		Edges []struct {
			Node struct {
				ID      string  `json:"id"`
				Price   string  `json:"price"`
				Barcode *string `json:"barcode"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (n *productNode) toDomain() domain.Product {
	p := domain.Product{
		ID:     n.ID,
		Title:  n.Title,
		Handle: n.Handle,
		Status: domain.ProductStatus(n.Status),
		Tags:   n.Tags,
	}
	if n.FeaturedImage != nil {
		p.Image = &domain.Image{
			URL:     n.FeaturedImage.URL,
			AltText: n.FeaturedImage.AltText,
		}
	}
	if len(n.Variants.Edges) > 0 {
		v := n.Variants.Edges[0].Node
		p.Variant = &domain.Variant{
			ID:      v.ID,
			Price:   v.Price,
			Barcode: v.Barcode,
		}
	}
	return p
}

// List fetches one page of products. The after cursor is opaque; pass the
// previous page's EndCursor unmodified, or "" for the first page.
func (s *ProductService) List(ctx context.Context, after string) ListResult {
	variables := map[string]interface{}{
		"first": PageSize,
	}
	if after != "" {
		variables["after"] = after
	}

	resp, err := s.exec.Execute(ctx, shopify.ProductsQuery, variables)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return ListResult{Outcome: ListFailed, Err: &apperrors.ErrUpstream{Op: "list products", Err: err}}
	}

	var result struct {
		Products *struct {
			PageInfo struct {
				HasNextPage bool    `json:"hasNextPage"`
				EndCursor   *string `json:"endCursor"`
			} `json:"pageInfo"`
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return ListResult{Outcome: ListFailed, Err: &apperrors.ErrUpstream{Op: "parse products response", Err: err}}
	}

	// A well-formed response with no products connection is "nothing here",
	// not a failure.
	if result.Products == nil {
		return ListResult{Outcome: ListEmpty}
	}

	products := make([]domain.Product, 0, len(result.Products.Edges))
	for _, edge := range result.Products.Edges {
		products = append(products, edge.Node.toDomain())
	}

	return ListResult{
		Outcome:  ListOK,
		Products: products,
		PageInfo: domain.PageInfo{
			HasNextPage: result.Products.PageInfo.HasNextPage,
			EndCursor:   result.Products.PageInfo.EndCursor,
		},
	}
}

// UpdateParams are the editable product fields. No local validation: empty
// titles, unknown statuses etc. are sent upstream and come back as userErrors.
type UpdateParams struct {
	ID     string
	Title  string
	Status domain.ProductStatus
	Tags   []string
}

// Update performs exactly one productUpdate mutation and returns the updated
// product as upstream echoed it.
func (s *ProductService) Update(ctx context.Context, params UpdateParams) (*domain.Product, error) {
	variables := map[string]interface{}{
		"input": shopify.ProductUpdateInput{
			ID:     params.ID,
			Title:  params.Title,
			Status: string(params.Status),
			Tags:   params.Tags,
		},
	}

	resp, err := s.exec.Execute(ctx, shopify.ProductUpdateMutation, variables)
	if err != nil {
		return nil, &apperrors.ErrUpstream{Op: "update product", Err: err}
	}

	var result struct {
		ProductUpdate struct {
			Product    *productNode       `json:"product"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"productUpdate"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, &apperrors.ErrUpstream{Op: "parse product update response", Err: err}
	}

	if len(result.ProductUpdate.UserErrors) > 0 {
		return nil, &apperrors.ErrUserErrors{Errors: result.ProductUpdate.UserErrors}
	}

	if result.ProductUpdate.Product == nil {
		return nil, &apperrors.ErrUpstream{Op: "update product", Err: fmt.Errorf("mutation returned no product and no userErrors")}
	}

	updated := result.ProductUpdate.Product.toDomain()
	s.logger.Info("Product updated",
		zap.String("product_id", updated.ID),
		zap.String("status", string(updated.Status)),
	)
	return &updated, nil
}

// Delete performs exactly one productDelete mutation and returns the deleted
// product's GID as upstream echoed it.
func (s *ProductService) Delete(ctx context.Context, id string) (string, error) {
	variables := map[string]interface{}{
		"input": shopify.ProductDeleteInput{ID: id},
	}

	resp, err := s.exec.Execute(ctx, shopify.ProductDeleteMutation, variables)
	if err != nil {
		return "", &apperrors.ErrUpstream{Op: "delete product", Err: err}
	}

	var result struct {
		ProductDelete struct {
			DeletedProductID *string            `json:"deletedProductId"`
			UserErrors       []domain.UserError `json:"userErrors"`
		} `json:"productDelete"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", &apperrors.ErrUpstream{Op: "parse product delete response", Err: err}
	}

	if len(result.ProductDelete.UserErrors) > 0 {
		return "", &apperrors.ErrUserErrors{Errors: result.ProductDelete.UserErrors}
	}

	if result.ProductDelete.DeletedProductID == nil {
		return "", &apperrors.ErrUpstream{Op: "delete product", Err: fmt.Errorf("mutation returned no deletedProductId and no userErrors")}
	}

	s.logger.Info("Product deleted", zap.String("product_id", *result.ProductDelete.DeletedProductID))
	return *result.ProductDelete.DeletedProductID, nil
}
