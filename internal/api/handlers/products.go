package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/productadmin/internal/domain"
	"github.com/jafarshop/productadmin/internal/service"
	apperrors "github.com/jafarshop/productadmin/pkg/errors"
)

// ProductService is what the handlers need from the service layer.
type ProductService interface {
	List(ctx context.Context, after string) service.ListResult
	Update(ctx context.Context, params service.UpdateParams) (*domain.Product, error)
	Delete(ctx context.Context, id string) (string, error)
}

// HandleListProducts handles GET /api/products?after=<cursor>
//
// Contract quirk the browser depends on: upstream failures still return 200
// with an empty list and a non-empty "error" field. Callers must treat
// empty-list-plus-error as "failed", not "end of data".
func HandleListProducts(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		after := c.Query("after")

		result := svc.List(c.Request.Context(), after)
		switch result.Outcome {
		case service.ListFailed:
			logger.Error("Failed to list products", zap.Error(result.Err), zap.String("after", after))
			c.JSON(http.StatusOK, gin.H{
				"products": []domain.Product{},
				"pageInfo": gin.H{},
				"error":    result.Err.Error(),
			})
		case service.ListEmpty:
			c.JSON(http.StatusOK, gin.H{
				"products": []domain.Product{},
				"pageInfo": domain.PageInfo{},
			})
		default:
			c.JSON(http.StatusOK, gin.H{
				"products": result.Products,
				"pageInfo": result.PageInfo,
			})
		}
	}
}

// UpdateProductRequest is the body for POST /api/products/update.
type UpdateProductRequest struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
}

// HandleUpdateProduct handles POST /api/products/update
//
// No local validation beyond "the body must parse": empty titles, unknown
// statuses and the like are upstream's call, and its userErrors come back
// verbatim with a 400.
func HandleUpdateProduct(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body: " + err.Error()})
			return
		}

		updated, err := svc.Update(c.Request.Context(), service.UpdateParams{
			ID:     req.ID,
			Title:  req.Title,
			Status: domain.ProductStatus(req.Status),
			Tags:   req.Tags,
		})
		if err != nil {
			respondMutationError(c, logger, "update", req.ID, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"updatedProduct": updated,
		})
	}
}

// DeleteProductRequest is the body for POST /api/products/delete.
type DeleteProductRequest struct {
	ID string `json:"id"`
}

// HandleDeleteProduct handles POST /api/products/delete
func HandleDeleteProduct(svc ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body: " + err.Error()})
			return
		}

		deletedID, err := svc.Delete(c.Request.Context(), req.ID)
		if err != nil {
			respondMutationError(c, logger, "delete", req.ID, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"deletedId": deletedID,
		})
	}
}

// respondMutationError maps the mutation error taxonomy onto HTTP: upstream
// userErrors become a 400 with the structured list passed through, anything
// else is a 500 carrying the raw message.
func respondMutationError(c *gin.Context, logger *zap.Logger, op, id string, err error) {
	var userErrs *apperrors.ErrUserErrors
	if errors.As(err, &userErrs) {
		logger.Warn("Product mutation rejected upstream",
			zap.String("op", op),
			zap.String("product_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  userErrs.Errors,
		})
		return
	}

	logger.Error("Product mutation failed",
		zap.String("op", op),
		zap.String("product_id", id),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
