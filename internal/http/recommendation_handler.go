package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"dermamatch/internal/domain"
	"dermamatch/internal/repository"
	"dermamatch/internal/service"
)

// RecommendationHandler mantiene dependencias para el shortlist y el
// detalle de productos.
type RecommendationHandler struct {
	logger   *zap.Logger
	recoServ *service.RecommendationService
	products repository.ProductRepository
}

func NewRecommendationHandler(logger *zap.Logger, recoServ *service.RecommendationService, products repository.ProductRepository) *RecommendationHandler {
	return &RecommendationHandler{
		logger:   logger,
		recoServ: recoServ,
		products: products,
	}
}

// GetRecommendations maneja GET /recommendations?skin_type=DS.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	skinType, err := domain.ParseSkinType(c.Query("skin_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skin_type"})
		return
	}

	results, err := h.recoServ.ForSkinType(c.Request.Context(), skinType)
	if err != nil {
		h.logger.Error("recommendations failed", zap.Error(err), zap.String("skin_type", string(skinType)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"skin_type": skinType, "products": results})
}

// GetProduct maneja GET /products/:id.
func (h *RecommendationHandler) GetProduct(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog not configured"})
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("get product failed", zap.Error(err), zap.String("product_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
