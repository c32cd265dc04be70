package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"dermamatch/internal/domain"
	"dermamatch/internal/service"
)

type mockCatalog struct {
	products []domain.Product
	err      error
}

func (m *mockCatalog) FindCandidates(_ context.Context, filter domain.CandidateFilter) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Product
	for _, p := range m.products {
		for _, st := range p.SkinTypes {
			if st == filter.SkinType {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (m *mockCatalog) GetByID(_ context.Context, id string) (domain.Product, error) {
	if m.err != nil {
		return domain.Product{}, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, pgx.ErrNoRows
}

func (m *mockCatalog) UpsertSeed(_ context.Context, product domain.Product) error {
	m.products = append(m.products, product)
	return nil
}

func setupRecoRouter(catalog *mockCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	recoSvc := service.NewRecommendationService(catalog, nil, zap.NewNop())
	h := NewRecommendationHandler(zap.NewNop(), recoSvc, catalog)
	r := gin.New()
	r.GET("/recommendations", h.GetRecommendations)
	r.GET("/products/:id", h.GetProduct)
	return r
}

func TestRecommendationHandler_Success(t *testing.T) {
	catalog := &mockCatalog{products: []domain.Product{{
		ID:        "p1",
		Name:      "Hydra Cream",
		Category:  "moisturizer",
		Published: true,
		SkinTypes: []domain.SkinType{domain.SkinTypeDry},
		Tags:      []string{"hyaluronic-acid"},
		CreatedAt: time.Now().UTC(),
	}}}
	r := setupRecoRouter(catalog)

	rec := performRequest(r, http.MethodGet, "/recommendations?skin_type=DS", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		SkinType string `json:"skin_type"`
		Products []struct {
			Score float64 `json:"score"`
		} `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SkinType != "DS" || len(resp.Products) != 1 {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestRecommendationHandler_InvalidSkinType(t *testing.T) {
	r := setupRecoRouter(&mockCatalog{})

	rec := performRequest(r, http.MethodGet, "/recommendations?skin_type=nope", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/recommendations", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing skin_type, got %d", rec.Code)
	}
}

func TestRecommendationHandler_GetProduct(t *testing.T) {
	catalog := &mockCatalog{products: []domain.Product{{
		ID:        "p1",
		Name:      "Hydra Cream",
		Category:  "moisturizer",
		Published: true,
		SkinTypes: []domain.SkinType{domain.SkinTypeDry},
		Tags:      []string{"ceramides"},
		CreatedAt: time.Now().UTC(),
	}}}
	r := setupRecoRouter(catalog)

	rec := performRequest(r, http.MethodGet, "/products/p1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Product struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"product"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Product.ID != "p1" || resp.Product.Name != "Hydra Cream" {
		t.Fatalf("unexpected product payload: %s", rec.Body.String())
	}

	rec = performRequest(r, http.MethodGet, "/products/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}
}

func TestRecommendationHandler_CatalogError(t *testing.T) {
	r := setupRecoRouter(&mockCatalog{err: errors.New("db down")})

	rec := performRequest(r, http.MethodGet, "/recommendations?skin_type=DS", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
