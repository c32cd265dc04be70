package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dermamatch/internal/domain"
)

// RecommendationService resuelve la policy del arquetipo y delega el
// ranking al recomendador, con un cache por arquetipo adelante.
type RecommendationService struct {
	catalog Catalog
	cache   RecommendationCache
	logger  *zap.Logger
}

var ErrRecommendationNotConfigured = errors.New("recommendation service not configured")

func NewRecommendationService(catalog Catalog, cache RecommendationCache, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		catalog: catalog,
		cache:   cache,
		logger:  logger,
	}
}

// ForSkinType devuelve el shortlist rankeado para un arquetipo. Un
// arquetipo invalido es error del caller; un catalogo sin candidatos
// devuelve lista vacia.
func (s *RecommendationService) ForSkinType(ctx context.Context, skinType domain.SkinType) ([]domain.ScoredProduct, error) {
	if s == nil || s.catalog == nil {
		return nil, ErrRecommendationNotConfigured
	}
	if !skinType.IsValid() {
		return nil, fmt.Errorf("invalid skin type %q", skinType)
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(skinType); ok {
			return cached, nil
		}
	}

	policy, err := PolicyFor(skinType)
	if err != nil {
		return nil, err
	}

	results, err := Recommend(ctx, skinType, policy, s.catalog)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(skinType, results)
	}
	if s.logger != nil {
		s.logger.Debug("recommendations computed",
			zap.String("skin_type", string(skinType)),
			zap.Int("results", len(results)),
		)
	}
	return results, nil
}
