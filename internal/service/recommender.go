package service

import (
	"context"
	"fmt"
	"sort"

	"dermamatch/internal/domain"
)

// Catalog abstrae el acceso al catalogo de productos. La implementacion
// pgx vive en internal/repository y lo satisface estructuralmente; los
// tests usan fakes.
type Catalog interface {
	FindCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Product, error)
}

// Factor del bonus de seguridad para HS. Con safety scores en [0,100] el
// bonus queda en [-2.5, 2.5]: chico frente a los boost tags tipicos (1-4),
// de modo que la seguridad inclina empates pero nunca domina el ranking.
const safetyBonusFactor = 0.05

const neutralSafetyScore = 50

// Recommend filtra el catalogo segun la policy del arquetipo, puntua cada
// candidato y devuelve el top-N ordenado. Un catalogo vacio devuelve una
// lista vacia, no un error.
func Recommend(ctx context.Context, skinType domain.SkinType, policy domain.Policy, catalog Catalog) ([]domain.ScoredProduct, error) {
	if catalog == nil {
		return nil, fmt.Errorf("recommend: catalog is required")
	}
	if policy.Limit <= 0 {
		return []domain.ScoredProduct{}, nil
	}

	candidates, err := catalog.FindCandidates(ctx, domain.CandidateFilter{
		SkinType:        skinType,
		Categories:      policy.PreferredCategories,
		RequiredTagsAny: policy.RequiredTagsAny,
		ExcludedTags:    policy.ExcludedTags,
	})
	if err != nil {
		return nil, fmt.Errorf("recommend: find candidates: %w", err)
	}

	scored := make([]domain.ScoredProduct, 0, len(candidates))
	for _, p := range candidates {
		scored = append(scored, scoreCandidate(skinType, policy, p))
	}

	// Score descendente; a igual score, ID de producto ascendente para que
	// el orden no dependa del orden de llegada del catalogo.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Product.ID < scored[j].Product.ID
	})

	if len(scored) > policy.Limit {
		scored = scored[:policy.Limit]
	}
	return scored, nil
}

func scoreCandidate(skinType domain.SkinType, policy domain.Policy, p domain.Product) domain.ScoredProduct {
	var tagScore float64
	var matched []domain.TagBoost
	for _, tag := range p.Tags {
		weight, ok := policy.BoostTags[tag]
		if !ok {
			continue
		}
		tagScore += weight
		matched = append(matched, domain.TagBoost{Tag: tag, Weight: weight})
	}

	var safetyBonus float64
	if skinType == domain.SkinTypeSensitive {
		effective := neutralSafetyScore
		if p.SafetyScore != nil {
			effective = *p.SafetyScore
		}
		safetyBonus = float64(effective-neutralSafetyScore) * safetyBonusFactor
	}

	return domain.ScoredProduct{
		Product: p,
		Score:   tagScore + safetyBonus,
		Breakdown: domain.ScoreBreakdown{
			TagScore:    tagScore,
			SafetyBonus: safetyBonus,
			MatchedTags: matched,
			SafetyScore: p.SafetyScore,
		},
	}
}
