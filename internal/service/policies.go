package service

import (
	"fmt"

	"dermamatch/internal/domain"
)

// Categorias de producto usadas por las policies y el catalogo.
const (
	CategoryCleanser    = "cleanser"
	CategoryToner       = "toner"
	CategorySerum       = "serum"
	CategoryMoisturizer = "moisturizer"
	CategorySunscreen   = "sunscreen"
	CategoryMask        = "mask"
)

// skinTypePolicies es la tabla estatica de recomendacion: una Policy por
// arquetipo, cargada una vez y nunca mutada en runtime. Ajustar la
// recomendacion significa tocar esta tabla, no el algoritmo de ranking.
var skinTypePolicies = map[domain.SkinType]domain.Policy{
	domain.SkinTypeDry: {
		PreferredCategories: []string{CategoryCleanser, CategorySerum, CategoryMoisturizer, CategoryMask},
		RequiredTagsAny:     []string{"hydrating", "barrier-repair"},
		ExcludedTags:        []string{"drying-alcohol", "clay"},
		BoostTags: map[string]float64{
			"hyaluronic-acid": 4,
			"ceramides":       3,
			"squalane":        2,
			"glycerin":        2,
			"panthenol":       1,
		},
		Limit: 6,
	},
	domain.SkinTypeOilyBlemish: {
		PreferredCategories: []string{CategoryCleanser, CategoryToner, CategorySerum, CategoryMask},
		RequiredTagsAny:     []string{"oil-control", "exfoliating"},
		ExcludedTags:        []string{"occlusive", "heavy-oils"},
		BoostTags: map[string]float64{
			"salicylic-acid": 4,
			"niacinamide":    3,
			"zinc":           2,
			"clay":           2,
			"green-tea":      1,
		},
		Limit: 6,
	},
	domain.SkinTypeSensitive: {
		PreferredCategories: []string{CategoryCleanser, CategoryMoisturizer, CategorySunscreen},
		RequiredTagsAny:     []string{"fragrance-free", "soothing"},
		ExcludedTags:        []string{"fragrance", "essential-oils", "drying-alcohol"},
		BoostTags: map[string]float64{
			"centella":  4,
			"panthenol": 3,
			"oat":       2,
			"ceramides": 2,
			"thermal":   1,
		},
		Limit: 6,
	},
	domain.SkinTypeCombination: {
		PreferredCategories: []string{CategoryCleanser, CategoryToner, CategorySerum, CategoryMoisturizer},
		BoostTags: map[string]float64{
			"niacinamide":     3,
			"hyaluronic-acid": 2,
			"green-tea":       1,
			"glycerin":        1,
		},
		Limit: 6,
	},
	domain.SkinTypeSlowRenewal: {
		PreferredCategories: []string{CategorySerum, CategoryMoisturizer, CategorySunscreen},
		RequiredTagsAny:     []string{"renewing", "antioxidant"},
		BoostTags: map[string]float64{
			"retinol":   4,
			"peptides":  3,
			"vitamin-c": 2,
			"spf":       2,
		},
		Limit: 6,
	},
}

// PolicyFor devuelve la policy del arquetipo. Un arquetipo sin policy es
// un error de programacion: la tabla es exhaustiva por construccion y
// ValidatePolicies lo verifica al arranque.
func PolicyFor(skinType domain.SkinType) (domain.Policy, error) {
	policy, ok := skinTypePolicies[skinType]
	if !ok {
		return domain.Policy{}, fmt.Errorf("no policy configured for skin type %q", skinType)
	}
	return policy, nil
}

// ValidatePolicies verifica los invariantes de la tabla al arranque:
// una policy por arquetipo, categorias preferidas no vacias, limite
// positivo y pesos de boost no negativos.
func ValidatePolicies() error {
	for _, st := range domain.SkinTypeOrder {
		policy, ok := skinTypePolicies[st]
		if !ok {
			return fmt.Errorf("policy table missing skin type %q", st)
		}
		if len(policy.PreferredCategories) == 0 {
			return fmt.Errorf("policy for %q has no preferred categories", st)
		}
		if policy.Limit <= 0 {
			return fmt.Errorf("policy for %q has non-positive limit %d", st, policy.Limit)
		}
		for tag, weight := range policy.BoostTags {
			if weight < 0 {
				return fmt.Errorf("policy for %q has negative boost for tag %q", st, tag)
			}
		}
	}
	if len(skinTypePolicies) != len(domain.SkinTypeOrder) {
		return fmt.Errorf("policy table has %d entries, want %d", len(skinTypePolicies), len(domain.SkinTypeOrder))
	}
	return nil
}
