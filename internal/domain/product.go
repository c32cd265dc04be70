package domain

import "time"

// Product es la entidad de catalogo tal como la consume el core: llega
// ya enriquecida (tags + safety score) desde el pipeline de seed y es
// solo-lectura durante el ranking.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Brand       string     `json:"brand,omitempty"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	Ingredients string     `json:"ingredients,omitempty"`
	Published   bool       `json:"published"`
	SkinTypes   []SkinType `json:"skin_types"`
	Tags        []string   `json:"tags"`
	SafetyScore *int       `json:"safety_score,omitempty"` // 0-100, mas alto = mas seguro; nil = neutro (50)
	CreatedAt   time.Time  `json:"created_at"`
}

// HasTag reporta si el producto lleva el tag dado.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Policy es la configuracion estatica de recomendacion por arquetipo.
// Cambiar el comportamiento de recomendacion significa editar la tabla
// de policies, nunca el algoritmo de ranking.
type Policy struct {
	PreferredCategories []string           `json:"preferred_categories"`
	RequiredTagsAny     []string           `json:"required_tags_any,omitempty"`
	ExcludedTags        []string           `json:"excluded_tags,omitempty"`
	BoostTags           map[string]float64 `json:"boost_tags,omitempty"`
	Limit               int                `json:"limit"`
}

// TagBoost es un par (tag, peso) que matcheo durante el scoring.
// CandidateFilter es el contrato de query hacia el catalogo: published
// AND compatible con SkinType AND categoria dentro de Categories AND
// (RequiredTagsAny vacio O interseccion de tags no vacia) AND
// interseccion con ExcludedTags vacia.
type CandidateFilter struct {
	SkinType        SkinType
	Categories      []string
	RequiredTagsAny []string
	ExcludedTags    []string
}

type TagBoost struct {
	Tag    string  `json:"tag"`
	Weight float64 `json:"weight"`
}

// ScoreBreakdown explica como se compuso el score final de un candidato.
type ScoreBreakdown struct {
	TagScore    float64    `json:"tag_score"`
	SafetyBonus float64    `json:"safety_bonus"`
	MatchedTags []TagBoost `json:"matched_tags,omitempty"`
	SafetyScore *int       `json:"safety_score,omitempty"`
}

// ScoredProduct es un candidato rankeado. Efimero: existe solo durante
// una llamada de recomendacion.
type ScoredProduct struct {
	Product   Product        `json:"product"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}
