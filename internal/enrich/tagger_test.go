package enrich

import (
	"testing"

	"dermamatch/internal/domain"
)

func hasTag(p domain.Product, tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func TestEnrichDerivesTags(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		wantTags    []string
		notTags     []string
	}{
		{
			name:        "hydrating serum",
			ingredients: "Aqua, Glycerin, Sodium Hyaluronate, Panthenol",
			wantTags:    []string{"hyaluronic-acid", "glycerin", "panthenol", "hydrating", "soothing", "fragrance-free", "alcohol-free"},
			notTags:     []string{"fragrance", "retinol"},
		},
		{
			name:        "exfoliating toner",
			ingredients: "Aqua, Salicylic Acid, Zinc PCA, Alcohol Denat.",
			wantTags:    []string{"salicylic-acid", "exfoliating", "zinc", "oil-control", "drying-alcohol"},
			notTags:     []string{"alcohol-free"},
		},
		{
			name:        "fragranced cream",
			ingredients: "Aqua, Butyrospermum Parkii, Parfum, Limonene",
			wantTags:    []string{"heavy-oils", "fragrance", "essential-oils"},
			notTags:     []string{"fragrance-free"},
		},
		{
			// Marcas combinantes (NFD) se descartan al normalizar.
			name:        "diacritics normalized",
			ingredients: "Agua, Glicerina, Ácido Hialurónico",
			wantTags:    []string{"glycerin", "hyaluronic-acid", "hydrating"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Enrich(domain.Product{Ingredients: tt.ingredients})
			for _, tag := range tt.wantTags {
				if !hasTag(got, tag) {
					t.Fatalf("tags %v missing %q", got.Tags, tag)
				}
			}
			for _, tag := range tt.notTags {
				if hasTag(got, tag) {
					t.Fatalf("tags %v must not contain %q", got.Tags, tag)
				}
			}
		})
	}
}

func TestEnrichSafetyScore(t *testing.T) {
	tests := []struct {
		name        string
		ingredients string
		want        int
	}{
		{name: "clean formula", ingredients: "Aqua, Glycerin, Ceramide NP", want: 100},
		{name: "fragrance penalty", ingredients: "Aqua, Parfum", want: 85},
		{name: "stacked irritants", ingredients: "Alcohol Denat., Parfum, Limonene, Retinol, Menthol", want: 100 - 10 - 15 - 10 - 10 - 8},
		{name: "every family counted once", ingredients: "Parfum, Alcohol Denat., Limonene, Retinol, Glycolic Acid, Salicylic Acid, Menthol, Eucalyptus", want: 100 - 15 - 10 - 10 - 10 - 5 - 5 - 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Enrich(domain.Product{Ingredients: tt.ingredients})
			if got.SafetyScore == nil {
				t.Fatalf("safety score was not attached")
			}
			if *got.SafetyScore != tt.want {
				t.Fatalf("safety score = %d, want %d", *got.SafetyScore, tt.want)
			}
			if *got.SafetyScore < 0 || *got.SafetyScore > 100 {
				t.Fatalf("safety score %d out of [0,100]", *got.SafetyScore)
			}
		})
	}
}

func TestEnrichPreservesExistingValues(t *testing.T) {
	score := 42
	p := domain.Product{
		Ingredients: "Aqua, Parfum",
		Tags:        []string{"cult-favorite"},
		SafetyScore: &score,
	}
	got := Enrich(p)

	if !hasTag(got, "cult-favorite") {
		t.Fatalf("existing tags must be preserved, got %v", got.Tags)
	}
	if *got.SafetyScore != 42 {
		t.Fatalf("existing safety score overwritten: %d", *got.SafetyScore)
	}
}
