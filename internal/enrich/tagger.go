// Package enrich implementa el paso de enriquecimiento de datos previo al
// core: a partir del texto de ingredientes y descripcion de un producto
// deriva tags y un safety score 0-100. El contrato con el core es que todo
// producto llega al catalogo ya etiquetado y puntuado.
package enrich

import (
	"sort"
	"strings"
	"unicode"

	"dermamatch/internal/domain"
)

// tagRule asocia keywords del texto de ingredientes con un tag.
type tagRule struct {
	tag      string
	keywords []string
}

// Las reglas se evaluan sobre texto normalizado (minusculas, sin acentos).
var tagRules = []tagRule{
	{tag: "hyaluronic-acid", keywords: []string{"hyaluron", "sodium hyaluronate", "acido hialuronico"}},
	{tag: "ceramides", keywords: []string{"ceramide", "ceramida"}},
	{tag: "squalane", keywords: []string{"squalane", "escualano"}},
	{tag: "glycerin", keywords: []string{"glycerin", "glicerina"}},
	{tag: "panthenol", keywords: []string{"panthenol", "pantenol", "pro-vitamin b5"}},
	{tag: "niacinamide", keywords: []string{"niacinamide", "niacinamida", "vitamin b3"}},
	{tag: "salicylic-acid", keywords: []string{"salicylic", "salicilico", "bha"}},
	{tag: "exfoliating", keywords: []string{"salicylic", "glycolic", "lactic acid", "aha", "bha", "pha"}},
	{tag: "clay", keywords: []string{"kaolin", "bentonite", "clay", "arcilla"}},
	{tag: "zinc", keywords: []string{"zinc"}},
	{tag: "centella", keywords: []string{"centella", "cica", "madecassoside"}},
	{tag: "oat", keywords: []string{"oat", "avena", "colloidal oatmeal"}},
	{tag: "green-tea", keywords: []string{"green tea", "camellia sinensis", "te verde"}},
	{tag: "thermal", keywords: []string{"thermal water", "agua termal"}},
	{tag: "retinol", keywords: []string{"retinol", "retinal", "retinoate"}},
	{tag: "peptides", keywords: []string{"peptide", "peptido", "matrixyl"}},
	{tag: "vitamin-c", keywords: []string{"ascorbic", "ascorbate", "vitamin c", "vitamina c"}},
	{tag: "antioxidant", keywords: []string{"ascorbic", "tocopherol", "vitamin e", "resveratrol", "ferulic"}},
	{tag: "spf", keywords: []string{"spf", "octinoxate", "zinc oxide", "titanium dioxide", "fps"}},
	{tag: "hydrating", keywords: []string{"hyaluron", "glycerin", "glicerina", "squalane", "urea", "aloe"}},
	{tag: "barrier-repair", keywords: []string{"ceramide", "ceramida", "cholesterol", "fatty acid"}},
	{tag: "soothing", keywords: []string{"centella", "cica", "panthenol", "pantenol", "oat", "avena", "allantoin", "bisabolol"}},
	{tag: "renewing", keywords: []string{"retinol", "retinal", "glycolic", "lactic acid"}},
	{tag: "oil-control", keywords: []string{"niacinamide", "zinc", "kaolin", "bentonite", "salicylic"}},
	{tag: "occlusive", keywords: []string{"petrolatum", "mineral oil", "lanolin"}},
	{tag: "heavy-oils", keywords: []string{"coconut oil", "cocos nucifera", "shea butter", "butyrospermum"}},
}

// Familias irritantes: ademas del tag restan al safety score.
var irritantRules = []struct {
	tag      string
	keywords []string
	penalty  int
}{
	{tag: "fragrance", keywords: []string{"fragrance", "parfum", "perfume", "aroma"}, penalty: 15},
	{tag: "drying-alcohol", keywords: []string{"alcohol denat", "sd alcohol", "ethanol"}, penalty: 10},
	{tag: "essential-oils", keywords: []string{"essential oil", "limonene", "linalool", "citronellol", "geraniol", "eucalyptus"}, penalty: 10},
}

// Irritantes leves: penalizan sin aportar tag de exclusion.
var mildPenalties = []struct {
	keywords []string
	penalty  int
}{
	{keywords: []string{"retinol", "retinal"}, penalty: 10},
	{keywords: []string{"glycolic", "lactic acid"}, penalty: 5},
	{keywords: []string{"salicylic"}, penalty: 5},
	{keywords: []string{"menthol", "peppermint", "mentol"}, penalty: 8},
}

// normalize baja a minusculas y elimina diacriticos.
func normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func containsAny(s string, list []string) bool {
	for _, x := range list {
		if strings.Contains(s, x) {
			return true
		}
	}
	return false
}

// Enrich deriva tags y safety score para un producto y devuelve la copia
// enriquecida. Tags ya presentes se conservan; el safety score solo se
// calcula si el producto no trae uno.
func Enrich(p domain.Product) domain.Product {
	text := normalize(p.Ingredients + " " + p.Description)

	tags := make(map[string]bool, len(p.Tags))
	for _, t := range p.Tags {
		tags[t] = true
	}

	for _, rule := range tagRules {
		if containsAny(text, rule.keywords) {
			tags[rule.tag] = true
		}
	}

	safety := 100
	for _, rule := range irritantRules {
		if containsAny(text, rule.keywords) {
			tags[rule.tag] = true
			safety -= rule.penalty
		}
	}
	for _, rule := range mildPenalties {
		if containsAny(text, rule.keywords) {
			safety -= rule.penalty
		}
	}
	if safety < 0 {
		safety = 0
	}

	// Tags negativos derivados: ausencia comprobada de irritantes.
	if !tags["fragrance"] {
		tags["fragrance-free"] = true
	}
	if !tags["drying-alcohol"] {
		tags["alcohol-free"] = true
	}

	p.Tags = sortedTags(tags)
	if p.SafetyScore == nil {
		p.SafetyScore = &safety
	}
	return p
}

func sortedTags(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	// Orden estable para que los fixtures no fluctuen entre corridas.
	sort.Strings(out)
	return out
}
