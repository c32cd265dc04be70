package domain

import "strings"

// TieBreakerCode es el codigo centinela de la pregunta de desempate.
// Su respuesta nunca suma al score primario; solo resuelve empates.
const TieBreakerCode = "TIEBREAKER"

// LocalizedText guarda el texto de una pregunta/opcion por locale.
type LocalizedText map[string]string

const defaultLocale = "en"

// Resolve devuelve el texto para el locale pedido, con fallback a "en"
// y luego a cualquier entrada disponible.
func (lt LocalizedText) Resolve(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if text, ok := lt[locale]; ok && text != "" {
		return text
	}
	if text, ok := lt[defaultLocale]; ok && text != "" {
		return text
	}
	for _, text := range lt {
		if text != "" {
			return text
		}
	}
	return ""
}

// Choice es una opcion de respuesta. Target nil significa que la opcion
// es puramente de preferencia y no aporta senal diagnostica.
type Choice struct {
	ID     string        `json:"id"`
	Text   LocalizedText `json:"text"`
	Target *SkinType     `json:"target,omitempty"`
}

// Question es una pregunta del cuestionario. Order solo afecta la
// presentacion; el scoring depende unicamente de Weight y de las opciones.
type Question struct {
	Code    string        `json:"code"`
	Order   int           `json:"order"`
	Weight  float64       `json:"weight"`
	Text    LocalizedText `json:"text"`
	Choices []Choice      `json:"choices"`
}

// IsTieBreaker reporta si la pregunta lleva el codigo centinela.
func (q Question) IsTieBreaker() bool {
	return q.Code == TieBreakerCode
}

// ChoiceByID busca una opcion por id dentro de la pregunta.
func (q Question) ChoiceByID(id string) (Choice, bool) {
	for _, c := range q.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Questionnaire agrupa los dos sets de preguntas. Pasado el merge de
// Merged no queda distincion estructural entre ambos.
type Questionnaire struct {
	Behavior   []Question `json:"behavior"`
	Preference []Question `json:"preference"`
}

// Merged concatena behavior y preference en un solo pool ordenado.
func (d Questionnaire) Merged() []Question {
	merged := make([]Question, 0, len(d.Behavior)+len(d.Preference))
	merged = append(merged, d.Behavior...)
	merged = append(merged, d.Preference...)
	return merged
}

// Answers mapea codigo de pregunta -> id de opcion elegida. Claves que no
// matchean ninguna pregunta se ignoran; preguntas ausentes no aportan nada.
type Answers map[string]string

// ClassificationResult es el resultado completo de una clasificacion.
// Objeto de valor: queda totalmente determinado por sus inputs.
type ClassificationResult struct {
	SkinType         SkinType             `json:"skin_type"`
	Scores           map[SkinType]float64 `json:"scores"`
	TopSet           []SkinType           `json:"top_set"`
	TieBreakerUsed   bool                 `json:"tie_breaker_used"`
	TieBreakerTarget *SkinType            `json:"tie_breaker_target,omitempty"`
}
