// Package questionnaire carga y valida las definiciones de cuestionario.
// El parseo es la frontera con documentos externos debilmente tipados:
// todo lo malformado se rechaza o defaultea aca, nunca durante el scoring.
package questionnaire

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"dermamatch/internal/domain"
)

//go:embed data/behavior.json data/preference.json
var seedFS embed.FS

type rawChoice struct {
	ID     string            `json:"id"`
	Text   map[string]string `json:"text"`
	Target string            `json:"target,omitempty"`
}

type rawQuestion struct {
	Code    string            `json:"code"`
	Order   int               `json:"order"`
	Weight  float64           `json:"weight"`
	Text    map[string]string `json:"text"`
	Choices []rawChoice       `json:"choices"`
}

// Load parsea los dos documentos (behavior y preference) y devuelve la
// definicion validada.
func Load(behaviorDoc, preferenceDoc []byte) (domain.Questionnaire, error) {
	behavior, err := parseQuestionSet(behaviorDoc, "behavior")
	if err != nil {
		return domain.Questionnaire{}, err
	}
	preference, err := parseQuestionSet(preferenceDoc, "preference")
	if err != nil {
		return domain.Questionnaire{}, err
	}

	def := domain.Questionnaire{Behavior: behavior, Preference: preference}
	if err := validate(def); err != nil {
		return domain.Questionnaire{}, err
	}
	return def, nil
}

// LoadDefault carga la definicion embebida en el binario.
func LoadDefault() (domain.Questionnaire, error) {
	behaviorDoc, err := seedFS.ReadFile("data/behavior.json")
	if err != nil {
		return domain.Questionnaire{}, fmt.Errorf("read embedded behavior set: %w", err)
	}
	preferenceDoc, err := seedFS.ReadFile("data/preference.json")
	if err != nil {
		return domain.Questionnaire{}, fmt.Errorf("read embedded preference set: %w", err)
	}
	return Load(behaviorDoc, preferenceDoc)
}

func parseQuestionSet(doc []byte, setName string) ([]domain.Question, error) {
	var raw []rawQuestion
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("parse %s question set: %w", setName, err)
	}

	questions := make([]domain.Question, 0, len(raw))
	for i, rq := range raw {
		q, err := buildQuestion(rq)
		if err != nil {
			return nil, fmt.Errorf("%s set, question %d: %w", setName, i, err)
		}
		questions = append(questions, q)
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	return questions, nil
}

func buildQuestion(rq rawQuestion) (domain.Question, error) {
	code := strings.TrimSpace(rq.Code)
	if code == "" {
		return domain.Question{}, fmt.Errorf("question code is required")
	}
	if rq.Weight < 0 {
		return domain.Question{}, fmt.Errorf("question %q has negative weight %v", code, rq.Weight)
	}
	weight := rq.Weight
	if weight == 0 {
		weight = 1
	}
	text, err := buildText(rq.Text)
	if err != nil {
		return domain.Question{}, fmt.Errorf("question %q: %w", code, err)
	}
	if len(rq.Choices) == 0 {
		return domain.Question{}, fmt.Errorf("question %q has no choices", code)
	}

	seen := make(map[string]bool, len(rq.Choices))
	choices := make([]domain.Choice, 0, len(rq.Choices))
	for _, rc := range rq.Choices {
		id := strings.TrimSpace(rc.ID)
		if id == "" {
			return domain.Question{}, fmt.Errorf("question %q has a choice without id", code)
		}
		if seen[id] {
			return domain.Question{}, fmt.Errorf("question %q has duplicate choice id %q", code, id)
		}
		seen[id] = true

		choiceText, err := buildText(rc.Text)
		if err != nil {
			return domain.Question{}, fmt.Errorf("question %q choice %q: %w", code, id, err)
		}

		choice := domain.Choice{ID: id, Text: choiceText}
		if strings.TrimSpace(rc.Target) != "" {
			st, err := domain.ParseSkinType(rc.Target)
			if err != nil {
				return domain.Question{}, fmt.Errorf("question %q choice %q: %w", code, id, err)
			}
			choice.Target = &st
		}
		choices = append(choices, choice)
	}

	return domain.Question{
		Code:    code,
		Order:   rq.Order,
		Weight:  weight,
		Text:    text,
		Choices: choices,
	}, nil
}

func buildText(raw map[string]string) (domain.LocalizedText, error) {
	text := make(domain.LocalizedText, len(raw))
	for locale, value := range raw {
		locale = strings.ToLower(strings.TrimSpace(locale))
		value = strings.TrimSpace(value)
		if locale == "" || value == "" {
			continue
		}
		text[locale] = value
	}
	if len(text) == 0 {
		return nil, fmt.Errorf("localized text is empty")
	}
	return text, nil
}

func validate(def domain.Questionnaire) error {
	seenCodes := make(map[string]bool)
	tieBreakers := 0
	for _, q := range def.Merged() {
		if seenCodes[q.Code] {
			return fmt.Errorf("duplicate question code %q", q.Code)
		}
		seenCodes[q.Code] = true
		if q.IsTieBreaker() {
			tieBreakers++
		}
	}
	// Mas de una pregunta centinela es un error de configuracion, no algo
	// a resolver en silencio durante el scoring.
	if tieBreakers > 1 {
		return fmt.Errorf("definition has %d tie-breaker questions, want at most 1", tieBreakers)
	}
	return nil
}

// LocalizedQuestion es la vista de una pregunta ya resuelta a un locale,
// lista para servir por HTTP o CLI.
type LocalizedQuestion struct {
	Code    string            `json:"code"`
	Order   int               `json:"order"`
	Text    string            `json:"text"`
	Choices []LocalizedChoice `json:"choices"`
}

type LocalizedChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Localize aplana la definicion al locale pedido (fallback "en"),
// preservando el orden de presentacion.
func Localize(def domain.Questionnaire, locale string) []LocalizedQuestion {
	merged := def.Merged()
	out := make([]LocalizedQuestion, 0, len(merged))
	for _, q := range merged {
		lq := LocalizedQuestion{
			Code:  q.Code,
			Order: q.Order,
			Text:  q.Text.Resolve(locale),
		}
		for _, c := range q.Choices {
			lq.Choices = append(lq.Choices, LocalizedChoice{ID: c.ID, Text: c.Text.Resolve(locale)})
		}
		out = append(out, lq)
	}
	return out
}
