package service

import (
	"go.uber.org/zap"

	"dermamatch/internal/domain"
)

// Classifier convierte respuestas del cuestionario en un arquetipo de
// piel. Es una funcion pura de sus inputs: no guarda estado entre
// invocaciones y nunca falla por respuestas malformadas o incompletas.
type Classifier struct {
	logger *zap.Logger
}

func NewClassifier(logger *zap.Logger) *Classifier {
	return &Classifier{logger: logger}
}

// Classify acumula el peso de cada pregunta respondida sobre el arquetipo
// objetivo de la opcion elegida y resuelve empates de forma deterministica.
//
// Reglas de desempate, en orden estricto:
//  1. la senal de la pregunta TIEBREAKER, si apunta a un miembro del top set;
//  2. CC, si esta en el top set (default documentado para perfiles ambiguos);
//  3. el primer miembro del top set en el orden fijo [DS, OB, HS, CC, SC].
//
// Un mapa de respuestas vacio produce un empate a cero entre los cinco
// arquetipos, que la regla 2 resuelve a CC ("sin senal -> piel mixta").
func (c *Classifier) Classify(def domain.Questionnaire, answers domain.Answers) domain.ClassificationResult {
	scores := make(map[domain.SkinType]float64, len(domain.SkinTypeOrder))
	for _, st := range domain.SkinTypeOrder {
		scores[st] = 0
	}

	// Si hay mas de una pregunta TIEBREAKER (el loader lo rechaza, pero
	// una definicion armada en codigo puede traerlas), gana la ultima.
	var tieBreakerTarget *domain.SkinType

	for _, q := range def.Merged() {
		choiceID, ok := answers[q.Code]
		if !ok || choiceID == "" {
			continue
		}
		choice, ok := q.ChoiceByID(choiceID)
		if !ok {
			// Respuesta invalida: se trata igual que una ausente.
			continue
		}

		if q.IsTieBreaker() {
			tieBreakerTarget = choice.Target
			continue
		}
		if choice.Target == nil {
			// Opcion puramente de preferencia, sin senal diagnostica.
			continue
		}

		weight := q.Weight
		if weight < 0 {
			weight = 0
		}
		scores[*choice.Target] += weight
	}

	var max float64
	for _, st := range domain.SkinTypeOrder {
		if scores[st] > max {
			max = scores[st]
		}
	}

	var topSet []domain.SkinType
	for _, st := range domain.SkinTypeOrder {
		if scores[st] == max {
			topSet = append(topSet, st)
		}
	}

	final, tieBreakerUsed := resolveTie(topSet, tieBreakerTarget)

	if c != nil && c.logger != nil {
		c.logger.Debug("questionnaire classified",
			zap.String("skin_type", string(final)),
			zap.Bool("tie_breaker_used", tieBreakerUsed),
			zap.Int("top_set_size", len(topSet)),
		)
	}

	return domain.ClassificationResult{
		SkinType:         final,
		Scores:           scores,
		TopSet:           topSet,
		TieBreakerUsed:   tieBreakerUsed,
		TieBreakerTarget: tieBreakerTarget,
	}
}

func resolveTie(topSet []domain.SkinType, target *domain.SkinType) (domain.SkinType, bool) {
	if len(topSet) == 1 {
		return topSet[0], false
	}

	if target != nil {
		for _, st := range topSet {
			if st == *target {
				return st, true
			}
		}
	}
	for _, st := range topSet {
		if st == domain.SkinTypeCombination {
			return st, true
		}
	}
	return topSet[0], true
}
