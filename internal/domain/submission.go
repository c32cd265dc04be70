package domain

import "time"

// QuizSubmission es una corrida persistida del cuestionario: respuestas
// crudas mas el resultado de clasificacion que produjeron.
type QuizSubmission struct {
	ID               string               `json:"id"`
	UserID           string               `json:"user_id,omitempty"`
	Locale           string               `json:"locale,omitempty"`
	Answers          Answers              `json:"answers"`
	SkinType         SkinType             `json:"skin_type"`
	Scores           map[SkinType]float64 `json:"scores"`
	TieBreakerUsed   bool                 `json:"tie_breaker_used"`
	CreatedAt        time.Time            `json:"created_at"`
}
