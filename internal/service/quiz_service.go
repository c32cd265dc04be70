package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dermamatch/internal/domain"
)

// QuizService orquesta la clasificacion del cuestionario y persiste la
// corrida cuando el usuario esta autenticado.
type QuizService struct {
	classifier *Classifier
	definition domain.Questionnaire
	logger     *zap.Logger
	persistFn  func(ctx context.Context, submission domain.QuizSubmission) error
}

var ErrQuizServiceNotConfigured = errors.New("quiz service not configured")

// SubmissionStore es el subconjunto del repositorio que necesita el quiz.
type SubmissionStore interface {
	Create(ctx context.Context, submission domain.QuizSubmission) error
}

func NewQuizService(definition domain.Questionnaire, submissions SubmissionStore, logger *zap.Logger) *QuizService {
	svc := &QuizService{
		classifier: NewClassifier(logger),
		definition: definition,
		logger:     logger,
	}
	if submissions != nil {
		svc.persistFn = submissions.Create
	}
	return svc
}

// Definition expone la definicion cargada (para servirla por HTTP/CLI).
func (s *QuizService) Definition() domain.Questionnaire {
	return s.definition
}

// Classify corre el clasificador sobre las respuestas. Nunca falla por
// respuestas malformadas: eso degrada a "pregunta sin responder".
func (s *QuizService) Classify(answers domain.Answers) (domain.ClassificationResult, error) {
	if s == nil || s.classifier == nil {
		return domain.ClassificationResult{}, ErrQuizServiceNotConfigured
	}
	return s.classifier.Classify(s.definition, answers), nil
}

// Submit clasifica y, si hay userID, persiste la corrida.
func (s *QuizService) Submit(ctx context.Context, userID, locale string, answers domain.Answers) (domain.ClassificationResult, error) {
	result, err := s.Classify(answers)
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	if userID == "" || s.persistFn == nil {
		return result, nil
	}

	submission := domain.QuizSubmission{
		ID:             uuid.NewString(),
		UserID:         userID,
		Locale:         locale,
		Answers:        answers,
		SkinType:       result.SkinType,
		Scores:         result.Scores,
		TieBreakerUsed: result.TieBreakerUsed,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.persistFn(ctx, submission); err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("persist quiz submission: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("quiz submission stored",
			zap.String("user_id", userID),
			zap.String("skin_type", string(result.SkinType)),
		)
	}
	return result, nil
}
