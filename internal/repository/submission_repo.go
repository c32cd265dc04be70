package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dermamatch/internal/domain"
)

// SubmissionRepository persiste corridas del cuestionario.
type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.QuizSubmission) error
	GetLatestByUserID(ctx context.Context, userID string) (domain.QuizSubmission, error)
}

type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

func (r *PgSubmissionRepository) Create(ctx context.Context, submission domain.QuizSubmission) error {
	const query = `
		INSERT INTO quiz_submissions (id, user_id, locale, answers, skin_type, scores, tie_breaker_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	answers, err := json.Marshal(submission.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	scores, err := json.Marshal(submission.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		submission.ID,
		nullableString(submission.UserID),
		submission.Locale,
		answers,
		string(submission.SkinType),
		scores,
		submission.TieBreakerUsed,
		submission.CreatedAt,
	)
	return err
}

func (r *PgSubmissionRepository) GetLatestByUserID(ctx context.Context, userID string) (domain.QuizSubmission, error) {
	const query = `
		SELECT id, user_id, locale, answers, skin_type, scores, tie_breaker_used, created_at
		FROM quiz_submissions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var s domain.QuizSubmission
	var userIDCol *string
	var skinType string
	var answers, scores []byte

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.ID,
		&userIDCol,
		&s.Locale,
		&answers,
		&skinType,
		&scores,
		&s.TieBreakerUsed,
		&s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizSubmission{}, err
	}
	if err != nil {
		return domain.QuizSubmission{}, err
	}

	if userIDCol != nil {
		s.UserID = *userIDCol
	}
	s.SkinType = domain.SkinType(skinType)
	if err := json.Unmarshal(answers, &s.Answers); err != nil {
		return domain.QuizSubmission{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	if err := json.Unmarshal(scores, &s.Scores); err != nil {
		return domain.QuizSubmission{}, fmt.Errorf("unmarshal scores: %w", err)
	}
	return s, nil
}
