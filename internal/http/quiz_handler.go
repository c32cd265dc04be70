package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"dermamatch/internal/domain"
	"dermamatch/internal/questionnaire"
	"dermamatch/internal/repository"
	"dermamatch/internal/service"
)

// QuizHandler mantiene dependencias para endpoints del cuestionario.
type QuizHandler struct {
	logger      *zap.Logger
	quizServ    *service.QuizService
	submissions repository.SubmissionRepository
}

func NewQuizHandler(logger *zap.Logger, quizServ *service.QuizService, submissions repository.SubmissionRepository) *QuizHandler {
	return &QuizHandler{
		logger:      logger,
		quizServ:    quizServ,
		submissions: submissions,
	}
}

// GetQuiz maneja GET /quiz. Devuelve las preguntas localizadas segun
// el query param `locale` (default "en").
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	locale := c.DefaultQuery("locale", "en")
	questions := questionnaire.Localize(h.quizServ.Definition(), locale)
	c.JSON(http.StatusOK, gin.H{"locale": locale, "questions": questions})
}

// SubmitQuiz maneja POST /quiz/submit. Acepta anonimos; si el request
// llega con JWT valido, la corrida queda asociada al usuario.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req struct {
		Locale  string            `json:"locale"`
		Answers map[string]string `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid quiz submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Locale == "" {
		req.Locale = "en"
	}

	userID := ""
	if claims, ok := GetAuthClaims(c); ok {
		userID = claims.UserID
	}

	result, err := h.quizServ.Submit(c.Request.Context(), userID, req.Locale, domain.Answers(req.Answers))
	if err != nil {
		h.logger.Error("quiz submit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not classify answers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// LatestResult maneja GET /me/result. Requiere JWT.
func (h *QuizHandler) LatestResult(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	if h.submissions == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submissions not configured"})
		return
	}

	submission, err := h.submissions.GetLatestByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no quiz result yet"})
			return
		}
		h.logger.Error("get latest result failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}
