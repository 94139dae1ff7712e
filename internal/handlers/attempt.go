package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/ManishJoc14/note-library/internal/attempt"
	"github.com/ManishJoc14/note-library/internal/services"
	"github.com/ManishJoc14/note-library/internal/ws"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	manager        *attempt.Manager
	quizService    *services.QuizService
	scoringService *services.ScoringService
	summaryService *services.SummaryService
	hub            *ws.Hub
}

func NewAttemptHandler(
	manager *attempt.Manager,
	quizService *services.QuizService,
	scoringService *services.ScoringService,
	summaryService *services.SummaryService,
	hub *ws.Hub,
) *AttemptHandler {
	return &AttemptHandler{
		manager:        manager,
		quizService:    quizService,
		scoringService: scoringService,
		summaryService: summaryService,
		hub:            hub,
	}
}

type AttemptResponse struct {
	ChannelID string        `json:"channel_id"`
	Resumed   bool          `json:"resumed"`
	State     attempt.State `json:"state"`
}

// Start godoc
// @Summary      Start or resume a quiz attempt
// @Description  Starts the countdown for the quiz's duration. The clock expiring auto-submits the attempt.
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} AttemptResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/attempt [post]
func (h *AttemptHandler) Start(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	quiz, err := h.quizService.GetQuiz(uint(quizID))
	if err != nil {
		abortWith(c, err)
		return
	}
	if len(quiz.Questions) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quiz has no questions"})
		return
	}

	a, resumed := h.manager.Start(c.GetUint("user_id"), quiz,
		func(a *attempt.Attempt, timeLeft int) {
			h.hub.Broadcast(a.ChannelID, ws.WSMessage{
				Type: "tick",
				Data: gin.H{"time_left": timeLeft},
			})
		},
		h.finishExpired,
	)

	c.JSON(http.StatusOK, AttemptResponse{
		ChannelID: a.ChannelID,
		Resumed:   resumed,
		State:     a.Snapshot(),
	})
}

// finishExpired is the timer's completion path. The manual path in Complete
// and this one race through Attempt.Complete, which guarantees exactly one
// of them grades.
func (h *AttemptHandler) finishExpired(a *attempt.Attempt, finalAnswers map[int]int) {
	summary, err := h.finish(a, finalAnswers)
	if err != nil {
		log.Printf("attempt: auto-submit failed for user %d quiz %d: %v", a.UserID, a.Quiz.ID, err)
		h.hub.Broadcast(a.ChannelID, ws.WSMessage{
			Type: "error",
			Data: gin.H{"error": "failed to grade quiz"},
		})
		return
	}
	h.hub.Broadcast(a.ChannelID, ws.WSMessage{Type: "completed", Data: summary})
}

func (h *AttemptHandler) finish(a *attempt.Attempt, finalAnswers map[int]int) (*QuizSummary, error) {
	defer h.manager.Remove(a)

	summary, err := h.scoringService.Grade(a.UserID, a.Quiz, finalAnswers)
	if err != nil {
		return nil, err
	}
	if err := h.summaryService.Save(summary); err != nil {
		return nil, err
	}
	if err := h.quizService.RecordResult(a.Quiz.ID, summary.Score); err != nil {
		log.Printf("attempt: failed to update quiz aggregates for quiz %d: %v", a.Quiz.ID, err)
	}
	return summary, nil
}

// GetState godoc
// @Summary      Get the live state of an attempt
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} AttemptResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/attempt [get]
func (h *AttemptHandler) GetState(c *gin.Context) {
	a, ok := h.liveAttempt(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, AttemptResponse{ChannelID: a.ChannelID, Resumed: true, State: a.Snapshot()})
}

type AnswerRequest struct {
	OptionIndex int `json:"option_index" example:"2"`
}

// Answer godoc
// @Summary      Select an answer for the current question
// @Description  Overwrites any earlier selection for that question
// @Tags         attempts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Param        request body AnswerRequest true "Selected option"
// @Success      200 {object} attempt.State
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/attempt/answer [post]
func (h *AttemptHandler) Answer(c *gin.Context) {
	a, ok := h.liveAttempt(c)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := a.SelectAnswer(req.OptionIndex); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, a.Snapshot())
}

// Next godoc
// @Summary      Move to the next question
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} attempt.State
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/attempt/next [post]
func (h *AttemptHandler) Next(c *gin.Context) {
	a, ok := h.liveAttempt(c)
	if !ok {
		return
	}
	if err := a.Next(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, a.Snapshot())
}

// Previous godoc
// @Summary      Move to the previous question
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} attempt.State
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/attempt/previous [post]
func (h *AttemptHandler) Previous(c *gin.Context) {
	a, ok := h.liveAttempt(c)
	if !ok {
		return
	}
	if err := a.Previous(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, a.Snapshot())
}

// Complete godoc
// @Summary      Complete an attempt and get the graded summary
// @Description  Idempotent against the timer's auto-submit: whichever completes first grades, the other is a no-op.
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} QuizSummary
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/attempt/complete [post]
func (h *AttemptHandler) Complete(c *gin.Context) {
	a, ok := h.liveAttempt(c)
	if !ok {
		return
	}

	finalAnswers, first := a.Complete()
	if !first {
		// Timer beat us to it; hand back the stored summary if it landed.
		summary, err := h.summaryService.Fetch(a.UserID, a.Quiz.ID)
		if err != nil {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "attempt already completed"})
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	summary, err := h.finish(a, finalAnswers)
	if err != nil {
		if errors.Is(err, services.ErrGrading) {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to grade quiz"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(a.ChannelID, ws.WSMessage{Type: "completed", Data: summary})
	c.JSON(http.StatusOK, summary)
}

// Abandon godoc
// @Summary      Abandon an attempt
// @Description  Tears the attempt down without grading and releases its timer
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/attempt [delete]
func (h *AttemptHandler) Abandon(c *gin.Context) {
	a, ok := h.liveAttempt(c)
	if !ok {
		return
	}
	h.manager.Remove(a)
	c.JSON(http.StatusOK, MessageResponse{Message: "attempt abandoned"})
}

func (h *AttemptHandler) liveAttempt(c *gin.Context) (*attempt.Attempt, bool) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return nil, false
	}

	a, err := h.manager.Get(c.GetUint("user_id"), uint(quizID))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no attempt in progress for this quiz"})
		return nil, false
	}
	return a, true
}
