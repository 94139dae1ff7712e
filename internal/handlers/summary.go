package handlers

import (
	"net/http"
	"strconv"

	"github.com/ManishJoc14/note-library/internal/services"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	summaryService *services.SummaryService
}

func NewSummaryHandler(summaryService *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// List godoc
// @Summary      List own completed quiz summaries
// @Tags         summaries
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} QuizSummary
// @Router       /api/v1/summaries [get]
func (h *SummaryHandler) List(c *gin.Context) {
	summaries, err := h.summaryService.List(c.GetUint("user_id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Get godoc
// @Summary      Get the summary for one quiz
// @Description  404 means the quiz was never completed, distinct from a backend failure
// @Tags         summaries
// @Produce      json
// @Security     BearerAuth
// @Param        quizId path int true "Quiz ID"
// @Success      200 {object} QuizSummary
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/summaries/{quizId} [get]
func (h *SummaryHandler) Get(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return
	}

	summary, err := h.summaryService.Fetch(c.GetUint("user_id"), uint(quizID))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
