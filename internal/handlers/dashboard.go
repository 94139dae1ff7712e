package handlers

import (
	"net/http"

	"github.com/ManishJoc14/note-library/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	summaryService *services.SummaryService
	quizService    *services.QuizService
	authService    *services.AuthService
}

func NewDashboardHandler(
	summaryService *services.SummaryService,
	quizService *services.QuizService,
	authService *services.AuthService,
) *DashboardHandler {
	return &DashboardHandler{
		summaryService: summaryService,
		quizService:    quizService,
		authService:    authService,
	}
}

type Activity struct {
	Type  string  `json:"type"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
	Date  string  `json:"date"`
}

type DashboardResponse struct {
	CompletedQuizzes int        `json:"completed_quizzes"`
	AverageScore     float64    `json:"average_score"`
	RecentActivity   []Activity `json:"recent_activity"`
	UpcomingQuizzes  []Quiz     `json:"upcoming_quizzes"`
}

// Get godoc
// @Summary      Student dashboard aggregates
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} DashboardResponse
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := h.authService.GetUser(userID)
	if err != nil {
		abortWith(c, err)
		return
	}

	summaries, err := h.summaryService.List(userID)
	if err != nil {
		abortWith(c, err)
		return
	}

	avg := 0.0
	for _, s := range summaries {
		avg += s.Score
	}
	if len(summaries) > 0 {
		avg /= float64(len(summaries))
	}

	activity := make([]Activity, 0, 5)
	for i, s := range summaries {
		if i == 5 {
			break
		}
		activity = append(activity, Activity{
			Type:  "quiz",
			Title: s.Title,
			Score: s.Score,
			Date:  s.CompletedAt.Format("2006-01-02 15:04"),
		})
	}

	upcoming, err := h.quizService.Upcoming(user.Grade, 5)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		CompletedQuizzes: len(summaries),
		AverageScore:     avg,
		RecentActivity:   activity,
		UpcomingQuizzes:  upcoming,
	})
}
