package services

import (
	"errors"

	"github.com/ManishJoc14/note-library/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SummaryService struct {
	db *gorm.DB
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{db: db}
}

// Save upserts on (user_id, quiz_id): the latest submission for a quiz wins
// and earlier attempts keep no history. The unique index makes this safe
// under concurrent submissions, unlike a read-modify-write on a collection
// column.
func (s *SummaryService) Save(summary *models.QuizSummary) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "subject", "grade", "score",
			"correct_count", "missed_count", "skipped_count",
			"questions_review", "completed_at",
		}),
	}).Create(summary).Error
}

// Fetch reports ErrNotFound for an absent summary so callers can tell
// "never taken" apart from a backend failure.
func (s *SummaryService) Fetch(userID, quizID uint) (*models.QuizSummary, error) {
	var summary models.QuizSummary
	err := s.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (s *SummaryService) List(userID uint) ([]models.QuizSummary, error) {
	var summaries []models.QuizSummary
	err := s.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&summaries).Error
	return summaries, err
}
