package services

import (
	"fmt"

	"github.com/ManishJoc14/note-library/internal/models"

	"gorm.io/gorm"
)

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

func (s *FeedbackService) Create(userID uint, userName, message string) (*models.Feedback, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	fb := models.Feedback{
		UserID:   userID,
		UserName: userName,
		Message:  message,
	}
	if err := s.db.Create(&fb).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

func (s *FeedbackService) List() ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.db.Order("created_at DESC").Find(&feedback).Error
	return feedback, err
}
