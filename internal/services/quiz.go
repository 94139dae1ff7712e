package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ManishJoc14/note-library/internal/crypto"
	"github.com/ManishJoc14/note-library/internal/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db     *gorm.DB
	cipher *crypto.Cipher
}

func NewQuizService(db *gorm.DB, cipher *crypto.Cipher) *QuizService {
	return &QuizService{db: db, cipher: cipher}
}

type QuestionInput struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type QuizInput struct {
	Title      string          `json:"title"`
	Subject    string          `json:"subject"`
	Grade      string          `json:"grade"`
	Duration   int             `json:"duration"`
	Difficulty string          `json:"difficulty"`
	Image      string          `json:"image"`
	Questions  []QuestionInput `json:"questions"`
}

// CreateQuiz validates the input and stores the quiz with every correct
// answer encrypted. The plaintext index never reaches the database.
func (s *QuizService) CreateQuiz(input QuizInput) (*models.Quiz, error) {
	if input.Title == "" || input.Subject == "" || input.Grade == "" {
		return nil, fmt.Errorf("%w: title, subject and grade are required", ErrValidation)
	}
	if input.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	switch input.Difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return nil, fmt.Errorf("%w: difficulty must be Easy, Medium or Hard", ErrValidation)
	}
	if len(input.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz must have at least one question", ErrValidation)
	}
	for i, q := range input.Questions {
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("%w: question %d must have exactly 4 options", ErrValidation, i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d correct answer out of range", ErrValidation, i+1)
		}
	}

	quiz := models.Quiz{
		Title:      input.Title,
		Subject:    input.Subject,
		Grade:      input.Grade,
		Duration:   input.Duration,
		Difficulty: input.Difficulty,
		Image:      input.Image,
	}

	tx := s.db.Begin()
	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for i, q := range input.Questions {
		encrypted, err := s.cipher.Encrypt(strconv.Itoa(q.CorrectAnswer))
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		question := models.Question{
			QuizID:        quiz.ID,
			Text:          q.Text,
			OrderNum:      i,
			Options:       q.Options,
			CorrectAnswer: encrypted,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).First(&quiz, quiz.ID)
	return &quiz, nil
}

// ListByGrade returns quizzes newest first. Answer keys in the payload stay
// encrypted.
func (s *QuizService) ListByGrade(grade string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Where("grade = ?", grade).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func (s *QuizService) ListAll() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (s *QuizService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	result := s.db.Delete(&models.Quiz{}, quizID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordResult folds one completed attempt into the quiz aggregates. The
// update is last-write-wins like the rest of the counters.
func (s *QuizService) RecordResult(quizID uint, score float64) error {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	total := quiz.AvgScore*float64(quiz.Participants) + score
	quiz.Participants++
	quiz.AvgScore = total / float64(quiz.Participants)

	return s.db.Model(&quiz).Updates(map[string]interface{}{
		"participants": quiz.Participants,
		"avg_score":    quiz.AvgScore,
	}).Error
}

// Upcoming feeds the student dashboard with the newest quizzes for a grade.
func (s *QuizService) Upcoming(grade string, limit int) ([]models.Quiz, error) {
	if limit <= 0 {
		limit = 5
	}
	var quizzes []models.Quiz
	err := s.db.Where("grade = ?", grade).
		Order("created_at DESC").
		Limit(limit).
		Find(&quizzes).Error
	return quizzes, err
}
