package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ManishJoc14/note-library/internal/crypto"
	"github.com/ManishJoc14/note-library/internal/models"
)

type ScoringService struct {
	cipher *crypto.Cipher
}

func NewScoringService(cipher *crypto.Cipher) *ScoringService {
	return &ScoringService{cipher: cipher}
}

// Grade decrypts each question's answer key, classifies the user's answers
// and builds the summary. finalAnswers is the snapshot taken at completion:
// keys are question positions, values the chosen option index, and missing
// keys mean skipped. If any answer key fails to decrypt the whole operation
// fails with ErrGrading; a question is never silently counted correct or
// skipped because its key was unreadable.
func (s *ScoringService) Grade(userID uint, quiz *models.Quiz, finalAnswers map[int]int) (*models.QuizSummary, error) {
	var correct, missed, skipped int
	review := make([]models.ReviewQuestion, 0, len(quiz.Questions))

	for i, q := range quiz.Questions {
		plain, err := s.cipher.Decrypt(q.CorrectAnswer)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrGrading, q.ID, err)
		}
		correctIdx, err := strconv.Atoi(plain)
		if err != nil || correctIdx < 0 || correctIdx >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d has invalid answer key", ErrGrading, q.ID)
		}

		rq := models.ReviewQuestion{
			QuestionID:    q.ID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: correctIdx,
		}

		userAnswer, answered := finalAnswers[i]
		switch {
		case !answered:
			rq.Status = models.ReviewStatusSkipped
			skipped++
		case userAnswer == correctIdx:
			answer := userAnswer
			rq.UserAnswer = &answer
			rq.Status = models.ReviewStatusCorrect
			correct++
		default:
			answer := userAnswer
			rq.UserAnswer = &answer
			rq.Status = models.ReviewStatusMissed
			missed++
		}

		review = append(review, rq)
	}

	score := 0.0
	if n := len(quiz.Questions); n > 0 {
		score = 100 * float64(correct) / float64(n)
	}

	return &models.QuizSummary{
		UserID:          userID,
		QuizID:          quiz.ID,
		Title:           quiz.Title,
		Subject:         quiz.Subject,
		Grade:           quiz.Grade,
		Score:           score,
		CorrectCount:    correct,
		MissedCount:     missed,
		SkippedCount:    skipped,
		QuestionsReview: review,
		CompletedAt:     time.Now(),
	}, nil
}
