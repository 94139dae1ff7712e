package services

import (
	"strconv"
	"testing"

	"github.com/ManishJoc14/note-library/internal/crypto"
	"github.com/ManishJoc14/note-library/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encryptedQuiz builds a quiz whose answer keys are encrypted with the given
// cipher; correctAnswers[i] is the right option index for question i.
func encryptedQuiz(t *testing.T, cipher *crypto.Cipher, correctAnswers []int) *models.Quiz {
	t.Helper()

	quiz := &models.Quiz{ID: 42, Title: "Physics", Subject: "physics", Grade: "11", Duration: 10}
	for i, correct := range correctAnswers {
		encrypted, err := cipher.Encrypt(strconv.Itoa(correct))
		require.NoError(t, err)
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:            uint(i + 1),
			QuizID:        quiz.ID,
			Text:          "question " + strconv.Itoa(i+1),
			OrderNum:      i,
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: encrypted,
		})
	}
	return quiz
}

func TestGrade_AllCorrect(t *testing.T) {
	cipher := crypto.NewCipher("test-key")
	svc := NewScoringService(cipher)
	quiz := encryptedQuiz(t, cipher, []int{0, 1, 2, 3})

	summary, err := svc.Grade(9, quiz, map[int]int{0: 0, 1: 1, 2: 2, 3: 3})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.CorrectCount)
	assert.Equal(t, 0, summary.MissedCount)
	assert.Equal(t, 0, summary.SkippedCount)
	assert.Equal(t, 100.0, summary.Score)
	assert.Equal(t, uint(9), summary.UserID)
	assert.Equal(t, quiz.ID, summary.QuizID)
	assert.False(t, summary.CompletedAt.IsZero())
}

func TestGrade_AllSkipped(t *testing.T) {
	cipher := crypto.NewCipher("test-key")
	svc := NewScoringService(cipher)
	quiz := encryptedQuiz(t, cipher, []int{1, 1, 1})

	summary, err := svc.Grade(9, quiz, map[int]int{})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.CorrectCount)
	assert.Equal(t, 0, summary.MissedCount)
	assert.Equal(t, 3, summary.SkippedCount)
	assert.Equal(t, 0.0, summary.Score)
	for _, rq := range summary.QuestionsReview {
		assert.Equal(t, models.ReviewStatusSkipped, rq.Status)
		assert.Nil(t, rq.UserAnswer)
	}
}

func TestGrade_Mixed(t *testing.T) {
	cipher := crypto.NewCipher("test-key")
	svc := NewScoringService(cipher)
	quiz := encryptedQuiz(t, cipher, []int{0, 1, 2, 3})

	// correct, wrong, correct, absent
	summary, err := svc.Grade(9, quiz, map[int]int{0: 0, 1: 3, 2: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.CorrectCount)
	assert.Equal(t, 1, summary.MissedCount)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.Equal(t, 50.0, summary.Score)
	assert.Equal(t, len(quiz.Questions), summary.CorrectCount+summary.MissedCount+summary.SkippedCount)

	require.Len(t, summary.QuestionsReview, 4)
	assert.Equal(t, models.ReviewStatusCorrect, summary.QuestionsReview[0].Status)
	assert.Equal(t, models.ReviewStatusMissed, summary.QuestionsReview[1].Status)
	assert.Equal(t, models.ReviewStatusCorrect, summary.QuestionsReview[2].Status)
	assert.Equal(t, models.ReviewStatusSkipped, summary.QuestionsReview[3].Status)
}

func TestGrade_AnswerZeroCountsAsAnswered(t *testing.T) {
	cipher := crypto.NewCipher("test-key")
	svc := NewScoringService(cipher)
	quiz := encryptedQuiz(t, cipher, []int{2})

	summary, err := svc.Grade(9, quiz, map[int]int{0: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.MissedCount)
	assert.Equal(t, 0, summary.SkippedCount)
	require.NotNil(t, summary.QuestionsReview[0].UserAnswer)
	assert.Equal(t, 0, *summary.QuestionsReview[0].UserAnswer)
}

func TestGrade_ReviewCarriesDecryptedAnswer(t *testing.T) {
	cipher := crypto.NewCipher("test-key")
	svc := NewScoringService(cipher)
	quiz := encryptedQuiz(t, cipher, []int{3, 1})

	summary, err := svc.Grade(9, quiz, map[int]int{0: 3, 1: 0})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.QuestionsReview[0].CorrectAnswer)
	assert.Equal(t, 1, summary.QuestionsReview[1].CorrectAnswer)
	for i, rq := range summary.QuestionsReview {
		assert.Equal(t, quiz.Questions[i].ID, rq.QuestionID)
		assert.Equal(t, quiz.Questions[i].Options, rq.Options)
	}
}

func TestGrade_EmptyQuiz(t *testing.T) {
	cipher := crypto.NewCipher("test-key")
	svc := NewScoringService(cipher)
	quiz := &models.Quiz{ID: 1, Title: "Empty"}

	summary, err := svc.Grade(9, quiz, map[int]int{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Score)
	assert.Empty(t, summary.QuestionsReview)
}

func TestGrade_FailsOnUndecryptableKey(t *testing.T) {
	cipher := crypto.NewCipher("test-key")
	svc := NewScoringService(cipher)
	quiz := encryptedQuiz(t, cipher, []int{0, 1})
	quiz.Questions[1].CorrectAnswer = "not-a-ciphertext"

	_, err := svc.Grade(9, quiz, map[int]int{0: 0, 1: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGrading)
}

func TestGrade_FailsOnKeyFromDifferentPassphrase(t *testing.T) {
	cipher := crypto.NewCipher("test-key")
	other := crypto.NewCipher("other-key")
	svc := NewScoringService(cipher)

	quiz := encryptedQuiz(t, other, []int{1})

	_, err := svc.Grade(9, quiz, map[int]int{0: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGrading)
}
