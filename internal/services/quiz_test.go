package services

import (
	"strconv"
	"testing"

	"github.com/ManishJoc14/note-library/internal/crypto"
	"github.com/ManishJoc14/note-library/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuizInput() QuizInput {
	return QuizInput{
		Title:      "Trigonometry Basics",
		Subject:    "math",
		Grade:      "10",
		Duration:   15,
		Difficulty: models.DifficultyMedium,
		Questions: []QuestionInput{
			{Text: "sin(90)?", Options: []string{"0", "1", "-1", "0.5"}, CorrectAnswer: 1},
			{Text: "cos(0)?", Options: []string{"0", "1", "-1", "0.5"}, CorrectAnswer: 1},
		},
	}
}

func TestQuiz_CreateEncryptsAnswersAtRest(t *testing.T) {
	db := testDB(t)
	cipher := crypto.NewCipher("test-key")
	svc := NewQuizService(db, cipher)

	quiz, err := svc.CreateQuiz(validQuizInput())
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)

	var stored []models.Question
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("order_num ASC").Find(&stored).Error)
	for i, q := range stored {
		assert.NotEqual(t, "1", q.CorrectAnswer, "plaintext index must never be stored")

		plain, err := cipher.Decrypt(q.CorrectAnswer)
		require.NoError(t, err)
		assert.Equal(t, "1", plain)
		assert.Equal(t, i, q.OrderNum)
	}
}

func TestQuiz_CreateValidation(t *testing.T) {
	svc := NewQuizService(testDB(t), crypto.NewCipher("test-key"))

	cases := map[string]func(*QuizInput){
		"missing title":         func(in *QuizInput) { in.Title = "" },
		"missing subject":       func(in *QuizInput) { in.Subject = "" },
		"missing grade":         func(in *QuizInput) { in.Grade = "" },
		"zero duration":         func(in *QuizInput) { in.Duration = 0 },
		"unknown difficulty":    func(in *QuizInput) { in.Difficulty = "Brutal" },
		"no questions":          func(in *QuizInput) { in.Questions = nil },
		"three options":         func(in *QuizInput) { in.Questions[0].Options = []string{"a", "b", "c"} },
		"answer out of range":   func(in *QuizInput) { in.Questions[0].CorrectAnswer = 4 },
		"negative answer index": func(in *QuizInput) { in.Questions[0].CorrectAnswer = -1 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validQuizInput()
			mutate(&input)
			_, err := svc.CreateQuiz(input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestQuiz_GetPreloadsOrderedQuestions(t *testing.T) {
	svc := NewQuizService(testDB(t), crypto.NewCipher("test-key"))

	created, err := svc.CreateQuiz(validQuizInput())
	require.NoError(t, err)

	got, err := svc.GetQuiz(created.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "sin(90)?", got.Questions[0].Text)
	assert.Equal(t, "cos(0)?", got.Questions[1].Text)

	_, err = svc.GetQuiz(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuiz_ListByGrade(t *testing.T) {
	svc := NewQuizService(testDB(t), crypto.NewCipher("test-key"))

	for _, grade := range []string{"10", "10", "11"} {
		input := validQuizInput()
		input.Grade = grade
		_, err := svc.CreateQuiz(input)
		require.NoError(t, err)
	}

	quizzes, err := svc.ListByGrade("10")
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestQuiz_RecordResultRunningAverage(t *testing.T) {
	svc := NewQuizService(testDB(t), crypto.NewCipher("test-key"))

	quiz, err := svc.CreateQuiz(validQuizInput())
	require.NoError(t, err)

	require.NoError(t, svc.RecordResult(quiz.ID, 100))
	require.NoError(t, svc.RecordResult(quiz.ID, 50))
	require.NoError(t, svc.RecordResult(quiz.ID, 0))

	got, err := svc.GetQuiz(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Participants)
	assert.InDelta(t, 50.0, got.AvgScore, 0.0001)

	assert.ErrorIs(t, svc.RecordResult(999, 50), ErrNotFound)
}

func TestQuiz_Upcoming(t *testing.T) {
	svc := NewQuizService(testDB(t), crypto.NewCipher("test-key"))

	for i := 0; i < 7; i++ {
		input := validQuizInput()
		input.Title = "Quiz " + strconv.Itoa(i)
		_, err := svc.CreateQuiz(input)
		require.NoError(t, err)
	}

	upcoming, err := svc.Upcoming("10", 0)
	require.NoError(t, err)
	assert.Len(t, upcoming, 5, "default limit is five")
}

func TestQuiz_Delete(t *testing.T) {
	svc := NewQuizService(testDB(t), crypto.NewCipher("test-key"))

	quiz, err := svc.CreateQuiz(validQuizInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuiz(quiz.ID))
	_, err = svc.GetQuiz(quiz.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteQuiz(quiz.ID), ErrNotFound)
}
