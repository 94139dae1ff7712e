package models

import "time"

// QuizSummary is one user's latest result for one quiz. The (user_id, quiz_id)
// pair is unique: resubmission replaces the earlier row instead of appending.
type QuizSummary struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	UserID          uint             `gorm:"not null;uniqueIndex:idx_user_quiz" json:"user_id"`
	QuizID          uint             `gorm:"not null;uniqueIndex:idx_user_quiz" json:"quiz_id"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Subject         string           `gorm:"size:100;not null" json:"subject"`
	Grade           string           `gorm:"size:10;not null" json:"grade"`
	Score           float64          `gorm:"not null" json:"score"`
	CorrectCount    int              `gorm:"not null" json:"correct_count"`
	MissedCount     int              `gorm:"not null" json:"missed_count"`
	SkippedCount    int              `gorm:"not null" json:"skipped_count"`
	QuestionsReview []ReviewQuestion `gorm:"serializer:json" json:"questions_review"`
	CompletedAt     time.Time        `json:"completed_at"`
}

// ReviewQuestion is derived at grading time and stored only inside a summary.
// CorrectAnswer is the decrypted option index; UserAnswer is nil for skipped
// questions (absence is distinct from selecting option 0).
type ReviewQuestion struct {
	QuestionID    uint     `json:"question_id"`
	Text          string   `json:"text"`
	Status        string   `json:"status"`
	Options       []string `json:"options"`
	UserAnswer    *int     `json:"user_answer,omitempty"`
	CorrectAnswer int      `json:"correct_answer"`
}

const (
	ReviewStatusCorrect = "correct"
	ReviewStatusMissed  = "missed"
	ReviewStatusSkipped = "skipped"
)
