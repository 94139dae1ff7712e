package models

import "time"

type Quiz struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Subject      string     `gorm:"size:100;not null" json:"subject"`
	Grade        string     `gorm:"size:10;not null;index" json:"grade"`
	Duration     int        `gorm:"not null" json:"duration"`
	Difficulty   string     `gorm:"size:10;not null;default:'Easy'" json:"difficulty"`
	Questions    []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Participants int        `gorm:"not null;default:0" json:"participants"`
	AvgScore     float64    `gorm:"not null;default:0" json:"avg_score"`
	Image        string     `gorm:"size:500" json:"image"`
	CreatedAt    time.Time  `json:"created_at"`
}

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question keeps its correct answer encrypted at rest. CorrectAnswer is
// hex(iv)||hex(ciphertext) of the option index and is only decrypted at
// grading time, never on the quiz read path.
type Question struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	QuizID        uint     `gorm:"not null;index" json:"quiz_id"`
	Text          string   `gorm:"type:text;not null" json:"text"`
	OrderNum      int      `gorm:"not null" json:"order_num"`
	Options       []string `gorm:"serializer:json;not null" json:"options"`
	CorrectAnswer string   `gorm:"size:255;not null" json:"correct_answer"`
}
