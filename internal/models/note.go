package models

import "time"

type Note struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Subject     string    `gorm:"size:100;not null;index:idx_note_grade_subject" json:"subject"`
	Grade       string    `gorm:"size:10;not null;index:idx_note_grade_subject" json:"grade"`
	Description string    `gorm:"type:text" json:"description"`
	FilePath    string    `gorm:"size:500;not null" json:"file_path"`
	FileURL     string    `gorm:"size:500;not null" json:"file_url"`
	FileType    string    `gorm:"size:100" json:"file_type"`
	FileSize    string    `gorm:"size:20" json:"file_size"`
	UploadDate  time.Time `json:"upload_date"`
	Downloads   int       `gorm:"not null;default:0" json:"downloads"`
	Likes       int       `gorm:"not null;default:0" json:"likes"`
	Views       int       `gorm:"not null;default:0" json:"views"`

	// IsLiked is filled per requesting user on reads, never stored.
	IsLiked bool `gorm:"-" json:"is_liked"`
}

// NoteLike is one user's like on one note. The pair is unique so a toggle
// is an insert or a delete, never a duplicate row.
type NoteLike struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	NoteID  uint      `gorm:"not null;uniqueIndex:idx_note_like" json:"note_id"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_note_like" json:"user_id"`
	LikedAt time.Time `json:"liked_at"`
}

// NoteView records that a user has seen a note; repeat views do not add rows.
type NoteView struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	NoteID   uint      `gorm:"not null;uniqueIndex:idx_note_view" json:"note_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_note_view" json:"user_id"`
	ViewedAt time.Time `json:"viewed_at"`
}
