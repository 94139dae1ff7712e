package services

import (
	"errors"
	"time"

	"github.com/ManishJoc14/note-library/internal/models"
	"github.com/ManishJoc14/note-library/internal/optimistic"

	"gorm.io/gorm"
)

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

func (s *NoteService) Create(note *models.Note) error {
	if note.UploadDate.IsZero() {
		note.UploadDate = time.Now()
	}
	return s.db.Create(note).Error
}

// ListByGradeAndSubject annotates each note with whether the requesting user
// has liked it, so clients can render the toggle without a second query.
func (s *NoteService) ListByGradeAndSubject(grade, subject string, userID uint) ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.Where("grade = ? AND subject = ?", grade, subject).
		Order("upload_date DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}

	var likedIDs []uint
	if err := s.db.Model(&models.NoteLike{}).
		Where("user_id = ?", userID).
		Pluck("note_id", &likedIDs).Error; err != nil {
		return nil, err
	}
	liked := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}

	for i := range notes {
		notes[i].IsLiked = liked[notes[i].ID]
	}
	return notes, nil
}

func (s *NoteService) ListAll() ([]models.Note, error) {
	var notes []models.Note
	err := s.db.Order("upload_date DESC").Find(&notes).Error
	return notes, err
}

func (s *NoteService) Get(noteID uint) (*models.Note, error) {
	var note models.Note
	if err := s.db.First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Delete(noteID uint) error {
	result := s.db.Delete(&models.Note{}, noteID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike flips the user's like on a note. The count change is applied to
// the loaded note before the write and rolled back if persistence fails, so
// the returned count always matches what was (or would have been) stored.
// Calling twice restores the original count and liked state.
func (s *NoteService) ToggleLike(userID, noteID uint) (newLikeCount int, isLikedNow bool, err error) {
	note, err := s.Get(noteID)
	if err != nil {
		return 0, false, err
	}

	var existing models.NoteLike
	wasLiked := s.db.Where("note_id = ? AND user_id = ?", noteID, userID).
		First(&existing).Error == nil

	cmd := optimistic.Command{
		Apply: func() {
			if wasLiked {
				note.Likes--
			} else {
				note.Likes++
			}
		},
		Rollback: func() {
			if wasLiked {
				note.Likes++
			} else {
				note.Likes--
			}
		},
	}

	err = optimistic.Run(cmd, func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if wasLiked {
				if err := tx.Delete(&existing).Error; err != nil {
					return err
				}
			} else {
				like := models.NoteLike{NoteID: noteID, UserID: userID, LikedAt: time.Now()}
				if err := tx.Create(&like).Error; err != nil {
					return err
				}
			}
			// Last write wins on the counter column; concurrent togglers
			// may transiently drift and that is accepted.
			return tx.Model(&models.Note{}).Where("id = ?", noteID).
				UpdateColumn("likes", note.Likes).Error
		})
	})
	if err != nil {
		return note.Likes, wasLiked, err
	}

	return note.Likes, !wasLiked, nil
}

// RegisterView counts the first view per (user, note); repeats are a success
// that reports alreadyViewed with the count unchanged.
func (s *NoteService) RegisterView(userID, noteID uint) (newViewCount int, alreadyViewed bool, err error) {
	note, err := s.Get(noteID)
	if err != nil {
		return 0, false, err
	}

	var existing models.NoteView
	if s.db.Where("note_id = ? AND user_id = ?", noteID, userID).
		First(&existing).Error == nil {
		return note.Views, true, nil
	}

	cmd := optimistic.Command{
		Apply:    func() { note.Views++ },
		Rollback: func() { note.Views-- },
	}

	err = optimistic.Run(cmd, func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			view := models.NoteView{NoteID: noteID, UserID: userID, ViewedAt: time.Now()}
			if err := tx.Create(&view).Error; err != nil {
				return err
			}
			return tx.Model(&models.Note{}).Where("id = ?", noteID).
				UpdateColumn("views", note.Views).Error
		})
	})
	if err != nil {
		return note.Views, false, err
	}

	return note.Views, false, nil
}

func (s *NoteService) RegisterDownload(noteID uint) (int, error) {
	note, err := s.Get(noteID)
	if err != nil {
		return 0, err
	}

	note.Downloads++
	if err := s.db.Model(&models.Note{}).Where("id = ?", noteID).
		UpdateColumn("downloads", note.Downloads).Error; err != nil {
		return note.Downloads - 1, err
	}
	return note.Downloads, nil
}
