package services

import (
	"testing"

	"github.com/ManishJoc14/note-library/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNote(t *testing.T, svc *NoteService, grade, subject string) *models.Note {
	t.Helper()
	note := &models.Note{
		Title:    "Limits and Continuity",
		Subject:  subject,
		Grade:    grade,
		FilePath: "notes/12/math/limits.pdf",
		FileURL:  "/uploads/notes/12/math/limits.pdf",
		FileType: "pdf",
		FileSize: "1.2 MB",
	}
	require.NoError(t, svc.Create(note))
	return note
}

func TestNote_ToggleLikeRoundTrip(t *testing.T) {
	svc := NewNoteService(testDB(t))
	note := seedNote(t, svc, "12", "math")

	likes, liked, err := svc.ToggleLike(1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	assert.True(t, liked)

	likes, liked, err = svc.ToggleLike(1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, likes, "second toggle must restore the count")
	assert.False(t, liked)

	stored, err := svc.Get(note.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Likes)
}

func TestNote_LikesCountDistinctUsers(t *testing.T) {
	svc := NewNoteService(testDB(t))
	note := seedNote(t, svc, "12", "math")

	_, _, err := svc.ToggleLike(1, note.ID)
	require.NoError(t, err)
	likes, liked, err := svc.ToggleLike(2, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)
	assert.True(t, liked)
}

func TestNote_ToggleLikeMissingNote(t *testing.T) {
	svc := NewNoteService(testDB(t))

	_, _, err := svc.ToggleLike(1, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNote_RegisterViewIdempotent(t *testing.T) {
	svc := NewNoteService(testDB(t))
	note := seedNote(t, svc, "12", "math")

	views, already, err := svc.RegisterView(1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, views)
	assert.False(t, already)

	views, already, err = svc.RegisterView(1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, views, "repeat view must not increment")
	assert.True(t, already)

	views, already, err = svc.RegisterView(2, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, views)
	assert.False(t, already)
}

func TestNote_RegisterDownload(t *testing.T) {
	svc := NewNoteService(testDB(t))
	note := seedNote(t, svc, "12", "math")

	downloads, err := svc.RegisterDownload(note.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, downloads)

	// Downloads are not deduplicated.
	downloads, err = svc.RegisterDownload(note.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, downloads)
}

func TestNote_ListAnnotatesIsLiked(t *testing.T) {
	svc := NewNoteService(testDB(t))
	likedNote := seedNote(t, svc, "12", "math")
	otherNote := seedNote(t, svc, "12", "math")
	seedNote(t, svc, "12", "physics")

	_, _, err := svc.ToggleLike(1, likedNote.ID)
	require.NoError(t, err)
	_, _, err = svc.ToggleLike(2, otherNote.ID)
	require.NoError(t, err)

	notes, err := svc.ListByGradeAndSubject("12", "math", 1)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	byID := map[uint]models.Note{}
	for _, n := range notes {
		byID[n.ID] = n
	}
	assert.True(t, byID[likedNote.ID].IsLiked)
	assert.False(t, byID[otherNote.ID].IsLiked)
}

func TestNote_Delete(t *testing.T) {
	svc := NewNoteService(testDB(t))
	note := seedNote(t, svc, "12", "math")

	require.NoError(t, svc.Delete(note.ID))
	_, err := svc.Get(note.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(note.ID), ErrNotFound)
}
