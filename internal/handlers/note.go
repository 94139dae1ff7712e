package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ManishJoc14/note-library/internal/models"
	"github.com/ManishJoc14/note-library/internal/services"
	"github.com/ManishJoc14/note-library/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NoteHandler struct {
	noteService *services.NoteService
	store       storage.Storage
}

func NewNoteHandler(noteService *services.NoteService, store storage.Storage) *NoteHandler {
	return &NoteHandler{noteService: noteService, store: store}
}

var (
	documentExts = map[string]bool{".pdf": true, ".doc": true, ".docx": true}
	imageExts    = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
)

const (
	maxDocumentSize = 50 << 20
	maxImageSize    = 10 << 20
)

// validateUpload rejects unsupported or oversized files before anything is
// sent to storage.
func validateUpload(filename string, size int64) (ext string, err error) {
	ext = strings.ToLower(filepath.Ext(filename))
	switch {
	case documentExts[ext]:
		if size > maxDocumentSize {
			return "", fmt.Errorf("%w: file size must be less than 50MB", services.ErrValidation)
		}
	case imageExts[ext]:
		if size > maxImageSize {
			return "", fmt.Errorf("%w: image size must be less than 10MB", services.ErrValidation)
		}
	default:
		return "", fmt.Errorf("%w: only PDF, Word documents and JPEG/PNG images are allowed", services.ErrValidation)
	}
	return ext, nil
}

func humanSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// Upload godoc
// @Summary      Upload a note
// @Description  Validate and store a study-note file, then save its metadata
// @Tags         notes
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Note file"
// @Param        title formData string true "Title"
// @Param        subject formData string true "Subject"
// @Param        grade formData string true "Grade"
// @Param        description formData string false "Description"
// @Success      201 {object} Note
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/notes [post]
func (h *NoteHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file provided"})
		return
	}

	title := c.PostForm("title")
	subject := strings.ToLower(c.PostForm("subject"))
	grade := c.PostForm("grade")
	if title == "" || subject == "" || grade == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title, subject and grade are required"})
		return
	}

	ext, err := validateUpload(file.Filename, file.Size)
	if err != nil {
		abortWith(c, err)
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read file"})
		return
	}
	defer src.Close()

	key := fmt.Sprintf("notes/%s/%s/%s%s", grade, subject, uuid.NewString(), ext)
	url, err := h.store.Upload(c.Request.Context(), key, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to upload file"})
		return
	}

	note := models.Note{
		Title:       title,
		Subject:     subject,
		Grade:       grade,
		Description: c.PostForm("description"),
		FilePath:    key,
		FileURL:     url,
		FileType:    ext,
		FileSize:    humanSize(file.Size),
		UploadDate:  time.Now(),
	}
	if err := h.noteService.Create(&note); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, note)
}

// List godoc
// @Summary      List notes for a grade and subject
// @Description  Each note carries is_liked for the requesting user
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        grade query string true "Grade"
// @Param        subject query string true "Subject"
// @Success      200 {array} Note
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	grade := c.Query("grade")
	subject := strings.ToLower(c.Query("subject"))
	if grade == "" || subject == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "grade and subject are required"})
		return
	}

	notes, err := h.noteService.ListByGradeAndSubject(grade, subject, c.GetUint("user_id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// ListAll godoc
// @Summary      List every note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Note
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/notes/all [get]
func (h *NoteHandler) ListAll(c *gin.Context) {
	notes, err := h.noteService.ListAll()
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

type LikeResponse struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"is_liked"`
}

// ToggleLike godoc
// @Summary      Toggle like on a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Note ID"
// @Success      200 {object} LikeResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/notes/{id}/like [post]
func (h *NoteHandler) ToggleLike(c *gin.Context) {
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid note id"})
		return
	}

	likes, isLiked, err := h.noteService.ToggleLike(c.GetUint("user_id"), uint(noteID))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, LikeResponse{Likes: likes, IsLiked: isLiked})
}

type ViewResponse struct {
	Views         int  `json:"views"`
	AlreadyViewed bool `json:"already_viewed"`
}

// RegisterView godoc
// @Summary      Register a view on a note
// @Description  Counts the first view per user; repeat views are reported as already_viewed
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Note ID"
// @Success      200 {object} ViewResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/notes/{id}/view [post]
func (h *NoteHandler) RegisterView(c *gin.Context) {
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid note id"})
		return
	}

	views, already, err := h.noteService.RegisterView(c.GetUint("user_id"), uint(noteID))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, ViewResponse{Views: views, AlreadyViewed: already})
}

// RegisterDownload godoc
// @Summary      Register a download on a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Note ID"
// @Success      200 {object} map[string]int
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/notes/{id}/download [post]
func (h *NoteHandler) RegisterDownload(c *gin.Context) {
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid note id"})
		return
	}

	downloads, err := h.noteService.RegisterDownload(uint(noteID))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloads": downloads})
}

// Delete godoc
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Note ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid note id"})
		return
	}

	if err := h.noteService.Delete(uint(noteID)); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "note deleted"})
}
