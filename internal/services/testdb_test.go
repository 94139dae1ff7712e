package services

import (
	"fmt"
	"testing"

	"github.com/ManishJoc14/note-library/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a private in-memory database per test. One open connection so
// the pool cannot silently spread across separate memory instances.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.NoteLike{},
		&models.NoteView{},
		&models.Quiz{},
		&models.Question{},
		&models.QuizSummary{},
		&models.Feedback{},
	))
	return db
}
