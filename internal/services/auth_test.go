package services

import (
	"testing"

	"github.com/ManishJoc14/note-library/internal/config"
	"github.com/ManishJoc14/note-library/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "unit-test-secret",
		AdminEmails: []string{"admin@notelibrary.test"},
	}
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())

	token, user, err := svc.Register("Sita Sharma", "sita@example.com", "hunter22", "10", "9800000000")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "hunter22", user.PasswordHash, "password must be stored hashed")

	token, user, err = svc.Login("sita@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Sita Sharma", user.FullName)
}

func TestAuth_DuplicateEmailRejected(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())

	_, _, err := svc.Register("Sita Sharma", "sita@example.com", "hunter22", "10", "")
	require.NoError(t, err)

	_, _, err = svc.Register("Other Sita", "sita@example.com", "different", "11", "")
	assert.Error(t, err)
}

func TestAuth_WrongPassword(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())

	_, _, err := svc.Register("Sita Sharma", "sita@example.com", "hunter22", "10", "")
	require.NoError(t, err)

	_, _, err = svc.Login("sita@example.com", "wrong")
	assert.Error(t, err)
	_, _, err = svc.Login("nobody@example.com", "hunter22")
	assert.Error(t, err)
}

func TestAuth_AdminRoleFromConfiguredEmail(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())

	_, user, err := svc.Register("Admin", "Admin@NoteLibrary.test", "adminpass", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role, "admin email match is case-insensitive")
}

func TestAuth_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())

	token, user, err := svc.Register("Sita Sharma", "sita@example.com", "hunter22", "10", "")
	require.NoError(t, err)

	userID, role, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, models.RoleStudent, role)
}

func TestAuth_TokenFromDifferentSecretRejected(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())
	other := NewAuthService(db, &config.Config{JWTSecret: "another-secret"})

	token, err := other.GenerateToken(&models.User{ID: 1, Role: models.RoleStudent})
	require.NoError(t, err)

	_, _, err = svc.ValidateToken(token)
	assert.Error(t, err)

	_, _, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestAuth_UpdateProfilePartial(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())

	_, user, err := svc.Register("Sita Sharma", "sita@example.com", "hunter22", "10", "9800000000")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "", "11", "")
	require.NoError(t, err)
	assert.Equal(t, "Sita Sharma", updated.FullName, "empty fields keep their value")
	assert.Equal(t, "11", updated.Grade)
	assert.Equal(t, "9800000000", updated.Phone)
}

func TestAuth_ListStudentsExcludesAdmins(t *testing.T) {
	svc := NewAuthService(testDB(t), testConfig())

	_, _, err := svc.Register("Sita Sharma", "sita@example.com", "hunter22", "10", "")
	require.NoError(t, err)
	_, _, err = svc.Register("Admin", "admin@notelibrary.test", "adminpass", "", "")
	require.NoError(t, err)

	students, err := svc.ListStudents()
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "sita@example.com", students[0].Email)
}
