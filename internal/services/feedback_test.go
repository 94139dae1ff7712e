package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedback_CreateAndList(t *testing.T) {
	svc := NewFeedbackService(testDB(t))

	_, err := svc.Create(1, "Sita Sharma", "More physics notes please")
	require.NoError(t, err)
	_, err = svc.Create(2, "Ram Thapa", "Quiz timer feels too short")
	require.NoError(t, err)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestFeedback_EmptyMessageRejected(t *testing.T) {
	svc := NewFeedbackService(testDB(t))

	_, err := svc.Create(1, "Sita Sharma", "")
	assert.ErrorIs(t, err, ErrValidation)
}
