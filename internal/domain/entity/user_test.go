package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_Defaults(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, DefaultConfidence, u.Confidence)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
}

func TestUser_SetConfidence_Clamped(t *testing.T) {
	u := NewUser(1, 10)

	u.SetConfidence(0.35)
	require.Equal(t, 0.35, u.Confidence)

	u.SetConfidence(0.01)
	require.Equal(t, MinConfidence, u.Confidence)

	u.SetConfidence(1.5)
	require.Equal(t, MaxConfidence, u.Confidence)
}
