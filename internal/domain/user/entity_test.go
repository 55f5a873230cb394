//go:build unit

package user_test

import (
	"testing"

	"roomdesk/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{"ada@example.com", true},
		{"  ada@example.com  ", true},
		{"first.last+tag@sub.example.co", true},
		{"no-at-sign", false},
		{"@example.com", false},
		{"ada@", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			email, err := user.NewEmail(tc.input)
			if tc.valid {
				require.NoError(t, err)
				assert.NotEmpty(t, email.Value())
			} else {
				assert.ErrorIs(t, err, user.ErrInvalidEmail)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	_, err := user.NewPassword("short7!")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)

	_, err = user.NewPassword("longenough")
	assert.NoError(t, err)
}

func TestRole(t *testing.T) {
	t.Run("parsing", func(t *testing.T) {
		_, err := user.NewRole("superuser")
		assert.ErrorIs(t, err, user.ErrInvalidRole)

		role, err := user.NewRole("agent")
		require.NoError(t, err)
		assert.Equal(t, user.RoleAgent, role)
	})

	t.Run("staff scope", func(t *testing.T) {
		assert.False(t, user.RoleClient.IsStaff())
		assert.True(t, user.RoleAgent.IsStaff())
		assert.True(t, user.RoleAdmin.IsStaff())
	})
}

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("ada@example.com")
	require.NoError(t, err)

	u := user.NewUser(email, "hashed", user.RoleClient)
	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.True(t, u.IsActive())
	assert.Nil(t, u.LastLogin())
	assert.Equal(t, user.RoleClient, u.Role())
}
