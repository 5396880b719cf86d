package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	a := New(Config{Username: "admin", Password: "admin123", Token: "demo-token-123"})

	token, err := a.Login("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "demo-token-123", token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := New(Config{Username: "admin", Password: "admin123", Token: "demo-token-123"})

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "hunter2"},
		{"wrong username", "root", "admin123"},
		{"both wrong", "root", "hunter2"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.Login(tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestValidToken(t *testing.T) {
	a := New(Config{Username: "admin", Password: "admin123", Token: "demo-token-123"})

	assert.True(t, a.ValidToken("demo-token-123"))
	assert.False(t, a.ValidToken("demo-token-124"))
	assert.False(t, a.ValidToken(""))
}
