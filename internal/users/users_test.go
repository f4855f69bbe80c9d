package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abcdefghi1"))
	assert.NoError(t, ValidatePassword("1234567890"))

	assert.ErrorIs(t, ValidatePassword("short1"), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword("nodigitsatall"), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword(""), ErrWeakPassword)
}

func TestTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	u := User{ID: 42, Email: "buyer@example.com"}

	tok, err := IssueToken(secret, u, time.Hour)
	require.NoError(t, err)

	id, err := ParseToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseToken("wrong-secret", tok)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tok, err := IssueToken("s", User{ID: 1}, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken("s", tok)
	assert.Error(t, err)
}
