package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmail_Valid(t *testing.T) {
	valid := []string{
		"a@b.com",
		"test@example.com",
		"first.last@sub.example.org",
		"user+tag@example.co.uk",
	}

	for _, raw := range valid {
		email, err := ParseEmail(raw)
		require.NoError(t, err, "expected %q to parse", raw)
		assert.Equal(t, raw, email.String())
	}
}

func TestParseEmail_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@nodot",
		"user@.com",
		"user@example.",
		"user @example.com",
		"user@exam ple.com",
		"Display Name <user@example.com>",
		"user@example.com\n",
	}

	for _, raw := range invalid {
		_, err := ParseEmail(raw)
		assert.ErrorIs(t, err, ErrInvalidEmail, "expected %q to fail", raw)
	}
}

func TestParseEmail_Normalizes(t *testing.T) {
	email, err := ParseEmail("User@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email.String())

	// parsing the canonical form again yields an equal value
	again, err := ParseEmail(email.String())
	require.NoError(t, err)
	assert.Equal(t, email, again)
}

func TestEmail_IsZero(t *testing.T) {
	var zero Email
	assert.True(t, zero.IsZero())

	email, err := ParseEmail("a@b.com")
	require.NoError(t, err)
	assert.False(t, email.IsZero())
}
