package jwthelper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uac/cafeteria-api/internal/pkg/jwthelper"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := jwthelper.CreateToken("test-key", 1, "admin")
	require.NoError(t, err)

	claims, err := jwthelper.ParseToken("test-key", token)
	require.NoError(t, err)

	assert.Equal(t, 1, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	token, err := jwthelper.CreateToken("test-key", 1, "admin")
	require.NoError(t, err)

	_, err = jwthelper.ParseToken("other-key", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := jwthelper.ParseToken("test-key", "not.a.token")
	assert.Error(t, err)
}
