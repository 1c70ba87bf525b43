package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserValidatesInput(t *testing.T) {
	u, err := CreateUser("Maria Silva", "maria@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, ROLE_USER, u.Role)
	assert.Equal(t, STATUS_INACTIVE, u.Status)
	assert.True(t, u.CheckPassword("secret-password"))
	assert.False(t, u.CheckPassword("wrong"))

	_, err = CreateUser("ab", "not-an-email", "x")
	assert.Error(t, err)
}

func TestGenerateAPIToken(t *testing.T) {
	u := &User{}

	token, err := u.GenerateAPIToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Equal(t, HashAPIToken(token), u.APITokenHash)

	second, err := u.GenerateAPIToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, second)
}

func TestHashAPITokenIsDeterministic(t *testing.T) {
	assert.Equal(t, HashAPIToken("abc"), HashAPIToken("abc"))
	assert.NotEqual(t, HashAPIToken("abc"), HashAPIToken("abd"))
	assert.Len(t, HashAPIToken("abc"), 64)
}

func TestUserIsActive(t *testing.T) {
	assert.True(t, (&User{Status: STATUS_ACTIVE}).IsActive())
	assert.False(t, (&User{Status: STATUS_INACTIVE}).IsActive())
	assert.False(t, (&User{Status: STATUS_DISABLED}).IsActive())
}
