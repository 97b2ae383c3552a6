package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleEditor, ParseRole("editor"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUnknown, ParseRole("superuser"))
	assert.Equal(t, RoleUnknown, ParseRole(""))
	assert.Equal(t, RoleUnknown, ParseRole("Admin"))
}

func TestRole_In(t *testing.T) {
	t.Parallel()

	assert.False(t, RoleUser.In(RoleAdmin))
	assert.True(t, RoleAdmin.In(RoleAdmin, RoleEditor))
	assert.False(t, RoleUnknown.In(RoleAdmin, RoleEditor, RoleUser))
	// Even a set that somehow contains the unknown role never matches it.
	assert.False(t, RoleUnknown.In(RoleUnknown))
	assert.False(t, RoleUser.In())
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	t.Parallel()

	u := User{ID: 1, Name: "Alice", Email: "a@x.com", PasswordHash: "bcrypt-hash", Role: RoleUser}
	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "bcrypt-hash")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), "a@x.com")
}
