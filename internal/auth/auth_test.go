package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter_backend/internal/config"
	"shelter_backend/internal/models"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPasswordHash("correct horse battery", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long enough"))
}

func TestCapabilityMatrix(t *testing.T) {
	tests := []struct {
		roleID uint
		action Action
		want   bool
	}{
		{models.RoleAdmin, ActionCreateAnimal, true},
		{models.RoleAdmin, ActionDeleteAnimal, true},
		{models.RoleAdmin, ActionProcessAdoption, true},
		{models.RoleModerator, ActionCreateAnimal, false},
		{models.RoleModerator, ActionEditAnimal, true},
		{models.RoleModerator, ActionDeleteAnimal, false},
		{models.RoleModerator, ActionProcessAdoption, true},
		{models.RoleUser, ActionCreateAnimal, false},
		{models.RoleUser, ActionEditAnimal, false},
		{models.RoleUser, ActionProcessAdoption, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Can(tt.roleID, tt.action),
			"role %d action %s", tt.roleID, tt.action)
	}
}

func TestTokenRoundtrip(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.TTL = 5
	config.AppConfig = cfg

	token, err := GenerateToken(42, models.RoleModerator)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleModerator, claims.RoleID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.TTL = 5
	config.AppConfig = cfg

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}
