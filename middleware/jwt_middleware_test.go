package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mandisetu/mandisetu_backend/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	account := &models.Account{
		ID:          primitive.NewObjectID(),
		Name:        "Ramesh Traders",
		PhoneNumber: "9876543210",
		Role:        models.RoleWholesaler,
	}

	token, err := GenerateToken(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, account.ID.Hex(), claims.UserID)
	require.Equal(t, string(models.RoleWholesaler), claims.Role)
	require.Equal(t, "9876543210", claims.PhoneNumber)
	require.Greater(t, claims.ExpiresAt, time.Now().Unix())
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	account := &models.Account{ID: primitive.NewObjectID(), Role: models.RoleRetailer}
	token, err := GenerateToken(account)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestGenerateAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	admin := &models.Admin{
		ID:    primitive.NewObjectID(),
		Name:  "Operator",
		Email: "ops@example.com",
	}

	token, err := GenerateAdminToken(admin)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, claims.Role)
	require.Equal(t, admin.ID.Hex(), claims.UserID)
}

func TestTokenBlacklist(t *testing.T) {
	token := "some.jwt.token"
	require.False(t, IsTokenBlacklisted(token))

	BlacklistToken(token, time.Now().Add(time.Hour))
	require.True(t, IsTokenBlacklisted(token))
	require.False(t, IsTokenBlacklisted("other.jwt.token"))
}
