package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comla/comla/internal/app/models"
)

func newTestService(accessExp, refreshExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
		TokenIssuer:     "comla.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    42,
		Email: "asha@example.com",
		Role:  models.RoleStudent,
	}
}

func TestIssueAndValidateAccessToken(t *testing.T) {
	svc := newTestService(15*time.Minute, 168*time.Hour)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, string(models.RoleStudent), claims.Role)
	assert.Equal(t, KindAccess, claims.Kind)
}

func TestRefreshTokenCarriesOnlyUserID(t *testing.T) {
	svc := newTestService(15*time.Minute, 168*time.Hour)

	token, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)

	claims, err := svc.Validate(token, KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Role)
}

func TestValidateRejectsWrongKind(t *testing.T) {
	svc := newTestService(15*time.Minute, 168*time.Hour)

	refresh, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)
	access, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	// A refresh token must not pass as an access token, and vice versa.
	_, err = svc.Validate(refresh, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Validate(access, KindRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newTestService(-1*time.Minute, 168*time.Hour)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.Validate(token, KindAccess)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	svc := newTestService(15*time.Minute, 168*time.Hour)
	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 168 * time.Hour,
		TokenIssuer:     "comla.test",
	})

	token, err := other.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.Validate(token, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(15*time.Minute, 168*time.Hour)

	_, err := svc.Validate("not-a-token", KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A bare token without the prefix is accepted too.
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.Error(t, err)
}
