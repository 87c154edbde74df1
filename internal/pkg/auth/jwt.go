package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/comla/comla/internal/app/models"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// TokenKind distinguishes access tokens from refresh tokens. Both are
// stateless signed bearer credentials; there is no server-side session table
// and no revocation list, so a leaked refresh token stays valid until its
// natural expiry.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	TokenIssuer     string
}

// JWTService issues and verifies access and refresh tokens.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// Claims defines JWT token content. Access tokens carry the user's id, email
// and role; refresh tokens carry only the user id.
type Claims struct {
	UserID int64     `json:"userId"`
	Email  string    `json:"email,omitempty"`
	Role   string    `json:"role,omitempty"`
	Kind   TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// IssueAccessToken creates a short-lived access token bound to the user's
// current id, email and role.
func (s *JWTService) IssueAccessToken(user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		Kind:   KindAccess,
		RegisteredClaims: s.registeredClaims(user.ID, s.config.AccessTokenExp),
	}
	return s.sign(claims)
}

// IssueRefreshToken creates a long-lived refresh token carrying only the
// user id.
func (s *JWTService) IssueRefreshToken(userID int64) (string, error) {
	claims := &Claims{
		UserID: userID,
		Kind:   KindRefresh,
		RegisteredClaims: s.registeredClaims(userID, s.config.RefreshTokenExp),
	}
	return s.sign(claims)
}

// Validate parses a token, checks signature and expiry, and requires the
// token to be of the given kind.
func (s *JWTService) Validate(tokenString string, kind TokenKind) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind {
		return nil, ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// AccessTokenTTL returns the configured access token lifetime in seconds.
func (s *JWTService) AccessTokenTTL() int64 {
	return int64(s.config.AccessTokenExp.Seconds())
}

// RefreshTokenTTL returns the configured refresh token lifetime in seconds.
func (s *JWTService) RefreshTokenTTL() int64 {
	return int64(s.config.RefreshTokenExp.Seconds())
}

func (s *JWTService) registeredClaims(userID int64, exp time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.config.TokenIssuer,
		Subject:   fmt.Sprintf("%d", userID),
		ID:        uuid.New().String(),
	}
}

func (s *JWTService) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ExtractBearerToken extracts the token from the Authorization header value.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	// Accept a bare token without the "Bearer " prefix.
	return authHeader, nil
}
