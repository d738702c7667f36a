package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role names from the closed set used across the service. The authoritative
// enum lives in the role package; auth only needs the names for gating.
const (
	RoleAdmin          = "admin"
	RoleHRManager      = "hr_manager"
	RoleHROfficer      = "hr_officer"
	RoleDepartmentHead = "department_head"
	RoleEmployee       = "employee"
)

// SessionUser is the identity threaded through each request: built by the
// auth middleware on sign-in validation, dropped when the request ends. There
// is no process-wide current user.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// HasRole reports role membership. Exact match only; roles are not ordered.
func (u *SessionUser) HasRole(roleName string) bool {
	return u != nil && u.Role == roleName
}

func (u *SessionUser) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// IsHRStaff covers the actors allowed to arbitrate leave and manage the
// employee directory.
func (u *SessionUser) IsHRStaff() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleHRManager) || u.HasRole(RoleHROfficer)
}

type ctxKey string

const contextUserKey ctxKey = "sessionUser"

func SessionFromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(contextUserKey).(*SessionUser)
	return u, ok
}

func ContextWithSession(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims carried by both token kinds. SessionID identifies the sign-in
// session in the session store; revoking it invalidates the refresh token.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	TokenKind string `json:"token_kind"`
	jwt.RegisteredClaims
}

const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// TokenGenerator creates and validates signed tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID, sessionID string) (string, error)
	GenerateRefreshToken(userID, sessionID string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrSessionRevoked     = errors.New("session revoked")
)

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, sessionID string) (string, error) {
	return j.sign(userID, sessionID, TokenKindAccess, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID, sessionID string) (string, error) {
	return j.sign(userID, sessionID, TokenKindRefresh, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) sign(userID, sessionID, kind string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		SessionID: sessionID,
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT of either kind and returns its claims.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		if claims, ok := token.Claims.(*Claims); ok && claims.TokenKind == TokenKindRefresh {
			return j.RefreshTokenSecret, nil
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
