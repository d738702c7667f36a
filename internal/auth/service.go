package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the identity lookup surface the auth service needs.
type UserRepository interface {
	GetCredentialsByEmail(ctx context.Context, email string) (userID, passwordHash string, isActive bool, err error)
	GetSessionUser(ctx context.Context, userID string) (*SessionUser, error)
}

// SessionStore tracks live sign-in sessions. Sign-in registers a session,
// sign-out revokes it; refresh-token use against a revoked session fails.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	sessions       SessionStore
	sessionTTL     time.Duration
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, sessions SessionStore, sessionTTL time.Duration, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		sessions:       sessions,
		sessionTTL:     sessionTTL,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Authenticate validates credentials, registers a session and returns tokens.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	userID, storedHash, isActive, err := s.userRepo.GetCredentialsByEmail(ctx, dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return AuthTokens{}, ErrInvalidCredentials
	}

	if !isActive {
		return AuthTokens{}, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", userID)
		return AuthTokens{}, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Save(ctx, sessionID, userID, s.sessionTTL); err != nil {
		s.logger.Error("failed to register session", "error", err, "user_id", userID)
		return AuthTokens{}, err
	}

	tokens, err := s.issueTokens(userID, sessionID)
	if err != nil {
		return AuthTokens{}, err
	}

	s.logger.Info("user signed in", "user_id", userID, "session_id", sessionID)
	return tokens, nil
}

// RefreshTokens rotates the token pair. The session must still be live.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	if claims.TokenKind != TokenKindRefresh {
		return AuthTokens{}, ErrInvalidToken
	}

	live, err := s.sessions.Exists(ctx, claims.SessionID)
	if err != nil {
		return AuthTokens{}, err
	}
	if !live {
		return AuthTokens{}, ErrSessionRevoked
	}

	return s.issueTokens(claims.UserID, claims.SessionID)
}

// Logout revokes the session named by the token: the sign-out teardown of the
// session lifecycle.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	if err := s.sessions.Revoke(ctx, claims.SessionID); err != nil {
		s.logger.Error("failed to revoke session", "error", err, "session_id", claims.SessionID)
		return err
	}

	s.logger.Info("user signed out", "user_id", claims.UserID, "session_id", claims.SessionID)
	return nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenKind != TokenKindAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CurrentUser loads the session identity (profile plus current role) for the
// given user id.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*SessionUser, error) {
	return s.userRepo.GetSessionUser(ctx, userID)
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) issueTokens(userID, sessionID string) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, sessionID)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID, sessionID)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
