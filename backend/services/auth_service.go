package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aebonlee/stepup-cloud/backend/config"
	"github.com/aebonlee/stepup-cloud/backend/models"
	"github.com/aebonlee/stepup-cloud/backend/revocation"
	"github.com/aebonlee/stepup-cloud/backend/store"
	"github.com/aebonlee/stepup-cloud/backend/utils"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused outright.
const maxPasswordBytes = 72

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID    uint
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Session is returned by register and login.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type AuthService struct {
	Users   store.UserStore
	Revoked revocation.List
	Cfg     *config.Config
}

func NewAuthService(users store.UserStore, revoked revocation.List, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, Revoked: revoked, Cfg: cfg}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*Session, error) {
	email, err := checkCredentials(email, password)
	if err != nil {
		return nil, err
	}
	if len(password) > maxPasswordBytes {
		return nil, invalid("password", "password must be at most 72 bytes")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, &PersistenceError{Op: "create user", Err: err}
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email, err := checkCredentials(email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, &PersistenceError{Op: "find user", Err: err}
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Authenticate verifies a bearer token: ErrUnauthenticated when it is absent,
// ErrForbidden when it is malformed, expired, badly signed or revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := utils.ParseJWTToken(token, s.Cfg)
	if err != nil {
		return nil, ErrForbidden
	}

	if s.Revoked != nil && claims.ID != "" {
		revoked, err := s.Revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, &PersistenceError{Op: "check revocation", Err: err}
		}
		if revoked {
			return nil, ErrForbidden
		}
	}

	identity := &Identity{
		UserID:  claims.UserID,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// Logout revokes the caller's token until it expires.
func (s *AuthService) Logout(ctx context.Context, identity *Identity) error {
	if s.Revoked == nil || identity.TokenID == "" {
		return nil
	}
	if err := s.Revoked.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return &PersistenceError{Op: "revoke token", Err: err}
	}
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, &PersistenceError{Op: "find user", Err: err}
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*Session, error) {
	token, err := utils.GenerateJWTToken(user, s.Cfg)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user.Public()}, nil
}

func checkCredentials(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", invalid("email", "email and password are required")
	}
	return email, nil
}
