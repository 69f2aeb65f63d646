package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/auth"
	"github.com/Enodevs/speedvoice-backend/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Session is the payload returned on a successful token login.
type Session struct {
	AuthToken string `json:"auth_token"`
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"name"`
}

// LoginTokenService implements the passwordless login flow: a short
// lived one-time token is generated for an email and later exchanged
// for the user's opaque session token.
type LoginTokenService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewLoginTokenService(db *gorm.DB, log *logrus.Logger) *LoginTokenService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LoginTokenService{db: db, log: log}
}

// Generate mints a login token for the user behind email.
func (s *LoginTokenService) Generate(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email is required: %w", apperr.ErrValidation)
	}
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("no user with this email: %w", apperr.ErrNotFound)
		}
		return "", fmt.Errorf("load user: %w", apperr.ErrInternal)
	}
	token := models.LoginToken{UserID: user.ID, Token: auth.MintKey()}
	if err := s.db.Create(&token).Error; err != nil {
		return "", fmt.Errorf("create login token: %w", apperr.ErrInternal)
	}
	return token.Token, nil
}

// Exchange validates a login token and returns a session. The login
// token is deleted afterwards; a failed delete is logged as a warning
// because the user already holds a valid session at that point.
func (s *LoginTokenService) Exchange(token string) (*Session, error) {
	var rec models.LoginToken
	err := s.db.Where("token = ?", token).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("login token: %w", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("load login token: %w", apperr.ErrInternal)
	}
	if !rec.Valid(time.Now()) {
		return nil, fmt.Errorf("login token: %w", apperr.ErrTokenExpired)
	}
	var user models.User
	if err := s.db.First(&user, rec.UserID).Error; err != nil {
		return nil, fmt.Errorf("load user: %w", apperr.ErrInternal)
	}

	authToken, err := s.SessionToken(&user)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(&models.LoginToken{}, rec.ID).Error; err != nil {
		// Non-fatal: the session was issued; the stale one-time token
		// will be rejected by the TTL check anyway.
		s.log.WithField("user_id", user.ID).WithError(err).Warn("failed to delete login token")
	}

	return &Session{
		AuthToken: authToken,
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
	}, nil
}

// SessionToken returns the user's bearer token, creating it on first
// use (get-or-create semantics).
func (s *LoginTokenService) SessionToken(user *models.User) (string, error) {
	var existing models.AuthToken
	err := s.db.Where("user_id = ?", user.ID).First(&existing).Error
	if err == nil {
		return existing.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("load auth token: %w", apperr.ErrInternal)
	}
	created := models.AuthToken{UserID: user.ID, Key: auth.MintKey()}
	if err := s.db.Create(&created).Error; err != nil {
		return "", fmt.Errorf("create auth token: %w", apperr.ErrInternal)
	}
	return created.Key, nil
}

// ResolveSession maps a bearer key back to a user id, for the auth
// middleware.
func (s *LoginTokenService) ResolveSession(key string) (uint, bool) {
	var rec models.AuthToken
	if err := s.db.Where("key = ?", key).First(&rec).Error; err != nil {
		return 0, false
	}
	return rec.UserID, true
}
