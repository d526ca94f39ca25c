// Package local implements session.Service for the self-hosted backend:
// accounts live in the users table, passwords are bcrypt hashes and access
// tokens are HS256 JWTs.
package local

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/session"
)

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
}

var _ session.Service = (*Service)(nil)

func New(db *gorm.DB, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		db:      db,
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: map[string]time.Time{},
	}
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, fmt.Errorf("local: find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, invalidCredentials()
	}
	return s.issue(u)
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*session.Session, error) {
	email = normalizeEmail(email)
	if len(password) < session.MinPasswordLength {
		return nil, &session.Error{Status: http.StatusUnprocessableEntity, Message: session.MsgWeakPassword}
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("local: check email: %w", err)
	}
	if count > 0 {
		return nil, alreadyRegistered()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("local: hash password: %w", err)
	}
	u := models.User{Email: email, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, alreadyRegistered()
		}
		return nil, fmt.Errorf("local: create user: %w", err)
	}
	return s.issue(u)
}

// User verifies the token and that its account still exists.
func (s *Service) User(ctx context.Context, token string) (*session.User, error) {
	c, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	var u models.User
	err = s.db.WithContext(ctx).Where("id = ?", c.Subject).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: account removed", session.ErrInvalidSession)
	}
	if err != nil {
		return nil, fmt.Errorf("local: load user: %w", err)
	}
	return &session.User{ID: u.ID, Email: u.Email}, nil
}

// SignOut revokes the token until it would have expired anyway.
func (s *Service) SignOut(_ context.Context, token string) error {
	c, err := s.parse(token)
	if err != nil {
		// signing out an already invalid session is a no-op
		return nil
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for jti, exp := range s.revoked {
		if !now.Before(exp) {
			delete(s.revoked, jti)
		}
	}
	s.revoked[c.ID] = c.ExpiresAt.Time
	return nil
}

func (s *Service) issue(u models.User) (*session.Session, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("local: sign token: %w", err)
	}
	return &session.Session{
		AccessToken: signed,
		ExpiresAt:   exp,
		User:        session.User{ID: u.ID, Email: u.Email},
	}, nil
}

func (s *Service) parse(token string) (*claims, error) {
	if token == "" {
		return nil, session.ErrInvalidSession
	}
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrInvalidSession, err)
	}
	s.mu.Lock()
	_, revoked := s.revoked[c.ID]
	s.mu.Unlock()
	if revoked {
		return nil, fmt.Errorf("%w: signed out", session.ErrInvalidSession)
	}
	return c, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidCredentials() error {
	return &session.Error{Status: http.StatusBadRequest, Message: session.MsgInvalidCredentials}
}

func alreadyRegistered() error {
	return &session.Error{Status: http.StatusUnprocessableEntity, Message: session.MsgAlreadyRegistered}
}
