// Package session defines the identity service the web handlers talk to.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSession means the token is unknown, expired or revoked.
var ErrInvalidSession = errors.New("invalid session")

// User is the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is what a successful sign-in yields. AccessToken is empty when the
// service accepted a sign-up but wants the e-mail confirmed first.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        User
}

// Service is the identity backend.
type Service interface {
	User(ctx context.Context, token string) (*User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
}

// Messages the remote service uses for the two failures the UI translates.
const (
	MsgInvalidCredentials = "Invalid login credentials"
	MsgAlreadyRegistered  = "User already registered"
	MsgWeakPassword       = "Password should be at least 6 characters"
)

// MinPasswordLength is enforced by both the forms and the local backend.
const MinPasswordLength = 6

// Error is a failure reported by the identity service. Message is the
// service's own wording.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("session: %s (status %d)", e.Message, e.Status)
}

// IsInvalidCredentials reports a wrong e-mail/password pair.
func IsInvalidCredentials(err error) bool {
	return messageContains(err, "invalid login credentials")
}

// IsAlreadyRegistered reports a sign-up for an e-mail that exists.
func IsAlreadyRegistered(err error) bool {
	return messageContains(err, "already registered")
}

// MessageOf returns the service message carried by err, if any.
func MessageOf(err error) (string, bool) {
	var se *Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}

func messageContains(err error, needle string) bool {
	msg, ok := MessageOf(err)
	return ok && strings.Contains(strings.ToLower(msg), needle)
}
