// Package gotrue implements session.Service against the Supabase auth API.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/session"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

var _ session.Service = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New fails with config.ErrNotConfigured before any I/O when the URL or key
// is missing.
func New(cfg config.SupabaseConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/") + "/auth/v1",
		apiKey:  cfg.AnonKey,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	raw, err := c.post(ctx, "/token?grant_type=password", "", credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return c.parseSession(raw)
}

// SignUp returns a session without AccessToken when the project requires
// e-mail confirmation.
func (c *Client) SignUp(ctx context.Context, email, password string) (*session.Session, error) {
	raw, err := c.post(ctx, "/signup", "", credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return c.parseSession(raw)
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	_, err := c.post(ctx, "/logout", token, nil)
	return err
}

func (c *Client) User(ctx context.Context, token string) (*session.User, error) {
	if token == "" {
		return nil, session.ErrInvalidSession
	}
	raw, err := c.send(ctx, http.MethodGet, "/user", token, nil)
	if err != nil {
		var se *session.Error
		if errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %s", session.ErrInvalidSession, se.Message)
		}
		return nil, err
	}
	u := &session.User{
		ID:    gjson.GetBytes(raw, "id").String(),
		Email: gjson.GetBytes(raw, "email").String(),
	}
	if u.ID == "" {
		return nil, session.ErrInvalidSession
	}
	return u, nil
}

// parseSession accepts both the token response ({access_token, user}) and the
// bare user object returned by a sign-up awaiting confirmation.
func (c *Client) parseSession(raw []byte) (*session.Session, error) {
	res := gjson.ParseBytes(raw)
	s := &session.Session{AccessToken: res.Get("access_token").String()}
	user := res.Get("user")
	if !user.Exists() {
		user = res
	}
	s.User = session.User{ID: user.Get("id").String(), Email: user.Get("email").String()}
	if s.User.ID == "" {
		return nil, fmt.Errorf("gotrue: response without user")
	}
	if exp := res.Get("expires_in").Int(); exp > 0 {
		s.ExpiresAt = c.now().Add(time.Duration(exp) * time.Second)
	}
	return s, nil
}

func (c *Client) post(ctx context.Context, path, token string, body any) ([]byte, error) {
	return c.send(ctx, http.MethodPost, path, token, body)
}

func (c *Client) send(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gotrue: encode: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("gotrue: build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotrue %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("gotrue: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, raw)
	}
	return raw, nil
}

func decodeError(status int, raw []byte) error {
	e := &session.Error{Status: status}
	if gjson.ValidBytes(raw) {
		for _, r := range gjson.GetManyBytes(raw, "msg", "error_description", "message", "error") {
			if r.Type == gjson.String && r.String() != "" {
				e.Message = r.String()
				break
			}
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
