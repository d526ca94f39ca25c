package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/session"
)

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) User(ctx context.Context, token string) (*session.User, error) {
	args := m.Called(ctx, token)
	u, _ := args.Get(0).(*session.User)
	return u, args.Error(1)
}

func (m *mockSessions) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *mockSessions) SignUp(ctx context.Context, email, password string) (*session.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *mockSessions) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate(token string) { m.Called(token) }

func login(email, password string) url.Values {
	return url.Values{"email": {email}, "password": {password}}
}

func TestLoginTranslatesErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"invalid credentials", &session.Error{Status: 400, Message: "Invalid login credentials"}, http.StatusUnauthorized, "E-mail ou senha incorretos."},
		{"other service message verbatim", &session.Error{Status: 400, Message: "Email not confirmed"}, http.StatusBadRequest, "Email not confirmed"},
		{"configuration fault", &config.MissingSettingsError{Keys: []string{"SUPABASE_URL"}}, http.StatusServiceUnavailable, "Supabase não configurado"},
		{"network trouble", errors.New("dial tcp: connection refused"), http.StatusBadGateway, "Erro ao fazer login. Verifique sua conexão e tente novamente."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockSessions)
			svc.On("SignIn", mock.Anything, "ana@x.com", "secret1").Return(nil, tt.err)
			h := NewAuthHandler(svc, nil, auth.CookieOptions{}, logger.Nop())

			rr := serve(h.Login, anonymous(http.MethodPost, "/login", login("ana@x.com", "secret1")))
			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
			assert.Contains(t, rr.Body.String(), `value="ana@x.com"`)
			assert.Empty(t, rr.Result().Cookies())
		})
	}
}

func TestLoginSetsCookie(t *testing.T) {
	svc := new(mockSessions)
	expires := time.Now().Add(time.Hour)
	svc.On("SignIn", mock.Anything, "ana@x.com", "secret1").
		Return(&session.Session{AccessToken: "jwt", ExpiresAt: expires, User: session.User{ID: "u1", Email: "ana@x.com"}}, nil)
	h := NewAuthHandler(svc, nil, auth.CookieOptions{Secure: true}, logger.Nop())

	rr := serve(h.Login, anonymous(http.MethodPost, "/login", login(" ana@x.com ", "secret1")))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Equal(t, "jwt", cookies[0].Value)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginWithoutEmailSkipsService(t *testing.T) {
	svc := new(mockSessions)
	h := NewAuthHandler(svc, nil, auth.CookieOptions{}, logger.Nop())
	rr := serve(h.Login, anonymous(http.MethodPost, "/login", login("", "x")))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignupChecksBeforeCallingService(t *testing.T) {
	svc := new(mockSessions)
	h := NewAuthHandler(svc, nil, auth.CookieOptions{}, logger.Nop())

	form := url.Values{"email": {"ana@x.com"}, "password": {"secret1"}, "confirm_password": {"secret2"}}
	rr := serve(h.Signup, anonymous(http.MethodPost, "/cadastro", form))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "As senhas não coincidem.")

	form = url.Values{"email": {"ana@x.com"}, "password": {"12345"}, "confirm_password": {"12345"}}
	rr = serve(h.Signup, anonymous(http.MethodPost, "/cadastro", form))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "A senha deve ter pelo menos 6 caracteres.")

	svc.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignupOutcomes(t *testing.T) {
	form := url.Values{"email": {"ana@x.com"}, "password": {"secret1"}, "confirm_password": {"secret1"}}

	t.Run("already registered", func(t *testing.T) {
		svc := new(mockSessions)
		svc.On("SignUp", mock.Anything, "ana@x.com", "secret1").
			Return(nil, &session.Error{Status: 422, Message: "User already registered"})
		rr := serve(NewAuthHandler(svc, nil, auth.CookieOptions{}, logger.Nop()).Signup, anonymous(http.MethodPost, "/cadastro", form))
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "Este e-mail já está cadastrado.")
	})

	t.Run("signed in at once", func(t *testing.T) {
		svc := new(mockSessions)
		svc.On("SignUp", mock.Anything, "ana@x.com", "secret1").
			Return(&session.Session{AccessToken: "jwt", User: session.User{ID: "u1"}}, nil)
		rr := serve(NewAuthHandler(svc, nil, auth.CookieOptions{}, logger.Nop()).Signup, anonymous(http.MethodPost, "/cadastro", form))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
		require.Len(t, rr.Result().Cookies(), 1)
	})

	t.Run("confirmation pending", func(t *testing.T) {
		svc := new(mockSessions)
		svc.On("SignUp", mock.Anything, "ana@x.com", "secret1").
			Return(&session.Session{User: session.User{ID: "u1"}}, nil)
		h := NewAuthHandler(svc, nil, auth.CookieOptions{}, logger.Nop())
		rr := serve(h.Signup, anonymous(http.MethodPost, "/cadastro", form))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login?cadastro=confirmar&email=ana%40x.com", rr.Header().Get("Location"))
		assert.Empty(t, rr.Result().Cookies())

		rr = serve(h.LoginPage, anonymous(http.MethodGet, rr.Header().Get("Location"), nil))
		assert.Contains(t, rr.Body.String(), "Verifique seu e-mail")
		assert.Contains(t, rr.Body.String(), `value="ana@x.com"`)
	})
}

func TestLogout(t *testing.T) {
	svc := new(mockSessions)
	svc.On("SignOut", mock.Anything, "jwt").Return(errors.New("network down"))
	cache := new(mockInvalidator)
	cache.On("Invalidate", "jwt").Return()
	h := NewAuthHandler(svc, cache, auth.CookieOptions{}, logger.Nop())

	r := anonymous(http.MethodPost, "/logout", url.Values{})
	r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "jwt"})
	rr := serve(h.Logout, r)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, auth.LoginPath, rr.Header().Get("Location"))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	svc.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestHomeAndLoginRedirectSignedInUsers(t *testing.T) {
	h := NewAuthHandler(new(mockSessions), nil, auth.CookieOptions{}, logger.Nop())

	rr := serve(h.Home, anonymous(http.MethodGet, "/", nil))
	assert.Equal(t, auth.LoginPath, rr.Header().Get("Location"))

	rr = serve(h.Home, signedIn(http.MethodGet, "/", nil))
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))

	rr = serve(h.LoginPage, signedIn(http.MethodGet, "/login", nil))
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))

	rr = serve(h.Home, anonymous(http.MethodGet, "/nada", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
