package httpx

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusCreated, map[string]any{"total": 2})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"total":2}`, rr.Body.String())

	rr = httptest.NewRecorder()
	JSON(rr, http.StatusOK, nil)
	assert.Equal(t, "null", rr.Body.String())
}

func TestJSONEncodeFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, math.Inf(1))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "encode_error")
}

func TestJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONError(rr, http.StatusUnprocessableEntity, "validation_failed", map[string]string{"name": "required"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"error":"validation_failed","details":{"name":"required"}}`, rr.Body.String())
}

func TestWantsJSON(t *testing.T) {
	cases := map[string]bool{
		"application/json":                  true,
		"application/json, text/plain":      true,
		"text/html,application/xhtml+xml":   false,
		"text/html, application/json;q=0.9": false,
		"":                                  false,
	}
	for accept, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", accept)
		assert.Equal(t, want, WantsJSON(r), accept)
	}
}
