package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuthDisabledWhenNoSecret(t *testing.T) {
	handler := BearerAuth("")(okHandler())

	req := httptest.NewRequest("GET", "/api/automate/preview", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerAuthRejectsMissingHeader(t *testing.T) {
	handler := BearerAuth("s3cret")(okHandler())

	req := httptest.NewRequest("GET", "/api/automate/preview", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBearerAuthRejectsWrongToken(t *testing.T) {
	handler := BearerAuth("s3cret")(okHandler())

	req := httptest.NewRequest("GET", "/api/automate/preview", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBearerAuthAcceptsToken(t *testing.T) {
	handler := BearerAuth("s3cret")(okHandler())

	req := httptest.NewRequest("GET", "/api/automate/preview", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
