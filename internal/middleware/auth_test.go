package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planets-api/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func protectedHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		claims := GetUserFromContext(r)
		require.NotNil(t, claims)
		assert.Equal(t, "aarav@yopmail.com", claims.Email)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	token, err := issuer.Generate(7, "aarav@yopmail.com")
	require.NoError(t, err)

	called := false
	handler := RequireAuth(issuer)(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodPost, "/planets", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)

	called := false
	handler := RequireAuth(issuer)(protectedHandler(t, &called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/planets", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)

	called := false
	handler := RequireAuth(issuer)(protectedHandler(t, &called))

	for _, header := range []string{"Bearer", "Bearer   ", "Basic dXNlcjpwYXNz", "token"} {
		req := httptest.NewRequest(http.MethodPost, "/planets", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
	assert.False(t, called)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	other := auth.NewTokenIssuer("another-secret-another-secret-32", time.Hour)

	token, err := other.Generate(7, "aarav@yopmail.com")
	require.NoError(t, err)

	called := false
	handler := RequireAuth(issuer)(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodPost, "/planets", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
