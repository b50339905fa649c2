package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"care-companion/internal/platform/logger"
	"care-companion/internal/ports/auth"
)

type stubVerifier struct{}

func (stubVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{UserID: "u1", Role: "family"}, nil
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func serve(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthContextAndRequireRole(t *testing.T) {
	h := AuthContext(stubVerifier{})(RequireRole("family")(http.HandlerFunc(okHandler)))

	assert.Equal(t, http.StatusNoContent, serve(h, "Bearer good").Code)
	assert.Equal(t, http.StatusNoContent, serve(h, "bearer good").Code)

	rec := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"Unauthorized"`)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer bad").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Basic good").Code)

	elderOnly := AuthContext(stubVerifier{})(RequireRole("elderly")(http.HandlerFunc(okHandler)))
	rec = serve(elderOnly, "Bearer good")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"Forbidden"`)
}

func TestWithClaims(t *testing.T) {
	ctx := WithClaims(context.Background(), auth.Claims{UserID: "u2", Role: "elderly"})
	c, ok := GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, "u2", c.UserID)

	_, ok = GetClaims(context.Background())
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer  abc "))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken("Token abc"))
}

func TestRequestLoggerAndRecover(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})

	h := chimw.RequestID(RequestLogger(log)(Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))))

	rec := serve(h, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"Internal"`)

	out := buf.String()
	assert.Contains(t, out, "panic recovered")
	assert.Contains(t, out, "request_id")
	assert.True(t, strings.Contains(out, `"status":500`), out)
}
