package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
	"github.com/imanelbaz22-debug/serene-app/internal/store/sqlite"
)

func newUsers(t *testing.T) store.Users {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(context.Background(), db))
	return sqlite.NewWithDB(db).Users()
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func requestWith(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/analytics/streak", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestExtractBearer(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := ExtractBearer(r)
	assert.ErrorIs(t, err, ErrMissingToken)

	r.Header.Set("Authorization", "Basic abc")
	_, err = ExtractBearer(r)
	assert.ErrorIs(t, err, ErrMissingToken)

	r.Header.Set("Authorization", "bearer  tok ")
	tok, err := ExtractBearer(r)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}

func TestSubject_MockToken(t *testing.T) {
	a := NewAuthenticator(nil, true, "", zerolog.Nop())
	sub, err := a.Subject(MockToken)
	require.NoError(t, err)
	assert.Equal(t, MockExternalID, sub)

	strict := NewAuthenticator(nil, false, "", zerolog.Nop())
	_, err = strict.Subject(MockToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSubject_UnverifiedWithoutSecret(t *testing.T) {
	a := NewAuthenticator(nil, false, "", zerolog.Nop())
	tok := signed(t, "whatever-the-issuer-used", jwt.MapClaims{"sub": "user_abc"})
	sub, err := a.Subject(tok)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", sub)

	_, err = a.Subject("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.Subject(signed(t, "k", jwt.MapClaims{"email": "a@b.c"}))
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestSubject_VerifiedWithSecret(t *testing.T) {
	a := NewAuthenticator(nil, false, "s3cret", zerolog.Nop())

	sub, err := a.Subject(signed(t, "s3cret", jwt.MapClaims{"sub": "user_1", "exp": time.Now().Add(time.Hour).Unix()}))
	require.NoError(t, err)
	assert.Equal(t, "user_1", sub)

	_, err = a.Subject(signed(t, "other", jwt.MapClaims{"sub": "user_1"}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.Subject(signed(t, "s3cret", jwt.MapClaims{"sub": "user_1", "exp": time.Now().Add(-time.Hour).Unix()}))
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestAuthenticate_CreatesUserOnce(t *testing.T) {
	a := NewAuthenticator(newUsers(t), true, "", zerolog.Nop())

	u1, err := a.Authenticate(context.Background(), requestWith(MockToken))
	require.NoError(t, err)
	require.NotNil(t, u1.Username)
	assert.Equal(t, "MockBestie", *u1.Username)

	u2, err := a.Authenticate(context.Background(), requestWith(MockToken))
	require.NoError(t, err)
	assert.Equal(t, u1.UserID, u2.UserID)
}

func TestMiddleware(t *testing.T) {
	a := NewAuthenticator(newUsers(t), true, "", zerolog.Nop())
	var seen *model.User
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		require.True(t, ok)
		seen = u
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWith(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWith(MockToken))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, MockExternalID, seen.ExternalID)
}
