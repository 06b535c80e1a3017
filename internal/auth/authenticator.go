package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/imanelbaz22-debug/serene-app/internal/api/respond"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
)

const (
	// MockToken is accepted in place of a real token when mock tokens are allowed.
	MockToken = "mock_bestie_token"
	// MockExternalID is the identity MockToken resolves to.
	MockExternalID = "user_2test_bestie_mock"

	mockUsername = "MockBestie"
)

// Authenticator resolves bearer tokens to local users.
//
// With a secret, tokens must carry a valid HMAC signature. Without one the
// signature is not checked and only the sub claim is read.
type Authenticator struct {
	users     store.Users
	allowMock bool
	secret    []byte
	log       zerolog.Logger
}

func NewAuthenticator(users store.Users, allowMock bool, secret string, log zerolog.Logger) *Authenticator {
	a := &Authenticator{users: users, allowMock: allowMock, log: log}
	if secret != "" {
		a.secret = []byte(secret)
	}
	return a
}

// Subject returns the external identity carried by token.
func (a *Authenticator) Subject(token string) (string, error) {
	if a.allowMock && token == MockToken {
		return MockExternalID, nil
	}

	claims := jwt.MapClaims{}
	var err error
	if a.secret != nil {
		_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return a.secret, nil
		}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	} else {
		_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrMissingSubject
	}
	return sub, nil
}

// Authenticate resolves the request's bearer token to a user, creating the
// user on first sight.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (*model.User, error) {
	token, err := ExtractBearer(r)
	if err != nil {
		return nil, err
	}
	sub, err := a.Subject(token)
	if err != nil {
		return nil, err
	}
	var username *string
	if sub == MockExternalID {
		name := mockUsername
		username = &name
	}
	return a.users.GetOrCreateByExternalID(ctx, sub, username)
}

// Middleware rejects unauthenticated requests with 401 and puts the user in
// the request context otherwise.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := a.Authenticate(r.Context(), r)
		if err != nil {
			if !isAuthError(err) {
				a.log.Error().Stack().Err(err).Msg("user lookup failed")
				respond.WriteInternalError(w, "internal error")
				return
			}
			respond.WriteUnauthorized(w, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}
