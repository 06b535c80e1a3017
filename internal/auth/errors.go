package auth

import (
	"errors"
	"fmt"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

var (
	// ErrMissingToken is returned when no bearer token accompanies the request.
	ErrMissingToken = fmt.Errorf("%w: missing bearer token", model.ErrUnauthorized)

	// ErrInvalidToken is returned when the token cannot be parsed or verified.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", model.ErrUnauthorized)

	// ErrMissingSubject is returned when a valid token carries no sub claim.
	ErrMissingSubject = fmt.Errorf("%w: token missing user ID", model.ErrUnauthorized)
)

func isAuthError(err error) bool {
	return errors.Is(err, model.ErrUnauthorized)
}
