// Package services holds the use cases behind the HTTP API.
package services

import (
	"context"

	"github.com/imanelbaz22-debug/serene-app/internal/genai"
)

// Generator is the part of the AI client the services depend on.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) (string, error)
}
