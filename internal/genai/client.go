// Package genai is a small client for the Gemini generateContent REST API.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/imanelbaz22-debug/serene-app/internal/metrics"
	"github.com/imanelbaz22-debug/serene-app/internal/model"
)

// Options configures a Client.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
	DailyQuota  int
	Clock       clockwork.Clock

	// BaseBackoff is the first retry delay; zero uses 500ms.
	BaseBackoff time.Duration
}

// Turn is one message of a conversation. Role is model.RoleUser or model.RoleModel.
type Turn struct {
	Role string
	Text string
}

// Request is a single generateContent call.
type Request struct {
	// UserID is charged against the daily quota; empty skips the guard.
	UserID string
	System string
	Turns  []Turn
	// JSON asks the model for an application/json answer.
	JSON bool
}

// Client calls Gemini over REST.
type Client struct {
	http        *resty.Client
	apiKey      string
	model       string
	temperature float64
	maxRetries  int
	baseBackoff time.Duration
	quota       *DailyQuota
	log         zerolog.Logger
}

func New(opts Options, log zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	base := opts.BaseBackoff
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{
		http:        hc,
		apiKey:      opts.APIKey,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxRetries:  opts.MaxRetries,
		baseBackoff: base,
		quota:       NewDailyQuota(opts.DailyQuota, opts.Clock),
		log:         log,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate returns the model's text answer.
//
// Errors: ErrQuotaExceeded (wrapped) for 429, quota-like messages, an
// exhausted local quota or a missing API key; ErrEmptyResponse when no text
// came back; *APIError for other provider failures. 5xx and network errors
// are retried with exponential backoff up to MaxRetries times.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if !c.Configured() {
		metrics.AIRequestsTotal.WithLabelValues(metrics.OutcomeQuota).Inc()
		return "", fmt.Errorf("%w: no API key configured", ErrQuotaExceeded)
	}
	if req.UserID != "" && !c.quota.Allow(req.UserID) {
		metrics.AIRequestsTotal.WithLabelValues(metrics.OutcomeQuota).Inc()
		return "", fmt.Errorf("%w: daily limit reached for user", ErrQuotaExceeded)
	}

	body := c.buildBody(req)

	var text string
	op := func() error {
		t, err := c.call(ctx, body)
		if err == nil {
			text = t
			return nil
		}
		var apiErr *APIError
		var netErr *transportError
		switch {
		case ctx.Err() != nil:
			return backoff.Permanent(ctx.Err())
		case errors.As(err, &apiErr) && apiErr.Transient(), errors.As(err, &netErr):
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.baseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = 8 * c.baseBackoff
	var b backoff.BackOff = backoff.WithMaxRetries(exp, uint64(max(c.maxRetries, 0)))
	b = backoff.WithContext(b, ctx)

	err := backoff.RetryNotify(op, b, func(err error, wait time.Duration) {
		c.log.Warn().Err(err).Dur("retry_in", wait).Msg("gemini call failed; retrying")
	})
	switch {
	case err == nil:
		metrics.AIRequestsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
		return text, nil
	case errors.Is(err, ErrQuotaExceeded):
		metrics.AIRequestsTotal.WithLabelValues(metrics.OutcomeQuota).Inc()
	case errors.Is(err, ErrEmptyResponse):
		metrics.AIRequestsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
	default:
		metrics.AIRequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		c.log.Error().Stack().Err(err).Str("model", c.model).Msg("gemini call failed")
	}
	return "", err
}

func (c *Client) buildBody(req Request) generateRequest {
	body := generateRequest{
		Contents:         make([]content, 0, len(req.Turns)),
		GenerationConfig: generationConfig{Temperature: c.temperature},
	}
	for _, t := range req.Turns {
		role := t.Role
		if role != model.RoleModel {
			role = model.RoleUser
		}
		body.Contents = append(body.Contents, content{Role: role, Parts: []part{{Text: t.Text}}})
	}
	if req.System != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.System}}}
	}
	if req.JSON {
		body.GenerationConfig.ResponseMimeType = "application/json"
	}
	return body
}

func (c *Client) call(ctx context.Context, body generateRequest) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(&body).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", &transportError{err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		var env errorEnvelope
		msg := resp.String()
		if json.Unmarshal(resp.Body(), &env) == nil && env.Error.Message != "" {
			msg = env.Error.Status + ": " + env.Error.Message
		}
		if isQuotaSignal(resp.StatusCode(), msg) {
			return "", fmt.Errorf("%w: %s", ErrQuotaExceeded, msg)
		}
		return "", &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}

	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	var sb strings.Builder
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
