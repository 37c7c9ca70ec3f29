package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/bibbank/scamguard/internal/domain/service"
	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

const (
	// ScorerName identifies this backend in logs and metrics.
	ScorerName = "openai"

	defaultBaseURL    = "https://api.openai.com/v1"
	defaultModel      = "gpt-4o-mini"
	defaultTimeout    = 30 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
	maxResponseBytes  = 1 << 20
)

// ErrMissingAPIKey is returned when no API key has been configured.
var ErrMissingAPIKey = errors.New("OpenAI API key not provided (set OPENAI_API_KEY)") //nolint:staticcheck // names the env var

const systemPrompt = `You are an expert in investment fraud. Analyze the investment pitch supplied by the user and ` +
	`reply with a JSON object only, using exactly these fields:
{"riskScore": integer 0-100,
 "redFlags": [{"type": string, "description": string, "severity": "high"|"medium"|"low", "excerpt": string}],
 "explanation": string,
 "recommendation": string}
Look for guaranteed returns, pressure tactics, unrealistic returns, suspicious contact methods, get-rich-quick ` +
	`claims, payment red flags, exclusivity, unregulated platforms and high return claims. Excerpts must be copied ` +
	`verbatim from the text.`

// Config configures the OpenAI scorer.
type Config struct {
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	APIKey     string
	Model      string
	// BaseURL is the API root, e.g. https://api.openai.com/v1.
	BaseURL string
	// Timeout bounds a whole Score call, retries included.
	Timeout    time.Duration
	RetryDelay time.Duration
	// MaxRetries is how many times a transient failure is retried after the
	// first attempt.
	MaxRetries int
}

// OpenAIScorer implements service.Scorer with the OpenAI chat completions API.
// Unlike the rule-based scorer it can fail; failures are returned, never
// mapped to a low score.
type OpenAIScorer struct {
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string
	retryCfg   retry.Config
	timeout    time.Duration
}

// NewOpenAIScorer creates a scorer from cfg, filling in defaults.
func NewOpenAIScorer(cfg Config) *OpenAIScorer {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	attempts := cfg.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	return &OpenAIScorer{
		httpClient: cfg.HTTPClient,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		timeout:    cfg.Timeout,
		retryCfg: retry.Config{
			MaxAttempts:   attempts,
			InitialDelay:  cfg.RetryDelay,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Name implements service.Scorer.
func (s *OpenAIScorer) Name() string {
	return ScorerName
}

// Score implements service.Scorer.
func (s *OpenAIScorer) Score(ctx context.Context, text string) (valueobject.RiskAssessment, error) {
	if s.apiKey == "" {
		return valueobject.RiskAssessment{}, ErrMissingAPIKey
	}

	r := retry.New[outcome](s.retryCfg)
	t := timeout.New[outcome](timeout.Config{DefaultTimeout: s.timeout})

	out, err := t.Execute(ctx, s.timeout, func(ctx context.Context) (outcome, error) {
		return r.Do(ctx, func(ctx context.Context) (outcome, error) {
			a, err := s.complete(ctx, text)
			var perm *permanentError
			if errors.As(err, &perm) {
				// Ends the retry loop; the error travels in the outcome.
				return outcome{err: perm.err}, nil
			}
			return outcome{assessment: a}, err
		})
	})
	if err == nil {
		err = out.err
	}
	if err != nil {
		return valueobject.RiskAssessment{}, fmt.Errorf("openai scorer: %w", err)
	}
	return out.assessment, nil
}

// outcome is the result of one attempt.
type outcome struct {
	err        error
	assessment valueobject.RiskAssessment
}

// permanentError marks a failure that a retry cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return &permanentError{err: err}
}

// retryableStatus reports whether an API status is worth retrying.
func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500
}

type chatRequest struct {
	ResponseFormat responseFormat `json:"response_format"`
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *OpenAIScorer) complete(ctx context.Context, text string) (valueobject.RiskAssessment, error) {
	body, err := json.Marshal(chatRequest{
		Model:          s.model,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return valueobject.RiskAssessment{}, permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return valueobject.RiskAssessment{}, permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return valueobject.RiskAssessment{}, err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read body

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("OpenAI API returned status: %s", resp.Status)
		if retryableStatus(resp.StatusCode) {
			return valueobject.RiskAssessment{}, err
		}
		return valueobject.RiskAssessment{}, permanent(err)
	}

	var chat chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&chat); err != nil {
		return valueobject.RiskAssessment{}, permanent(fmt.Errorf("decode OpenAI response: %w", err))
	}
	if len(chat.Choices) == 0 {
		return valueobject.RiskAssessment{}, permanent(errors.New("OpenAI API returned no choices"))
	}

	a, err := parseAssessment(chat.Choices[0].Message.Content)
	if err != nil {
		return valueobject.RiskAssessment{}, permanent(err)
	}
	return a, nil
}

// parseAssessment decodes the model's JSON answer. The score is range checked
// and any riskLevel the model sent is ignored. Empty prose falls back to the
// tier templates.
func parseAssessment(content string) (valueobject.RiskAssessment, error) {
	var a valueobject.RiskAssessment
	if err := json.Unmarshal([]byte(content), &a); err != nil {
		return valueobject.RiskAssessment{}, fmt.Errorf("parse model assessment: %w", err)
	}

	explanation := a.Explanation()
	if explanation == "" {
		explanation = service.Explanation(a.Level())
	}
	recommendation := a.Recommendation()
	if recommendation == "" {
		recommendation = service.Recommendation(a.Level())
	}
	return valueobject.NewRiskAssessment(a.Score(), a.RedFlags(), explanation, recommendation)
}
