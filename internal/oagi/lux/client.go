// Package lux implements the oagi.Agent interface over the hosted Lux API.
//
// One Execute call opens a session, then loops: capture a screenshot, send
// it to the API, apply the actions the model returns, until the model marks
// the task done or the step budget runs out. Transient transport failures
// are retried with backoff; auth and client errors are not.
package lux

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/openagi/lux-go/internal/config"
	"github.com/openagi/lux-go/internal/oagi"
	"github.com/openagi/lux-go/internal/retry"
)

// Client talks to the Lux API. It is safe for concurrent use; each Execute
// call runs its own session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cfg        oagi.AgentConfig
	maxRetries int
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New builds a Client from process configuration and agent tunables.
func New(cfg *config.Config, agentCfg oagi.AgentConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		cfg:        agentCfg.WithDefaults(),
		maxRetries: cfg.MaxRetries,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Wire shapes for the session API.

type sessionRequest struct {
	Instruction string `json:"instruction"`
	Model       string `json:"model"`
	MaxSteps    int    `json:"max_steps"`
}

type sessionResponse struct {
	ID string `json:"id"`
}

type stepRequest struct {
	Image  string `json:"image"`
	Format string `json:"format"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type stepResponse struct {
	Actions []oagi.Action `json:"actions"`
	Done    bool          `json:"done"`
	Success bool          `json:"success"`
	State   string        `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Execute implements oagi.Agent.
func (c *Client) Execute(ctx context.Context, instruction string, handler oagi.ActionHandler, images oagi.ImageProvider) (*oagi.Result, error) {
	start := time.Now()

	sess, err := c.createSession(ctx, instruction)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	c.logger.DebugContext(ctx, "lux session opened", "session", sess.ID, "model", c.cfg.Model.APIName())

	res := &oagi.Result{}
	for step := 1; step <= c.cfg.MaxSteps; step++ {
		stepCtx, cancel := context.WithTimeout(ctx, c.cfg.StepTimeout)
		resp, err := c.runStep(stepCtx, sess.ID, handler, images)
		cancel()
		if err != nil {
			res.ExecutionTime = time.Since(start)
			res.Errors = append(res.Errors, err.Error())
			return res, err
		}

		res.StepsCompleted = step
		if resp.Done {
			res.Success = resp.Success
			res.FinalState = resp.State
			if resp.Error != "" {
				res.Errors = append(res.Errors, resp.Error)
			}
			res.ExecutionTime = time.Since(start)
			return res, nil
		}
	}

	res.ExecutionTime = time.Since(start)
	res.Errors = append(res.Errors, fmt.Sprintf("step budget of %d exhausted", c.cfg.MaxSteps))
	return res, nil
}

// runStep sends the current screen state and applies the returned actions.
func (c *Client) runStep(ctx context.Context, sessionID string, handler oagi.ActionHandler, images oagi.ImageProvider) (*stepResponse, error) {
	shot, err := images.Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}

	req := stepRequest{
		Image:  base64.StdEncoding.EncodeToString(shot.Data),
		Format: shot.Format,
		Width:  shot.Width,
		Height: shot.Height,
	}

	var resp stepResponse
	path := fmt.Sprintf("/v1/sessions/%s/steps", sessionID)
	if err := c.post(ctx, path, req, &resp); err != nil {
		return nil, err
	}

	for _, action := range resp.Actions {
		if action.Type == "done" || action.Type == "fail" {
			continue
		}
		if err := handler.Apply(ctx, action); err != nil {
			return nil, fmt.Errorf("apply %s: %w", action.Type, err)
		}
	}
	return &resp, nil
}

func (c *Client) createSession(ctx context.Context, instruction string) (*sessionResponse, error) {
	req := sessionRequest{
		Instruction: instruction,
		Model:       c.cfg.Model.APIName(),
		MaxSteps:    c.cfg.MaxSteps,
	}
	var resp sessionResponse
	if err := c.post(ctx, "/v1/sessions", req, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("API returned a session without an id")
	}
	return &resp, nil
}

// post issues one authenticated JSON POST, retrying transient failures.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	attempts := c.maxRetries + 1
	result := retry.Do(ctx, retry.Transient(attempts), func() error {
		return c.postOnce(ctx, path, payload, out)
	})
	return result.Err
}

func (c *Client) postOnce(ctx context.Context, path string, payload []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return retry.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("POST %s: status %d", path, resp.StatusCode)
	default:
		// 4xx other than 429 will not improve with retries.
		return retry.Permanent(fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, truncate(string(data), 200)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return retry.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
