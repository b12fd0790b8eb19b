// Package judge talks to the external code evaluation collaborator.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
)

// ErrUnavailable is returned when no evaluator endpoint is configured.
var ErrUnavailable = errors.New("judge endpoint not configured")

// Client calls an HTTP evaluator endpoint. Every request is bounded by the
// client timeout; the submission pipeline turns any failure into a degraded
// verdict, so this client never retries on its own.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type evaluateRequest struct {
	Code     string         `json:"code"`
	Language string         `json:"language"`
	Problem  domain.Problem `json:"problem"`
}

func (c *Client) Evaluate(ctx context.Context, code string, problem domain.Problem, language string) (domain.Verdict, error) {
	body, err := json.Marshal(evaluateRequest{Code: code, Language: language, Problem: problem})
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("encode evaluate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("build evaluate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("evaluate call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Verdict{}, fmt.Errorf("evaluator returned status %d", resp.StatusCode)
	}

	var verdict domain.Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return domain.Verdict{}, fmt.Errorf("decode verdict: %w", err)
	}
	return verdict, nil
}

// Disabled is the judge used when no endpoint is configured: every call fails,
// which keeps local deployments on the degraded-verdict path instead of hanging.
type Disabled struct{}

func (Disabled) Evaluate(context.Context, string, domain.Problem, string) (domain.Verdict, error) {
	return domain.Verdict{}, ErrUnavailable
}
