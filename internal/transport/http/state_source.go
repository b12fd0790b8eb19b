package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
)

// StateClient fetches the authoritative snapshot from a remote deployment.
// It feeds the polling sync loop; any error it returns pushes the loop
// towards its local fallback.
type StateClient struct {
	baseURL string
	client  *http.Client
}

func NewStateClient(baseURL string, timeout time.Duration) *StateClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *StateClient) FetchState(ctx context.Context) (domain.ContestSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/state", nil)
	if err != nil {
		return domain.ContestSnapshot{}, fmt.Errorf("build state request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ContestSnapshot{}, fmt.Errorf("fetch state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ContestSnapshot{}, fmt.Errorf("fetch state: unexpected status %d", resp.StatusCode)
	}
	// A misconfigured base URL often answers with an HTML page and a 200.
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return domain.ContestSnapshot{}, fmt.Errorf("fetch state: unexpected content type %q", ct)
	}

	var snap domain.ContestSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return domain.ContestSnapshot{}, fmt.Errorf("decode state: %w", err)
	}
	return snap, nil
}
