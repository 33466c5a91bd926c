// Package retirement consumes the external long-horizon simulation
// service. The multi-decade modeling itself is not reproduced here; this
// client only fetches already-computed results for display.
package retirement

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Summary is the headline result of a simulation run.
type Summary struct {
	TotalSurvivalYears       int    `json:"total_survival_years"`
	SgovExhaustionDate       string `json:"sgov_exhaustion_date"`
	GrowthAssetSellStartDate string `json:"growth_asset_sell_start_date"`
	IsPermanent              bool   `json:"is_permanent"`
	InfiniteWith10PctCut     bool   `json:"infinite_with_10pct_cut,omitempty"`
}

// MonthPoint is one simulated month of balances.
type MonthPoint struct {
	Month          int     `json:"month"`
	CorpBalance    float64 `json:"corp_balance"`
	PensionBalance float64 `json:"pension_balance"`
	TotalNetWorth  float64 `json:"total_net_worth"`
	TargetCashflow float64 `json:"target_cashflow"`
	State          string  `json:"state,omitempty"`
}

// Simulation is a complete externally-computed simulation result.
type Simulation struct {
	Summary     Summary      `json:"summary"`
	MonthlyData []MonthPoint `json:"monthly_data"`
}

// Client is an HTTP client for the simulation service with retry on 429.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
}

// NewClient creates a new simulation service client. A negative retry
// count is treated as zero, so the request always runs at least once.
func NewClient(baseURL string, maxRetries int, baseDelay time.Duration) *Client {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// GetSimulation fetches the simulation result, optionally under a named
// stress scenario (e.g. BEAR, STAGFLATION, DIVIDEND_CUT). An empty
// scenario requests the baseline run.
func (c *Client) GetSimulation(ctx context.Context, scenario string) (Simulation, error) {
	path := "/api/retirement/simulate"
	if scenario != "" {
		path += "?scenario=" + url.QueryEscape(scenario)
	}

	var result Simulation
	if err := c.getJSON(ctx, path, &result); err != nil {
		return Simulation{}, err
	}
	return result, nil
}

// get performs a GET request with exponential backoff on 429.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	var lastErr error
	for attempt := range c.maxRetries + 1 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("executing request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("HTTP 429 at %s (attempt %d/%d)", url, attempt+1, c.maxRetries+1)
			if attempt < c.maxRetries {
				delay := c.baseDelay * time.Duration(1<<uint(attempt))
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return nil, lastErr
		}

		return nil, fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, string(body))
	}

	return nil, lastErr
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parsing JSON from %s: %w", path, err)
	}
	return nil
}
