package callsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	nethttp "net/http"
	"net/url"
	"strconv"
	"time"

	"callpulse/config"
	"callpulse/internal/domain"
	"callpulse/internal/infrastructure/http"
)

// Strategy selects the pagination request shape the backend expects.
type Strategy string

const (
	// StrategyOffset requests explicit [from, to] index windows. Default:
	// it does not depend on the server consistently emitting a cursor.
	StrategyOffset Strategy = "offset"
	// StrategyToken follows the server-issued next_from cursor.
	StrategyToken Strategy = "token"
	// StrategyShortPage sends only a limit and relies on the backend
	// advancing its own window; works only when the last page is not padded.
	StrategyShortPage Strategy = "shortpage"
)

// Client defines the interface for the call-records API.
type Client interface {
	// FetchCalls pages through every call in [start, end]. On a transport
	// or HTTP error the records accumulated so far are returned alongside
	// the error, so callers can tell a partial result from a complete one.
	FetchCalls(ctx context.Context, start, end time.Time) (*FetchResult, error)
}

// FetchResult is the complete (or partial, when err != nil) fetch outcome.
type FetchResult struct {
	// TotalCount is the server-authoritative count for the full range. It
	// may exceed len(Calls) when the backend caps page iteration.
	TotalCount int
	Calls      []domain.CallRecord
	// Pages is the number of page requests issued.
	Pages int
}

type pageResponse struct {
	TotalCount int                 `json:"total_count"`
	Calls      []domain.CallRecord `json:"calls"`
	NextFrom   string              `json:"next_from"`
}

type client struct {
	httpClient http.Client
	baseURL    string
	apiKey     string
	limit      int
	strategy   Strategy
}

// NewClient creates a call-records API client.
func NewClient(httpClient http.Client, cfg *config.Config) Client {
	limit := cfg.PageLimit
	if limit <= 0 {
		limit = 1000
	}
	strategy := Strategy(cfg.Pagination)
	switch strategy {
	case StrategyOffset, StrategyToken, StrategyShortPage:
	default:
		strategy = StrategyOffset
	}
	return &client{
		httpClient: httpClient,
		baseURL:    cfg.CallsAPIURL,
		apiKey:     cfg.CallsAPIKey,
		limit:      limit,
		strategy:   strategy,
	}
}

func (c *client) FetchCalls(ctx context.Context, start, end time.Time) (*FetchResult, error) {
	res := &FetchResult{}

	var (
		nextFrom string
		from     int
	)

	for {
		q := url.Values{}
		q.Set("start_date", start.Format(time.RFC3339))
		q.Set("end_date", end.Format(time.RFC3339))

		requested := c.limit
		switch c.strategy {
		case StrategyToken:
			q.Set("limit", strconv.Itoa(c.limit))
			if nextFrom != "" {
				q.Set("next_from", nextFrom)
			}
		case StrategyShortPage:
			q.Set("limit", strconv.Itoa(c.limit))
		case StrategyOffset:
			to := from + c.limit - 1
			if res.Pages > 0 {
				if last := res.TotalCount - 1; to > last {
					to = last
				}
				if from > to {
					return res, nil
				}
			}
			q.Set("from", strconv.Itoa(from))
			q.Set("to", strconv.Itoa(to))
			requested = to - from + 1
		}

		page, err := c.fetchPage(ctx, q)
		if err != nil {
			return res, err
		}

		res.Pages++
		res.TotalCount = page.TotalCount
		res.Calls = append(res.Calls, page.Calls...)

		// The terminal condition is strictly "fewer records than
		// requested". A missing cursor on a full page does not mean
		// done: some backends intermittently omit it mid-iteration.
		if len(page.Calls) < requested {
			return res, nil
		}

		switch c.strategy {
		case StrategyShortPage:
			// The backend advances its own window; all we can do is
			// stop once the reported total has been accumulated. The
			// total itself is untrusted, so a contradictory low or
			// zero total on a full page also counts as exhaustion
			// rather than a reason to keep hammering the upstream.
			if len(res.Calls) >= res.TotalCount {
				return res, nil
			}
		case StrategyToken:
			if page.NextFrom != "" {
				nextFrom = page.NextFrom
				continue
			}
			last := domain.StringValue(page.Calls[len(page.Calls)-1].CallID)
			if last == "" {
				log.Printf("calls API omitted next_from and last record has no id, stopping after %d pages", res.Pages)
				return res, nil
			}
			nextFrom = last
		case StrategyOffset:
			from += requested
		}
	}
}

func (c *client) fetchPage(ctx context.Context, q url.Values) (*pageResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid calls API URL: %w", err)
	}
	u.RawQuery = q.Encode()

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calls: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, fmt.Errorf("calls API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var page pageResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &page, nil
}
