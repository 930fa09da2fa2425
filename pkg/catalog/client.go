package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/conductor-go/pkg/a2a"
)

// Client fetches agent descriptors from their well-known endpoints.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchCard retrieves an agent descriptor document from the given URL.
func (c *Client) FetchCard(ctx context.Context, url string) (*a2a.AgentCard, error) {
	log.Debug("fetching agent descriptor", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ConnectionError{URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ConnectionError{URL: url, Err: &statusError{code: resp.StatusCode}}
	}

	var card a2a.AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, &DecodingError{URL: url, Err: err}
	}

	if card.ID == "" {
		card.ID = card.Name
	}

	return &card, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}
