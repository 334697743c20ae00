package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PortalClient fetches act documents from the legislative portal. The
// scrape/schedule loop lives outside this service; the client only covers
// the one fetch the ingest path needs.
type PortalClient struct {
	HttpClient *http.Client
}

func NewPortalClient(timeout time.Duration) *PortalClient {
	return &PortalClient{
		HttpClient: &http.Client{Timeout: timeout},
	}
}

// GetHTML fetches the raw HTML of one act.
func (c *PortalClient) GetHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading body of %s: %w", url, err)
	}
	return string(body), nil
}
