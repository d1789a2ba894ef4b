package selenium

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ConsolePath is the hub page listing registered nodes
const ConsolePath = "/grid/console"

// Client queries a grid hub
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the hub at address (host:port)
func NewClient(address string, timeout time.Duration) *Client {
	return &Client{
		baseURL: "http://" + address,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Nodes fetches the nodes currently registered with the hub
func (c *Client) Nodes(ctx context.Context) ([]Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ConsolePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("selenium grid not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("selenium grid returned %s", resp.Status)
	}

	return ParseConsole(resp.Body)
}

// BrowserCount returns the number of WebDriver browsers available
func (c *Client) BrowserCount(ctx context.Context) (int, error) {
	nodes, err := c.Nodes(ctx)
	if err != nil {
		return 0, err
	}

	return CountWebDriver(nodes), nil
}

// CountWebDriver counts browsers whose protocol is exactly "WebDriver".
// Legacy RC slots and case variants are not counted.
func CountWebDriver(nodes []Node) int {
	count := 0
	for _, node := range nodes {
		for _, browser := range node.Browsers {
			if browser.Protocol == ProtocolWebDriver {
				count++
			}
		}
	}

	return count
}
