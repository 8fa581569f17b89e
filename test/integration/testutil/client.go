package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"foamparty/pkg/client"
)

// Client wraps the service HTTP client with test-friendly methods.
type Client struct {
	http *client.HttpClient
}

func NewClient(baseURL string) *Client {
	return &Client{http: client.NewHttpClient(baseURL, 10*time.Second)}
}

func (c *Client) GET(t *testing.T, path string) *client.Response {
	t.Helper()
	resp, err := c.http.GET(context.Background(), path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func (c *Client) POST(t *testing.T, path string, body any) *client.Response {
	t.Helper()
	return c.POSTWithHeaders(t, path, body, nil)
}

func (c *Client) POSTWithHeaders(t *testing.T, path string, body any, headers map[string]string) *client.Response {
	t.Helper()
	resp, err := c.http.POSTWithHeaders(context.Background(), path, body, headers)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

// TryPOST is POST for goroutines, where t.Fatalf must not be called.
func (c *Client) TryPOST(path string, body any) (*client.Response, error) {
	return c.http.POST(context.Background(), path, body)
}

// WaitForHealthy polls /health until it answers 200 or timeout passes.
func (c *Client) WaitForHealthy(t *testing.T, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := c.http.GET(context.Background(), "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			return
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service did not become healthy within %s", timeout)
}
