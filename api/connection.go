package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Connection is the transport seam for vendor clients. Tests swap it for a
// fake so no network is involved.
type Connection interface {
	Request(ctx context.Context, endpoint *url.URL) (*http.Response, error)
}

type ClientHost struct {
	client *http.Client
	host   string
}

type Client struct {
	Connection Connection
	// BaseParams are query parameters applied to every request, e.g. a
	// currency or an api key, before endpoint specific ones.
	BaseParams map[string]string
}

func (conn *ClientHost) Request(ctx context.Context, endpoint *url.URL) (*http.Response, error) {
	endpoint.Scheme = "https"
	endpoint.Host = conn.host

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	return conn.client.Do(req)
}

func ClientFactory(host string, baseParams map[string]string, timeout time.Duration) *Client {
	client := &http.Client{
		Timeout: timeout,
	}

	clientHost := &ClientHost{
		client: client,
		host:   host,
	}

	return &Client{
		Connection: clientHost,
		BaseParams: baseParams,
	}
}

// BuildRequestPath merges the base parameters with endpoint specific ones into
// a relative URL; the connection fills in scheme and host.
func (c *Client) BuildRequestPath(path string, params map[string]string) *url.URL {
	endpoint := &url.URL{}
	endpoint.Path = path

	query := endpoint.Query()
	for key, value := range c.BaseParams {
		query.Set(key, value)
	}
	for key, value := range params {
		query.Set(key, value)
	}

	endpoint.RawQuery = query.Encode()

	return endpoint
}
