package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	neturl "net/url"
	"time"

	"github.com/MacroPower/abischema/pkg/version"
)

// MaxResponseSize caps how much of a response body is read.
const MaxResponseSize = 32 << 20

var ErrResponseTooLarge = fmt.Errorf("response exceeds %d bytes", MaxResponseSize)

type Client struct {
	http      *nethttp.Client
	userAgent string
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		http:      &nethttp.Client{Timeout: timeout},
		userAgent: "abischema/" + version.Version,
	}
}

// PostJSON sends body to url with a JSON content type and returns the
// response body and status code.
func (c *Client) PostJSON(ctx context.Context, url string, body []byte) ([]byte, int, error) {
	urlParsed, err := neturl.Parse(url)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse url: %w", err)
	}

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, urlParsed.String(), bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read body: %w", err)
	}

	if len(bodyBytes) > MaxResponseSize {
		return nil, resp.StatusCode, ErrResponseTooLarge
	}

	return bodyBytes, resp.StatusCode, nil
}
