package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/donatehub/donatehub-client/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

var _ ports.BackendAPI = (*Client)(nil)

// Client talks to the DonateHub REST API. Authorization is handled entirely by
// the transport it was built with.
type Client struct {
	baseURL string
	http    *http.Client
	metrics ports.Metrics
	log     zerolog.Logger
}

// New returns a client for baseURL whose requests go through transport
// (normally an *Authorizer).
func New(baseURL string, transport http.RoundTripper, timeout time.Duration, metrics ports.Metrics, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: transport, Timeout: timeout},
		metrics: metrics,
		log:     log,
	}
}

// Ping checks that the backend answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/campaigns?limit=1", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends one request and decodes the JSON response into out (if non-nil).
// Non-2xx responses become *ports.APIError carrying the backend's message.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.APIRequest(op, 0, time.Since(start))
		c.log.Warn().Err(err).Str("op", op).Msg("backend request failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	c.metrics.APIRequest(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &ports.APIError{Status: resp.StatusCode}
		var eb errorBody
		if raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); json.Unmarshal(raw, &eb) == nil {
			apiErr.Message = eb.Message
			if apiErr.Message == "" {
				apiErr.Message = eb.Error
			}
		}
		c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("backend rejected request")
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
