// Package neptune is a minimal client for the Neptune openCypher HTTP
// endpoint.
package neptune

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"neptune-lambda/pkg/observability"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	// DefaultPort is the port Neptune serves openCypher on
	DefaultPort = 8182

	// QueryPath is the openCypher HTTP path
	QueryPath = "/openCypher"

	maxErrorBody = 64 << 10
)

// RequestSigner signs an outbound request before it is sent. body is the
// exact payload that will be transmitted.
type RequestSigner interface {
	Sign(ctx context.Context, req *http.Request, body []byte) error
}

// Options configures a Client
type Options struct {
	Endpoint string
	Port     int
	Scheme   string

	// Timeout bounds a single query. Zero leaves it to the caller's context
	// and the transport.
	Timeout time.Duration

	HTTPClient *http.Client
	Signer     RequestSigner
	Breaker    *gobreaker.CircuitBreaker
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// Client sends openCypher statements to one Neptune cluster endpoint
type Client struct {
	queryURL string
	timeout  time.Duration
	http     *http.Client
	signer   RequestSigner
	breaker  *gobreaker.CircuitBreaker
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// Result is the decoded body of a successful query
type Result struct {
	Results []json.RawMessage `json:"results"`
}

// NewClient creates a Client for the endpoint in opts
func NewClient(opts Options) (*Client, error) {
	queryURL, err := QueryURL(opts.Scheme, opts.Endpoint, opts.Port)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		queryURL: queryURL,
		timeout:  opts.Timeout,
		http:     httpClient,
		signer:   opts.Signer,
		breaker:  opts.Breaker,
		metrics:  opts.Metrics,
		logger:   logger,
	}, nil
}

// QueryURL builds {scheme}://{endpoint}:{port}/openCypher
func QueryURL(scheme, endpoint string, port int) (string, error) {
	if endpoint == "" {
		return "", fmt.Errorf("neptune endpoint is required")
	}
	if scheme == "" {
		scheme = "https"
	}
	if scheme != "https" && scheme != "http" {
		return "", fmt.Errorf("unsupported scheme %q", scheme)
	}
	if port == 0 {
		port = DefaultPort
	}

	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(endpoint, strconv.Itoa(port)),
		Path:   QueryPath,
	}
	return u.String(), nil
}

// URL returns the query URL the client posts to
func (c *Client) URL() string {
	return c.queryURL
}

// Query sends one statement and returns its result records. It never
// retries.
func (c *Client) Query(ctx context.Context, statement string) (*Result, error) {
	op := operation(statement)
	start := time.Now()

	result, err := c.execute(ctx, statement)

	elapsed := time.Since(start)
	c.metrics.ObserveQuery(op, elapsed, err)

	if err != nil {
		c.logger.Warn("neptune query failed",
			zap.String("operation", op),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("neptune query succeeded",
		zap.String("operation", op),
		zap.Duration("duration", elapsed),
		zap.Int("records", len(result.Results)),
	)
	return result, nil
}

func (c *Client) execute(ctx context.Context, statement string) (*Result, error) {
	if c.breaker == nil {
		return c.do(ctx, statement)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, statement)
	})
	if err != nil {
		return nil, err
	}
	return out.(*Result), nil
}

func (c *Client) do(ctx context.Context, statement string) (*Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body := []byte(url.Values{"query": {statement}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queryURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	if c.signer != nil {
		if err := c.signer.Sign(ctx, req, body); err != nil {
			return nil, fmt.Errorf("sign request: %w", err)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newStatusError(resp.StatusCode, raw)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.Results == nil {
		result.Results = []json.RawMessage{}
	}

	return &result, nil
}

// operation names a statement by its leading clause for logs and metrics
func operation(statement string) string {
	fields := strings.Fields(statement)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
