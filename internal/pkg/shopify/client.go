// Package shopify is a small Admin GraphQL client implementing the catalog
// ports. Only the operations the service needs are covered.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/murkotick/product-sync-service/internal/app/product/domain"
)

const (
	DefaultAPIVersion = "2024-01"
	defaultTimeout    = 15 * time.Second
	maxErrorBody      = 512
)

// ErrProductNotFound is returned by reads for an id the shop does not know.
var ErrProductNotFound = errors.New("shopify: product not found")

// Config holds connection settings for one shop.
type Config struct {
	// Shop is the shop domain (my-shop.myshopify.com) or a full base URL.
	Shop        string
	AccessToken string
	APIVersion  string
	// RateLimit is the steady request rate per second; zero disables limiting.
	RateLimit float64
	Timeout   time.Duration
}

// Client talks to the Admin GraphQL endpoint. It is safe for concurrent use.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
}

func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Shop) == "" {
		return nil, errors.New("shopify: shop is required")
	}
	if cfg.AccessToken == "" {
		return nil, errors.New("shopify: access token is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base := strings.TrimRight(cfg.Shop, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		endpoint: fmt.Sprintf("%s/admin/api/%s/graphql.json", base, cfg.APIVersion),
		token:    cfg.AccessToken,
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  limiter,
		logger:   logger,
	}, nil
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// userError is the userErrors shape shared by every mutation payload.
type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// do posts one GraphQL operation and decodes data into out. Any failure here
// (network, non-2xx, top-level GraphQL errors) is a transport error.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("shopify call failed", zap.String("op", op), zap.Error(err))
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("shopify call",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.TransportError{Op: op, Err: fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))}
	}

	var gr graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(gr.Errors) > 0 {
		return &domain.TransportError{Op: op, Err: errors.New(gr.Errors[0].Message)}
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return &domain.TransportError{Op: op, Err: errors.New("empty data")}
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}
