package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-core/internal/catalog"
	"storefront-core/internal/logger"
	"storefront-core/internal/order"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ProductsResponse is the catalog listing returned by the remote service.
type ProductsResponse struct {
	Total int               `json:"total"`
	Items []catalog.Product `json:"items"`
}

// CreateOrderResult is the acknowledgment for a submitted order.
type CreateOrderResult struct {
	ID string `json:"id"`
}

// Client talks to the storefront REST service. It does not interpret status
// codes beyond success and failure; any non-2xx response surfaces as a
// transport error.
type Client struct {
	baseURL    string
	cdnURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a client for baseURL. rps throttles outgoing requests so a
// jittery UI cannot hammer the backend.
func NewClient(baseURL, cdnURL string, timeout time.Duration, rps float64) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		cdnURL:  strings.TrimRight(cdnURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// FetchProducts retrieves the full catalog.
func (c *Client) FetchProducts(ctx context.Context) (*ProductsResponse, error) {
	var resp ProductsResponse
	if err := c.get(ctx, "/product", &resp); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return &resp, nil
}

// GetProduct retrieves a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := c.get(ctx, "/product/"+id, &p); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

// CreateOrder submits an order snapshot. Each submission carries a fresh
// request id header so the backend can spot duplicates.
func (c *Client) CreateOrder(ctx context.Context, sub order.Submission) (*CreateOrderResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.Float64("total", sub.Total),
		zap.Int("items", len(sub.Items)),
	)

	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("create order: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	var result CreateOrderResult
	if err := c.do(req, &result); err != nil {
		log.Error("order submission failed", zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}

	log.Info("order accepted", zap.String("order_id", result.ID))
	return &result, nil
}

// ImageURL resolves a product image reference against the CDN base.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return c.cdnURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}
	return nil
}
