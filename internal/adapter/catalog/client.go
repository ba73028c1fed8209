package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/domain/model"
	"github.com/polkiloo/orderservice/internal/metrics"
)

const (
	targetCart    = "cart"
	targetProduct = "product"

	defaultTimeout = 5 * time.Second

	maxResponseBody = 1 << 20
	maxErrorBody    = 1024
)

// Client exposes the remote cart and product lookups used by order placement.
type Client interface {
	FetchCart(ctx context.Context, cartID string) (*model.Cart, error)
	FetchProduct(ctx context.Context, productID string) (*model.Product, error)
}

// HTTPClient implements Client via the catalog HTTP APIs.
// 404 maps to ErrNotFound, every other failure to a wrapped ErrUnavailable.
type HTTPClient struct {
	cartURL    *url.URL
	productURL *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Options tunes HTTPClient.
type Options struct {
	Timeout time.Duration
	Metrics *metrics.Metrics
}

type cartResponse struct {
	ID        remoteID           `json:"id"`
	UserID    remoteID           `json:"userId"`
	CartItems []cartItemResponse `json:"cartItems"`
}

type cartItemResponse struct {
	ProductID   remoteID        `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type productResponse struct {
	ProductID   remoteID        `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

// remoteID accepts identifiers encoded either as JSON strings or numbers.
type remoteID string

func (id *remoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = remoteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be string or number: %w", err)
	}
	*id = remoteID(n.String())
	return nil
}

// NewHTTPClient creates catalog client for the cart and product services.
func NewHTTPClient(cartBaseURL, productBaseURL string, logger *slog.Logger, opts Options) (*HTTPClient, error) {
	cartURL, err := parseBaseURL("cart", cartBaseURL)
	if err != nil {
		return nil, err
	}
	productURL, err := parseBaseURL("product", productBaseURL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPClient{
		cartURL:    cartURL,
		productURL: productURL,
		logger:     logger,
		metrics:    opts.Metrics,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func parseBaseURL(name, raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s service url: %w", name, err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("%s service url must be absolute", name)
	}
	return parsed, nil
}

// FetchCart loads cart snapshot by id.
func (c *HTTPClient) FetchCart(ctx context.Context, cartID string) (*model.Cart, error) {
	var data cartResponse
	if err := c.get(ctx, targetCart, c.cartURL, "/api/carts/", cartID, &data); err != nil {
		return nil, err
	}

	cart := &model.Cart{ID: string(data.ID), UserID: string(data.UserID)}
	if cart.ID == "" {
		cart.ID = cartID
	}
	for _, item := range data.CartItems {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID:   string(item.ProductID),
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return cart, nil
}

// FetchProduct loads current product data by id.
func (c *HTTPClient) FetchProduct(ctx context.Context, productID string) (*model.Product, error) {
	var data productResponse
	if err := c.get(ctx, targetProduct, c.productURL, "/api/product/", productID, &data); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          string(data.ProductID),
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		ImageURL:    data.ImageURL,
	}
	if product.ID == "" {
		product.ID = productID
	}
	return product, nil
}

func (c *HTTPClient) get(ctx context.Context, target string, base *url.URL, prefix, id string, dst any) (err error) {
	defer func() { c.observe(target, err) }()

	endpoint := *base
	endpoint.Path = path.Join(endpoint.Path, prefix, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w: %w", target, domainErrors.ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", slog.String("target", target), slog.String("id", id), slog.Any("error", err))
		return fmt.Errorf("%s service: %w: %w", target, domainErrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", target, id, domainErrors.ErrNotFound)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
		if err != nil {
			return fmt.Errorf("read %s response: %w: %w", target, domainErrors.ErrUnavailable, err)
		}
		if len(body) > maxResponseBody {
			return fmt.Errorf("%s response exceeds %d bytes: %w", target, maxResponseBody, domainErrors.ErrUnavailable)
		}
		if err := json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("decode %s response: %w: %w", target, domainErrors.ErrUnavailable, err)
		}
		return nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("catalog request rejected",
			slog.String("target", target),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return fmt.Errorf("%s service responded %s: %w", target, resp.Status, domainErrors.ErrUnavailable)
	}
}

func (c *HTTPClient) observe(target string, err error) {
	if c.metrics == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, domainErrors.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeUnavailable
	}
	c.metrics.GatewayRequests.WithLabelValues(target, outcome).Inc()
}
