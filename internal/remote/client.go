// Package remote is the HTTP client for the product/dolar store. The store is
// authoritative: callers mutate their in-memory mirror only after a call here
// confirms the change.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Jhonaiker2309/supermarket-administration/internal/httpclient"
	"github.com/Jhonaiker2309/supermarket-administration/internal/metrics"
	"github.com/Jhonaiker2309/supermarket-administration/internal/rate"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

// Client wraps low-level HTTP communication with the remote store.
type Client struct {
	logger  *zap.Logger
	baseURL string
	exec    *httpclient.Executor
}

// NewClient constructs a remote store client.
func NewClient(logger *zap.Logger, baseURL string, rateMgr *rate.Manager, timeout time.Duration) *Client {
	httpClient := &http.Client{Timeout: timeout}
	exec := httpclient.New(logger, rateMgr, httpClient, "store",
		func(status int, body []byte) error {
			return &RejectionError{Status: status, Body: string(body)}
		},
		metrics.ObserveStoreRequest,
	)
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		exec:    exec,
	}
}

// ListProducts fetches the full product collection. Every record is normalized
// into the tiered schema before it is returned.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.getJSON(ctx, "/products", "products", &products); err != nil {
		return nil, err
	}
	for i := range products {
		if schema := products[i].Normalize(); schema == model.SchemaFlat {
			c.logger.Debug("store.product_migrated",
				zap.String("key", products[i].Ref().String()))
		}
	}
	return products, nil
}

// CreateProduct sends a new product and returns the store's canonical
// representation, which may differ from the input (e.g. an assigned id).
func (c *Client) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	var created model.Product
	if err := c.sendJSON(ctx, http.MethodPost, "/products", "products", p, &created); err != nil {
		return nil, err
	}
	created.Normalize()
	return &created, nil
}

// UpdateProduct replaces the product addressed by its ref and returns the
// store's canonical representation.
func (c *Client) UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	var updated model.Product
	path := productPath(p.Ref())
	if err := c.sendJSON(ctx, http.MethodPut, path, "products", p, &updated); err != nil {
		return nil, err
	}
	updated.Normalize()
	return &updated, nil
}

// DeleteProduct removes the product addressed by ref.
func (c *Client) DeleteProduct(ctx context.Context, ref model.ProductRef) error {
	return c.sendJSON(ctx, http.MethodDelete, productPath(ref), "products", nil, nil)
}

// ListRates fetches the full exchange-rate collection.
func (c *Client) ListRates(ctx context.Context) ([]model.ExchangeRate, error) {
	var rates []model.ExchangeRate
	if err := c.getJSON(ctx, "/dolar", "dolar", &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// CreateRate sends a new rate record; the store assigns its id.
func (c *Client) CreateRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
	var created model.ExchangeRate
	if err := c.sendJSON(ctx, http.MethodPost, "/dolar", "dolar", r, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRate replaces the rate record addressed by its id.
func (c *Client) UpdateRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error) {
	var updated model.ExchangeRate
	path := "/dolar/" + url.PathEscape(r.ID.String())
	if err := c.sendJSON(ctx, http.MethodPut, path, "dolar", r, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteRate removes the rate record addressed by id.
func (c *Client) DeleteRate(ctx context.Context, id model.ID) error {
	path := "/dolar/" + url.PathEscape(id.String())
	return c.sendJSON(ctx, http.MethodDelete, path, "dolar", nil, nil)
}

// productPath addresses a product by surrogate id when the store assigned one,
// falling back to the legacy composite-key route.
func productPath(ref model.ProductRef) string {
	if ref.ID != "" {
		return "/products/id/" + url.PathEscape(ref.ID.String())
	}
	return fmt.Sprintf("/products/%s/%s/%s",
		url.PathEscape(ref.Name),
		url.PathEscape(ref.Brand),
		url.PathEscape(ref.Store))
}

func (c *Client) getJSON(ctx context.Context, path, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return classify(err)
	}
	req.Header.Set("Accept", "application/json")
	return classify(c.exec.DoJSON(ctx, req, "store", endpoint, out))
}

func (c *Client) sendJSON(ctx context.Context, method, path, endpoint string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return classify(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return classify(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return classify(c.exec.DoJSON(ctx, req, "store", endpoint, out))
}
