package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
)

// RemoteCatalog is a thin client for an external product API. Requests go
// through a circuit breaker; when the remote is down or the breaker is
// open, the fallback catalog answers instead.
type RemoteCatalog struct {
	baseURL  string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[[]byte]
	fallback Catalog
	logger   *zap.Logger
}

func NewRemoteCatalog(baseURL string, fallback Catalog, logger *zap.Logger) *RemoteCatalog {
	settings := gobreaker.Settings{
		Name:        "product-api",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing product is a valid answer, not a remote outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrProductNotFound)
		},
	}

	return &RemoteCatalog{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		breaker:  gobreaker.NewCircuitBreaker[[]byte](settings),
		fallback: fallback,
		logger:   logger,
	}
}

func (c *RemoteCatalog) List(ctx context.Context) ([]domain.Product, error) {
	products, err := c.fetchProducts(ctx, "/products/")
	if err != nil {
		c.logger.Warn("remote catalog unavailable, using fallback", zap.Error(err))
		return c.fallback.List(ctx)
	}
	return products, nil
}

func (c *RemoteCatalog) Featured(ctx context.Context) ([]domain.Product, error) {
	products, err := c.fetchProducts(ctx, "/products/featured/")
	if err != nil {
		c.logger.Warn("remote catalog unavailable, using fallback", zap.Error(err))
		return c.fallback.Featured(ctx)
	}
	return products, nil
}

func (c *RemoteCatalog) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	body, err := c.fetch(ctx, "/products/"+id+"/")
	if err != nil {
		c.logger.Warn("remote catalog unavailable, using fallback", zap.String("id", id), zap.Error(err))
		return c.fallback.GetByID(ctx, id)
	}

	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &product, nil
}

// GetBySlug scans the product list; the remote API has no slug endpoint.
func (c *RemoteCatalog) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	products, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Slug == slug {
			return &products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (c *RemoteCatalog) Categories(ctx context.Context) ([]string, error) {
	products, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

func (c *RemoteCatalog) fetchProducts(ctx context.Context, path string) ([]domain.Product, error) {
	body, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (c *RemoteCatalog) fetch(ctx context.Context, path string) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("product api request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("product api returned status %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
}
