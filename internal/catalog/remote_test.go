package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Siddharthnigam/jugglers-shop/internal/domain"
)

func TestRemoteCatalog_List(t *testing.T) {
	remoteProducts := SampleProducts()[:2]
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/", r.URL.Path)
		json.NewEncoder(w).Encode(remoteProducts)
	}))
	defer server.Close()

	sut := NewRemoteCatalog(server.URL, NewMemoryCatalog(), zap.NewNop())

	products, err := sut.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "classic-denim-shirt", products[0].Slug)
}

func TestRemoteCatalog_GetByID(t *testing.T) {
	product := SampleProducts()[0]
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/1/", r.URL.Path)
		json.NewEncoder(w).Encode(product)
	}))
	defer server.Close()

	sut := NewRemoteCatalog(server.URL, NewMemoryCatalog(), zap.NewNop())

	p, err := sut.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, product.Name, p.Name)
}

func TestRemoteCatalog_FallsBackWhenRemoteDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sut := NewRemoteCatalog(server.URL, NewSeededCatalog(), zap.NewNop())

	products, err := sut.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 5, "fallback catalog should answer")
}

func TestRemoteCatalog_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sut := NewRemoteCatalog(server.URL, NewSeededCatalog(), zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := sut.List(ctx)
		require.NoError(t, err, "fallback always answers")
	}

	// The breaker trips after five consecutive failures and stops
	// hammering the remote.
	assert.Equal(t, 5, hits)
}

func TestRemoteCatalog_NotFoundUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	sut := NewRemoteCatalog(server.URL, NewSeededCatalog(), zap.NewNop())

	// Fallback knows the product even though the remote does not.
	p, err := sut.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Classic Denim Shirt", p.Name)

	_, err = sut.GetByID(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
