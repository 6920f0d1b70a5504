package barcodelookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
	httpclient "github.com/sadopc/consulteja/internal/provider/http"
)

const fixture = `{
  "products": [{
    "barcode_number": "0885909950805",
    "title": "Apple iPhone 6",
    "product_name": "",
    "description": "Smartphone",
    "images": ["https://images.barcodelookup.com/1.jpg", "https://images.barcodelookup.com/2.jpg"],
    "brand": "Apple",
    "model": "MG5W2LL/A",
    "color": "gold",
    "size": "",
    "weight": "129 g",
    "category": "Electronics > Phones",
    "manufacturer": "Apple Inc.",
    "stores": [
      {"store_name": "Best Buy", "price": "199.99", "currency": "USD", "link": "https://bestbuy.example"},
      {"store_name": "eBay", "price": null}
    ]
  }]
}`

func newServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/products", r.URL.Path)
		assert.Equal(t, "0885909950805", r.URL.Query().Get("barcode"))
		assert.Equal(t, "y", r.URL.Query().Get("formatted"))
		assert.Equal(t, "demo", r.URL.Query().Get("key"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookup_MapsFirstProduct(t *testing.T) {
	srv := newServer(t, fixture, http.StatusOK)
	p := New(httpclient.New(), srv.URL, "")

	got, err := p.Lookup(context.Background(), "0885909950805")
	require.NoError(t, err)

	assert.Equal(t, "0885909950805", got.Barcode)
	assert.Equal(t, "Apple iPhone 6", got.Name)
	assert.Equal(t, "Smartphone", got.Description)
	assert.Equal(t, "Best Buy: 199.99, eBay: N/A", got.Price)
	assert.Equal(t, "https://images.barcodelookup.com/1.jpg", got.Image)
	assert.Equal(t, "Apple", got.Brand)
	assert.Equal(t, "MG5W2LL/A", got.Model)
	assert.Equal(t, "gold", got.Color)
	assert.Equal(t, "129 g", got.Weight)
	assert.Equal(t, "Apple Inc.", got.Manufacturer)
	assert.Equal(t, Name, got.Source)
	require.Len(t, got.Stores, 2)
	assert.Equal(t, "USD", got.Stores[0].Currency)
}

func TestLookup_Placeholders(t *testing.T) {
	srv := newServer(t, `{"products":[{"product_name":"Fallback name"}]}`, http.StatusOK)

	got, err := New(httpclient.New(), srv.URL, "demo").Lookup(context.Background(), "0885909950805")
	require.NoError(t, err)
	assert.Equal(t, "Fallback name", got.Name)
	assert.Equal(t, product.NoDescription, got.Description)
	assert.Equal(t, product.NoPrice, got.Price)
	assert.Empty(t, got.Image)
}

func TestLookup_EmptyProductsIsNotFound(t *testing.T) {
	srv := newServer(t, `{"products":[]}`, http.StatusOK)

	_, err := New(httpclient.New(), srv.URL, "").Lookup(context.Background(), "0885909950805")
	require.ErrorIs(t, err, provider.ErrNotFound)
}

func TestLookup_404IsNotFound(t *testing.T) {
	srv := newServer(t, `{"message":"not found"}`, http.StatusNotFound)

	_, err := New(httpclient.New(), srv.URL, "").Lookup(context.Background(), "0885909950805")
	require.ErrorIs(t, err, provider.ErrNotFound)
}

func TestLookup_ServerErrorIsNotNotFound(t *testing.T) {
	srv := newServer(t, `oops`, http.StatusForbidden)

	_, err := New(httpclient.New(), srv.URL, "").Lookup(context.Background(), "0885909950805")
	require.Error(t, err)
	assert.NotErrorIs(t, err, provider.ErrNotFound)
}
