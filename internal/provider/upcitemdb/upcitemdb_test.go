package upcitemdb

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

func serve(t *testing.T, body string) *Provider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prod/trial/lookup", r.URL.Path)
		assert.Equal(t, "4002293401102", r.URL.Query().Get("upc"))
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(httpclient.New(), srv.URL)
}

func TestLookup_LowestRecordedPrice(t *testing.T) {
	p := serve(t, `{
	  "code": "OK",
	  "items": [{
	    "title": "Wusthof Classic Knife",
	    "description": "Chef knife",
	    "images": ["https://img.example/knife.jpg"],
	    "brand": "Wusthof",
	    "model": "4582",
	    "color": "black",
	    "size": "8 in",
	    "weight": "0.5 lb",
	    "category": "Kitchen",
	    "lowest_recorded_price": 89.5,
	    "offers": [{"merchant": "Amazon", "price": 99.95, "currency": "USD"}]
	  }]
	}`)

	got, err := p.Lookup(context.Background(), "4002293401102")
	require.NoError(t, err)

	assert.Equal(t, "Wusthof Classic Knife", got.Name)
	assert.Equal(t, "Chef knife", got.Description)
	assert.Equal(t, "A partir de R$ 89.50", got.Price)
	assert.Equal(t, "https://img.example/knife.jpg", got.Image)
	assert.Equal(t, "Wusthof", got.Brand)
	assert.Equal(t, "4582", got.Model)
	assert.Equal(t, "Kitchen", got.Category)
	assert.Equal(t, Name, got.Source)
	require.Len(t, got.Offers, 1)
	assert.Equal(t, "Amazon", got.Offers[0].Merchant)
	assert.Equal(t, "99.95", got.Offers[0].Price)
}

func TestLookup_FallsBackToFirstOffer(t *testing.T) {
	p := serve(t, `{"items":[{"title":"Knife","offers":[{"merchant":"eBay","price":12}]}]}`)

	got, err := p.Lookup(context.Background(), "4002293401102")
	require.NoError(t, err)
	assert.Equal(t, "A partir de R$ 12.00", got.Price)
}

func TestLookup_OfferWithoutPrice(t *testing.T) {
	p := serve(t, `{"items":[{"title":"Knife","offers":[{"merchant":"eBay"}]}]}`)

	got, err := p.Lookup(context.Background(), "4002293401102")
	require.NoError(t, err)
	assert.Equal(t, "A partir de R$ N/A", got.Price)
}

func TestLookup_NoPrice(t *testing.T) {
	p := serve(t, `{"items":[{"lowest_recorded_price":0}]}`)

	got, err := p.Lookup(context.Background(), "4002293401102")
	require.NoError(t, err)
	assert.Equal(t, product.NoPrice, got.Price)
	assert.Equal(t, product.NoName, got.Name)
}

func TestLookup_NoItems(t *testing.T) {
	p := serve(t, `{"code":"OK","total":0,"items":[]}`)

	_, err := p.Lookup(context.Background(), "4002293401102")
	require.ErrorIs(t, err, provider.ErrNotFound)
}
