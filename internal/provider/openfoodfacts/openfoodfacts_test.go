package openfoodfacts

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
		assert.Equal(t, "/api/v0/product/7891000315507.json", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(httpclient.New(), srv.URL)
}

func TestLookup_PrimaryFields(t *testing.T) {
	p := serve(t, `{
	  "status": 1,
	  "product": {
	    "product_name": "Nescau",
	    "ingredients_text": "Açúcar, cacau em pó",
	    "price": "8,99",
	    "image_url": "https://images.openfoodfacts.org/nescau.jpg",
	    "image_front_url": "https://images.openfoodfacts.org/front.jpg",
	    "brands": "Nestlé",
	    "quantity": "400 g"
	  }
	}`)

	got, err := p.Lookup(context.Background(), "7891000315507")
	require.NoError(t, err)

	assert.Equal(t, "7891000315507", got.Barcode)
	assert.Equal(t, "Nescau", got.Name)
	assert.Equal(t, "Açúcar, cacau em pó", got.Description)
	assert.Equal(t, "8,99", got.Price)
	assert.Equal(t, "https://images.openfoodfacts.org/nescau.jpg", got.Image)
	assert.Equal(t, "Nestlé", got.Brand)
	assert.Equal(t, "400 g", got.Size)
	assert.Equal(t, Name, got.Source)
}

func TestLookup_Fallbacks(t *testing.T) {
	p := serve(t, `{
	  "status": 1,
	  "product": {
	    "product_name": "",
	    "product_name_fr": "Chocolat en poudre",
	    "product_name_pt": "Achocolatado",
	    "generic_name_en": "Cocoa powder",
	    "categories": "Beverages",
	    "prices": {"usd": {"price": 2.5}, "brl": {"price": 8.99}},
	    "image_front_small_url": "https://images.openfoodfacts.org/small.jpg"
	  }
	}`)

	got, err := p.Lookup(context.Background(), "7891000315507")
	require.NoError(t, err)

	assert.Equal(t, "Chocolat en poudre", got.Name)
	assert.Equal(t, "Cocoa powder", got.Description)
	assert.Equal(t, "8.99", got.Price)
	assert.Equal(t, "https://images.openfoodfacts.org/small.jpg", got.Image)
}

func TestLookup_CategoriesAndPlaceholders(t *testing.T) {
	p := serve(t, `{"status":1,"product":{"categories":"Snacks"}}`)

	got, err := p.Lookup(context.Background(), "7891000315507")
	require.NoError(t, err)
	assert.Equal(t, product.NoName, got.Name)
	assert.Equal(t, "Snacks", got.Description)
	assert.Equal(t, product.NoPrice, got.Price)
	assert.Empty(t, got.Image)
}

func TestLookup_StatusZeroIsNotFound(t *testing.T) {
	p := serve(t, `{"code":"7891000315507","status":0,"status_verbose":"product not found"}`)

	_, err := p.Lookup(context.Background(), "7891000315507")
	require.ErrorIs(t, err, provider.ErrNotFound)
}
