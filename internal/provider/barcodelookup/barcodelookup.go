// Package barcodelookup queries the Barcode Lookup v3 API.
package barcodelookup

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
)

// Name is the source label stored on products.
const Name = "Barcode Lookup"

// DefaultBaseURL is the public API host.
const DefaultBaseURL = "https://api.barcodelookup.com"

type response struct {
	Products []item `json:"products"`
}

type item struct {
	Title        string   `json:"title"`
	ProductName  string   `json:"product_name"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Color        string   `json:"color"`
	Size         string   `json:"size"`
	Weight       string   `json:"weight"`
	Category     string   `json:"category"`
	Manufacturer string   `json:"manufacturer"`
	Stores       []store  `json:"stores"`
}

type store struct {
	Name     string             `json:"store_name"`
	Price    product.FlexString `json:"price"`
	Currency string             `json:"currency"`
	Link     string             `json:"link"`
}

// Provider looks products up in Barcode Lookup.
type Provider struct {
	client  provider.JSONGetter
	baseURL string
	apiKey  string
}

var _ provider.Provider = (*Provider)(nil)

// New creates a provider. An empty baseURL selects the public API and an
// empty apiKey selects the "demo" key.
func New(client provider.JSONGetter, baseURL, apiKey string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" {
		apiKey = "demo"
	}
	return &Provider{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Lookup(ctx context.Context, barcode string) (*product.Product, error) {
	q := url.Values{}
	q.Set("barcode", barcode)
	q.Set("formatted", "y")
	q.Set("key", p.apiKey)

	var resp response
	if err := p.client.GetJSON(ctx, p.baseURL+"/v3/products?"+q.Encode(), nil, &resp); err != nil {
		if provider.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "barcode lookup")
	}
	if len(resp.Products) == 0 {
		return nil, provider.ErrNotFound
	}
	return resp.Products[0].toProduct(barcode), nil
}

func (it item) toProduct(barcode string) *product.Product {
	p := &product.Product{
		Barcode:      barcode,
		Name:         product.FirstNonEmpty(it.Title, it.ProductName),
		Description:  it.Description,
		Brand:        it.Brand,
		Model:        it.Model,
		Color:        it.Color,
		Size:         it.Size,
		Weight:       it.Weight,
		Category:     it.Category,
		Manufacturer: it.Manufacturer,
		Source:       Name,
	}
	if len(it.Images) > 0 {
		p.Image = it.Images[0]
	}
	for _, s := range it.Stores {
		p.Stores = append(p.Stores, product.Store{
			Name:     s.Name,
			Price:    s.Price.String(),
			Currency: s.Currency,
			Link:     s.Link,
		})
	}
	p.Price = product.FormatStorePrices(p.Stores)
	p.FillPlaceholders()
	return p
}
