// Package openfoodfacts queries the Open Food Facts product API.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
)

const (
	Name           = "Open Food Facts"
	DefaultBaseURL = "https://world.openfoodfacts.org"
)

type response struct {
	Status  int         `json:"status"`
	Product *offProduct `json:"product"`
}

type offProduct struct {
	ProductName   string `json:"product_name"`
	ProductNameEN string `json:"product_name_en"`
	ProductNameFR string `json:"product_name_fr"`
	ProductNamePT string `json:"product_name_pt"`

	IngredientsText   string `json:"ingredients_text"`
	IngredientsTextEN string `json:"ingredients_text_en"`
	GenericName       string `json:"generic_name"`
	GenericNameEN     string `json:"generic_name_en"`
	Categories        string `json:"categories"`

	Price    product.FlexString         `json:"price"`
	PriceUSD product.FlexString         `json:"price_usd"`
	Prices   map[string]json.RawMessage `json:"prices"`

	ImageURL           string `json:"image_url"`
	ImageFrontURL      string `json:"image_front_url"`
	ImageFrontSmallURL string `json:"image_front_small_url"`

	Brands   string             `json:"brands"`
	Quantity product.FlexString `json:"quantity"`
}

// Provider looks products up in Open Food Facts.
type Provider struct {
	client  provider.JSONGetter
	baseURL string
}

var _ provider.Provider = (*Provider)(nil)

func New(client provider.JSONGetter, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Lookup(ctx context.Context, barcode string) (*product.Product, error) {
	endpoint := p.baseURL + "/api/v0/product/" + url.PathEscape(barcode) + ".json"

	var resp response
	if err := p.client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		if provider.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "open food facts")
	}
	// status is 0 with "product not found" for unknown codes.
	if resp.Status != 1 || resp.Product == nil {
		return nil, provider.ErrNotFound
	}
	return resp.Product.toProduct(barcode), nil
}

func (op offProduct) toProduct(barcode string) *product.Product {
	p := &product.Product{
		Barcode: barcode,
		Name:    product.FirstNonEmpty(op.ProductName, op.ProductNameEN, op.ProductNameFR, op.ProductNamePT),
		Description: product.FirstNonEmpty(
			op.IngredientsText,
			op.IngredientsTextEN,
			op.GenericName,
			op.GenericNameEN,
			op.Categories,
		),
		Price:  product.FirstNonEmpty(op.Price.String(), op.PriceUSD.String(), op.firstListedPrice()),
		Image:  product.FirstNonEmpty(op.ImageURL, op.ImageFrontURL, op.ImageFrontSmallURL),
		Brand:  op.Brands,
		Size:   op.Quantity.String(),
		Source: Name,
	}
	p.FillPlaceholders()
	return p
}

// firstListedPrice returns the price of the first entry in the prices map,
// taking keys in sorted order so the result is stable.
func (op offProduct) firstListedPrice() string {
	if len(op.Prices) == 0 {
		return ""
	}
	keys := make([]string, 0, len(op.Prices))
	for k := range op.Prices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var entry struct {
		Price product.FlexString `json:"price"`
	}
	if err := json.Unmarshal(op.Prices[keys[0]], &entry); err != nil {
		return ""
	}
	return entry.Price.String()
}
