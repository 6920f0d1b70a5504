// Package upcitemdb queries the UPC Item DB trial lookup endpoint.
package upcitemdb

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
)

const (
	Name           = "UPC Item DB"
	DefaultBaseURL = "https://api.upcitemdb.com"
)

type response struct {
	Code  string `json:"code"`
	Items []item `json:"items"`
}

type item struct {
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	Images              []string           `json:"images"`
	Brand               string             `json:"brand"`
	Model               string             `json:"model"`
	Color               string             `json:"color"`
	Size                string             `json:"size"`
	Weight              string             `json:"weight"`
	Category            string             `json:"category"`
	LowestRecordedPrice product.FlexString `json:"lowest_recorded_price"`
	Offers              []offer            `json:"offers"`
}

type offer struct {
	Merchant string             `json:"merchant"`
	Price    product.FlexString `json:"price"`
	Currency string             `json:"currency"`
	Link     string             `json:"link"`
}

// Provider looks products up in UPC Item DB.
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
	q := url.Values{}
	q.Set("upc", barcode)

	var resp response
	if err := p.client.GetJSON(ctx, p.baseURL+"/prod/trial/lookup?"+q.Encode(), nil, &resp); err != nil {
		if provider.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "upc item db")
	}
	if len(resp.Items) == 0 {
		return nil, provider.ErrNotFound
	}
	return resp.Items[0].toProduct(barcode), nil
}

func (it item) toProduct(barcode string) *product.Product {
	p := &product.Product{
		Barcode:     barcode,
		Name:        it.Title,
		Description: it.Description,
		Brand:       it.Brand,
		Model:       it.Model,
		Color:       it.Color,
		Size:        it.Size,
		Weight:      it.Weight,
		Category:    it.Category,
		Source:      Name,
	}
	if len(it.Images) > 0 {
		p.Image = it.Images[0]
	}
	for _, o := range it.Offers {
		p.Offers = append(p.Offers, product.Offer{
			Merchant: o.Merchant,
			Price:    o.Price.String(),
			Currency: o.Currency,
			Link:     o.Link,
		})
	}

	switch {
	case it.LowestRecordedPrice != "" && it.LowestRecordedPrice != "0":
		p.Price = product.FromPrice(product.FormatPrice(it.LowestRecordedPrice))
	case len(it.Offers) > 0:
		p.Price = product.FromPrice(product.FormatPrice(it.Offers[0].Price))
	}
	p.FillPlaceholders()
	return p
}
