// Package cosmos queries the Bluesoft Cosmos GTIN database, which covers
// Brazilian products the other databases tend to miss.
package cosmos

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
)

const (
	Name             = "Cosmos"
	DefaultBaseURL   = "https://cosmos.bluesoft.com.br"
	DefaultUserAgent = "ConsulteJa-App/1.0"
)

type response struct {
	Description string             `json:"description"`
	GTIN        product.FlexString `json:"gtin"`
	Thumbnail   string             `json:"thumbnail"`
	Brand       brand              `json:"brand"`
	NCM         *classification    `json:"ncm"`
	GPC         *classification    `json:"gpc"`
	NetWeight   product.FlexString `json:"net_weight"`
	GrossWeight product.FlexString `json:"gross_weight"`
	Width       product.FlexString `json:"width"`
	Height      product.FlexString `json:"height"`
	Depth       product.FlexString `json:"depth"`
}

type classification struct {
	Code        product.FlexString `json:"code"`
	Description string             `json:"description"`
}

// brand is either a plain string or an object with a name.
type brand string

func (b *brand) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = brand(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		*b = ""
		return nil
	}
	*b = brand(obj.Name)
	return nil
}

// Provider looks products up in Cosmos.
type Provider struct {
	client    provider.JSONGetter
	baseURL   string
	token     string
	userAgent string
}

var _ provider.Provider = (*Provider)(nil)

// New creates a provider. token is optional; without it Cosmos serves a
// rate-limited anonymous quota.
func New(client provider.JSONGetter, baseURL, token, userAgent string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Provider{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		userAgent: userAgent,
	}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Lookup(ctx context.Context, barcode string) (*product.Product, error) {
	endpoint := p.baseURL + "/api/gtins/" + url.PathEscape(barcode) + ".json"
	headers := map[string]string{"User-Agent": p.userAgent}
	if p.token != "" {
		headers["X-Cosmos-Token"] = p.token
	}

	var resp response
	if err := p.client.GetJSON(ctx, endpoint, headers, &resp); err != nil {
		if provider.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "cosmos")
	}
	if resp.Description == "" {
		return nil, provider.ErrNotFound
	}
	return resp.toProduct(barcode), nil
}

func (r response) toProduct(barcode string) *product.Product {
	p := &product.Product{
		Barcode:     barcode,
		Name:        r.Description,
		Price:       product.NoPrice,
		Image:       r.Thumbnail,
		Brand:       string(r.Brand),
		GTIN:        r.GTIN.String(),
		NetWeight:   r.NetWeight.String(),
		GrossWeight: r.GrossWeight.String(),
		Width:       r.Width.String(),
		Height:      r.Height.String(),
		Depth:       r.Depth.String(),
		Source:      Name,
	}
	if r.NCM != nil {
		p.NCM = r.NCM.Code.String()
		p.Description = r.NCM.Description
	}
	if r.GPC != nil {
		p.GPC = r.GPC.Description
		p.Description = product.FirstNonEmpty(p.Description, r.GPC.Description)
	}
	p.FillPlaceholders()
	return p
}
