// Package product defines the normalized record every provider maps into.
package product

// Placeholders shown when a provider leaves a field empty.
const (
	NoName        = "Nome não disponível"
	NoDescription = "Descrição não disponível"
	NoPrice       = "Preço não disponível"
)

// Product is one lookup result. JSON keys match the persisted history format.
type Product struct {
	Barcode     string `json:"barcode" yaml:"barcode"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       string `json:"price" yaml:"price"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	Brand       string `json:"brand,omitempty" yaml:"brand,omitempty"`
	Source      string `json:"source" yaml:"source"`

	Model        string  `json:"model,omitempty" yaml:"model,omitempty"`
	Color        string  `json:"color,omitempty" yaml:"color,omitempty"`
	Size         string  `json:"size,omitempty" yaml:"size,omitempty"`
	Weight       string  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Category     string  `json:"category,omitempty" yaml:"category,omitempty"`
	Manufacturer string  `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Stores       []Store `json:"stores,omitempty" yaml:"stores,omitempty"`
	Offers       []Offer `json:"offers,omitempty" yaml:"offers,omitempty"`

	GTIN        string `json:"gtin,omitempty" yaml:"gtin,omitempty"`
	NCM         string `json:"ncm,omitempty" yaml:"ncm,omitempty"`
	GPC         string `json:"gpc,omitempty" yaml:"gpc,omitempty"`
	NetWeight   string `json:"net_weight,omitempty" yaml:"net_weight,omitempty"`
	GrossWeight string `json:"gross_weight,omitempty" yaml:"gross_weight,omitempty"`
	Width       string `json:"width,omitempty" yaml:"width,omitempty"`
	Height      string `json:"height,omitempty" yaml:"height,omitempty"`
	Depth       string `json:"depth,omitempty" yaml:"depth,omitempty"`
}

// Store is a retailer listing reported by Barcode Lookup.
type Store struct {
	Name     string `json:"store_name" yaml:"store_name"`
	Price    string `json:"price,omitempty" yaml:"price,omitempty"`
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
	Link     string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Offer is a merchant offer reported by UPC Item DB.
type Offer struct {
	Merchant string `json:"merchant" yaml:"merchant"`
	Price    string `json:"price,omitempty" yaml:"price,omitempty"`
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
	Link     string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Attribute is a labelled optional field.
type Attribute struct {
	Label string
	Value string
}

// Attributes returns the optional fields that carry a value, in display order.
func (p Product) Attributes() []Attribute {
	all := []Attribute{
		{"Marca", p.Brand},
		{"Modelo", p.Model},
		{"Cor", p.Color},
		{"Tamanho", p.Size},
		{"Peso", p.Weight},
		{"Categoria", p.Category},
		{"Fabricante", p.Manufacturer},
		{"GTIN", p.GTIN},
		{"NCM", p.NCM},
		{"GPC", p.GPC},
		{"Peso líquido", p.NetWeight},
		{"Peso bruto", p.GrossWeight},
		{"Largura", p.Width},
		{"Altura", p.Height},
		{"Profundidade", p.Depth},
	}
	out := all[:0]
	for _, a := range all {
		if a.Value != "" {
			out = append(out, a)
		}
	}
	return out
}

// FillPlaceholders replaces empty name, description and price.
func (p *Product) FillPlaceholders() {
	if p.Name == "" {
		p.Name = NoName
	}
	if p.Description == "" {
		p.Description = NoDescription
	}
	if p.Price == "" {
		p.Price = NoPrice
	}
}

// FirstNonEmpty returns the first argument that is not the empty string.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
