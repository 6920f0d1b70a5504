package search

import (
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/config"
	"github.com/sadopc/consulteja/internal/provider"
	"github.com/sadopc/consulteja/internal/provider/barcodelookup"
	"github.com/sadopc/consulteja/internal/provider/cosmos"
	httpclient "github.com/sadopc/consulteja/internal/provider/http"
	"github.com/sadopc/consulteja/internal/provider/openfoodfacts"
	"github.com/sadopc/consulteja/internal/provider/upcitemdb"
)

// Provider identifiers accepted in providers.order.
const (
	IDBarcodeLookup = "barcodelookup"
	IDUPCItemDB     = "upcitemdb"
	IDOpenFoodFacts = "openfoodfacts"
	IDCosmos        = "cosmos"
)

// DefaultOrder is the fallback order used when none is configured.
var DefaultOrder = []string{IDBarcodeLookup, IDUPCItemDB, IDOpenFoodFacts, IDCosmos}

// NewClient builds the outbound HTTP client from configuration.
func NewClient(cfg config.Config) (*httpclient.Client, error) {
	c := httpclient.New()
	c.SetTimeout(cfg.Providers.Timeout)
	if cfg.HTTP.UserAgent != "" {
		c.SetUserAgent(cfg.HTTP.UserAgent)
	}
	if cfg.HTTP.Proxy != "" {
		if err := c.SetProxy(cfg.HTTP.Proxy, cfg.HTTP.NoProxy); err != nil {
			return nil, errors.Wrap(err, "configure proxy")
		}
	}
	tlsCfg := httpclient.TLSConfig{CAFile: cfg.HTTP.CAFile, InsecureSkipVerify: cfg.HTTP.Insecure}
	if err := c.SetTLS(tlsCfg); err != nil {
		return nil, errors.Wrap(err, "configure TLS")
	}
	c.Instrument()
	return c, nil
}

// BuildProviders instantiates providers in the configured order.
func BuildProviders(cfg config.ProvidersConfig, client provider.JSONGetter) ([]provider.Provider, error) {
	order := cfg.Order
	if len(order) == 0 {
		order = DefaultOrder
	}

	seen := make(map[string]bool, len(order))
	providers := make([]provider.Provider, 0, len(order))
	for _, raw := range order {
		id := strings.ToLower(strings.TrimSpace(raw))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		switch id {
		case IDBarcodeLookup:
			providers = append(providers, barcodelookup.New(client, cfg.BarcodeLookup.BaseURL, cfg.BarcodeLookup.APIKey))
		case IDUPCItemDB:
			providers = append(providers, upcitemdb.New(client, cfg.UPCItemDB.BaseURL))
		case IDOpenFoodFacts:
			providers = append(providers, openfoodfacts.New(client, cfg.OpenFoodFacts.BaseURL))
		case IDCosmos:
			providers = append(providers, cosmos.New(client, cfg.Cosmos.BaseURL, cfg.Cosmos.Token, cfg.Cosmos.UserAgent))
		default:
			return nil, errors.Errorf("unknown provider %q", raw)
		}
	}
	return providers, nil
}

// NewChain wires the HTTP client, providers and chain from configuration.
func NewChain(cfg config.Config, lg *zap.Logger) (*provider.Chain, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	providers, err := BuildProviders(cfg.Providers, client)
	if err != nil {
		return nil, err
	}
	return provider.NewChain(providers,
		provider.WithTimeout(cfg.Providers.Timeout),
		provider.WithLogger(lg.Named("chain")),
	), nil
}
