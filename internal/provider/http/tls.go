package http

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/go-faster/errors"
)

// TLSConfig customizes certificate verification, typically for networks
// behind an intercepting proxy.
type TLSConfig struct {
	CAFile             string // extra PEM roots, added to the system pool
	InsecureSkipVerify bool
}

// IsEmpty reports whether no setting differs from the defaults.
func (c TLSConfig) IsEmpty() bool {
	return c.CAFile == "" && !c.InsecureSkipVerify
}

func (c TLSConfig) build() (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: c.InsecureSkipVerify, //nolint:gosec // opt-in
	}
	if c.CAFile == "" {
		return cfg, nil
	}

	pem, err := os.ReadFile(c.CAFile)
	if err != nil {
		return nil, errors.Wrap(err, "read CA file")
	}
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Errorf("no certificates found in %s", c.CAFile)
	}
	cfg.RootCAs = pool
	return cfg, nil
}
