// Package runner performs lookups without the TUI, for scripts and pipes.
package runner

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
	"github.com/sadopc/consulteja/internal/search"
)

// Looker runs a single lookup. *search.Service implements it.
type Looker interface {
	Lookup(ctx context.Context, raw string) (*search.Result, []provider.Attempt, error)
}

// Status classifies a lookup outcome.
type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusInvalid  Status = "invalid"
	StatusError    Status = "error"
)

// Result holds the outcome of one query.
type Result struct {
	Query       string             `json:"query" yaml:"query"`
	Status      Status             `json:"status" yaml:"status"`
	Product     *product.Product   `json:"product,omitempty" yaml:"product,omitempty"`
	Barcode     *product.Info      `json:"barcode,omitempty" yaml:"barcode,omitempty"`
	Attempts    []provider.Attempt `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	Duration    time.Duration      `json:"duration" yaml:"duration"`
	Message     string             `json:"message,omitempty" yaml:"message,omitempty"`
	Error       error              `json:"-" yaml:"-"`
	ErrorString string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// Runner executes queries one after another so history keeps input order.
type Runner struct {
	svc Looker
}

// New creates a runner over svc.
func New(svc Looker) *Runner {
	return &Runner{svc: svc}
}

// Run looks up every query. It stops early when ctx is done; queries not
// attempted are left out of the result.
func (r *Runner) Run(ctx context.Context, queries []string) []Result {
	results := make([]Result, 0, len(queries))
	for _, q := range queries {
		if ctx.Err() != nil {
			break
		}
		results = append(results, r.lookup(ctx, q))
	}
	return results
}

func (r *Runner) lookup(ctx context.Context, query string) Result {
	start := time.Now()
	res, attempts, err := r.svc.Lookup(ctx, query)
	out := Result{
		Query:    query,
		Attempts: attempts,
		Duration: time.Since(start),
	}
	if err != nil {
		out.Status = classify(err)
		out.Error = err
		out.ErrorString = err.Error()
		out.Message = search.Message(err)
		return out
	}
	out.Status = StatusFound
	out.Product = &res.Product
	info := res.Barcode
	out.Barcode = &info
	return out
}

func classify(err error) Status {
	switch {
	case errors.Is(err, product.ErrEmptyBarcode), errors.Is(err, product.ErrInvalidBarcode):
		return StatusInvalid
	case errors.Is(err, provider.ErrNotFound):
		return StatusNotFound
	default:
		return StatusError
	}
}

// ReadQueries reads one barcode per line. Blank lines and lines starting
// with '#' are skipped.
func ReadQueries(rd io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read queries")
	}
	return out, nil
}

// ExitCode returns the process exit code for results.
// 0 = all found, 1 = some not found or invalid, 2 = lookup errors.
func ExitCode(results []Result) int {
	code := 0
	for _, r := range results {
		switch r.Status {
		case StatusError:
			return 2
		case StatusNotFound, StatusInvalid:
			code = 1
		}
	}
	return code
}
