package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// PrintText outputs results in human-readable format.
func PrintText(w io.Writer, results []Result, verbose bool) {
	var found, notFound, failed int

	for _, r := range results {
		switch r.Status {
		case StatusFound:
			found++
			p := r.Product
			kind := ""
			if r.Barcode != nil {
				kind = string(r.Barcode.Kind)
			}
			fmt.Fprintf(w, "✓ %-14s %-9s %s  %s  %s\n",
				p.Barcode, kind, truncate(p.Name, 40), p.Source, formatDuration(r.Duration))
			fmt.Fprintf(w, "  └ %s\n", p.Price)
			if verbose {
				fmt.Fprintf(w, "  %s\n", p.Description)
				for _, a := range p.Attributes() {
					fmt.Fprintf(w, "  %-13s %s\n", a.Label+":", a.Value)
				}
				if p.Image != "" {
					fmt.Fprintf(w, "  %-13s %s\n", "Imagem:", p.Image)
				}
			}
		case StatusNotFound, StatusInvalid:
			notFound++
			fmt.Fprintf(w, "∅ %-14s %s\n", truncate(r.Query, 14), r.Message)
		default:
			failed++
			fmt.Fprintf(w, "✗ %-14s %s\n", truncate(r.Query, 14), r.Message)
			if verbose && r.ErrorString != "" {
				fmt.Fprintf(w, "  └ Error: %s\n", r.ErrorString)
			}
		}

		if verbose {
			for _, a := range r.Attempts {
				fmt.Fprintf(w, "  · %s\n", a)
			}
		}
	}

	if len(results) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Lookups: %d total, %d found, %d not found, %d errors\n",
			len(results), found, notFound, failed)
	}
}

// PrintJSON outputs results as JSON. A single result is written as an object.
func PrintJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	if results == nil {
		results = []Result{}
	}
	return enc.Encode(results)
}

// PrintYAML outputs results as YAML. A single result is written as a mapping.
func PrintYAML(w io.Writer, results []Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	var v any = results
	if len(results) == 1 {
		v = results[0]
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}
