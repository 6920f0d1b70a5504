package history

import (
	"encoding/json"
	"io"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes entries to w in the given format.
func Export(w io.Writer, entries []Entry, format string) error {
	if entries == nil {
		entries = []Entry{}
	}
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return enc.Close()
	default:
		return errors.Errorf("unsupported export format %q", format)
	}
}
