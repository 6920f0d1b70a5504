package product

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexString accepts a JSON string, number, bool or null. Product databases
// disagree on whether prices and weights are numbers or strings.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*f = FlexString(data)
		return nil
	case data[0] == '{' || data[0] == '[':
		// Objects and arrays carry no single display value.
		*f = ""
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	*f = FlexString(d.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Decimal parses the value as a decimal, accepting a comma as the decimal
// separator.
func (f FlexString) Decimal() (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return decimal.Zero, false
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
