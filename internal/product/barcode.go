package product

import (
	"strings"
	"unicode"

	"github.com/go-faster/errors"
)

var (
	ErrEmptyBarcode   = errors.New("barcode is empty")
	ErrInvalidBarcode = errors.New("barcode contains unsupported characters")
)

// Kind is a best-effort symbology guess.
type Kind string

const (
	KindEAN13   Kind = "EAN-13"
	KindEAN8    Kind = "EAN-8"
	KindUPCA    Kind = "UPC-A"
	KindUPCE    Kind = "UPC-E"
	KindGTIN14  Kind = "GTIN-14"
	KindCode128 Kind = "Code 128"
	KindCode39  Kind = "Code 39"
	KindUnknown Kind = "unknown"
)

// Info describes a normalized barcode.
type Info struct {
	Code       string `json:"code" yaml:"code"`
	Kind       Kind   `json:"kind" yaml:"kind"`
	ChecksumOK bool   `json:"checksum_ok" yaml:"checksum_ok"` // GS1 numeric kinds only
}

// Normalize strips whitespace and common separators. It does not validate
// the check digit.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r), r == '-', r == '.':
			continue
		case r < unicode.MaxASCII && (unicode.IsDigit(r) || unicode.IsLetter(r)):
			b.WriteRune(r)
		default:
			return "", errors.Wrapf(ErrInvalidBarcode, "%q", raw)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyBarcode
	}
	return b.String(), nil
}

// Detect guesses the symbology of a normalized code.
func Detect(code string) Info {
	info := Info{Code: code, Kind: KindUnknown}
	if code == "" {
		return info
	}
	if !isDigits(code) {
		if isCode39(code) {
			info.Kind = KindCode39
		} else {
			info.Kind = KindCode128
		}
		return info
	}

	switch len(code) {
	case 8:
		info.ChecksumOK = ValidGS1(code)
		info.Kind = KindEAN8
		if !info.ChecksumOK && ValidGS1(ExpandUPCE(code)) {
			info.Kind = KindUPCE
			info.ChecksumOK = true
		}
	case 12:
		info.Kind = KindUPCA
		info.ChecksumOK = ValidGS1(code)
	case 13:
		info.Kind = KindEAN13
		info.ChecksumOK = ValidGS1(code)
	case 14:
		info.Kind = KindGTIN14
		info.ChecksumOK = ValidGS1(code)
	default:
		info.Kind = KindCode128
	}
	return info
}

// ValidGS1 checks the mod-10 check digit shared by EAN, UPC and GTIN codes.
func ValidGS1(code string) bool {
	if len(code) < 2 || !isDigits(code) {
		return false
	}
	sum := 0
	// weights alternate 3,1 starting from the digit left of the check digit
	for i, w := len(code)-2, 3; i >= 0; i, w = i-1, 4-w {
		sum += int(code[i]-'0') * w
	}
	check := (10 - sum%10) % 10
	return check == int(code[len(code)-1]-'0')
}

// ExpandUPCE converts an 8-digit UPC-E code to its 12-digit UPC-A form.
// It returns "" when code is not UPC-E shaped.
func ExpandUPCE(code string) string {
	if len(code) != 8 || !isDigits(code) || (code[0] != '0' && code[0] != '1') {
		return ""
	}
	ns, d, check := code[0:1], code[1:7], code[7:8]
	var body string
	switch d[5] {
	case '0', '1', '2':
		body = d[0:2] + d[5:6] + "0000" + d[2:5]
	case '3':
		body = d[0:3] + "00000" + d[3:5]
	case '4':
		body = d[0:4] + "00000" + d[4:5]
	default:
		body = d[0:5] + "0000" + d[5:6]
	}
	return ns + body + check
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isCode39(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
