package result

import (
	"bytes"
	"encoding/json"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/tidwall/pretty"

	"github.com/sadopc/consulteja/internal/product"
)

// chromaStyle picks a highlight palette that reads on the theme background.
func chromaStyle(dark bool) *chroma.Style {
	name := "github"
	if dark {
		name = "monokai"
	}
	if s := chromastyles.Get(name); s != nil {
		return s
	}
	return chromastyles.Fallback
}

// RawJSON returns the product as indented JSON, the same shape stored in
// history.
func RawJSON(p product.Product) []byte {
	b, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	return pretty.PrettyOptions(b, &pretty.Options{Width: 80, Indent: "  "})
}

// highlightJSON applies terminal syntax highlighting to src.
func highlightJSON(src []byte, dark bool) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return string(src)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, chromaStyle(dark), iterator); err != nil {
		return string(src)
	}
	return buf.String()
}
