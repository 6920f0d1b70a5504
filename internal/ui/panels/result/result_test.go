package result

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

func newResultModelForTest() Model {
	th := theme.Default()
	m := New(th, theme.NewStyles(th))
	m.SetSize(100, 30)
	return m
}

func testProduct() product.Product {
	return product.Product{
		Barcode:     "7891000100103",
		Name:        "Leite Condensado",
		Description: "Lata 395g",
		Price:       "R$ 7,49",
		Brand:       "Moça",
		Source:      "Cosmos",
		NCM:         "04029900",
		Stores: []product.Store{
			{Name: "Mercado", Price: "7.49", Currency: "BRL", Link: "https://example.com/p/1"},
		},
	}
}

func testAttempts() []provider.Attempt {
	return []provider.Attempt{
		{Provider: "Barcode Lookup", Outcome: provider.OutcomeNotFound, Duration: 80 * time.Millisecond},
		{Provider: "UPC Item DB", Outcome: provider.OutcomeError, Error: "status 429", Duration: 40 * time.Millisecond},
		{Provider: "Cosmos", Outcome: provider.OutcomeFound, Duration: 120 * time.Millisecond},
	}
}

func TestResult_EmptyState(t *testing.T) {
	m := newResultModelForTest()
	if !strings.Contains(m.View(), "Enter a barcode") {
		t.Fatal("expected empty state hint")
	}
}

func TestResult_LoadingSpinner(t *testing.T) {
	m := newResultModelForTest()
	if cmd := m.SetLoading("7891000100103"); cmd == nil {
		t.Fatal("expected spinner tick command")
	}
	if !m.Loading() {
		t.Fatal("expected loading")
	}
	if !strings.Contains(m.View(), "Looking up 7891000100103") {
		t.Fatal("expected loading message")
	}

	_, cmd := m.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Fatal("expected spinner to keep ticking while loading")
	}

	m.SetProduct(testProduct(), product.Detect("7891000100103"), nil)
	if m.Loading() {
		t.Fatal("loading should stop once a product is set")
	}
	if _, cmd := m.Update(spinner.TickMsg{}); cmd != nil {
		t.Fatal("spinner should stop after loading")
	}
}

func TestResult_ProductDetails(t *testing.T) {
	m := newResultModelForTest()
	m.SetProduct(testProduct(), product.Detect("7891000100103"), testAttempts())

	view := m.View()
	for _, want := range []string{
		"Leite Condensado", "Cosmos", "EAN-13", "R$ 7,49", "Lata 395g",
		"Marca", "Moça", "NCM", "Stores", "Mercado", "Providers tried", "UPC Item DB",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResult_ErrorShowsAttempts(t *testing.T) {
	m := newResultModelForTest()
	m.SetError("Produto não encontrado.", testAttempts()[:2])

	view := m.View()
	if !strings.Contains(view, "Produto não encontrado.") {
		t.Fatal("expected error text")
	}
	if !strings.Contains(view, "status 429") {
		t.Fatal("expected attempt error")
	}
	if m.Product() != nil {
		t.Fatal("product should be cleared on error")
	}
}

func TestResult_ToggleRaw(t *testing.T) {
	m := newResultModelForTest()
	m.SetProduct(testProduct(), product.Info{}, nil)

	m.ToggleRaw()
	if !m.Raw() {
		t.Fatal("expected raw mode")
	}
	if !strings.Contains(m.View(), "barcode") {
		t.Fatal("expected JSON keys in raw view")
	}

	m.ToggleRaw()
	if m.Raw() {
		t.Fatal("expected details mode")
	}
}

func TestRawJSONRoundTrips(t *testing.T) {
	p := testProduct()
	var got product.Product
	if err := json.Unmarshal(RawJSON(p), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != p.Name || got.Source != p.Source || len(got.Stores) != 1 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestResult_Clear(t *testing.T) {
	m := newResultModelForTest()
	m.SetProduct(testProduct(), product.Info{}, nil)
	m.Clear()
	if m.Product() != nil {
		t.Fatal("expected product cleared")
	}
}
