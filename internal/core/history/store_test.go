package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sadopc/consulteja/internal/core/storage"
	"github.com/sadopc/consulteja/internal/product"
)

func newTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	db, err := storage.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(db, limit)
	t.Cleanup(func() { store.Close() })
	return store
}

func testProduct(barcode, name string) product.Product {
	return product.Product{
		Barcode: barcode,
		Name:    name,
		Brand:   "Marca",
		Source:  "Cosmos",
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 5)

	e1, err := store.Add(ctx, testProduct("7891000100103", "Leite Condensado"))
	if err != nil {
		t.Fatal(err)
	}
	if e1.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if e1.SearchedAt.IsZero() {
		t.Error("expected SearchedAt to be set")
	}

	e2, err := store.Add(ctx, testProduct("012345678905", "Cereal"))
	if err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Most recent first
	if entries[0].ID != e2.ID {
		t.Errorf("first entry = %d, want %d", entries[0].ID, e2.ID)
	}
	if entries[0].Product.Name != "Cereal" {
		t.Errorf("product name = %q, want Cereal", entries[0].Product.Name)
	}
	if entries[1].Product.Brand != "Marca" {
		t.Errorf("brand not round-tripped: %q", entries[1].Product.Brand)
	}

	got, err := store.Get(ctx, e1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Product.Barcode != "7891000100103" {
		t.Errorf("barcode = %q", got.Product.Barcode)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	entries, err = store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries after clear, got %d", len(entries))
	}
}

func TestStoreTrimsToLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 5)

	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for _, name := range names {
		if _, err := store.Add(ctx, testProduct("123", name)); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	want := []string{"G", "F", "E", "D", "C"}
	for i, e := range entries {
		if e.Product.Name != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, e.Product.Name, want[i])
		}
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("rows on disk = %d, want 5", count)
	}
}

func TestStoreKeepsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 5)

	for range 2 {
		if _, err := store.Add(ctx, testProduct("7891000100103", "Leite")); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestStoreDefaultLimit(t *testing.T) {
	store := newTestStore(t, 0)
	if store.limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", store.limit, DefaultLimit)
	}
}

func TestStoreGetNotFound(t *testing.T) {
	store := newTestStore(t, 5)
	_, err := store.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExport(t *testing.T) {
	entries := []Entry{{ID: 1, Product: testProduct("123", "Cafe")}}

	var buf bytes.Buffer
	if err := Export(&buf, entries, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var decoded []Entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Product.Name != "Cafe" {
		t.Errorf("unexpected decoded entries: %+v", decoded)
	}

	buf.Reset()
	if err := Export(&buf, entries, FormatYAML); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "name: Cafe") {
		t.Errorf("yaml output missing product name:\n%s", buf.String())
	}

	buf.Reset()
	if err := Export(&buf, nil, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty export = %q, want []", buf.String())
	}

	if err := Export(&buf, entries, "csv"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
