package http

import (
	"context"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTLSServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func writeCA(t *testing.T, server *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ca.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClient_UnknownCAFails(t *testing.T) {
	server := newTLSServer(t)

	var body map[string]string
	if err := New().GetJSON(context.Background(), server.URL, nil, &body); err == nil {
		t.Fatal("expected certificate verification error")
	}
}

func TestClient_CAFile(t *testing.T) {
	server := newTLSServer(t)

	client := New()
	if err := client.SetTLS(TLSConfig{CAFile: writeCA(t, server)}); err != nil {
		t.Fatalf("SetTLS: %v", err)
	}
	var body map[string]string
	if err := client.GetJSON(context.Background(), server.URL, nil, &body); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestClient_InsecureSkipVerify(t *testing.T) {
	server := newTLSServer(t)

	client := New()
	if err := client.SetTLS(TLSConfig{InsecureSkipVerify: true}); err != nil {
		t.Fatalf("SetTLS: %v", err)
	}
	var body map[string]string
	if err := client.GetJSON(context.Background(), server.URL, nil, &body); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
}

func TestClient_TLSWithProxyKeepsBoth(t *testing.T) {
	server := newTLSServer(t)

	client := New()
	if err := client.SetTLS(TLSConfig{CAFile: writeCA(t, server)}); err != nil {
		t.Fatal(err)
	}
	if err := client.SetProxy("http://127.0.0.1:3128", "127.0.0.1"); err != nil {
		t.Fatal(err)
	}
	tr, ok := client.httpClient.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("unexpected transport %T", client.httpClient.Transport)
	}
	if tr.TLSClientConfig == nil || tr.TLSClientConfig.RootCAs == nil || tr.Proxy == nil {
		t.Error("transport should carry both TLS roots and proxy")
	}

	// 127.0.0.1 bypasses the (unreachable) proxy.
	var body map[string]string
	if err := client.GetJSON(context.Background(), server.URL, nil, &body); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
}

func TestClient_SetTLSErrors(t *testing.T) {
	client := New()
	if err := client.SetTLS(TLSConfig{CAFile: "/nonexistent/ca.pem"}); err == nil {
		t.Error("expected error for missing CA file")
	}

	bad := filepath.Join(t.TempDir(), "bad.pem")
	os.WriteFile(bad, []byte("not a valid PEM"), 0o600)
	if err := client.SetTLS(TLSConfig{CAFile: bad}); err == nil {
		t.Error("expected error for invalid PEM content")
	}
	if client.httpClient.Transport != nil {
		t.Error("failed SetTLS should leave the transport untouched")
	}
}
