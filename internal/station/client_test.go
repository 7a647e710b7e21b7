package station

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientMissingTokenShortCircuits(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	if _, err := client.FetchBarcodes(context.Background()); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("err = %v, want ErrMissingToken", err)
	}
	if called {
		t.Fatalf("request must not reach the network without a token")
	}
}

func TestClientNormalizesBarcodeListKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"allBarCode": []map[string]any{{"imeiNo": "123456789012345"}},
		})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "token")
	units, err := client.FetchBarcodes(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(units) != 1 || units[0].IMEINo != "123456789012345" {
		t.Fatalf("units = %+v", units)
	}
}

func TestClientSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Some fields are not true for IMEI 123456789012345: gnd17",
		})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "token")
	err := client.VerifySoldering(context.Background(), "123456789012345")
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("err = %#v", err)
	}
	if !IsGateViolation(err) {
		t.Fatalf("gate violation not classified: %v", err)
	}
}

func TestClientRejectsSuccessFalseOn200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "nope"})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "token")
	if err := client.VerifyIMEIAgain(context.Background(), "123456789012345"); err == nil || err.Error() != "nope" {
		t.Fatalf("err = %v", err)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "secret-token")
	if err := client.AddBarcode(context.Background(), "123456789012345", "b", "l"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("auth header = %q", gotAuth)
	}
}
