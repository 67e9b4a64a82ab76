package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etnz/bitcointx"
	"github.com/google/uuid"
)

func testPayload() bitcointx.LedgerPayload {
	return bitcointx.LedgerPayload{
		Posting:      bitcointx.Posting{From: bitcointx.ExchangeBTC, To: bitcointx.ExchangeUSD},
		Type:         bitcointx.TypeSell,
		Amount:       bitcointx.A(0.03),
		Timestamp:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		FeeCurrency:  bitcointx.USD,
		ProceedsUSD:  new(bitcointx.Amount),
		CostBasisUSD: bitcointx.A(0),
	}
}

func TestCreateTransaction(t *testing.T) {
	var got map[string]any
	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/transactions/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		header = r.Header
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("invalid request body %s: %v", body, err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"id": 42, "type": "Sell", "realized_gain_usd": "1234.56"}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", WithToken("secret"), WithHTTPClient(srv.Client()))
	created, err := c.CreateTransaction(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("CreateTransaction() failed: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("ID = %d, want 42", created.ID)
	}
	if created.RealizedGain == nil || created.RealizedGain.String() != "1234.56" {
		t.Errorf("RealizedGain = %v, want 1234.56", created.RealizedGain)
	}
	if got["type"] != "Sell" || got["from_account_id"] != float64(4) || got["timestamp"] != "2025-03-01T12:00:00Z" {
		t.Errorf("unexpected request body %v", got)
	}
	if header.Get("Authorization") != "Bearer secret" {
		t.Errorf("Authorization = %q", header.Get("Authorization"))
	}
	if header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", header.Get("Content-Type"))
	}
	if _, err := uuid.Parse(header.Get("X-Request-ID")); err != nil {
		t.Errorf("X-Request-ID = %q is not a uuid", header.Get("X-Request-ID"))
	}
}

func TestCreateTransactionGain(t *testing.T) {
	tests := []struct {
		body string
		want string // empty for no gain
	}{
		{`{"id": 1}`, ""},
		{`{"id": 1, "realized_gain_usd": null}`, ""},
		{`{"id": 1, "realized_gain_usd": -12.5}`, "-12.5"},
		{`{"id": 1, "realized_gain_usd": "abc"}`, ""},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, tt.body)
		}))
		created, err := New(srv.URL).CreateTransaction(context.Background(), testPayload())
		srv.Close()
		if err != nil {
			t.Errorf("%s: CreateTransaction() failed: %v", tt.body, err)
			continue
		}
		got := ""
		if created.RealizedGain != nil {
			got = created.RealizedGain.String()
		}
		if got != tt.want {
			t.Errorf("%s: gain = %q, want %q", tt.body, got, tt.want)
		}
	}
}

// A created transaction is a success even when the body cannot be read, so
// the caller never resubmits it.
func TestCreateTransactionUndecodableBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"not json", "Created"},
		{"truncated", `{"id": 4`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			created, err := New(srv.URL).CreateTransaction(context.Background(), testPayload())
			if err != nil {
				t.Fatalf("CreateTransaction() failed: %v", err)
			}
			if created.ID != 0 || created.RealizedGain != nil {
				t.Errorf("CreateTransaction() = %+v, want an empty result", created)
			}
		})
	}
}

func TestCreateTransactionFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
		errors bool
	}{
		{"detail", http.StatusBadRequest, `{"detail": "Insufficient BTC to withdraw"}`, "Insufficient BTC to withdraw", false},
		{"field errors", http.StatusUnprocessableEntity, `{"detail": "invalid", "errors": {"amount": "must be positive"}}`, "invalid", true},
		{"detail list", http.StatusUnprocessableEntity, `{"detail": [{"loc": ["body", "amount"], "msg": "field required"}]}`, `[{"loc":["body","amount"],"msg":"field required"}]`, false},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).CreateTransaction(context.Background(), testPayload())
			var te *bitcointx.TransportError
			if !errors.As(err, &te) {
				t.Fatalf("CreateTransaction() error = %v, want a transport error", err)
			}
			if te.Status != tt.status || te.Detail != tt.detail {
				t.Errorf("got status %d detail %q, want %d %q", te.Status, te.Detail, tt.status, tt.detail)
			}
			if (te.Errors != nil) != tt.errors {
				t.Errorf("Errors = %v", te.Errors)
			}
			if tt.detail != "" && err.Error() != tt.detail {
				t.Errorf("Error() = %q, want the detail verbatim", err.Error())
			}
		})
	}
}

func TestCreateTransactionUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := New(addr).CreateTransaction(context.Background(), testPayload())
	var te *bitcointx.TransportError
	if !errors.As(err, &te) || te.Status != 0 || !errors.Is(err, bitcointx.ErrTransport) {
		t.Errorf("CreateTransaction() error = %v, want a transport error without status", err)
	}
}
