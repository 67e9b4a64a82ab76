// Package client is the HTTP adapter of the ledger API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/bitcointx"
	"github.com/etnz/bitcointx/submit"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client creates transactions through the ledger REST API.
type Client struct {
	base  string
	token string
	http  *http.Client
	log   zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client, http.DefaultClient by
// default.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithToken authenticates requests with a bearer token.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// WithLogger sets the logger of requests.
func WithLogger(log zerolog.Logger) Option { return func(c *Client) { c.log = log } }

// New returns a client of the API at baseURL, e.g. "http://localhost:8000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: http.DefaultClient,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ submit.Transport = (*Client)(nil)

// CreateTransaction posts p to /transactions/. Every failure is a
// *bitcointx.TransportError, carrying the server detail and field errors
// when the response has them.
func (c *Client) CreateTransaction(ctx context.Context, p bitcointx.LedgerPayload) (submit.Created, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return submit.Created{}, &bitcointx.TransportError{Err: fmt.Errorf("cannot encode payload: %w", err)}
	}
	addr := c.base + "/transactions/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(body))
	if err != nil {
		return submit.Created{}, &bitcointx.TransportError{Err: err}
	}
	id := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := c.log.With().Str("request_id", id).Str("method", req.Method).Str("path", req.URL.Path).Logger()
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("request failed")
		return submit.Created{}, &bitcointx.TransportError{Err: err}
	}
	defer resp.Body.Close()
	log.Debug().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("request completed")

	doc, err := decode(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return submit.Created{}, failure(req, resp, doc)
	}
	if err != nil {
		// the transaction exists: reporting a failure would invite a resubmit
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("ignoring undecodable response")
		return submit.Created{}, nil
	}

	var created submit.Created
	if v, ok := lookup(doc, "$.id"); ok {
		if n, ok := v.(json.Number); ok {
			created.ID, _ = n.Int64()
		}
	}
	if v, ok := lookup(doc, "$.realized_gain_usd"); ok {
		gain, err := bitcointx.ParseAmount("realized_gain_usd", fmt.Sprint(v))
		if err != nil {
			// display only, never fail a created transaction for it
			log.Warn().Err(err).Msg("ignoring realized gain")
		} else {
			created.RealizedGain = &gain
		}
	}
	return created, nil
}

// decode reads a JSON document keeping numbers exact.
func decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// lookup returns the non null value at path in doc.
func lookup(doc any, path string) (any, bool) {
	if doc == nil {
		return nil, false
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

// failure builds the error of a non 2xx response. A string detail is kept
// verbatim, any other detail (e.g. a list of validation errors) as JSON.
func failure(req *http.Request, resp *http.Response, doc any) *bitcointx.TransportError {
	te := &bitcointx.TransportError{
		Status: resp.StatusCode,
		Err:    fmt.Errorf("cannot http %v %v: %v", req.Method, req.URL.Path, resp.Status),
	}
	if v, ok := lookup(doc, "$.detail"); ok {
		if s, ok := v.(string); ok {
			te.Detail = s
		} else if b, err := json.Marshal(v); err == nil {
			te.Detail = string(b)
		}
	}
	if v, ok := lookup(doc, "$.errors"); ok {
		if m, ok := v.(map[string]any); ok {
			te.Errors = m
		}
	}
	return te
}
