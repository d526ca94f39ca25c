// Package postgrest implements store.Store against a Supabase REST endpoint.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/store"
)

const defaultTimeout = 10 * time.Second

// TokenSource returns the bearer token for the current request. An empty
// result falls back to the anon key.
type TokenSource func(ctx context.Context) string

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	token   TokenSource
}

type Option func(*Client)

// WithHTTPClient replaces the default client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource makes requests run as the signed-in user so row level
// security applies.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// New validates the settings before anything else, so an unconfigured
// deployment fails here and never reaches the network.
func New(cfg config.SupabaseConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/") + "/rest/v1",
		apiKey:  cfg.AnonKey,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ store.Store = (*Client)(nil)

func (c *Client) Select(ctx context.Context, table string, q store.Query, dest any) error {
	if err := store.CheckQuery(table, q); err != nil {
		return err
	}
	v := url.Values{}
	v.Set("select", selectClause(q))
	addFilters(v, q.Filters)
	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			parts = append(parts, o.Column+"."+dir)
		}
		v.Set("order", strings.Join(parts, ","))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}

	resp, err := c.do(ctx, http.MethodGet, table, v, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("postgrest: decode %s: %w", table, err)
	}
	return nil
}

func (c *Client) Count(ctx context.Context, table string, filters ...store.Filter) (int64, error) {
	if err := store.CheckWrite(table, filters, false); err != nil {
		return 0, err
	}
	v := url.Values{}
	v.Set("select", "id")
	addFilters(v, filters)

	resp, err := c.do(ctx, http.MethodHead, table, v, nil, map[string]string{"Prefer": "count=exact"})
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return parseContentRange(resp.Header.Get("Content-Range"))
}

func (c *Client) Insert(ctx context.Context, table string, row any) error {
	if err := store.CheckWrite(table, nil, false); err != nil {
		return err
	}
	return c.write(ctx, http.MethodPost, table, nil, row)
}

func (c *Client) Update(ctx context.Context, table string, row any, filters ...store.Filter) error {
	if err := store.CheckWrite(table, filters, true); err != nil {
		return err
	}
	return c.write(ctx, http.MethodPatch, table, filters, row)
}

func (c *Client) Delete(ctx context.Context, table string, filters ...store.Filter) error {
	if err := store.CheckWrite(table, filters, true); err != nil {
		return err
	}
	return c.write(ctx, http.MethodDelete, table, filters, nil)
}

func (c *Client) write(ctx context.Context, method, table string, filters []store.Filter, row any) error {
	v := url.Values{}
	addFilters(v, filters)
	var body io.Reader
	if row != nil {
		b, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("postgrest: encode %s: %w", table, err)
		}
		body = bytes.NewReader(b)
	}
	resp, err := c.do(ctx, method, table, v, body, map[string]string{"Prefer": "return=minimal"})
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// do sends the request and turns non-2xx answers into *store.Error. The
// caller owns the body of a successful response.
func (c *Client) do(ctx context.Context, method, table string, v url.Values, body io.Reader, headers map[string]string) (*http.Response, error) {
	u := c.baseURL + "/" + table
	if enc := v.Encode(); enc != "" {
		u += "?" + enc
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("postgrest: build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer(ctx))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("postgrest %s %s: %w", method, table, err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, decodeError(resp.StatusCode, raw)
	}
	return resp, nil
}

func (c *Client) bearer(ctx context.Context) string {
	if c.token != nil {
		if t := c.token(ctx); t != "" {
			return t
		}
	}
	return c.apiKey
}

func selectClause(q store.Query) string {
	cols := q.Columns
	if len(cols) == 0 {
		cols = []string{"*"}
	}
	parts := append([]string(nil), cols...)
	for _, e := range q.Expand {
		inner := "*"
		if len(e.Columns) > 0 {
			inner = strings.Join(e.Columns, ",")
		}
		parts = append(parts, e.Table+"("+inner+")")
	}
	return strings.Join(parts, ",")
}

func addFilters(v url.Values, filters []store.Filter) {
	for _, f := range filters {
		v.Add(f.Column, "eq."+f.Value)
	}
}

// parseContentRange reads the total from "0-24/573" or "*/573".
func parseContentRange(h string) (int64, error) {
	i := strings.LastIndexByte(h, '/')
	if i < 0 || i == len(h)-1 {
		return 0, fmt.Errorf("postgrest: missing count in Content-Range %q", h)
	}
	total := h[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("postgrest: count not returned (Content-Range %q)", h)
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("postgrest: bad Content-Range %q: %w", h, err)
	}
	return n, nil
}

func decodeError(status int, raw []byte) error {
	e := &store.Error{Status: status}
	if gjson.ValidBytes(raw) {
		res := gjson.GetManyBytes(raw, "message", "msg", "error_description", "error", "code")
		for _, r := range res[:4] {
			if r.Type == gjson.String && r.String() != "" {
				e.Message = r.String()
				break
			}
		}
		e.Code = res[4].String()
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
