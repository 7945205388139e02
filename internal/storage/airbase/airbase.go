package airbase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// ErrNotFound — запись отсутствует. Нормальный исход, не сбой.
var ErrNotFound = errors.New("airbase: record not found")

type Client struct {
	baseURL string
	apiKey  string
	baseID  string
	httpc   *http.Client
}

func New(baseURL, apiKey, baseID string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		baseID:  baseID,
		httpc: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type Record struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

type Sort struct {
	Field     string
	Direction string // "asc" | "desc"
}

type QueryOptions struct {
	Formula    Formula
	Sort       []Sort
	MaxRecords int
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table))
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal body")
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("airbase: http %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}

func (c *Client) Find(ctx context.Context, table, id string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

func (c *Client) Query(ctx context.Context, table string, opts QueryOptions) ([]Record, error) {
	q := url.Values{}
	if !opts.Formula.IsZero() {
		q.Set("filterByFormula", opts.Formula.String())
	}
	for i, s := range opts.Sort {
		q.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		q.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
	}
	if opts.MaxRecords > 0 {
		q.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
	}

	var all []Record
	offset := ""
	for {
		if offset != "" {
			q.Set("offset", offset)
		}
		var page listResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Records...)
		if page.Offset == "" || (opts.MaxRecords > 0 && len(all) >= opts.MaxRecords) {
			break
		}
		offset = page.Offset
	}
	if opts.MaxRecords > 0 && len(all) > opts.MaxRecords {
		all = all[:opts.MaxRecords]
	}
	return all, nil
}

type recordBody struct {
	Fields map[string]any `json:"fields"`
}

func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPost, c.tableURL(table), recordBody{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table)+"/"+url.PathEscape(id), recordBody{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
