package track17

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BearBump/CaseDesk/internal/models"
	"github.com/pkg/errors"
)

const defaultBaseURL = "https://api.17track.net/track/v2"

var (
	ErrAuth        = errors.New("track17: invalid api key")
	ErrRateLimited = errors.New("track17: rate limit exceeded")
	ErrNotFound    = errors.New("track17: tracking info not found")
)

// RejectedError — провайдер не принял номер (обычно "не зарегистрирован").
// Не фатально: вызывающая сторона решает, регистрировать ли и повторять.
type RejectedError struct {
	Number string
	Code   int
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("track17: number %s rejected (%d): %s", e.Number, e.Code, e.Reason)
}

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiEnvelope struct {
	Code int `json:"code"`
	Data struct {
		Accepted []acceptedEntry `json:"accepted"`
		Rejected []rejectedEntry `json:"rejected"`
	} `json:"data"`
}

type rejectedEntry struct {
	Number string `json:"number"`
	Error  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, path string, body any, out *apiEnvelope) error {
	b, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("17token", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode/100 != 2:
		return fmt.Errorf("track17: http %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	if out.Code != 0 {
		return fmt.Errorf("track17: api code %d", out.Code)
	}
	return nil
}

type Rejection struct {
	Number string
	Reason string
}

// Register регистрирует номера у провайдера. Для новых номеров обязательна
// перед запросом трекинга.
func (c *Client) Register(ctx context.Context, numbers []string) (accepted []string, rejected []Rejection, err error) {
	type item struct {
		Number        string `json:"number"`
		AutoDetection bool   `json:"auto_detection"`
	}
	body := make([]item, 0, len(numbers))
	for _, n := range numbers {
		body = append(body, item{Number: n, AutoDetection: true})
	}

	var env apiEnvelope
	if err := c.post(ctx, "/register", body, &env); err != nil {
		return nil, nil, err
	}

	for _, a := range env.Data.Accepted {
		accepted = append(accepted, a.Number)
	}
	for _, r := range env.Data.Rejected {
		rejected = append(rejected, Rejection{Number: r.Number, Reason: r.Error.Message})
	}
	return accepted, rejected, nil
}

// GetTrackInfo запрашивает один номер. API провайдера батчевое, здесь
// обрабатывается ровно одна принятая либо одна отклонённая запись.
func (c *Client) GetTrackInfo(ctx context.Context, trackingNumber string) (*models.TrackingSnapshot, error) {
	type item struct {
		Number string `json:"number"`
	}

	var env apiEnvelope
	if err := c.post(ctx, "/gettrackinfo", []item{{Number: trackingNumber}}, &env); err != nil {
		return nil, err
	}

	for _, entry := range env.Data.Accepted {
		if entry.Number != trackingNumber && len(env.Data.Accepted) > 1 {
			continue
		}
		snap := normalize(&entry)
		return &snap, nil
	}
	for _, r := range env.Data.Rejected {
		return nil, &RejectedError{Number: r.Number, Code: r.Error.Code, Reason: r.Error.Message}
	}
	return nil, ErrNotFound
}
