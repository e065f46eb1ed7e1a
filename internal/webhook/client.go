package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BookingView mirrors the booking representation returned by the api
// service.
type BookingView struct {
	ID           int64  `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	TableID      string `json:"table_id"`
	ClientID     string `json:"client_id"`
	ClientName   string `json:"client_name"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PersonCount  int    `json:"person_count"`
	Status       string `json:"status"`
}

// Client calls the booking api over REST. Both calls are idempotent on the
// api side, so a duplicated webhook delivery that slips past dedup is safe.
type Client struct {
	base  string
	httpc *http.Client
}

func NewClient(base string) *Client {
	return &Client{base: base, httpc: &http.Client{Timeout: 5 * time.Second}}
}

func (c *Client) Confirm(ctx context.Context, id int64, phone, msgID, firstName string) (*BookingView, error) {
	return c.post(ctx, fmt.Sprintf("/v1/bookings/%d/confirm", id), map[string]string{
		"phone":               phone,
		"whatsapp_message_id": msgID,
		"client_first_name":   firstName,
	})
}

func (c *Client) SetStatus(ctx context.Context, id int64, status, managerID string) (*BookingView, error) {
	return c.post(ctx, fmt.Sprintf("/v1/bookings/%d/status", id), map[string]string{
		"status":     status,
		"manager_id": managerID,
	})
}

func (c *Client) post(ctx context.Context, path string, payload any) (*BookingView, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &e)
		if e.Error == "" {
			e.Error = fmt.Sprintf("http %d", res.StatusCode)
		}
		return nil, fmt.Errorf("booking api %s: %s", path, e.Error)
	}
	var v BookingView
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("parse booking api response: %w", err)
	}
	return &v, nil
}
