package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MetaGraph sends through the Meta Graph API interactive-message endpoint.
type MetaGraph struct {
	base    string // e.g. https://graph.facebook.com/v18.0
	phoneID string
	token   string
	httpc   *http.Client
}

func NewMetaGraph(base, phoneID, token string) *MetaGraph {
	return &MetaGraph{base: base, phoneID: phoneID, token: token, httpc: newHTTPClient()}
}

type metaSendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

func (m *MetaGraph) SendText(ctx context.Context, phone, body string) (string, error) {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                phone,
		"type":              "text",
		"text":              map[string]any{"body": body},
	}
	return m.post(ctx, payload)
}

func (m *MetaGraph) SendWithButtons(ctx context.Context, phone, body string, buttons []Button) (string, error) {
	if len(buttons) > MaxButtons {
		return "", ErrTooManyButtons
	}
	btns := make([]map[string]any, 0, len(buttons))
	for _, b := range buttons {
		btns = append(btns, map[string]any{
			"type":  "reply",
			"reply": map[string]string{"id": b.ID, "title": b.Title},
		})
	}
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                phone,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]string{"text": body},
			"action": map[string]any{"buttons": btns},
		},
	}
	return m.post(ctx, payload)
}

func (m *MetaGraph) post(ctx context.Context, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/%s/messages", m.base, m.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.token)

	res, err := m.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("meta send failed: %s (%d)", string(respBody), res.StatusCode)
	}
	var out metaSendResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("parse meta response: %w", err)
	}
	if len(out.Messages) == 0 {
		return "", nil
	}
	return out.Messages[0].ID, nil
}
