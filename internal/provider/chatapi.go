package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ChatAPI sends through a simple chat-style JSON gateway addressing peers
// by chat id (<phone>@c.us).
type ChatAPI struct {
	base  string
	token string
	httpc *http.Client
}

func NewChatAPI(base, token string) *ChatAPI {
	return &ChatAPI{base: base, token: token, httpc: newHTTPClient()}
}

type chatAPIResponse struct {
	Sent bool   `json:"sent"`
	ID   string `json:"id"`
}

func (c *ChatAPI) SendText(ctx context.Context, phone, body string) (string, error) {
	return c.post(ctx, "/sendMessage", map[string]any{
		"chatId": phone + "@c.us",
		"body":   body,
	})
}

func (c *ChatAPI) SendWithButtons(ctx context.Context, phone, body string, buttons []Button) (string, error) {
	if len(buttons) > MaxButtons {
		return "", ErrTooManyButtons
	}
	btns := make([]map[string]string, 0, len(buttons))
	for _, b := range buttons {
		btns = append(btns, map[string]string{"buttonId": b.ID, "buttonText": b.Title})
	}
	return c.post(ctx, "/sendButtons", map[string]any{
		"chatId":  phone + "@c.us",
		"body":    body,
		"buttons": btns,
	})
}

func (c *ChatAPI) post(ctx context.Context, path string, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s%s?token=%s", c.base, path, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("chatapi send failed: %s (%d)", string(respBody), res.StatusCode)
	}
	var out chatAPIResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("parse chatapi response: %w", err)
	}
	return out.ID, nil
}
