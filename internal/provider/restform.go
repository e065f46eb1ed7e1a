package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RestForm sends through a urlencoded-form gateway. The gateway has no
// interactive-message support, so button sends report ErrButtonsUnsupported
// and the dispatcher falls back to plain text.
type RestForm struct {
	base   string
	apiKey string
	httpc  *http.Client
}

func NewRestForm(base, apiKey string) *RestForm {
	return &RestForm{base: base, apiKey: apiKey, httpc: newHTTPClient()}
}

type restFormResponse struct {
	MessageID string `json:"message_id"`
}

func (r *RestForm) SendText(ctx context.Context, phone, body string) (string, error) {
	form := url.Values{}
	form.Set("phone", phone)
	form.Set("text", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/send", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(r.apiKey, "")

	res, err := r.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("restform send failed: %s (%d)", string(respBody), res.StatusCode)
	}
	var out restFormResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("parse restform response: %w", err)
	}
	return out.MessageID, nil
}

func (r *RestForm) SendWithButtons(ctx context.Context, phone, body string, buttons []Button) (string, error) {
	if len(buttons) > MaxButtons {
		return "", ErrTooManyButtons
	}
	return "", ErrButtonsUnsupported
}
