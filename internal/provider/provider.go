// Package provider abstracts the outbound WhatsApp gateways. One
// implementation per backend, constructed once at startup; the dispatcher
// never branches on provider names per call.
package provider

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Button is a reply button; ID follows the ACTION:<id> convention the
// inbound parser consumes.
type Button struct {
	ID    string
	Title string
}

// MaxButtons is the channel-wide limit on reply buttons per message.
const MaxButtons = 3

var (
	ErrTooManyButtons     = errors.New("too many buttons")
	ErrButtonsUnsupported = errors.New("buttons unsupported by provider")
)

type MessageProvider interface {
	// SendText delivers a plain message and returns the provider message id.
	SendText(ctx context.Context, phone, body string) (string, error)
	// SendWithButtons delivers a message with up to MaxButtons reply buttons.
	SendWithButtons(ctx context.Context, phone, body string, buttons []Button) (string, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}
