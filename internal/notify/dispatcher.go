// Package notify renders and sends templated WhatsApp messages to clients
// and restaurant-bound numbers. Dispatch is best-effort by design: the
// status transition is already committed when a send happens, so a failed
// send is logged and reported as an empty message id, never an error.
package notify

import (
	"context"
	"errors"
	"log"

	"github.com/Mouzitoto/restohub-2-sub000/internal/provider"
)

type Dispatcher struct {
	providers map[string]provider.MessageProvider
	tr        *Translator
}

// NewDispatcher takes the full provider set, built once at startup from
// configuration. Per-send selection is a map lookup by the restaurant's
// configured provider key.
func NewDispatcher(providers map[string]provider.MessageProvider, tr *Translator) *Dispatcher {
	return &Dispatcher{providers: providers, tr: tr}
}

// SendText renders the template in lang and sends it through the
// restaurant's provider. Returns the provider message id, or "" on any
// failure.
func (d *Dispatcher) SendText(ctx context.Context, providerKey, lang, phone, tmplKey string, args ...any) string {
	p, ok := d.providers[providerKey]
	if !ok {
		log.Printf("[notify] provider %q not configured, dropping message to %s", providerKey, phone)
		return ""
	}
	id, err := p.SendText(ctx, phone, d.tr.Render(lang, tmplKey, args...))
	if err != nil {
		log.Printf("[notify] send text via %s to %s error: %v", providerKey, phone, err)
		return ""
	}
	return id
}

// SendWithButtons is SendText plus up to provider.MaxButtons reply buttons.
// Providers without button support degrade to a plain text send.
func (d *Dispatcher) SendWithButtons(ctx context.Context, providerKey, lang, phone, tmplKey string, buttons []provider.Button, args ...any) string {
	p, ok := d.providers[providerKey]
	if !ok {
		log.Printf("[notify] provider %q not configured, dropping message to %s", providerKey, phone)
		return ""
	}
	body := d.tr.Render(lang, tmplKey, args...)
	id, err := p.SendWithButtons(ctx, phone, body, buttons)
	if errors.Is(err, provider.ErrButtonsUnsupported) {
		log.Printf("[notify] %s has no button support, sending plain text to %s", providerKey, phone)
		id, err = p.SendText(ctx, phone, body)
	}
	if err != nil {
		log.Printf("[notify] send buttons via %s to %s error: %v", providerKey, phone, err)
		return ""
	}
	return id
}

// Button builds a localized reply button for the ACTION:<id> convention.
func (d *Dispatcher) Button(lang, id, titleKey string) provider.Button {
	return provider.Button{ID: id, Title: d.tr.Render(lang, titleKey)}
}
