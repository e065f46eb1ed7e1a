package notify

import "fmt"

// Translator renders message bodies from a template key plus positional
// arguments, keyed by the restaurant's configured manager language.
// Token substitution only: no markup, no pluralization.
type Translator struct {
	tables map[string]map[string]string
}

func NewTranslator() *Translator {
	return &Translator{tables: map[string]map[string]string{
		"ru": {
			"booking.confirm_request": "Новая бронь #%d: стол %d на %s %s, гостей: %d. Телефон клиента: %s",
			"booking.approved":        "Ваша бронь #%d подтверждена. Ждём вас %s в %s.",
			"booking.rejected":        "К сожалению, бронь #%d отклонена рестораном.",
			"booking.cancelled":       "Бронь #%d отменена.",
			"booking.contact":         "Клиент по брони #%d: %s",
			"btn.approve":             "Подтвердить",
			"btn.reject":              "Отклонить",
			"btn.contact":             "Связаться",
		},
		"en": {
			"booking.confirm_request": "New booking #%d: table %d on %s %s, guests: %d. Client phone: %s",
			"booking.approved":        "Your booking #%d is approved. See you on %s at %s.",
			"booking.rejected":        "Unfortunately booking #%d was rejected by the restaurant.",
			"booking.cancelled":       "Booking #%d was cancelled.",
			"booking.contact":         "Client for booking #%d: %s",
			"btn.approve":             "Approve",
			"btn.reject":              "Reject",
			"btn.contact":             "Contact",
		},
	}}
}

// Render falls back to English for unknown languages and to the bare key
// for unknown templates, so a missing translation never blocks a send.
func (t *Translator) Render(lang, key string, args ...any) string {
	table, ok := t.tables[lang]
	if !ok {
		table = t.tables["en"]
	}
	tmpl, ok := table[key]
	if !ok {
		tmpl, ok = t.tables["en"][key]
		if !ok {
			return key
		}
	}
	return fmt.Sprintf(tmpl, args...)
}
