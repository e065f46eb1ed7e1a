// Package parser turns inbound webhook payloads from either supported
// provider shape into zero or one structured command. It never mutates
// anything: classification only.
package parser

import (
	"encoding/json"
	"log"
	"regexp"
	"strconv"

	"github.com/Mouzitoto/restohub-2-sub000/pkg/phone"
)

type Intent int

const (
	IntentUnknown Intent = iota
	IntentConfirmBooking
	IntentConfirmPreOrder
	IntentApproveBooking
	IntentRejectBooking
	IntentContactClient
)

func (i Intent) String() string {
	switch i {
	case IntentConfirmBooking:
		return "confirm_booking"
	case IntentConfirmPreOrder:
		return "confirm_preorder"
	case IntentApproveBooking:
		return "approve_booking"
	case IntentRejectBooking:
		return "reject_booking"
	case IntentContactClient:
		return "contact_client"
	default:
		return "unknown"
	}
}

// Event is the normalized inbound message. Transient: consumed once by the
// webhook router, never persisted.
type Event struct {
	ProviderMessageID string
	SenderPhone       string // normalized
	BodyText          string
	ButtonID          string
}

// Command is an Event plus its classified intent and extracted target id.
type Command struct {
	Intent   Intent
	TargetID int64
	Event    Event
}

// Text tokens come from message bodies, button ids from reply buttons.
// Fixed order, first match wins.
var (
	bodyPatterns = []struct {
		re     *regexp.Regexp
		intent Intent
	}{
		{regexp.MustCompile(`BOOKING:(\d+)`), IntentConfirmBooking},
		{regexp.MustCompile(`PREORDER:(\d+)`), IntentConfirmPreOrder},
	}
	buttonPatterns = []struct {
		re     *regexp.Regexp
		intent Intent
	}{
		{regexp.MustCompile(`^APPROVE_BOOKING:(\d+)$`), IntentApproveBooking},
		{regexp.MustCompile(`^REJECT_BOOKING:(\d+)$`), IntentRejectBooking},
		{regexp.MustCompile(`^CONTACT_CLIENT:(\d+)$`), IntentContactClient},
	}
)

// metaPayload is the Meta-style nested entry[].changes[].value.messages[]
// shape.
type metaPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					ID   string `json:"id"`
					Type string `json:"type"`
					Text *struct {
						Body string `json:"body"`
					} `json:"text"`
					Interactive *struct {
						ButtonReply *struct {
							ID    string `json:"id"`
							Title string `json:"title"`
						} `json:"button_reply"`
					} `json:"interactive"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// greenPayload is the flatter Green-API-style typeWebhook shape.
type greenPayload struct {
	TypeWebhook string `json:"typeWebhook"`
	IDMessage   string `json:"idMessage"`
	SenderData  struct {
		Sender string `json:"sender"`
	} `json:"senderData"`
	MessageData struct {
		TypeMessage     string `json:"typeMessage"`
		TextMessageData *struct {
			TextMessage string `json:"textMessage"`
		} `json:"textMessageData"`
		ButtonsResponseMessage *struct {
			SelectedButtonID string `json:"selectedButtonId"`
		} `json:"buttonsResponseMessage"`
	} `json:"messageData"`
}

// Parse decodes the raw payload, trying the Meta shape first and falling
// back to the Green-API shape, and classifies the first message found.
// ok=false means nothing actionable: unrecognized shape, no messages, or a
// sender that normalizes to empty (dropped with a warning, since the message
// cannot be actioned without a sender identity).
func Parse(raw []byte) (*Command, bool) {
	ev, found := decodeMeta(raw)
	if !found {
		ev, found = decodeGreenAPI(raw)
	}
	if !found {
		return nil, false
	}
	if ev.SenderPhone == "" {
		log.Printf("[parser] drop message %s: sender unknown after normalization", ev.ProviderMessageID)
		return nil, false
	}
	cmd := &Command{Intent: IntentUnknown, Event: ev}
	if ev.ButtonID != "" {
		for _, p := range buttonPatterns {
			if m := p.re.FindStringSubmatch(ev.ButtonID); m != nil {
				cmd.Intent = p.intent
				cmd.TargetID, _ = strconv.ParseInt(m[1], 10, 64)
				return cmd, true
			}
		}
		return cmd, true
	}
	for _, p := range bodyPatterns {
		if m := p.re.FindStringSubmatch(ev.BodyText); m != nil {
			cmd.Intent = p.intent
			cmd.TargetID, _ = strconv.ParseInt(m[1], 10, 64)
			return cmd, true
		}
	}
	return cmd, true
}

func decodeMeta(raw []byte) (Event, bool) {
	var p metaPayload
	if err := json.Unmarshal(raw, &p); err != nil || len(p.Entry) == 0 {
		return Event{}, false
	}
	for _, e := range p.Entry {
		for _, ch := range e.Changes {
			for _, m := range ch.Value.Messages {
				ev := Event{
					ProviderMessageID: m.ID,
					SenderPhone:       phone.Normalize(m.From),
				}
				if m.Interactive != nil && m.Interactive.ButtonReply != nil {
					ev.ButtonID = m.Interactive.ButtonReply.ID
				} else if m.Text != nil {
					ev.BodyText = m.Text.Body
				}
				return ev, true
			}
		}
	}
	return Event{}, false
}

func decodeGreenAPI(raw []byte) (Event, bool) {
	var p greenPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.TypeWebhook == "" {
		return Event{}, false
	}
	if p.TypeWebhook != "incomingMessageReceived" {
		return Event{}, false
	}
	ev := Event{
		ProviderMessageID: p.IDMessage,
		SenderPhone:       phone.Normalize(p.SenderData.Sender),
	}
	if b := p.MessageData.ButtonsResponseMessage; b != nil {
		ev.ButtonID = b.SelectedButtonID
	} else if t := p.MessageData.TextMessageData; t != nil {
		ev.BodyText = t.TextMessage
	}
	return ev, true
}
