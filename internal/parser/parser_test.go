package parser

import (
	"fmt"
	"testing"
)

func metaText(from, id, body string) []byte {
	return []byte(fmt.Sprintf(`{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"value": {"messages": [
			{"from": %q, "id": %q, "type": "text", "text": {"body": %q}}
		]}}]}]
	}`, from, id, body))
}

func metaButton(from, id, buttonID string) []byte {
	return []byte(fmt.Sprintf(`{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"value": {"messages": [
			{"from": %q, "id": %q, "type": "interactive",
			 "interactive": {"button_reply": {"id": %q, "title": "x"}}}
		]}}]}]
	}`, from, id, buttonID))
}

func greenText(sender, id, body string) []byte {
	return []byte(fmt.Sprintf(`{
		"typeWebhook": "incomingMessageReceived",
		"idMessage": %q,
		"senderData": {"sender": %q},
		"messageData": {"typeMessage": "textMessage", "textMessageData": {"textMessage": %q}}
	}`, id, sender, body))
}

func greenButton(sender, id, buttonID string) []byte {
	return []byte(fmt.Sprintf(`{
		"typeWebhook": "incomingMessageReceived",
		"idMessage": %q,
		"senderData": {"sender": %q},
		"messageData": {"typeMessage": "buttonsResponseMessage",
			"buttonsResponseMessage": {"selectedButtonId": %q}}
	}`, id, sender, buttonID))
}

func TestParseBookingToken(t *testing.T) {
	cmd, ok := Parse(metaText("79990000000", "wamid.1", "Здравствуйте BOOKING:482"))
	if !ok {
		t.Fatal("expected a command")
	}
	if cmd.Intent != IntentConfirmBooking || cmd.TargetID != 482 {
		t.Fatalf("intent=%s target=%d, want confirm_booking/482", cmd.Intent, cmd.TargetID)
	}
	if cmd.Event.SenderPhone != "79990000000" {
		t.Fatalf("sender = %q", cmd.Event.SenderPhone)
	}
}

func TestParseGreenAPIShape(t *testing.T) {
	cmd, ok := Parse(greenText("79991234567@c.us", "g1", "PREORDER:12"))
	if !ok {
		t.Fatal("expected a command")
	}
	if cmd.Intent != IntentConfirmPreOrder || cmd.TargetID != 12 {
		t.Fatalf("intent=%s target=%d, want confirm_preorder/12", cmd.Intent, cmd.TargetID)
	}
	if cmd.Event.SenderPhone != "79991234567" {
		t.Fatalf("sender = %q, @c.us suffix must be stripped", cmd.Event.SenderPhone)
	}
}

func TestParseButtons(t *testing.T) {
	cases := []struct {
		payload []byte
		intent  Intent
		target  int64
	}{
		{metaButton("79990000000", "wamid.2", "APPROVE_BOOKING:55"), IntentApproveBooking, 55},
		{greenButton("79990000000@c.us", "g2", "REJECT_BOOKING:17"), IntentRejectBooking, 17},
		{metaButton("79990000000", "wamid.3", "CONTACT_CLIENT:9"), IntentContactClient, 9},
	}
	for _, c := range cases {
		cmd, ok := Parse(c.payload)
		if !ok {
			t.Fatalf("expected a command for %s", c.payload)
		}
		if cmd.Intent != c.intent || cmd.TargetID != c.target {
			t.Errorf("intent=%s target=%d, want %s/%d", cmd.Intent, cmd.TargetID, c.intent, c.target)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	cmd, ok := Parse(metaText("79990000000", "wamid.4", "hello"))
	if !ok || cmd.Intent != IntentUnknown {
		t.Fatalf("ok=%v intent=%v, want unknown command", ok, cmd)
	}
	cmd, ok = Parse(greenButton("79990000000@c.us", "g3", "SOMETHING_ELSE:1"))
	if !ok || cmd.Intent != IntentUnknown {
		t.Fatalf("unmatched button id must classify unknown, got ok=%v cmd=%v", ok, cmd)
	}
}

func TestParseDrops(t *testing.T) {
	if _, ok := Parse([]byte(`{"unrelated": true}`)); ok {
		t.Error("unrecognized shape must yield no command")
	}
	if _, ok := Parse([]byte(`not json`)); ok {
		t.Error("garbage must yield no command")
	}
	if _, ok := Parse(metaText("@c.us", "wamid.5", "BOOKING:1")); ok {
		t.Error("empty sender after normalization must be dropped")
	}
	if _, ok := Parse([]byte(`{"typeWebhook": "outgoingMessageStatus"}`)); ok {
		t.Error("non-incoming green-api webhooks must be ignored")
	}
}
