// Package webhook is the top-level entry point for inbound WhatsApp
// traffic. It normalizes provider payloads, deduplicates, relays commands
// to the booking api and notifies the counter-party. The POST endpoint
// always acknowledges with a 2xx: providers do not consume error bodies,
// and a non-2xx only invites redelivery of an event we already saw.
package webhook

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
	"github.com/Mouzitoto/restohub-2-sub000/internal/metrics"
	"github.com/Mouzitoto/restohub-2-sub000/internal/parser"
	"github.com/Mouzitoto/restohub-2-sub000/internal/provider"
)

// BookingAPI is the mutation surface, implemented by Client over REST.
type BookingAPI interface {
	Confirm(ctx context.Context, id int64, phone, msgID, firstName string) (*BookingView, error)
	SetStatus(ctx context.Context, id int64, status, managerID string) (*BookingView, error)
}

// Directory is the read-side lookup surface backed by the shared database.
type Directory interface {
	RestaurantByPhone(ctx context.Context, phone string) (*domain.Restaurant, error)
	RestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error)
	TableByID(ctx context.Context, id string) (*domain.Table, error)
	ClientByID(ctx context.Context, id string) (*domain.Client, error)
	BookingByID(ctx context.Context, id int64) (*domain.Booking, error)
	FirstActiveManager(ctx context.Context, restaurantID string) (*domain.User, error)
}

// Sender is the outbound dispatch surface, implemented by notify.Dispatcher.
type Sender interface {
	SendText(ctx context.Context, providerKey, lang, phone, tmplKey string, args ...any) string
	SendWithButtons(ctx context.Context, providerKey, lang, phone, tmplKey string, buttons []provider.Button, args ...any) string
	Button(lang, id, titleKey string) provider.Button
}

// Deduper drops repeated provider message ids.
type Deduper interface {
	FirstSeen(ctx context.Context, providerMsgID string) bool
}

type Router struct {
	api         BookingAPI
	dir         Directory
	send        Sender
	dedup       Deduper
	verifyToken string
	m           *metrics.Metrics
}

func NewRouter(api BookingAPI, dir Directory, send Sender, dedup Deduper, verifyToken string, m *metrics.Metrics) *Router {
	return &Router{api: api, dir: dir, send: send, dedup: dedup, verifyToken: verifyToken, m: m}
}

func (r *Router) Register(g *gin.Engine) {
	g.GET("/webhook/whatsapp", r.Verify)
	g.POST("/webhook/whatsapp", r.Inbound)
}

// Verify handles the provider's GET handshake: echo the challenge only when
// the verify token matches, otherwise reject with no body.
func (r *Router) Verify(c *gin.Context) {
	if c.Query("hub.mode") == "subscribe" && c.Query("hub.verify_token") == r.verifyToken {
		c.String(http.StatusOK, c.Query("hub.challenge"))
		return
	}
	c.Status(http.StatusForbidden)
}

// Inbound handles the POST delivery. Internal failures are logged, never
// surfaced to the provider.
func (r *Router) Inbound(c *gin.Context) {
	defer c.JSON(http.StatusOK, gin.H{"status": "ok"})

	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook] read body error: %v", err)
		return
	}
	r.m.IncWebhook()

	cmd, ok := parser.Parse(raw)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if !r.dedup.FirstSeen(ctx, cmd.Event.ProviderMessageID) {
		r.m.IncDeduped()
		log.Printf("[webhook] duplicate delivery %s, skipping", cmd.Event.ProviderMessageID)
		return
	}

	var herr error
	switch cmd.Intent {
	case parser.IntentConfirmBooking:
		herr = r.handleConfirm(ctx, cmd)
	case parser.IntentConfirmPreOrder:
		// pre-order confirmations are not actioned yet
		log.Printf("[webhook] preorder %d confirmed by %s (stub)", cmd.TargetID, cmd.Event.SenderPhone)
	case parser.IntentApproveBooking:
		herr = r.handleDecision(ctx, cmd, domain.StatusApproved)
	case parser.IntentRejectBooking:
		herr = r.handleDecision(ctx, cmd, domain.StatusRejected)
	case parser.IntentContactClient:
		herr = r.handleContact(ctx, cmd)
	default:
		return // Unknown: acknowledged, no action
	}
	if herr != nil {
		r.m.IncCommand(cmd.Intent.String(), "error")
		log.Printf("[webhook] %s booking=%d error: %v", cmd.Intent, cmd.TargetID, herr)
		return
	}
	r.m.IncCommand(cmd.Intent.String(), "ok")
}

// handleConfirm relays the client confirmation, then asks the restaurant to
// decide via buttons. A confirmation matching no live DRAFT booking gets no
// reply at all.
func (r *Router) handleConfirm(ctx context.Context, cmd *parser.Command) error {
	view, err := r.api.Confirm(ctx, cmd.TargetID, cmd.Event.SenderPhone, cmd.Event.ProviderMessageID, "")
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	rest, err := r.dir.RestaurantByID(ctx, view.RestaurantID)
	if err != nil {
		return fmt.Errorf("restaurant %s: %w", view.RestaurantID, err)
	}
	tableNum := 0
	if t, err := r.dir.TableByID(ctx, view.TableID); err == nil {
		tableNum = t.Number
	}
	lang := rest.ManagerLang
	buttons := []provider.Button{
		r.send.Button(lang, fmt.Sprintf("APPROVE_BOOKING:%d", view.ID), "btn.approve"),
		r.send.Button(lang, fmt.Sprintf("REJECT_BOOKING:%d", view.ID), "btn.reject"),
		r.send.Button(lang, fmt.Sprintf("CONTACT_CLIENT:%d", view.ID), "btn.contact"),
	}
	id := r.send.SendWithButtons(ctx, rest.Provider, lang, rest.WhatsappPhone, "booking.confirm_request",
		buttons, view.ID, tableNum, view.Date, view.Time, view.PersonCount, cmd.Event.SenderPhone)
	r.countNotification(id)
	return nil
}

// handleDecision resolves the acting manager from the restaurant's shared
// WhatsApp number, relays the decision, then tells the client. An unknown
// sender number means the api is never called.
func (r *Router) handleDecision(ctx context.Context, cmd *parser.Command, target string) error {
	rest, err := r.dir.RestaurantByPhone(ctx, cmd.Event.SenderPhone)
	if err != nil {
		return fmt.Errorf("no restaurant for sender %s: %w", cmd.Event.SenderPhone, err)
	}
	mgr, err := r.dir.FirstActiveManager(ctx, rest.ID)
	if err != nil {
		return fmt.Errorf("no active manager for restaurant %s: %w", rest.ID, err)
	}
	view, err := r.api.SetStatus(ctx, cmd.TargetID, target, mgr.ID)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if view.ClientID == "" {
		return nil
	}
	cl, err := r.dir.ClientByID(ctx, view.ClientID)
	if err != nil {
		return fmt.Errorf("client %s: %w", view.ClientID, err)
	}
	var id string
	if view.Status == domain.StatusApproved {
		id = r.send.SendText(ctx, rest.Provider, rest.ManagerLang, cl.Phone, "booking.approved", view.ID, view.Date, view.Time)
	} else {
		id = r.send.SendText(ctx, rest.Provider, rest.ManagerLang, cl.Phone, "booking.rejected", view.ID)
	}
	r.countNotification(id)
	return nil
}

// handleContact sends the client's phone back to the restaurant number.
// Read-only: no workflow call involved.
func (r *Router) handleContact(ctx context.Context, cmd *parser.Command) error {
	rest, err := r.dir.RestaurantByPhone(ctx, cmd.Event.SenderPhone)
	if err != nil {
		return fmt.Errorf("no restaurant for sender %s: %w", cmd.Event.SenderPhone, err)
	}
	b, err := r.dir.BookingByID(ctx, cmd.TargetID)
	if err != nil {
		return fmt.Errorf("booking %d: %w", cmd.TargetID, err)
	}
	if b.RestaurantID != rest.ID {
		return fmt.Errorf("booking %d belongs to another restaurant", b.ID)
	}
	contact := b.ClientName
	if b.ClientID != nil {
		if cl, err := r.dir.ClientByID(ctx, *b.ClientID); err == nil {
			contact = cl.Phone
		}
	}
	id := r.send.SendText(ctx, rest.Provider, rest.ManagerLang, rest.WhatsappPhone, "booking.contact", b.ID, contact)
	r.countNotification(id)
	return nil
}

func (r *Router) countNotification(providerMsgID string) {
	if providerMsgID == "" {
		r.m.IncNotification("error")
		return
	}
	r.m.IncNotification("ok")
}
