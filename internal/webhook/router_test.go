package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
	"github.com/Mouzitoto/restohub-2-sub000/internal/provider"
)

type fakeAPI struct {
	confirmCalls []int64
	statusCalls  []string // "id:status:manager"
	confirmErr   error
	view         *BookingView
}

func (f *fakeAPI) Confirm(_ context.Context, id int64, phone, msgID, firstName string) (*BookingView, error) {
	f.confirmCalls = append(f.confirmCalls, id)
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	v := *f.view
	v.ID = id
	v.Status = domain.StatusPending
	return &v, nil
}

func (f *fakeAPI) SetStatus(_ context.Context, id int64, status, managerID string) (*BookingView, error) {
	f.statusCalls = append(f.statusCalls, fmt.Sprintf("%d:%s:%s", id, status, managerID))
	v := *f.view
	v.ID = id
	v.Status = status
	return &v, nil
}

type fakeDir struct {
	restaurant *domain.Restaurant
	client     *domain.Client
	booking    *domain.Booking
	manager    *domain.User
}

func (f *fakeDir) RestaurantByPhone(_ context.Context, phone string) (*domain.Restaurant, error) {
	if f.restaurant == nil || f.restaurant.WhatsappPhone != phone {
		return nil, domain.ErrNotFound
	}
	return f.restaurant, nil
}

func (f *fakeDir) RestaurantByID(_ context.Context, id string) (*domain.Restaurant, error) {
	if f.restaurant == nil || f.restaurant.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.restaurant, nil
}

func (f *fakeDir) TableByID(_ context.Context, _ string) (*domain.Table, error) {
	return &domain.Table{ID: "t1", Number: 5, Capacity: 4}, nil
}

func (f *fakeDir) ClientByID(_ context.Context, id string) (*domain.Client, error) {
	if f.client == nil || f.client.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.client, nil
}

func (f *fakeDir) BookingByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.booking, nil
}

func (f *fakeDir) FirstActiveManager(_ context.Context, _ string) (*domain.User, error) {
	if f.manager == nil {
		return nil, domain.ErrNotFound
	}
	return f.manager, nil
}

type sentMsg struct {
	phone   string
	tmpl    string
	buttons int
}

type fakeSender struct{ sent []sentMsg }

func (f *fakeSender) SendText(_ context.Context, _, _, phone, tmplKey string, _ ...any) string {
	f.sent = append(f.sent, sentMsg{phone: phone, tmpl: tmplKey})
	return "out-1"
}

func (f *fakeSender) SendWithButtons(_ context.Context, _, _, phone, tmplKey string, buttons []provider.Button, _ ...any) string {
	f.sent = append(f.sent, sentMsg{phone: phone, tmpl: tmplKey, buttons: len(buttons)})
	return "out-2"
}

func (f *fakeSender) Button(_, id, _ string) provider.Button {
	return provider.Button{ID: id, Title: "x"}
}

type fakeDedup struct{ seen map[string]bool }

func (f *fakeDedup) FirstSeen(_ context.Context, id string) bool {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[id] {
		return false
	}
	f.seen[id] = true
	return true
}

func setup(t *testing.T) (*fakeAPI, *fakeDir, *fakeSender, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	api := &fakeAPI{view: &BookingView{
		RestaurantID: "r1", TableID: "t1", ClientID: "c1",
		Date: "2026-09-10", Time: "19:00", PersonCount: 2,
	}}
	dir := &fakeDir{
		restaurant: &domain.Restaurant{ID: "r1", WhatsappPhone: "79997770000", Provider: "meta", ManagerLang: "ru"},
		client:     &domain.Client{ID: "c1", Phone: "79990000000"},
		manager:    &domain.User{ID: "m1", Role: domain.RoleManager, Active: true},
	}
	send := &fakeSender{}
	r := NewRouter(api, dir, send, &fakeDedup{}, "secret-token", nil)
	g := gin.New()
	r.Register(g)
	return api, dir, send, g
}

func deliver(t *testing.T, g *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("webhook must always return 200, got %d", w.Code)
	}
	return w
}

func metaText(from, id, body string) string {
	return fmt.Sprintf(`{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{"messages":[{"from":%q,"id":%q,"type":"text","text":{"body":%q}}]}}]}]}`, from, id, body)
}

func metaButton(from, id, buttonID string) string {
	return fmt.Sprintf(`{"object":"whatsapp_business_account","entry":[{"changes":[{"value":{"messages":[{"from":%q,"id":%q,"type":"interactive","interactive":{"button_reply":{"id":%q,"title":"x"}}}]}}]}]}`, from, id, buttonID)
}

func TestClientConfirmationFlow(t *testing.T) {
	api, _, send, g := setup(t)
	deliver(t, g, metaText("79990000000", "wamid.a", "BOOKING:100"))

	if len(api.confirmCalls) != 1 || api.confirmCalls[0] != 100 {
		t.Fatalf("confirm calls = %v, want [100]", api.confirmCalls)
	}
	if len(send.sent) != 1 {
		t.Fatalf("sent = %v, want one restaurant notification", send.sent)
	}
	got := send.sent[0]
	if got.phone != "79997770000" || got.tmpl != "booking.confirm_request" || got.buttons != 3 {
		t.Fatalf("restaurant notification = %+v", got)
	}
}

func TestManagerDecisionFlow(t *testing.T) {
	api, _, send, g := setup(t)
	deliver(t, g, metaButton("79997770000", "wamid.b", "REJECT_BOOKING:17"))

	if len(api.statusCalls) != 1 || api.statusCalls[0] != "17:REJECTED:m1" {
		t.Fatalf("status calls = %v, want [17:REJECTED:m1]", api.statusCalls)
	}
	if len(send.sent) != 1 || send.sent[0].phone != "79990000000" || send.sent[0].tmpl != "booking.rejected" {
		t.Fatalf("client notification = %v", send.sent)
	}
}

func TestUnknownRestaurantNumberNeverInvokesWorkflow(t *testing.T) {
	api, _, send, g := setup(t)
	deliver(t, g, metaButton("70000000001", "wamid.c", "APPROVE_BOOKING:55"))

	if len(api.statusCalls) != 0 {
		t.Fatalf("status calls = %v, want none for unknown sender", api.statusCalls)
	}
	if len(send.sent) != 0 {
		t.Fatalf("sent = %v, want none", send.sent)
	}
}

func TestConfirmFailureStaysSilent(t *testing.T) {
	api, _, send, g := setup(t)
	api.confirmErr = errors.New("booking api /v1/bookings/100/confirm: not_found")
	deliver(t, g, metaText("79990000000", "wamid.d", "BOOKING:100"))

	if len(send.sent) != 0 {
		t.Fatalf("sent = %v, client must get no reply when no DRAFT booking matches", send.sent)
	}
}

func TestUnknownIntentAcknowledged(t *testing.T) {
	api, _, send, g := setup(t)
	deliver(t, g, metaText("79990000000", "wamid.e", "hello there"))

	if len(api.confirmCalls)+len(api.statusCalls) != 0 || len(send.sent) != 0 {
		t.Fatal("unknown intent must be a pure acknowledgment")
	}
}

func TestDuplicateDeliverySkipped(t *testing.T) {
	api, _, _, g := setup(t)
	deliver(t, g, metaText("79990000000", "wamid.f", "BOOKING:100"))
	deliver(t, g, metaText("79990000000", "wamid.f", "BOOKING:100"))

	if len(api.confirmCalls) != 1 {
		t.Fatalf("confirm calls = %v, duplicate message id must be dropped", api.confirmCalls)
	}
}

func TestContactClientFlow(t *testing.T) {
	_, dir, send, g := setup(t)
	cid := "c1"
	dir.booking = &domain.Booking{ID: 9, RestaurantID: "r1", ClientID: &cid}
	deliver(t, g, metaButton("79997770000", "wamid.g", "CONTACT_CLIENT:9"))

	if len(send.sent) != 1 || send.sent[0].tmpl != "booking.contact" || send.sent[0].phone != "79997770000" {
		t.Fatalf("contact notification = %v", send.sent)
	}
}

func TestVerifyHandshake(t *testing.T) {
	_, _, _, g := setup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	g.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "12345" {
		t.Fatalf("handshake: code=%d body=%q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	g.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden || w.Body.Len() != 0 {
		t.Fatalf("bad token: code=%d body=%q, want 403 with no body", w.Code, w.Body.String())
	}
}
