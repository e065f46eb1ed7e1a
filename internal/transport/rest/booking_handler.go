package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
	"github.com/Mouzitoto/restohub-2-sub000/internal/metrics"
	"github.com/Mouzitoto/restohub-2-sub000/internal/service"
)

type BookingHandler struct {
	svc *service.BookingSvc
	m   *metrics.Metrics
}

func NewBookingHandler(svc *service.BookingSvc, m *metrics.Metrics) *BookingHandler {
	return &BookingHandler{svc: svc, m: m}
}

// BookingView is the wire representation shared by every booking endpoint
// and consumed by the webhook service.
type BookingView struct {
	ID           int64         `json:"id"`
	RestaurantID string        `json:"restaurant_id"`
	TableID      string        `json:"table_id"`
	ClientID     string        `json:"client_id,omitempty"`
	ClientName   string        `json:"client_name,omitempty"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	PersonCount  int           `json:"person_count"`
	Status       string        `json:"status"`
	History      []HistoryView `json:"history,omitempty"`
}

type HistoryView struct {
	Status    string  `json:"status"`
	ChangedAt string  `json:"changed_at"`
	ChangedBy *string `json:"changed_by,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}

func toView(b *domain.Booking, hist []domain.BookingHistory) BookingView {
	v := BookingView{
		ID:           b.ID,
		RestaurantID: b.RestaurantID,
		TableID:      b.TableID,
		ClientName:   b.ClientName,
		Date:         b.Date,
		Time:         b.Time,
		PersonCount:  b.PersonCount,
		Status:       b.StatusCode,
	}
	if b.ClientID != nil {
		v.ClientID = *b.ClientID
	}
	for _, h := range hist {
		v.History = append(v.History, HistoryView{
			Status:    h.StatusCode,
			ChangedAt: h.ChangedAt.Format("2006-01-02T15:04:05Z07:00"),
			ChangedBy: h.ChangedBy,
			Comment:   h.Comment,
		})
	}
	return v
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_booking_id"})
		return 0, false
	}
	return id, true
}

// POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		TableID         string `json:"table_id" binding:"required"`
		ClientName      string `json:"client_name"`
		Date            string `json:"date" binding:"required"`
		Time            string `json:"time" binding:"required"`
		PersonCount     int    `json:"person_count" binding:"required"`
		SpecialRequests string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.Create(c.Request.Context(), service.CreateBookingInput{
		TableID:         in.TableID,
		ClientName:      in.ClientName,
		Date:            in.Date,
		Time:            in.Time,
		PersonCount:     in.PersonCount,
		SpecialRequests: in.SpecialRequests,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	h.m.IncTransition(b.StatusCode)
	c.JSON(http.StatusCreated, toView(b, nil))
}

// POST /v1/bookings/:id/confirm — client confirmation relayed by the
// webhook service. Idempotent: a duplicate delivery gets the current state.
func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var in struct {
		Phone             string `json:"phone" binding:"required"`
		WhatsappMessageID string `json:"whatsapp_message_id"`
		ClientFirstName   string `json:"client_first_name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.ConfirmByClient(c.Request.Context(), id, in.Phone, in.ClientFirstName, in.WhatsappMessageID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	h.m.IncTransition(b.StatusCode)
	hist, _ := h.svc.History(c.Request.Context(), id)
	c.JSON(http.StatusOK, toView(b, hist))
}

// POST /v1/bookings/:id/status — manager decision. manager_id may come from
// the body (webhook relay) or from the JWT subject (direct API call).
func (h *BookingHandler) SetStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var in struct {
		Status    string `json:"status" binding:"required"`
		ManagerID string `json:"manager_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	managerID := in.ManagerID
	if managerID == "" {
		sub, _ := c.Get("sub")
		managerID, _ = sub.(string)
	}
	b, err := h.svc.DecideByManager(c.Request.Context(), id, in.Status, managerID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	h.m.IncTransition(b.StatusCode)
	hist, _ := h.svc.History(c.Request.Context(), id)
	c.JSON(http.StatusOK, toView(b, hist))
}

// POST /v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var actor *string
	if sub, exists := c.Get("sub"); exists {
		if s, ok := sub.(string); ok && s != "" {
			actor = &s
		}
	}
	b, err := h.svc.Cancel(c.Request.Context(), id, actor)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	h.m.IncTransition(b.StatusCode)
	c.JSON(http.StatusOK, toView(b, nil))
}

// GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	hist, _ := h.svc.History(c.Request.Context(), id)
	c.JSON(http.StatusOK, toView(b, hist))
}

// GET /v1/bookings?restaurant_id=...&page=1&page_size=20
func (h *BookingHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	items, total, err := h.svc.List(c.Request.Context(), c.Query("restaurant_id"), int32(page-1), int32(size))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	views := make([]BookingView, 0, len(items))
	for i := range items {
		views = append(views, toView(&items[i], nil))
	}
	c.JSON(http.StatusOK, gin.H{"items": views, "total": total})
}
