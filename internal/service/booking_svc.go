package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
	"github.com/Mouzitoto/restohub-2-sub000/internal/events"
	"github.com/Mouzitoto/restohub-2-sub000/pkg/phone"
)

// BookingStore is the transactional persistence surface the workflow needs.
// Implemented by repository.BookingRepo.
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id int64) (*domain.Booking, error)
	History(ctx context.Context, id int64) ([]domain.BookingHistory, error)
	List(ctx context.Context, restaurantID string, page, size int32) ([]domain.Booking, int64, error)
	ConfirmByClient(ctx context.Context, id int64, normPhone, firstName, providerMsgID string) (*domain.Booking, bool, error)
	Transition(ctx context.Context, id int64, target string, changedBy, comment *string, guard domain.TransitionGuard) (*domain.Booking, bool, error)
}

// TableStore backs the capacity check at creation time.
type TableStore interface {
	TableByID(ctx context.Context, id string) (*domain.Table, error)
}

// UserStore backs manager authorization.
type UserStore interface {
	ByID(ctx context.Context, id string) (*domain.User, error)
	HasRestaurantAccess(ctx context.Context, userID, restaurantID string) (bool, error)
}

// Publisher emits lifecycle events after commit, best-effort.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingSvc struct {
	store  BookingStore
	tables TableStore
	users  UserStore
	pub    Publisher
}

func NewBookingSvc(store BookingStore, tables TableStore, users UserStore, pub Publisher) *BookingSvc {
	return &BookingSvc{store: store, tables: tables, users: users, pub: pub}
}

type CreateBookingInput struct {
	TableID         string
	ClientName      string
	Date            string
	Time            string
	PersonCount     int
	SpecialRequests string
}

// Create registers a DRAFT booking. personCount is validated against the
// table capacity here and not re-validated on later status changes.
func (s *BookingSvc) Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	t, err := s.tables.TableByID(ctx, in.TableID)
	if err != nil {
		return nil, err
	}
	if in.PersonCount <= 0 || in.PersonCount > t.Capacity {
		return nil, domain.ErrCapacityExceeded
	}
	b := &domain.Booking{
		RestaurantID:    t.RestaurantID,
		TableID:         t.ID,
		ClientName:      in.ClientName,
		Date:            in.Date,
		Time:            in.Time,
		PersonCount:     in.PersonCount,
		SpecialRequests: in.SpecialRequests,
		StatusCode:      domain.StatusDraft,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	s.publish(ctx, events.RKBookingCreated, events.BookingCreated{
		BookingID:    b.ID,
		RestaurantID: b.RestaurantID,
		TableID:      b.TableID,
		Date:         b.Date,
		Time:         b.Time,
		PersonCount:  b.PersonCount,
	})
	return b, nil
}

// ConfirmByClient moves DRAFT to PENDING on behalf of the client who sent a
// BOOKING:<id> message. A booking already PENDING is returned unchanged:
// duplicate webhook deliveries must converge, and the provider message id
// cannot be trusted for that because retries may carry a fresh one.
func (s *BookingSvc) ConfirmByClient(ctx context.Context, id int64, rawPhone, firstName, providerMsgID string) (*domain.Booking, error) {
	norm := phone.Normalize(rawPhone)
	if norm == "" {
		return nil, domain.ErrNotFound
	}
	b, applied, err := s.store.ConfirmByClient(ctx, id, norm, firstName, providerMsgID)
	if err != nil {
		return nil, err
	}
	if applied {
		s.publish(ctx, events.RKBookingPending, events.BookingTransition{
			BookingID:    b.ID,
			RestaurantID: b.RestaurantID,
			Status:       b.StatusCode,
		})
	}
	return b, nil
}

// DecideByManager applies APPROVED or REJECTED to a PENDING booking. The
// manager must be active, hold a deciding role and have an access grant on
// the booking's restaurant. Repeating the same decision is a no-op success.
func (s *BookingSvc) DecideByManager(ctx context.Context, id int64, decision, managerID string) (*domain.Booking, error) {
	decision = strings.ToUpper(decision)
	if decision != domain.StatusApproved && decision != domain.StatusRejected {
		return nil, domain.ErrInvalidTransition
	}
	b, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u, err := s.users.ByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrManagerNotAuthorized
		}
		return nil, err
	}
	if !u.Active || !u.Role.CanDecide() {
		return nil, domain.ErrManagerNotAuthorized
	}
	ok, err := s.users.HasRestaurantAccess(ctx, u.ID, b.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrManagerNotAuthorized
	}

	b, applied, err := s.store.Transition(ctx, id, decision, &managerID, nil, domain.DecisionGuard(decision))
	if err != nil {
		return nil, err
	}
	if applied {
		key := events.RKBookingApproved
		if decision == domain.StatusRejected {
			key = events.RKBookingRejected
		}
		s.publish(ctx, key, events.BookingTransition{
			BookingID:    b.ID,
			RestaurantID: b.RestaurantID,
			Status:       b.StatusCode,
			ChangedBy:    &managerID,
		})
	}
	return b, nil
}

// Cancel moves PENDING or APPROVED to CANCELLED with whatever actor context
// is available.
func (s *BookingSvc) Cancel(ctx context.Context, id int64, actorID *string) (*domain.Booking, error) {
	b, applied, err := s.store.Transition(ctx, id, domain.StatusCancelled, actorID, nil, domain.CancelGuard)
	if err != nil {
		return nil, err
	}
	if applied {
		s.publish(ctx, events.RKBookingCancelled, events.BookingTransition{
			BookingID:    b.ID,
			RestaurantID: b.RestaurantID,
			Status:       b.StatusCode,
			ChangedBy:    actorID,
		})
	}
	return b, nil
}

func (s *BookingSvc) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.store.ByID(ctx, id)
}

func (s *BookingSvc) History(ctx context.Context, id int64) ([]domain.BookingHistory, error) {
	return s.store.History(ctx, id)
}

func (s *BookingSvc) List(ctx context.Context, restaurantID string, page, size int32) ([]domain.Booking, int64, error) {
	return s.store.List(ctx, restaurantID, page, size)
}

// publish is best-effort: the transition is already committed, a lost event
// must never surface as a failure to the caller.
func (s *BookingSvc) publish(ctx context.Context, key string, v any) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishJSON(ctx, key, v); err != nil {
		log.Printf("[booking] publish %s error: %v", key, err)
	}
}
