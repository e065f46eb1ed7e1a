package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(
		&domain.BookingStatus{},
		&domain.Restaurant{},
		&domain.Table{},
		&domain.Client{},
		&domain.Booking{},
		&domain.BookingHistory{},
		&domain.User{},
		&domain.RestaurantAccess{},
	)
}

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		h := domain.BookingHistory{BookingID: b.ID, StatusCode: b.StatusCode, ChangedAt: now}
		return tx.Create(&h).Error
	})
}

func (r *BookingRepo) ByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) History(ctx context.Context, bookingID int64) ([]domain.BookingHistory, error) {
	var out []domain.BookingHistory
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("changed_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepo) List(ctx context.Context, restaurantID string, page, size int32) ([]domain.Booking, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Booking{})
	if restaurantID != "" {
		qb = qb.Where("restaurant_id = ?", restaurantID)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Booking
	if err := qb.Order("date ASC, time ASC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ConfirmByClient runs the whole client confirmation in one transaction:
// row-lock the booking, re-check DRAFT under the lock, find-or-create the
// client by normalized phone with its counters, flip to PENDING and append
// history. Returns applied=false when the booking was already PENDING.
func (r *BookingRepo) ConfirmByClient(ctx context.Context, id int64, normPhone, firstName, providerMsgID string) (*domain.Booking, bool, error) {
	var out domain.Booking
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		apply, err := domain.DraftGuard(b.StatusCode)
		if err != nil {
			return err
		}
		if !apply {
			out = b
			return nil
		}

		now := time.Now().UTC()
		var c domain.Client
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&c, "phone = ?", normPhone).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c = domain.Client{
				ID:             uuid.NewString(),
				Phone:          normPhone,
				FirstName:      firstName,
				TotalBookings:  1,
				FirstBookingAt: &now,
				LastBookingAt:  &now,
			}
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			c.TotalBookings++
			c.LastBookingAt = &now
			if c.FirstName == "" && firstName != "" {
				c.FirstName = firstName
			}
			if err := tx.Save(&c).Error; err != nil {
				return err
			}
		}

		b.StatusCode = domain.StatusPending
		b.ClientID = &c.ID
		b.WhatsappMessageID = providerMsgID
		if b.ClientName == "" && firstName != "" {
			b.ClientName = firstName
		}
		if err := tx.Save(&b).Error; err != nil {
			return err
		}
		h := domain.BookingHistory{BookingID: b.ID, StatusCode: domain.StatusPending, ChangedAt: now}
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		applied = true
		out = b
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, applied, nil
}

// Transition applies a guarded status change plus its ledger row in one
// transaction. The guard runs under the row lock so racing duplicates
// serialize on the booking row and converge to a no-op.
func (r *BookingRepo) Transition(ctx context.Context, id int64, target string, changedBy, comment *string, guard domain.TransitionGuard) (*domain.Booking, bool, error) {
	var out domain.Booking
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		apply, err := guard(b.StatusCode)
		if err != nil {
			return err
		}
		if !apply {
			out = b
			return nil
		}
		if !domain.CanTransition(b.StatusCode, target) {
			return domain.ErrInvalidTransition
		}
		now := time.Now().UTC()
		b.StatusCode = target
		if err := tx.Save(&b).Error; err != nil {
			return err
		}
		h := domain.BookingHistory{
			BookingID:  b.ID,
			StatusCode: target,
			ChangedAt:  now,
			ChangedBy:  changedBy,
			Comment:    comment,
		}
		if err := tx.Create(&h).Error; err != nil {
			return err
		}
		applied = true
		out = b
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, applied, nil
}
