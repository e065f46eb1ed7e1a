package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
)

type StatusRepo struct{ db *gorm.DB }

func NewStatusRepo(db *gorm.DB) *StatusRepo {
	return &StatusRepo{db: db}
}

var seedStatuses = []domain.BookingStatus{
	{Code: domain.StatusDraft, DisplayOrder: 1},
	{Code: domain.StatusPending, DisplayOrder: 2},
	{Code: domain.StatusApproved, DisplayOrder: 3},
	{Code: domain.StatusRejected, DisplayOrder: 4},
	{Code: domain.StatusCancelled, DisplayOrder: 5},
}

// Seed inserts the lifecycle catalog once; reruns are no-ops. Lookup is by
// code alone: the generated id must stay out of the match condition or a
// rerun would never find the existing row.
func (r *StatusRepo) Seed(ctx context.Context) error {
	for _, s := range seedStatuses {
		err := r.db.WithContext(ctx).
			Where("code = ?", s.Code).
			Attrs(domain.BookingStatus{
				ID:           uuid.NewString(),
				Code:         s.Code,
				DisplayOrder: s.DisplayOrder,
				Active:       true,
			}).
			FirstOrCreate(&domain.BookingStatus{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *StatusRepo) ListActive(ctx context.Context) ([]domain.BookingStatus, error) {
	var out []domain.BookingStatus
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("display_order ASC").
		Find(&out).Error
	return out, err
}

func (r *StatusRepo) ByCode(ctx context.Context, code string) (*domain.BookingStatus, error) {
	var s domain.BookingStatus
	if err := r.db.WithContext(ctx).First(&s, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// SoftDelete deactivates a status code. Blocked while any booking or ledger
// row still references the code.
func (r *StatusRepo) SoftDelete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.BookingStatus
		if err := tx.First(&s, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		var n int64
		if err := tx.Model(&domain.Booking{}).Where("status_code = ?", code).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrStatusInUse
		}
		if err := tx.Model(&domain.BookingHistory{}).Where("status_code = ?", code).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrStatusInUse
		}
		s.Active = false
		s.UpdatedAt = time.Now().UTC()
		return tx.Save(&s).Error
	})
}
