package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
)

type RestaurantRepo struct{ db *gorm.DB }

func NewRestaurantRepo(db *gorm.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

func (r *RestaurantRepo) ByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	if err := r.db.WithContext(ctx).First(&rest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rest, nil
}

// ByWhatsappPhone resolves which restaurant owns an inbound sender number.
// The phone must already be normalized.
func (r *RestaurantRepo) ByWhatsappPhone(ctx context.Context, phone string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	if err := r.db.WithContext(ctx).First(&rest, "whatsapp_phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepo) TableByID(ctx context.Context, id string) (*domain.Table, error) {
	var t domain.Table
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
