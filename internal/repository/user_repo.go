package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// HasRestaurantAccess checks the membership grant backing authorization
// decisions. Role alone is not enough: a manager acts only for restaurants
// they are linked to.
func (r *UserRepo) HasRestaurantAccess(ctx context.Context, userID, restaurantID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.RestaurantAccess{}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Count(&n).Error
	return n > 0, err
}

// FirstActiveManager resolves "which manager acts for this restaurant" for
// events arriving from the restaurant's shared WhatsApp number. Known
// approximation: the shared number cannot tell which human pressed the
// button, so the first linked active manager is credited.
func (r *UserRepo) FirstActiveManager(ctx context.Context, restaurantID string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Joins("JOIN restaurant_accesses ra ON ra.user_id = users.id").
		Where("ra.restaurant_id = ? AND users.active = ? AND users.role IN ?",
			restaurantID, true, []domain.Role{domain.RoleManager, domain.RoleAdmin}).
		Order("users.created_at ASC").
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
