package webhook

import (
	"context"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
	"github.com/Mouzitoto/restohub-2-sub000/internal/repository"
)

// RepoDirectory backs Directory with the shared database repositories.
type RepoDirectory struct {
	Restaurants *repository.RestaurantRepo
	Clients     *repository.ClientRepo
	Bookings    *repository.BookingRepo
	Users       *repository.UserRepo
}

func (d *RepoDirectory) RestaurantByPhone(ctx context.Context, phone string) (*domain.Restaurant, error) {
	return d.Restaurants.ByWhatsappPhone(ctx, phone)
}

func (d *RepoDirectory) RestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	return d.Restaurants.ByID(ctx, id)
}

func (d *RepoDirectory) TableByID(ctx context.Context, id string) (*domain.Table, error) {
	return d.Restaurants.TableByID(ctx, id)
}

func (d *RepoDirectory) ClientByID(ctx context.Context, id string) (*domain.Client, error) {
	return d.Clients.ByID(ctx, id)
}

func (d *RepoDirectory) BookingByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return d.Bookings.ByID(ctx, id)
}

func (d *RepoDirectory) FirstActiveManager(ctx context.Context, restaurantID string) (*domain.User, error) {
	return d.Users.FirstActiveManager(ctx, restaurantID)
}
