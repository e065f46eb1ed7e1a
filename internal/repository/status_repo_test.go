package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mouzitoto/restohub-2-sub000/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := NewBookingRepo(db).Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedSurvivesRestart(t *testing.T) {
	db := openTestDB(t)
	repo := NewStatusRepo(db)
	ctx := context.Background()

	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	// a restarted process seeds again with fresh generated ids
	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var n int64
	if err := db.Model(&domain.BookingStatus{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != int64(len(seedStatuses)) {
		t.Fatalf("statuses = %d, want %d", n, len(seedStatuses))
	}

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != len(seedStatuses) || active[0].Code != domain.StatusDraft {
		t.Fatalf("active = %v", active)
	}
}

func TestSoftDeleteBlockedWhileReferenced(t *testing.T) {
	db := openTestDB(t)
	repo := NewStatusRepo(db)
	ctx := context.Background()

	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	b := domain.Booking{
		RestaurantID: "r1",
		TableID:      "t1",
		ClientName:   "walk-in",
		Date:         "2026-09-10",
		Time:         "19:00",
		PersonCount:  2,
		StatusCode:   domain.StatusPending,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	h := domain.BookingHistory{BookingID: b.ID, StatusCode: domain.StatusPending, ChangedAt: time.Now().UTC()}
	if err := db.Create(&h).Error; err != nil {
		t.Fatalf("create history: %v", err)
	}

	if err := repo.SoftDelete(ctx, domain.StatusPending); !errors.Is(err, domain.ErrStatusInUse) {
		t.Fatalf("delete with booking reference: err = %v, want ErrStatusInUse", err)
	}

	// bookings gone, ledger row alone still blocks
	if err := db.Delete(&domain.Booking{}, b.ID).Error; err != nil {
		t.Fatalf("delete booking: %v", err)
	}
	if err := repo.SoftDelete(ctx, domain.StatusPending); !errors.Is(err, domain.ErrStatusInUse) {
		t.Fatalf("delete with history reference: err = %v, want ErrStatusInUse", err)
	}

	if err := db.Delete(&domain.BookingHistory{}, h.ID).Error; err != nil {
		t.Fatalf("delete history: %v", err)
	}
	if err := repo.SoftDelete(ctx, domain.StatusPending); err != nil {
		t.Fatalf("delete without references: %v", err)
	}
	s, err := repo.ByCode(ctx, domain.StatusPending)
	if err != nil {
		t.Fatalf("by code: %v", err)
	}
	if s.Active {
		t.Fatal("status still active after soft delete")
	}

	if err := repo.SoftDelete(ctx, "NO_SUCH"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete unknown code: err = %v, want ErrNotFound", err)
	}
}
