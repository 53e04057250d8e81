package repository

import (
	"context"
	"errors"

	"nhatro-chat/internal/domain/booking"
	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &PostgresBookingRepository{db: db}
}

func (r *PostgresBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *PostgresBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	var b booking.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking.Booking{}, nhatro_errors.ErrNotFound
		}
		return booking.Booking{}, err
	}
	return b, nil
}

func (r *PostgresBookingRepository) Update(ctx context.Context, b booking.Booking) error {
	res := r.db.WithContext(ctx).
		Model(&booking.Booking{}).
		Where("id = ?", b.ID).
		Update("status", b.Status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nhatro_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresBookingRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]booking.Booking, error) {
	var bookings []booking.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *PostgresBookingRepository) ListForLandlord(ctx context.Context, landlordID uuid.UUID) ([]booking.Booking, error) {
	var bookings []booking.Booking
	err := r.db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
