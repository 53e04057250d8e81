package services

import (
	"context"
	"time"

	"nhatro-chat/internal/domain/booking"
	"nhatro-chat/internal/repository"
	nhatro_errors "nhatro-chat/pkg/errors"
	"nhatro-chat/pkg/logger"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	ListingID uuid.UUID
	UserID    uuid.UUID
	ViewDate  string
	ViewTime  string
	Message   string
	Phone     string
}

type BookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	dispatcher  Dispatcher
	log         *logger.Logger
}

func NewBookingService(bookingRepo repository.BookingRepository, listingRepo repository.ListingRepository, dispatcher Dispatcher, log *logger.Logger) *BookingService {
	if dispatcher == nil {
		dispatcher = NopDispatcher{}
	}
	return &BookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		dispatcher:  dispatcher,
		log:         log,
	}
}

// Create books a viewing appointment and notifies the landlord.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (booking.Booking, error) {
	if input.ViewTime == "" {
		return booking.Booking{}, nhatro_errors.ErrInvalidInput
	}
	viewDate, err := time.Parse("2006-01-02", input.ViewDate)
	if err != nil {
		return booking.Booking{}, nhatro_errors.ErrInvalidInput
	}
	l, err := s.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return booking.Booking{}, err
	}
	if l.OwnerID == input.UserID {
		return booking.Booking{}, nhatro_errors.ErrInvalidInput
	}

	b := booking.Booking{
		ID:         uuid.New(),
		ListingID:  input.ListingID,
		UserID:     input.UserID,
		LandlordID: l.OwnerID,
		ViewDate:   viewDate,
		ViewTime:   input.ViewTime,
		Message:    input.Message,
		Phone:      input.Phone,
		Status:     booking.StatusPending,
	}
	if err := s.bookingRepo.Create(ctx, &b); err != nil {
		return booking.Booking{}, err
	}

	s.dispatcher.ToUser(ctx, b.LandlordID, EventNewBooking, b)
	return b, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]booking.Booking, error) {
	return s.bookingRepo.ListForUser(ctx, userID)
}

func (s *BookingService) ListForLandlord(ctx context.Context, landlordID uuid.UUID) ([]booking.Booking, error) {
	return s.bookingRepo.ListForLandlord(ctx, landlordID)
}

// UpdateStatus lets the landlord move the booking through its lifecycle and
// notifies the renter.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, requesterID uuid.UUID, status string) (booking.Booking, error) {
	if !booking.ValidStatus(status) {
		return booking.Booking{}, nhatro_errors.ErrInvalidInput
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return booking.Booking{}, err
	}
	if b.LandlordID != requesterID {
		return booking.Booking{}, nhatro_errors.ErrForbidden
	}

	b.Status = status
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return booking.Booking{}, err
	}

	s.dispatcher.ToUser(ctx, b.UserID, EventBookingUpdated, b)
	return b, nil
}
