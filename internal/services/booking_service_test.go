package services_test

import (
	"context"
	"testing"

	"nhatro-chat/internal/domain/booking"
	"nhatro-chat/internal/domain/listing"
	"nhatro-chat/internal/services"
	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingNotifiesLandlord(t *testing.T) {
	landlordID := uuid.New()
	renterID := uuid.New()
	l := listing.Listing{ID: uuid.New(), OwnerID: landlordID}

	listingRepo := new(MockListingRepository)
	bookingRepo := new(MockBookingRepository)
	dispatcher := &RecordingDispatcher{}

	listingRepo.On("GetByID", mock.Anything, l.ID).Return(l, nil)
	bookingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := services.NewBookingService(bookingRepo, listingRepo, dispatcher, nil)

	b, err := svc.Create(context.Background(), services.CreateBookingInput{
		ListingID: l.ID,
		UserID:    renterID,
		ViewDate:  "2026-09-15",
		ViewTime:  "14:00",
		Phone:     "0901234567",
	})
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, b.Status)
	assert.Equal(t, landlordID, b.LandlordID)

	require.Len(t, dispatcher.UserEvents, 1)
	assert.Equal(t, services.EventNewBooking, dispatcher.UserEvents[0].Event)
	assert.Equal(t, landlordID, dispatcher.UserEvents[0].Target)
}

func TestCreateBookingRejectsOwnListing(t *testing.T) {
	ownerID := uuid.New()
	l := listing.Listing{ID: uuid.New(), OwnerID: ownerID}

	listingRepo := new(MockListingRepository)
	listingRepo.On("GetByID", mock.Anything, l.ID).Return(l, nil)

	svc := services.NewBookingService(new(MockBookingRepository), listingRepo, nil, nil)

	_, err := svc.Create(context.Background(), services.CreateBookingInput{
		ListingID: l.ID,
		UserID:    ownerID,
		ViewDate:  "2026-09-15",
		ViewTime:  "14:00",
	})
	assert.ErrorIs(t, err, nhatro_errors.ErrInvalidInput)
}

func TestUpdateStatusLandlordOnly(t *testing.T) {
	landlordID := uuid.New()
	renterID := uuid.New()
	b := booking.Booking{ID: uuid.New(), LandlordID: landlordID, UserID: renterID, Status: booking.StatusPending}

	bookingRepo := new(MockBookingRepository)
	bookingRepo.On("GetByID", mock.Anything, b.ID).Return(b, nil)

	svc := services.NewBookingService(bookingRepo, new(MockListingRepository), nil, nil)

	_, err := svc.UpdateStatus(context.Background(), b.ID, renterID, booking.StatusConfirmed)
	assert.ErrorIs(t, err, nhatro_errors.ErrForbidden)
}

func TestUpdateStatusNotifiesRenter(t *testing.T) {
	landlordID := uuid.New()
	renterID := uuid.New()
	b := booking.Booking{ID: uuid.New(), LandlordID: landlordID, UserID: renterID, Status: booking.StatusPending}

	bookingRepo := new(MockBookingRepository)
	dispatcher := &RecordingDispatcher{}
	bookingRepo.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	bookingRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated booking.Booking) bool {
		return updated.Status == booking.StatusConfirmed
	})).Return(nil)

	svc := services.NewBookingService(bookingRepo, new(MockListingRepository), dispatcher, nil)

	updated, err := svc.UpdateStatus(context.Background(), b.ID, landlordID, booking.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, updated.Status)

	require.Len(t, dispatcher.UserEvents, 1)
	assert.Equal(t, services.EventBookingUpdated, dispatcher.UserEvents[0].Event)
	assert.Equal(t, renterID, dispatcher.UserEvents[0].Target)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := services.NewBookingService(new(MockBookingRepository), new(MockListingRepository), nil, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "postponed")
	assert.ErrorIs(t, err, nhatro_errors.ErrInvalidInput)
}
