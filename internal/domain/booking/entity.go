package booking

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking is a viewing appointment for a listing.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID  uuid.UUID `gorm:"type:uuid;not null;index" json:"listingId"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	LandlordID uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_landlord" json:"landlordId"`
	ViewDate   time.Time `gorm:"not null" json:"viewDate"`
	ViewTime   string    `gorm:"type:varchar(16);not null" json:"viewTime"`
	Message    string    `gorm:"type:text;default:''" json:"message"`
	Phone      string    `gorm:"type:varchar(32);not null" json:"phone"`
	Status     string    `gorm:"type:varchar(16);not null;default:'pending';index:idx_bookings_landlord" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ValidStatus reports whether s is one of the allowed booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}
