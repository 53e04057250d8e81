package listing

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Listing statuses. Only published listings are visible to matching.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusHidden    = "hidden"
	StatusRented    = "rented"
)

const (
	TypeRoom      = "room"
	TypeHouse     = "house"
	TypeApartment = "apartment"
	TypeShared    = "shared"
)

type Listing struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null;index" json:"price"`
	Deposit     float64        `gorm:"default:0" json:"deposit"`
	Area        float64        `gorm:"not null" json:"area"`
	Address     string         `gorm:"type:text;not null" json:"address"`
	City        string         `gorm:"type:varchar(100);not null;index:idx_listings_location" json:"city"`
	District    string         `gorm:"type:varchar(100);not null;index:idx_listings_location" json:"district"`
	Ward        string         `gorm:"type:varchar(100);default:''" json:"ward"`
	Type        string         `gorm:"type:varchar(16);not null" json:"type"`
	Amenities   pq.StringArray `gorm:"type:text[]" json:"amenities"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"ownerId"`
	Status      string         `gorm:"type:varchar(16);not null;default:'draft';index" json:"status"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TypeLabel returns the Vietnamese display name for a listing type.
func TypeLabel(t string) string {
	switch t {
	case TypeRoom:
		return "Phòng trọ"
	case TypeHouse:
		return "Nhà nguyên căn"
	case TypeApartment:
		return "Chung cư"
	case TypeShared:
		return "Phòng chung"
	}
	return t
}

// AmenityLabel returns the Vietnamese display name for an amenity tag.
func AmenityLabel(a string) string {
	switch a {
	case "wifi":
		return "📶 Wifi"
	case "ac":
		return "❄️ Máy lạnh"
	case "private_bathroom":
		return "🚿 WC riêng"
	case "shared_bathroom":
		return "🚿 WC chung"
	case "parking":
		return "🏍️ Chỗ để xe"
	case "kitchen":
		return "🍳 Bếp"
	case "washing_machine":
		return "🧺 Máy giặt"
	case "elevator":
		return "🏢 Thang máy"
	case "security":
		return "🔒 Bảo vệ 24/7"
	case "loft":
		return "🏠 Gác lửng"
	case "pets":
		return "🐾 Cho phép thú cưng"
	}
	return a
}
