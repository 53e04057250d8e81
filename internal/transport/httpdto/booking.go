package httpdto

type CreateBookingRequest struct {
	ListingID string `json:"listingId" binding:"required"`
	ViewDate  string `json:"viewDate" binding:"required"`
	ViewTime  string `json:"viewTime" binding:"required"`
	Message   string `json:"message"`
	Phone     string `json:"phone"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
