package httpdto

type CreateConversationRequest struct {
	ListingID   string `json:"listingId" binding:"required"`
	RecipientID string `json:"recipientId" binding:"required"`
}
