package services_test

import (
	"context"
	"errors"
	"testing"

	"nhatro-chat/internal/assistant"
	"nhatro-chat/internal/domain/listing"
	"nhatro-chat/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func publishedListing(title string) listing.Listing {
	return listing.Listing{
		ID:       uuid.New(),
		Title:    title,
		Price:    3_000_000,
		Area:     25,
		District: "Quận 1",
		City:     "Hồ Chí Minh",
		Type:     listing.TypeRoom,
		Status:   listing.StatusPublished,
	}
}

func TestAssistantChatSuggestsTopThree(t *testing.T) {
	matched := []listing.Listing{
		publishedListing("Phòng 1"), publishedListing("Phòng 2"),
		publishedListing("Phòng 3"), publishedListing("Phòng 4"),
	}

	listingRepo := new(MockListingRepository)
	listingRepo.On("Match", mock.Anything, mock.Anything, 10).Return(matched, nil)
	listingRepo.On("Recent", mock.Anything, 15).Return([]listing.Listing{}, nil)

	svc := services.NewAssistantService(listingRepo, assistant.NewComposer(nil, nil), nil)

	reply, err := svc.Chat(context.Background(), "cần phòng trọ dưới 3 triệu ở quận 1", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Reply)
	assert.Len(t, reply.SuggestedListings, 3)
	assert.Equal(t, "Quận 1", reply.Criteria.District)
}

func TestAssistantChatDegradesWhenStoreFails(t *testing.T) {
	listingRepo := new(MockListingRepository)
	listingRepo.On("Match", mock.Anything, mock.Anything, 10).Return([]listing.Listing{}, errors.New("db down"))
	listingRepo.On("Recent", mock.Anything, 15).Return([]listing.Listing{}, errors.New("db down"))

	svc := services.NewAssistantService(listingRepo, assistant.NewComposer(nil, nil), nil)

	reply, err := svc.Chat(context.Background(), "xin chào", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Reply)
	assert.Empty(t, reply.SuggestedListings)
}
