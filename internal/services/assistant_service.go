package services

import (
	"context"

	"nhatro-chat/internal/assistant"
	"nhatro-chat/internal/domain/listing"
	"nhatro-chat/internal/repository"
	"nhatro-chat/pkg/logger"
)

const (
	matchedListingLimit = 10
	recentListingLimit  = 15
	suggestedLimit      = 3
)

type AssistantReply struct {
	Reply             string
	Criteria          assistant.Criteria
	SuggestedListings []listing.Listing
}

// AssistantService runs the assistant pipeline: parse the query, match
// listings, gather recent context, compose a reply. Each stage degrades on
// its own; a broken listing store still produces an answer.
type AssistantService struct {
	listingRepo repository.ListingRepository
	composer    *assistant.Composer
	log         *logger.Logger
}

func NewAssistantService(listingRepo repository.ListingRepository, composer *assistant.Composer, log *logger.Logger) *AssistantService {
	return &AssistantService{
		listingRepo: listingRepo,
		composer:    composer,
		log:         log,
	}
}

func (s *AssistantService) Chat(ctx context.Context, message string, history []assistant.Turn) (AssistantReply, error) {
	criteria := assistant.ParseQuery(message)

	matched, err := s.listingRepo.Match(ctx, criteria, matchedListingLimit)
	if err != nil {
		if s.log != nil {
			s.log.Warnf("listing match failed, continuing without matches: %v", err)
		}
		matched = nil
	}

	recent, err := s.listingRepo.Recent(ctx, recentListingLimit)
	if err != nil {
		if s.log != nil {
			s.log.Warnf("recent listing fetch failed, continuing without them: %v", err)
		}
		recent = nil
	}

	reply := s.composer.Compose(ctx, assistant.Request{
		Message:  message,
		History:  history,
		Criteria: criteria,
		Listings: assistant.BuildListingContext(matched, recent),
	})

	suggested := matched
	if len(suggested) > suggestedLimit {
		suggested = suggested[:suggestedLimit]
	}
	return AssistantReply{
		Reply:             reply,
		Criteria:          criteria,
		SuggestedListings: suggested,
	}, nil
}
