package assistant

import (
	"context"

	nhatro_errors "nhatro-chat/pkg/errors"
	"nhatro-chat/pkg/logger"
)

// FallbackResponse is the last-resort reply when every tier has failed.
const FallbackResponse = "Xin lỗi, tôi gặp sự cố khi xử lý câu hỏi. Vui lòng thử lại sau hoặc liên hệ với chúng tôi."

// Request carries everything a response strategy may use.
type Request struct {
	Message  string
	History  []Turn
	Criteria Criteria
	Listings []ListingContext
}

// Strategy produces a reply or reports failure so the next tier runs.
type Strategy interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// Composer tries an ordered list of strategies and returns the first
// successful reply. The final tier never fails, so Compose always returns
// text.
type Composer struct {
	strategies []Strategy
	log        *logger.Logger
}

// NewComposer builds the standard three-tier chain: generation service,
// rule-based templates, fixed apology. A nil generation client skips
// straight to the templates.
func NewComposer(generation *GenerationClient, log *logger.Logger) *Composer {
	return &Composer{
		strategies: []Strategy{
			&generationStrategy{client: generation},
			&templateStrategy{},
			&apologyStrategy{},
		},
		log: log,
	}
}

func (c *Composer) Compose(ctx context.Context, req Request) string {
	for _, strategy := range c.strategies {
		reply, err := strategy.Respond(ctx, req)
		if err == nil && reply != "" {
			return reply
		}
		if err != nil && c.log != nil {
			c.log.Warnf("response strategy failed, trying next tier: %v", err)
		}
	}
	return FallbackResponse
}

type generationStrategy struct {
	client *GenerationClient
}

func (s *generationStrategy) Respond(ctx context.Context, req Request) (string, error) {
	if s.client == nil {
		return "", nhatro_errors.ErrUpstreamUnavailable
	}
	prompt := BuildSystemPrompt(req.Listings, req.Criteria)
	return s.client.Complete(ctx, prompt, req.History, req.Message)
}

type templateStrategy struct{}

func (s *templateStrategy) Respond(ctx context.Context, req Request) (string, error) {
	return RuleBasedResponse(req.Message, req.Listings, req.Criteria), nil
}

type apologyStrategy struct{}

func (s *apologyStrategy) Respond(ctx context.Context, req Request) (string, error) {
	return FallbackResponse, nil
}
