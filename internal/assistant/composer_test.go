package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"nhatro-chat/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeListings(n int) []listing.Listing {
	out := make([]listing.Listing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, listing.Listing{
			ID:       uuid.New(),
			Title:    fmt.Sprintf("Phòng %d", i),
			District: "Quận 1",
			Price:    3_000_000,
			Area:     20,
			Type:     listing.TypeRoom,
			Status:   listing.StatusPublished,
		})
	}
	return out
}

func contextListing(title, district string, price, area float64) ListingContext {
	return ListingContext{
		ID:        title,
		Title:     title,
		District:  district,
		Price:     price,
		Area:      area,
		Type:      "room",
		TypeLabel: "Phòng trọ",
	}
}

func TestComposeFallsThroughToTemplatesWithoutGeneration(t *testing.T) {
	composer := NewComposer(nil, nil)

	reply := composer.Compose(context.Background(), Request{Message: "xin chào"})
	assert.Contains(t, reply, "Xin chào")
	assert.NotEqual(t, FallbackResponse, reply)
}

func TestComposeFallsThroughOnGenerationFailure(t *testing.T) {
	// No API key makes the generation tier fail immediately.
	composer := NewComposer(NewGenerationClient("", "gpt-3.5-turbo"), nil)

	reply := composer.Compose(context.Background(), Request{Message: "giá phòng thế nào?"})
	assert.Contains(t, reply, "💰")
}

func TestTemplateGreeting(t *testing.T) {
	reply := RuleBasedResponse("xin chào", nil, Criteria{})
	assert.Contains(t, reply, "Xin chào")
}

func TestTemplatePriceSummary(t *testing.T) {
	listings := []ListingContext{
		contextListing("Phòng A", "Quận 1", 2_000_000, 20),
		contextListing("Phòng B", "Quận 3", 4_000_000, 25),
	}

	reply := RuleBasedResponse("giá phòng bao nhiêu?", listings, Criteria{})
	assert.Contains(t, reply, "2.0 triệu")
	assert.Contains(t, reply, "4.0 triệu")
	assert.Contains(t, reply, "3.0 triệu") // average
}

func TestTemplateSearchFiltersByDistrict(t *testing.T) {
	listings := []ListingContext{
		contextListing("Phòng A", "Quận 1", 2_000_000, 20),
		contextListing("Phòng B", "Quận 7", 4_000_000, 25),
	}

	reply := RuleBasedResponse("cần thuê phòng", listings, Criteria{District: "Quận 1"})
	assert.Contains(t, reply, "Tìm thấy 1 phòng trọ")
	assert.Contains(t, reply, "Phòng A")
	assert.NotContains(t, reply, "Phòng B")
}

func TestTemplateLocationQuestionListsDistrictMatches(t *testing.T) {
	listings := []ListingContext{
		contextListing("Phòng A", "Quận 1", 2_000_000, 20),
		contextListing("Phòng B", "Quận 7", 4_000_000, 25),
	}

	reply := RuleBasedResponse("có phòng ở quận 1 không?", listings, Criteria{District: "Quận 1"})
	assert.Contains(t, reply, "Có 1 phòng trọ ở Quận 1")
}

func TestTemplateSearchNoMatchesGivesGuidance(t *testing.T) {
	reply := RuleBasedResponse("cần thuê phòng", nil, Criteria{District: "Quận 4"})
	assert.Contains(t, reply, "bộ lọc")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "3.5 triệu", FormatPrice(3_500_000))
	assert.Equal(t, "800k", FormatPrice(800_000))
	assert.Equal(t, "500đ", FormatPrice(500))
}

func TestBuildListingContextDedupesAndCaps(t *testing.T) {
	matched := makeListings(5)
	recent := append(makeListings(18), matched[0])

	contexts := BuildListingContext(matched, recent)
	require.Len(t, contexts, maxContextListings)

	seen := map[string]bool{}
	for _, c := range contexts {
		assert.False(t, seen[c.ID], "duplicate listing %s in context", c.ID)
		seen[c.ID] = true
	}
}

func TestBuildSystemPromptEmbedsCriteria(t *testing.T) {
	max := 3_000_000.0
	prompt := BuildSystemPrompt(nil, Criteria{District: "Quận 1", MaxPrice: &max})

	assert.True(t, strings.Contains(prompt, "NGƯỜI DÙNG ĐANG TÌM KIẾM"))
	assert.Contains(t, prompt, "Quận 1")
}

func TestBuildSystemPromptOmitsEmptyCriteria(t *testing.T) {
	prompt := BuildSystemPrompt(nil, Criteria{})
	assert.False(t, strings.Contains(prompt, "NGƯỜI DÙNG ĐANG TÌM KIẾM"))
}
