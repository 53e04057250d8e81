package assistant

import (
	"encoding/json"
	"fmt"

	"nhatro-chat/internal/domain/listing"
)

// maxContextListings caps how many listings are embedded in a prompt.
const maxContextListings = 20

// ListingContext is the projection of a listing that gets embedded into the
// generation prompt and consumed by the template tier.
type ListingContext struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	District        string   `json:"district"`
	Ward            string   `json:"ward"`
	Price           float64  `json:"price"`
	Area            float64  `json:"area"`
	Type            string   `json:"type"`
	TypeLabel       string   `json:"typeLabel"`
	Amenities       []string `json:"amenities"`
	AmenitiesLabels []string `json:"amenitiesLabels"`
	Description     string   `json:"description"`
}

// BuildListingContext merges matched and recent listings, deduplicates by
// identity keeping first occurrence, and caps the result.
func BuildListingContext(matched, recent []listing.Listing) []ListingContext {
	seen := make(map[string]bool)
	out := make([]ListingContext, 0, maxContextListings)
	for _, l := range append(append([]listing.Listing{}, matched...), recent...) {
		id := l.ID.String()
		if seen[id] {
			continue
		}
		seen[id] = true

		title := l.Title
		if title == "" {
			title = "Không có tiêu đề"
		}
		labels := make([]string, 0, len(l.Amenities))
		for _, a := range l.Amenities {
			labels = append(labels, listing.AmenityLabel(a))
		}
		description := l.Description
		if len([]rune(description)) > 150 {
			description = string([]rune(description)[:150])
		}

		out = append(out, ListingContext{
			ID:              id,
			Title:           title,
			Address:         l.Address,
			City:            l.City,
			District:        l.District,
			Ward:            l.Ward,
			Price:           l.Price,
			Area:            l.Area,
			Type:            l.Type,
			TypeLabel:       listing.TypeLabel(l.Type),
			Amenities:       l.Amenities,
			AmenitiesLabels: labels,
			Description:     description,
		})
		if len(out) == maxContextListings {
			break
		}
	}
	return out
}

// BuildSystemPrompt renders the constrained instruction block embedding the
// listing context and, when present, the detected criteria.
func BuildSystemPrompt(listings []ListingContext, criteria Criteria) string {
	listingsJSON, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return "Bạn là trợ lý AI của NhaTro247. Trả lời các câu hỏi về phòng trọ."
	}

	prompt := fmt.Sprintf(`Bạn là trợ lý AI chuyên nghiệp của hệ thống tìm phòng trọ NhaTro247.
Nhiệm vụ của bạn là trả lời CHÍNH XÁC và CHI TIẾT các câu hỏi về phòng trọ.

THÔNG TIN CÁC PHÒNG TRỌ HIỆN CÓ (%d phòng):
%s

QUY TẮC TRẢ LỜI CHẶT CHẼ:
1. Trả lời bằng tiếng Việt, thân thiện nhưng CHÍNH XÁC
2. LUÔN trả lời TRỰC TIẾP vào câu hỏi, không lan man
3. Sử dụng THÔNG TIN THỰC TẾ từ danh sách phòng trọ trên, KHÔNG bịa đặt
4. Khi hỏi về LOẠI HÌNH: trả lời cụ thể (phòng trọ, nhà nguyên căn, chung cư, phòng chung)
5. Khi hỏi về GIÁ CẢ: đưa ra mức giá CỤ THỂ từ danh sách (ví dụ: "Từ 3-5 triệu/tháng")
6. Khi hỏi về DIỆN TÍCH: đưa ra diện tích CỤ THỂ (ví dụ: "Từ 20-30m²")
7. Khi hỏi về TIỆN ÍCH: liệt kê CỤ THỂ các tiện ích có sẵn (wifi, máy lạnh, WC riêng...)
8. Khi hỏi về ĐỊA ĐIỂM: liệt kê CỤ THỂ các quận/phường có phòng trọ
9. Nếu có phòng trọ phù hợp, đề xuất 2-3 phòng với thông tin: tên, địa chỉ, giá, diện tích, quận
10. Nếu không có phòng phù hợp, gợi ý tiêu chí tìm kiếm khác

ĐỊNH DẠNG TRẢ LỜI:
- Ngắn gọn, súc tích (150-250 từ)
- Sử dụng emoji phù hợp (📍 vị trí, 💰 giá, 📐 diện tích, ✨ tiện ích, 🏠 loại hình)
- Liệt kê số liệu CỤ THỂ từ danh sách
- Không nói chung chung, luôn có ví dụ cụ thể`, len(listings), string(listingsJSON))

	if !criteria.Empty() {
		criteriaJSON, err := json.MarshalIndent(criteria, "", "  ")
		if err == nil {
			prompt += fmt.Sprintf(`

NGƯỜI DÙNG ĐANG TÌM KIẾM:
%s
Hãy ưu tiên các phòng trọ phù hợp với tiêu chí này và trả lời CHÍNH XÁC.`, string(criteriaJSON))
		}
	}

	return prompt
}
