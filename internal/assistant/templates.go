package assistant

import (
	"fmt"
	"sort"
	"strings"

	"nhatro-chat/internal/domain/listing"
)

// RuleBasedResponse answers a query from already-fetched listing data,
// keyed on the detected intent. It never fails; with no data it falls back
// to generic guidance per intent.
func RuleBasedResponse(message string, listings []ListingContext, criteria Criteria) string {
	lower := strings.ToLower(message)

	if containsAny(lower, "xin chào", "hello", "chào") {
		return "Xin chào! 👋 Tôi là trợ lý AI của NhaTro247.\n\n" +
			"Tôi có thể trả lời các câu hỏi về:\n" +
			"🏠 Loại hình phòng trọ\n" +
			"💰 Giá cả\n" +
			"📐 Diện tích\n" +
			"✨ Tiện ích\n" +
			"📍 Địa điểm\n\n" +
			"Bạn muốn hỏi gì về phòng trọ?"
	}

	if containsAny(lower, "loại hình", "loại", "kiểu", "dạng") {
		return typeResponse(listings, criteria)
	}
	if containsAny(lower, "giá", "tiền", "phí", "bao nhiêu tiền") {
		return priceResponse(listings, criteria)
	}
	if containsAny(lower, "diện tích", "rộng", "bao nhiêu m", "m²", "m2") {
		return areaResponse(listings, criteria)
	}
	if containsAny(lower, "tiện ích", "có gì", "wifi", "máy lạnh", "wc", "bếp", "xe") {
		return amenityResponse(listings, criteria)
	}
	if containsAny(lower, "địa điểm", "vị trí", "địa chỉ", "ở đâu", "quận", "phường", "khu vực") {
		return locationResponse(listings, criteria)
	}
	if containsAny(lower, "tìm", "phòng", "trọ", "cho thuê", "cần thuê", "có phòng") {
		return searchResponse(listings, criteria)
	}

	if len(listings) > 0 {
		return fmt.Sprintf("Cảm ơn bạn đã liên hệ! Tôi có thể trả lời:\n\n"+
			"🏠 Loại hình phòng trọ\n"+
			"💰 Giá cả (hiện có %d phòng trọ)\n"+
			"📐 Diện tích\n"+
			"✨ Tiện ích\n"+
			"📍 Địa điểm\n\n"+
			"Bạn muốn hỏi gì cụ thể?", len(listings))
	}
	return "Cảm ơn bạn đã liên hệ! Tôi có thể giúp bạn:\n\n" +
		"✅ Tìm phòng trọ phù hợp\n" +
		"✅ Tư vấn về loại hình, giá cả, diện tích, tiện ích, địa điểm\n" +
		"✅ Hướng dẫn sử dụng website\n\n" +
		"Bạn cần hỗ trợ gì?"
}

func typeResponse(listings []ListingContext, criteria Criteria) string {
	if len(listings) == 0 {
		return "🏠 Các loại hình phòng trọ:\n\n" +
			"• Phòng trọ: Phòng đơn, có thể có WC riêng/chung\n" +
			"• Nhà nguyên căn: Nhà riêng đầy đủ\n" +
			"• Chung cư: Căn hộ trong tòa nhà\n" +
			"• Phòng chung: Chia sẻ với người khác\n\n" +
			"Bạn muốn tìm loại hình nào?"
	}

	counts := map[string]int{}
	order := []string{}
	for _, l := range listings {
		if counts[l.Type] == 0 {
			order = append(order, l.Type)
		}
		counts[l.Type]++
	}

	var b strings.Builder
	b.WriteString("🏠 Các loại hình phòng trọ tại NhaTro247:\n\n")
	for _, t := range order {
		fmt.Fprintf(&b, "%s: %d phòng\n", listing.TypeLabel(t), counts[t])
	}

	if criteria.Type != "" {
		var filtered []ListingContext
		for _, l := range listings {
			if l.Type == criteria.Type {
				filtered = append(filtered, l)
			}
		}
		if len(filtered) > 0 {
			fmt.Fprintf(&b, "\nCó %d %s:\n", len(filtered), listing.TypeLabel(criteria.Type))
			for _, l := range firstN(filtered, 3) {
				fmt.Fprintf(&b, "\n🏠 %s\n📍 %s\n💰 %s/tháng | 📐 %.0fm²\n", l.Title, l.District, FormatPrice(l.Price), l.Area)
			}
		}
	}
	return b.String()
}

func priceResponse(listings []ListingContext, criteria Criteria) string {
	prices := []float64{}
	for _, l := range listings {
		if l.Price > 0 {
			prices = append(prices, l.Price)
		}
	}
	if len(listings) == 0 {
		return "💰 Giá phòng trọ rất đa dạng:\n\n" +
			"• Phòng trọ: 2-8 triệu/tháng\n" +
			"• Nhà nguyên căn: 8-20 triệu/tháng\n" +
			"• Chung cư: 5-15 triệu/tháng\n\n" +
			"Bạn muốn tìm phòng trọ giá bao nhiêu?"
	}
	if len(prices) == 0 {
		return "💰 Hiện chưa có thông tin giá phòng trọ. Vui lòng xem trên website."
	}

	minPrice, maxPrice, sum := prices[0], prices[0], 0.0
	for _, p := range prices {
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
		sum += p
	}
	avgPrice := sum / float64(len(prices))

	filtered := filterByPrice(listings, criteria)

	var b strings.Builder
	b.WriteString("💰 Giá phòng trọ tại NhaTro247:\n\n")
	fmt.Fprintf(&b, "📊 Mức giá: %s - %s/tháng\n", FormatPrice(minPrice), FormatPrice(maxPrice))
	fmt.Fprintf(&b, "📈 Giá trung bình: %s/tháng\n", FormatPrice(avgPrice))
	if len(filtered) > 0 {
		fmt.Fprintf(&b, "\nCó %d phòng trọ phù hợp:\n", len(filtered))
		for _, l := range firstN(filtered, 3) {
			fmt.Fprintf(&b, "\n🏠 %s\n📍 %s | 📐 %.0fm²\n💰 %s/tháng\n", l.Title, l.District, l.Area, FormatPrice(l.Price))
		}
	}
	return b.String()
}

func areaResponse(listings []ListingContext, criteria Criteria) string {
	if len(listings) == 0 {
		return "📐 Diện tích phòng trọ thường từ:\n\n" +
			"• Phòng trọ: 15-30m²\n" +
			"• Nhà nguyên căn: 40-100m²\n" +
			"• Chung cư: 30-70m²\n\n" +
			"Bạn cần diện tích bao nhiêu?"
	}
	areas := []float64{}
	for _, l := range listings {
		if l.Area > 0 {
			areas = append(areas, l.Area)
		}
	}
	if len(areas) == 0 {
		return "📐 Hiện chưa có thông tin diện tích phòng trọ. Vui lòng xem trên website."
	}

	minArea, maxArea, sum := areas[0], areas[0], 0.0
	for _, a := range areas {
		if a < minArea {
			minArea = a
		}
		if a > maxArea {
			maxArea = a
		}
		sum += a
	}

	filtered := listings
	if criteria.MinArea != nil || criteria.MaxArea != nil {
		filtered = nil
		for _, l := range listings {
			if criteria.MinArea != nil && l.Area < *criteria.MinArea {
				continue
			}
			if criteria.MaxArea != nil && l.Area > *criteria.MaxArea {
				continue
			}
			filtered = append(filtered, l)
		}
	}

	var b strings.Builder
	b.WriteString("📐 Diện tích phòng trọ:\n\n")
	fmt.Fprintf(&b, "📊 Mức diện tích: %.0f - %.0fm²\n", minArea, maxArea)
	fmt.Fprintf(&b, "📈 Diện tích trung bình: %.0fm²\n", sum/float64(len(areas)))
	if len(filtered) > 0 {
		fmt.Fprintf(&b, "\nCó %d phòng trọ phù hợp:\n", len(filtered))
		for _, l := range firstN(filtered, 3) {
			fmt.Fprintf(&b, "\n🏠 %s\n📍 %s | 💰 %s/tháng\n📐 %.0fm²\n", l.Title, l.District, FormatPrice(l.Price), l.Area)
		}
	}
	return b.String()
}

func amenityResponse(listings []ListingContext, criteria Criteria) string {
	if len(listings) == 0 {
		return "✨ Các tiện ích phổ biến:\n\n" +
			"📶 Wifi\n❄️ Máy lạnh\n🚿 WC riêng/WC chung\n🍳 Bếp\n🏍️ Chỗ để xe\n" +
			"🧺 Máy giặt\n🏢 Thang máy\n🔒 Bảo vệ 24/7\n\n" +
			"Bạn cần tiện ích gì?"
	}

	counts := map[string]int{}
	for _, l := range listings {
		for _, a := range l.Amenities {
			counts[a]++
		}
	}
	type amenityCount struct {
		tag   string
		count int
	}
	sorted := make([]amenityCount, 0, len(counts))
	for tag, count := range counts {
		sorted = append(sorted, amenityCount{tag, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].tag < sorted[j].tag
	})

	var b strings.Builder
	b.WriteString("✨ Tiện ích có sẵn:\n\n")
	for _, ac := range sorted {
		percentage := ac.count * 100 / len(listings)
		fmt.Fprintf(&b, "%s: %d phòng (%d%%)\n", listing.AmenityLabel(ac.tag), ac.count, percentage)
	}

	if len(criteria.Amenities) > 0 {
		var matching []ListingContext
		for _, l := range listings {
			if hasAllAmenities(l, criteria.Amenities) {
				matching = append(matching, l)
			}
		}
		if len(matching) > 0 {
			fmt.Fprintf(&b, "\nCó %d phòng trọ có các tiện ích bạn cần:\n", len(matching))
			for _, l := range firstN(matching, 3) {
				fmt.Fprintf(&b, "\n🏠 %s\n📍 %s | 💰 %s/tháng\n✨ %s\n", l.Title, l.District, FormatPrice(l.Price), strings.Join(l.AmenitiesLabels, ", "))
			}
		}
	}
	return b.String()
}

func locationResponse(listings []ListingContext, criteria Criteria) string {
	if len(listings) == 0 {
		return "📍 Chúng tôi có phòng trọ ở nhiều quận tại TP.HCM:\n\n" +
			"Quận 1, Quận 3, Quận 7, Bình Thạnh, Tân Bình, Tân Phú...\n\n" +
			"Bạn muốn tìm phòng trọ ở quận nào?"
	}

	var b strings.Builder
	b.WriteString("📍 Các khu vực có phòng trọ:\n\n")

	if criteria.District != "" {
		var inDistrict []ListingContext
		for _, l := range listings {
			if strings.Contains(strings.ToLower(l.District), strings.ToLower(criteria.District)) {
				inDistrict = append(inDistrict, l)
			}
		}
		if len(inDistrict) > 0 {
			fmt.Fprintf(&b, "Có %d phòng trọ ở %s:\n\n", len(inDistrict), criteria.District)
			for _, l := range firstN(inDistrict, 3) {
				fmt.Fprintf(&b, "🏠 %s\n📍 %s, %s\n💰 %s/tháng | 📐 %.0fm²\n\n", l.Title, l.Address, l.District, FormatPrice(l.Price), l.Area)
			}
		} else {
			fmt.Fprintf(&b, "Hiện chưa có phòng trọ ở %s.\n", criteria.District)
		}
		return b.String()
	}

	counts := map[string]int{}
	order := []string{}
	for _, l := range listings {
		if counts[l.District] == 0 {
			order = append(order, l.District)
		}
		counts[l.District]++
	}
	for _, d := range firstN(order, 10) {
		fmt.Fprintf(&b, "📍 %s: %d phòng trọ\n", d, counts[d])
	}
	return b.String()
}

func searchResponse(listings []ListingContext, criteria Criteria) string {
	filtered := listings
	if criteria.District != "" {
		var next []ListingContext
		for _, l := range filtered {
			if strings.Contains(strings.ToLower(l.District), strings.ToLower(criteria.District)) {
				next = append(next, l)
			}
		}
		filtered = next
	}
	if criteria.Type != "" {
		var next []ListingContext
		for _, l := range filtered {
			if l.Type == criteria.Type {
				next = append(next, l)
			}
		}
		filtered = next
	}
	filtered = filterByPrice(filtered, criteria)

	if len(filtered) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "🔍 Tìm thấy %d phòng trọ:\n\n", len(filtered))
		for _, l := range firstN(filtered, 5) {
			fmt.Fprintf(&b, "🏠 %s\n📍 %s, %s\n💰 %s/tháng | 📐 %.0fm²\n🏠 %s\n", l.Title, l.Address, l.District, FormatPrice(l.Price), l.Area, l.TypeLabel)
			if len(l.AmenitiesLabels) > 0 {
				fmt.Fprintf(&b, "✨ %s\n", strings.Join(firstN(l.AmenitiesLabels, 3), ", "))
			}
			b.WriteString("\n")
		}
		return b.String()
	}

	return "🔍 Để tìm phòng trọ phù hợp:\n\n" +
		"1. Sử dụng thanh tìm kiếm\n" +
		"2. Sử dụng bộ lọc (giá, vị trí, diện tích, loại hình, tiện ích)\n" +
		"3. Xem bản đồ\n\n" +
		"Bạn muốn tìm phòng trọ như thế nào?"
}

func filterByPrice(listings []ListingContext, criteria Criteria) []ListingContext {
	if criteria.MinPrice == nil && criteria.MaxPrice == nil {
		return listings
	}
	var out []ListingContext
	for _, l := range listings {
		if criteria.MinPrice != nil && l.Price < *criteria.MinPrice {
			continue
		}
		if criteria.MaxPrice != nil && l.Price > *criteria.MaxPrice {
			continue
		}
		out = append(out, l)
	}
	return out
}

func hasAllAmenities(l ListingContext, wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, a := range l.Amenities {
			if a == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func firstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// FormatPrice renders a VND amount the way listings are quoted: millions as
// "X.Y triệu", thousands as "Xk".
func FormatPrice(price float64) string {
	if price >= 1_000_000 {
		return fmt.Sprintf("%.1f triệu", price/1_000_000)
	}
	if price >= 1_000 {
		return fmt.Sprintf("%.0fk", price/1_000)
	}
	return fmt.Sprintf("%.0fđ", price)
}
