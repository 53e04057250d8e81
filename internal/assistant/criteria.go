package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Criteria is the structured form of a free-text query. Unset numeric bounds
// stay nil; unset strings stay empty.
type Criteria struct {
	District  string   `json:"district,omitempty"`
	City      string   `json:"city,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	MinArea   *float64 `json:"minArea,omitempty"`
	MaxArea   *float64 `json:"maxArea,omitempty"`
	Type      string   `json:"type,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// Empty reports whether no criterion was detected.
func (c Criteria) Empty() bool {
	return c.District == "" && c.City == "" && c.Type == "" &&
		c.MinPrice == nil && c.MaxPrice == nil &&
		c.MinArea == nil && c.MaxArea == nil &&
		len(c.Amenities) == 0
}

// Known districts of Hồ Chí Minh City, matched as lower-case substrings.
var districts = []string{
	"quận 10", "quận 11", "quận 12",
	"quận 1", "quận 2", "quận 3", "quận 4", "quận 5", "quận 6", "quận 7",
	"quận 8", "quận 9",
	"bình thạnh", "tân bình", "tân phú", "phú nhuận", "gò vấp", "bình tân",
	"thủ đức", "hóc môn", "củ chi", "nhà bè", "cần giờ",
}

type pricePattern struct {
	re         *regexp.Regexp
	multiplier float64
}

// Tried in order; the first match wins and later patterns are skipped.
var pricePatterns = []pricePattern{
	{regexp.MustCompile(`(?i)từ\s*(\d+)\s*đến\s*(\d+)\s*(?:triệu|tr)`), 1_000_000},
	{regexp.MustCompile(`(?i)(\d+)\s*đến\s*(\d+)\s*(?:triệu|tr)`), 1_000_000},
	{regexp.MustCompile(`(?i)dưới\s*(\d+)\s*(?:triệu|tr)`), 1_000_000},
	{regexp.MustCompile(`(?i)trên\s*(\d+)\s*(?:triệu|tr)`), 1_000_000},
	{regexp.MustCompile(`(?i)khoảng\s*(\d+)\s*(?:triệu|tr)`), 1_000_000},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:triệu|tr)`), 1_000_000},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:nghìn|k)`), 1_000},
}

type areaPattern struct {
	re      *regexp.Regexp
	maxOnly bool
	minOnly bool
	single  bool
}

var areaPatterns = []areaPattern{
	{re: regexp.MustCompile(`(?i)(\d+)\s*đến\s*(\d+)\s*m[²2]`)},
	{re: regexp.MustCompile(`(?i)từ\s*(\d+)\s*đến\s*(\d+)\s*m[²2]`)},
	{re: regexp.MustCompile(`(?i)dưới\s*(\d+)\s*m[²2]`), maxOnly: true},
	{re: regexp.MustCompile(`(?i)trên\s*(\d+)\s*m[²2]`), minOnly: true},
	{re: regexp.MustCompile(`(?i)(\d+)\s*m[²2]`), single: true},
}

// Amenity tags accumulate: every tag with a matching keyword is included.
var amenityKeywords = []struct {
	tag      string
	keywords []string
}{
	{"wifi", []string{"wifi", "internet", "mạng"}},
	{"ac", []string{"máy lạnh", "điều hòa", "ac", "lạnh"}},
	{"private_bathroom", []string{"wc riêng", "toilet riêng", "nhà vệ sinh riêng", "vệ sinh riêng"}},
	{"parking", []string{"chỗ để xe", "để xe", "parking", "bãi đỗ", "gửi xe"}},
	{"kitchen", []string{"bếp", "nấu ăn", "bếp riêng"}},
	{"washing_machine", []string{"máy giặt", "giặt"}},
	{"elevator", []string{"thang máy", "elevator"}},
	{"security", []string{"bảo vệ", "an ninh", "security"}},
}

// ParseQuery extracts search criteria from a free-text message. It never
// fails; unmatched fields are simply left unset.
func ParseQuery(message string) Criteria {
	criteria := Criteria{}
	lower := strings.ToLower(message)

	for _, district := range districts {
		if strings.Contains(lower, district) {
			criteria.District = titleCase(strings.Replace(district, "quận ", "Quận ", 1))
			break
		}
	}

	for _, p := range pricePatterns {
		match := p.re.FindStringSubmatch(message)
		if match == nil {
			continue
		}
		first := parseNumber(match[1]) * p.multiplier
		switch {
		case len(match) > 2 && match[2] != "":
			second := parseNumber(match[2]) * p.multiplier
			criteria.MinPrice = &first
			criteria.MaxPrice = &second
		case strings.Contains(lower, "dưới"):
			criteria.MaxPrice = &first
		case strings.Contains(lower, "trên"), strings.Contains(lower, "từ"):
			criteria.MinPrice = &first
		default:
			// A bare amount is read as an approximate target.
			min := first * 0.8
			max := first * 1.2
			criteria.MinPrice = &min
			criteria.MaxPrice = &max
		}
		break
	}

	for _, p := range areaPatterns {
		match := p.re.FindStringSubmatch(message)
		if match == nil {
			continue
		}
		first := parseNumber(match[1])
		switch {
		case p.single:
			min := first * 0.9
			max := first * 1.1
			criteria.MinArea = &min
			criteria.MaxArea = &max
		case p.maxOnly:
			criteria.MaxArea = &first
		case p.minOnly:
			criteria.MinArea = &first
		default:
			second := parseNumber(match[2])
			criteria.MinArea = &first
			criteria.MaxArea = &second
		}
		break
	}

	for _, entry := range amenityKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				criteria.Amenities = append(criteria.Amenities, entry.tag)
				break
			}
		}
	}

	// Type is decided by the first matching group in priority order, so at
	// most one type is ever set.
	switch {
	case containsAny(lower, "phòng trọ", "trọ", "phòng"):
		criteria.Type = "room"
	case containsAny(lower, "nhà nguyên căn", "nhà riêng"):
		criteria.Type = "house"
	case containsAny(lower, "chung cư", "căn hộ"):
		criteria.Type = "apartment"
	case containsAny(lower, "chung", "share"):
		criteria.Type = "shared"
	}

	return criteria
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func parseNumber(s string) float64 {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return float64(n)
}

// titleCase upper-cases the first rune of each whitespace-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
