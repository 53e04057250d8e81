package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryPriceCapAndDistrict(t *testing.T) {
	criteria := ParseQuery("phòng dưới 3 triệu ở Quận 1")

	assert.Equal(t, "Quận 1", criteria.District)
	require.NotNil(t, criteria.MaxPrice)
	assert.InDelta(t, 3_000_000, *criteria.MaxPrice, 1)
	assert.Nil(t, criteria.MinPrice)
	assert.Equal(t, "room", criteria.Type)
}

func TestParseQueryAreaRange(t *testing.T) {
	criteria := ParseQuery("cần phòng từ 20 đến 30m2")

	require.NotNil(t, criteria.MinArea)
	require.NotNil(t, criteria.MaxArea)
	assert.InDelta(t, 20, *criteria.MinArea, 0.01)
	assert.InDelta(t, 30, *criteria.MaxArea, 0.01)
}

func TestParseQueryPriceRange(t *testing.T) {
	criteria := ParseQuery("tìm phòng từ 2 đến 4 triệu")

	require.NotNil(t, criteria.MinPrice)
	require.NotNil(t, criteria.MaxPrice)
	assert.InDelta(t, 2_000_000, *criteria.MinPrice, 1)
	assert.InDelta(t, 4_000_000, *criteria.MaxPrice, 1)
}

func TestParseQueryBarePriceGetsTolerance(t *testing.T) {
	criteria := ParseQuery("phòng khoảng 3 triệu")

	require.NotNil(t, criteria.MinPrice)
	require.NotNil(t, criteria.MaxPrice)
	assert.InDelta(t, 2_400_000, *criteria.MinPrice, 1)
	assert.InDelta(t, 3_600_000, *criteria.MaxPrice, 1)
}

func TestParseQueryThousandSuffix(t *testing.T) {
	criteria := ParseQuery("phòng dưới 800k")

	require.NotNil(t, criteria.MaxPrice)
	assert.InDelta(t, 800_000, *criteria.MaxPrice, 1)
}

func TestParseQueryLongDistrictNamesWin(t *testing.T) {
	criteria := ParseQuery("thuê nhà ở quận 12")
	assert.Equal(t, "Quận 12", criteria.District)
}

func TestParseQueryAmenities(t *testing.T) {
	criteria := ParseQuery("phòng có máy lạnh, wifi và chỗ để xe")

	assert.Contains(t, criteria.Amenities, "ac")
	assert.Contains(t, criteria.Amenities, "wifi")
	assert.Contains(t, criteria.Amenities, "parking")
}

func TestParseQueryTypePriority(t *testing.T) {
	assert.Equal(t, "room", ParseQuery("tìm phòng trọ giá rẻ").Type)
	assert.Equal(t, "house", ParseQuery("thuê nhà nguyên căn").Type)
	assert.Equal(t, "apartment", ParseQuery("cần chung cư gần trung tâm").Type)
}

func TestParseQueryNoSignalYieldsEmptyCriteria(t *testing.T) {
	criteria := ParseQuery("xin chào bạn")
	assert.True(t, criteria.Empty())
}
