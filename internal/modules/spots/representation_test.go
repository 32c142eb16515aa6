package spots

import (
	"testing"
	"time"

	"studyspot/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testSpot() *domain.StudySpot {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.StudySpot{
		ID:        uuid.MustParse("0b3b3b3b-0000-4000-8000-000000000001"),
		Name:      "Hash Cafe",
		CreatedAt: created,
		UpdatedAt: created,
		Address: domain.Address{
			Street: "1 Main St", City: "New York", State: "NY", Zip: "10001",
			Neighborhood: "Chelsea",
		},
		Amenities: domain.Amenities{
			WifiAvailable: true, Outlets: true, Seating: 12,
			Refreshments: "coffee", Environment: []string{"quiet", "indoor"},
		},
		Hours: []domain.HoursEntry{
			{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
			{DayOfWeek: 2, OpenTime: "09:00", CloseTime: "17:00"},
		},
	}
}

func TestBuildResourceHours(t *testing.T) {
	res := BuildResource(testSpot())

	require.Len(t, res.Hours, 7)
	require.NotNil(t, res.Hours["monday"])
	require.Equal(t, "09:00", res.Hours["monday"].Open)
	require.Equal(t, "17:00", res.Hours["monday"].Close)
	for _, closed := range []string{"sunday", "wednesday", "thursday", "friday", "saturday"} {
		require.Nil(t, res.Hours[closed], closed)
	}

	require.Equal(t, "/studyspots/"+res.ID.String(), res.Links.Self)
	require.Equal(t, res.Links.Self+"/reviews", res.Links.Reviews)
}

func TestETagStableAcrossRebuilds(t *testing.T) {
	a := BuildResource(testSpot()).ETag()
	b := BuildResource(testSpot()).ETag()
	require.Equal(t, a, b)

	// Quoted per RFC 9110 so it can be echoed back in If-None-Match verbatim.
	require.True(t, len(a) > 2 && a[0] == '"' && a[len(a)-1] == '"')
}

func TestETagChangesOnNestedField(t *testing.T) {
	base := BuildResource(testSpot()).ETag()

	spot := testSpot()
	spot.Amenities.Seating = 13
	require.NotEqual(t, base, BuildResource(spot).ETag())

	spot = testSpot()
	spot.Address.Zip = "10002"
	require.NotEqual(t, base, BuildResource(spot).ETag())

	spot = testSpot()
	spot.Hours = spot.Hours[:1]
	require.NotEqual(t, base, BuildResource(spot).ETag())
}

func TestETagMatches(t *testing.T) {
	etag := `"abc123"`

	require.True(t, etagMatches(etag, etag))
	require.True(t, etagMatches(`"zzz", "abc123"`, etag))
	require.True(t, etagMatches(`W/"abc123"`, etag))
	require.True(t, etagMatches("*", etag))
	require.False(t, etagMatches("", etag))
	require.False(t, etagMatches(`"other"`, etag))
}
