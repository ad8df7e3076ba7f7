package restaurant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New()

	assert.True(t, IsValidID(r.ID))
	require.NotNil(t, r.OpeningHours)
	assert.Equal(t, 7, r.OpeningHours.Len())
	assert.NotNil(t, r.Activities)
	assert.NotNil(t, r.Servings)
	assert.False(t, r.HasLocation())

	assert.NotEqual(t, r.ID, New().ID)
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("6f1c1a52-6d0e-4a57-9d51-2f8f3e0e8a11"))
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("42"))
	assert.False(t, IsValidID("add"))
}

func TestLocation(t *testing.T) {
	lat, long := 59.9139, 10.7522
	r := &Restaurant{Latitude: &lat}
	assert.Equal(t, "", r.Location(), "incomplete location renders nothing")

	r.Longitude = &long
	assert.Equal(t, "POINT(10.7522 59.9139)", r.Location())
}

func TestFormattedOpeningHours(t *testing.T) {
	r := &Restaurant{}
	assert.Equal(t, "N/A", r.FormattedOpeningHours())

	r = New()
	assert.Equal(t, "Monday -\nTuesday -\nWednesday -\nThursday -\nFriday -\nSaturday -\nSunday -", r.FormattedOpeningHours())
}

func TestHasTag(t *testing.T) {
	assert.True(t, HasTag([]string{"Beer", "Wine"}, "Wine"))
	assert.False(t, HasTag([]string{"Beer"}, "beer"))
	assert.False(t, HasTag(nil, "Beer"))
}
