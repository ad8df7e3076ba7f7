package restaurant

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamapp/jam-admin/internal/openinghours"
)

func validValues() url.Values {
	return url.Values{
		"name":            {"  The Jam Bar "},
		"website":         {"https://jam.example"},
		"featured_image":  {"https://jam.example/cover.jpg"},
		"logo":            {"https://jam.example/logo.png"},
		"price":           {"$$"},
		"age_restriction": {"20"},
		"is_facilitated":  {"on"},
		"address":         {"Storgata 1, Oslo"},
		"activities":      {"Quiz", "Darts", "Quiz", " "},
		"servings":        {"Beer"},
		"latitude":        {"59.9139"},
		"longitude":       {"10.7522"},
	}
}

func TestDecodeForm_Valid(t *testing.T) {
	f, err := DecodeForm(validValues())
	require.NoError(t, err)

	assert.Equal(t, "The Jam Bar", f.Name)
	assert.Equal(t, 20, f.AgeRestriction)
	assert.True(t, f.IsFacilitated)
	assert.Equal(t, []string{"Quiz", "Darts"}, f.Activities)
	assert.Equal(t, []string{"Beer"}, f.Servings)
	assert.True(t, f.HasActivity("Darts"))
	assert.False(t, f.HasServing("Wine"))
	assert.Equal(t, 0, f.OpeningHours.Len())
}

func TestDecodeForm_EmptyAgeIsZero(t *testing.T) {
	values := validValues()
	values.Set("age_restriction", "")

	f, err := DecodeForm(values)
	require.NoError(t, err)
	assert.Equal(t, 0, f.AgeRestriction)
}

func TestDecodeForm_CollectsEveryProblem(t *testing.T) {
	values := validValues()
	values.Set("name", "   ")
	values.Set("age_restriction", "twenty")
	values.Set("latitude", "123")
	values.Set("longitude", "east")

	f, err := DecodeForm(values)
	require.Error(t, err)
	require.NotNil(t, f, "form must be returned for re-rendering")

	msgs := Messages(err)
	assert.Len(t, msgs, 4)
	assert.Contains(t, msgs, "Age restriction must be a whole number")
	assert.Contains(t, msgs, "Name is required")
	assert.Contains(t, msgs, "Latitude must be a valid latitude")
	assert.Contains(t, msgs, "Longitude must be a valid longitude")
	assert.Equal(t, "east", f.Longitude)
}

func TestDecodeForm_AgeOutOfRange(t *testing.T) {
	values := validValues()
	values.Set("age_restriction", "-1")

	_, err := DecodeForm(values)
	require.Error(t, err)
	assert.Equal(t, []string{"Age restriction must be at least 0"}, Messages(err))
}

func TestDecodeForm_OpeningHoursKeepRowOrder(t *testing.T) {
	values := validValues()
	values["hours_day"] = []string{"sunday", "monday", "Late night"}
	values.Set("hours_open_sunday", "12:00")
	values.Set("hours_close_sunday", "20:00")
	values.Set("hours_open_monday", "08:00")
	values.Set("hours_open_Late night", "23:00")
	values.Set("hours_close_Late night", "03:00")

	f, err := DecodeForm(values)
	require.NoError(t, err)

	assert.Equal(t, []string{"sunday", "monday", "Late night"}, f.OpeningHours.Days())
	assert.Equal(t, "Sunday 12:00-20:00\nMonday 08:00-\nLate night 23:00-03:00", openinghours.Format(&f.OpeningHours))
}

func TestDecodeForm_HoursAreNotValidated(t *testing.T) {
	values := validValues()
	values["hours_day"] = []string{"monday"}
	values.Set("hours_open_monday", "late")
	values.Set("hours_close_monday", "early")

	f, err := DecodeForm(values)
	require.NoError(t, err)
	d, _ := f.OpeningHours.Get("monday")
	assert.Equal(t, openinghours.DayInterval{Open: "late", Close: "early"}, d)
}

func TestDecodeForm_NewDayRow(t *testing.T) {
	values := validValues()
	values.Set("new_day", "  holiday ")
	values.Set("new_day_open", "10:00")

	f, err := DecodeForm(values)
	require.NoError(t, err)
	assert.Equal(t, "Holiday 10:00-", openinghours.Format(&f.OpeningHours))
}

func TestForm_Apply(t *testing.T) {
	f, err := DecodeForm(validValues())
	require.NoError(t, err)

	r := New()
	require.NoError(t, f.Apply(r))

	assert.Equal(t, "The Jam Bar", r.Name)
	assert.Equal(t, "Storgata 1, Oslo", r.Address)
	require.True(t, r.HasLocation())
	assert.InDelta(t, 59.9139, *r.Latitude, 1e-9)
	assert.Equal(t, "POINT(10.7522 59.9139)", r.Location())
	require.NotNil(t, r.OpeningHours)
	assert.Equal(t, 0, r.OpeningHours.Len(), "the whole submitted week replaces the old one")
}

func TestForm_ApplyClearsCoordinates(t *testing.T) {
	values := validValues()
	values.Set("latitude", "")
	values.Set("longitude", "")
	f, err := DecodeForm(values)
	require.NoError(t, err)

	lat, long := 1.0, 2.0
	r := New()
	r.Latitude, r.Longitude = &lat, &long
	require.NoError(t, f.Apply(r))

	assert.Nil(t, r.Latitude)
	assert.Nil(t, r.Longitude)
	assert.Equal(t, "", r.Location())
}

func TestNewForm_HasSevenBlankDays(t *testing.T) {
	f := NewForm()
	assert.Equal(t, 7, f.OpeningHours.Len())
}

func TestFormFromRestaurant(t *testing.T) {
	t.Run("no recorded hours gives zero rows", func(t *testing.T) {
		r := New()
		r.OpeningHours = nil
		f := FormFromRestaurant(r)
		assert.Equal(t, 0, f.OpeningHours.Len())
	})

	t.Run("recorded hours are kept in order", func(t *testing.T) {
		hours := openinghours.Hydrate([]byte(`{"friday":{"open":"16:00","close":"02:00"},"monday":{"open":"","close":""}}`))
		lat := 63.43
		r := New()
		r.Name = "Bar"
		r.OpeningHours = &hours
		r.Latitude = &lat
		r.Activities = []string{"Quiz"}

		f := FormFromRestaurant(r)
		assert.Equal(t, []string{"friday", "monday"}, f.OpeningHours.Days())
		assert.Equal(t, "63.43", f.Latitude)
		assert.Equal(t, "", f.Longitude)
		assert.True(t, f.HasActivity("Quiz"))

		f.Activities[0] = "Changed"
		assert.Equal(t, "Quiz", r.Activities[0], "form must not alias the entity")
	})
}

func TestMessages(t *testing.T) {
	assert.Nil(t, Messages(nil))
	assert.Equal(t, []string{assert.AnError.Error()}, Messages(assert.AnError))
}
