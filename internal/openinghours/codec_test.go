package openinghours

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHydrate_AbsentYieldsEmptyWeek(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("null"), []byte("  null  ")} {
		h := Hydrate(raw)
		assert.Equal(t, 0, h.Len(), "input %q", raw)
	}

	// Not the same as a new entity's week.
	assert.Equal(t, 7, InitializeEmpty().Len())
}

func TestHydrate_PreservesRecordOrder(t *testing.T) {
	raw := []byte(`{"sunday":{"open":"12:00","close":"20:00"},"monday":{"open":"08:00","close":"16:00"},"wednesday":{"open":"","close":""}}`)

	h := Hydrate(raw)

	assert.Equal(t, []string{"sunday", "monday", "wednesday"}, h.Days())
	assert.Equal(t, "Sunday 12:00-20:00\nMonday 08:00-16:00\nWednesday -", Format(&h))
}

func TestHydrate_CoercesMalformedEntries(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected DayInterval
	}{
		{"missing close", `{"monday":{"open":"09:00"}}`, DayInterval{Open: "09:00"}},
		{"missing both", `{"monday":{}}`, DayInterval{}},
		{"numbers become text", `{"monday":{"open":9,"close":17.5}}`, DayInterval{Open: "9", Close: "17.5"}},
		{"booleans become text", `{"monday":{"open":true,"close":false}}`, DayInterval{Open: "true", Close: "false"}},
		{"null fields are blank", `{"monday":{"open":null,"close":"17:00"}}`, DayInterval{Close: "17:00"}},
		{"nested values are blank", `{"monday":{"open":{"h":9},"close":["17:00"]}}`, DayInterval{}},
		{"entry is not an object", `{"monday":"09:00-17:00"}`, DayInterval{}},
		{"entry is null", `{"monday":null}`, DayInterval{}},
		{"field names are case sensitive", `{"monday":{"OPEN":"09:00","close":"17:00"}}`, DayInterval{Close: "17:00"}},
		{"extra fields are ignored", `{"monday":{"open":"09:00","close":"17:00","note":"x"}}`, DayInterval{Open: "09:00", Close: "17:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Hydrate([]byte(tt.raw))
			require.Equal(t, 1, h.Len())
			d, ok := h.Get("monday")
			require.True(t, ok)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestHydrate_NonObjectRecordsAreEmpty(t *testing.T) {
	for _, raw := range []string{`[]`, `"monday"`, `42`, `{`, `not json`} {
		h := Hydrate([]byte(raw))
		assert.Equal(t, 0, h.Len(), "input %q", raw)
	}
}

func TestHydrate_TruncatedRecordKeepsParsedDays(t *testing.T) {
	h := Hydrate([]byte(`{"monday":{"open":"09:00","close":"17:00"},"tuesday":`))
	assert.Equal(t, []string{"monday"}, h.Days())
}

func TestHydrate_DuplicateKeys(t *testing.T) {
	h := Hydrate([]byte(`{"monday":{"open":"08:00"},"tuesday":{},"monday":{"open":"10:00"}}`))

	assert.Equal(t, []string{"monday", "tuesday"}, h.Days())
	d, _ := h.Get("monday")
	assert.Equal(t, "10:00", d.Open)
}

func TestHydrate_UnknownKeysAreKept(t *testing.T) {
	h := Hydrate([]byte(`{"Public Holidays":{"open":"10:00","close":"14:00"}}`))
	assert.Equal(t, "Public Holidays 10:00-14:00", Format(&h))
}

func TestDecode(t *testing.T) {
	assert.Nil(t, Decode(nil))
	assert.Nil(t, Decode([]byte("null")))
	assert.Equal(t, NotAvailable, Format(Decode(nil)))

	h := Decode([]byte(`{}`))
	require.NotNil(t, h)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, "", Format(h))

	h = Decode([]byte(`{"friday":{"open":"16:00","close":"03:00"}}`))
	require.NotNil(t, h)
	assert.Equal(t, "Friday 16:00-03:00", Format(h))
}

func TestMarshalJSON_KeepsOrder(t *testing.T) {
	h := WeeklyHours{}.
		SetBoundary("saturday", BoundaryOpen, "10:00").
		SetBoundary("monday", BoundaryClose, "18:00")

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `{"saturday":{"open":"10:00","close":""},"monday":{"open":"","close":"18:00"}}`, string(data))

	back := Hydrate(data)
	assert.Equal(t, h.Entries(), back.Entries())
}

func TestMarshalJSON_EmptyWeek(t *testing.T) {
	data, err := json.Marshal(WeeklyHours{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestUnmarshalJSON_Field(t *testing.T) {
	var payload struct {
		Hours  WeeklyHours  `json:"hours"`
		Absent *WeeklyHours `json:"absent"`
	}
	err := json.Unmarshal([]byte(`{"hours":{"tuesday":{"open":"10:00","close":"22:00"}},"absent":null}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, "Tuesday 10:00-22:00", Format(&payload.Hours))
	assert.Nil(t, payload.Absent)
	assert.Equal(t, NotAvailable, Format(payload.Absent))
}
