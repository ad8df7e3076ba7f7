// Package viewhelpers shapes domain values into rows the HTML templates can range over.
package viewhelpers

import (
	"strings"

	"github.com/jamapp/jam-admin/internal/openinghours"
	"github.com/jamapp/jam-admin/internal/restaurant"
)

// HourRow is one editable day of the opening hours table
type HourRow struct {
	Key       string // day key as stored, also the input name suffix
	Label     string
	Open      string
	Close     string
	OpenName  string
	CloseName string
}

// TagOption is one checkbox of an activity or serving picker
type TagOption struct {
	Name     string
	Selected bool
	Offered  bool // false when the tag is only stored on the restaurant
}

// HourRows turns a week into table rows, in the week's own day order
func HourRows(h openinghours.WeeklyHours) []HourRow {
	entries := h.Entries()
	rows := make([]HourRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, HourRow{
			Key:       e.Day,
			Label:     openinghours.Capitalize(e.Day),
			Open:      e.Interval.Open,
			Close:     e.Interval.Close,
			OpenName:  restaurant.FieldHoursOpen + e.Day,
			CloseName: restaurant.FieldHoursClose + e.Day,
		})
	}
	return rows
}

// TagOptions lists the catalog entries followed by any selected tag the
// catalog no longer offers, so editing never silently drops stored tags.
func TagOptions(catalog, selected []string) []TagOption {
	options := make([]TagOption, 0, len(catalog)+len(selected))
	for _, name := range catalog {
		options = append(options, TagOption{
			Name:     name,
			Selected: restaurant.HasTag(selected, name),
			Offered:  true,
		})
	}
	for _, name := range selected {
		if restaurant.HasTag(catalog, name) {
			continue
		}
		options = append(options, TagOption{Name: name, Selected: true})
	}
	return options
}

// OrNA returns the value or the not-available marker when it is blank
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return openinghours.NotAvailable
	}
	return s
}

// JoinOrNA joins tags for display. A nil list was never recorded and shows
// the not-available marker; an empty one shows nothing.
func JoinOrNA(tags []string) string {
	if tags == nil {
		return openinghours.NotAvailable
	}
	return strings.Join(tags, ", ")
}
