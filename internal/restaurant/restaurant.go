// Package restaurant holds the bar/restaurant listing entity managed by the admin.
package restaurant

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jamapp/jam-admin/internal/openinghours"
)

// Restaurant is one listing. OpeningHours is nil when nothing was ever recorded.
type Restaurant struct {
	ID             string
	Name           string
	Website        string
	FeaturedImage  string
	Logo           string
	Price          string
	AgeRestriction int
	IsFacilitated  bool
	Address        string
	Activities     []string
	Servings       []string
	OpeningHours   *openinghours.WeeklyHours
	Latitude       *float64
	Longitude      *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New returns a restaurant with a fresh ID and the seven canonical days blank.
func New() *Restaurant {
	hours := openinghours.InitializeEmpty()
	return &Restaurant{
		ID:           uuid.NewString(),
		Activities:   []string{},
		Servings:     []string{},
		OpeningHours: &hours,
	}
}

// IsValidID reports whether id looks like a restaurant primary key
func IsValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// HasLocation reports whether both coordinates are set
func (r *Restaurant) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Location renders the coordinates as a WKT point, longitude first.
// Empty when the location is incomplete.
func (r *Restaurant) Location() string {
	if !r.HasLocation() {
		return ""
	}
	var b strings.Builder
	b.WriteString("POINT(")
	b.WriteString(strconv.FormatFloat(*r.Longitude, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(*r.Latitude, 'f', -1, 64))
	b.WriteByte(')')
	return b.String()
}

// FormattedOpeningHours is the read-only summary shown on the detail page
func (r *Restaurant) FormattedOpeningHours() string {
	return openinghours.Format(r.OpeningHours)
}

// HasTag reports whether the restaurant carries the given activity or serving
func HasTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}
