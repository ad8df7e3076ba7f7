// Package constants provides shared constants for the jam-admin application
package constants

import "fmt"

// TagKind identifies one of the enumerated tag catalogs a restaurant selects from
type TagKind string

const (
	// TagKindActivity tags what guests can do at the venue
	TagKindActivity TagKind = "activity"
	// TagKindServing tags what the venue serves
	TagKindServing TagKind = "serving"
)

// IsValid checks if the tag kind is a known catalog
func (k TagKind) IsValid() bool {
	return k == TagKindActivity || k == TagKindServing
}

// String returns the string representation of the tag kind
func (k TagKind) String() string {
	return string(k)
}

// Table returns the catalog table backing the tag kind
func (k TagKind) Table() string {
	switch k {
	case TagKindActivity:
		return "activities"
	case TagKindServing:
		return "servings"
	}
	return ""
}

// ParseTagKind parses a string into a TagKind.
// Returns an error if the value is invalid
func ParseTagKind(s string) (TagKind, error) {
	kind := TagKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid tag kind: %s (must be 'activity' or 'serving')", s)
	}
	return kind, nil
}

// GetAllTagKinds returns all tag kinds in display order
func GetAllTagKinds() []TagKind {
	return []TagKind{TagKindActivity, TagKindServing}
}
