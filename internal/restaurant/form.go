package restaurant

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"github.com/jamapp/jam-admin/internal/openinghours"
)

// Form field names shared with the templates
const (
	FieldHoursDay    = "hours_day"
	FieldHoursOpen   = "hours_open_"
	FieldHoursClose  = "hours_close_"
	FieldNewDay      = "new_day"
	FieldNewDayOpen  = "new_day_open"
	FieldNewDayClose = "new_day_close"
)

// Form is the editable state of a restaurant as submitted by the admin UI.
// Coordinates stay textual so a rejected submission can be shown back as typed.
type Form struct {
	Name           string                   `label:"Name" validate:"required,max=200"`
	Website        string                   `label:"Website" validate:"max=2048"`
	FeaturedImage  string                   `label:"Featured image URL" validate:"max=2048"`
	Logo           string                   `label:"Logo URL" validate:"max=2048"`
	Price          string                   `label:"Price range" validate:"max=32"`
	AgeRestriction int                      `label:"Age restriction" validate:"gte=0,lte=150"`
	IsFacilitated  bool                     `label:"Is accessible"`
	Address        string                   `label:"Address" validate:"max=500"`
	Activities     []string                 `label:"Activities" validate:"dive,max=100"`
	Servings       []string                 `label:"Servings" validate:"dive,max=100"`
	OpeningHours   openinghours.WeeklyHours `validate:"-"`
	Latitude       string                   `label:"Latitude" validate:"omitempty,latitude"`
	Longitude      string                   `label:"Longitude" validate:"omitempty,longitude"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

// NewForm returns the form for a restaurant that does not exist yet
func NewForm() *Form {
	return &Form{
		Activities:   []string{},
		Servings:     []string{},
		OpeningHours: openinghours.InitializeEmpty(),
	}
}

// FormFromRestaurant returns the edit form for an existing restaurant.
// Restaurants without recorded hours get an empty week, not seven blank days.
func FormFromRestaurant(r *Restaurant) *Form {
	f := &Form{
		Name:           r.Name,
		Website:        r.Website,
		FeaturedImage:  r.FeaturedImage,
		Logo:           r.Logo,
		Price:          r.Price,
		AgeRestriction: r.AgeRestriction,
		IsFacilitated:  r.IsFacilitated,
		Address:        r.Address,
		Activities:     append([]string{}, r.Activities...),
		Servings:       append([]string{}, r.Servings...),
	}
	if r.OpeningHours != nil {
		f.OpeningHours = *r.OpeningHours
	}
	if r.Latitude != nil {
		f.Latitude = strconv.FormatFloat(*r.Latitude, 'f', -1, 64)
	}
	if r.Longitude != nil {
		f.Longitude = strconv.FormatFloat(*r.Longitude, 'f', -1, 64)
	}
	return f
}

// DecodeForm reads a submitted restaurant form. The returned form is never
// nil so callers can render it again; err collects every problem found.
func DecodeForm(values url.Values) (*Form, error) {
	var result *multierror.Error

	f := &Form{
		Name:          strings.TrimSpace(values.Get("name")),
		Website:       strings.TrimSpace(values.Get("website")),
		FeaturedImage: strings.TrimSpace(values.Get("featured_image")),
		Logo:          strings.TrimSpace(values.Get("logo")),
		Price:         strings.TrimSpace(values.Get("price")),
		IsFacilitated: isChecked(values.Get("is_facilitated")),
		Address:       strings.TrimSpace(values.Get("address")),
		Activities:    uniqueTags(values["activities"]),
		Servings:      uniqueTags(values["servings"]),
		OpeningHours:  decodeOpeningHours(values),
		Latitude:      strings.TrimSpace(values.Get("latitude")),
		Longitude:     strings.TrimSpace(values.Get("longitude")),
	}

	if raw := strings.TrimSpace(values.Get("age_restriction")); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			result = multierror.Append(result, errors.New("Age restriction must be a whole number"))
		} else {
			f.AgeRestriction = age
		}
	}

	if err := validate.Struct(f); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return f, fmt.Errorf("failed to validate form: %w", err)
		}
		for _, fe := range validationErrs {
			result = multierror.Append(result, errors.New(describe(fe)))
		}
	}

	return f, result.ErrorOrNil()
}

// decodeOpeningHours folds the submitted hour inputs into a week, one
// boundary at a time, in the order the rows were rendered.
func decodeOpeningHours(values url.Values) openinghours.WeeklyHours {
	var hours openinghours.WeeklyHours
	for _, day := range values[FieldHoursDay] {
		hours = hours.SetBoundary(day, openinghours.BoundaryOpen, values.Get(FieldHoursOpen+day))
		hours = hours.SetBoundary(day, openinghours.BoundaryClose, values.Get(FieldHoursClose+day))
	}

	if day := strings.TrimSpace(values.Get(FieldNewDay)); day != "" {
		hours = hours.SetBoundary(day, openinghours.BoundaryOpen, values.Get(FieldNewDayOpen))
		hours = hours.SetBoundary(day, openinghours.BoundaryClose, values.Get(FieldNewDayClose))
	}
	return hours
}

// Apply copies the form onto r. DecodeForm must have succeeded first.
func (f *Form) Apply(r *Restaurant) error {
	lat, err := parseCoordinate(f.Latitude)
	if err != nil {
		return fmt.Errorf("invalid latitude: %w", err)
	}
	long, err := parseCoordinate(f.Longitude)
	if err != nil {
		return fmt.Errorf("invalid longitude: %w", err)
	}

	hours := f.OpeningHours
	r.Name = f.Name
	r.Website = f.Website
	r.FeaturedImage = f.FeaturedImage
	r.Logo = f.Logo
	r.Price = f.Price
	r.AgeRestriction = f.AgeRestriction
	r.IsFacilitated = f.IsFacilitated
	r.Address = f.Address
	r.Activities = append([]string{}, f.Activities...)
	r.Servings = append([]string{}, f.Servings...)
	r.OpeningHours = &hours
	r.Latitude = lat
	r.Longitude = long
	return nil
}

// HasActivity is used by the templates to check boxes
func (f *Form) HasActivity(name string) bool {
	return HasTag(f.Activities, name)
}

// HasServing is used by the templates to check boxes
func (f *Form) HasServing(name string) bool {
	return HasTag(f.Servings, name)
}

// Messages flattens a DecodeForm error into one line per problem
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func parseCoordinate(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func uniqueTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || HasTag(tags, t) {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid %s", fe.Field(), fe.Tag())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
