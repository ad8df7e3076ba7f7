package handlers

// Error Codes
const (
	ErrCodeInvalidFormData        = "invalid_form_data"
	ErrCodeRestaurantNotFound     = "restaurant_not_found"
	ErrCodeFailedSaveRestaurant   = "failed_save_restaurant"
	ErrCodeFailedDeleteRestaurant = "failed_delete_restaurant"
	ErrCodeFailedLoadRestaurants  = "failed_load_restaurants"
	ErrCodeFailedLoadCatalog      = "failed_load_catalog"
	ErrCodeUnknown                = "unknown_error"
)

// Success Codes
const (
	SuccessCodeRestaurantCreated = "restaurant_created"
	SuccessCodeRestaurantUpdated = "restaurant_updated"
	SuccessCodeRestaurantDeleted = "restaurant_deleted"
)

// ErrorMessages maps error codes to user-friendly messages
var ErrorMessages = map[string]string{
	ErrCodeInvalidFormData:        "Invalid form data.",
	ErrCodeRestaurantNotFound:     "The restaurant no longer exists.",
	ErrCodeFailedSaveRestaurant:   "Failed to save the restaurant. Please try again.",
	ErrCodeFailedDeleteRestaurant: "Failed to delete the restaurant. Please try again.",
	ErrCodeFailedLoadRestaurants:  "Failed to load restaurants. Please try again later.",
	ErrCodeFailedLoadCatalog:      "Failed to load activities and servings. Stored selections are still shown.",
	ErrCodeUnknown:                "An unknown error occurred.",
}

// SuccessMessages maps success codes to user-friendly messages
var SuccessMessages = map[string]string{
	SuccessCodeRestaurantCreated: "Restaurant added successfully.",
	SuccessCodeRestaurantUpdated: "Restaurant updated successfully.",
	SuccessCodeRestaurantDeleted: "Restaurant deleted successfully.",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code string) string {
	if msg, ok := ErrorMessages[code]; ok {
		return msg
	}
	return ErrorMessages[ErrCodeUnknown]
}

// GetSuccessMessage returns the message for a given success code
func GetSuccessMessage(code string) string {
	if msg, ok := SuccessMessages[code]; ok {
		return msg
	}
	return ""
}
