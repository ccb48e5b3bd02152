package dto

type CreateEventRequest struct {
	Name           string  `json:"name"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Location       string  `json:"location"`
	Description    *string `json:"description"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
}

// UpdateEventRequest is a patch: only non-nil fields are applied.
type UpdateEventRequest struct {
	Name           *string `json:"name"`
	Date           *string `json:"date"`
	Time           *string `json:"time"`
	Location       *string `json:"location"`
	Description    *string `json:"description"`
	LogoURL        *string `json:"logo_url"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
}

type UploadLogoResponse struct {
	URL string `json:"url"`
}
