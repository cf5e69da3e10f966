package types

// LocationInfo contains human-readable location metadata
type LocationInfo struct {
	Name        string `json:"name" example:"Panama City"`
	State       string `json:"state,omitempty" example:"Panamá"`
	CountryCode string `json:"country" example:"PA"`
}
