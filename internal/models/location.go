package models

// LocationValue is a normalized place produced by reverse-geocoding a
// coordinate or by resolving a place-search selection. Values are replaced
// wholesale, never patched in place.
type LocationValue struct {
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Country     string  `json:"country"`
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	PlaceID     string  `json:"placeId,omitempty"`
}

// Coordinates is the backend's wire shape for a point with an optional
// human-readable address.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}
