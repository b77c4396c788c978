package models

// SavedAddress is one of the user's stored delivery/outlet addresses.
type SavedAddress struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	IsDefault bool    `json:"isDefault"`
}

type RecentCategory struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	UsedAt string `json:"usedAt"`
}

type RecentLocation struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	UsedAt    string  `json:"usedAt"`
}

// RecentActivity aggregates the user's recently used categories and
// locations plus their saved addresses. Supplementary data: lookups that
// fail leave the UI in its prior state.
type RecentActivity struct {
	RecentCategories []RecentCategory `json:"recentCategories"`
	RecentLocations  []RecentLocation `json:"recentLocations"`
	SavedAddresses   []SavedAddress   `json:"savedAddresses"`
}
