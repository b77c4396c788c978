// Package users covers saved addresses and the recent-activity feed.
// These are supplementary lookups: their failures are marked recoverable so
// callers can keep the prior UI state instead of surfacing an error.
package users

import (
	"context"
	"net/url"

	"github.com/basaaj/basaaj-go/internal/api"
	"github.com/basaaj/basaaj-go/internal/models"
)

type Service struct {
	api *api.Client
}

func New(c *api.Client) *Service {
	return &Service{api: c}
}

// RecentActivity fetches recently used categories and locations plus saved
// addresses. Errors are recoverable.
func (s *Service) RecentActivity(ctx context.Context) (*models.RecentActivity, error) {
	var out models.RecentActivity
	if err := s.api.Get(ctx, "/api/v1/users/recent-activity", nil, &out); err != nil {
		return nil, api.Recoverable(err)
	}
	return &out, nil
}

// SavedAddresses lists the user's stored addresses. Errors are recoverable.
func (s *Service) SavedAddresses(ctx context.Context) ([]models.SavedAddress, error) {
	var out []models.SavedAddress
	if err := s.api.Get(ctx, "/api/v1/users/locations", nil, &out); err != nil {
		return nil, api.Recoverable(err)
	}
	return out, nil
}

type addAddressRequest struct {
	Label    string             `json:"label"`
	Location models.Coordinates `json:"location"`
}

// AddSavedAddress stores a labeled address. This one is user-initiated, so
// its errors are not recoverable: the form shows them inline.
func (s *Service) AddSavedAddress(ctx context.Context, label, address string, lat, lng float64) error {
	body := addAddressRequest{
		Label:    label,
		Location: models.Coordinates{Latitude: lat, Longitude: lng, Address: address},
	}
	return s.api.Post(ctx, "/api/v1/users/locations", body, nil)
}

// DeleteSavedAddress removes one stored address.
func (s *Service) DeleteSavedAddress(ctx context.Context, locationID string) error {
	return s.api.Delete(ctx, "/api/v1/users/locations/"+url.PathEscape(locationID))
}
