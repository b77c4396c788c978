package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/basaaj/basaaj-go/internal/models"
)

// ErrNoResults is returned when the geocoding provider finds nothing for a
// coordinate or place.
var ErrNoResults = errors.New("no geocoding results")

// Prediction is one place-search suggestion awaiting geocoding.
type Prediction struct {
	PlaceID     string
	Description string
}

// Geocoder is the third-party mapping provider the location layer wraps.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*models.LocationValue, error)
	Predictions(ctx context.Context, query string) ([]Prediction, error)
	GeocodePlace(ctx context.Context, placeID string) (*models.LocationValue, error)
}

// HTTPGeocoder talks to a Google-style maps web service: /geocode/json for
// forward and reverse geocoding, /place/autocomplete/json for predictions.
type HTTPGeocoder struct {
	base   string
	apiKey string
	client *http.Client
}

func NewHTTPGeocoder(base, apiKey string) *HTTPGeocoder {
	return &HTTPGeocoder{
		base:   base,
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type addressComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type geocodeResult struct {
	AddressComponents []addressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
	Geometry          struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	PlaceID string `json:"place_id"`
}

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		PlaceID     string `json:"place_id"`
		Description string `json:"description"`
	} `json:"predictions"`
}

func (g *HTTPGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.LocationValue, error) {
	q := url.Values{}
	q.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))
	var resp geocodeResponse
	if err := g.get(ctx, "/geocode/json", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoResults
	}
	return normalize(resp.Results[0]), nil
}

func (g *HTTPGeocoder) Predictions(ctx context.Context, query string) ([]Prediction, error) {
	q := url.Values{}
	q.Set("input", query)
	q.Set("types", "(cities)")
	var resp autocompleteResponse
	if err := g.get(ctx, "/place/autocomplete/json", q, &resp); err != nil {
		return nil, err
	}
	preds := make([]Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		preds = append(preds, Prediction{PlaceID: p.PlaceID, Description: p.Description})
	}
	return preds, nil
}

func (g *HTTPGeocoder) GeocodePlace(ctx context.Context, placeID string) (*models.LocationValue, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	var resp geocodeResponse
	if err := g.get(ctx, "/geocode/json", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoResults
	}
	return normalize(resp.Results[0]), nil
}

func (g *HTTPGeocoder) get(ctx context.Context, path string, q url.Values, out any) error {
	if g.apiKey != "" {
		q.Set("key", g.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.base+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoding request failed with status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("malformed geocoding response: %w", err)
	}
	return nil
}

// component returns the long name of the first address component carrying
// the given type.
func component(components []addressComponent, typ string) string {
	for _, c := range components {
		for _, t := range c.Types {
			if t == typ {
				return c.LongName
			}
		}
	}
	return ""
}

// normalize maps a raw geocoder result to the client's LocationValue. The
// display name prefers "City, Country" and falls back to the provider's
// formatted address.
func normalize(res geocodeResult) *models.LocationValue {
	city := component(res.AddressComponents, "locality")
	if city == "" {
		city = component(res.AddressComponents, "administrative_area_level_2")
	}
	region := component(res.AddressComponents, "administrative_area_level_1")
	country := component(res.AddressComponents, "country")

	display := res.FormattedAddress
	if city != "" && country != "" {
		display = city + ", " + country
	}
	return &models.LocationValue{
		City:        city,
		Region:      region,
		Country:     country,
		DisplayName: display,
		Lat:         res.Geometry.Location.Lat,
		Lng:         res.Geometry.Location.Lng,
		PlaceID:     res.PlaceID,
	}
}
