// Package location produces the single normalized place value the discovery
// screens sort by, from device position, place search, or a popular-cities
// shortlist.
package location

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/basaaj/basaaj-go/internal/models"
)

// Geolocator reports the device's current position.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (lat, lng float64, err error)
}

// ErrPermissionDenied distinguishes a user refusal from generic
// unavailability; the distinction only changes the user-facing message.
var ErrPermissionDenied = errors.New("location permission denied")

const (
	msgDenied      = "Location access denied. Please search manually."
	msgUnavailable = "Could not detect location. Please search manually."

	detectTimeout  = 10 * time.Second
	maxPredictions = 5
)

// StaticGeolocator returns a fixed position, typically from configuration.
// Zero coordinates mean no position is available.
type StaticGeolocator struct {
	Lat, Lng float64
}

func (g StaticGeolocator) CurrentPosition(ctx context.Context) (float64, float64, error) {
	if g.Lat == 0 && g.Lng == 0 {
		return 0, 0, errors.New("no device position configured")
	}
	return g.Lat, g.Lng, nil
}

// Provider holds the process-wide location slot. The resolved value is
// replaced wholesale, never patched.
type Provider struct {
	geo    Geocoder
	device Geolocator

	mu      sync.Mutex
	current *models.LocationValue
	loading bool
	errMsg  string
}

func NewProvider(geo Geocoder, device Geolocator) *Provider {
	return &Provider{geo: geo, device: device}
}

// Current returns the last resolved location, or nil.
func (p *Provider) Current() *models.LocationValue {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Loading reports whether a detection is in progress.
func (p *Provider) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// ErrorMessage returns the user-facing message of the last failed
// detection, or "".
func (p *Provider) ErrorMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// DetectCurrentLocation is fire-and-forget: it sets the loading flag,
// resolves the device position in the background, and on completion either
// stores the location or an error message. Callers poll the accessors.
func (p *Provider) DetectCurrentLocation() {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return
	}
	p.loading = true
	p.errMsg = ""
	p.mu.Unlock()

	go p.detect()
}

func (p *Provider) detect() {
	ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
	defer cancel()

	lat, lng, err := p.device.CurrentPosition(ctx)
	if err != nil {
		msg := msgUnavailable
		if errors.Is(err, ErrPermissionDenied) {
			msg = msgDenied
		}
		p.finish(nil, msg)
		return
	}

	loc, err := p.geo.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		p.finish(nil, msgUnavailable)
		return
	}
	p.finish(loc, "")
}

func (p *Provider) finish(loc *models.LocationValue, errMsg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	p.errMsg = errMsg
	if loc != nil {
		p.current = loc
	}
}

// SetLocationManually replaces the current location with a user-chosen one.
// No network call is involved.
func (p *Provider) SetLocationManually(loc models.LocationValue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := loc
	p.current = &v
	p.errMsg = ""
}

// SearchLocations resolves up to five place predictions for query in
// parallel. Predictions that fail to geocode are dropped rather than
// failing the search.
func (p *Provider) SearchLocations(ctx context.Context, query string) ([]models.LocationValue, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	preds, err := p.geo.Predictions(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(preds) > maxPredictions {
		preds = preds[:maxPredictions]
	}

	resolved := make([]*models.LocationValue, len(preds))
	g, gctx := errgroup.WithContext(ctx)
	for i, pred := range preds {
		g.Go(func() error {
			loc, err := p.geo.GeocodePlace(gctx, pred.PlaceID)
			if err != nil {
				return nil // skip this prediction
			}
			resolved[i] = loc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.LocationValue, 0, len(resolved))
	for _, loc := range resolved {
		if loc != nil {
			out = append(out, *loc)
		}
	}
	return out, nil
}

// PopularCities is the fixed shortlist offered when the user has not
// searched yet.
func PopularCities() []models.LocationValue {
	return []models.LocationValue{
		{City: "Mumbai", Region: "Maharashtra", Country: "India", DisplayName: "Mumbai, India", Lat: 19.076, Lng: 72.8777},
		{City: "Delhi", Region: "Delhi", Country: "India", DisplayName: "Delhi, India", Lat: 28.6139, Lng: 77.209},
		{City: "Bangalore", Region: "Karnataka", Country: "India", DisplayName: "Bangalore, India", Lat: 12.9716, Lng: 77.5946},
		{City: "Hyderabad", Region: "Telangana", Country: "India", DisplayName: "Hyderabad, India", Lat: 17.385, Lng: 78.4867},
		{City: "Chennai", Region: "Tamil Nadu", Country: "India", DisplayName: "Chennai, India", Lat: 13.0827, Lng: 80.2707},
		{City: "Pune", Region: "Maharashtra", Country: "India", DisplayName: "Pune, India", Lat: 18.5204, Lng: 73.8567},
	}
}
