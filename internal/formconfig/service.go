// Package formconfig fetches and caches the backend-declared offer form
// schema and the category catalog, and resolves per-field visibility,
// requiredness and length constraints for the offer-creation form.
package formconfig

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/basaaj/basaaj-go/internal/api"
	"github.com/basaaj/basaaj-go/internal/models"
)

// Service memoizes the configuration list, the subcategory list and the
// media guidelines for the session. Concurrent first callers share one
// network request; a failed fetch resets the memo so a later call retries.
type Service struct {
	api *api.Client

	group singleflight.Group

	mu         sync.Mutex
	configs    []models.OfferFormConfig
	haveCfgs   bool
	subcats    []models.SubCategory
	haveSubs   bool
	guidelines *models.MediaUploadGuidelines
}

func New(c *api.Client) *Service {
	return &Service{api: c}
}

// FormConfigs returns the full configuration list, fetching it at most once
// per session.
func (s *Service) FormConfigs(ctx context.Context) ([]models.OfferFormConfig, error) {
	s.mu.Lock()
	if s.haveCfgs {
		defer s.mu.Unlock()
		return s.configs, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("form-configs", func() (any, error) {
		var out models.FormConfigResponse
		if err := s.api.Get(ctx, "/api/v1/offers/form-config", nil, &out); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.configs = out.Configurations
		s.haveCfgs = true
		s.mu.Unlock()
		return out.Configurations, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.OfferFormConfig), nil
}

// SubCategories returns the flat subcategory list, fetched once per session.
func (s *Service) SubCategories(ctx context.Context) ([]models.SubCategory, error) {
	s.mu.Lock()
	if s.haveSubs {
		defer s.mu.Unlock()
		return s.subcats, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("subcategories", func() (any, error) {
		var out []models.SubCategory
		if err := s.api.Get(ctx, "/api/v1/categories", nil, &out); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.subcats = out
		s.haveSubs = true
		s.mu.Unlock()
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.SubCategory), nil
}

// FormConfigsByCategory asks the backend for the configs of one category.
// Not memoized; the all-configs list covers the common path.
func (s *Service) FormConfigsByCategory(ctx context.Context, category string) ([]models.OfferFormConfig, error) {
	var out []models.OfferFormConfig
	path := "/api/v1/offers/form-config/" + url.PathEscape(category)
	if err := s.api.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FormConfig asks the backend for a single (category, offerType) config.
func (s *Service) FormConfig(ctx context.Context, category, offerType string) (*models.OfferFormConfig, error) {
	var out models.OfferFormConfig
	path := "/api/v1/offers/form-config/" + url.PathEscape(category) + "/" + url.PathEscape(offerType)
	if err := s.api.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MediaUploadGuidelines returns the accepted media formats, fetched once per
// session.
func (s *Service) MediaUploadGuidelines(ctx context.Context) (*models.MediaUploadGuidelines, error) {
	s.mu.Lock()
	if s.guidelines != nil {
		defer s.mu.Unlock()
		return s.guidelines, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("media-guidelines", func() (any, error) {
		var out models.MediaUploadGuidelines
		if err := s.api.Get(ctx, "/api/v1/media/upload-guidelines", nil, &out); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.guidelines = &out
		s.mu.Unlock()
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.MediaUploadGuidelines), nil
}

// Resolver answers per-field questions for one (category, offerType)
// combination of the offer-creation form.
func (s *Service) Resolver(ctx context.Context, category, offerType string) (*Resolver, error) {
	configs, err := s.FormConfigs(ctx)
	if err != nil {
		return nil, err
	}
	return NewResolver(configs, category, offerType), nil
}
