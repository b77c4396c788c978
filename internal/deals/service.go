// Package deals covers discovery, the seller's deal management and the
// reaction endpoints.
package deals

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/basaaj/basaaj-go/internal/api"
	"github.com/basaaj/basaaj-go/internal/models"
	"github.com/basaaj/basaaj-go/internal/validator"
)

// Prefs records the lightweight usage preferences the client keeps locally.
// Implemented by store.Store; nil disables recording.
type Prefs interface {
	PushRecentCategory(code string) error
}

type Service struct {
	api   *api.Client
	valid *validator.Validator
	prefs Prefs
}

func NewService(c *api.Client, v *validator.Validator, prefs Prefs) *Service {
	return &Service{api: c, valid: v, prefs: prefs}
}

// Discover runs the public geospatial search. Latitude and longitude are
// always sent; every other parameter is omitted when unset.
func (s *Service) Discover(ctx context.Context, p models.DiscoverParams) (*models.Page[models.DiscoveryDeal], error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	if p.Radius > 0 {
		q.Set("radius", strconv.FormatFloat(p.Radius, 'f', -1, 64))
	}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Subcategory != "" {
		q.Set("subcategory", p.Subcategory)
	}
	if p.PostType != "" {
		q.Set("postType", p.PostType)
	}
	if p.DealType != "" {
		q.Set("dealType", p.DealType)
	}
	if p.FulfillmentMode != "" {
		q.Set("fulfillmentMode", p.FulfillmentMode)
	}
	if len(p.Tags) > 0 {
		q.Set("tags", strings.Join(p.Tags, ","))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}

	var out models.Page[models.DiscoveryDeal]
	if err := s.api.Get(ctx, "/api/v1/discovery/deals", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates the request client-side and posts it. Validation
// failures never reach the network.
func (s *Service) Create(ctx context.Context, req models.CreateDealRequest) (*models.Deal, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	var out models.Deal
	if err := s.api.Post(ctx, "/api/v1/deals", req, &out); err != nil {
		return nil, err
	}
	if s.prefs != nil && req.SubcategoryCode != "" {
		// Preference bookkeeping never blocks a successful creation.
		if err := s.prefs.PushRecentCategory(req.SubcategoryCode); err != nil {
			slog.Warn("Failed to record recent category", "code", req.SubcategoryCode, "error", err)
		}
	}
	return &out, nil
}

func (s *Service) validate(req models.CreateDealRequest) error {
	if err := s.valid.ValidateStruct(req); err != nil {
		return &api.Error{Kind: api.KindValidation, Message: firstFieldError(s.valid, err)}
	}
	if req.StartTime != "" && req.ExpiryTime != "" {
		start, serr := time.Parse(time.RFC3339, req.StartTime)
		end, eerr := time.Parse(time.RFC3339, req.ExpiryTime)
		if serr == nil && eerr == nil && !end.After(start) {
			return &api.Error{Kind: api.KindValidation, Message: "end date must be after start date"}
		}
	}
	return nil
}

func firstFieldError(v *validator.Validator, err error) string {
	for field, msg := range v.FieldErrors(err) {
		return fmt.Sprintf("%s: %s", field, msg)
	}
	return "invalid deal"
}

// MyDeals lists the authenticated seller's deals.
func (s *Service) MyDeals(ctx context.Context, state, search string, page, size int) (*models.Page[models.Deal], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if size <= 0 {
		size = 20
	}
	q.Set("size", strconv.Itoa(size))
	if state != "" {
		q.Set("state", state)
	}
	if search != "" {
		q.Set("search", search)
	}
	var out models.Page[models.Deal]
	if err := s.api.Get(ctx, "/api/v1/deals", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DealByID fetches one deal.
func (s *Service) DealByID(ctx context.Context, dealID string) (*models.Deal, error) {
	var out models.Deal
	if err := s.api.Get(ctx, "/api/v1/deals/"+url.PathEscape(dealID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes one of the seller's deals.
func (s *Service) Delete(ctx context.Context, dealID string) error {
	return s.api.Delete(ctx, "/api/v1/deals/"+url.PathEscape(dealID))
}

// MyStats fetches the seller's aggregate counters.
func (s *Service) MyStats(ctx context.Context) (*models.DealStats, error) {
	var out models.DealStats
	if err := s.api.Get(ctx, "/api/v1/deals/my-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleReaction sends a like/dislike press. The server determines the
// toggle direction; the response tuple is authoritative.
func (s *Service) ToggleReaction(ctx context.Context, dealID string, typ models.ReactionType) (models.ReactionState, error) {
	body := map[string]string{"type": string(typ)}
	var out models.ReactionState
	if err := s.api.Post(ctx, "/api/v1/deals/"+url.PathEscape(dealID)+"/reactions", body, &out); err != nil {
		return models.ReactionState{}, err
	}
	return out, nil
}

// ReactionState fetches the caller's reaction tuple for one deal.
func (s *Service) ReactionState(ctx context.Context, dealID string) (models.ReactionState, error) {
	var out models.ReactionState
	if err := s.api.Get(ctx, "/api/v1/deals/"+url.PathEscape(dealID)+"/reactions", nil, &out); err != nil {
		return models.ReactionState{}, err
	}
	return out, nil
}
