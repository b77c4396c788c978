package deals

import (
	"context"
	"fmt"
	"net/url"

	"github.com/basaaj/basaaj-go/internal/api"
	"github.com/basaaj/basaaj-go/internal/media"
	"github.com/basaaj/basaaj-go/internal/models"
)

// Draft is the navigation-scoped state of the create/review flow. Only
// media handles travel with it; the registry owns the bytes.
type Draft struct {
	Request models.CreateDealRequest
	Media   []media.Handle
}

// UploadMedia attaches one media file to an existing deal.
func (s *Service) UploadMedia(ctx context.Context, dealID string, f *media.File) (*models.Deal, error) {
	files := []api.FilePart{{
		Field:       "file",
		Filename:    f.Name,
		ContentType: f.ContentType,
		Data:        f.Data,
	}}
	var out models.Deal
	if err := s.api.PostMultipart(ctx, "/api/v1/deals/"+url.PathEscape(dealID)+"/media", nil, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitDraft creates the deal and then uploads the attached media in
// order, releasing each handle once its upload succeeds. A failed upload
// leaves the remaining handles registered so the caller can retry; on full
// success the draft holds no handles.
func (s *Service) SubmitDraft(ctx context.Context, d *Draft, reg *media.Registry) (*models.Deal, error) {
	deal, err := s.Create(ctx, d.Request)
	if err != nil {
		return nil, err
	}

	remaining := d.Media
	for len(remaining) > 0 {
		h := remaining[0]
		f, ok := reg.Open(h)
		if !ok {
			// Already released elsewhere; skip.
			remaining = remaining[1:]
			continue
		}
		updated, err := s.UploadMedia(ctx, deal.ID, f)
		if err != nil {
			d.Media = remaining
			return deal, fmt.Errorf("deal created but media upload failed: %w", err)
		}
		deal = updated
		reg.Release(h)
		remaining = remaining[1:]
	}
	d.Media = nil
	return deal, nil
}
