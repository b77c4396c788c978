// Package auth covers the phone/OTP authentication calls and the
// multi-step login/onboarding flow built on top of them.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/basaaj/basaaj-go/internal/api"
	"github.com/basaaj/basaaj-go/internal/media"
	"github.com/basaaj/basaaj-go/internal/models"
)

// Service issues the auth endpoints' requests through the shared adapter.
type Service struct {
	api *api.Client
}

func NewService(c *api.Client) *Service {
	return &Service{api: c}
}

// SendOTP requests a one-time password for phone.
func (s *Service) SendOTP(ctx context.Context, phone string) error {
	body := map[string]string{"phone": phone}
	return s.api.Post(ctx, "/api/v1/auth/otp/send", body, nil)
}

// VerifyOTP exchanges phone+code for a token pair and persists it.
func (s *Service) VerifyOTP(ctx context.Context, phone, otp string) (*models.AuthResponse, error) {
	body := map[string]string{"phone": phone, "otp": otp}
	var out models.AuthResponse
	if err := s.api.Post(ctx, "/api/v1/auth/otp/verify", body, &out); err != nil {
		return nil, err
	}
	if err := s.api.SetTokens(out.Token, out.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}
	return &out, nil
}

// Profile fetches the authenticated user's profile.
func (s *Service) Profile(ctx context.Context) (*models.UserProfileResponse, error) {
	var out models.UserProfileResponse
	if err := s.api.Get(ctx, "/api/v1/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OnboardSeller completes a new user's seller profile. The JSON payload
// travels as the "data" form field; the optional picture as "profilePicture".
func (s *Service) OnboardSeller(ctx context.Context, req models.OnboardSellerRequest, picture *media.File) (*models.UserProfileResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode onboarding payload: %w", err)
	}
	fields := map[string]string{"data": string(payload)}
	var files []api.FilePart
	if picture != nil {
		files = append(files, api.FilePart{
			Field:       "profilePicture",
			Filename:    picture.Name,
			ContentType: picture.ContentType,
			Data:        picture.Data,
		})
	}
	var out models.UserProfileResponse
	if err := s.api.PostMultipart(ctx, "/api/v1/users/seller-profile/onboard", fields, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HasToken reports whether a persisted access token exists.
func (s *Service) HasToken() bool { return s.api.HasToken() }

// TokenExpired inspects the persisted access token's exp claim without
// verifying the signature; verification is the backend's job. A malformed
// or claim-less token is not treated as expired here — the first real
// request will settle it.
func (s *Service) TokenExpired() bool {
	tok := s.api.Token()
	if tok == "" {
		return false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}

// ClearTokens drops the persisted credential pair.
func (s *Service) ClearTokens() error { return s.api.ClearTokens() }
