package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/basaaj/basaaj-go/internal/media"
	"github.com/basaaj/basaaj-go/internal/models"
	"github.com/basaaj/basaaj-go/internal/validator"
)

// State is the single enumerated position of the login/onboarding sequence.
// Exactly one dialog can be derived from it at a time, which the old
// three-boolean encoding could not guarantee.
type State int

const (
	StateAnonymous State = iota
	StateLoginPrompt
	StateOtpPending
	StateProfileSetup
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateLoginPrompt:
		return "login-prompt"
	case StateOtpPending:
		return "otp-pending"
	case StateProfileSetup:
		return "profile-setup"
	case StateLoggedIn:
		return "logged-in"
	default:
		return "anonymous"
	}
}

// ErrBadTransition is returned when a flow operation is invoked from a
// state it cannot leave. The flow stays where it is.
var ErrBadTransition = errors.New("operation not valid in current auth state")

// AuthAPI is what the flow needs from the service layer.
type AuthAPI interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, otp string) (*models.AuthResponse, error)
	Profile(ctx context.Context) (*models.UserProfileResponse, error)
	OnboardSeller(ctx context.Context, req models.OnboardSellerRequest, picture *media.File) (*models.UserProfileResponse, error)
	HasToken() bool
	TokenExpired() bool
	ClearTokens() error
}

// Flow coordinates Anonymous → LoginPrompt → OtpPending → [ProfileSetup] →
// LoggedIn. A failed step returns its error and leaves the state unchanged;
// the flow never advances silently.
type Flow struct {
	svc   AuthAPI
	valid *validator.Validator

	mu              sync.Mutex
	state           State
	mobile          string
	user            *models.UserProfile
	pendingRedirect string
}

func NewFlow(svc AuthAPI, v *validator.Validator) *Flow {
	return &Flow{svc: svc, valid: v, state: StateAnonymous}
}

// Init probes persisted credentials at application start. A usable token is
// confirmed with a profile fetch; anything else purges the pair and leaves
// the flow anonymous.
func (f *Flow) Init(ctx context.Context) {
	if !f.svc.HasToken() {
		return
	}
	if f.svc.TokenExpired() {
		if err := f.svc.ClearTokens(); err != nil {
			slog.Warn("Failed to clear expired tokens", "error", err)
		}
		return
	}
	profile, err := f.svc.Profile(ctx)
	if err != nil {
		// The 401 path has already cleared tokens; clear again for any
		// other failure so the session is consistently anonymous.
		if clearErr := f.svc.ClearTokens(); clearErr != nil {
			slog.Warn("Failed to clear tokens after profile probe", "error", clearErr)
		}
		return
	}
	f.mu.Lock()
	f.user = mapProfile(profile)
	f.state = StateLoggedIn
	f.mu.Unlock()
}

// State returns the flow's current position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LoggedIn implements the reactions engine's session check.
func (f *Flow) LoggedIn() bool { return f.State() == StateLoggedIn }

// User returns the logged-in profile, or nil.
func (f *Flow) User() *models.UserProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

// Mobile returns the phone number pending verification.
func (f *Flow) Mobile() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mobile
}

// OpenLogin surfaces the login prompt, optionally remembering where to send
// the user once they are logged in. A no-op for an already logged-in user.
func (f *Flow) OpenLogin(redirectTo string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateLoggedIn {
		return
	}
	if redirectTo != "" {
		f.pendingRedirect = redirectTo
	}
	f.state = StateLoginPrompt
}

// CloseLogin dismisses the prompt without authenticating.
func (f *Flow) CloseLogin() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateLoginPrompt {
		f.state = StateAnonymous
	}
}

// SubmitPhone validates the number, requests an OTP and advances to
// OtpPending on success.
func (f *Flow) SubmitPhone(ctx context.Context, phone string) error {
	f.mu.Lock()
	if f.state != StateLoginPrompt {
		f.mu.Unlock()
		return ErrBadTransition
	}
	f.mu.Unlock()

	if err := f.valid.Phone(phone); err != nil {
		return err
	}
	if err := f.svc.SendOTP(ctx, phone); err != nil {
		return err
	}
	f.mu.Lock()
	f.mobile = phone
	f.state = StateOtpPending
	f.mu.Unlock()
	return nil
}

// SubmitOTP verifies the code. A brand-new user without a completed profile
// moves to ProfileSetup; everyone else is logged in after an authoritative
// profile refetch.
func (f *Flow) SubmitOTP(ctx context.Context, otp string) error {
	f.mu.Lock()
	if f.state != StateOtpPending {
		f.mu.Unlock()
		return ErrBadTransition
	}
	mobile := f.mobile
	f.mu.Unlock()

	if err := f.valid.OTP(otp); err != nil {
		return err
	}
	res, err := f.svc.VerifyOTP(ctx, mobile, otp)
	if err != nil {
		return err
	}

	if res.IsNewUser && !res.ProfileComplete {
		f.mu.Lock()
		f.state = StateProfileSetup
		f.mu.Unlock()
		return nil
	}
	return f.refetchAndLogin(ctx)
}

// CloseOtp abandons verification and returns to anonymous.
func (f *Flow) CloseOtp() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateOtpPending {
		f.state = StateAnonymous
	}
}

// CompleteProfileSetup submits the onboarding payload and, on success, logs
// the user in.
func (f *Flow) CompleteProfileSetup(ctx context.Context, businessName string, loc *models.LocationValue, picture *media.File) error {
	f.mu.Lock()
	if f.state != StateProfileSetup {
		f.mu.Unlock()
		return ErrBadTransition
	}
	f.mu.Unlock()

	req := models.OnboardSellerRequest{Name: businessName, Location: loc}
	if err := f.valid.ValidateStruct(req); err != nil {
		return err
	}
	if _, err := f.svc.OnboardSeller(ctx, req, picture); err != nil {
		return err
	}
	return f.refetchAndLogin(ctx)
}

// refetchAndLogin performs the authoritative profile refetch that always
// accompanies reaching the logged-in state, even when a just-submitted
// payload is already known client-side.
func (f *Flow) refetchAndLogin(ctx context.Context) error {
	profile, err := f.svc.Profile(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.user = mapProfile(profile)
	f.state = StateLoggedIn
	f.mu.Unlock()
	return nil
}

// ConsumeRedirect returns the pending post-login destination exactly once.
// Subsequent calls return "" even while the user stays logged in.
func (f *Flow) ConsumeRedirect() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateLoggedIn || f.pendingRedirect == "" {
		return ""
	}
	redirect := f.pendingRedirect
	f.pendingRedirect = ""
	return redirect
}

// Logout clears credentials and resets the flow to anonymous.
func (f *Flow) Logout() {
	if err := f.svc.ClearTokens(); err != nil {
		slog.Warn("Failed to clear tokens on logout", "error", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = nil
	f.mobile = ""
	f.pendingRedirect = ""
	f.state = StateAnonymous
}

// mapProfile normalizes the backend profile to the client-side shape. The
// seller's business name wins over the account name when both exist.
func mapProfile(p *models.UserProfileResponse) *models.UserProfile {
	u := &models.UserProfile{
		Phone: p.Phone,
		Email: p.Email,
		Name:  p.Name,
	}
	u.BusinessName = p.Name
	if p.SellerProfile != nil {
		if p.SellerProfile.Name != "" {
			u.BusinessName = p.SellerProfile.Name
		}
		u.ProfileImage = p.SellerProfile.ProfilePicURL
	}
	return u
}
