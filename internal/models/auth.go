package models

// AuthResponse is returned by OTP verification. The token pair is persisted
// by the caller; IsNewUser and ProfileComplete drive the onboarding flow.
type AuthResponse struct {
	Token           string `json:"token"`
	RefreshToken    string `json:"refreshToken,omitempty"`
	TokenType       string `json:"tokenType"`
	ExpiresIn       int64  `json:"expiresIn"`
	IsNewUser       bool   `json:"isNewUser"`
	UserID          string `json:"userId"`
	Role            string `json:"role"`
	ProfileComplete bool   `json:"profileComplete"`
}

type SellerProfile struct {
	Name            string `json:"name"`
	ProfilePicURL   string `json:"profilePicUrl,omitempty"`
	Category        string `json:"category,omitempty"`
	Subcategory     string `json:"subcategory,omitempty"`
	SubcategoryName string `json:"subcategoryName,omitempty"`
}

// UserProfileResponse is the backend's profile shape.
type UserProfileResponse struct {
	ID              string         `json:"id"`
	Phone           string         `json:"phone,omitempty"`
	Name            string         `json:"name,omitempty"`
	Email           string         `json:"email,omitempty"`
	Role            string         `json:"role,omitempty"`
	SellerProfile   *SellerProfile `json:"sellerProfile,omitempty"`
	ProfileComplete bool           `json:"profileComplete,omitempty"`
}

// UserProfile is the client-side view of the logged-in seller. Cleared on
// logout, never deleted piecemeal.
type UserProfile struct {
	BusinessName string
	ProfileImage string
	Location     *LocationValue
	Phone        string
	Email        string
	Name         string
}

// OnboardSellerRequest is the JSON part of the multipart onboarding call.
type OnboardSellerRequest struct {
	Name     string         `json:"name" validate:"required"`
	Location *LocationValue `json:"location,omitempty"`
}
