package models

// SubCategory is one backend-declared subcategory with its parent grouping.
type SubCategory struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	NameHi         string `json:"nameHi,omitempty"`
	ParentCode     string `json:"parentCode"`
	ParentCategory string `json:"parentCategory"`
	IsCustom       bool   `json:"isCustom"`
}

// FormFieldConfig declares visibility, requiredness and length constraints
// for a single offer-creation field. MaxLength of zero means unconstrained.
type FormFieldConfig struct {
	Name       string  `json:"name"`
	Required   bool    `json:"required"`
	Visible    bool    `json:"visible"`
	MaxLength  int     `json:"maxLength,omitempty"`
	Min        float64 `json:"min,omitempty"`
	Validation string  `json:"validation,omitempty"`
}

type FormConstraints struct {
	MaxExpiryHours     int     `json:"maxExpiryHours,omitempty"`
	RequiresQuantity   bool    `json:"requiresQuantity,omitempty"`
	MinDiscountPercent float64 `json:"minDiscountPercent,omitempty"`
	MaxDurationHours   int     `json:"maxDurationHours,omitempty"`
	RequiresSlots      bool    `json:"requiresSlots,omitempty"`
	MinBundleItems     int     `json:"minBundleItems,omitempty"`
}

// OfferFormConfig is the server-declared form schema for one
// (category, offerType) combination. Read-only on the client.
type OfferFormConfig struct {
	Category           string            `json:"category"`
	OfferType          string            `json:"offerType"`
	DisplayName        string            `json:"displayName"`
	Description        string            `json:"description,omitempty"`
	CardPriority       []string          `json:"cardPriority,omitempty"`
	RequiresDetailView bool              `json:"requiresDetailView,omitempty"`
	Fields             []FormFieldConfig `json:"fields"`
	Constraints        *FormConstraints  `json:"constraints,omitempty"`
}

// FormConfigResponse is the full schema document served by the backend.
type FormConfigResponse struct {
	Version        string            `json:"version"`
	Description    string            `json:"description,omitempty"`
	Configurations []OfferFormConfig `json:"configurations"`
}

type ImageGuidelines struct {
	Format           string   `json:"format"`
	MaxSizeBytes     int64    `json:"maxSizeBytes"`
	MaxSizeDisplay   string   `json:"maxSizeDisplay"`
	MaxDimensionPx   int      `json:"maxDimensionPx"`
	QualityPercent   int      `json:"qualityPercent"`
	AllowedMimeTypes []string `json:"allowedMimeTypes"`
}

type VideoGuidelines struct {
	Format             string   `json:"format"`
	Codec              string   `json:"codec"`
	MaxSizeBytes       int64    `json:"maxSizeBytes"`
	MaxSizeDisplay     string   `json:"maxSizeDisplay"`
	MaxResolution      string   `json:"maxResolution"`
	MaxDurationSeconds int      `json:"maxDurationSeconds"`
	AllowedMimeTypes   []string `json:"allowedMimeTypes"`
}

// MediaUploadGuidelines describe the backend's accepted media formats.
type MediaUploadGuidelines struct {
	Image ImageGuidelines `json:"image"`
	Video VideoGuidelines `json:"video"`
}
