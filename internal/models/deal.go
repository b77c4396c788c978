package models

// ReactionType is a user's vote on a deal. The empty string means no
// reaction; LIKE and DISLIKE are mutually exclusive.
type ReactionType string

const (
	ReactionLike    ReactionType = "LIKE"
	ReactionDislike ReactionType = "DISLIKE"
	ReactionNone    ReactionType = ""
)

// ReactionState is the backend's authoritative reaction tuple for one deal.
type ReactionState struct {
	DealID       string       `json:"dealId"`
	UserReaction ReactionType `json:"userReaction,omitempty"`
	LikeCount    int          `json:"likeCount"`
	DislikeCount int          `json:"dislikeCount"`
}

// Page is the backend's pagination envelope.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
	Size          int `json:"size"`
}

type MediaItem struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	Position int    `json:"position"`
}

type DealSeller struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	Phone         string `json:"phone,omitempty"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
}

// DiscoveryDeal is one result of the geospatial discovery search.
// Timestamps stay as ISO-8601 strings; the client passes them through.
type DiscoveryDeal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	MediaURL   string      `json:"mediaUrl,omitempty"`
	MediaType  string      `json:"mediaType,omitempty"`
	MediaItems []MediaItem `json:"mediaItems,omitempty"`
	Category   string      `json:"category"`

	OriginalPrice   float64 `json:"originalPrice,omitempty"`
	DealPrice       float64 `json:"dealPrice,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`

	RemainingQuantity int    `json:"remainingQuantity,omitempty"`
	StartTime         string `json:"startTime"`
	ExpiryTime        string `json:"expiryTime"`
	TimeLeftMinutes   int    `json:"timeLeftMinutes,omitempty"`

	Location   *Coordinates `json:"location,omitempty"`
	DistanceKm float64      `json:"distanceKm,omitempty"`

	FulfillmentModes []string `json:"fulfillmentModes,omitempty"`
	DeliveryRadiusKm float64  `json:"deliveryRadiusKm,omitempty"`
	ContactPhone     string   `json:"contactPhone,omitempty"`

	Tags      []string   `json:"tags,omitempty"`
	PostType  string     `json:"postType"`
	EventDate string     `json:"eventDate,omitempty"`
	Seller    DealSeller `json:"seller"`

	ViewCount    int          `json:"viewCount"`
	LikeCount    int          `json:"likeCount"`
	DislikeCount int          `json:"dislikeCount"`
	UserReaction ReactionType `json:"userReaction,omitempty"`

	CardType      string `json:"cardType,omitempty"`
	IsUrgent      bool   `json:"isUrgent,omitempty"`
	HasDelivery   bool   `json:"hasDelivery,omitempty"`
	HasWalkIn     bool   `json:"hasWalkIn,omitempty"`
	PrimaryAction string `json:"primaryAction,omitempty"`
}

// ReactionSnapshot extracts the reaction tuple a listing row carries, used to
// seed a card view when no fresher session state exists.
func (d *DiscoveryDeal) ReactionSnapshot() ReactionState {
	return ReactionState{
		DealID:       d.ID,
		UserReaction: d.UserReaction,
		LikeCount:    d.LikeCount,
		DislikeCount: d.DislikeCount,
	}
}

// DiscoverParams are the query parameters of the discovery search. Latitude
// and longitude are mandatory; everything else is omitted when zero.
type DiscoverParams struct {
	Latitude        float64
	Longitude       float64
	Radius          float64
	Query           string
	Category        string
	Subcategory     string
	PostType        string
	DealType        string
	FulfillmentMode string
	Tags            []string
	Page            int
	Size            int
	Sort            string
}

// CreateDealRequest is the payload for creating a deal. Validation tags are
// enforced client-side before any request is sent.
type CreateDealRequest struct {
	PostType               string         `json:"postType" validate:"required"`
	DealType               string         `json:"dealType,omitempty"`
	SubcategoryCode        string         `json:"subcategoryCode,omitempty"`
	SubcategoryName        string         `json:"subcategoryName,omitempty"`
	Title                  string         `json:"title" validate:"required"`
	Description            string         `json:"description,omitempty"`
	OriginalPrice          float64        `json:"originalPrice,omitempty" validate:"gte=0"`
	DealPrice              float64        `json:"dealPrice,omitempty" validate:"gte=0"`
	DiscountValue          float64        `json:"discountValue,omitempty" validate:"gte=0"`
	ServiceDurationMinutes int            `json:"serviceDurationMinutes,omitempty" validate:"gte=0"`
	TotalQuantity          int            `json:"totalQuantity,omitempty" validate:"gte=0"`
	Location               *Coordinates   `json:"location,omitempty"`
	FulfillmentModes       []string       `json:"fulfillmentModes,omitempty"`
	DeliveryRadiusKm       float64        `json:"deliveryRadiusKm,omitempty"`
	ContactPhone           string         `json:"contactPhone,omitempty"`
	Tags                   []string       `json:"tags,omitempty"`
	CustomFields           map[string]any `json:"customFields,omitempty"`
	EventDate              string         `json:"eventDate,omitempty"`
	StartTime              string         `json:"startTime,omitempty"`
	ExpiryTime             string         `json:"expiryTime,omitempty"`
}

// Deal is a seller-owned deal as returned by the management endpoints.
type Deal struct {
	ID                     string         `json:"id"`
	UserID                 string         `json:"userId"`
	PostType               string         `json:"postType"`
	DealType               string         `json:"dealType,omitempty"`
	DealTypeName           string         `json:"dealTypeName,omitempty"`
	SubcategoryCode        string         `json:"subcategoryCode,omitempty"`
	SubcategoryName        string         `json:"subcategoryName,omitempty"`
	Title                  string         `json:"title"`
	Description            string         `json:"description,omitempty"`
	MediaURL               string         `json:"mediaUrl,omitempty"`
	MediaType              string         `json:"mediaType,omitempty"`
	MediaItems             []MediaItem    `json:"mediaItems,omitempty"`
	OriginalPrice          float64        `json:"originalPrice,omitempty"`
	DealPrice              float64        `json:"dealPrice,omitempty"`
	DiscountValue          float64        `json:"discountValue,omitempty"`
	ServiceDurationMinutes int            `json:"serviceDurationMinutes,omitempty"`
	TotalQuantity          int            `json:"totalQuantity,omitempty"`
	RemainingQuantity      int            `json:"remainingQuantity,omitempty"`
	Location               *Coordinates   `json:"location,omitempty"`
	FulfillmentModes       []string       `json:"fulfillmentModes,omitempty"`
	DeliveryRadiusKm       float64        `json:"deliveryRadiusKm,omitempty"`
	ContactPhone           string         `json:"contactPhone,omitempty"`
	Tags                   []string       `json:"tags,omitempty"`
	CustomFields           map[string]any `json:"customFields,omitempty"`
	EventDate              string         `json:"eventDate,omitempty"`
	State                  string         `json:"state"`
	StartTime              string         `json:"startTime"`
	ExpiryTime             string         `json:"expiryTime"`
	ViewCount              int            `json:"viewCount"`
	RedemptionCount        int            `json:"redemptionCount"`
	LikeCount              int            `json:"likeCount"`
	DislikeCount           int            `json:"dislikeCount"`
	CreatedAt              string         `json:"createdAt"`
	UpdatedAt              string         `json:"updatedAt"`
}

// DealStats are the aggregate counters shown on the seller dashboard.
type DealStats struct {
	TotalDeals       int `json:"totalDeals"`
	ActiveDeals      int `json:"activeDeals"`
	TotalViews       int `json:"totalViews"`
	TotalRedemptions int `json:"totalRedemptions"`
	TotalLikes       int `json:"totalLikes"`
}
