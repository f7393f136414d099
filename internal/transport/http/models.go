package http

import (
	"time"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
)

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid email or password"`
}

type ClientResponse struct {
	ClientID  string    `json:"client_id" example:"0b6f3c5e-2f7c-4a8e-9f55-1c3f0d9a1e22"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" example:"Dina"`
	Email    string `json:"email" example:"dina@x.com"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"dina@x.com"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Session *domain.Session `json:"session"`
	IsAdmin bool            `json:"is_admin"`
}

type DestinationDetailResponse struct {
	Destination  domain.Destination `json:"destination"`
	MapsEmbedURL string             `json:"maps_embed_url"`
	Is24Hours    bool               `json:"is_24_hours"`
	OpenNow      bool               `json:"open_now"`
	Today        domain.DayHours    `json:"today"`
}

type WishlistRequest struct {
	DestinationID string `json:"destination_id" example:"3"`
}

type WishlistResponse struct {
	Wishlist     []string             `json:"wishlist"`
	Destinations []domain.Destination `json:"destinations"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" example:"5"`
	Comment string `json:"comment" example:"Pemandangan luar biasa"`
}

type ReviewListResponse struct {
	Reviews []domain.Review      `json:"reviews"`
	Summary domain.ReviewSummary `json:"summary"`
}

type LocaleRequest struct {
	Locale string `json:"locale" example:"en"`
}

type LocaleResponse struct {
	Locale domain.Locale `json:"locale" example:"id"`
}
