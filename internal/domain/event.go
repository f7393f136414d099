package domain

import "time"

type EventType string

const (
	EventAccountRegistered EventType = "account.registered"
	EventSessionLogin      EventType = "session.login"
	EventSessionLogout     EventType = "session.logout"
	EventWishlistChanged   EventType = "wishlist.changed"
	EventReviewSubmitted   EventType = "review.submitted"
	EventLocaleChanged     EventType = "preference.locale_changed"
)

type Event struct {
	Type     EventType      `json:"type"`
	ClientID string         `json:"client_id"`
	At       time.Time      `json:"at"`
	Data     map[string]any `json:"data,omitempty"`
}

func (e Event) Subject() string {
	return "travelwisata." + string(e.Type)
}
