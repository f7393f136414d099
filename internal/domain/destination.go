package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Destination struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Location        string         `json:"location"`
	Category        string         `json:"category"`
	Image           string         `json:"image"`
	Gallery         []string       `json:"gallery"`
	Rating          float64        `json:"rating"`
	Reviews         int            `json:"reviews"`
	Price           string         `json:"price"`
	Description     string         `json:"description"`
	LongDescription string         `json:"long_description,omitempty"`
	Address         string         `json:"address"`
	Coordinates     Coordinates    `json:"coordinates"`
	Hours           OperatingHours `json:"operating_hours"`
	Facilities      []string       `json:"facilities"`
}

// Clone returns a deep copy so callers can never mutate catalog slices.
func (d Destination) Clone() Destination {
	out := d
	out.Gallery = append([]string(nil), d.Gallery...)
	out.Facilities = append([]string(nil), d.Facilities...)
	return out
}

// IDString is the wishlist/review key form of the id.
func (d Destination) IDString() string {
	return strconv.FormatInt(d.ID, 10)
}

type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// MapsEmbedURL renders the embedded Google Maps frame URL for the pair.
func (c Coordinates) MapsEmbedURL() string {
	lng := url.QueryEscape(strconv.FormatFloat(c.Lng, 'f', -1, 64))
	lat := url.QueryEscape(strconv.FormatFloat(c.Lat, 'f', -1, 64))
	return fmt.Sprintf("https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3153!2d%s!3d%s!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x0%%3A0x0!5e0!3m2!1sen!2sid", lng, lat)
}

type DayHours struct {
	Open     string `json:"open"`
	Close    string `json:"close"`
	IsClosed bool   `json:"is_closed"`
}

type OperatingHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

func DefaultOperatingHours() OperatingHours {
	d := DayHours{Open: "08:00", Close: "17:00"}
	return OperatingHours{Monday: d, Tuesday: d, Wednesday: d, Thursday: d, Friday: d, Saturday: d, Sunday: d}
}

// Days lists the table in Monday-first display order.
func (h OperatingHours) Days() []DayHours {
	return []DayHours{h.Monday, h.Tuesday, h.Wednesday, h.Thursday, h.Friday, h.Saturday, h.Sunday}
}

func (h OperatingHours) IsZero() bool {
	return h == OperatingHours{}
}

func (h OperatingHours) Day(wd time.Weekday) DayHours {
	switch wd {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	default:
		return h.Sunday
	}
}

func (h OperatingHours) Today(t time.Time) DayHours {
	return h.Day(t.Weekday())
}

func (h OperatingHours) Is24Hours() bool {
	for _, d := range h.Days() {
		if d.IsClosed || d.Open != "00:00" || (d.Close != "23:59" && d.Close != "24:00") {
			return false
		}
	}
	return true
}

// OpenAt compares "HH:MM" strings, boundaries inclusive.
func (h OperatingHours) OpenAt(t time.Time) bool {
	today := h.Today(t)
	if today.IsClosed {
		return false
	}
	now := t.Format("15:04")
	return now >= today.Open && now <= today.Close
}

// ValidClock reports whether v is a 24h "HH:MM" value; "24:00" is accepted as end of day.
func ValidClock(v string) bool {
	if v == "24:00" {
		return true
	}
	if len(v) != 5 || v[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}

// DestinationForm is the admin editor payload, one struct per form section.
type DestinationForm struct {
	Basic      DestinationBasicInfo `json:"basic"`
	Images     DestinationImages    `json:"images"`
	Hours      *OperatingHours      `json:"hours,omitempty"`
	Facilities []string             `json:"facilities"`
	Location   DestinationLocation  `json:"location"`
}

type DestinationBasicInfo struct {
	Name            string `json:"name"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	Price           string `json:"price"`
	Description     string `json:"description"`
	LongDescription string `json:"long_description"`
}

type DestinationImages struct {
	Gallery []string `json:"gallery"`
}

type DestinationLocation struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

// Normalized trims free-text fields and drops empty gallery/facility entries.
func (f DestinationForm) Normalized() DestinationForm {
	out := f
	out.Basic = DestinationBasicInfo{
		Name:            strings.TrimSpace(f.Basic.Name),
		Location:        strings.TrimSpace(f.Basic.Location),
		Category:        strings.TrimSpace(f.Basic.Category),
		Price:           strings.TrimSpace(f.Basic.Price),
		Description:     strings.TrimSpace(f.Basic.Description),
		LongDescription: strings.TrimSpace(f.Basic.LongDescription),
	}
	out.Images.Gallery = trimNonEmpty(f.Images.Gallery, false)
	out.Facilities = trimNonEmpty(f.Facilities, true)
	out.Location.Address = strings.TrimSpace(f.Location.Address)
	return out
}

func trimNonEmpty(values []string, dedupe bool) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if dedupe {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		}
		out = append(out, v)
	}
	return out
}

type DestinationFilter struct {
	Category string
	Search   string
}

type DestinationStats struct {
	TotalDestinations int     `json:"total_destinations"`
	TotalReviews      int     `json:"total_reviews"`
	AverageRating     float64 `json:"average_rating"`
}
