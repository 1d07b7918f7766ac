package events

import (
	"strconv"
	"strings"

	"eventfinder/pkg/ticketmaster"
)

const (
	defaultDescription = "No description available for this event."
	defaultVenue       = "Venue TBA"
	defaultEventType   = "Event"
	defaultOrganizer   = "Event Organizer"
	defaultPrice       = "Price varies"

	minImageWidth = 640
)

// DefaultClassifications is shown when the classification list cannot be
// fetched.
var DefaultClassifications = []string{"Music", "Sports", "Arts & Theatre", "Film", "Miscellaneous"}

// Event is the normalized event rendered by the listing and detail views.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Venue       string `json:"venue"`
	DateTime    string `json:"dateTime"`
	EventType   string `json:"eventType"`
	Organizer   string `json:"organizer"`
	Price       string `json:"price,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	TicketURL   string `json:"ticketUrl,omitempty"`
	PleaseNote  string `json:"pleaseNote,omitempty"`
}

// Normalize flattens a Discovery API event into an Event, filling the
// display defaults for anything the upstream left out.
func Normalize(tm ticketmaster.Event) Event {
	var venue *ticketmaster.Venue
	var attractions []ticketmaster.NamedRef
	if tm.Embedded != nil {
		if len(tm.Embedded.Venues) > 0 {
			venue = &tm.Embedded.Venues[0]
		}
		attractions = tm.Embedded.Attractions
	}

	e := Event{
		ID:          tm.ID,
		Title:       tm.Name,
		Description: firstNonEmpty(tm.Info, tm.PleaseNote, defaultDescription),
		Location:    venueLocation(venue),
		Venue:       defaultVenue,
		DateTime:    startDateTime(tm.Dates.Start),
		EventType:   defaultEventType,
		Organizer:   defaultOrganizer,
		Price:       formatPrice(tm.PriceRanges),
		ImageURL:    pickImage(tm.Images),
		TicketURL:   tm.URL,
		PleaseNote:  tm.PleaseNote,
	}

	if venue != nil && venue.Name != "" {
		e.Venue = venue.Name
	}
	if len(tm.Classifications) > 0 && tm.Classifications[0].Segment != nil && tm.Classifications[0].Segment.Name != "" {
		e.EventType = tm.Classifications[0].Segment.Name
	}
	switch {
	case tm.Promoter != nil && tm.Promoter.Name != "":
		e.Organizer = tm.Promoter.Name
	case len(attractions) > 0 && attractions[0].Name != "":
		e.Organizer = attractions[0].Name
	}

	return e
}

func venueLocation(v *ticketmaster.Venue) string {
	if v == nil {
		return ""
	}

	var city, state, country string
	if v.City != nil {
		city = v.City.Name
	}
	if v.State != nil {
		state = firstNonEmpty(v.State.StateCode, v.State.Name)
	}
	if v.Country != nil {
		country = firstNonEmpty(v.Country.CountryCode, v.Country.Name)
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{city, state, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func formatPrice(ranges []ticketmaster.PriceRange) string {
	if len(ranges) == 0 {
		return defaultPrice
	}
	r := ranges[0]
	if r.Min == r.Max {
		return "$" + formatAmount(r.Min)
	}
	return "$" + formatAmount(r.Min) + " - $" + formatAmount(r.Max)
}

// formatAmount prints whole amounts without a fraction, like 45 rather than 45.00.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pickImage(images []ticketmaster.Image) string {
	for _, img := range images {
		if img.Width >= minImageWidth {
			return img.URL
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}

func startDateTime(start ticketmaster.DateStart) string {
	switch {
	case start.LocalTime != "":
		return start.LocalDate + "T" + start.LocalTime
	case start.DateTime != "":
		return start.DateTime
	default:
		return start.LocalDate + "T00:00:00"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
