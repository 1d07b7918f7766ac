package events

import (
	"testing"

	"eventfinder/pkg/ticketmaster"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Full(t *testing.T) {
	tm := ticketmaster.Event{
		ID:   "G5v",
		Name: "Jazz Night",
		Info: "Bring friends.",
		URL:  "https://ticketmaster.com/G5v",
		Images: []ticketmaster.Image{
			{URL: "small.jpg", Width: 300},
			{URL: "large.jpg", Width: 1024},
		},
		Dates: ticketmaster.Dates{Start: ticketmaster.DateStart{LocalDate: "2025-07-04", LocalTime: "20:00:00"}},
		Classifications: []ticketmaster.Classification{
			{Segment: &ticketmaster.NamedRef{Name: "Music"}},
		},
		Embedded: &ticketmaster.EventEmbedded{
			Venues: []ticketmaster.Venue{{
				Name:    "Preservation Hall",
				City:    &ticketmaster.City{Name: "New Orleans"},
				State:   &ticketmaster.State{Name: "Louisiana", StateCode: "LA"},
				Country: &ticketmaster.Country{Name: "United States Of America", CountryCode: "US"},
			}},
			Attractions: []ticketmaster.NamedRef{{Name: "The Band"}},
		},
		PriceRanges: []ticketmaster.PriceRange{{Min: 25, Max: 89.5}},
		Promoter:    &ticketmaster.Promoter{Name: "Live Nation"},
	}

	e := Normalize(tm)

	assert.Equal(t, Event{
		ID:          "G5v",
		Title:       "Jazz Night",
		Description: "Bring friends.",
		Location:    "New Orleans, LA, US",
		Venue:       "Preservation Hall",
		DateTime:    "2025-07-04T20:00:00",
		EventType:   "Music",
		Organizer:   "Live Nation",
		Price:       "$25 - $89.5",
		ImageURL:    "large.jpg",
		TicketURL:   "https://ticketmaster.com/G5v",
	}, e)
}

func TestNormalize_Defaults(t *testing.T) {
	e := Normalize(ticketmaster.Event{
		ID:    "x",
		Name:  "Mystery",
		Dates: ticketmaster.Dates{Start: ticketmaster.DateStart{LocalDate: "2025-01-02"}},
	})

	assert.Equal(t, defaultDescription, e.Description)
	assert.Equal(t, "", e.Location)
	assert.Equal(t, defaultVenue, e.Venue)
	assert.Equal(t, "2025-01-02T00:00:00", e.DateTime)
	assert.Equal(t, defaultEventType, e.EventType)
	assert.Equal(t, defaultOrganizer, e.Organizer)
	assert.Equal(t, defaultPrice, e.Price)
	assert.Empty(t, e.ImageURL)
}

func TestNormalize_Fallbacks(t *testing.T) {
	e := Normalize(ticketmaster.Event{
		PleaseNote: "No re-entry.",
		Images:     []ticketmaster.Image{{URL: "only.jpg", Width: 100}},
		Dates:      ticketmaster.Dates{Start: ticketmaster.DateStart{LocalDate: "2025-01-02", DateTime: "2025-01-02T18:00:00Z"}},
		Embedded: &ticketmaster.EventEmbedded{
			Venues:      []ticketmaster.Venue{{City: &ticketmaster.City{Name: "Oslo"}, Country: &ticketmaster.Country{Name: "Norway"}}},
			Attractions: []ticketmaster.NamedRef{{Name: "Headliner"}},
		},
		PriceRanges: []ticketmaster.PriceRange{{Min: 40, Max: 40}},
	})

	assert.Equal(t, "No re-entry.", e.Description)
	assert.Equal(t, "No re-entry.", e.PleaseNote)
	assert.Equal(t, "only.jpg", e.ImageURL)
	assert.Equal(t, "2025-01-02T18:00:00Z", e.DateTime)
	assert.Equal(t, "Oslo, Norway", e.Location)
	assert.Equal(t, "Headliner", e.Organizer)
	assert.Equal(t, "$40", e.Price)
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in, city, state string
	}{
		{"", "", ""},
		{"Austin", "Austin", ""},
		{"Austin, tx", "Austin", "TX"},
		{"Austin , Texas", "Austin", ""},
		{"Portland, OR, US", "Portland", "OR"},
	}
	for _, tt := range tests {
		city, state := ParseLocation(tt.in)
		assert.Equal(t, tt.city, city, tt.in)
		assert.Equal(t, tt.state, state, tt.in)
	}
}

func TestTypeClass(t *testing.T) {
	assert.Contains(t, TypeClass("Sports"), "bg-red-100")
	assert.Contains(t, TypeClass("Unknown"), "bg-gray-100")
}

func TestClassificationNames(t *testing.T) {
	names := ClassificationNames([]ticketmaster.Classification{
		{Segment: &ticketmaster.NamedRef{Name: "Sports"}},
		{Segment: &ticketmaster.NamedRef{Name: "Music"}},
		{Segment: &ticketmaster.NamedRef{Name: "Music"}},
		{Type: &ticketmaster.NamedRef{Name: "Donation"}},
		{},
	})

	assert.Equal(t, []string{"Donation", "Music", "Sports"}, names)
}
