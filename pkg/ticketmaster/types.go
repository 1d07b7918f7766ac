package ticketmaster

// Event mirrors the subset of the Discovery API event resource we read.
type Event struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Info   string  `json:"info,omitempty"`
	URL    string  `json:"url"`
	Locale string  `json:"locale,omitempty"`
	Images []Image `json:"images,omitempty"`
	Dates  Dates   `json:"dates"`

	Classifications []Classification `json:"classifications,omitempty"`
	Embedded        *EventEmbedded   `json:"_embedded,omitempty"`
	PriceRanges     []PriceRange     `json:"priceRanges,omitempty"`
	Promoter        *Promoter        `json:"promoter,omitempty"`
	PleaseNote      string           `json:"pleaseNote,omitempty"`
	TicketLimit     *TicketLimit     `json:"ticketLimit,omitempty"`
}

type Image struct {
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Fallback bool   `json:"fallback"`
}

type Dates struct {
	Start    DateStart `json:"start"`
	Timezone string    `json:"timezone,omitempty"`
	Status   struct {
		Code string `json:"code"`
	} `json:"status"`
}

type DateStart struct {
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime,omitempty"`
	DateTime  string `json:"dateTime,omitempty"`
}

type NamedRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type Classification struct {
	Primary  bool      `json:"primary"`
	Segment  *NamedRef `json:"segment,omitempty"`
	Genre    *NamedRef `json:"genre,omitempty"`
	SubGenre *NamedRef `json:"subGenre,omitempty"`
	Type     *NamedRef `json:"type,omitempty"`
}

type EventEmbedded struct {
	Venues      []Venue    `json:"venues,omitempty"`
	Attractions []NamedRef `json:"attractions,omitempty"`
}

type Venue struct {
	Name    string   `json:"name"`
	City    *City    `json:"city,omitempty"`
	State   *State   `json:"state,omitempty"`
	Country *Country `json:"country,omitempty"`
	Address *Address `json:"address,omitempty"`
}

type City struct {
	Name string `json:"name"`
}

type State struct {
	Name      string `json:"name"`
	StateCode string `json:"stateCode"`
}

type Country struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

type Address struct {
	Line1 string `json:"line1"`
}

type PriceRange struct {
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

type Promoter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TicketLimit struct {
	Info string `json:"info"`
}

// Page is the paging block of a search response. Number is 0-based.
type Page struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

type EventsResponse struct {
	Embedded *EventsEmbedded `json:"_embedded,omitempty"`
	Page     Page            `json:"page"`
}

type EventsEmbedded struct {
	Events []Event `json:"events"`
}

// Events returns the embedded events, or nil when the search matched nothing.
func (r *EventsResponse) Events() []Event {
	if r == nil || r.Embedded == nil {
		return nil
	}
	return r.Embedded.Events
}

type ClassificationsResponse struct {
	Embedded *ClassificationsEmbedded `json:"_embedded,omitempty"`
}

type ClassificationsEmbedded struct {
	Classifications []Classification `json:"classifications"`
}

// SearchParams are the optional filters of the event search. Nil fields
// are not sent.
type SearchParams struct {
	Keyword            *string
	City               *string
	StateCode          *string
	ClassificationName *string
	StartDateTime      *string
	EndDateTime        *string

	// Page is 0-based.
	Page *int
	Size *int
}
