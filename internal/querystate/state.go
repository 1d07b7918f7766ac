package querystate

import (
	"net/url"
	"strconv"
	"strings"
)

// Key names a filter or pagination value carried in the URL query string.
type Key string

const (
	KeyPage      Key = "page"
	KeySize      Key = "size"
	KeySearch    Key = "search"
	KeyEventType Key = "eventType"
	KeyDateFrom  Key = "dateFrom"
	KeyDateTo    Key = "dateTo"
	KeyLocation  Key = "location"
)

// Keys lists every recognised key in serialization order.
var Keys = []Key{KeyDateFrom, KeyDateTo, KeyEventType, KeyLocation, KeyPage, KeySearch, KeySize}

// FilterKeys are the keys whose change invalidates the pagination position.
var FilterKeys = []Key{KeySearch, KeyEventType, KeyDateFrom, KeyDateTo, KeyLocation}

// State is the flat set of filter/pagination values. A zero field is absent.
type State struct {
	Page      int    `json:"page,omitempty"`
	Size      int    `json:"size,omitempty"`
	Search    string `json:"search,omitempty"`
	EventType string `json:"eventType,omitempty"`
	DateFrom  string `json:"dateFrom,omitempty"`
	DateTo    string `json:"dateTo,omitempty"`
	Location  string `json:"location,omitempty"`
}

// Partial is a shallow patch applied by Store.UpdateMany. A key mapped to
// the empty string is removed.
type Partial map[Key]string

// Parse hydrates a State from a raw query string. Unknown keys are ignored
// and page/size values that are not positive base-10 integers are dropped.
// Parse never fails: pairs are split on '&' only, and text that is not a
// valid escape is kept literally, so "rock;pop" and "100%" survive.
func Parse(rawQuery string) State {
	values := parseQuery(rawQuery)

	var s State
	for _, k := range Keys {
		s = s.with(k, values.Get(string(k)))
	}
	return s
}

func parseQuery(rawQuery string) url.Values {
	values := url.Values{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		values.Add(unescape(name), unescape(value))
	}
	return values
}

// unescape decodes '+' and every well-formed %XX sequence, leaving a
// malformed '%' as is.
func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			n, _ := strconv.ParseUint(s[i+1:i+3], 16, 8)
			b.WriteByte(byte(n))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// Encode serializes the non-empty fields. Keys are sorted so the output is
// deterministic.
func (s State) Encode() string {
	values := url.Values{}
	for _, k := range Keys {
		if v := s.Get(k); v != "" {
			values.Set(string(k), v)
		}
	}
	return values.Encode()
}

// Get returns the string form of k, or "" when k is absent.
func (s State) Get(k Key) string {
	switch k {
	case KeyPage:
		return formatInt(s.Page)
	case KeySize:
		return formatInt(s.Size)
	case KeySearch:
		return s.Search
	case KeyEventType:
		return s.EventType
	case KeyDateFrom:
		return s.DateFrom
	case KeyDateTo:
		return s.DateTo
	case KeyLocation:
		return s.Location
	}
	return ""
}

// Has reports whether k holds a value.
func (s State) Has(k Key) bool {
	return s.Get(k) != ""
}

// HasFilters reports whether any non-pagination key is set.
func (s State) HasFilters() bool {
	for _, k := range FilterKeys {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// with returns a copy of s with k set to value. An empty value, or an
// invalid integer for page/size, removes k.
func (s State) with(k Key, value string) State {
	switch k {
	case KeyPage:
		s.Page = parsePositive(value)
	case KeySize:
		s.Size = parsePositive(value)
	case KeySearch:
		s.Search = value
	case KeyEventType:
		s.EventType = value
	case KeyDateFrom:
		s.DateFrom = value
	case KeyDateTo:
		s.DateTo = value
	case KeyLocation:
		s.Location = value
	}
	return s
}

func parsePositive(value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func formatInt(n int) string {
	if n < 1 {
		return ""
	}
	return strconv.Itoa(n)
}

// Valid reports whether k is a recognised key.
func (k Key) Valid() bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}
