package querystate

import "strconv"

// AddressBar is the externally owned location the store reads from and
// writes to. Every read and write of the query string goes through it.
type AddressBar interface {
	Query() string
	Push(rawQuery string)
}

// Navigator is implemented by address bars that can move through history
// on their own (back/forward). The store subscribes to it and re-hydrates
// on every pop.
type Navigator interface {
	OnPopState(fn func(rawQuery string)) (remove func())
}

// Store holds the current State and mirrors every mutation into its
// AddressBar. A Store is not safe for concurrent use; all calls are expected
// to come from one request or one UI loop.
type Store struct {
	bar         AddressBar
	state       State
	unsubscribe func()
}

// NewStore hydrates a Store from the bar's current query string.
func NewStore(bar AddressBar) *Store {
	s := &Store{
		bar:   bar,
		state: Parse(bar.Query()),
	}
	if nav, ok := bar.(Navigator); ok {
		s.unsubscribe = nav.OnPopState(s.navigate)
	}
	return s
}

// Close detaches the store from its navigator.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// ReadAll re-reads the address bar and returns the resulting state.
func (s *Store) ReadAll() State {
	s.state = Parse(s.bar.Query())
	return s.state
}

// State returns the in-memory snapshot without touching the address bar.
func (s *Store) State() State {
	return s.state
}

// Update sets key to value, or removes it when value is empty. Changing
// anything other than page or size moves the listing back to page 1.
func (s *Store) Update(key Key, value string) State {
	if !key.Valid() {
		return s.state
	}

	next := s.state.with(key, value)
	if key != KeyPage && key != KeySize {
		next.Page = 1
	}
	return s.commit(next)
}

// UpdateMany merges partial into the current state. It is a bulk replace,
// so the page is left alone.
func (s *Store) UpdateMany(partial Partial) State {
	next := s.state
	for k, v := range partial {
		if k.Valid() {
			next = next.with(k, v)
		}
	}
	return s.commit(next)
}

// Clear drops every key except keep, which retain their current values.
func (s *Store) Clear(keep ...Key) State {
	var next State
	for _, k := range keep {
		next = next.with(k, s.state.Get(k))
	}
	return s.commit(next)
}

// ClearFilters removes all filters but keeps the pagination values.
func (s *Store) ClearFilters() State {
	return s.Clear(KeyPage, KeySize)
}

func (s *Store) SetPage(page int) State {
	return s.Update(KeyPage, strconv.Itoa(page))
}

func (s *Store) SetSize(size int) State {
	return s.Update(KeySize, strconv.Itoa(size))
}

// SetEventType treats "all" as no filter.
func (s *Store) SetEventType(eventType string) State {
	if eventType == "all" {
		eventType = ""
	}
	return s.Update(KeyEventType, eventType)
}

// ApplyFilters runs Update for every filter in partial whose value differs
// from the current one, so a filter form submit behaves like editing each
// field in turn. Keys other than filters are ignored.
func (s *Store) ApplyFilters(partial Partial) State {
	for _, k := range FilterKeys {
		v, ok := partial[k]
		if !ok {
			continue
		}
		if k == KeyEventType && v == "all" {
			v = ""
		}
		if v != s.state.Get(k) {
			s.Update(k, v)
		}
	}
	return s.state
}

// SetDateRange only writes the ends that are set and differ from the
// current values; an empty end leaves the stored one in place.
func (s *Store) SetDateRange(from, to string) State {
	if from != "" && from != s.state.DateFrom {
		s.Update(KeyDateFrom, from)
	}
	if to != "" && to != s.state.DateTo {
		s.Update(KeyDateTo, to)
	}
	return s.state
}

func (s *Store) commit(next State) State {
	s.state = next
	s.bar.Push(next.Encode())
	return next
}

// navigate replaces the state wholesale; back/forward never resets the page.
func (s *Store) navigate(rawQuery string) {
	s.state = Parse(rawQuery)
}
