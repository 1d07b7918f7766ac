package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventfinder/internal/events"
	"eventfinder/internal/pagination"
	"eventfinder/internal/querystate"
	"eventfinder/internal/sqlc"
	"eventfinder/pkg/telemetry"
	"eventfinder/pkg/ticketmaster"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotConfigured = errors.New("ticketmaster API key not configured")
)

type EventsService interface {
	List(ctx context.Context, state querystate.State) (*ListResult, error)
	Get(ctx context.Context, id string) (*events.Event, error)
	Classifications(ctx context.Context) []string
	RefreshClassifications(ctx context.Context) ([]string, error)
	Preload(ctx context.Context, pages int) (int, error)
}

// EventArchive is the local copy of events and classifications.
type EventArchive interface {
	GetEvent(ctx context.Context, id string) (events.Event, error)
	ListClassifications(ctx context.Context) ([]string, error)
	SaveClassifications(ctx context.Context, names []string) error
}

// Archiver takes fetched events off the request path.
type Archiver interface {
	ArchiveEvents(ctx context.Context, items []events.Event) error
}

type ListResult struct {
	Events []events.Event
	Pager  pagination.Pager

	// Configured is false when no API key is set and nothing was fetched.
	Configured bool
}

type eventsService struct {
	client   ticketmaster.ClientInterface
	archive  EventArchive
	archiver Archiver
	apiKey   string
	group    singleflight.Group
}

func NewEventsService(
	client ticketmaster.ClientInterface,
	archive EventArchive,
	archiver Archiver,
	apiKey string,
) EventsService {
	return &eventsService{
		client:   client,
		archive:  archive,
		archiver: archiver,
		apiKey:   apiKey,
	}
}

func (s *eventsService) List(ctx context.Context, state querystate.State) (*ListResult, error) {
	ctx, span := telemetry.Global().T().Start(ctx, "EventsService.List")
	defer span.End()

	page, size := state.Page, state.Size
	if page < 1 {
		page = pagination.DefaultPage
	}
	if size < 1 {
		size = pagination.DefaultSize
	}

	result := &ListResult{
		Pager: pagination.Pager{Current: page, Size: size, TotalPages: 1},
	}

	if s.apiKey == "" {
		slog.WarnContext(ctx, "ticketmaster API key not configured")
		return result, nil
	}
	result.Configured = true

	params := SearchParamsFromState(state)
	upstreamPage := page - 1
	params.Page = &upstreamPage
	params.Size = &size

	span.SetAttributes(
		attribute.Int("page", page),
		attribute.Int("size", size),
		attribute.String("query", state.Encode()),
	)

	resp, err := s.client.SearchEvents(ctx, params)
	if err != nil {
		slog.ErrorContext(ctx, "unable to fetch events", "error", err, "query", state.Encode())
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	items := resp.Events()
	result.Events = make([]events.Event, 0, len(items))
	for _, tm := range items {
		result.Events = append(result.Events, events.Normalize(tm))
	}

	result.Pager.TotalPages = resp.Page.TotalPages
	if result.Pager.TotalPages == 0 {
		result.Pager.TotalPages = 1
	}
	result.Pager.TotalElements = resp.Page.TotalElements
	if result.Pager.TotalElements == 0 {
		result.Pager.TotalElements = len(result.Events)
	}

	s.archiveEvents(ctx, result.Events)

	return result, nil
}

func (s *eventsService) Get(ctx context.Context, id string) (*events.Event, error) {
	ctx, span := telemetry.Global().T().Start(ctx, "EventsService.Get")
	defer span.End()
	span.SetAttributes(attribute.String("event.id", id))

	archived, err := s.archive.GetEvent(ctx, id)
	if err == nil {
		return &archived, nil
	}
	if !errors.Is(err, sqlc.ErrNotFound) {
		slog.WarnContext(ctx, "unable to read archived event", "error", err, "id", id)
	}

	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}

	tm, err := s.client.GetEvent(ctx, id)
	if err != nil {
		var apiErr *ticketmaster.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("fetch event %s: %w", id, err)
	}

	event := events.Normalize(*tm)
	s.archiveEvents(ctx, []events.Event{event})

	return &event, nil
}

// Classifications never fails: it serves the archived list, then a live
// fetch, then the built-in defaults.
func (s *eventsService) Classifications(ctx context.Context) []string {
	names, err := s.archive.ListClassifications(ctx)
	if err != nil {
		slog.WarnContext(ctx, "unable to read archived classifications", "error", err)
	}
	if len(names) > 0 {
		return names
	}

	names, err = s.RefreshClassifications(ctx)
	if err != nil || len(names) == 0 {
		if err != nil {
			slog.ErrorContext(ctx, "error fetching classifications", "error", err)
		}
		return events.DefaultClassifications
	}
	return names
}

// RefreshClassifications fetches the classification list and stores it.
// Concurrent callers share one upstream request.
func (s *eventsService) RefreshClassifications(ctx context.Context) ([]string, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}

	// The fetch is shared, so one caller going away must not fail the rest.
	shared := context.WithoutCancel(ctx)

	v, err, _ := s.group.Do("classifications", func() (any, error) {
		resp, err := s.client.ListClassifications(shared)
		if err != nil {
			return nil, err
		}

		var names []string
		if resp.Embedded != nil {
			names = events.ClassificationNames(resp.Embedded.Classifications)
		}
		if len(names) == 0 {
			return names, nil
		}

		if err := s.archive.SaveClassifications(shared, names); err != nil {
			slog.WarnContext(shared, "unable to store classifications", "error", err)
		}
		return names, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch classifications: %w", err)
	}
	return v.([]string), nil
}

func (s *eventsService) archiveEvents(ctx context.Context, items []events.Event) {
	if s.archiver == nil || len(items) == 0 {
		return
	}
	if err := s.archiver.ArchiveEvents(ctx, items); err != nil {
		slog.WarnContext(ctx, "unable to archive events", "error", err, "count", len(items))
	}
}

// SearchParamsFromState maps the filters onto Discovery API parameters.
// Paging is left to the caller.
func SearchParamsFromState(state querystate.State) *ticketmaster.SearchParams {
	params := &ticketmaster.SearchParams{}

	if state.Search != "" {
		params.Keyword = &state.Search
	}
	if state.EventType != "" {
		params.ClassificationName = &state.EventType
	}

	city, stateCode := events.ParseLocation(state.Location)
	if city != "" {
		params.City = &city
	}
	if stateCode != "" {
		params.StateCode = &stateCode
	}

	params.StartDateTime = dayBound(state.DateFrom, "T00:00:00Z")
	params.EndDateTime = dayBound(state.DateTo, "T23:59:59Z")

	return params
}

// dayBound turns a YYYY-MM-DD value into a UTC timestamp string. Anything
// that is not a valid date is dropped.
func dayBound(value, clock string) *string {
	if value == "" {
		return nil
	}

	var d openapi_types.Date
	if err := d.UnmarshalText([]byte(value)); err != nil {
		return nil
	}

	bound := d.String() + clock
	return &bound
}
