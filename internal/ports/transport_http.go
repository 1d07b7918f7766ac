package ports

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"eventfinder/internal/events"
	"eventfinder/internal/middleware"
	"eventfinder/internal/pagination"
	"eventfinder/internal/querystate"
	"eventfinder/internal/service"
)

type HttpServer struct {
	events    service.EventsService
	templates *template.Template
}

func NewHttpServer(eventsService service.EventsService) (ServerInterface, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &HttpServer{
		events:    eventsService,
		templates: templates,
	}, nil
}

// Events listing page
// (GET /)
func (s *HttpServer) ListEventsPage(w http.ResponseWriter, r *http.Request) {
	store := querystate.NewStore(querystate.NewRequestBar(r.URL.Path, r.URL.RawQuery))
	state := store.ReadAll()

	classifications := s.events.Classifications(r.Context())

	result, err := s.events.List(r.Context(), state)
	if err != nil {
		result = &service.ListResult{
			Pager:      pagination.Pager{Current: max(state.Page, 1), TotalPages: 1},
			Configured: true,
		}
	}

	view := newListView(state, result, classifications)
	if err != nil {
		logError(r.Context(), "unable to list events", "error", err, "query", state.Encode())
		view.Error = errorMessage(err)
		view.RetryHref = stateLocation(r.URL.Path, state, func(s *querystate.Store) { s.SetPage(1) })
	}

	s.render(w, r, http.StatusOK, "list.html", view)
}

// Apply a filter or pagination change and redirect to the new URL
// (POST /)
func (s *HttpServer) UpdateQueryState(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	bar := querystate.NewRequestBar(r.URL.Path, r.PostForm.Get("state"))
	store := querystate.NewStore(bar)
	state := store.State()

	key := querystate.Key(r.PostForm.Get("key"))
	value := r.PostForm.Get("value")

	pager := pagination.Pager{
		Current:    max(state.Page, 1),
		TotalPages: atoi(r.PostForm.Get("totalPages")),
	}

	switch r.PostForm.Get("op") {
	case "update":
		if !key.Valid() {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		if key == querystate.KeyEventType {
			store.SetEventType(value)
		} else {
			store.Update(key, value)
		}
	case "filters":
		partial := querystate.Partial{}
		for _, k := range querystate.FilterKeys {
			if _, ok := r.PostForm[string(k)]; ok {
				partial[k] = r.PostForm.Get(string(k))
			}
		}
		store.ApplyFilters(partial)
	case "update_many":
		partial := querystate.Partial{}
		for _, k := range querystate.Keys {
			if _, ok := r.PostForm[string(k)]; ok {
				partial[k] = r.PostForm.Get(string(k))
			}
		}
		store.UpdateMany(partial)
	case "date_range":
		store.SetDateRange(r.PostForm.Get("dateFrom"), r.PostForm.Get("dateTo"))
	case "clear":
		store.ClearFilters()
	case "page":
		store.SetPage(pager.Clamp(atoi(value)))
	case "next":
		store.SetPage(pager.Next())
	case "previous":
		store.SetPage(pager.Previous())
	case "size":
		store.SetSize(atoi(value))
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, bar.Location(), http.StatusSeeOther)
}

// Event detail page
// (GET /detail/{id})
func (s *HttpServer) EventDetailPage(w http.ResponseWriter, r *http.Request, id string) {
	event, err := s.events.Get(r.Context(), id)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logError(r.Context(), "unable to load event", "error", err, "id", id)
		}
		s.render(w, r, status, "error.html", map[string]any{"Status": status, "Message": http.StatusText(status)})
		return
	}

	// back carries the listing query the visitor came from.
	backHref := querystate.NewRequestBar("/", querystate.Parse(r.URL.Query().Get("back")).Encode()).Location()

	s.render(w, r, http.StatusOK, "detail.html", detailView{Event: event, BackHref: backHref})
}

type listEventsResponse struct {
	Events        []events.Event     `json:"events"`
	Query         querystate.State   `json:"query"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
	TotalPages    int                `json:"totalPages"`
	TotalElements int                `json:"totalElements"`
	HasNext       bool               `json:"hasNext"`
	HasPrevious   bool               `json:"hasPrevious"`
	Window        []pagination.Token `json:"window"`
}

// List events
// (GET /api/events)
func (s *HttpServer) ListEvents(w http.ResponseWriter, r *http.Request) {
	store := querystate.NewStore(querystate.NewRequestBar(r.URL.Path, r.URL.RawQuery))
	state := store.ReadAll()

	result, err := s.events.List(r.Context(), state)
	if err != nil {
		logError(r.Context(), "unable to list events", "error", err, "query", state.Encode())
		writeJSONError(w, http.StatusBadGateway, errorMessage(err))
		return
	}

	window := result.Pager.Window()
	if window == nil {
		window = []pagination.Token{}
	}

	writeJSON(w, http.StatusOK, listEventsResponse{
		Events:        result.Events,
		Query:         state,
		Page:          result.Pager.Current,
		Size:          result.Pager.Size,
		TotalPages:    result.Pager.TotalPages,
		TotalElements: result.Pager.TotalElements,
		HasNext:       result.Pager.HasNext(),
		HasPrevious:   result.Pager.HasPrevious(),
		Window:        window,
	})
}

// Get one event
// (GET /api/events/{id})
func (s *HttpServer) GetEvent(w http.ResponseWriter, r *http.Request, id string) {
	event, err := s.events.Get(r.Context(), id)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logError(r.Context(), "unable to load event", "error", err, "id", id)
			status = http.StatusBadGateway
		}
		writeJSONError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// List event classifications
// (GET /api/classifications)
func (s *HttpServer) ListClassifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.events.Classifications(r.Context()))
}

// Liveness probe
// (GET /healthz)
func (s *HttpServer) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HttpServer) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		logError(r.Context(), "unable to render template", "template", name, "error", err)
	}
}

// logError tags the record with the request id when one was assigned.
func logError(ctx context.Context, msg string, args ...any) {
	if id, ok := middleware.RequestIDFromContext(ctx); ok {
		args = append(args, "request_id", id)
	}
	slog.ErrorContext(ctx, msg, args...)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("unable to encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
