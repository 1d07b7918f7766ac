package ports

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Events listing page
	// (GET /)
	ListEventsPage(w http.ResponseWriter, r *http.Request)
	// Apply a filter or pagination change and redirect to the new URL
	// (POST /)
	UpdateQueryState(w http.ResponseWriter, r *http.Request)
	// Event detail page
	// (GET /detail/{id})
	EventDetailPage(w http.ResponseWriter, r *http.Request, id string)
	// List events
	// (GET /api/events)
	ListEvents(w http.ResponseWriter, r *http.Request)
	// Get one event
	// (GET /api/events/{id})
	GetEvent(w http.ResponseWriter, r *http.Request, id string)
	// List event classifications
	// (GET /api/classifications)
	ListClassifications(w http.ResponseWriter, r *http.Request)
	// Liveness probe
	// (GET /healthz)
	Healthz(w http.ResponseWriter, r *http.Request)
}

type MiddlewareFunc func(http.Handler) http.Handler

type GorillaServerOptions struct {
	BaseURL     string
	BaseRouter  *mux.Router
	Middlewares []MiddlewareFunc
}

// HandlerWithOptions registers every route of si on the base router.
func HandlerWithOptions(si ServerInterface, options GorillaServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = mux.NewRouter()
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		var handler http.Handler = h
		for _, middleware := range options.Middlewares {
			handler = middleware(handler)
		}
		return handler
	}

	withID := func(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			fn(w, r, mux.Vars(r)["id"])
		}
	}

	base := options.BaseURL
	r.Handle(base+"/", wrap(si.ListEventsPage)).Methods(http.MethodGet)
	r.Handle(base+"/", wrap(si.UpdateQueryState)).Methods(http.MethodPost)
	r.Handle(base+"/detail/{id}", wrap(withID(si.EventDetailPage))).Methods(http.MethodGet)
	r.Handle(base+"/api/events", wrap(si.ListEvents)).Methods(http.MethodGet)
	r.Handle(base+"/api/events/{id}", wrap(withID(si.GetEvent))).Methods(http.MethodGet)
	r.Handle(base+"/api/classifications", wrap(si.ListClassifications)).Methods(http.MethodGet)
	r.Handle(base+"/healthz", wrap(si.Healthz)).Methods(http.MethodGet)

	return r
}
