package ports

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"time"

	"eventfinder/internal/events"
	"eventfinder/internal/pagination"
	"eventfinder/internal/querystate"
	"eventfinder/internal/service"
	"eventfinder/pkg/ticketmaster"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templatesFS embed.FS

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
)

var eventTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"typeClass":  events.TypeClass,
		"formatDate": formatDate,
		"formatTime": formatTime,
		"markdown":   renderMarkdown,
		"comma":      func(n int) string { return humanize.Comma(int64(n)) },
	}).ParseFS(templatesFS, "templates/*.html")
}

// renderMarkdown renders event text as HTML. Raw HTML in the source is
// escaped by goldmark's default renderer.
func renderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}

func parseEventTime(value string) (time.Time, bool) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders e.g. "Friday, July 4, 2025".
func formatDate(value string) string {
	t, ok := parseEventTime(value)
	if !ok {
		return value
	}
	return t.Format("Monday, January 2, 2006")
}

// formatTime renders e.g. "8:00 PM".
func formatTime(value string) string {
	t, ok := parseEventTime(value)
	if !ok {
		return ""
	}
	return t.Format("3:04 PM")
}

type pageLink struct {
	Label    string
	Href     string
	Active   bool
	Ellipsis bool
}

type listView struct {
	State           querystate.State
	RawQuery        string
	Events          []events.Event
	Pager           pagination.Pager
	Links           []pageLink
	PrevHref        string
	NextHref        string
	From, To        int
	PageSizes       []int
	Classifications []string
	Configured      bool
	Error           string
	RetryHref       string
}

type detailView struct {
	Event    *events.Event
	BackHref string
}

// stateLocation returns the URL the store would push after fn runs against
// a copy of state.
func stateLocation(path string, state querystate.State, fn func(*querystate.Store)) string {
	bar := querystate.NewRequestBar(path, state.Encode())
	store := querystate.NewStore(bar)
	fn(store)
	return bar.Location()
}

func newListView(state querystate.State, result *service.ListResult, classifications []string) listView {
	view := listView{
		State:           state,
		RawQuery:        state.Encode(),
		PageSizes:       pagination.PageSizes,
		Classifications: classifications,
		Configured:      true,
	}
	if result == nil {
		return view
	}

	view.Events = result.Events
	view.Pager = result.Pager
	view.Configured = result.Configured
	view.From, view.To = result.Pager.Range()

	pager := result.Pager
	for _, tok := range pager.Window() {
		if tok.Ellipsis {
			view.Links = append(view.Links, pageLink{Label: pagination.Ellipsis, Ellipsis: true})
			continue
		}
		n := tok.Page
		view.Links = append(view.Links, pageLink{
			Label:  tok.String(),
			Href:   stateLocation("/", state, func(s *querystate.Store) { s.SetPage(pager.Clamp(n)) }),
			Active: n == pager.Current,
		})
	}
	if pager.HasPrevious() {
		view.PrevHref = stateLocation("/", state, func(s *querystate.Store) { s.SetPage(pager.Previous()) })
	}
	if pager.HasNext() {
		view.NextHref = stateLocation("/", state, func(s *querystate.Store) { s.SetPage(pager.Next()) })
	}

	return view
}

// errorMessage is the text shown in place of the listing when a fetch fails.
func errorMessage(err error) string {
	var apiErr *ticketmaster.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "Failed to fetch events"
}
