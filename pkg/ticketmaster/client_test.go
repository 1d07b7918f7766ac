package ticketmaster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/discovery/v2", "test-key")
	require.NoError(t, err)
	return client
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSearchEvents_SendsParams(t *testing.T) {
	var got url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discovery/v2/events.json", r.URL.Path)
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"_embedded": {"events": [{"id": "e1", "name": "Show", "url": "https://tm/e1", "dates": {"start": {"localDate": "2025-05-01"}}}]},
			"page": {"size": 9, "totalElements": 31, "totalPages": 4, "number": 2}
		}`))
	})

	resp, err := client.SearchEvents(context.Background(), &SearchParams{
		Keyword:            strPtr("jazz"),
		City:               strPtr("New Orleans"),
		StateCode:          strPtr("LA"),
		ClassificationName: strPtr("Arts & Theatre"),
		StartDateTime:      strPtr("2025-05-01T00:00:00Z"),
		Page:               intPtr(2),
		Size:               intPtr(9),
	})
	require.NoError(t, err)

	assert.Equal(t, "test-key", got.Get("apikey"))
	assert.Equal(t, "9", got.Get("size"))
	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, "jazz", got.Get("keyword"))
	assert.Equal(t, "New Orleans", got.Get("city"))
	assert.Equal(t, "LA", got.Get("stateCode"))
	assert.Equal(t, "Arts & Theatre", got.Get("classificationName"))
	assert.Equal(t, "2025-05-01T00:00:00Z", got.Get("startDateTime"))
	assert.False(t, got.Has("endDateTime"))

	require.Len(t, resp.Events(), 1)
	assert.Equal(t, "e1", resp.Events()[0].ID)
	assert.Equal(t, 4, resp.Page.TotalPages)
	assert.Equal(t, 31, resp.Page.TotalElements)
}

func TestSearchEvents_Defaults(t *testing.T) {
	var got url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"page": {"totalPages": 0}}`))
	})

	resp, err := client.SearchEvents(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "20", got.Get("size"))
	assert.Equal(t, "0", got.Get("page"))
	assert.Empty(t, resp.Events())
}

func TestGetEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discovery/v2/events/vv1A7.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "vv1A7", "name": "Concert", "url": "https://tm/vv1A7", "dates": {"start": {"localDate": "2025-09-12", "localTime": "19:30:00"}}}`))
	})

	event, err := client.GetEvent(context.Background(), "vv1A7")
	require.NoError(t, err)
	assert.Equal(t, "Concert", event.Name)
	assert.Equal(t, "19:30:00", event.Dates.Start.LocalTime)
}

func TestListClassifications(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discovery/v2/classifications.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"_embedded": {"classifications": [
			{"segment": {"id": "1", "name": "Music"}},
			{"type": {"id": "2", "name": "Donation"}}
		]}}`))
	})

	resp, err := client.ListClassifications(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Embedded)
	require.Len(t, resp.Embedded.Classifications, 2)
	assert.Equal(t, "Music", resp.Embedded.Classifications[0].Segment.Name)
	assert.Equal(t, "Donation", resp.Embedded.Classifications[1].Type.Name)
}

func TestAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	_, err := client.GetEvent(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Ticketmaster API error: 404 Not Found", err.Error())
}

func TestNewClient_DefaultServer(t *testing.T) {
	client, err := NewClient("", "k")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/", client.Server)
}
