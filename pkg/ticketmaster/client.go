package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"eventfinder/pkg/telemetry"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

// DefaultSize is the page size the Discovery API is asked for when the
// caller does not set one.
const DefaultSize = 20

// HttpRequestDoer performs HTTP requests.
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientInterface interface {
	SearchEvents(ctx context.Context, params *SearchParams) (*EventsResponse, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListClassifications(ctx context.Context) (*ClassificationsResponse, error)
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Ticketmaster API error: %s", e.Status)
}

type Client struct {
	Server string
	APIKey string
	Client HttpRequestDoer
}

type ClientOption func(*Client) error

func NewClient(server, apiKey string, opts ...ClientOption) (*Client, error) {
	client := Client{
		Server: server,
		APIKey: apiKey,
	}
	for _, o := range opts {
		if err := o(&client); err != nil {
			return nil, err
		}
	}
	if client.Server == "" {
		client.Server = DefaultBaseURL
	}
	if !strings.HasSuffix(client.Server, "/") {
		client.Server += "/"
	}
	if client.Client == nil {
		client.Client = &http.Client{}
	}
	return &client, nil
}

func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) error {
		c.Client = doer
		return nil
	}
}

func (c *Client) SearchEvents(ctx context.Context, params *SearchParams) (*EventsResponse, error) {
	if params == nil {
		params = &SearchParams{}
	}

	size, page := DefaultSize, 0
	if params.Size != nil {
		size = *params.Size
	}
	if params.Page != nil {
		page = *params.Page
	}

	query := url.Values{}
	query.Set("apikey", c.APIKey)

	styled := []queryParam{
		{"size", size},
		{"page", page},
	}
	for _, p := range []struct {
		name  string
		value *string
	}{
		{"keyword", params.Keyword},
		{"city", params.City},
		{"stateCode", params.StateCode},
		{"classificationName", params.ClassificationName},
		{"startDateTime", params.StartDateTime},
		{"endDateTime", params.EndDateTime},
	} {
		if p.value != nil {
			styled = append(styled, queryParam{p.name, *p.value})
		}
	}

	for _, p := range styled {
		if err := addQueryParam(query, p.name, p.value); err != nil {
			return nil, err
		}
	}

	var resp EventsResponse
	if err := c.get(ctx, "SearchEvents", "events.json", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("apikey", c.APIKey)

	var event Event
	if err := c.get(ctx, "GetEvent", fmt.Sprintf("events/%s.json", pathParam), query, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) ListClassifications(ctx context.Context) (*ClassificationsResponse, error) {
	query := url.Values{}
	query.Set("apikey", c.APIKey)

	var resp ClassificationsResponse
	if err := c.get(ctx, "ListClassifications", "classifications.json", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values, out any) error {
	ctx, span := telemetry.Global().T().Start(ctx, "ticketmaster."+operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	serverURL, err := url.Parse(c.Server)
	if err != nil {
		return err
	}
	target, err := serverURL.Parse(path)
	if err != nil {
		return err
	}
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

type queryParam struct {
	name  string
	value any
}

func addQueryParam(query url.Values, name string, value any) error {
	queryFrag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return err
	}
	parsed, err := url.ParseQuery(queryFrag)
	if err != nil {
		return err
	}
	for k, v := range parsed {
		for _, v2 := range v {
			query.Add(k, v2)
		}
	}
	return nil
}
