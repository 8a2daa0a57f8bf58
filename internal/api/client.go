// Package api is the HTTP client for the items API.
package api

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"mercari/internal/item"
	"mercari/internal/jsonutil"
	"mercari/internal/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// RequestIDHeader carries a per-request UUID so client and server logs line up.
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// Client talks to the items API.
type Client struct {
	baseURL string
	client  *resty.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  resty.New().SetTimeout(DefaultTimeout),
	}
}

// ItemsURL is the collection endpoint.
func (c *Client) ItemsURL() string {
	return c.baseURL + "/items"
}

// FetchItems retrieves the current item collection in server order.
// Failures are *NetworkError or *DecodeError.
func (c *Client) FetchItems(ctx context.Context) (item.List, error) {
	url := c.ItemsURL()
	reqID := uuid.NewString()

	ctx, span := telemetry.Tracer().Start(ctx, "GET /items")
	defer span.End()
	span.SetAttributes(
		attribute.String("http.url", url),
		attribute.String("mercari.request_id", reqID),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, reqID).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return item.List{}, fail(span, &NetworkError{URL: url, Err: err})
	}
	if resp.IsError() {
		return item.List{}, fail(span, &NetworkError{URL: url, Status: resp.StatusCode()})
	}

	var list item.List
	if err := jsonutil.UnmarshalObject(resp.Body(), &list, "items response"); err != nil {
		return item.List{}, fail(span, &DecodeError{URL: url, Snippet: jsonutil.Snippet(resp.Body(), 80), Err: err})
	}
	span.SetAttributes(attribute.Int("mercari.items", len(list.Items)))
	return list, nil
}

// AddItem posts a new listing with its image as multipart form data.
// Returns the server's confirmation message.
func (c *Client) AddItem(ctx context.Context, name, category, imageName string, image io.Reader) (string, error) {
	url := c.ItemsURL()
	var out struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, uuid.NewString()).
		SetFormData(map[string]string{"name": name, "category": category}).
		SetFileReader("image", imageName, image).
		Post(url)
	if err != nil {
		return "", &NetworkError{Method: "POST", URL: url, Err: err}
	}
	if err := jsonutil.UnmarshalWithContext(resp.Body(), &out, "add item response"); err != nil {
		if resp.IsError() {
			return "", &NetworkError{Method: "POST", URL: url, Status: resp.StatusCode()}
		}
		return "", &DecodeError{URL: url, Snippet: jsonutil.Snippet(resp.Body(), 80), Err: err}
	}
	if resp.IsError() {
		return "", fmt.Errorf("add item %q: %s: %w", name, out.Detail, &NetworkError{Method: "POST", URL: url, Status: resp.StatusCode()})
	}
	return out.Message, nil
}

func fail(span oteltrace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
