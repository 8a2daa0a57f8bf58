// Package images derives item image URLs and loads them the way a browser
// <img> element would, reporting a load error for anything that is not a
// decodable image.
package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
	"time"

	"mercari/internal/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// URL returns the display URL for an image reference: <host>/image/<ref>.
func URL(host, ref string) string {
	return strings.TrimRight(host, "/") + "/image/" + url.PathEscape(ref)
}

// Info describes a successfully loaded image.
type Info struct {
	Width  int
	Height int
	Format string
}

func (i Info) String() string {
	return fmt.Sprintf("%s %dx%d", i.Format, i.Width, i.Height)
}

// Loader fetches and validates images.
type Loader struct {
	client *resty.Client
}

// NewLoader creates a loader with the given per-image timeout.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{client: resty.New().SetTimeout(timeout)}
}

// Load fetches src and decodes its header. Any transport error, non-2xx
// status or undecodable body is a load error. No auth headers are sent.
func (l *Loader) Load(ctx context.Context, src string) (Info, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "GET image")
	defer span.End()
	span.SetAttributes(attribute.String("http.url", src))

	resp, err := l.client.R().SetContext(ctx).Get(src)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Info{}, fmt.Errorf("load %s: %w", src, err)
	}
	if resp.IsError() {
		span.SetStatus(codes.Error, resp.Status())
		return Info{}, fmt.Errorf("load %s: status %d", src, resp.StatusCode())
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(resp.Body()))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Info{}, fmt.Errorf("decode %s: %w", src, err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
