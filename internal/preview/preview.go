// Package preview builds screenshot URLs for link cards using an external
// image-rendering service. The service has no contract beyond "given a URL,
// returns an image or fails silently", so nothing here checks the result.
package preview

import (
	"fmt"
	"net/url"
	"strings"
)

// Render parameters sent to the screenshot service
const (
	defaultDimension = "1024x768"
	defaultDevice    = "desktop"
	defaultFormat    = "png"
	defaultDelayMS   = 5000
)

// Service builds preview image URLs for target pages
type Service struct {
	endpoint string
	apiKey   string
}

// NewService creates a preview Service for the given screenshot endpoint
func NewService(endpoint, apiKey string) *Service {
	return &Service{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
	}
}

// ScreenshotURL returns the external service URL that renders a screenshot
// of the target page.
func (s *Service) ScreenshotURL(target string) string {
	q := url.Values{}
	q.Set("key", s.apiKey)
	q.Set("url", target)
	q.Set("dimension", defaultDimension)
	q.Set("device", defaultDevice)
	q.Set("format", defaultFormat)
	q.Set("delay", fmt.Sprintf("%d", defaultDelayMS))
	return s.endpoint + "?" + q.Encode()
}
