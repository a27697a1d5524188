// Package opengraph fetches Open Graph metadata from web pages
package opengraph

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
)

const maxBodyBytes = 4 << 20

// Fetcher retrieves og: meta tags from a page's head
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher creates an Open Graph fetcher
func NewFetcher(logger *zap.Logger) outbound.OpenGraphFetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger.Named("opengraph"),
	}
}

// Fetch downloads the page and returns its og: properties keyed without
// the "og:" prefix, e.g. {"title": ..., "image": ...}
func (f *Fetcher) Fetch(ctx context.Context, url string) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "PlanToPlate/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	doc, err := html.Parse(http.MaxBytesReader(nil, resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}

	properties := map[string]string{}
	collectMeta(doc, properties)

	f.logger.Debug("opengraph metadata fetched",
		zap.String("url", url),
		zap.Int("properties", len(properties)),
	)

	return properties, nil
}

// collectMeta walks the document collecting og: meta tags
func collectMeta(n *html.Node, out map[string]string) {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var property, content string
		for _, attr := range n.Attr {
			switch attr.Key {
			case "property", "name":
				property = attr.Val
			case "content":
				content = attr.Val
			}
		}
		if strings.HasPrefix(property, "og:") && content != "" {
			key := strings.TrimPrefix(property, "og:")
			if _, seen := out[key]; !seen {
				out[key] = content
			}
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectMeta(child, out)
	}
}
