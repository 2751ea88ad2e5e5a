// Package gallery fetches the raw images a deck is built from.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/arcanaland/matcher/internal/card"
)

// DefaultEndpoint is imgur's random gallery page
const DefaultEndpoint = "https://api.imgur.com/3/gallery/random/random/0"

// ErrUnavailable is returned when no batch of images could be obtained
var ErrUnavailable = errors.New("no images available")

// Source yields a batch of at most count images
type Source interface {
	FetchRandomImages(ctx context.Context, count int) ([]card.RawImage, error)
}

// Imgur fetches images from the imgur gallery API
type Imgur struct {
	Endpoint string
	ClientID string
	Client   *http.Client
}

// NewImgur creates an imgur source. An empty endpoint uses DefaultEndpoint.
func NewImgur(endpoint, clientID string) *Imgur {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Imgur{
		Endpoint: endpoint,
		ClientID: clientID,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchRandomImages makes a single request; failures are not retried
func (s *Imgur) FetchRandomImages(ctx context.Context, count int) ([]card.RawImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building gallery request: %w", err)
	}
	if s.ClientID != "" {
		req.Header.Set("Authorization", "Client-ID "+s.ClientID)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(body, "data.error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: gallery returned %d: %s", ErrUnavailable, resp.StatusCode, msg)
	}

	return Parse(body, count)
}

// File reads a gallery response saved to disk
type File struct {
	Path string
}

// FetchRandomImages reads the file; ctx is only checked before reading
func (s File) FetchRandomImages(ctx context.Context, count int) ([]card.RawImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return Parse(data, count)
}

// Parse extracts up to count images from an imgur style gallery document
// ({"data": [...], "success": true}). count <= 0 returns every usable image.
// Only the first usable entry for an id is kept.
func Parse(data []byte, count int) ([]card.RawImage, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed gallery document", ErrUnavailable)
	}

	doc := gjson.ParseBytes(data)
	if ok := doc.Get("success"); ok.Exists() && !ok.Bool() {
		return nil, fmt.Errorf("%w: gallery reported failure", ErrUnavailable)
	}

	items := doc.Get("data")
	if !items.IsArray() {
		return nil, fmt.Errorf("%w: gallery document has no data array", ErrUnavailable)
	}

	var images []card.RawImage
	seen := make(map[string]bool)
	items.ForEach(func(_, item gjson.Result) bool {
		if img, ok := parseItem(item); ok && !seen[img.ID] {
			seen[img.ID] = true
			images = append(images, img)
		}
		return count <= 0 || len(images) < count
	})

	return images, nil
}

// parseItem turns one gallery entry into a RawImage. Albums are represented by their cover.
func parseItem(item gjson.Result) (card.RawImage, bool) {
	id := item.Get("id").String()
	if id == "" {
		return card.RawImage{}, false
	}

	url := item.Get("link").String()
	if item.Get("is_album").Bool() {
		cover := item.Get("cover").String()
		if cover == "" {
			return card.RawImage{}, false
		}
		url = "https://i.imgur.com/" + cover + ".jpg"
	}
	if url == "" {
		return card.RawImage{}, false
	}

	return card.RawImage{
		ID:    id,
		Title: item.Get("title").String(),
		URL:   url,
	}, true
}
