// Package artwork turns card images into ANSI art for the terminal.
package artwork

import (
	"context"
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/matcher/internal/logger"
)

// maxImageBytes caps downloads; gallery entries can be large GIFs
const maxImageBytes = 20 << 20

// Renderer downloads images and caches their ANSI rendering on disk
type Renderer struct {
	CacheDir string // ANSI files are stored in CacheDir/art
	Width    int    // Width in terminal cells
	Height   int    // Height in terminal rows
	Client   *http.Client

	logger *logger.Logger
}

// NewRenderer creates a renderer for cards width cells wide. Height follows
// a 4:3 portrait card shape in half-block rows.
func NewRenderer(cacheDir string, width int, log *logger.Logger) *Renderer {
	height := width * 4 / 3 / 2
	if height < 2 {
		height = 2
	}
	return &Renderer{
		CacheDir: cacheDir,
		Width:    width,
		Height:   height,
		Client:   &http.Client{Timeout: 30 * time.Second},
		logger:   log,
	}
}

// Dir returns the directory holding cached art
func (r *Renderer) Dir() string {
	return filepath.Join(r.CacheDir, "art")
}

// cachePath is keyed on the url and the output size
func (r *Renderer) cachePath(url string) string {
	key := fmt.Sprintf("%s@%dx%d", url, r.Width, r.Height)
	return filepath.Join(r.Dir(), fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))
}

// Art returns the ANSI art for the image at url
func (r *Renderer) Art(ctx context.Context, url string) (string, error) {
	cachePath := r.cachePath(url)

	// Check if we already have a cached version
	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	img, err := r.download(ctx, url)
	if err != nil {
		return "", err
	}

	ansiArt := ImageToAnsi(img, r.Width, r.Height)

	if err := os.MkdirAll(r.Dir(), 0755); err != nil {
		return "", fmt.Errorf("failed to create art cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, []byte(ansiArt), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to cache: %w", err)
	}

	return ansiArt, nil
}

// Prefetch renders every url, at most four downloads at a time. Images that
// fail are logged and left out of the result.
func (r *Renderer) Prefetch(ctx context.Context, urls []string) map[string]string {
	unique := make(map[string]bool)
	for _, u := range urls {
		unique[u] = true
	}

	faces := make(map[string]string, len(unique))
	results := make(chan [2]string, len(unique))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for u := range unique {
		g.Go(func() error {
			art, err := r.Art(ctx, u)
			if err != nil {
				r.logger.Warn(fmt.Sprintf("no art for %s: %v", u, err))
				return nil
			}
			results <- [2]string{u, art}
			return nil
		})
	}
	g.Wait()
	close(results)

	for res := range results {
		faces[res[0]] = res[1]
	}
	if len(faces) == 0 && len(unique) > 0 {
		r.logger.Error(fmt.Sprintf("none of %d card images could be rendered; titles are shown instead", len(unique)))
	}
	return faces
}

func (r *Renderer) download(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: %s", resp.Status)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

// ImageToAnsi converts an image to width x height cells of half-block art
func ImageToAnsi(img image.Image, width, height int) string {
	// Each cell holds two pixel rows, and averages two pixel columns
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			c1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			c2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			c3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			c4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			fg := averageColor(c1, c2)
			bg := averageColor(c3, c4)

			buffer.WriteString(ansiCell('▀', fg, bg))
		}
		if y+2 < height*2 {
			buffer.WriteString("\n")
		}
	}

	return buffer.String()
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// ansiCell formats a character with 24-bit foreground and background colors
func ansiCell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// StripAnsi removes ANSI escape sequences from a string
func StripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
