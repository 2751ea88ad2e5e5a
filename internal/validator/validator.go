package validator

import (
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/arcanaland/matcher/internal/card"
	"github.com/arcanaland/matcher/internal/deck"
	"github.com/arcanaland/matcher/internal/gallery"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Validator checks that a saved gallery document can back a game of Count pairs
type Validator struct {
	GalleryPath string
	Count       int
	Results     ValidationResults

	images []card.RawImage
}

func NewValidator(galleryPath string, count int) *Validator {
	return &Validator{
		GalleryPath: galleryPath,
		Count:       count,
		Results:     ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateDocument(); err != nil {
		return v.Results, err
	}

	v.validateImages()
	v.validateCount()
	v.validateDeck()

	return v.Results, nil
}

// Images returns the usable images found by Validate
func (v *Validator) Images() []card.RawImage {
	return v.images
}

func (v *Validator) validateDocument() error {
	data, err := os.ReadFile(v.GalleryPath)
	if err != nil {
		return fmt.Errorf("error reading gallery file: %w", err)
	}

	images, err := gallery.Parse(data, 0)
	if err != nil {
		return fmt.Errorf("error parsing gallery file: %w", err)
	}
	v.images = images

	// Report entries the parser had to skip
	ids := make(map[string]bool)
	gjson.GetBytes(data, "data").ForEach(func(key, item gjson.Result) bool {
		id := item.Get("id").String()
		switch {
		case id != "" && ids[id]:
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("duplicate image id: %s at data[%d]; only the first usable entry is dealt", id, key.Int()))
		case id == "":
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("data[%d] has no id and was skipped", key.Int()))
		case item.Get("is_album").Bool() && item.Get("cover").String() == "":
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("album %s has no cover image and was skipped", id))
		case !item.Get("is_album").Bool() && item.Get("link").String() == "":
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("image %s has no link and was skipped", id))
		}
		if id != "" {
			ids[id] = true
		}
		return true
	})

	return nil
}

// validateImages checks urls and titles of the usable images
func (v *Validator) validateImages() {
	for _, img := range v.images {
		u, err := url.Parse(img.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("image %s has an invalid url: %s", img.ID, img.URL))
			continue
		}

		if !isImageExt(path.Ext(u.Path)) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("image %s does not link to a png, jpeg or gif file: %s", img.ID, img.URL))
		}

		if strings.TrimSpace(img.Title) == "" {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("image %s has no title", img.ID))
		}
	}
}

// validateCount checks there are enough images for the requested number of pairs
func (v *Validator) validateCount() {
	if v.Count <= 0 {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("image count must be positive, got %d", v.Count))
		return
	}

	if len(v.images) == 0 {
		v.Results.Errors = append(v.Results.Errors, "gallery contains no usable images")
		return
	}

	if len(v.images) < v.Count {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("gallery has %d usable images, a game of %d pairs will be short", len(v.images), v.Count))
	}
}

// validateDeck builds a deck from the gallery and checks the pairing
func (v *Validator) validateDeck() {
	if len(v.Results.Errors) > 0 || v.Count <= 0 {
		return
	}

	cards := deck.FromBatch(v.images, v.Count, deck.NewIDSource("card"), rand.New(rand.NewSource(1)))
	if err := deck.Validate(cards); err != nil {
		v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("deck check failed: %v", err))
	}
}

func isImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	default:
		return false
	}
}
