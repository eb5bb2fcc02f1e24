package imageprocessor

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// Thumbnail sizes
const (
	SmallThumbnailSize  = 200
	MediumThumbnailSize = 500
)

// Directory paths
const (
	OriginalDir   = "uploads/original"
	ThumbnailsDir = "uploads/thumbnails"
)

// Result describes the variants produced for one uploaded image.
type Result struct {
	OriginalPath    string
	SmallThumbPath  string
	MediumThumbPath string
	WebPPath        string
	Width           int
	Height          int
}

// ProcessImage generates thumbnail and WebP variants for an uploaded
// image. The original stays untouched on disk; variants land in
// ThumbnailsDir keyed by the image UUID.
func ProcessImage(originalPath, imageUUID string) (*Result, error) {
	img, err := openOriented(originalPath)
	if err != nil {
		return nil, fmt.Errorf("error opening image: %w", err)
	}

	bounds := img.Bounds()
	result := &Result{
		OriginalPath: originalPath,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
	}

	if err := os.MkdirAll(ThumbnailsDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating thumbnails directory: %w", err)
	}

	smallThumb := imaging.Resize(img, SmallThumbnailSize, 0, imaging.Lanczos)
	result.SmallThumbPath = filepath.Join(ThumbnailsDir, imageUUID+"_small.jpg")
	if err := imaging.Save(smallThumb, result.SmallThumbPath); err != nil {
		return nil, fmt.Errorf("error saving small thumbnail: %w", err)
	}

	mediumThumb := imaging.Resize(img, MediumThumbnailSize, 0, imaging.Lanczos)
	result.MediumThumbPath = filepath.Join(ThumbnailsDir, imageUUID+"_medium.jpg")
	if err := imaging.Save(mediumThumb, result.MediumThumbPath); err != nil {
		return nil, fmt.Errorf("error saving medium thumbnail: %w", err)
	}

	result.WebPPath = filepath.Join(ThumbnailsDir, imageUUID+"_medium.webp")
	if err := saveWebP(mediumThumb, result.WebPPath); err != nil {
		// WebP is an optimization, not a requirement
		log.Warnf("WebP variant failed for %s: %v", imageUUID, err)
		result.WebPPath = ""
	}

	return result, nil
}

// saveWebP saves an image in WebP format
func saveWebP(img image.Image, outputPath string) error {
	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("error creating WebP file: %w", err)
	}
	defer output.Close()

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, 85)
	if err != nil {
		return fmt.Errorf("error creating encoder options: %w", err)
	}

	if err := webp.Encode(output, img, options); err != nil {
		return fmt.Errorf("error encoding WebP image: %w", err)
	}

	return nil
}
