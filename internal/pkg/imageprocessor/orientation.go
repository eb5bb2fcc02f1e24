package imageprocessor

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

// openOriented opens an image and applies the EXIF orientation so that
// camera uploads render upright.
func openOriented(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return img, nil
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// Plenty of images carry no EXIF data
		return img, nil
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return img, nil
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return img, nil
	}

	switch orientation {
	case 2:
		img = imaging.FlipH(img)
	case 3:
		img = imaging.Rotate180(img)
	case 4:
		img = imaging.FlipV(img)
	case 5:
		img = imaging.Transpose(img)
	case 6:
		img = imaging.Rotate270(img)
	case 7:
		img = imaging.Transverse(img)
	case 8:
		img = imaging.Rotate90(img)
	}

	return img, nil
}
