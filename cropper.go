package cropicon

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/esimov/cropicon/imop"
	"github.com/esimov/cropicon/utils"
	"github.com/sirupsen/logrus"
)

// DefaultPadding is the factor applied to the larger cropped dimension
// to obtain the side of the square canvas.
const DefaultPadding = 1.1

// Processor options
type Processor struct {
	// Padding is the canvas padding factor. Zero means DefaultPadding.
	Padding float64
	Logger  logrus.FieldLogger
	Spinner *utils.Spinner
}

// Result describes a successful crop.
type Result struct {
	Original image.Point     // width and height of the source image
	Bounds   image.Rectangle // bounding box of the content
	Side     int             // side of the square canvas
	Offset   image.Point     // position of the cropped content inside the canvas
}

func (p *Processor) padding() float64 {
	if p.Padding == 0 {
		return DefaultPadding
	}
	return p.Padding
}

func (p *Processor) logger() logrus.FieldLogger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}
	return p.Logger
}

// Crop trims the background around the source image content and
// centers the content into a new, fully transparent square canvas.
// It returns ErrNoBounds in case the image is a single solid color.
func (p *Processor) Crop(src image.Image) (*image.NRGBA, *Result, error) {
	img := imaging.Clone(src)

	bg := Background(img)
	bounds, ok := BoundingBox(DiffMask(img, bg))
	if !ok {
		return nil, nil, ErrNoBounds
	}

	cropped := imaging.Crop(img, bounds)
	w, h := bounds.Dx(), bounds.Dy()
	side := SquareSize(w, h, p.padding())
	offset := CenterOffset(side, w, h)

	// Paste replaces the canvas pixels, it does not composite them,
	// so the alpha of the cropped content is kept as it is.
	canvas := imaging.New(side, side, color.NRGBA{})
	canvas = imaging.Paste(canvas, cropped, offset)

	return canvas, &Result{
		Original: img.Bounds().Size(),
		Bounds:   bounds,
		Side:     side,
		Offset:   offset,
	}, nil
}

// Background returns the color of the top-left pixel, used as the background color of the whole image.
func Background(img *image.NRGBA) color.NRGBA {
	return img.NRGBAAt(img.Rect.Min.X, img.Rect.Min.Y)
}

// DiffMask returns the absolute per channel difference between
// the image and a uniform image filled with the background color.
func DiffMask(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	uniform := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), bg)
	return imop.Difference(nil, img, uniform).Img
}

// BoundingBox returns the smallest rectangle containing every mask pixel
// with at least one non-zero channel. The boolean is false if there is no such pixel.
func BoundingBox(mask *image.NRGBA) (image.Rectangle, bool) {
	var (
		r     = mask.Bounds()
		bbox  image.Rectangle
		found bool
	)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := mask.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
			px := mask.Pix[i : i+4 : i+4]
			if px[0]|px[1]|px[2]|px[3] == 0 {
				continue
			}
			if !found {
				bbox = image.Rect(x, y, x+1, y+1)
				found = true
				continue
			}
			bbox.Min.X = utils.Min(bbox.Min.X, x)
			bbox.Max.X = utils.Max(bbox.Max.X, x+1)
			bbox.Max.Y = y + 1
		}
	}
	return bbox, found
}

// SquareSize returns the side of the square canvas: the larger dimension
// multiplied by the padding factor and truncated. It is never smaller than the larger dimension.
func SquareSize(w, h int, padding float64) int {
	maxDim := utils.Max(w, h)
	return utils.Max(maxDim, int(float64(maxDim)*padding))
}

// CenterOffset returns the position where an image of w x h size should be placed to be centered in the canvas.
func CenterOffset(side, w, h int) image.Point {
	return image.Pt((side-w)/2, (side-h)/2)
}
