// Package imop implements pixel level operations between two images
// which the image/draw core package does not provide.
//
// It is used to find the parts of an image which differ from a
// reference backdrop, like a uniform background color.
package imop

import (
	"image"

	"github.com/esimov/cropicon/utils"
)

// Bitmap holds the destination of an image operation.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap allocates a new, fully transparent bitmap.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// Difference writes the absolute per channel difference of src and dst into the bitmap.
// Unlike the difference blend mode the alpha channel is subtracted as well,
// so two pixels only cancel out when all four channels are identical.
// When bitmap is nil a new one is allocated. The returned bitmap covers
// the overlapping area of the two images, translated to start at (0, 0).
func Difference(bitmap *Bitmap, src, dst *image.NRGBA) *Bitmap {
	sb, db := src.Bounds(), dst.Bounds()
	dx := utils.Min(sb.Dx(), db.Dx())
	dy := utils.Min(sb.Dy(), db.Dy())

	if bitmap == nil || bitmap.Img.Bounds().Dx() < dx || bitmap.Img.Bounds().Dy() < dy {
		bitmap = NewBitmap(image.Rect(0, 0, dx, dy))
	}
	out := bitmap.Img
	ob := out.Bounds()

	for y := 0; y < dy; y++ {
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(db.Min.X, db.Min.Y+y)
		oi := out.PixOffset(ob.Min.X, ob.Min.Y+y)
		for x := 0; x < dx*4; x++ {
			out.Pix[oi+x] = uint8(utils.Abs(int(src.Pix[si+x]) - int(dst.Pix[di+x])))
		}
	}
	return bitmap
}
