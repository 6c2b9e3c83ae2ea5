package processor

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PadToSquare adds black borders along the shorter side of img so that the
// result is max(width, height) pixels on each side. Square images are
// returned as is.
//
// When the difference between the sides is odd, the extra row or column goes
// to the bottom or right edge.
func PadToSquare(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return img
	}

	side := max(w, h)
	front := (side - min(w, h)) / 2

	var pos image.Point
	if h < w {
		pos = image.Pt(0, front) // rows on top and bottom
	} else {
		pos = image.Pt(front, 0) // columns on the left and right
	}

	canvas := imaging.New(side, side, padColor(img))

	return conform(imaging.Paste(canvas, img, pos), img)
}

// padColor returns the minimum sample value for every channel img carries.
// Images without an alpha channel keep padding fully opaque.
func padColor(img image.Image) color.Color {
	if Channels(img) == 4 {
		return color.NRGBA{}
	}

	return color.NRGBA{A: 0xff}
}
