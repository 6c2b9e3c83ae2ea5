package processor

import (
	"image"
	"image/color"
	"image/draw"
)

// Channels reports how many samples per pixel img carries: 1 for gray
// images, 3 for opaque color images and 4 for color images with transparency.
func Channels(img image.Image) int {
	if isGray(img.ColorModel()) {
		return 1
	}

	if isOpaque(img) {
		return 3
	}

	return 4
}

// isGray reports whether m is one of the single channel gray models.
func isGray(m color.Model) bool {
	return m == color.GrayModel || m == color.Gray16Model
}

// isOpaque reports whether every pixel of img is fully opaque. Images that
// know their opacity answer directly, others are scanned pixel by pixel.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}

	return true
}

// conform converts dst back to the gray model of src, if src had one.
// imaging always produces NRGBA, which would otherwise turn a single channel
// source into a three channel result.
func conform(dst *image.NRGBA, src image.Image) image.Image {
	var out draw.Image

	switch src.ColorModel() {
	case color.GrayModel:
		out = image.NewGray(dst.Bounds())
	case color.Gray16Model:
		out = image.NewGray16(dst.Bounds())
	default:
		return dst
	}

	draw.Draw(out, out.Bounds(), dst, dst.Bounds().Min, draw.Src)

	return out
}
