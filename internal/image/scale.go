package image

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ScaledSize returns the dimensions of a w×h image whose longer side has been
// reduced to maxDim. Images already within maxDim are returned unchanged.
// The shorter side is truncated and never drops below one pixel.
func ScaledSize(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w > h {
		return maxDim, max(maxDim*h/w, 1)
	}
	return max(maxDim*w/h, 1), maxDim
}

// ToNRGBA returns img as an *image.NRGBA anchored at the origin, copying only
// when img is not already in that form.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Downscale shrinks img so neither side exceeds maxDim, preserving aspect
// ratio and using a Catmull-Rom filter. The result is always non-premultiplied
// NRGBA so alpha can be inspected directly.
func Downscale(img image.Image, maxDim int) *image.NRGBA {
	b := img.Bounds()
	w, h := ScaledSize(b.Dx(), b.Dy(), maxDim)
	if w == b.Dx() && h == b.Dy() {
		return ToNRGBA(img)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
