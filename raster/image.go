// Package raster holds the grayscale image and binary mask types that sit
// at the boundary of the level-set engine: read-only inputs and the
// foreground/background output it produces.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ctessum/sparse"
)

// Image is a read-only W x H grayscale raster of integer intensities,
// backed by a dense array so that large rasters share the same storage
// discipline as the rest of this module's gridded data.
type Image struct {
	data *sparse.DenseArray
}

// NewImage allocates a W x H image initialized to zero.
func NewImage(w, h int) *Image {
	return &Image{data: sparse.ZerosDense(h, w)}
}

// NewImageFromGray builds an Image from a standard library grayscale
// image, which covers the 8-bit and 16-bit integer intensity inputs the
// host application supplies.
func NewImageFromGray(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	img := NewImage(w, h)
	switch g := src.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Set(x, y, int(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y))
			}
		}
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Set(x, y, int(g.Gray16At(b.Min.X+x, b.Min.Y+y).Y))
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				gr, _, _, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
				img.Set(x, y, int(gr>>8))
			}
		}
	}
	return img
}

// Width and Height report the raster's dimensions.
func (img *Image) Width() int  { return img.data.Shape[1] }
func (img *Image) Height() int { return img.data.Shape[0] }

// At returns the intensity at (x, y).
func (img *Image) At(x, y int) int {
	return int(img.data.Get(y, x))
}

// Set stores the intensity at (x, y). Exported so callers building an
// Image from a raw decoded buffer (16-bit or 32-bit sources that do not
// fit the standard library's image.Gray types) can populate it directly.
func (img *Image) Set(x, y, v int) {
	img.data.Set(float64(v), y, x)
}

// Mask is a binary foreground/background raster of the same dimensions
// as an Image: true means foreground.
type Mask struct {
	w, h int
	bits []bool
}

// NewMask allocates a W x H mask with every cell background.
func NewMask(w, h int) *Mask {
	return &Mask{w: w, h: h, bits: make([]bool, w*h)}
}

func (m *Mask) Width() int  { return m.w }
func (m *Mask) Height() int { return m.h }

func (m *Mask) At(x, y int) bool {
	return m.bits[y*m.w+x]
}

func (m *Mask) Set(x, y int, v bool) {
	m.bits[y*m.w+x] = v
}

// Equal reports whether two masks have identical dimensions and content.
func (m *Mask) Equal(other *Mask) bool {
	if m.w != other.w || m.h != other.h {
		return false
	}
	for i := range m.bits {
		if m.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

// ToGray renders the mask as a standard library 8-bit grayscale image
// (255 foreground, 0 background) for callers that need to hand the
// result to ordinary image I/O.
func (m *Mask) ToGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.w, m.h))
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.At(x, y) {
				g.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return g
}

// String renders a mask compactly for debug output and test failure
// messages ('#' foreground, '.' background).
func (m *Mask) String() string {
	s := ""
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.At(x, y) {
				s += "#"
			} else {
				s += "."
			}
		}
		s += "\n"
	}
	return s
}

// Validate returns an error if img and mask do not share dimensions,
// matching the engine construction precondition that image and
// initialization mask sizes agree.
func Validate(img *Image, mask *Mask) error {
	if img.Width() != mask.Width() || img.Height() != mask.Height() {
		return fmt.Errorf("raster: image is %dx%d but mask is %dx%d",
			img.Width(), img.Height(), mask.Width(), mask.Height())
	}
	return nil
}
