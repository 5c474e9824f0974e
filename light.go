package lume

// This module defines the pixel color value and the addressable light
// device contracts consumed by the effect engine.  Two geometries are
// supported, a linear strip and a disc made of concentric rings, both
// exposing one contiguous pixel buffer that is pushed to the hardware
// by the player when an effect reports it dirty.

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a single RGB pixel value in hardware channel order
type Color struct {
	R, G, B uint8
}

// Colors used by the builtin effects
var (
	Black = Color{0x00, 0x00, 0x00}
	Green = Color{0x00, 0xFF, 0x00}
	Red   = Color{0xFF, 0x00, 0x00}
)

// HexColor unpacks a 0xRRGGBB integer into a Color
func HexColor(packed uint32) Color {
	return Color{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
	}
}

// ParseHexColor converts a #RRGGBB token into a Color
func ParseHexColor(token string) (c Color, err error) {
	col, errGo := colorful.Hex(token)
	if errGo != nil {
		return Black, errGo
	}
	c.R, c.G, c.B = col.RGB255()
	return c, nil
}

// Hex packs the color back into a 0xRRGGBB integer, the form used by
// the serialized effect documents
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Scale dims the color by an 8 bit brightness factor, 0 turns the
// color off and 255 leaves it untouched
func (c Color) Scale(n uint8) Color {
	scale := int(n) + 1
	return Color{
		R: uint8(int(c.R) * scale >> 8),
		G: uint8(int(c.G) * scale >> 8),
		B: uint8(int(c.B) * scale >> 8),
	}
}

// HSV converts a position on the 0-255 hue wheel into an RGB color at
// full saturation and the fixed brightness the animated effects use
func HSV(hue uint8) (c Color) {
	col := colorful.Hsv(float64(hue)*360.0/256.0, 1.0, 240.0/255.0)
	c.R, c.G, c.B = col.RGB255()
	return c
}

// FillSolid paints every pixel of the buffer with one color
func FillSolid(buf []Color, c Color) {
	for i := range buf {
		buf[i] = c
	}
}

// FillRainbow paints the buffer with a hue gradient starting at hue and
// covering the whole wheel once across the buffer length
func FillRainbow(buf []Color, hue uint8) {
	if len(buf) == 0 {
		return
	}
	step := 256.0 / float64(len(buf))
	for i := range buf {
		buf[i] = HSV(hue + uint8(float64(i)*step))
	}
}

// Light is the minimal capability every addressable device exposes
type Light interface {
	// Data returns the mutable pixel buffer in push order
	Data() []Color
	// Count returns the total number of pixels in the buffer
	Count() int
}

// Strip is a linear run of pixels addressed by position
type Strip interface {
	Light
	Len() int
	At(i int) *Color
}

// Disc is a set of concentric rings addressed by ring and position
// within the ring
type Disc interface {
	Light
	Rings() int
	RingLen(ring int) int
	At(ring, pos int) *Color
}

// LightStrip is a strip device.  Wiring direction can be reversed so
// that logical position 0 maps to the far end of the buffer.
type LightStrip struct {
	pixels  []Color
	reverse bool
}

func NewStrip(count int, reverse bool) *LightStrip {
	return &LightStrip{
		pixels:  make([]Color, count),
		reverse: reverse,
	}
}

func (l *LightStrip) Data() []Color {
	return l.pixels
}

func (l *LightStrip) Count() int {
	return len(l.pixels)
}

func (l *LightStrip) Len() int {
	return len(l.pixels)
}

func (l *LightStrip) At(i int) *Color {
	if l.reverse {
		return &l.pixels[len(l.pixels)-1-i]
	}
	return &l.pixels[i]
}

// LightDisc is a disc device.  Rings are stored innermost first and are
// laid out consecutively in the shared buffer.
type LightDisc struct {
	pixels  []Color
	offsets []int
	sizes   []int
}

func NewDisc(ringSizes ...int) *LightDisc {
	disc := &LightDisc{
		offsets: make([]int, len(ringSizes)),
		sizes:   make([]int, len(ringSizes)),
	}
	total := 0
	for i, size := range ringSizes {
		disc.offsets[i] = total
		disc.sizes[i] = size
		total += size
	}
	disc.pixels = make([]Color, total)
	return disc
}

func (l *LightDisc) Data() []Color {
	return l.pixels
}

func (l *LightDisc) Count() int {
	return len(l.pixels)
}

func (l *LightDisc) Rings() int {
	return len(l.sizes)
}

func (l *LightDisc) RingLen(ring int) int {
	return l.sizes[ring]
}

func (l *LightDisc) At(ring, pos int) *Color {
	return &l.pixels[l.offsets[ring]+pos]
}

// String supports diagnostics emitted when devices are constructed from
// configuration files
func (l *LightDisc) String() string {
	return fmt.Sprintf("disc rings=%d pixels=%d", len(l.sizes), len(l.pixels))
}

func (l *LightStrip) String() string {
	return fmt.Sprintf("strip pixels=%d reverse=%v", len(l.pixels), l.reverse)
}
