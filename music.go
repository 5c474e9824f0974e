package lume

// This module implements the audio reactive effect and the externally
// driven custom effect.  Volume for the music effect arrives as an
// already computed 0..1 scalar pushed in by the controller, no audio
// analysis happens here.

import (
	"math"
)

// Sound modes for the music effect
const (
	SoundLevel    = 0 // VU meter style bar
	SoundSpectrum = 1 // centered pulse in a cycling color
)

// MusicEffect repaints the device every frame from the most recently
// pushed volume level
type MusicEffect struct {
	soundMode int
	hue       uint8
	volume    float64
}

func NewMusic(soundMode int) *MusicEffect {
	return &MusicEffect{soundMode: soundMode}
}

// SetVolume stores the externally computed volume, clamped to 0..1
func (effect *MusicEffect) SetVolume(volume float64) {
	if volume < 0.0 {
		volume = 0.0
	}
	if volume > 1.0 {
		volume = 1.0
	}
	effect.volume = volume
}

func (effect *MusicEffect) Kind() Kind {
	return Music
}

func (effect *MusicEffect) Update(light Light, tick Tick) bool {
	switch geo := light.(type) {
	case Strip:
		effect.updateStrip(geo)
	case Disc:
		effect.updateDisc(geo)
	}
	return true
}

func (effect *MusicEffect) updateStrip(light Strip) {
	if effect.soundMode == SoundLevel {
		count := int(float64(light.Len()) * effect.volume)
		FillSolid(light.Data(), Black)
		if count > 0 {
			for i := 0; i < count-1; i++ {
				*light.At(i) = Green
			}
			*light.At(count - 1) = Red
		}
		return
	}

	count := int(float64(light.Len()) * effect.volume)
	color := HSV(effect.hue)
	effect.hue++
	FillSolid(light.Data(), Black)
	start := (light.Count() - count) / 2
	for i := start; i < start+count; i++ {
		*light.At(i) = color
	}
}

func (effect *MusicEffect) updateDisc(light Disc) {
	if effect.soundMode == SoundLevel {
		rings := int(float64(light.Rings()) * effect.volume)
		FillSolid(light.Data(), Black)
		if rings > 0 {
			for ring := 0; ring < rings; ring++ {
				for j := 0; j < light.RingLen(ring); j++ {
					*light.At(ring, j) = Green
				}
			}
			for j := 0; j < light.RingLen(rings-1); j++ {
				*light.At(rings-1, j) = Red
			}
		}
		return
	}

	rings := int(math.Ceil(float64(light.Rings()) * effect.volume))
	color := HSV(effect.hue)
	effect.hue++
	FillSolid(light.Data(), Black)
	for ring := light.Rings() - rings; ring < light.Rings(); ring++ {
		for j := 0; j < light.RingLen(ring); j++ {
			*light.At(ring, j) = color
		}
	}
}

func (effect *MusicEffect) writeDoc(doc Doc) {
	doc["soundMode"] = effect.soundMode
}

// CustomEffect writes no pixels itself.  An external controller owns
// the buffer and uses the cursor as its write position, the effect just
// keeps the player flushing whatever was written.
type CustomEffect struct {
	cursor int
}

func NewCustom() *CustomEffect {
	return &CustomEffect{}
}

// Cursor exposes the mutable write position for the external
// controller
func (effect *CustomEffect) Cursor() *int {
	return &effect.cursor
}

func (effect *CustomEffect) Kind() Kind {
	return Custom
}

func (effect *CustomEffect) Update(light Light, tick Tick) bool {
	return true
}

func (effect *CustomEffect) writeDoc(doc Doc) {
}
