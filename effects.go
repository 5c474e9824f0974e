package lume

// This module implements the timed effect algorithms.  Each algorithm
// is a plain value carrying its configuration together with its own
// frame progress state, advancing one frame per update call and
// reporting whether it touched the pixel buffer.

// ConstantEffect paints the whole buffer once and then goes quiet
type ConstantEffect struct {
	rendered bool
	color    Color
}

func NewConstant(color uint32) *ConstantEffect {
	return &ConstantEffect{color: HexColor(color)}
}

func (effect *ConstantEffect) Kind() Kind {
	return Constant
}

func (effect *ConstantEffect) Update(light Light, tick Tick) bool {
	if effect.rendered {
		return false
	}
	FillSolid(light.Data(), effect.color)
	effect.rendered = true
	return true
}

func (effect *ConstantEffect) writeDoc(doc Doc) {
	doc["color"] = effect.color.Hex()
}

// BlinkEffect alternates between the configured color and black.  The
// on and off durations are held in seconds and converted to frame
// counts against the rate of each tick, so a rate change mid cycle
// moves the next edge without rescaling the running counter.
type BlinkEffect struct {
	frame    int
	color    Color
	lastTime float64
	interval float64
}

func NewBlink(color uint32, lastTime, interval float64) *BlinkEffect {
	return &BlinkEffect{color: HexColor(color), lastTime: lastTime, interval: interval}
}

func (effect *BlinkEffect) Kind() Kind {
	return Blink
}

func (effect *BlinkEffect) Update(light Light, tick Tick) bool {
	on := tick.frames(effect.lastTime)
	off := tick.frames(effect.interval)

	dirty := false
	switch effect.frame {
	case 0:
		FillSolid(light.Data(), effect.color)
		dirty = true
	case on:
		FillSolid(light.Data(), Black)
		dirty = true
	}
	if effect.frame++; effect.frame >= on+off {
		effect.frame = 0
	}
	return dirty
}

func (effect *BlinkEffect) writeDoc(doc Doc) {
	doc["color"] = effect.color.Hex()
	doc["lastTime"] = effect.lastTime
	doc["interval"] = effect.interval
}

// BreathEffect ramps the color brightness up and back down over the on
// duration following a parabola that peaks at the midpoint, then rests
// dark for the off duration
type BreathEffect struct {
	frame    int
	color    Color
	lastTime float64
	interval float64
}

func NewBreath(color uint32, lastTime, interval float64) *BreathEffect {
	return &BreathEffect{color: HexColor(color), lastTime: lastTime, interval: interval}
}

func (effect *BreathEffect) Kind() Kind {
	return Breath
}

func (effect *BreathEffect) Update(light Light, tick Tick) bool {
	on := tick.frames(effect.lastTime)
	off := tick.frames(effect.interval)

	dirty := false
	if effect.frame <= on && on > 0 {
		x := float64(effect.frame) / float64(on)
		scale := int(-1010.0*x*x + 1010.0*x)
		if scale > 255 {
			scale = 255
		}
		if scale < 0 {
			scale = 0
		}
		FillSolid(light.Data(), effect.color.Scale(uint8(scale)))
		dirty = true
	}
	if effect.frame++; effect.frame >= on+off {
		effect.frame = 0
	}
	return dirty
}

func (effect *BreathEffect) writeDoc(doc Doc) {
	doc["color"] = effect.color.Hex()
	doc["lastTime"] = effect.lastTime
	doc["interval"] = effect.interval
}

// ChaseEffect walks a single lit position back and forth along the
// addressable length, one step every lastTime seconds.  On a disc the
// position is a ring and the whole ring lights up.  The direction
// parameter is carried in the configuration but traversal order does
// not consult it yet.
type ChaseEffect struct {
	frame     int
	color     Color
	direction int
	lastTime  float64
}

func NewChase(color uint32, direction int, lastTime float64) *ChaseEffect {
	return &ChaseEffect{color: HexColor(color), direction: direction, lastTime: lastTime}
}

func (effect *ChaseEffect) Kind() Kind {
	return Chase
}

func (effect *ChaseEffect) Update(light Light, tick Tick) bool {
	step := tick.frames(effect.lastTime)
	if step < 1 {
		step = 1
	}

	dirty := false
	if effect.frame%step == 0 {
		switch geo := light.(type) {
		case Strip:
			index := effect.pingpong(effect.frame/step, geo.Len())
			FillSolid(geo.Data(), Black)
			*geo.At(index) = effect.color
			dirty = true
		case Disc:
			ring := effect.pingpong(effect.frame/step, geo.Rings())
			FillSolid(geo.Data(), Black)
			for j := 0; j < geo.RingLen(ring); j++ {
				*geo.At(ring, j) = effect.color
			}
			dirty = true
		}
	}
	effect.frame++
	return dirty
}

// pingpong reflects the raw step index into a forward and back sweep
// over length positions, resetting the frame counter at the end of the
// round trip
func (effect *ChaseEffect) pingpong(index, length int) int {
	roundTrip := 2 * (length - 1)
	if roundTrip <= 0 {
		effect.frame = 0
		return 0
	}
	if index >= roundTrip {
		effect.frame = 0
		return 0
	}
	if index > length-1 {
		return roundTrip - index
	}
	return index
}

func (effect *ChaseEffect) writeDoc(doc Doc) {
	doc["color"] = effect.color.Hex()
	doc["direction"] = effect.direction
	doc["lastTime"] = effect.lastTime
}

// RainbowEffect cycles the whole buffer through the hue wheel, one
// solid color per frame
type RainbowEffect struct {
	hue   uint8
	delta int8
}

func NewRainbow(delta int8) *RainbowEffect {
	return &RainbowEffect{delta: delta}
}

func (effect *RainbowEffect) Kind() Kind {
	return Rainbow
}

func (effect *RainbowEffect) Update(light Light, tick Tick) bool {
	FillSolid(light.Data(), HSV(effect.hue))
	effect.hue += uint8(effect.delta)
	return true
}

func (effect *RainbowEffect) writeDoc(doc Doc) {
	doc["delta"] = int(effect.delta)
}

// StreamEffect scrolls a rainbow gradient along the device.  A strip
// shows the gradient across its length, a disc shows one gradient color
// per ring.  The direction parameter is configuration only, like Chase.
type StreamEffect struct {
	hue       uint8
	direction int
	delta     int8

	// Scratch buffer for the per-ring gradient, kept across frames to
	// stay off the per-frame allocation path
	gradient []Color
}

func NewStream(direction int, delta int8) *StreamEffect {
	return &StreamEffect{direction: direction, delta: delta}
}

func (effect *StreamEffect) Kind() Kind {
	return Stream
}

func (effect *StreamEffect) Update(light Light, tick Tick) bool {
	switch geo := light.(type) {
	case Strip:
		FillRainbow(geo.Data(), effect.hue)
	case Disc:
		if len(effect.gradient) != geo.Rings() {
			effect.gradient = make([]Color, geo.Rings())
		}
		FillRainbow(effect.gradient, effect.hue)
		for ring := 0; ring < geo.Rings(); ring++ {
			for j := 0; j < geo.RingLen(ring); j++ {
				*geo.At(ring, j) = effect.gradient[ring]
			}
		}
	}
	effect.hue += uint8(effect.delta)
	return true
}

func (effect *StreamEffect) writeDoc(doc Doc) {
	doc["direction"] = effect.direction
	doc["delta"] = int(effect.delta)
}
