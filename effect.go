package lume

// This module implements the effect container used by the player.  The
// container holds exactly one of the concrete effect algorithms without
// requiring them to share anything beyond the small capability set the
// scheduler needs, and rebinds itself whenever a new algorithm is
// assigned.

import (
	"io"
	"math"
	"time"
)

// Kind identifies one of the effect algorithms.  The numeric values are
// the discriminator written into serialized effect documents and must
// not be reordered.
type Kind int

const (
	Constant Kind = iota
	Blink
	Breath
	Chase
	Rainbow
	Stream
	Animation
	Music
	Custom
)

var kindNames = []string{
	Constant:  "constant",
	Blink:     "blink",
	Breath:    "breath",
	Chase:     "chase",
	Rainbow:   "rainbow",
	Stream:    "stream",
	Animation: "animation",
	Music:     "music",
	Custom:    "custom",
}

func (kind Kind) String() string {
	if kind < 0 || int(kind) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[kind]
}

// ParseKind maps a canonical effect name back to its Kind
func ParseKind(name string) (Kind, bool) {
	for kind, known := range kindNames {
		if known == name {
			return Kind(kind), true
		}
	}
	return Constant, false
}

// Tick carries the per-frame context supplied by the scheduler.  The
// frame rate is owned by the scheduler and can change between ticks so
// effects derive their frame counts from it on every update rather than
// caching them.
type Tick struct {
	FPS   uint16
	Delta time.Duration
}

// frames converts a duration parameter in seconds into a frame count at
// the current rate
func (tick Tick) frames(seconds float64) int {
	return int(math.Round(float64(tick.FPS) * seconds))
}

// Algorithm is the capability set every effect implements.  Algorithms
// are self contained values owning their own progress state, writeDoc
// adds the configuration fields, never progress counters.
type Algorithm interface {
	Kind() Kind
	Update(light Light, tick Tick) bool
	writeDoc(doc Doc)
}

// Effect is a value container for exactly one algorithm.  The zero
// value is unusable until an algorithm is assigned.
type Effect struct {
	impl Algorithm
}

// NewEffect returns a container already bound to the supplied algorithm
func NewEffect(impl Algorithm) (effect Effect) {
	effect.Assign(impl)
	return effect
}

// Assign replaces the stored algorithm, releasing any resource the
// previous one owned.  Progress state of the previous algorithm is
// discarded with it.
func (effect *Effect) Assign(impl Algorithm) {
	effect.release()
	effect.impl = impl
}

// Assigned reports whether the container holds an algorithm yet
func (effect *Effect) Assigned() bool {
	return effect.impl != nil
}

// Kind returns the identity of the stored algorithm
func (effect *Effect) Kind() Kind {
	return effect.impl.Kind()
}

// Update advances the stored algorithm by one frame against the light,
// returning true when the pixel buffer was modified and should be
// pushed to the hardware
func (effect *Effect) Update(light Light, tick Tick) bool {
	return effect.impl.Update(light, tick)
}

// WriteDoc captures the discriminator and the algorithm's configuration
// fields into the document
func (effect *Effect) WriteDoc(doc Doc) {
	doc["mode"] = int(effect.impl.Kind())
	effect.impl.writeDoc(doc)
}

// Close releases any resource owned by the stored algorithm.  Called by
// the player on shutdown, reassignment does this implicitly.
func (effect *Effect) Close() {
	effect.release()
	effect.impl = nil
}

func (effect *Effect) release() {
	if closer, ok := effect.impl.(io.Closer); ok {
		if errGo := closer.Close(); errGo != nil {
			logger.Warn("failed to release effect resource", "kind", effect.impl.Kind().String(), "error", errGo.Error())
		}
	}
}

// As recovers the concrete algorithm from a container.  Asking for a
// type other than the one currently stored is a caller bug and panics,
// check Kind first.
func As[T Algorithm](effect *Effect) T {
	return effect.impl.(T)
}
