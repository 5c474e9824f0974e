package lume

import (
	"os"
	"testing"
)

func TestEffectContainerIdentity(t *testing.T) {
	tests := []struct {
		name string
		impl Algorithm
		kind Kind
	}{
		{"Constant", NewConstant(0xFF0000), Constant},
		{"Blink", NewBlink(0xFF0000, 1, 1), Blink},
		{"Breath", NewBreath(0xFF0000, 1, 1), Breath},
		{"Chase", NewChase(0xFF0000, 0, 0.1), Chase},
		{"Rainbow", NewRainbow(1), Rainbow},
		{"Stream", NewStream(0, 1), Stream},
		{"Music", NewMusic(SoundLevel), Music},
		{"Custom", NewCustom(), Custom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effect := NewEffect(tt.impl)
			if effect.Kind() != tt.kind {
				t.Errorf("Expected kind %v, got %v", tt.kind, effect.Kind())
			}
		})
	}
}

func TestEffectZeroValueUnassigned(t *testing.T) {
	effect := Effect{}
	if effect.Assigned() {
		t.Errorf("Expected the zero container to be unassigned")
	}
	effect.Assign(NewCustom())
	if !effect.Assigned() {
		t.Errorf("Expected the container to be assigned after Assign")
	}
}

func TestEffectReassignReplacesIdentity(t *testing.T) {
	strip := NewStrip(2, false)
	effect := NewEffect(NewConstant(0xFF0000))
	effect.Update(strip, testTick(10))

	effect.Assign(NewRainbow(1))
	if effect.Kind() != Rainbow {
		t.Errorf("Expected the container to take the new identity, got %v", effect.Kind())
	}
	if !effect.Update(strip, testTick(10)) {
		t.Errorf("Expected the replacement effect to start from its own initial state")
	}
}

func TestEffectReassignClosesAnimation(t *testing.T) {
	animSandbox(t)
	writeAnim(t, "pulse.txt", "#ff0000\n")

	anim := NewAnimation("pulse.txt")
	effect := NewEffect(anim)

	effect.Assign(NewConstant(0xFF0000))
	if anim.file != nil {
		t.Errorf("Expected the animation file to be released on reassignment")
	}
}

func TestEffectCloseReleasesAnimation(t *testing.T) {
	animSandbox(t)
	writeAnim(t, "pulse.txt", "#ff0000\n")

	anim := NewAnimation("pulse.txt")
	effect := NewEffect(anim)

	effect.Close()
	if anim.file != nil {
		t.Errorf("Expected the animation file to be released on close")
	}
	if effect.Assigned() {
		t.Errorf("Expected the container to be unassigned after close")
	}
}

// brokenCloser is an algorithm whose resource release always fails
type brokenCloser struct {
	CustomEffect
	closed bool
}

func (effect *brokenCloser) Close() error {
	effect.closed = true
	return os.ErrClosed
}

func TestEffectReleaseSurvivesCloseFailure(t *testing.T) {
	impl := &brokenCloser{}
	effect := NewEffect(impl)

	// A failing close is logged but must not stop the reassignment
	effect.Assign(NewConstant(0xFF0000))
	if !impl.closed {
		t.Errorf("Expected the failing closer to have been invoked")
	}
	if effect.Kind() != Constant {
		t.Errorf("Expected the replacement to take effect, got %v", effect.Kind())
	}
}

func TestEffectAsAccess(t *testing.T) {
	effect := NewEffect(NewMusic(SoundLevel))
	if effect.Kind() != Music {
		t.Fatalf("Expected a music effect")
	}

	As[*MusicEffect](&effect).SetVolume(0.25)
	if As[*MusicEffect](&effect).volume != 0.25 {
		t.Errorf("Expected the accessor to reach the stored value")
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for kind := Constant; kind <= Custom; kind++ {
		parsed, ok := ParseKind(kind.String())
		if !ok {
			t.Errorf("Expected %q to parse", kind.String())
		}
		if parsed != kind {
			t.Errorf("Expected %q to parse back to %d, got %d", kind.String(), kind, parsed)
		}
	}

	if _, ok := ParseKind("disco"); ok {
		t.Errorf("Expected an unknown name to be rejected")
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Expected an out of range kind to print as unknown")
	}
}

func TestTickFrameDerivation(t *testing.T) {
	tests := []struct {
		name    string
		fps     uint16
		seconds float64
		frames  int
	}{
		{"One second at 10 fps", 10, 1.0, 10},
		{"Fifth of a second at 10 fps", 10, 0.2, 2},
		{"Rounded up", 30, 0.05, 2},
		{"Rounded down", 30, 0.04, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tick := testTick(tt.fps)
			if got := tick.frames(tt.seconds); got != tt.frames {
				t.Errorf("Expected %f seconds at %d fps to be %d frames, got %d", tt.seconds, tt.fps, tt.frames, got)
			}
		})
	}
}
