package lume

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAnim(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(*animDir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Expected the animation file to be written, got %v", err)
	}
}

func animSandbox(t *testing.T) {
	t.Helper()
	saved := *animDir
	*animDir = t.TempDir()
	t.Cleanup(func() { *animDir = saved })
}

func TestAnimationLoops(t *testing.T) {
	animSandbox(t)
	writeAnim(t, "pulse.txt", "#ff0000\n#00ff00\n")

	strip := NewStrip(2, false)
	effect := NewAnimation("pulse.txt")
	defer effect.Close()
	tick := testTick(10)

	if !effect.Update(strip, tick) {
		t.Fatalf("Expected the first frame to be dirty")
	}
	if strip.Data()[0] != Red {
		t.Errorf("Expected the first frame to light pixel 0 red, got %v", strip.Data()[0])
	}

	if !effect.Update(strip, tick) {
		t.Fatalf("Expected the second frame to be dirty")
	}
	if strip.Data()[0] != Green {
		t.Errorf("Expected the second frame to light pixel 0 green, got %v", strip.Data()[0])
	}

	// End of file rewinds and replays the first frame in the same call
	if !effect.Update(strip, tick) {
		t.Fatalf("Expected the wrapped frame to be dirty")
	}
	if strip.Data()[0] != Red {
		t.Errorf("Expected the loop to repeat the red frame, got %v", strip.Data()[0])
	}
}

func TestAnimationMultiplePixelsPerLine(t *testing.T) {
	animSandbox(t)
	writeAnim(t, "row.txt", "#ff0000,#00ff00,#0000ff\n")

	strip := NewStrip(3, false)
	effect := NewAnimation("row.txt")
	defer effect.Close()

	if !effect.Update(strip, testTick(10)) {
		t.Fatalf("Expected the frame to be dirty")
	}
	want := []Color{Red, Green, {0, 0, 255}}
	for i, c := range want {
		if strip.Data()[i] != c {
			t.Errorf("Expected pixel %d to be %v, got %v", i, c, strip.Data()[i])
		}
	}
}

func TestAnimationRewindRestartsPixelOrder(t *testing.T) {
	animSandbox(t)
	writeAnim(t, "tail.txt", "#ff0000,#00ff00")

	strip := NewStrip(2, false)
	effect := NewAnimation("tail.txt")
	defer effect.Close()

	// The final line carries no newline, so the frame ends at the
	// rewind.  The replayed first token must land at pixel 0 again,
	// not at the offset the interrupted pass had reached.
	if !effect.Update(strip, testTick(10)) {
		t.Fatalf("Expected the frame to be dirty")
	}
	if strip.Data()[0] != Red {
		t.Errorf("Expected the replayed first token at pixel 0, got %v", strip.Data()[0])
	}
	if strip.Data()[1] != Black {
		t.Errorf("Expected pixel 1 untouched after the rewind, got %v", strip.Data()[1])
	}
}

func TestAnimationSkipsMalformedTokens(t *testing.T) {
	animSandbox(t)
	writeAnim(t, "broken.txt", "#zz,#ff0000\n")

	strip := NewStrip(2, false)
	effect := NewAnimation("broken.txt")
	defer effect.Close()

	if !effect.Update(strip, testTick(10)) {
		t.Fatalf("Expected the frame to be dirty despite the bad token")
	}
	// The malformed token is dropped without consuming a pixel slot
	if strip.Data()[0] != Red {
		t.Errorf("Expected the remaining token of the line to be applied, got %v", strip.Data()[0])
	}
}

func TestAnimationToleratesCarriageReturns(t *testing.T) {
	animSandbox(t)
	writeAnim(t, "dos.txt", "#ff0000\r\n")

	strip := NewStrip(1, false)
	effect := NewAnimation("dos.txt")
	defer effect.Close()

	if !effect.Update(strip, testTick(10)) {
		t.Fatalf("Expected the frame to be dirty")
	}
	if strip.Data()[0] != Red {
		t.Errorf("Expected the DOS terminated line to parse, got %v", strip.Data()[0])
	}
}

func TestAnimationMissingFileIsInert(t *testing.T) {
	animSandbox(t)

	strip := NewStrip(2, false)
	effect := NewAnimation("absent.txt")
	defer effect.Close()

	for i := 0; i < 3; i++ {
		if effect.Update(strip, testTick(10)) {
			t.Errorf("Expected updates for a missing file to be clean no-ops")
		}
	}
	for i, c := range strip.Data() {
		if c != Black {
			t.Errorf("Expected pixel %d untouched, got %v", i, c)
		}
	}
}

func TestAnimationCloseReleasesFile(t *testing.T) {
	animSandbox(t)
	writeAnim(t, "pulse.txt", "#ff0000\n")

	effect := NewAnimation("pulse.txt")
	if effect.file == nil {
		t.Fatalf("Expected the animation file to be open")
	}
	if errGo := effect.Close(); errGo != nil {
		t.Fatalf("Expected the close to succeed, got %v", errGo)
	}
	if effect.file != nil {
		t.Errorf("Expected the handle to be dropped by the close")
	}

	strip := NewStrip(1, false)
	if effect.Update(strip, testTick(10)) {
		t.Errorf("Expected updates after close to be clean no-ops")
	}

	// A second close must be harmless
	if errGo := effect.Close(); errGo != nil {
		t.Errorf("Expected a repeated close to be a no-op, got %v", errGo)
	}
}
