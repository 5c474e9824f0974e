package lume

// This module implements the file driven animation effect.  Animations
// are plain text files of #RRGGBB tokens separated by commas, one frame
// per line, one token per pixel in buffer order.  The file is streamed
// one frame per update and rewound at the end for a seamless loop.

import (
	"bufio"
	"flag"
	"io"
	"os"
	"path/filepath"
)

var (
	animDir = flag.String("animDir", "assets/animations", "The directory in which animation frame files can be found")
)

// AnimationEffect streams frames from an animation file.  The file
// handle is owned by the effect and released when the owning container
// is reassigned or closed.  A file that could not be opened leaves the
// effect permanently inert.
type AnimationEffect struct {
	name   string
	file   *os.File
	reader *bufio.Reader
	frame  int
}

func NewAnimation(name string) (effect *AnimationEffect) {
	effect = &AnimationEffect{name: name}
	if len(name) == 0 {
		return effect
	}

	fp := filepath.Join(*animDir, name)
	file, errGo := os.Open(fp)
	if errGo != nil {
		logger.Warn("failed to open animation", "animName", name, "file", fp, "error", errGo.Error())
		return effect
	}

	effect.file = file
	effect.reader = bufio.NewReader(file)
	logger.Info("start to play animation", "animName", name)
	return effect
}

func (effect *AnimationEffect) Kind() Kind {
	return Animation
}

// Close releases the animation file.  Safe to call when the open failed
// or the effect was constructed with an empty name.
func (effect *AnimationEffect) Close() error {
	if effect.file == nil {
		return nil
	}
	errGo := effect.file.Close()
	effect.file = nil
	effect.reader = nil
	logger.Info("stop playing animation", "animName", effect.name)
	return errGo
}

// rewind seeks back to the first frame after the end of the file is
// reached mid read
func (effect *AnimationEffect) rewind() {
	effect.file.Seek(0, io.SeekStart)
	effect.reader.Reset(effect.file)
	effect.frame = 0
}

func (effect *AnimationEffect) Update(light Light, tick Tick) bool {
	if effect.file == nil {
		return false
	}

	pixels := light.Data()
	token := make([]byte, 0, 7)
	index := 0
	rewound := false
	for {
		c, errGo := effect.reader.ReadByte()
		if errGo != nil {
			if rewound {
				// An empty or unreadable file, give up on this frame
				break
			}
			logger.Debug("end of animation, replay", "animName", effect.name)
			effect.rewind()
			token = token[:0]
			index = 0
			rewound = true
			continue
		}
		switch c {
		case ',', '\n':
			if color, ok := parseAnimToken(token); ok {
				if index < len(pixels) {
					pixels[index] = color
				}
				index++
			} else {
				logger.Warn("invalid animation element", "animName", effect.name, "element", string(token))
			}
			token = token[:0]
			if c == '\n' {
				effect.frame++
				return true
			}
		case '\r':
			// Tolerate DOS line endings
		default:
			if len(token) < 7 {
				token = append(token, c)
			}
		}
	}
	return true
}

// parseAnimToken validates and decodes a single #RRGGBB token
func parseAnimToken(token []byte) (c Color, ok bool) {
	if len(token) != 7 || token[0] != '#' {
		return Black, false
	}
	c, errGo := ParseHexColor(string(token))
	if errGo != nil {
		return Black, false
	}
	return c, true
}

func (effect *AnimationEffect) writeDoc(doc Doc) {
	doc["animName"] = effect.name
}
