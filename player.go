package lume

// This module implements the frame player that drives a light device
// from the currently assigned effect and pushes dirty frames to a
// fadecandy server using the Open Pixel Control protocol.  Effect
// documents and volume levels arrive over channels so that all effect
// state stays on the player goroutine.

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/cnf/structhash"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/kellydunn/go-opc"
	logxi "github.com/mgutz/logxi/v1"
)

var logger = logxi.New("lume")

// Player owns a light device and the effect animating it.  One Run
// goroutine is the only code touching the effect after start.
type Player struct {
	light  Light
	effect Effect
	fps    uint16
	server string
	store  string

	oc       *opc.Client
	lastHash []byte

	applyC  chan Doc
	volumeC chan float64
	rateC   chan uint16
	errorC  chan<- errors.Error
}

func NewPlayer(light Light, fps uint16, server string, store string, errorC chan<- errors.Error) (player *Player) {
	if fps == 0 {
		fps = 30
	}
	return &Player{
		light:   light,
		fps:     fps,
		server:  server,
		store:   store,
		applyC:  make(chan Doc, 1),
		volumeC: make(chan float64, 1),
		rateC:   make(chan uint16, 1),
		errorC:  errorC,
	}
}

// Apply hands an effect document to the player goroutine
func (player *Player) Apply(doc Doc) {
	select {
	case player.applyC <- doc:
	case <-time.After(250 * time.Millisecond):
		player.report(errors.New("effect command dropped").With("stack", stack.Trace().TrimRuntime()))
	}
}

// SetVolume pushes an externally computed volume level for the music
// effect, ignored while any other effect is live
func (player *Player) SetVolume(volume float64) {
	select {
	case player.volumeC <- volume:
	case <-time.After(250 * time.Millisecond):
	}
}

// SetRate changes the target frame rate.  Running effects keep their
// progress counters, subsequent frame boundaries move.
func (player *Player) SetRate(fps uint16) {
	select {
	case player.rateC <- fps:
	case <-time.After(250 * time.Millisecond):
	}
}

// Run is the frame loop.  It owns the effect until quitC closes.
func (player *Player) Run(quitC <-chan struct{}) {

	player.oc = opc.NewClient()
	if errGo := player.oc.Connect("tcp", player.server); errGo != nil {
		player.report(errors.Wrap(errGo).With("server", player.server).With("stack", stack.Trace().TrimRuntime()))
	}

	if len(player.store) != 0 {
		if doc, err := LoadEffectDoc(player.store); err != nil {
			player.report(err)
		} else {
			player.apply(doc, false)
		}
	}

	ticker := time.NewTicker(player.interval())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case now := <-ticker.C:
			tick := Tick{FPS: player.fps, Delta: now.Sub(last)}
			last = now
			if player.effect.Assigned() && player.effect.Update(player.light, tick) {
				player.push()
			}
		case doc := <-player.applyC:
			player.apply(doc, true)
		case volume := <-player.volumeC:
			if player.effect.Assigned() && player.effect.Kind() == Music {
				As[*MusicEffect](&player.effect).SetVolume(volume)
			}
		case fps := <-player.rateC:
			if fps != 0 {
				player.fps = fps
				ticker.Reset(player.interval())
			}
		case <-quitC:
			player.effect.Close()
			return
		}
	}
}

func (player *Player) interval() time.Duration {
	return time.Second / time.Duration(player.fps)
}

// apply swaps in the effect described by the document.  A document
// hashing identically to the live one is ignored so that a re-sent
// command does not restart the effect's progress.
func (player *Player) apply(doc Doc, persist bool) {
	hash := structhash.Md5(doc, 1)
	if bytes.Equal(hash, player.lastHash) {
		logger.Debug("unchanged effect command ignored")
		return
	}

	effect, err := ReadEffect(doc)
	if err != nil {
		player.report(err)
		return
	}

	player.effect.Assign(effect.impl)
	player.lastHash = hash
	logger.Info("effect assigned", "kind", player.effect.Kind().String())

	if persist && len(player.store) != 0 {
		if err := SaveEffectDoc(player.store, doc); err != nil {
			player.report(err)
		}
	}
}

// push sends the device buffer to the fadecandy server as one OPC
// message on the broadcast channel
func (player *Player) push() {
	m := opc.NewMessage(0)
	m.SetLength(uint16(player.light.Count() * 3))
	for i, c := range player.light.Data() {
		m.SetPixelColor(i, c.R, c.G, c.B)
	}
	if errGo := player.oc.Send(m); errGo != nil {
		player.report(errors.Wrap(errGo).With("server", player.server).With("stack", stack.Trace().TrimRuntime()))
	}
}

func (player *Player) report(err errors.Error) {
	select {
	case player.errorC <- err:
	case <-time.After(100 * time.Millisecond):
		fmt.Fprintln(os.Stderr, err.Error())
	}
}
