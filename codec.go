package lume

// This module implements the serialization contract for effects.  An
// effect document is a flat set of keyed fields carrying the mode
// discriminator plus the configuration of one effect variant, never its
// progress state.  Documents travel over the network as JSON and are
// persisted to storage in the same shape.

import (
	"encoding/json"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// DefaultColor is the constant effect color used when a document does
// not identify an effect
const DefaultColor = uint32(0xFFC68C)

// Doc is the serialized form of an effect configuration
type Doc map[string]interface{}

// Int reads an integer field.  Fields arriving over JSON are float64
// and are accepted when they hold a whole number.
func (doc Doc) Int(key string) (value int, err errors.Error) {
	raw, isPresent := doc[key]
	if !isPresent {
		return 0, errors.New("missing field").With("key", key).With("stack", stack.Trace().TrimRuntime())
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint32:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, errors.New("field is not a whole number").With("key", key).With("stack", stack.Trace().TrimRuntime())
		}
		return int(v), nil
	}
	return 0, errors.New("field has the wrong type").With("key", key).With("stack", stack.Trace().TrimRuntime())
}

// Float reads a fractional field such as a duration in seconds
func (doc Doc) Float(key string) (value float64, err errors.Error) {
	raw, isPresent := doc[key]
	if !isPresent {
		return 0, errors.New("missing field").With("key", key).With("stack", stack.Trace().TrimRuntime())
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, errors.New("field has the wrong type").With("key", key).With("stack", stack.Trace().TrimRuntime())
}

// Str reads a string field
func (doc Doc) Str(key string) (value string, err errors.Error) {
	raw, isPresent := doc[key]
	if !isPresent {
		return "", errors.New("missing field").With("key", key).With("stack", stack.Trace().TrimRuntime())
	}
	v, ok := raw.(string)
	if !ok {
		return "", errors.New("field has the wrong type").With("key", key).With("stack", stack.Trace().TrimRuntime())
	}
	return v, nil
}

// color reads a packed 0xRRGGBB color field
func (doc Doc) color(key string) (value uint32, err errors.Error) {
	v, err := doc.Int(key)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// ReadEffect reconstructs an effect from its document.  The progress
// state of the reconstructed effect always starts at its initial value.
// A document without a usable mode discriminator falls back to a solid
// default color rather than failing, a document with a known mode but
// broken fields is a hard error.
func ReadEffect(doc Doc) (effect Effect, err errors.Error) {
	mode, modeErr := doc.Int("mode")
	if modeErr != nil || mode < int(Constant) || mode > int(Custom) {
		return NewEffect(NewConstant(DefaultColor)), nil
	}

	switch Kind(mode) {
	case Constant:
		color, err := doc.color("color")
		if err != nil {
			return effect, err
		}
		return NewEffect(NewConstant(color)), nil
	case Blink:
		color, err := doc.color("color")
		if err != nil {
			return effect, err
		}
		lastTime, err := doc.Float("lastTime")
		if err != nil {
			return effect, err
		}
		interval, err := doc.Float("interval")
		if err != nil {
			return effect, err
		}
		return NewEffect(NewBlink(color, lastTime, interval)), nil
	case Breath:
		color, err := doc.color("color")
		if err != nil {
			return effect, err
		}
		lastTime, err := doc.Float("lastTime")
		if err != nil {
			return effect, err
		}
		interval, err := doc.Float("interval")
		if err != nil {
			return effect, err
		}
		return NewEffect(NewBreath(color, lastTime, interval)), nil
	case Chase:
		color, err := doc.color("color")
		if err != nil {
			return effect, err
		}
		direction, err := doc.Int("direction")
		if err != nil {
			return effect, err
		}
		lastTime, err := doc.Float("lastTime")
		if err != nil {
			return effect, err
		}
		return NewEffect(NewChase(color, direction, lastTime)), nil
	case Rainbow:
		delta, err := doc.Int("delta")
		if err != nil {
			return effect, err
		}
		return NewEffect(NewRainbow(int8(delta))), nil
	case Stream:
		direction, err := doc.Int("direction")
		if err != nil {
			return effect, err
		}
		delta, err := doc.Int("delta")
		if err != nil {
			return effect, err
		}
		return NewEffect(NewStream(direction, int8(delta))), nil
	case Animation:
		animName, err := doc.Str("animName")
		if err != nil {
			return effect, err
		}
		return NewEffect(NewAnimation(animName)), nil
	case Music:
		soundMode, err := doc.Int("soundMode")
		if err != nil {
			return effect, err
		}
		return NewEffect(NewMusic(soundMode)), nil
	case Custom:
		return NewEffect(NewCustom()), nil
	}

	return NewEffect(NewConstant(DefaultColor)), nil
}

// MarshalJSON renders the effect document as JSON
func (effect *Effect) MarshalJSON() ([]byte, error) {
	doc := Doc{}
	effect.WriteDoc(doc)
	return json.Marshal(doc)
}

// UnmarshalJSON reconstructs the effect from a JSON document, releasing
// whatever was previously stored
func (effect *Effect) UnmarshalJSON(data []byte) error {
	doc := Doc{}
	if errGo := json.Unmarshal(data, &doc); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	read, err := ReadEffect(doc)
	if err != nil {
		return err
	}
	effect.Assign(read.impl)
	return nil
}
