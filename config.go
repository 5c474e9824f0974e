package lume

// This module implements loading of the controller configuration file
// and persistence of the current effect document.  The configuration
// declares the device geometry, the target frame rate and the fadecandy
// server, the effect document is saved as JSON whenever a new effect is
// applied and reloaded at startup.

import (
	"encoding/json"
	"os"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"gopkg.in/yaml.v2"
)

// StripConfig declares a linear strip device
type StripConfig struct {
	Count   int  `yaml:"count"`
	Reverse bool `yaml:"reverse"`
}

// Config is the on disk controller configuration.  Exactly one of
// Strip and Rings must be present.
type Config struct {
	Server string       `yaml:"server"`
	FPS    uint16       `yaml:"fps"`
	Effect string       `yaml:"effect"`
	Strip  *StripConfig `yaml:"strip"`
	Rings  []int        `yaml:"rings"`
}

// LoadConfig reads and validates the YAML configuration file
func LoadConfig(fp string) (cfg *Config, err errors.Error) {
	data, errGo := os.ReadFile(fp)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}

	cfg = &Config{
		Server: "127.0.0.1:7890",
		FPS:    30,
	}
	if errGo = yaml.Unmarshal(data, cfg); errGo != nil {
		return nil, errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}

	if cfg.Strip == nil && len(cfg.Rings) == 0 {
		return nil, errors.New("configuration declares no device").With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}
	if cfg.Strip != nil && len(cfg.Rings) != 0 {
		return nil, errors.New("configuration declares both a strip and a disc").With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}
	if cfg.Strip != nil && cfg.Strip.Count <= 0 {
		return nil, errors.New("strip pixel count must be positive").With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}

	return cfg, nil
}

// Light constructs the device the configuration declares
func (cfg *Config) Light() (light Light, err errors.Error) {
	if len(cfg.Rings) != 0 {
		for _, size := range cfg.Rings {
			if size <= 0 {
				return nil, errors.New("ring sizes must be positive").With("stack", stack.Trace().TrimRuntime())
			}
		}
		return NewDisc(cfg.Rings...), nil
	}
	return NewStrip(cfg.Strip.Count, cfg.Strip.Reverse), nil
}

// SaveEffectDoc persists an effect document as JSON
func SaveEffectDoc(fp string, doc Doc) (err errors.Error) {
	data, errGo := json.Marshal(doc)
	if errGo != nil {
		return errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo = os.WriteFile(fp, data, 0644); errGo != nil {
		return errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// LoadEffectDoc reads a persisted effect document.  A missing file is
// not an error, it yields an empty document which reconstructs as the
// default constant effect.
func LoadEffectDoc(fp string) (doc Doc, err errors.Error) {
	doc = Doc{}

	data, errGo := os.ReadFile(fp)
	if os.IsNotExist(errGo) {
		return doc, nil
	}
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo = json.Unmarshal(data, &doc); errGo != nil {
		return nil, errors.Wrap(errGo).With("file", fp).With("stack", stack.Trace().TrimRuntime())
	}
	return doc, nil
}
