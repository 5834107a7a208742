package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-glyphloop/internal/glyph"
	"github.com/coreman2200/funtimes-glyphloop/model"
)

var (
	ErrParts  = errors.New("parts must be at least 1")
	ErrSweep  = errors.New("sweep must be positive")
	ErrPeriod = errors.New("period_ms must be positive")
)

type LEDCfg struct {
	Driver        string  `yaml:"driver"` // "spi" | "sim" | "" (off)
	Port          string  `yaml:"port,omitempty"`
	FreqKHz       int     `yaml:"freq_khz"`
	PixelsPerPart int     `yaml:"pixels_per_part"`
	Serpentine    bool    `yaml:"serpentine"`
	Renderer      string  `yaml:"renderer"` // "strokes" | "fill"
	Brightness    float64 `yaml:"brightness"`
	Gamma         float64 `yaml:"gamma"`
	WhiteCap      float64 `yaml:"white_cap"`
	BudgetMA      float64 `yaml:"budget_ma"`
}

type DemoCfg struct {
	Kind       string `yaml:"kind"` // "" | "sweep" | "loop"
	IntervalMs int    `yaml:"interval_ms"`
}

type Config struct {
	Palette   []string `yaml:"palette"`
	BackColor string   `yaml:"back_color"`
	Parts     int      `yaml:"parts"`
	Sweep     float64  `yaml:"sweep"`
	PeriodMs  int      `yaml:"period_ms"`

	StrokeFactor float64 `yaml:"stroke_factor"`
	SizeFactor   float64 `yaml:"size_factor"`
	Ease         string  `yaml:"ease,omitempty"`

	Frontend string `yaml:"frontend"` // "window" | "term" | "headless"
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Addr     string `yaml:"addr,omitempty"`
	Chime    bool   `yaml:"chime"`
	LogLevel string `yaml:"log_level,omitempty"`

	LED  LEDCfg  `yaml:"led"`
	Demo DemoCfg `yaml:"demo,omitempty"`
}

// Default carries the stock palette and timing.
func Default() *Config {
	return &Config{
		Palette:      []string{"#EF5350", "#01579B", "#00C853", "#4A148C", "#C51162"},
		BackColor:    "#BDBDBD",
		Parts:        4,
		Sweep:        0.02,
		PeriodMs:     20,
		StrokeFactor: 90,
		SizeFactor:   4.9,
		Ease:         "linear",
		Frontend:     "window",
		Width:        800,
		Height:       800,
		LogLevel:     "info",
		LED: LEDCfg{
			FreqKHz:       2500,
			PixelsPerPart: 8,
			Serpentine:    true,
			Renderer:      "strokes",
			Brightness:    0.8,
			Gamma:         2.2,
			WhiteCap:      2.2,
			BudgetMA:      3000,
		},
		Demo: DemoCfg{IntervalMs: 250},
	}
}

// Step is the per-tick progress increment.
func (c *Config) Step() float64 { return c.Sweep / float64(c.Parts) }

// Period is the tick period.
func (c *Config) Period() time.Duration { return time.Duration(c.PeriodMs) * time.Millisecond }

// Validate rejects configurations the chain cannot be built from.
func (c *Config) Validate() error {
	if _, err := model.ParsePalette(c.Palette); err != nil {
		return err
	}
	if _, err := model.ParseHex(c.BackColor); err != nil {
		return fmt.Errorf("back_color: %w", err)
	}
	if c.Parts < 1 {
		return ErrParts
	}
	if c.Sweep <= 0 {
		return ErrSweep
	}
	if c.PeriodMs <= 0 {
		return ErrPeriod
	}
	if _, err := glyph.EaseByName(c.Ease); err != nil {
		return err
	}
	return nil
}

// Load reads path over the defaults, so a partial file only overrides the
// keys it sets.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
