package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-glyphloop/model"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Palette, 5)
	assert.InDelta(t, 0.005, c.Step(), 1e-15)
	assert.Equal(t, 20*time.Millisecond, c.Period())
}

func TestValidateRejects(t *testing.T) {
	var cases = []struct {
		Name   string
		Mutate func(c *Config)
		Expect error
	}{
		{"empty palette", func(c *Config) { c.Palette = nil }, model.ErrEmptyPalette},
		{"bad color", func(c *Config) { c.Palette[2] = "#XYZ" }, model.ErrBadHex},
		{"bad back", func(c *Config) { c.BackColor = "grey" }, model.ErrBadHex},
		{"no parts", func(c *Config) { c.Parts = 0 }, ErrParts},
		{"no sweep", func(c *Config) { c.Sweep = 0 }, ErrSweep},
		{"no period", func(c *Config) { c.PeriodMs = -1 }, ErrPeriod},
	}
	for _, cs := range cases {
		t.Run(cs.Name, func(t *testing.T) {
			c := Default()
			cs.Mutate(c)
			assert.ErrorIs(t, c.Validate(), cs.Expect)
		})
	}

	c := Default()
	c.Ease = "wobble"
	assert.Error(t, c.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palette: ['#000000', '#FFFFFF']\nperiod_ms: 40\nled:\n  driver: sim\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"#000000", "#FFFFFF"}, c.Palette)
	assert.Equal(t, 40, c.PeriodMs)
	assert.Equal(t, "sim", c.LED.Driver)
	assert.Equal(t, 4, c.Parts)
	assert.Equal(t, 8, c.LED.PixelsPerPart)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Frontend = "term"
	c.Demo.Kind = "sweep"
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parts: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
