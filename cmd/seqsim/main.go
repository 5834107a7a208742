package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-glyphloop/internal/app"
	"github.com/coreman2200/funtimes-glyphloop/internal/config"
	"github.com/coreman2200/funtimes-glyphloop/internal/loop"
	"github.com/coreman2200/funtimes-glyphloop/internal/sequence"
)

// manual never fires; the simulation calls Tick itself.
type manual struct{ c chan time.Time }

func (m manual) Chan() <-chan time.Time { return m.c }
func (m manual) Stop()                  {}

func main() {
	var (
		configPath string
		bursts     int
		palette    string
		realtime   bool
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "optional config.yaml")
	flag.IntVar(&bursts, "bursts", 11, "number of taps to simulate")
	flag.StringVar(&palette, "palette", "", "comma separated #RRGGBB list overriding the config palette")
	flag.BoolVar(&realtime, "realtime", false, "tick on the configured period instead of as fast as possible")
	flag.BoolVar(&verbose, "v", false, "print every tick")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config")
		}
		cfg = c
	}
	if palette != "" {
		cfg.Palette = strings.Split(palette, ",")
	}

	settled := make(chan sequence.Outcome, 1)
	hooks := app.Hooks{
		OnSettle: func(o sequence.Outcome, s app.Snapshot) {
			mark := ""
			if o.Bounced {
				mark = " (bounce)"
			}
			fmt.Printf("[settle %03d] %d -> %d dir=%+d scale=%.3f%s\n", s.Bursts, o.From, o.Active, o.Direction, s.Scale, mark)
			settled <- o
		},
	}
	if verbose {
		hooks.Render = func(s app.Snapshot) {
			fmt.Printf("  [tick] node=%d scale=%.3f dir=%+d\n", s.Active, s.Scale, s.Dir)
		}
	}

	var opts []loop.Option
	if !realtime {
		opts = append(opts, loop.WithTicker(func(time.Duration) loop.Ticker { return manual{c: make(chan time.Time)} }))
	}
	core, err := app.InitCore(cfg, nil, hooks, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("core init failed")
	}

	start := time.Now()
	ticks := 0
	for i := 0; i < bursts; i++ {
		if !core.Cond.Trigger() {
			log.Fatal().Int("burst", i).Msg("trigger ignored while idle")
		}
		if realtime {
			<-settled
			continue
		}
		for core.Cond.Running() {
			core.Cond.Tick()
			ticks++
		}
		<-settled
	}

	s := core.Cond.Snapshot()
	log.Info().
		Int("bursts", s.Bursts).
		Int("bounces", s.Bounces).
		Int("ticks", ticks).
		Int("active", s.Active).
		Int("direction", s.Direction).
		Dur("elapsed", time.Since(start)).
		Msg("simulation done")
}
