package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-glyphloop/internal/app"
	"github.com/coreman2200/funtimes-glyphloop/internal/audio"
	"github.com/coreman2200/funtimes-glyphloop/internal/config"
	"github.com/coreman2200/funtimes-glyphloop/internal/demo"
	diag "github.com/coreman2200/funtimes-glyphloop/internal/diagnostics"
	"github.com/coreman2200/funtimes-glyphloop/internal/driver/fake"
	"github.com/coreman2200/funtimes-glyphloop/internal/glyph"
	"github.com/coreman2200/funtimes-glyphloop/internal/layout"
	"github.com/coreman2200/funtimes-glyphloop/internal/led"
	"github.com/coreman2200/funtimes-glyphloop/internal/render"
	"github.com/coreman2200/funtimes-glyphloop/internal/sequence"
	"github.com/coreman2200/funtimes-glyphloop/internal/term"
	"github.com/coreman2200/funtimes-glyphloop/internal/window"
	"github.com/coreman2200/funtimes-glyphloop/internal/ws"
	"github.com/coreman2200/funtimes-glyphloop/model"
)

func main() {
	// ---- Flags (explicitly set flags override config.yaml) ----
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		frontend   = flag.String("frontend", "window", "frontend: window | term | headless")
		addr       = flag.String("addr", "", "HTTP listen address for /ws, /control, /diag, /health (empty = off)")
		driver     = flag.String("driver", "", "LED driver: spi | sim | \"\" (off)")
		port       = flag.String("port", "", "SPI port name (empty = first available)")
		renderer   = flag.String("renderer", "strokes", "LED renderer: strokes | fill")
		easing     = flag.String("ease", "linear", "stroke easing: "+strings.Join(glyph.Easings(), " | "))
		periodMs   = flag.Int("period-ms", 20, "tick period in milliseconds")
		demoKind   = flag.String("demo", "", "attract mode: "+demoKinds())
		chime      = flag.Bool("chime", false, "play a tone when a glyph settles")
		logLevel   = flag.String("log-level", "info", "log level: debug | info | warn | error")
		saveConfig = flag.Bool("save-config", false, "write the effective config back to -config")
	)
	flag.Parse()

	// ---- Load config.yaml (optional) ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["frontend"] {
		cfg.Frontend = *frontend
	}
	if set["addr"] {
		cfg.Addr = *addr
	}
	if set["driver"] {
		cfg.LED.Driver = *driver
	}
	if set["port"] {
		cfg.LED.Port = *port
	}
	if set["renderer"] {
		cfg.LED.Renderer = *renderer
	}
	if set["ease"] {
		cfg.Ease = *easing
	}
	if set["period-ms"] {
		cfg.PeriodMs = *periodMs
	}
	if set["demo"] {
		cfg.Demo.Kind = *demoKind
	}
	if set["chime"] {
		cfg.Chime = *chime
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}

	// ---- Logging ----
	// the terminal frontend owns stdout
	var out io.Writer = os.Stdout
	if cfg.Frontend == "term" {
		out = io.Discard
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	if lvl, perr := zerolog.ParseLevel(cfg.LogLevel); perr == nil && cfg.LogLevel != "" {
		zerolog.SetGlobalLevel(lvl)
	}
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults and flags")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if *saveConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config save failed")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- LED driver selection ----
	l := layout.Layout{Parts: cfg.Parts, PixelsPerPart: cfg.LED.PixelsPerPart, Serpentine: cfg.LED.Serpentine}
	var strip led.Driver
	driverName := cfg.LED.Driver
	switch cfg.LED.Driver {
	case "":
	case "sim":
		strip = &fake.Driver{}
	case "spi":
		s, err := led.Open(led.Opts{Port: cfg.LED.Port, Count: l.Count(), FreqKHz: cfg.LED.FreqKHz, Gamma: cfg.LED.Gamma})
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("port", cfg.LED.Port).
				Msg("SPI init failed; falling back to SIM")
			strip = &fake.Driver{}
			driverName = "sim"
		} else {
			strip = s
			if !s.SPI {
				driverName = "console"
			}
		}
	default:
		log.Warn().Str("driver", cfg.LED.Driver).Msg("unknown driver; using SIM")
		strip = &fake.Driver{}
		driverName = "sim"
	}
	var drv render.Driver
	if strip != nil {
		drv = strip
	}

	// ---- Chime ----
	var bell *audio.Chime
	if cfg.Chime {
		bell = audio.NewChime()
		if err := bell.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio init failed; chime disabled")
			bell = nil
		}
	}

	// ---- Core ----
	var (
		state  *ws.State
		redraw func()
		eng    *render.Engine
	)
	hooks := app.Hooks{
		Render: func(app.Snapshot) {
			if redraw != nil {
				redraw()
			}
		},
		OnSettle: func(o sequence.Outcome, s app.Snapshot) {
			if bell != nil {
				bell.Play(o.Active, o.Bounced)
			}
			if state == nil {
				return
			}
			state.PushDiag(diag.Settled(o.From, o.Active, o.Direction))
			if o.Bounced {
				state.PushDiag(diag.Bounced(o.Active, o.Direction))
			}
			if err := eng.Err(); err != nil {
				state.PushDiag(diag.DriverFailed(err))
			}
		},
		OnIgnored: func(s app.Snapshot) {
			if state != nil {
				state.PushDiag(diag.Ignored(s.Active, s.Scale))
			}
		},
	}
	core, err := app.InitCore(cfg, drv, hooks)
	if err != nil {
		log.Fatal().Err(err).Msg("core init failed")
	}
	eng = core.Eng
	back, _ := model.ParseHex(cfg.BackColor)

	// ---- Frontend setup (before anything can trigger) ----
	ease, _ := glyph.EaseByName(cfg.Ease)
	geo := glyph.Geometry{
		Width:        float64(cfg.Width),
		Height:       float64(cfg.Height),
		Parts:        cfg.Parts,
		StrokeFactor: cfg.StrokeFactor,
		SizeFactor:   cfg.SizeFactor,
		Ease:         ease,
	}
	var (
		screen tcell.Screen
		tui    *term.Term
	)
	if cfg.Frontend == "term" {
		if screen, err = tcell.NewScreen(); err == nil {
			err = screen.Init()
		}
		if err != nil {
			log.Fatal().Err(err).Msg("terminal")
		}
		tui = term.New(screen, core.Cond, core.Palette, back, geo)
		redraw = tui.Redraw
	}

	// ---- HTTP routes ----
	var srv *http.Server
	if cfg.Addr != "" {
		state = ws.NewState(core.Cond, core.Palette, back, cfg.Parts)
		state.CurrentDriver = driverName
		state.Engine, state.Registry = core.Eng, core.Reg
		state.DemoInterval = time.Duration(cfg.Demo.IntervalMs) * time.Millisecond
		core.Eng.AddSink(state)

		mux := http.NewServeMux()
		state.Routes(mux)
		srv = &http.Server{
			Addr:         cfg.Addr,
			Handler:      withCORS(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.Addr).Str("driver", driverName).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("http server crashed")
			}
		}()
	}

	// ---- Demo ----
	if kind := demo.Kind(cfg.Demo.Kind); kind != demo.None {
		if state != nil {
			if err := state.StartDemo(kind); err != nil {
				log.Warn().Err(err).Msg("demo not started")
			}
		} else {
			r := demo.NewRunner(demo.Plan{Kind: kind, Interval: time.Duration(cfg.Demo.IntervalMs) * time.Millisecond})
			go func() {
				if err := r.Run(ctx, core.Cond); err != nil && !errors.Is(err, context.Canceled) {
					log.Warn().Err(err).Msg("demo stopped")
				}
			}()
		}
	}

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-ch:
			log.Info().Str("signal", s.String()).Msg("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	core.Cond.Render()
	log.Info().
		Int("glyphs", len(core.Palette)).
		Float64("step", cfg.Step()).
		Dur("period", cfg.Period()).
		Str("frontend", cfg.Frontend).
		Msg("glyphloop ready")

	// ---- Frontend ----
	switch cfg.Frontend {
	case "window":
		g := window.New(core.Cond, core.Palette, back, geo)
		g.Quit = ctx.Done()
		if err := window.Run(g, "glyphloop"); err != nil {
			log.Error().Err(err).Msg("window")
		}
	case "term":
		if err := tui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("terminal")
		}
		screen.Fini()
	default:
		<-ctx.Done()
	}
	cancel()

	core.Cond.Close()
	if state != nil {
		state.Close()
	}
	if srv != nil {
		_ = srv.Close()
	}
	if strip != nil {
		_ = strip.Close()
	}
	if bell != nil {
		bell.Cleanup()
	}
	s := core.Cond.Snapshot()
	log.Info().Int("bursts", s.Bursts).Int("bounces", s.Bounces).Msg("bye")
}

func demoKinds() string {
	var names []string
	for _, k := range demo.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, " | ")
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
