package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-glyphloop/internal/config"
	"github.com/coreman2200/funtimes-glyphloop/internal/layout"
	"github.com/coreman2200/funtimes-glyphloop/internal/loop"
	"github.com/coreman2200/funtimes-glyphloop/internal/render"
	"github.com/coreman2200/funtimes-glyphloop/internal/render/fill"
	"github.com/coreman2200/funtimes-glyphloop/internal/render/strokes"
	"github.com/coreman2200/funtimes-glyphloop/internal/sequence"
	"github.com/coreman2200/funtimes-glyphloop/model"
)

type Core struct {
	Palette model.Palette
	Ctl     *sequence.Controller
	Eng     *render.Engine
	Reg     *render.Registry
	Loop    *loop.Looper
	Cond    *Conductor
}

func registerDefaultRenderers(reg *render.Registry) {
	reg.Register(strokes.New("strokes"))
	reg.Register(fill.New("fill"))
}

// InitCore builds the chain, the engine and the conductor from cfg. drv may
// be nil when no strip is attached.
func InitCore(cfg *config.Config, drv render.Driver, hooks Hooks, opts ...loop.Option) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	pal, err := model.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, err
	}
	back, err := model.ParseHex(cfg.BackColor)
	if err != nil {
		return nil, err
	}

	// 1) Chain, one node per palette color
	chain, err := sequence.NewChain(len(pal), cfg.Step())
	if err != nil {
		return nil, err
	}
	ctl := sequence.NewController(chain)

	// 2) Registry
	reg := render.NewRegistry()
	registerDefaultRenderers(reg)
	rr, ok := reg.Get(cfg.LED.Renderer)
	if !ok {
		// Fallback to any renderer in the registry
		names := reg.List()
		log.Warn().Str("renderer", cfg.LED.Renderer).Str("using", names[0]).Msg("unknown renderer")
		rr, _ = reg.Get(names[0])
	}

	// 3) Engine
	l := layout.Layout{Parts: cfg.Parts, PixelsPerPart: cfg.LED.PixelsPerPart, Serpentine: cfg.LED.Serpentine}
	eng, err := render.NewEngine(pal, back, cfg.Parts, l, drv, rr)
	if err != nil {
		return nil, err
	}
	eng.SetPost(render.NewPost(render.PostParams{
		Brightness: cfg.LED.Brightness,
		WhiteCap:   cfg.LED.WhiteCap,
		BudgetMA:   cfg.LED.BudgetMA,
	}))

	// 4) Loop and conductor
	lp := loop.NewLooper(cfg.Period(), opts...)
	cond := NewConductor(ctl, lp, eng, hooks)

	return &Core{Palette: pal, Ctl: ctl, Eng: eng, Reg: reg, Loop: lp, Cond: cond}, nil
}
