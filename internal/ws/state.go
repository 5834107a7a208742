package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-glyphloop/internal/demo"
	diag "github.com/coreman2200/funtimes-glyphloop/internal/diagnostics"
	"github.com/coreman2200/funtimes-glyphloop/internal/render"
	"github.com/coreman2200/funtimes-glyphloop/model"
)

const writeWait = 200 * time.Millisecond

// State serves the animation over websockets: /ws streams every frame,
// /control accepts taps, demo and renderer requests, /diag streams
// diagnostics.
type State struct {
	mu      sync.Mutex
	Target  demo.Target
	Palette model.Palette
	Back    model.ColorVal
	Parts   int

	// optional; without them the renderer command is refused
	Engine   *render.Engine
	Registry *render.Registry

	CurrentDriver string
	DemoInterval  time.Duration

	frameID     uint64
	startTime   time.Time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	demoKind   demo.Kind
	demoCancel context.CancelFunc
}

func NewState(target demo.Target, p model.Palette, back model.ColorVal, parts int) *State {
	return &State{
		Target:      target,
		Palette:     p,
		Back:        back,
		Parts:       parts,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
	}
}

// Routes registers every handler on mux.
func (s *State) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/health", s.HandleHealth)
}

type frameMsg struct {
	Type    string    `json:"type"`
	T       int64     `json:"t"`
	FrameID uint64    `json:"frame_id"`
	Index   int       `json:"index"`
	Scale   float64   `json:"scale"`
	Strokes []float64 `json:"strokes"`
	Color   string    `json:"color"`
	Back    string    `json:"back"`
}

type helloMsg struct {
	Type     string   `json:"type"`
	Palette  []string `json:"palette"`
	Back     string   `json:"back"`
	Parts    int      `json:"parts"`
	Driver   string   `json:"driver,omitempty"`
	Snapshot any      `json:"snapshot"`
}

type ackMsg struct {
	Type     string `json:"type"`
	Cmd      string `json:"cmd"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
	Snapshot any    `json:"snapshot"`
}

type controlMsg struct {
	Cmd  string `json:"cmd"`
	Kind string `json:"kind,omitempty"`
	Name string `json:"name,omitempty"`
}

// Frame broadcasts f to every /ws client.
func (s *State) Frame(f render.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameID = f.Seq
	if len(s.clients) == 0 {
		return
	}
	b, _ := json.Marshal(frameMsg{
		Type:    "frame",
		T:       time.Now().UnixNano(),
		FrameID: f.Seq,
		Index:   f.Index,
		Scale:   f.Scale,
		Strokes: f.Strokes,
		Color:   hex(f.Color),
		Back:    hex(f.Back),
	})
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			// a failed write leaves the conn unusable; its reader exits on Close
			log.Debug().Err(err).Str("remote", c.RemoteAddr().String()).Msg("dropping frame client")
			delete(s.clients, c)
			c.Close()
		}
	}
}

// PushDiag sends d to every /diag client.
func (s *State) PushDiag(d diag.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushDiag(d)
}

func (s *State) pushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	snap := s.Target.Snapshot()
	s.mu.Lock()
	s.clients[conn] = true
	s.sendHello(conn, snap)
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: "DIAG.HELLO", Summary: "Listening"})
	s.mu.Unlock()
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.diagClients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg controlMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		ack := s.applyControl(msg)
		b, _ := json.Marshal(ack)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.Target.Snapshot()
	var (
		rname string
		stats render.Stats
	)
	if s.Engine != nil {
		rname, stats = s.Engine.Renderer(), s.Engine.Stats()
	}
	s.mu.Lock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"glyphs":   len(s.Palette),
		"parts":    s.Parts,
		"clients":  len(s.clients),
		"driver":   s.CurrentDriver,
		"demo":     string(s.demoKind),
		"renderer": rname,
		"stats":    stats,
		"snapshot": snap,
	}
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *State) applyControl(msg controlMsg) ackMsg {
	ack := ackMsg{Type: "ack", Cmd: msg.Cmd, OK: true}
	switch msg.Cmd {
	case "trigger":
		ack.OK = s.Target.Trigger()
	case "snapshot":
	case "demo":
		if err := s.StartDemo(demo.Kind(msg.Kind)); err != nil {
			ack.OK, ack.Error = false, err.Error()
		}
	case "renderer":
		if err := s.setRenderer(msg.Name); err != nil {
			ack.OK, ack.Error = false, err.Error()
		}
	default:
		ack.OK, ack.Error = false, "unknown command"
		s.PushDiag(diag.Diagnostic{
			Severity: diag.Warn, Code: diag.CodeBadCmd, Summary: "Unknown control command",
			Evidence: map[string]any{"cmd": msg.Cmd},
		})
	}
	ack.Snapshot = s.Target.Snapshot()
	return ack
}

func (s *State) setRenderer(name string) error {
	if s.Engine == nil {
		return errors.New("no LED engine")
	}
	if err := s.Engine.SetRenderer(name, s.Registry); err != nil {
		return err
	}
	log.Info().Str("renderer", name).Msg("renderer switched")
	return nil
}

// StartDemo replaces the running demo with kind; demo.None stops it.
func (s *State) StartDemo(kind demo.Kind) error {
	if kind != demo.None && !slices.Contains(demo.Kinds(), kind) {
		return fmt.Errorf("unknown demo %q", kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.demoCancel != nil {
		s.demoCancel()
		s.demoCancel = nil
	}
	s.demoKind = kind
	if kind == demo.None {
		return nil
	}
	s.pushDiag(diag.Diagnostic{Severity: diag.Info, Code: diag.CodeDemoStart, Summary: "Running demo", Detail: string(kind)})

	ctx, cancel := context.WithCancel(context.Background())
	s.demoCancel = cancel
	r := demo.NewRunner(demo.Plan{Kind: kind, Interval: s.DemoInterval})
	go func() {
		if err := r.Run(ctx, s.Target); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.demoKind == kind {
			s.demoKind = demo.None
		}
		s.pushDiag(diag.Diagnostic{
			Severity: diag.Info, Code: diag.CodeDemoDone, Summary: "Demo complete",
			Evidence: map[string]any{"bursts": r.Bursts()},
		})
	}()
	return nil
}

// Close stops any running demo.
func (s *State) Close() {
	_ = s.StartDemo(demo.None)
}

func (s *State) sendHello(conn *websocket.Conn, snap any) {
	b, _ := json.Marshal(helloMsg{
		Type:     "hello",
		Palette:  s.Palette.Hexes(),
		Back:     s.Back.Hex(),
		Parts:    s.Parts,
		Driver:   s.CurrentDriver,
		Snapshot: snap,
	})
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func hex(c render.Color) string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}
