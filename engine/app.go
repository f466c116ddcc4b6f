package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scotomap/audio"
	"github.com/lixenwraith/scotomap/clock"
	"github.com/lixenwraith/scotomap/config"
	"github.com/lixenwraith/scotomap/grid"
	"github.com/lixenwraith/scotomap/input"
	"github.com/lixenwraith/scotomap/parameter"
	"github.com/lixenwraith/scotomap/render"
	"github.com/lixenwraith/scotomap/render/imagesurface"
	"github.com/lixenwraith/scotomap/render/termsurface"
	"github.com/lixenwraith/scotomap/sweep"
)

// Sound is the cue player driven by the loop
type Sound interface {
	PlayProbe()
	PlayUndo()
	PlayComplete()
	ToggleMute() bool
	Muted() bool
}

// Option configures an App
type Option func(*App)

// WithLogger sets the application logger
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithClock replaces the wall clock driving the advance source and snapshot names
func WithClock(c clock.Clock) Option {
	return func(a *App) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithSound sets the cue player
func WithSound(s Sound) Option {
	return func(a *App) {
		if s != nil {
			a.sound = s
		}
	}
}

// App runs one test session on a terminal screen
// A single goroutine owns all session state; the poll goroutine only forwards events
type App struct {
	screen   tcell.Screen
	cfg      *config.Config
	ctrl     *sweep.Controller
	session  *sweep.Session
	renderer *render.Renderer
	exporter *render.Renderer
	surface  *termsurface.Surface
	source   input.Source
	keys     *input.KeyTable
	sound    Sound
	clock    clock.Clock
	log      *slog.Logger

	message  string // Transient status note, cleared on the next advance
	exported string // Path of the completion export
}

// NewApp wires a validated configuration to a screen
func NewApp(screen tcell.Screen, cfg *config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		screen: screen,
		cfg:    cfg,
		clock:  clock.Real{},
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.sound == nil {
		a.sound = audio.NewSoundManager(cfg.AudioConfig(), a.log)
	}

	params, err := cfg.SweepParams()
	if err != nil {
		return nil, err
	}
	a.session, err = sweep.NewSession(params)
	if err != nil {
		return nil, err
	}
	a.ctrl, err = sweep.NewController(a.session, sweep.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	a.ctrl.OnFinish(a.finish)

	a.keys, err = cfg.KeyTable()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.AdvanceMode()
	if err != nil {
		return nil, err
	}
	a.source, err = input.NewSource(mode, a.clock, cfg.Advance.FrameRate)
	if err != nil {
		return nil, fmt.Errorf("advance source: %w", err)
	}

	a.renderer = render.NewRenderer(cfg.TerminalGeometry(), render.TerminalStyle())
	a.exporter = render.NewRenderer(cfg.ImageGeometry(), render.ImageStyle())
	a.surface = termsurface.New(0, 0)
	a.resize()

	a.log.Info("session started",
		"session", a.session.ID,
		"mode", mode.String(),
		"steps", params.TotalSteps(),
		"max_phi", params.MaxPhi,
		"phi_inc", params.PhiInc,
		"max_theta", params.MaxTheta,
		"theta_inc", params.ThetaInc)
	return a, nil
}

// Session returns the running session
func (a *App) Session() *sweep.Session {
	return a.session
}

// Surface returns the terminal canvas
func (a *App) Surface() *termsurface.Surface {
	return a.surface
}

// Run processes events and ticks until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	defer a.source.Stop()

	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	defer close(stop)

	// Input polling uses raw goroutine as it interacts directly with the screen
	go func() {
		for {
			ev := a.screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	a.Redraw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-a.source.C():
			a.Tick()
		}
	}
}

// HandleEvent applies one terminal event and returns false on quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
		a.Redraw()

	case *tcell.EventKey:
		switch intent := a.keys.Classify(ev); intent {
		case input.IntentQuit:
			return false

		case input.IntentSeen, input.IntentNotSeen:
			resp := grid.Seen
			if intent == input.IntentNotSeen {
				resp = grid.NotSeen
			}
			if !a.ctrl.SetResponse(resp) {
				return true
			}
			if a.source.AdvancesOnResponse() {
				a.Tick()
				return true
			}
			a.Redraw()

		case input.IntentUndo:
			if a.ctrl.Undo() {
				a.sound.PlayUndo()
				a.message = ""
				a.Redraw()
			}

		case input.IntentPause:
			if a.session.Mode != sweep.Measuring {
				return true
			}
			if a.source.Paused() {
				a.source.Resume()
			} else {
				a.source.Pause()
			}
			a.Redraw()

		case input.IntentMute:
			a.sound.ToggleMute()
			a.Redraw()

		case input.IntentSnapshot:
			a.Snapshot()
			a.Redraw()
		}
	}
	return true
}

// Tick advances the sweep one step and redraws
func (a *App) Tick() sweep.TickResult {
	res := a.ctrl.AdvanceTick()
	if !res.Advanced {
		return res
	}
	if !res.Finished {
		a.message = ""
		a.sound.PlayProbe()
	}
	a.Redraw()
	return res
}

// finish runs once when the sweep enters tabulation
func (a *App) finish(s *sweep.Session) {
	a.source.Stop()
	a.sound.PlayComplete()

	sum := s.Grid.Summarize()
	a.log.Info("sweep summary",
		"session", s.ID,
		"measured", sum.Measured,
		"seen", sum.Seen,
		"not_seen", sum.NotSeen,
		"unmeasured", sum.Unmeasured,
		"blind_fraction", sum.BlindFraction)
	for _, ring := range sum.Rings {
		if ring.Measured == 0 {
			continue
		}
		a.log.Debug("ring summary",
			"session", s.ID,
			"phi", float64(ring.PhiIndex)*s.Params.PhiInc,
			"measured", ring.Measured,
			"not_seen", ring.NotSeen,
			"blind_fraction", ring.BlindFraction)
	}

	if path := a.cfg.Export.Path; path != "" {
		if err := a.export(path); err != nil {
			a.log.Error("export failed", "path", path, "error", err)
			a.message = "export failed: " + err.Error()
			return
		}
		a.exported = path
		a.message = "saved " + path
	}
}

// Snapshot saves the current view as a PNG under the snapshot directory
func (a *App) Snapshot() (string, error) {
	name := fmt.Sprintf("scotomap-%s-%s.png", a.session.ID[:8], a.clock.Now().Format("20060102-150405"))
	path := filepath.Join(a.cfg.Export.SnapshotDir, name)
	if err := a.export(path); err != nil {
		a.log.Error("snapshot failed", "path", path, "error", err)
		a.message = "snapshot failed: " + err.Error()
		return "", err
	}
	a.log.Info("snapshot saved", "path", path)
	a.message = "saved " + path
	return path, nil
}

// Exported returns the completion export path, empty if none was written
func (a *App) Exported() string {
	return a.exported
}

func (a *App) export(path string) error {
	e := a.cfg.Export
	return imagesurface.Export(path, a.exporter, a.session, e.Width, e.Height, e.LineWidth)
}

// resize fits the canvas to the screen above the status rows
func (a *App) resize() {
	w, h := a.screen.Size()
	a.surface.Resize(w, max(h-parameter.StatusRows, 0))
}

// Redraw paints the canvas and status line from current state
func (a *App) Redraw() {
	a.renderer.Draw(a.surface, a.session)
	a.surface.Flush(a.screen)
	a.drawStatus()
	a.screen.Show()
}
