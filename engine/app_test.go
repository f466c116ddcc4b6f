package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scotomap/clock"
	"github.com/lixenwraith/scotomap/config"
	"github.com/lixenwraith/scotomap/grid"
	"github.com/lixenwraith/scotomap/render/termsurface"
	"github.com/lixenwraith/scotomap/sweep"
)

type fakeSound struct {
	probe, undo, complete int
	muted                 bool
}

func (f *fakeSound) PlayProbe()    { f.probe++ }
func (f *fakeSound) PlayUndo()     { f.undo++ }
func (f *fakeSound) PlayComplete() { f.complete++ }
func (f *fakeSound) ToggleMute() bool {
	f.muted = !f.muted
	return f.muted
}
func (f *fakeSound) Muted() bool { return f.muted }

type testRig struct {
	app    *App
	screen tcell.SimulationScreen
	clock  *clock.Mock
	sound  *fakeSound
}

func newTestRig(t *testing.T, mode string, mutate func(*config.Config)) *testRig {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	cfg := config.Default()
	cfg.Advance.Mode = mode
	cfg.Audio.Enabled = false
	cfg.Export.SnapshotDir = t.TempDir()
	cfg.Export.Width, cfg.Export.Height = 120, 120
	if mutate != nil {
		mutate(cfg)
	}

	rig := &testRig{
		screen: screen,
		clock:  clock.NewMock(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)),
		sound:  &fakeSound{},
	}
	app, err := NewApp(screen, cfg, WithClock(rig.clock), WithSound(rig.sound))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	rig.app = app
	return rig
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// quickSweep is one ring of four probes
func quickSweep(c *config.Config) {
	c.Sweep.MaxPhi = 10
	c.Sweep.PhiInc = 5
	c.Sweep.StartPhi = 5
	c.Sweep.ThetaInc = 90
}

// TestNewApp_InvalidConfig verifies config validation runs before any setup
func TestNewApp_InvalidConfig(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	cfg := config.Default()
	cfg.Sweep.PhiInc = 0

	if _, err := NewApp(screen, cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

// TestApp_KeyModeAdvancesOnResponse verifies a response key records and advances in key mode
func TestApp_KeyModeAdvancesOnResponse(t *testing.T) {
	rig := newTestRig(t, "keys", nil)
	s := rig.app.Session()

	if !rig.app.HandleEvent(key(' ')) {
		t.Fatal("Expected loop to continue")
	}

	if s.Ticks != 1 {
		t.Errorf("Expected 1 tick, got %d", s.Ticks)
	}
	if s.Coordinate != (sweep.Coordinate{Phi: 10, Theta: 10}) {
		t.Errorf("Expected (10, 10), got %+v", s.Coordinate)
	}
	if got := s.Grid.Get(2, 0); got != grid.Seen {
		t.Errorf("Expected seen at (2,0), got %v", got)
	}
	if rig.sound.probe != 1 {
		t.Errorf("Expected 1 probe cue, got %d", rig.sound.probe)
	}

	rig.app.HandleEvent(key('x'))
	if got := s.Grid.Get(2, 1); got != grid.NotSeen {
		t.Errorf("Expected not seen at (2,1), got %v", got)
	}
}

// TestApp_TimerModeResponseOnly verifies response keys only set the answer in timer mode
func TestApp_TimerModeResponseOnly(t *testing.T) {
	rig := newTestRig(t, "timer", nil)
	s := rig.app.Session()

	rig.app.HandleEvent(key('x'))
	if s.Ticks != 0 {
		t.Errorf("Expected response key not to advance, got %d ticks", s.Ticks)
	}
	if s.Pending != grid.NotSeen {
		t.Errorf("Expected pending not seen, got %v", s.Pending)
	}

	rig.clock.Advance(250 * time.Millisecond)
	select {
	case <-rig.app.source.C():
		rig.app.Tick()
	default:
		t.Fatal("Expected tick after one frame interval")
	}

	if got := s.Grid.Get(2, 0); got != grid.NotSeen {
		t.Errorf("Expected not seen recorded by tick, got %v", got)
	}
}

// TestApp_Undo verifies undo steps back without erasing cells
func TestApp_Undo(t *testing.T) {
	rig := newTestRig(t, "keys", nil)
	s := rig.app.Session()

	rig.app.HandleEvent(key(' '))
	rig.app.HandleEvent(key(' '))
	rig.app.HandleEvent(key('u'))

	if s.Ticks != 1 {
		t.Errorf("Expected 1 tick after undo, got %d", s.Ticks)
	}
	if s.Coordinate.Theta != 10 {
		t.Errorf("Expected theta 10 after undo, got %v", s.Coordinate.Theta)
	}
	if got := s.Grid.Get(2, 1); got != grid.Seen {
		t.Errorf("Expected undo to keep recorded cell, got %v", got)
	}
	if rig.sound.undo != 1 {
		t.Errorf("Expected 1 undo cue, got %d", rig.sound.undo)
	}
}

// TestApp_PauseAndMute verifies pause and mute toggles and their status flags
func TestApp_PauseAndMute(t *testing.T) {
	rig := newTestRig(t, "timer", nil)

	rig.app.HandleEvent(key('p'))
	if !rig.app.source.Paused() {
		t.Fatal("Expected source paused")
	}
	if !strings.Contains(rig.app.StatusText(), "PAUSED") {
		t.Errorf("Expected PAUSED in status, got %q", rig.app.StatusText())
	}

	rig.app.HandleEvent(key('p'))
	if rig.app.source.Paused() {
		t.Error("Expected source resumed")
	}

	rig.app.HandleEvent(key('m'))
	if !strings.Contains(rig.app.StatusText(), "MUTED") {
		t.Errorf("Expected MUTED in status, got %q", rig.app.StatusText())
	}
}

// TestApp_FinishExports verifies completion writes the configured PNG
func TestApp_FinishExports(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "map.png")
	rig := newTestRig(t, "keys", func(c *config.Config) {
		quickSweep(c)
		c.Export.Path = exportPath
	})
	s := rig.app.Session()

	rig.app.HandleEvent(key('x'))
	for i := 0; i < 3; i++ {
		rig.app.HandleEvent(key(' '))
	}

	if s.Mode != sweep.Tabulating {
		t.Fatalf("Expected tabulating after 4 responses, got %v", s.Mode)
	}
	if rig.sound.complete != 1 {
		t.Errorf("Expected 1 completion chime, got %d", rig.sound.complete)
	}
	if rig.sound.probe != 3 {
		t.Errorf("Expected 3 probe cues, got %d", rig.sound.probe)
	}
	if rig.app.Exported() != exportPath {
		t.Errorf("Expected export at %s, got %q", exportPath, rig.app.Exported())
	}
	if _, err := os.Stat(exportPath); err != nil {
		t.Errorf("Expected exported file: %v", err)
	}

	status := rig.app.StatusText()
	if !strings.Contains(status, "DONE") || !strings.Contains(status, "not seen 1 of 4") {
		t.Errorf("Unexpected status %q", status)
	}

	// Further input leaves the map untouched
	rig.app.HandleEvent(key(' '))
	rig.app.HandleEvent(key('u'))
	if s.Ticks != 4 || rig.sound.complete != 1 {
		t.Errorf("Expected no changes after completion, got %d ticks", s.Ticks)
	}
}

// TestApp_Snapshot verifies snapshot naming under the snapshot dir
func TestApp_Snapshot(t *testing.T) {
	rig := newTestRig(t, "keys", nil)

	rig.app.HandleEvent(key('s'))

	entries, err := os.ReadDir(rig.app.cfg.Export.SnapshotDir)
	if err != nil {
		t.Fatalf("Failed to read snapshot dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(entries))
	}
	if !strings.HasSuffix(entries[0].Name(), "-20250102-030405.png") {
		t.Errorf("Unexpected snapshot name %s", entries[0].Name())
	}
}

// TestApp_Resize verifies the surface tracks screen size minus the status row
func TestApp_Resize(t *testing.T) {
	rig := newTestRig(t, "keys", nil)

	cols, rows := rig.app.Surface().Cells()
	if cols != 80 || rows != 23 {
		t.Errorf("Expected 80x23 canvas, got %dx%d", cols, rows)
	}

	rig.screen.SetSize(100, 30)
	rig.app.HandleEvent(tcell.NewEventResize(100, 30))

	cols, rows = rig.app.Surface().Cells()
	if cols != 100 || rows != 29 {
		t.Errorf("Expected 100x29 canvas, got %dx%d", cols, rows)
	}
}

// TestApp_RedrawPaintsScreen verifies redraw flushes the frame and status line
func TestApp_RedrawPaintsScreen(t *testing.T) {
	rig := newTestRig(t, "keys", nil)
	rig.app.Redraw()

	r, _, _, _ := rig.screen.GetContent(0, 0)
	if r != termsurface.HalfBlock {
		t.Errorf("Expected half block on canvas, got %q", r)
	}

	r, _, _, _ = rig.screen.GetContent(1, 23)
	if r != 'M' {
		t.Errorf("Expected status line on bottom row, got %q", r)
	}
}

// TestApp_RunQuitKey verifies the quit key ends Run cleanly
func TestApp_RunQuitKey(t *testing.T) {
	rig := newTestRig(t, "keys", nil)

	done := make(chan error, 1)
	go func() { done <- rig.app.Run(context.Background()) }()

	rig.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean quit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit key")
	}
}

// TestApp_RunContextCancel verifies Run returns the context error on cancel
func TestApp_RunContextCancel(t *testing.T) {
	rig := newTestRig(t, "timer", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rig.app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
