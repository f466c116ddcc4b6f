package sweep

import (
	"errors"
	"testing"

	"github.com/lixenwraith/scotomap/grid"
	"github.com/lixenwraith/scotomap/parameter"
)

func exampleParams() Params {
	return Params{MaxPhi: 60, PhiInc: 10, MaxTheta: 360, ThetaInc: 10, StartPhi: 10}
}

func newTestController(t *testing.T, p Params) *Controller {
	t.Helper()
	s, err := NewSession(p)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	c, err := NewController(s)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return c
}

// TestNewSessionDefaults verifies the initial session state
func TestNewSessionDefaults(t *testing.T) {
	c := newTestController(t, exampleParams())
	s := c.Session()

	if s.Mode != Measuring {
		t.Errorf("Expected Measuring, got %v", s.Mode)
	}
	if s.Pending != grid.Seen {
		t.Errorf("Expected pending Seen, got %v", s.Pending)
	}
	if s.Coordinate != (Coordinate{Phi: 10, Theta: 0}) {
		t.Errorf("Expected start (10, 0), got %+v", s.Coordinate)
	}
	if s.ID == "" {
		t.Error("Expected session ID")
	}
	phi, theta := s.Grid.Dims()
	if phi != 6 || theta != 36 {
		t.Errorf("Expected grid 6x36, got %dx%d", phi, theta)
	}
}

// TestAdvanceFullRing verifies 36 ticks from (10, 0) complete one ring
func TestAdvanceFullRing(t *testing.T) {
	c := newTestController(t, exampleParams())

	for k := 0; k < 36; k++ {
		c.AdvanceTick()
	}

	got := c.Session().Coordinate
	if got.Theta != 0 || got.Phi != 20 {
		t.Errorf("Expected (20, 0) after one ring, got %+v", got)
	}
}

// TestWraparound verifies the last azimuth step resets theta and bumps phi
func TestWraparound(t *testing.T) {
	c := newTestController(t, exampleParams())
	s := c.Session()
	s.Coordinate = Coordinate{Phi: 30, Theta: 350}

	c.AdvanceTick()

	if s.Coordinate.Theta != 0 {
		t.Errorf("Expected theta 0 after wrap, got %v", s.Coordinate.Theta)
	}
	if s.Coordinate.Phi != 40 {
		t.Errorf("Expected phi 40 after wrap, got %v", s.Coordinate.Phi)
	}
}

// TestExclusiveWrap verifies the '>' variant keeps theta == MaxTheta for one tick
func TestExclusiveWrap(t *testing.T) {
	p := exampleParams()
	p.Wrap = Exclusive
	c := newTestController(t, p)
	s := c.Session()
	s.Coordinate = Coordinate{Phi: 30, Theta: 350}

	c.AdvanceTick()
	if s.Coordinate != (Coordinate{Phi: 30, Theta: 360}) {
		t.Fatalf("Expected (30, 360), got %+v", s.Coordinate)
	}

	res := c.AdvanceTick()
	if res.Recorded {
		t.Error("Expected write at theta 360 to be rejected")
	}
	if s.Coordinate != (Coordinate{Phi: 40, Theta: 10}) {
		t.Errorf("Expected (40, 10), got %+v", s.Coordinate)
	}
}

// TestOneWritePerTick verifies each tick writes exactly the pre-advance cell
func TestOneWritePerTick(t *testing.T) {
	c := newTestController(t, exampleParams())
	s := c.Session()

	responses := []grid.Response{grid.Seen, grid.NotSeen, grid.NotSeen, grid.Seen}
	for k, r := range responses {
		c.SetResponse(r)
		before := s.Coordinate
		wantI, wantJ := grid.IndexOf(before.Phi, before.Theta, 10, 10)

		snapshot := countMeasured(s.Grid)
		res := c.AdvanceTick()

		if !res.Advanced || !res.Recorded {
			t.Fatalf("Tick %d: expected advance and record, got %+v", k, res)
		}
		if res.PhiIndex != wantI || res.ThetaIndex != wantJ {
			t.Errorf("Tick %d: expected indices (%d, %d), got (%d, %d)", k, wantI, wantJ, res.PhiIndex, res.ThetaIndex)
		}
		if got := s.Grid.Get(wantI, wantJ); got != r {
			t.Errorf("Tick %d: expected cell %v, got %v", k, r, got)
		}
		if after := countMeasured(s.Grid); after != snapshot+1 {
			t.Errorf("Tick %d: expected exactly one new cell, measured %d -> %d", k, snapshot, after)
		}
	}
}

func countMeasured(g *grid.Grid) int {
	n := 0
	g.Each(func(_, _ int, r grid.Response) {
		if r != grid.Unmeasured {
			n++
		}
	})
	return n
}

func defaultParams() Params {
	return Params{
		MaxPhi:   parameter.MaxPhi,
		PhiInc:   parameter.PhiInc,
		MaxTheta: parameter.MaxTheta,
		ThetaInc: parameter.ThetaInc,
		StartPhi: parameter.StartPhi,
	}
}

// TestDefaultStart verifies the default sweep opens on the 10 degree ring
func TestDefaultStart(t *testing.T) {
	s, err := NewSession(defaultParams())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.Coordinate != (Coordinate{Phi: 10, Theta: 0}) {
		t.Errorf("Expected start (10, 0), got %+v", s.Coordinate)
	}
	if i, j := s.Indices(); i != 2 || j != 0 {
		t.Errorf("Expected start cell (2, 0), got (%d, %d)", i, j)
	}
}

// TestTerminationStepCount verifies the sweep reaches Tabulating in the predicted number of ticks
func TestTerminationStepCount(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   int
	}{
		{"full grid from phi 0", Params{MaxPhi: 60, PhiInc: 10, MaxTheta: 360, ThetaInc: 10, StartPhi: 0}, 6 * 36},
		{"from first ring", exampleParams(), 5 * 36},
		{"default geometry", defaultParams(), 5 * 36},
		{"exclusive terminate", Params{MaxPhi: 60, PhiInc: 10, MaxTheta: 360, ThetaInc: 10, StartPhi: 0, Terminate: Exclusive}, 7 * 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.TotalSteps(); got != tt.want {
				t.Errorf("TotalSteps: expected %d, got %d", tt.want, got)
			}

			c := newTestController(t, tt.params)
			finished := 0
			c.OnFinish(func(*Session) { finished++ })

			ticks := 0
			for c.Mode() == Measuring {
				c.AdvanceTick()
				ticks++
				if ticks > 10000 {
					t.Fatal("sweep did not terminate")
				}
			}
			if ticks != tt.want {
				t.Errorf("Expected %d ticks, got %d", tt.want, ticks)
			}
			if finished != 1 {
				t.Errorf("Expected finish listener once, got %d", finished)
			}
		})
	}
}

// TestFullGridCoverage verifies a sweep from phi 0 writes every cell exactly once
func TestFullGridCoverage(t *testing.T) {
	p := exampleParams()
	p.StartPhi = 0
	c := newTestController(t, p)
	s := c.Session()

	writes := make(map[[2]int]int)
	for c.Mode() == Measuring {
		res := c.AdvanceTick()
		if res.Recorded {
			writes[[2]int{res.PhiIndex, res.ThetaIndex}]++
		}
	}

	if len(writes) != 6*36 {
		t.Errorf("Expected %d distinct cells, got %d", 6*36, len(writes))
	}
	for idx, n := range writes {
		if n != 1 {
			t.Errorf("Cell %v written %d times", idx, n)
		}
	}
	if s.Grid.Summarize().Unmeasured != 0 {
		t.Error("Expected no unmeasured cells")
	}
}

// TestTabulatingIsTerminal verifies ticks after completion change nothing
func TestTabulatingIsTerminal(t *testing.T) {
	c := newTestController(t, exampleParams())
	s := c.Session()

	var last TickResult
	for c.Mode() == Measuring {
		last = c.AdvanceTick()
	}
	if !last.Finished {
		t.Error("Expected final tick to report Finished")
	}

	coord := s.Coordinate
	before := s.Grid.Summarize()

	for k := 0; k < 50; k++ {
		if res := c.AdvanceTick(); res.Advanced || res.Recorded || res.Finished {
			t.Fatalf("Expected no-op tick, got %+v", res)
		}
	}
	if c.SetResponse(grid.NotSeen) {
		t.Error("Expected SetResponse to be refused once Tabulating")
	}
	if c.Undo() {
		t.Error("Expected Undo to be refused once Tabulating")
	}

	if s.Coordinate != coord {
		t.Errorf("Coordinate moved after completion: %+v -> %+v", coord, s.Coordinate)
	}
	if after := s.Grid.Summarize(); after.Measured != before.Measured || after.NotSeen != before.NotSeen {
		t.Errorf("Grid changed after completion: %+v -> %+v", before, after)
	}
	if c.Mode() != Tabulating {
		t.Errorf("Expected Tabulating, got %v", c.Mode())
	}
}

// TestSetResponse verifies only defined responses are accepted
func TestSetResponse(t *testing.T) {
	c := newTestController(t, exampleParams())

	if !c.SetResponse(grid.NotSeen) {
		t.Error("Expected NotSeen to be accepted")
	}
	if c.Session().Pending != grid.NotSeen {
		t.Errorf("Expected pending NotSeen, got %v", c.Session().Pending)
	}
	if c.SetResponse(grid.Unmeasured) {
		t.Error("Expected Unmeasured to be refused")
	}
	if c.Session().Pending != grid.NotSeen {
		t.Error("Refused response changed pending")
	}
}

// TestUndoStep verifies step undo rewinds exactly one advance and keeps recorded data
func TestUndoStep(t *testing.T) {
	c := newTestController(t, exampleParams())
	s := c.Session()

	if c.Undo() {
		t.Error("Expected undo at start to be a no-op")
	}

	c.SetResponse(grid.NotSeen)
	for k := 0; k < 36; k++ {
		c.AdvanceTick()
	}
	if s.Coordinate != (Coordinate{Phi: 20, Theta: 0}) {
		t.Fatalf("Expected (20, 0), got %+v", s.Coordinate)
	}

	if !c.Undo() {
		t.Fatal("Expected undo to move")
	}
	if s.Coordinate != (Coordinate{Phi: 10, Theta: 350}) {
		t.Errorf("Expected undo across the ring boundary to (10, 350), got %+v", s.Coordinate)
	}
	if s.Ticks != 35 {
		t.Errorf("Expected 35 ticks after undo, got %d", s.Ticks)
	}

	// Undo does not erase
	if got := s.Grid.Get(1, 35); got != grid.NotSeen {
		t.Errorf("Expected cell (1, 35) to keep NotSeen, got %v", got)
	}

	// Re-answer overwrites
	c.SetResponse(grid.Seen)
	c.AdvanceTick()
	if got := s.Grid.Get(1, 35); got != grid.Seen {
		t.Errorf("Expected cell (1, 35) overwritten with Seen, got %v", got)
	}
	if s.Coordinate != (Coordinate{Phi: 20, Theta: 0}) {
		t.Errorf("Expected (20, 0) after redo, got %+v", s.Coordinate)
	}
}

// TestUndoRawDegree verifies the legacy one-degree rewind and clamping at zero
func TestUndoRawDegree(t *testing.T) {
	p := exampleParams()
	p.Undo = UndoRawDegree
	c := newTestController(t, p)
	s := c.Session()

	c.AdvanceTick()
	c.AdvanceTick()
	if s.Coordinate != (Coordinate{Phi: 10, Theta: 20}) {
		t.Fatalf("Expected (10, 20), got %+v", s.Coordinate)
	}

	c.Undo()
	if s.Coordinate != (Coordinate{Phi: 9, Theta: 19}) {
		t.Errorf("Expected (9, 19), got %+v", s.Coordinate)
	}

	// Indices of the rewound coordinate: floor(9/10), floor(19/10)
	i, j := s.Indices()
	if i != 0 || j != 1 {
		t.Errorf("Expected indices (0, 1), got (%d, %d)", i, j)
	}

	for k := 0; k < 30; k++ {
		c.Undo()
	}
	if s.Coordinate.Phi != 0 || s.Coordinate.Theta != 0 {
		t.Errorf("Expected clamp at (0, 0), got %+v", s.Coordinate)
	}
	if c.Undo() {
		t.Error("Expected undo at (0, 0) to report no movement")
	}
}

// TestParamsValidate verifies geometry checks
func TestParamsValidate(t *testing.T) {
	bad := []Params{
		{MaxPhi: 60, PhiInc: 0, MaxTheta: 360, ThetaInc: 10},
		{MaxPhi: 60, PhiInc: 10, MaxTheta: 360, ThetaInc: -1},
		{MaxPhi: 5, PhiInc: 10, MaxTheta: 360, ThetaInc: 10},
		{MaxPhi: 60, PhiInc: 10, MaxTheta: 5, ThetaInc: 10},
		{MaxPhi: 60, PhiInc: 10, MaxTheta: 360, ThetaInc: 10, StartPhi: 60},
		{MaxPhi: 60, PhiInc: 10, MaxTheta: 360, ThetaInc: 10, StartPhi: -5},
	}
	for k, p := range bad {
		err := p.Validate()
		if !errors.Is(err, ErrInvalidParams) {
			t.Errorf("Case %d: expected ErrInvalidParams, got %v", k, err)
		}
		if _, err := NewSession(p); err == nil {
			t.Errorf("Case %d: expected NewSession to fail", k)
		}
	}

	if err := exampleParams().Validate(); err != nil {
		t.Errorf("Expected valid params, got %v", err)
	}
}

// TestParsePolicies verifies config spellings
func TestParsePolicies(t *testing.T) {
	for _, s := range []string{"", "inclusive", ">="} {
		if th, err := ParseThreshold(s); err != nil || th != Inclusive {
			t.Errorf("ParseThreshold(%q) = %v, %v", s, th, err)
		}
	}
	for _, s := range []string{"exclusive", ">"} {
		if th, err := ParseThreshold(s); err != nil || th != Exclusive {
			t.Errorf("ParseThreshold(%q) = %v, %v", s, th, err)
		}
	}
	if _, err := ParseThreshold("sometimes"); err == nil {
		t.Error("Expected error for unknown threshold")
	}

	if u, err := ParseUndoPolicy("raw-degree"); err != nil || u != UndoRawDegree {
		t.Errorf("ParseUndoPolicy(raw-degree) = %v, %v", u, err)
	}
	if u, err := ParseUndoPolicy(""); err != nil || u != UndoStep {
		t.Errorf("ParseUndoPolicy(\"\") = %v, %v", u, err)
	}
	if _, err := ParseUndoPolicy("rewind"); err == nil {
		t.Error("Expected error for unknown undo policy")
	}
}
