package sweep

import (
	"fmt"
	"log/slog"

	"github.com/lixenwraith/scotomap/engine/fsm"
	"github.com/lixenwraith/scotomap/grid"
)

// stateGraph drives Measuring -> Tabulating; Tabulating never exits
const stateGraph = `
initial = "Measuring"

[states.Measuring]
on_enter = [{ action = "EnterMode", args = "Measuring" }]
transitions = [{ trigger = "Tick", target = "Tabulating", guard = "PhiExhausted" }]

[states.Tabulating]
terminal = true
on_enter = [{ action = "EnterMode", args = "Tabulating" }, { action = "Finish" }]
`

// TickResult describes what one AdvanceTick did
type TickResult struct {
	// Advanced is false when the session was already Tabulating
	Advanced bool
	// Recorded is false when the pre-advance indices fell outside the grid
	Recorded   bool
	PhiIndex   int
	ThetaIndex int
	Response   grid.Response
	// Finished is true on the tick that entered Tabulating
	Finished bool
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the controller logger, nil discards
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller is the single writer of a Session
type Controller struct {
	session  *Session
	machine  *fsm.Machine[*Session]
	log      *slog.Logger
	history  []Coordinate
	onFinish []func(*Session)
}

// NewController binds a controller to a fresh session
func NewController(s *Session, opts ...Option) (*Controller, error) {
	c := &Controller{
		session: s,
		machine: fsm.NewMachine[*Session](),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.machine.RegisterGuard("PhiExhausted", func(s *Session) bool {
		return s.Params.Terminate.Reached(s.Coordinate.Phi, s.Params.MaxPhi)
	})
	c.machine.RegisterAction("EnterMode", func(s *Session, args any) {
		switch args {
		case Tabulating.String():
			s.Mode = Tabulating
		default:
			s.Mode = Measuring
		}
	})
	c.machine.RegisterAction("Finish", func(s *Session, _ any) {
		c.finish()
	})

	if err := c.machine.LoadConfig([]byte(stateGraph)); err != nil {
		return nil, fmt.Errorf("sweep state graph: %w", err)
	}
	for _, m := range []Mode{Measuring, Tabulating} {
		if c.machine.StateByName(m.String()) == fsm.StateNone {
			return nil, fmt.Errorf("sweep state graph: missing state %s", m)
		}
	}
	if err := c.machine.Init(s); err != nil {
		return nil, fmt.Errorf("sweep state graph: %w", err)
	}
	return c, nil
}

// Session returns the controlled session for read-only use
func (c *Controller) Session() *Session {
	return c.session
}

// Mode returns the current sweep phase
func (c *Controller) Mode() Mode {
	return c.session.Mode
}

// OnFinish registers fn to run once when the sweep enters Tabulating
func (c *Controller) OnFinish(fn func(*Session)) {
	c.onFinish = append(c.onFinish, fn)
}

// SetResponse sets the response recorded by the next tick
// Only Seen and NotSeen are accepted; returns false otherwise or once Tabulating
func (c *Controller) SetResponse(r grid.Response) bool {
	if c.session.Mode != Measuring || (r != grid.Seen && r != grid.NotSeen) {
		return false
	}
	c.session.Pending = r
	return true
}

// AdvanceTick records the pending response at the current coordinate and moves to the next one
// No-op once Tabulating
func (c *Controller) AdvanceTick() TickResult {
	s := c.session
	if s.Mode != Measuring {
		return TickResult{}
	}

	i, j := s.Indices()
	res := TickResult{
		Advanced:   true,
		PhiIndex:   i,
		ThetaIndex: j,
		Response:   s.Pending,
	}
	res.Recorded = s.Grid.Record(i, j, s.Pending)
	if !res.Recorded {
		c.log.Debug("probe outside grid, write rejected",
			"session", s.ID, "phi", s.Coordinate.Phi, "theta", s.Coordinate.Theta, "i", i, "j", j)
	}

	c.history = append(c.history, s.Coordinate)
	c.advance()
	s.Ticks++

	if c.machine.Update(s) {
		res.Finished = s.Mode == Tabulating
	}
	return res
}

// advance steps theta, wrapping into the next phi ring
func (c *Controller) advance() {
	s := c.session
	p := s.Params

	s.Coordinate.Theta += p.ThetaInc
	if p.Wrap.Reached(s.Coordinate.Theta, p.MaxTheta) {
		s.Coordinate.Theta = mod(s.Coordinate.Theta, p.MaxTheta)
		s.Coordinate.Phi += p.PhiInc
	}
}

// Undo rewinds the coordinate cursor without erasing recorded cells
// The next tick at the rewound coordinate overwrites the earlier response
// Returns false when nothing moved
func (c *Controller) Undo() bool {
	s := c.session
	if s.Mode != Measuring {
		return false
	}

	before := s.Coordinate
	switch s.Params.Undo {
	case UndoRawDegree:
		s.Coordinate.Phi = max(s.Coordinate.Phi-1, 0)
		s.Coordinate.Theta = max(s.Coordinate.Theta-1, 0)
	default:
		n := len(c.history)
		if n == 0 {
			return false
		}
		s.Coordinate = c.history[n-1]
		c.history = c.history[:n-1]
		s.Ticks--
	}

	moved := s.Coordinate != before
	if moved {
		c.log.Debug("undo", "session", s.ID, "policy", s.Params.Undo.String(),
			"phi", s.Coordinate.Phi, "theta", s.Coordinate.Theta)
	}
	return moved
}

// finish fires listeners on entry to Tabulating
func (c *Controller) finish() {
	s := c.session
	c.history = nil
	c.log.Info("sweep complete", "session", s.ID, "ticks", s.Ticks)
	for _, fn := range c.onFinish {
		fn(s)
	}
}
