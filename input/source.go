package input

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/scotomap/clock"
	"github.com/lixenwraith/scotomap/parameter"
)

// ErrInvalidFrameRate is returned for non-positive frame rates
var ErrInvalidFrameRate = errors.New("frame rate must be positive")

// Source decides when the sweep advances
type Source interface {
	// C delivers advance ticks; nil for sources that advance on responses
	C() <-chan time.Time
	// AdvancesOnResponse reports whether a response key also advances the sweep
	AdvancesOnResponse() bool
	Pause()
	Resume()
	Paused() bool
	Stop()
}

// Mode selects the advance source
type Mode uint8

const (
	ModeTimer Mode = iota
	ModeKeys
)

// String returns the configuration name of the mode
func (m Mode) String() string {
	if m == ModeKeys {
		return "keys"
	}
	return "timer"
}

// ParseMode accepts "timer" and "keys"; empty selects timer
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "timer":
		return ModeTimer, nil
	case "keys", "key":
		return ModeKeys, nil
	default:
		return ModeTimer, fmt.Errorf("unknown advance mode %q", s)
	}
}

// NewSource builds the source for a mode
func NewSource(mode Mode, clk clock.Clock, frameRate float64) (Source, error) {
	if mode == ModeKeys {
		return NewKeySource(), nil
	}
	return NewTimerSource(clk, frameRate)
}

// FrameInterval converts frames per second to a tick period, floored at MinFrameInterval
func FrameInterval(frameRate float64) (time.Duration, error) {
	if !(frameRate > 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFrameRate, frameRate)
	}
	d := time.Duration(float64(time.Second) / frameRate)
	return max(d, parameter.MinFrameInterval), nil
}

// TimerSource advances at a fixed rate; responses only set the pending answer
type TimerSource struct {
	clock    clock.Clock
	ticker   clock.Ticker
	interval time.Duration
	paused   bool
	stopped  bool
}

// NewTimerSource starts a ticker at frameRate ticks per second
func NewTimerSource(clk clock.Clock, frameRate float64) (*TimerSource, error) {
	interval, err := FrameInterval(frameRate)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &TimerSource{
		clock:    clk,
		ticker:   clk.NewTicker(interval),
		interval: interval,
	}, nil
}

// C returns the tick channel, nil while paused or stopped
func (t *TimerSource) C() <-chan time.Time {
	if t.paused || t.stopped {
		return nil
	}
	return t.ticker.C()
}

func (t *TimerSource) AdvancesOnResponse() bool { return false }

// Interval returns the tick period
func (t *TimerSource) Interval() time.Duration { return t.interval }

// Pause stops ticking until Resume
func (t *TimerSource) Pause() {
	if t.paused || t.stopped {
		return
	}
	t.paused = true
	t.ticker.Stop()
}

// Resume restarts ticking with a full interval before the next tick
func (t *TimerSource) Resume() {
	if !t.paused || t.stopped {
		return
	}
	t.paused = false
	t.ticker = t.clock.NewTicker(t.interval)
}

func (t *TimerSource) Paused() bool { return t.paused }

// Stop releases the ticker; the source cannot be resumed
func (t *TimerSource) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.ticker.Stop()
}

// KeySource advances once per response key
type KeySource struct{}

// NewKeySource creates a key-driven source
func NewKeySource() *KeySource {
	return &KeySource{}
}

func (*KeySource) C() <-chan time.Time      { return nil }
func (*KeySource) AdvancesOnResponse() bool { return true }
func (*KeySource) Pause()                   {}
func (*KeySource) Resume()                  {}
func (*KeySource) Paused() bool             { return false }
func (*KeySource) Stop()                    {}

var (
	_ Source = (*TimerSource)(nil)
	_ Source = (*KeySource)(nil)
)
