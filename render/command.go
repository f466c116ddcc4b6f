package render

import "fmt"

// Op identifies a draw primitive
type Op uint8

const (
	OpClear Op = iota
	OpFillCircle
	OpStrokeLine
	OpStrokeCircle
)

// String returns the primitive name
func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpFillCircle:
		return "fill-circle"
	case OpStrokeLine:
		return "stroke-line"
	case OpStrokeCircle:
		return "stroke-circle"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Command is one entry of the draw instruction stream
// Circles use (X1, Y1, R); lines use (X1, Y1)-(X2, Y2)
type Command struct {
	Op     Op
	X1, Y1 float64
	X2, Y2 float64
	R      float64
	Color  RGB
}

// Apply issues the command against a surface
func (c Command) Apply(dst Surface) {
	switch c.Op {
	case OpClear:
		dst.Clear(c.Color)
	case OpFillCircle:
		dst.FillCircle(c.X1, c.Y1, c.R, c.Color)
	case OpStrokeLine:
		dst.StrokeLine(c.X1, c.Y1, c.X2, c.Y2, c.Color)
	case OpStrokeCircle:
		dst.StrokeCircle(c.X1, c.Y1, c.R, c.Color)
	}
}

// Recorder is a Surface that captures the instruction stream instead of drawing
type Recorder struct {
	width, height int
	Commands      []Command
}

// NewRecorder creates a recorder reporting the given surface size
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) Clear(c RGB) {
	r.Commands = append(r.Commands, Command{Op: OpClear, Color: c})
}

func (r *Recorder) FillCircle(x, y, radius float64, c RGB) {
	r.Commands = append(r.Commands, Command{Op: OpFillCircle, X1: x, Y1: y, R: radius, Color: c})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, c RGB) {
	r.Commands = append(r.Commands, Command{Op: OpStrokeLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c})
}

func (r *Recorder) StrokeCircle(x, y, radius float64, c RGB) {
	r.Commands = append(r.Commands, Command{Op: OpStrokeCircle, X1: x, Y1: y, R: radius, Color: c})
}

// Reset drops recorded commands, keeping capacity
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Replay issues every recorded command against dst in order
func (r *Recorder) Replay(dst Surface) {
	for _, c := range r.Commands {
		c.Apply(dst)
	}
}
