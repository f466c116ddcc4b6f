package render

// Surface is the drawing target of the renderer
// Coordinates are surface pixels with the origin at the top-left
type Surface interface {
	Size() (width, height int)
	Clear(c RGB)
	FillCircle(x, y, r float64, c RGB)
	StrokeLine(x1, y1, x2, y2 float64, c RGB)
	StrokeCircle(x, y, r float64, c RGB)
}
