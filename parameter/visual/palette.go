package visual

// RGB is a 24-bit color shared by every drawing surface
type RGB struct {
	R, G, B uint8
}

// Generic palette, pure RGB definitions without test semantics
var (
	Black     = RGB{0, 0, 0}
	Obsidian  = RGB{20, 20, 30} // Blue-black
	DimGray   = RGB{55, 55, 55}
	Gray      = RGB{120, 120, 120}
	Silver    = RGB{180, 180, 180}
	NearWhite = RGB{250, 250, 250}
	White     = RGB{255, 255, 255}

	Cyan  = RGB{0, 255, 255}
	Amber = RGB{255, 191, 0}
)

// Image surface palette, dark marks on a light page
var (
	ImageBackground = White
	ImageStroke     = Black
	ImageProbe      = Black
	ImageSeen       = Black
	ImageNotSeen    = Cyan
)

// Terminal surface palette, light marks on a dark screen
var (
	TerminalBackground = Obsidian
	TerminalStroke     = Gray
	TerminalProbe      = White
	TerminalSeen       = Silver
	TerminalNotSeen    = Cyan
	TerminalStatusFg   = NearWhite
	TerminalStatusBg   = DimGray
	TerminalHighlight  = Amber
)
