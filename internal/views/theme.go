package views

// Theme is the chart styling handed to every view and renderer.
type Theme struct {
	Highlight string
	Muted     string
	Accent    string
	Line      string

	Width     int
	Height    int
	PairWidth int
	FontSize  float64
}

func DefaultTheme() Theme {
	return Theme{
		Highlight: "#90CAF9",
		Muted:     "#D3D3D3",
		Accent:    "#72BCD4",
		Line:      "#90CAF9",
		Width:     1024,
		Height:    480,
		PairWidth: 640,
		FontSize:  12,
	}
}
