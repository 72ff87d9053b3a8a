package chart

// Palette is the fixed series palette; colours are assigned by position
// modulo its length.
var Palette = []string{
	"#2563eb", // blue
	"#16a34a", // green
	"#dc2626", // red
	"#9333ea", // purple
	"#ea580c", // orange
	"#0891b2", // cyan
	"#ca8a04", // yellow
	"#4b5563", // gray
}

// ColorAt returns the palette colour for position i.
func ColorAt(i int) string {
	i %= len(Palette)
	if i < 0 {
		i += len(Palette)
	}
	return Palette[i]
}

// Colors returns n colours cycling through the palette.
func Colors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = ColorAt(i)
	}
	return out
}

// Translucent appends a two-digit hex alpha to a #rrggbb colour.
func Translucent(hex, alpha string) string { return hex + alpha }
