package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image encoding for rendered charts.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat maps a user-supplied name to an image Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPNG, "":
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported image format: %s (use png|svg)", s)
}

// RenderOptions sizes the image and optionally overlays a scatter trend line.
type RenderOptions struct {
	Format Format
	Width  int
	Height int
	Trend  *Fit
}

// maxTicks bounds the category labels drawn under line charts.
const maxTicks = 12

// Render draws one chart of p to w. A chart that is nil in p, or has too
// few values to draw, returns an error wrapping ErrNoData.
func Render(w io.Writer, kind Kind, p Projection, opt RenderOptions) error {
	if opt.Width <= 0 {
		opt.Width = 800
	}
	if opt.Height <= 0 {
		opt.Height = 480
	}
	provider := gochart.PNG
	if opt.Format == FormatSVG {
		provider = gochart.SVG
	}
	var err error
	switch kind {
	case KindLine:
		if p.Line == nil {
			return fmt.Errorf("%w: line chart disabled", ErrNoData)
		}
		err = renderLine(w, provider, *p.Line, opt)
	case KindBar:
		if p.Bar == nil {
			return fmt.Errorf("%w: bar chart disabled", ErrNoData)
		}
		err = renderBar(w, provider, *p.Bar, opt)
	case KindPie:
		if p.Pie == nil {
			return fmt.Errorf("%w: pie chart disabled", ErrNoData)
		}
		err = renderPie(w, provider, *p.Pie, opt)
	case KindScatter:
		if p.Scatter == nil {
			return fmt.Errorf("%w: scatter chart disabled or unavailable", ErrNoData)
		}
		err = renderScatter(w, provider, *p.Scatter, opt)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	return nil
}

func renderLine(w io.Writer, rp gochart.RendererProvider, s LineSeries, opt RenderOptions) error {
	var xs, ys []float64
	for i, v := range s.Values {
		if f, ok := v.Float64(); ok {
			xs = append(xs, float64(i))
			ys = append(ys, f)
		}
	}
	if len(xs) < 2 {
		return fmt.Errorf("%w: need at least two numeric values", ErrNoData)
	}
	step := (len(s.Labels) + maxTicks - 1) / maxTicks
	var ticks []gochart.Tick
	for i := 0; i < len(s.Labels); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: s.Labels[i]})
	}
	c := gochart.Chart{
		Title:  s.Title,
		Width:  opt.Width,
		Height: opt.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{Ticks: ticks},
		YAxis: gochart.YAxis{Range: flatRange(ys)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    s.Label,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: hexColor(s.Color),
					StrokeWidth: 2,
					FillColor:   hexColor(s.Fill),
				},
			},
		},
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	return c.Render(rp, w)
}

func renderBar(w io.Writer, rp gochart.RendererProvider, s LineSeries, opt RenderOptions) error {
	bars := make([]gochart.Value, 0, len(s.Values))
	heights := make([]float64, 0, len(s.Values))
	for i, v := range s.Values {
		f, ok := v.Float64()
		if !ok {
			continue
		}
		heights = append(heights, f)
		bars = append(bars, gochart.Value{
			Label: s.Labels[i],
			Value: f,
			Style: gochart.Style{FillColor: hexColor(s.Fill), StrokeColor: hexColor(s.Color)},
		})
	}
	if len(bars) == 0 {
		return fmt.Errorf("%w: no numeric values", ErrNoData)
	}
	// go-chart spaces bars 100px apart unless told otherwise.
	slot := max(3, opt.Width*4/5/len(bars))
	c := gochart.BarChart{
		Title:      s.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		BarWidth:   slot * 2 / 3,
		BarSpacing: max(1, slot/3),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		YAxis: gochart.YAxis{Range: flatRange(heights)},
		Bars:  bars,
	}
	return c.Render(rp, w)
}

func renderPie(w io.Writer, rp gochart.RendererProvider, s PieSeries, opt RenderOptions) error {
	if len(s.Values) == 0 {
		return fmt.Errorf("%w: no categories to aggregate", ErrNoData)
	}
	// Slices need positive sums; go-chart spins forever on a zero total.
	vals := make([]gochart.Value, 0, len(s.Values))
	for i, v := range s.Values {
		if !(v > 0) || i >= len(s.Labels) {
			continue
		}
		color := ColorAt(i)
		if i < len(s.Colors) {
			color = s.Colors[i]
		}
		vals = append(vals, gochart.Value{
			Label: s.Labels[i],
			Value: v,
			Style: gochart.Style{FillColor: hexColor(color), StrokeWidth: 1},
		})
	}
	if len(vals) == 0 {
		return fmt.Errorf("%w: no positive categories", ErrNoData)
	}
	c := gochart.PieChart{
		Title:  s.Title,
		Width:  opt.Width,
		Height: opt.Height,
		Values: vals,
	}
	return c.Render(rp, w)
}

func renderScatter(w io.Writer, rp gochart.RendererProvider, s ScatterSeries, opt RenderOptions) error {
	if len(s.Points) < 2 {
		return fmt.Errorf("%w: need at least two points", ErrNoData)
	}
	xs := make([]float64, len(s.Points))
	ys := make([]float64, len(s.Points))
	minX, maxX := s.Points[0].X, s.Points[0].X
	for i, p := range s.Points {
		xs[i], ys[i] = p.X, p.Y
		minX, maxX = min(minX, p.X), max(maxX, p.X)
	}
	series := []gochart.Series{
		gochart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    5,
				DotColor:    hexColor(s.Color),
			},
		},
	}
	if f := opt.Trend; f != nil && maxX > minX {
		series = append(series, gochart.ContinuousSeries{
			Name:    fmt.Sprintf("trend (r=%.2f)", f.R),
			XValues: []float64{minX, maxX},
			YValues: []float64{f.At(minX), f.At(maxX)},
			Style:   gochart.Style{StrokeColor: hexColor(ColorAt(7)), StrokeWidth: 1},
		})
	}
	c := gochart.Chart{
		Title:  s.Title,
		Width:  opt.Width,
		Height: opt.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis:  gochart.XAxis{Name: s.XLabel, Range: flatRange(xs)},
		YAxis:  gochart.YAxis{Name: s.YLabel, Range: flatRange(ys)},
		Series: series,
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	return c.Render(rp, w)
}

// flatRange returns an explicit axis range when every value is equal, since
// go-chart rejects a zero-width data range. It returns nil otherwise so the
// axis auto-scales.
func flatRange(vals []float64) gochart.Range {
	if len(vals) == 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	if lo != hi {
		return nil
	}
	return &gochart.ContinuousRange{Min: min(0, lo), Max: max(0, lo) + 1}
}

// hexColor parses #rrggbb or #rrggbbaa. Malformed input falls back to the
// library's own parser.
func hexColor(hex string) drawing.Color {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 && len(h) != 8 {
		return drawing.ColorFromHex(h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return drawing.ColorFromHex(h)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return drawing.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}
