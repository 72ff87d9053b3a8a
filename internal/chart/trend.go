package chart

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Fit is a least-squares line through scatter points.
type Fit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R         float64 `json:"r"`
	N         int     `json:"n"`
}

// At evaluates the fitted line at x.
func (f Fit) At(x float64) float64 { return f.Intercept + f.Slope*x }

// FitScatter fits y = Intercept + Slope*x and reports Pearson's r. It needs
// at least two points and spread on both axes.
func FitScatter(pts []Point) (Fit, bool) {
	if len(pts) < 2 {
		return Fit{}, false
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return Fit{}, false
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsNaN(r) {
		return Fit{}, false
	}
	return Fit{Slope: beta, Intercept: alpha, R: r, N: len(pts)}, true
}
