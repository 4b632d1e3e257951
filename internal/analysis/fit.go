// Package analysis provides summary statistics and line fitting for
// digitized datasets.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"graph-digitizer/pkg/geometry"
)

// Summary holds basic statistics of a point series.
type Summary struct {
	N     int
	MeanX float64
	MeanY float64
	StdX  float64
	StdY  float64
	MinX  float64
	MaxX  float64
	MinY  float64
	MaxY  float64
}

// Summarize computes summary statistics. The zero Summary is returned for
// an empty series.
func Summarize(points []geometry.Point2D) Summary {
	if len(points) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	box := geometry.BoundingBox(points)
	s := Summary{
		N:     len(points),
		MeanX: stat.Mean(xs, nil),
		MeanY: stat.Mean(ys, nil),
		MinX:  box.X,
		MaxX:  box.X + box.Width,
		MinY:  box.Y,
		MaxY:  box.Y + box.Height,
	}
	if len(points) > 1 {
		s.StdX = stat.StdDev(xs, nil)
		s.StdY = stat.StdDev(ys, nil)
	}
	return s
}

// LinearFit is an ordinary least-squares line y = Slope*x + Intercept.
type LinearFit struct {
	Slope     float64
	Intercept float64
	R2        float64
}

func (f LinearFit) String() string {
	return fmt.Sprintf("y = %.6g*x + %.6g (R² = %.4f)", f.Slope, f.Intercept, f.R2)
}

// FitLine fits a least-squares line through the points by solving the
// normal equations for the design matrix [1 x]. At least two points with
// distinct X values are required.
func FitLine(points []geometry.Point2D) (LinearFit, error) {
	if len(points) < 2 {
		return LinearFit{}, fmt.Errorf("need at least 2 points, got %d", len(points))
	}

	n := len(points)
	a := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i, p := range points {
		a.Set(i, 0, 1)
		a.Set(i, 1, p.X)
		y.SetVec(i, p.Y)
	}

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, y); err != nil {
		return LinearFit{}, fmt.Errorf("degenerate point set: %w", err)
	}

	fit := LinearFit{
		Intercept: coef.AtVec(0),
		Slope:     coef.AtVec(1),
	}

	// Coefficient of determination against the mean-only model.
	ys := make([]float64, n)
	for i, p := range points {
		ys[i] = p.Y
	}
	meanY := stat.Mean(ys, nil)
	var ssRes, ssTot float64
	for _, p := range points {
		pred := fit.Slope*p.X + fit.Intercept
		ssRes += (p.Y - pred) * (p.Y - pred)
		ssTot += (p.Y - meanY) * (p.Y - meanY)
	}
	if ssTot == 0 {
		fit.R2 = 1
	} else {
		fit.R2 = 1 - ssRes/ssTot
	}
	return fit, nil
}
