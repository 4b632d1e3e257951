// Command autotrace extracts a curve from a plot image and writes the
// data points as CSV.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"graph-digitizer/internal/analysis"
	"graph-digitizer/internal/calibration"
	"graph-digitizer/internal/dataset"
	"graph-digitizer/internal/export"
	"graph-digitizer/internal/image"
	"graph-digitizer/internal/snap"
	"graph-digitizer/internal/trace"
	"graph-digitizer/pkg/colorutil"
	"graph-digitizer/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to plot image (PNG, JPEG, GIF, BMP, or TIFF)")
	colorHex := flag.String("color", colorutil.DefaultPalette[0], "Curve color as hex, e.g. #0072B2")
	xLeft := flag.String("xleft", "", "Pixel position of the X axis minimum, as x,y")
	xRight := flag.String("xright", "", "Pixel position of the X axis maximum, as x,y")
	yBottom := flag.String("ybottom", "", "Pixel position of the Y axis minimum, as x,y")
	yTop := flag.String("ytop", "", "Pixel position of the Y axis maximum, as x,y")
	xMin := flag.Float64("xmin", 0, "Data value at the X axis minimum")
	xMax := flag.Float64("xmax", 1, "Data value at the X axis maximum")
	yMin := flag.Float64("ymin", 0, "Data value at the Y axis minimum")
	yMax := flag.Float64("ymax", 1, "Data value at the Y axis maximum")
	xLog := flag.Bool("xlog", false, "X axis is log-scaled")
	yLog := flag.Bool("ylog", false, "Y axis is log-scaled")
	snapList := flag.String("snap", "", "Comma-separated X values to snap traced points to")
	tol := flag.Float64("tol", -1, "Relative snap tolerance (unset: always snap)")
	outPath := flag.String("out", "", "Output CSV path (default: stdout summary only)")
	fit := flag.Bool("fit", false, "Print a least-squares line fit of the traced points")
	flag.Parse()

	if *imagePath == "" || *xLeft == "" || *xRight == "" || *yBottom == "" || *yTop == "" {
		fmt.Println("Usage: autotrace -image <path> -xleft x,y -xright x,y -ybottom x,y -ytop x,y [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	layer, err := image.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded image: %dx%d pixels\n", layer.Width(), layer.Height())

	cal := calibration.New()
	cal.DataXMin, cal.DataXMax = *xMin, *xMax
	cal.DataYMin, cal.DataYMax = *yMin, *yMax
	cal.XLog, cal.YLog = *xLog, *yLog
	for _, a := range []struct {
		role calibration.AnchorRole
		arg  string
	}{
		{calibration.AnchorXLeft, *xLeft},
		{calibration.AnchorXRight, *xRight},
		{calibration.AnchorYBottom, *yBottom},
		{calibration.AnchorYTop, *yTop},
	} {
		p, err := parsePoint(a.arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid %s anchor %q: %v\n", a.role, a.arg, err)
			os.Exit(1)
		}
		cal.SetAnchor(a.role, p)
	}

	target := colorutil.ParseHex(*colorHex)
	fmt.Printf("Tracing color %s\n", colorutil.FormatHex(target))

	tracer := trace.NewTracer(layer, calibration.NewTransformer(cal), trace.IdentityView())
	points := tracer.Trace(target, false)
	fmt.Printf("Traced %d points across %d columns\n", len(points), tracer.ColumnCount())

	if *snapList != "" {
		points = snapAll(points, *snapList, *tol)
	}

	if *fit && len(points) >= 2 {
		lf, err := analysis.FitLine(points)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fit failed: %v\n", err)
		} else {
			fmt.Println(lf.String())
		}
	}

	if *outPath == "" {
		sum := analysis.Summarize(points)
		fmt.Printf("x in [%g, %g], y in [%g, %g]\n", sum.MinX, sum.MaxX, sum.MinY, sum.MaxY)
		return
	}

	ds := dataset.New("trace", *colorHex)
	ds.SetPoints(points)
	if err := export.WriteCSV(*outPath, []*dataset.Dataset{ds}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

// parsePoint parses an "x,y" pixel coordinate pair.
func parsePoint(s string) (geometry.Point2D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point2D{}, fmt.Errorf("expected x,y")
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point2D{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point2D{}, err
	}
	return geometry.NewPoint2D(x, y), nil
}

// snapAll snaps the X coordinate of every traced point to the given
// targets.
func snapAll(points []geometry.Point2D, list string, tol float64) []geometry.Point2D {
	sn := snap.New()
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid snap target %q: %v\n", field, err)
			os.Exit(1)
		}
		sn.AddTarget(v)
	}
	if tol >= 0 {
		sn.SetTolerance(tol)
	}
	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		out[i] = sn.SnapPoint(p)
	}
	return out
}
