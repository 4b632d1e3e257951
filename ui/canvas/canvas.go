// Package canvas provides the plot image canvas with zoom, calibration
// capture, and point editing tools.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"graph-digitizer/internal/app"
	"graph-digitizer/internal/calibration"
	"graph-digitizer/pkg/colorutil"
	"graph-digitizer/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25

	// hit radius for selecting an existing point, in canvas pixels
	pickRadius = 10.0
)

// Tool represents the current interaction tool.
type Tool int

const (
	ToolAddPoint Tool = iota
	ToolMovePoint
	ToolDeletePoint
	ToolCalibrate
)

// calibration capture order
var anchorOrder = []calibration.AnchorRole{
	calibration.AnchorXLeft,
	calibration.AnchorXRight,
	calibration.AnchorYBottom,
	calibration.AnchorYTop,
}

var (
	anchorColor = color.NRGBA{R: 255, G: 0, B: 255, A: 255}
	background  = color.NRGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 255}
)

// ImageCanvas displays the plot image and routes clicks to the session
// state according to the active tool.
type ImageCanvas struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster

	tool    Tool
	calStep int // index into anchorOrder while calibrating

	// drag state for the move tool
	dragIndex  int
	dragBefore geometry.Point2D

	onStatus func(msg string)
}

// NewImageCanvas creates a canvas bound to the session state.
func NewImageCanvas(state *app.State) *ImageCanvas {
	ic := &ImageCanvas{
		state:     state,
		dragIndex: -1,
	}
	ic.raster = fynecanvas.NewRaster(ic.render)
	ic.ExtendBaseWidget(ic)

	refresh := func(interface{}) { ic.Refresh() }
	state.On(app.EventImageLoaded, refresh)
	state.On(app.EventCalibrationChanged, refresh)
	state.On(app.EventDataChanged, refresh)
	state.On(app.EventSelectionChanged, refresh)

	return ic
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ic.raster)
}

// OnStatus sets the callback for status bar messages.
func (ic *ImageCanvas) OnStatus(fn func(msg string)) {
	ic.onStatus = fn
}

// SetTool switches the interaction tool.
func (ic *ImageCanvas) SetTool(tool Tool) {
	ic.tool = tool
	if tool == ToolCalibrate {
		ic.calStep = 0
		ic.state.ResetCalibration()
		ic.status("Calibrate: click the X-left axis position")
	}
}

// Tool returns the active tool.
func (ic *ImageCanvas) Tool() Tool {
	return ic.tool
}

// ZoomIn increases the zoom by one step.
func (ic *ImageCanvas) ZoomIn() {
	ic.setZoom(ic.state.Image.Zoom * zoomStep)
}

// ZoomOut decreases the zoom by one step.
func (ic *ImageCanvas) ZoomOut() {
	ic.setZoom(ic.state.Image.Zoom / zoomStep)
}

// ActualSize restores 1:1 zoom and clears the pan offset.
func (ic *ImageCanvas) ActualSize() {
	ic.state.Image.ResetView()
	ic.Refresh()
}

func (ic *ImageCanvas) setZoom(z float64) {
	ic.state.Image.Zoom = math.Min(maxZoom, math.Max(minZoom, z))
	ic.Refresh()
}

// Scrolled zooms with the mouse wheel.
func (ic *ImageCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		ic.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		ic.ZoomOut()
	}
}

// Tapped handles a primary click according to the active tool. Anchors
// and points are kept in image coordinates, so positions are unprojected
// through the layer view first.
func (ic *ImageCanvas) Tapped(ev *fyne.PointEvent) {
	imgPt := ic.toImage(ev.Position)

	switch ic.tool {
	case ToolCalibrate:
		ic.captureAnchor(imgPt)
	case ToolAddPoint:
		ic.addPoint(imgPt)
	case ToolDeletePoint:
		ic.deleteNearest(imgPt)
	case ToolMovePoint:
		// handled by drag events
	}
}

// TappedSecondary deletes the nearest point of the active dataset.
func (ic *ImageCanvas) TappedSecondary(ev *fyne.PointEvent) {
	ic.deleteNearest(ic.toImage(ev.Position))
}

// Dragged moves the nearest point of the active dataset while the move
// tool is selected.
func (ic *ImageCanvas) Dragged(ev *fyne.DragEvent) {
	if ic.tool != ToolMovePoint {
		return
	}
	imgPt := ic.toImage(ev.Position)

	if ic.dragIndex == -1 {
		idx, ok := ic.pickPoint(imgPt)
		if !ok {
			return
		}
		ic.dragIndex = idx
		ic.dragBefore = ic.state.ActiveDataset().PointAt(idx)
	}

	// Live preview during the drag; the undoable command is pushed on
	// release.
	ic.state.ActiveDataset().SetPointAt(ic.dragIndex, ic.dataAt(imgPt))
	ic.Refresh()
}

// DragEnd commits the move as a single undoable command.
func (ic *ImageCanvas) DragEnd() {
	if ic.dragIndex == -1 {
		return
	}
	idx := ic.dragIndex
	ic.dragIndex = -1

	ds := ic.state.ActiveDataset()
	final := ds.PointAt(idx)
	ds.SetPointAt(idx, ic.dragBefore)
	ic.state.MovePoint(idx, final)
}

// MouseIn implements desktop.Hoverable.
func (ic *ImageCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved reports the cursor's data coordinates on the status bar.
func (ic *ImageCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if !ic.state.Calibration.IsCalibrated() {
		return
	}
	d := ic.dataAt(ic.toImage(ev.Position))
	ic.status(fmt.Sprintf("x = %.6g, y = %.6g", d.X, d.Y))
}

// MouseOut implements desktop.Hoverable.
func (ic *ImageCanvas) MouseOut() {}

func (ic *ImageCanvas) captureAnchor(imgPt geometry.Point2D) {
	if ic.calStep >= len(anchorOrder) {
		return
	}
	role := anchorOrder[ic.calStep]
	ic.state.SetAnchor(role, imgPt)
	ic.calStep++

	if ic.calStep < len(anchorOrder) {
		ic.status(fmt.Sprintf("Calibrate: click the %s axis position", anchorOrder[ic.calStep]))
	} else {
		ic.tool = ToolAddPoint
		ic.status("Calibration complete")
	}
}

func (ic *ImageCanvas) addPoint(imgPt geometry.Point2D) {
	if !ic.state.Calibration.IsCalibrated() {
		ic.status("Calibrate before placing points")
		return
	}
	ic.state.AddPoint(ic.dataAt(imgPt))
}

func (ic *ImageCanvas) deleteNearest(imgPt geometry.Point2D) {
	idx, ok := ic.pickPoint(imgPt)
	if !ok {
		return
	}
	ic.state.RemovePoint(idx)
}

// toImage unprojects a widget position to image coordinates.
func (ic *ImageCanvas) toImage(pos fyne.Position) geometry.Point2D {
	return ic.state.Image.View().CanvasToImage(
		geometry.NewPoint2D(float64(pos.X), float64(pos.Y)))
}

// dataAt converts an image position to data coordinates for the active
// dataset's axis.
func (ic *ImageCanvas) dataAt(imgPt geometry.Point2D) geometry.Point2D {
	ds := ic.state.ActiveDataset()
	return ic.state.Transformer.PixelToDataAxis(imgPt.X, imgPt.Y, ds.SecondaryY)
}

// pickPoint finds the active dataset's point nearest to an image
// position. The pick radius is fixed in screen pixels, so it shrinks in
// image space as the zoom grows.
func (ic *ImageCanvas) pickPoint(imgPt geometry.Point2D) (int, bool) {
	ds := ic.state.ActiveDataset()
	view := ic.state.Image.View()
	radius := pickRadius
	if view.Scale > 0 {
		radius /= view.Scale
	}

	best := -1
	bestDist := radius
	for i, p := range ds.Points() {
		ip := ic.state.Transformer.DataToPixelAxis(p.X, p.Y, ds.SecondaryY)
		if d := ip.Distance(imgPt); d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best != -1
}

// render composes the scaled image and overlay markers.
func (ic *ImageCanvas) render(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	stddraw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, stddraw.Src)

	layer := ic.state.Image
	if layer.Image != nil {
		src := layer.Image
		sb := src.Bounds()
		dw := int(math.Round(float64(sb.Dx()) * layer.Zoom))
		dh := int(math.Round(float64(sb.Dy()) * layer.Zoom))
		dst := image.Rect(
			int(math.Round(layer.OffsetX)),
			int(math.Round(layer.OffsetY)),
			int(math.Round(layer.OffsetX))+dw,
			int(math.Round(layer.OffsetY))+dh,
		)
		xdraw.NearestNeighbor.Scale(out, dst, src, sb, xdraw.Over, nil)
	}

	ic.drawAnchors(out)
	ic.drawPoints(out)
	return out
}

func (ic *ImageCanvas) drawAnchors(out *image.RGBA) {
	view := ic.state.Image.View()
	for _, role := range anchorOrder {
		if a := ic.state.Calibration.Anchor(role); a != nil {
			cp := view.ImageToCanvas(*a)
			drawCross(out, int(math.Round(cp.X)), int(math.Round(cp.Y)), 6, anchorColor)
		}
	}
}

func (ic *ImageCanvas) drawPoints(out *image.RGBA) {
	if !ic.state.Calibration.IsCalibrated() {
		return
	}
	view := ic.state.Image.View()
	for _, ds := range ic.state.Datasets {
		if !ds.Visible {
			continue
		}
		c := colorutil.ToNRGBA(ds.Color())
		for _, p := range ds.Points() {
			ip := ic.state.Transformer.DataToPixelAxis(p.X, p.Y, ds.SecondaryY)
			cp := view.ImageToCanvas(ip)
			drawSquare(out, int(math.Round(cp.X)), int(math.Round(cp.Y)), 3, c)
		}
	}
}

func (ic *ImageCanvas) status(msg string) {
	if ic.onStatus != nil {
		ic.onStatus(msg)
	}
}

func drawCross(img *image.RGBA, cx, cy, arm int, c color.NRGBA) {
	for d := -arm; d <= arm; d++ {
		setPixel(img, cx+d, cy, c)
		setPixel(img, cx, cy+d, c)
	}
}

func drawSquare(img *image.RGBA, cx, cy, half int, c color.NRGBA) {
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			setPixel(img, cx+dx, cy+dy, c)
		}
	}
}

func setPixel(img *image.RGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}
