package panels

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"graph-digitizer/internal/analysis"
	"graph-digitizer/internal/app"
	"graph-digitizer/ui/canvas"
)

// TracePanel hosts the editing tool selector, the auto-tracer, X-value
// snapping, and quick statistics for the active dataset.
type TracePanel struct {
	state  *app.State
	canvas *canvas.ImageCanvas
	win    fyne.Window
	box    *fyne.Container

	toolSelect  *widget.RadioGroup
	targetEntry *widget.Entry
	tolEntry    *widget.Entry
	statsLabel  *widget.Label
}

var toolNames = []string{"Add Point", "Move Point", "Delete Point"}

// NewTracePanel creates the trace and tools panel.
func NewTracePanel(state *app.State, cvs *canvas.ImageCanvas) *TracePanel {
	tp := &TracePanel{state: state, canvas: cvs}

	tp.toolSelect = widget.NewRadioGroup(toolNames, func(name string) {
		switch name {
		case "Add Point":
			cvs.SetTool(canvas.ToolAddPoint)
		case "Move Point":
			cvs.SetTool(canvas.ToolMovePoint)
		case "Delete Point":
			cvs.SetTool(canvas.ToolDeletePoint)
		}
	})
	tp.toolSelect.SetSelected("Add Point")

	traceBtn := widget.NewButton("Auto-Trace Active Dataset", func() { tp.onAutoTrace() })

	tp.targetEntry = widget.NewEntry()
	tp.targetEntry.SetPlaceHolder("e.g. 0, 1, 2.5, 4")
	tp.tolEntry = widget.NewEntry()
	tp.tolEntry.SetPlaceHolder("relative tolerance (optional)")

	applySnapBtn := widget.NewButton("Apply Snap Targets", func() { tp.applySnap() })
	clearSnapBtn := widget.NewButton("Clear", func() {
		state.Snapper.Clear()
		state.Snapper.ClearTolerance()
		tp.targetEntry.SetText("")
		tp.tolEntry.SetText("")
	})

	tp.statsLabel = widget.NewLabel("")
	tp.statsLabel.Wrapping = fyne.TextWrapWord
	fitBtn := widget.NewButton("Fit Line", func() { tp.onFit() })

	tp.box = container.NewVBox(
		widget.NewLabel("Tool:"),
		tp.toolSelect,
		widget.NewSeparator(),
		traceBtn,
		widget.NewSeparator(),
		widget.NewLabel("Snap X targets:"),
		tp.targetEntry,
		widget.NewLabel("Tolerance:"),
		tp.tolEntry,
		container.NewHBox(applySnapBtn, clearSnapBtn),
		widget.NewSeparator(),
		fitBtn,
		tp.statsLabel,
	)

	state.On(app.EventDataChanged, func(interface{}) { tp.syncStats() })
	state.On(app.EventSelectionChanged, func(interface{}) { tp.syncStats() })

	return tp
}

// Container returns the panel container.
func (tp *TracePanel) Container() fyne.CanvasObject {
	return tp.box
}

// SetWindow sets the parent window for dialogs.
func (tp *TracePanel) SetWindow(w fyne.Window) {
	tp.win = w
}

func (tp *TracePanel) onAutoTrace() {
	n, err := tp.state.AutoTrace()
	if err != nil {
		tp.showError(err)
		return
	}
	tp.statsLabel.SetText(fmt.Sprintf("Traced %d points", n))
}

func (tp *TracePanel) applySnap() {
	var targets []float64
	for _, field := range strings.Split(tp.targetEntry.Text, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			tp.showError(fmt.Errorf("invalid snap target %q: %w", field, err))
			return
		}
		targets = append(targets, v)
	}
	tp.state.Snapper.SetTargets(targets)

	tolText := strings.TrimSpace(tp.tolEntry.Text)
	if tolText == "" {
		tp.state.Snapper.ClearTolerance()
		return
	}
	tol, err := strconv.ParseFloat(tolText, 64)
	if err != nil || tol < 0 {
		tp.showError(fmt.Errorf("invalid tolerance %q", tolText))
		return
	}
	tp.state.Snapper.SetTolerance(tol)
}

func (tp *TracePanel) onFit() {
	ds := tp.state.ActiveDataset()
	fit, err := analysis.FitLine(ds.Points())
	if err != nil {
		tp.showError(err)
		return
	}
	sum := analysis.Summarize(ds.Points())
	tp.statsLabel.SetText(fmt.Sprintf(
		"%s\nn = %d\nmean = (%.6g, %.6g)\nx in [%.6g, %.6g]",
		fit.String(), sum.N, sum.MeanX, sum.MeanY, sum.MinX, sum.MaxX))
}

func (tp *TracePanel) syncStats() {
	ds := tp.state.ActiveDataset()
	if ds.Len() == 0 {
		tp.statsLabel.SetText("")
		return
	}
	sum := analysis.Summarize(ds.Points())
	tp.statsLabel.SetText(fmt.Sprintf("n = %d, mean y = %.6g", sum.N, sum.MeanY))
}

func (tp *TracePanel) showError(err error) {
	if tp.win != nil {
		dialog.ShowError(err, tp.win)
		return
	}
	tp.statsLabel.SetText(err.Error())
}
