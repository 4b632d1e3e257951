package panels

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"graph-digitizer/internal/app"
	"graph-digitizer/ui/canvas"
)

// AxesPanel edits axis data ranges, log scales, and the optional
// secondary Y axis, and starts the calibration workflow.
type AxesPanel struct {
	state  *app.State
	canvas *canvas.ImageCanvas
	box    *fyne.Container

	titleEntry  *widget.Entry
	xLabelEntry *widget.Entry
	yLabelEntry *widget.Entry

	xMinEntry *widget.Entry
	xMaxEntry *widget.Entry
	yMinEntry *widget.Entry
	yMaxEntry *widget.Entry
	xLogChk   *widget.Check
	yLogChk   *widget.Check

	y2Chk      *widget.Check
	y2MinEntry *widget.Entry
	y2MaxEntry *widget.Entry
	y2LogChk   *widget.Check

	statusLabel *widget.Label
}

// NewAxesPanel creates the axes panel.
func NewAxesPanel(state *app.State, cvs *canvas.ImageCanvas) *AxesPanel {
	ap := &AxesPanel{state: state, canvas: cvs}

	ap.titleEntry = widget.NewEntry()
	ap.xLabelEntry = widget.NewEntry()
	ap.yLabelEntry = widget.NewEntry()

	ap.xMinEntry = widget.NewEntry()
	ap.xMaxEntry = widget.NewEntry()
	ap.yMinEntry = widget.NewEntry()
	ap.yMaxEntry = widget.NewEntry()
	ap.xLogChk = widget.NewCheck("Log X", nil)
	ap.yLogChk = widget.NewCheck("Log Y", nil)

	ap.y2MinEntry = widget.NewEntry()
	ap.y2MaxEntry = widget.NewEntry()
	ap.y2LogChk = widget.NewCheck("Log Y2", nil)
	ap.y2Chk = widget.NewCheck("Secondary Y axis", func(on bool) {
		ap.setY2Enabled(on)
	})

	ap.statusLabel = widget.NewLabel("Not calibrated")

	applyBtn := widget.NewButton("Apply Ranges", func() { ap.apply() })
	calibrateBtn := widget.NewButton("Calibrate Axes", func() {
		cvs.SetTool(canvas.ToolCalibrate)
	})

	ap.box = container.NewVBox(
		widget.NewLabel("Title:"), ap.titleEntry,
		widget.NewLabel("X label:"), ap.xLabelEntry,
		widget.NewLabel("Y label:"), ap.yLabelEntry,
		widget.NewSeparator(),
		widget.NewLabel("X range:"),
		container.NewGridWithColumns(2, ap.xMinEntry, ap.xMaxEntry),
		widget.NewLabel("Y range:"),
		container.NewGridWithColumns(2, ap.yMinEntry, ap.yMaxEntry),
		container.NewHBox(ap.xLogChk, ap.yLogChk),
		widget.NewSeparator(),
		ap.y2Chk,
		container.NewGridWithColumns(2, ap.y2MinEntry, ap.y2MaxEntry),
		ap.y2LogChk,
		widget.NewSeparator(),
		applyBtn,
		calibrateBtn,
		ap.statusLabel,
	)

	state.On(app.EventProjectLoaded, func(interface{}) { ap.sync() })
	state.On(app.EventCalibrationChanged, func(interface{}) { ap.syncStatus() })
	ap.sync()

	return ap
}

// Container returns the panel container.
func (ap *AxesPanel) Container() fyne.CanvasObject {
	return ap.box
}

func (ap *AxesPanel) apply() {
	cal := ap.state.Calibration
	cal.DataXMin = parseFloat(ap.xMinEntry.Text, cal.DataXMin)
	cal.DataXMax = parseFloat(ap.xMaxEntry.Text, cal.DataXMax)
	cal.DataYMin = parseFloat(ap.yMinEntry.Text, cal.DataYMin)
	cal.DataYMax = parseFloat(ap.yMaxEntry.Text, cal.DataYMax)
	cal.XLog = ap.xLogChk.Checked
	cal.YLog = ap.yLogChk.Checked

	if ap.y2Chk.Checked {
		cal.SetSecondaryY(
			parseFloat(ap.y2MinEntry.Text, 0),
			parseFloat(ap.y2MaxEntry.Text, 1),
			ap.y2LogChk.Checked,
		)
	} else {
		cal.ClearSecondaryY()
	}

	ap.state.Title = ap.titleEntry.Text
	ap.state.XLabel = ap.xLabelEntry.Text
	ap.state.YLabel = ap.yLabelEntry.Text

	ap.state.SetModified(true)
	ap.state.Emit(app.EventCalibrationChanged, nil)
}

func (ap *AxesPanel) sync() {
	cal := ap.state.Calibration

	ap.titleEntry.SetText(ap.state.Title)
	ap.xLabelEntry.SetText(ap.state.XLabel)
	ap.yLabelEntry.SetText(ap.state.YLabel)

	ap.xMinEntry.SetText(formatFloat(cal.DataXMin))
	ap.xMaxEntry.SetText(formatFloat(cal.DataXMax))
	ap.yMinEntry.SetText(formatFloat(cal.DataYMin))
	ap.yMaxEntry.SetText(formatFloat(cal.DataYMax))
	ap.xLogChk.SetChecked(cal.XLog)
	ap.yLogChk.SetChecked(cal.YLog)

	if cal.HasSecondaryY() {
		ap.y2Chk.SetChecked(true)
		ap.y2MinEntry.SetText(formatFloat(*cal.DataY2Min))
		ap.y2MaxEntry.SetText(formatFloat(*cal.DataY2Max))
		ap.y2LogChk.SetChecked(cal.Y2Log != nil && *cal.Y2Log)
	} else {
		ap.y2Chk.SetChecked(false)
	}
	ap.setY2Enabled(ap.y2Chk.Checked)
	ap.syncStatus()
}

func (ap *AxesPanel) syncStatus() {
	if ap.state.Calibration.IsCalibrated() {
		ap.statusLabel.SetText("Calibrated")
	} else {
		ap.statusLabel.SetText("Not calibrated")
	}
}

func (ap *AxesPanel) setY2Enabled(on bool) {
	if on {
		ap.y2MinEntry.Enable()
		ap.y2MaxEntry.Enable()
		ap.y2LogChk.Enable()
	} else {
		ap.y2MinEntry.Disable()
		ap.y2MaxEntry.Disable()
		ap.y2LogChk.Disable()
	}
}

func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
