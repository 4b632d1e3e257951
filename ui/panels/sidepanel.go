// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"graph-digitizer/internal/app"
	"graph-digitizer/ui/canvas"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.ImageCanvas
	container *container.AppTabs

	// Tab content
	datasetsPanel *DatasetsPanel
	axesPanel     *AxesPanel
	tracePanel    *TracePanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.ImageCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	sp.datasetsPanel = NewDatasetsPanel(state)
	sp.axesPanel = NewAxesPanel(state, cvs)
	sp.tracePanel = NewTracePanel(state, cvs)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Datasets", sp.datasetsPanel.Container()),
		container.NewTabItem("Axes", sp.axesPanel.Container()),
		container.NewTabItem("Trace", sp.tracePanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.tracePanel.SetWindow(w)
}
