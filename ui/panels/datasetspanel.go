package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"graph-digitizer/internal/app"
	"graph-digitizer/pkg/colorutil"
)

// DatasetsPanel manages the dataset pool: selection, naming, color, and
// visibility.
type DatasetsPanel struct {
	state *app.State
	box   *fyne.Container

	list       *widget.List
	nameEntry  *widget.Entry
	colorEntry *widget.Entry
	visibleChk *widget.Check
	y2Chk      *widget.Check
	countLabel *widget.Label

	// guards against feedback while syncing widgets from state
	syncing bool
}

// NewDatasetsPanel creates the dataset management panel.
func NewDatasetsPanel(state *app.State) *DatasetsPanel {
	dp := &DatasetsPanel{state: state}

	dp.list = widget.NewList(
		func() int { return len(state.Datasets) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			ds := state.Datasets[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s (%d)", ds.Name, ds.Len()))
		},
	)
	dp.list.OnSelected = func(i widget.ListItemID) {
		state.SetActiveIndex(i)
	}

	dp.nameEntry = widget.NewEntry()
	dp.nameEntry.OnChanged = func(text string) {
		if dp.syncing || text == "" {
			return
		}
		state.ActiveDataset().Name = text
		dp.list.Refresh()
		state.SetModified(true)
	}

	dp.colorEntry = widget.NewEntry()
	dp.colorEntry.OnSubmitted = func(text string) {
		state.ActiveDataset().SetHexColor(text)
		// Normalize what the user typed.
		dp.colorEntry.SetText(colorutil.FormatHex(state.ActiveDataset().Color()))
		state.SetModified(true)
		state.Emit(app.EventDataChanged, nil)
	}

	dp.visibleChk = widget.NewCheck("Visible", func(on bool) {
		if dp.syncing {
			return
		}
		if state.ActiveDataset().Visible != on {
			state.ToggleVisibility(state.ActiveDataset())
		}
	})

	dp.y2Chk = widget.NewCheck("Secondary Y axis", func(on bool) {
		if dp.syncing {
			return
		}
		state.ActiveDataset().SecondaryY = on
		state.SetModified(true)
		state.Emit(app.EventDataChanged, nil)
	})

	dp.countLabel = widget.NewLabel("")

	clearBtn := widget.NewButton("Clear Points", func() {
		state.ActiveDataset().Clear()
		state.History.Clear()
		state.SetModified(true)
		state.Emit(app.EventDataChanged, nil)
	})

	form := container.NewVBox(
		widget.NewLabel("Name:"),
		dp.nameEntry,
		widget.NewLabel("Color (hex):"),
		dp.colorEntry,
		dp.visibleChk,
		dp.y2Chk,
		dp.countLabel,
		clearBtn,
	)
	dp.box = container.NewBorder(nil, form, nil, nil, dp.list)

	state.On(app.EventSelectionChanged, func(interface{}) { dp.sync() })
	state.On(app.EventDataChanged, func(interface{}) { dp.sync() })
	dp.sync()

	return dp
}

// Container returns the panel container.
func (dp *DatasetsPanel) Container() fyne.CanvasObject {
	return dp.box
}

func (dp *DatasetsPanel) sync() {
	dp.syncing = true
	defer func() { dp.syncing = false }()

	ds := dp.state.ActiveDataset()
	dp.nameEntry.SetText(ds.Name)
	dp.colorEntry.SetText(ds.HexColor())
	dp.visibleChk.SetChecked(ds.Visible)
	dp.y2Chk.SetChecked(ds.SecondaryY)
	dp.countLabel.SetText(fmt.Sprintf("%d points", ds.Len()))
	dp.list.Refresh()
}
