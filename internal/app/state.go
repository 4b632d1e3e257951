// Package app provides application lifecycle management, session state,
// and events.
package app

import (
	"fmt"
	"sync"

	"graph-digitizer/internal/calibration"
	"graph-digitizer/internal/dataset"
	"graph-digitizer/internal/history"
	"graph-digitizer/internal/image"
	"graph-digitizer/internal/project"
	"graph-digitizer/internal/snap"
	"graph-digitizer/internal/trace"
	"graph-digitizer/pkg/geometry"
)

// State holds the session state: the loaded image, calibration, dataset
// pool, snapper, and edit history. The core types it owns are plain data
// and algorithms; all widget state lives in the ui packages, which
// reference State, never the reverse.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Modified    bool
	Title       string
	XLabel      string
	YLabel      string

	// Image
	Image *image.Layer

	// Digitization core
	Calibration *calibration.Calibration
	Transformer *calibration.Transformer
	Datasets    []*dataset.Dataset
	Snapper     *snap.Snapper
	History     *history.Engine

	active int // index of the active dataset

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventImageLoaded
	EventCalibrationChanged
	EventDataChanged
	EventSelectionChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new session with an uncalibrated model and the
// default dataset pool.
func NewState() *State {
	cal := calibration.New()
	s := &State{
		Image:       image.NewLayer(),
		Calibration: cal,
		Transformer: calibration.NewTransformer(cal),
		Datasets:    dataset.NewPool(dataset.MaxDatasets),
		Snapper:     snap.New(),
		History:     history.NewEngine(),
		listeners:   make(map[EventType][]EventListener),
	}
	s.History.OnChange(func() {
		s.Emit(EventDataChanged, nil)
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// ActiveDataset returns the dataset edits currently target.
func (s *State) ActiveDataset() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Datasets[s.active]
}

// ActiveIndex returns the index of the active dataset.
func (s *State) ActiveIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActiveIndex selects the dataset edits target.
func (s *State) SetActiveIndex(i int) {
	if i < 0 || i >= len(s.Datasets) {
		return
	}
	s.mu.Lock()
	s.active = i
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, i)
}

// LoadImage loads a plot image and resets the document around it: the
// calibration anchors, snapper, and history are cleared together, since
// they describe the previous image.
func (s *State) LoadImage(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Image = layer
	s.mu.Unlock()

	s.Calibration.Reset()
	s.Snapper.Clear()
	s.History.Clear()

	s.Emit(EventImageLoaded, path)
	s.Emit(EventCalibrationChanged, nil)
	s.SetModified(true)
	return nil
}

// SetAnchor records a calibration anchor at an image pixel position.
func (s *State) SetAnchor(role calibration.AnchorRole, p geometry.Point2D) {
	s.Calibration.SetAnchor(role, p)
	s.Emit(EventCalibrationChanged, role)
	s.SetModified(true)
}

// ResetCalibration clears the anchors only.
func (s *State) ResetCalibration() {
	s.Calibration.Reset()
	s.Emit(EventCalibrationChanged, nil)
	s.SetModified(true)
}

// AddPoint snaps and appends a point to the active dataset through the
// history engine.
func (s *State) AddPoint(p geometry.Point2D) {
	s.History.Push(&history.AddPoint{
		Dataset: s.ActiveDataset(),
		Point:   s.Snapper.SnapPoint(p),
	})
	s.SetModified(true)
}

// RemovePoint deletes the point at index i of the active dataset through
// the history engine.
func (s *State) RemovePoint(i int) {
	ds := s.ActiveDataset()
	if i < 0 || i >= ds.Len() {
		return
	}
	s.History.Push(&history.RemovePoint{Dataset: ds, Point: ds.PointAt(i), Index: i})
	s.SetModified(true)
}

// MovePoint relocates the point at index i of the active dataset through
// the history engine. The new X is snapped.
func (s *State) MovePoint(i int, to geometry.Point2D) {
	ds := s.ActiveDataset()
	if i < 0 || i >= ds.Len() {
		return
	}
	s.History.Push(&history.MovePoint{
		Dataset: ds,
		Index:   i,
		Before:  ds.PointAt(i),
		After:   s.Snapper.SnapPoint(to),
	})
	s.SetModified(true)
}

// ToggleVisibility flips a dataset's visibility through the history
// engine.
func (s *State) ToggleVisibility(ds *dataset.Dataset) {
	s.History.Push(&history.ToggleVisibility{Dataset: ds, Before: ds.Visible, After: !ds.Visible})
	s.SetModified(true)
}

// AutoTrace runs the color tracer against the active dataset and replaces
// its point list wholesale as one undoable composite. Returns the number
// of traced points.
func (s *State) AutoTrace() (int, error) {
	if !s.Calibration.IsCalibrated() {
		return 0, fmt.Errorf("cannot auto-trace: not calibrated")
	}
	if s.Image.Image == nil {
		return 0, fmt.Errorf("cannot auto-trace: no image loaded")
	}

	ds := s.ActiveDataset()
	// Anchors are stored in image coordinates, so the tracer samples image
	// columns directly.
	tracer := trace.NewTracer(s.Image, s.Transformer, trace.IdentityView())
	traced := tracer.Trace(ds.Color(), ds.SecondaryY)

	comp := history.NewComposite(fmt.Sprintf("Auto-trace %s", ds.Name))
	for i := ds.Len() - 1; i >= 0; i-- {
		comp.Add(&history.RemovePoint{Dataset: ds, Point: ds.PointAt(i), Index: i})
	}
	for _, p := range traced {
		comp.Add(&history.AddPoint{Dataset: ds, Point: p})
	}
	s.History.Push(comp)
	s.SetModified(true)
	return len(traced), nil
}

// LoadProject restores a saved project, clearing the history.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Title = proj.Title
	s.XLabel = proj.XLabel
	s.YLabel = proj.YLabel
	s.mu.Unlock()

	proj.Restore(s.Calibration, s.Datasets)
	s.History.Clear()

	if imgPath := proj.GetImagePath(path); imgPath != "" {
		if layer, err := image.Load(imgPath); err == nil {
			s.mu.Lock()
			s.Image = layer
			s.mu.Unlock()
			s.Emit(EventImageLoaded, imgPath)
		}
	}

	s.Emit(EventProjectLoaded, path)
	s.Emit(EventCalibrationChanged, nil)
	s.Emit(EventDataChanged, nil)
	s.SetModified(false)
	return nil
}

// SaveProject writes the session to a project file.
func (s *State) SaveProject(path string) error {
	proj := project.Snapshot(s.Title, s.XLabel, s.YLabel, s.Calibration, s.Datasets)
	if s.Image.Path != "" {
		proj.SetImage(path, s.Image.Path)
	}
	if err := proj.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	s.SetModified(false)
	return nil
}
