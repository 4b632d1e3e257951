// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"graph-digitizer/internal/calibration"
	"graph-digitizer/internal/dataset"
	"graph-digitizer/pkg/geometry"
)

// File represents a graph digitizer project file (.gdproj). It captures
// the axis configuration and all datasets; calibration pixel anchors are
// session state tied to the on-screen image and are not persisted.
type File struct {
	Version  int       `json:"version"`
	Title    string    `json:"title"`
	XLabel   string    `json:"xlabel"`
	YLabel   string    `json:"ylabel"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Image path (relative to project file when possible)
	ImagePath string `json:"image,omitempty"`

	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
	XLog bool    `json:"x_log"`
	YLog bool    `json:"y_log"`

	// Secondary Y axis, absent unless configured
	Y2Min *float64 `json:"y2_min,omitempty"`
	Y2Max *float64 `json:"y2_max,omitempty"`
	Y2Log *bool    `json:"y2_log,omitempty"`

	Datasets []DatasetRecord `json:"datasets"`
}

// DatasetRecord is the persisted form of one dataset.
type DatasetRecord struct {
	Name       string             `json:"name"`
	Color      string             `json:"color"`
	Visible    bool               `json:"visible"`
	SecondaryY bool               `json:"secondary_y,omitempty"`
	Points     []geometry.Point2D `json:"points"`
}

// New creates a new project file with default axis ranges.
func New(title string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Title:    title,
		Created:  now,
		Modified: now,
		XMax:     1.0,
		YMax:     1.0,
	}
}

// Load loads a project from a .gdproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SetImage sets the image path, stored relative to the project file when
// possible.
func (p *File) SetImage(projectPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), imagePath)
	if err != nil {
		p.ImagePath = imagePath
	} else {
		p.ImagePath = rel
	}
	p.Modified = time.Now()
}

// GetImagePath returns the absolute path to the plot image.
func (p *File) GetImagePath(projectPath string) string {
	if p.ImagePath == "" {
		return ""
	}
	if filepath.IsAbs(p.ImagePath) {
		return p.ImagePath
	}
	return filepath.Join(filepath.Dir(projectPath), p.ImagePath)
}

// Snapshot captures the current axis configuration and datasets into a
// project file ready to save.
func Snapshot(title, xlabel, ylabel string, cal *calibration.Calibration, datasets []*dataset.Dataset) *File {
	p := New(title)
	p.XLabel = xlabel
	p.YLabel = ylabel
	p.XMin, p.XMax = cal.DataXMin, cal.DataXMax
	p.YMin, p.YMax = cal.DataYMin, cal.DataYMax
	p.XLog, p.YLog = cal.XLog, cal.YLog
	p.Y2Min, p.Y2Max, p.Y2Log = cal.DataY2Min, cal.DataY2Max, cal.Y2Log

	for _, ds := range datasets {
		points := make([]geometry.Point2D, ds.Len())
		copy(points, ds.Points())
		p.Datasets = append(p.Datasets, DatasetRecord{
			Name:       ds.Name,
			Color:      ds.HexColor(),
			Visible:    ds.Visible,
			SecondaryY: ds.SecondaryY,
			Points:     points,
		})
	}
	return p
}

// Restore applies the project's axis configuration to cal and rebuilds the
// dataset pool contents in place. Records beyond the pool size are
// dropped; pool entries without a record are cleared.
func (p *File) Restore(cal *calibration.Calibration, datasets []*dataset.Dataset) {
	cal.DataXMin, cal.DataXMax = p.XMin, p.XMax
	cal.DataYMin, cal.DataYMax = p.YMin, p.YMax
	cal.XLog, cal.YLog = p.XLog, p.YLog
	cal.DataY2Min, cal.DataY2Max, cal.Y2Log = p.Y2Min, p.Y2Max, p.Y2Log

	for i, ds := range datasets {
		if i >= len(p.Datasets) {
			ds.Clear()
			continue
		}
		rec := p.Datasets[i]
		ds.Name = rec.Name
		ds.SetHexColor(rec.Color)
		ds.Visible = rec.Visible
		ds.SecondaryY = rec.SecondaryY
		points := make([]geometry.Point2D, len(rec.Points))
		copy(points, rec.Points)
		ds.SetPoints(points)
	}
}
