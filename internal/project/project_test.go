package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graph-digitizer/internal/calibration"
	"graph-digitizer/internal/dataset"
	"graph-digitizer/pkg/geometry"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cal := calibration.New()
	cal.DataXMin, cal.DataXMax = -5, 5
	cal.DataYMin, cal.DataYMax = 0.1, 1000
	cal.YLog = true
	cal.SetSecondaryY(0, 100, false)

	pool := dataset.NewPool(2)
	pool[0].AddPoint(geometry.NewPoint2D(1, 2))
	pool[0].AddPoint(geometry.NewPoint2D(3, 4))
	pool[1].Visible = false
	pool[1].SecondaryY = true

	p := Snapshot("Experiment", "time (s)", "signal", cal, pool)
	path := filepath.Join(t.TempDir(), "exp.gdproj")
	require.NoError(t, p.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Experiment", loaded.Title)
	assert.Equal(t, "time (s)", loaded.XLabel)
	assert.True(t, loaded.YLog)
	require.NotNil(t, loaded.Y2Max)
	assert.Equal(t, 100.0, *loaded.Y2Max)
	require.Len(t, loaded.Datasets, 2)
	assert.Equal(t, []geometry.Point2D{{X: 1, Y: 2}, {X: 3, Y: 4}}, loaded.Datasets[0].Points)
	assert.False(t, loaded.Datasets[1].Visible)
	assert.True(t, loaded.Datasets[1].SecondaryY)
}

func TestRestore(t *testing.T) {
	p := New("t")
	p.XMin, p.XMax = 2, 20
	p.XLog = true
	p.Datasets = []DatasetRecord{
		{Name: "alpha", Color: "#E69F00", Visible: true, Points: []geometry.Point2D{{X: 1, Y: 1}}},
	}

	cal := calibration.New()
	pool := dataset.NewPool(2)
	pool[1].AddPoint(geometry.NewPoint2D(9, 9))

	p.Restore(cal, pool)

	assert.Equal(t, 2.0, cal.DataXMin)
	assert.Equal(t, 20.0, cal.DataXMax)
	assert.True(t, cal.XLog)
	assert.False(t, cal.HasSecondaryY())

	assert.Equal(t, "alpha", pool[0].Name)
	assert.Equal(t, "#E69F00", pool[0].HexColor())
	assert.Equal(t, 1, pool[0].Len())
	assert.Zero(t, pool[1].Len(), "pool entries without a record are cleared")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.gdproj"))
	assert.Error(t, err)
}

func TestImagePathRelative(t *testing.T) {
	p := New("t")
	projPath := "/data/projects/exp.gdproj"
	p.SetImage(projPath, "/data/projects/images/plot.png")
	assert.Equal(t, filepath.Join("images", "plot.png"), p.ImagePath)
	assert.Equal(t, filepath.Join("/data/projects", "images", "plot.png"), p.GetImagePath(projPath))

	assert.Empty(t, New("t").GetImagePath(projPath))
}
