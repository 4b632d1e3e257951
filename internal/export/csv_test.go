package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graph-digitizer/internal/dataset"
	"graph-digitizer/pkg/geometry"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSVWideFormat(t *testing.T) {
	a := dataset.New("alpha", "#0072B2")
	a.AddPoint(geometry.NewPoint2D(1, 10))
	a.AddPoint(geometry.NewPoint2D(2, 20))

	b := dataset.New("beta", "#E69F00")
	b.AddPoint(geometry.NewPoint2D(2, 200))
	b.AddPoint(geometry.NewPoint2D(3, 300))

	empty := dataset.New("unused", "#009E73")

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, []*dataset.Dataset{a, empty, b}))

	records := readCSV(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"x", "alpha", "beta"}, records[0], "empty datasets are dropped")
	assert.Equal(t, []string{"1", "10", ""}, records[1])
	assert.Equal(t, []string{"2", "20", "200"}, records[2])
	assert.Equal(t, []string{"3", "", "300"}, records[3])
}

func TestWriteCSVMergesCloseX(t *testing.T) {
	a := dataset.New("a", "#0072B2")
	a.AddPoint(geometry.NewPoint2D(1.0, 10))

	b := dataset.New("b", "#E69F00")
	b.AddPoint(geometry.NewPoint2D(1.0+1e-10, 20))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, []*dataset.Dataset{a, b}))

	records := readCSV(t, path)
	// The two X values are within tolerance, so b's point lands in the
	// first row; the second distinct X still gets its own (sparse) row.
	assert.Equal(t, []string{"1", "10", "20"}, records[1])
}

func TestWriteCSVSanitizesHeader(t *testing.T) {
	a := dataset.New("line\nbreak", "#0072B2")
	a.AddPoint(geometry.NewPoint2D(1, 1))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, []*dataset.Dataset{a}))

	records := readCSV(t, path)
	assert.Equal(t, "line break", records[0][1])
}

func TestWriteCSVAllEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, []*dataset.Dataset{dataset.New("a", "#0072B2")}))

	records := readCSV(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"x"}, records[0])
}

func TestWriteCSVBadPath(t *testing.T) {
	a := dataset.New("a", "#0072B2")
	a.AddPoint(geometry.NewPoint2D(1, 1))
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), []*dataset.Dataset{a})
	assert.Error(t, err)
}
