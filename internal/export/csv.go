// Package export writes digitized datasets to interchange formats.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"graph-digitizer/internal/dataset"
)

// xMergeTolerance treats X values closer than this as the same column key,
// absorbing float noise from pixel-to-data conversion.
const xMergeTolerance = 1e-8

// WriteCSV exports datasets to path in wide format: the first column holds
// the sorted distinct X values, followed by one Y column per non-empty
// dataset. Cells are blank where a dataset has no value for an X.
func WriteCSV(path string, datasets []*dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	if err := writeWide(f, datasets); err != nil {
		return err
	}
	return f.Close()
}

func writeWide(f *os.File, datasets []*dataset.Dataset) error {
	// Datasets without points are left out entirely.
	var filtered []*dataset.Dataset
	for _, ds := range datasets {
		if ds.Len() > 0 {
			filtered = append(filtered, ds)
		}
	}

	// Distinct sorted X values across all exported datasets.
	seen := map[float64]bool{}
	var xs []float64
	for _, ds := range filtered {
		for _, p := range ds.Points() {
			if !seen[p.X] {
				seen[p.X] = true
				xs = append(xs, p.X)
			}
		}
	}
	sort.Float64s(xs)

	// x -> dataset index -> y
	rows := make(map[float64]map[int]float64)
	for dsIdx, ds := range filtered {
		for _, p := range ds.Points() {
			key := matchX(xs, p.X)
			cells, ok := rows[key]
			if !ok {
				cells = make(map[int]float64)
				rows[key] = cells
			}
			cells[dsIdx] = p.Y
		}
	}

	w := csv.NewWriter(f)

	header := make([]string, 0, len(filtered)+1)
	header = append(header, "x")
	for _, ds := range filtered {
		header = append(header, sanitizeHeader(ds.Name))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(filtered)+1)
	for _, x := range xs {
		record[0] = fmt.Sprintf("%.10g", x)
		cells := rows[x]
		for i := range filtered {
			if y, ok := cells[i]; ok {
				record[i+1] = fmt.Sprintf("%.10g", y)
			} else {
				record[i+1] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// matchX finds the existing X key within the merge tolerance of x. The
// list always contains x itself, so a match is guaranteed.
func matchX(sorted []float64, x float64) float64 {
	i := sort.SearchFloat64s(sorted, x-xMergeTolerance)
	for ; i < len(sorted); i++ {
		d := sorted[i] - x
		if d > xMergeTolerance {
			break
		}
		if d >= -xMergeTolerance {
			return sorted[i]
		}
	}
	return x
}

// sanitizeHeader flattens control characters out of a dataset name so the
// header stays a single line.
func sanitizeHeader(name string) string {
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	return strings.TrimSpace(name)
}
