// Package snap forces point X coordinates onto a configured set of target
// values.
package snap

import (
	"math"
	"sort"

	"graph-digitizer/pkg/geometry"
)

// Snapper holds a sorted, deduplicated set of target X values. By default
// every input snaps to the nearest target once any target is configured;
// there is no distance cutoff. A relative-tolerance gate can be enabled
// explicitly, in which case inputs with no target inside the tolerance are
// returned unchanged.
type Snapper struct {
	targets []float64

	tolerance    float64
	useTolerance bool
}

// New creates a Snapper with no targets and no tolerance gate.
func New() *Snapper {
	return &Snapper{}
}

// SetTargets replaces the target set. The values are copied, sorted, and
// deduplicated.
func (s *Snapper) SetTargets(values []float64) {
	s.targets = s.targets[:0]
	for _, v := range values {
		s.insert(v)
	}
}

// AddTarget adds a single target value, keeping the set sorted and
// deduplicated.
func (s *Snapper) AddTarget(x float64) {
	s.insert(x)
}

// RemoveTarget removes a target value, reporting whether it was present.
func (s *Snapper) RemoveTarget(x float64) bool {
	i := sort.SearchFloat64s(s.targets, x)
	if i < len(s.targets) && s.targets[i] == x {
		s.targets = append(s.targets[:i], s.targets[i+1:]...)
		return true
	}
	return false
}

// Clear removes all targets.
func (s *Snapper) Clear() {
	s.targets = s.targets[:0]
}

// Targets returns a copy of the configured targets in ascending order.
func (s *Snapper) Targets() []float64 {
	out := make([]float64, len(s.targets))
	copy(out, s.targets)
	return out
}

// SetTolerance enables the optional tolerance gate. A snap only happens
// when |x - target| <= rel * max(1, |x|). Negative values panic; they
// indicate a caller bug.
func (s *Snapper) SetTolerance(rel float64) {
	if rel < 0 {
		panic("snap: negative tolerance")
	}
	s.tolerance = rel
	s.useTolerance = true
}

// ClearTolerance restores the default nearest-always behavior.
func (s *Snapper) ClearTolerance() {
	s.tolerance = 0
	s.useTolerance = false
}

// SnapX returns the configured target nearest to x, or x itself when no
// targets are configured. Exact ties resolve to the smaller of the two
// equidistant targets, since the scan runs in ascending order. With the
// tolerance gate enabled, x is returned unchanged when the nearest target
// lies outside the tolerance.
func (s *Snapper) SnapX(x float64) float64 {
	if len(s.targets) == 0 {
		return x
	}

	best := s.targets[0]
	bestDist := math.Abs(x - best)
	for _, t := range s.targets[1:] {
		if d := math.Abs(x - t); d < bestDist {
			best = t
			bestDist = d
		}
	}

	if s.useTolerance && bestDist > s.tolerance*math.Max(1.0, math.Abs(x)) {
		return x
	}
	return best
}

// SnapPoint returns a new point with X snapped and Y unchanged. The input
// is never mutated.
func (s *Snapper) SnapPoint(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{X: s.SnapX(p.X), Y: p.Y}
}

// insert adds v in sorted position unless already present.
func (s *Snapper) insert(v float64) {
	i := sort.SearchFloat64s(s.targets, v)
	if i < len(s.targets) && s.targets[i] == v {
		return
	}
	s.targets = append(s.targets, 0)
	copy(s.targets[i+1:], s.targets[i:])
	s.targets[i] = v
}
