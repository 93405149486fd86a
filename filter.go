package oifits

import (
	"math"
	"path/filepath"
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// FilterSpec is an immutable selection specification consumed by the VIS,
// VIS2 and T3 iterators (spec.md §4.6.1). Range fields are closed
// intervals [Lo, Hi]; a zero-value FilterSpec matches nothing useful, so
// callers should start from DefaultFilterSpec.
type FilterSpec struct {
	ArrName, InsName, CorrName string // glob patterns; "" matches all

	TargetID int // AbsentInt accepts all

	MJDRange   [2]float64
	BasRange   [2]float64
	WaveRange  [2]float64
	UVRadRange [2]float64
	SNRRange   [2]float64

	AcceptFlagged bool

	AcceptVis   bool
	AcceptVis2  bool
	AcceptT3Amp bool
	AcceptT3Phi bool
}

// DefaultFilterSpec returns a FilterSpec that accepts every unflagged
// channel (spec.md §8 "Iterator completeness").
func DefaultFilterSpec() FilterSpec {
	unbounded := [2]float64{negInf, posInf}
	return FilterSpec{
		TargetID:      AbsentInt,
		MJDRange:      unbounded,
		BasRange:      unbounded,
		WaveRange:     unbounded,
		UVRadRange:    unbounded,
		SNRRange:      unbounded,
		AcceptFlagged: false,
		AcceptVis:     true,
		AcceptVis2:    true,
		AcceptT3Amp:   true,
		AcceptT3Phi:   true,
	}
}

func inRange(v float64, r [2]float64) bool { return v >= r[0] && v <= r[1] }

// globMatch reports whether name satisfies pattern, an empty pattern
// matching everything (spec.md §4.6.1 "empty pattern matches all"). The
// pattern is compiled fresh on each call, matching the lifetime the spec
// describes for iterator glob patterns.
func globMatch(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	ok, err := filepath.Match(pattern, name)
	return err == nil && ok
}
