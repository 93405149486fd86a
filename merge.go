package oifits

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// maxHeaderNameLen bounds a FITS header string-keyword value; past this
// length the collision-rename rule falls back to a generic name instead
// of appending "_NNN" (spec.md §4.5 "if the base name is too long to
// extend, use a generic ... pattern").
const maxHeaderNameLen = 68

// Merge combines an ordered list of input Datasets into a single output
// Dataset, deduplicating ARRAY/WAVELENGTH tables by content equality,
// always appending CORR tables, and rewriting every foreign key in the
// copied data tables (spec.md §4.5).
func Merge(inputs []*Dataset) (*Dataset, error) {
	if len(inputs) < 2 {
		return nil, fmt.Errorf("merge: need at least 2 input datasets, got %d", len(inputs))
	}

	out := NewDataset()
	out.Target.Targets = nil

	mergeHeader(out, inputs)
	targetIDMaps := mergeTargets(out, inputs)

	arrRenames := make([]map[string]string, len(inputs))
	for i, in := range inputs {
		arrRenames[i] = make(map[string]string)
		for _, a := range in.Arrays {
			newName := mergeArray(out, a)
			arrRenames[i][a.ArrName] = newName
		}
	}

	insRenames := make([]map[string]string, len(inputs))
	for i, in := range inputs {
		insRenames[i] = make(map[string]string)
		for _, w := range in.Wavelengths {
			newName := mergeWavelength(out, w)
			insRenames[i][w.InsName] = newName
		}
	}

	corrRenames := make([]map[string]string, len(inputs))
	for i, in := range inputs {
		corrRenames[i] = make(map[string]string)
		for _, c := range in.Corrs {
			cp := c.Clone()
			cp.CorrName = renameOnCollision(c.CorrName, corrNames(out), "corr", len(out.Corrs))
			out.Corrs = append(out.Corrs, cp)
			corrRenames[i][c.CorrName] = cp.CorrName
		}
	}

	for i, in := range inputs {
		rewrite := func(arrname, insname, corrname string) (string, string, string) {
			if arrname != "" {
				arrname = arrRenames[i][arrname]
			}
			if insname != "" {
				insname = insRenames[i][insname]
			}
			if corrname != "" {
				corrname = corrRenames[i][corrname]
			}
			return arrname, insname, corrname
		}
		newID := func(origID int) int {
			tg, ok := in.Target.ByID(origID)
			if !ok {
				return origID
			}
			if id, ok := targetIDMaps[i][tg.Target]; ok {
				return id
			}
			return origID
		}

		for _, ip := range in.Inspols {
			cp := ip.Clone()
			cp.UpgradeToRev2()
			cp.ArrName, _, _ = rewrite(cp.ArrName, "", "")
			for k := range cp.Records {
				cp.Records[k].TargetID = newID(cp.Records[k].TargetID)
				_, cp.Records[k].InsName, _ = rewrite("", cp.Records[k].InsName, "")
			}
			out.Inspols = append(out.Inspols, cp)
		}
		for _, v := range in.Vis {
			cp := v.Clone()
			cp.UpgradeToRev2()
			cp.ArrName, cp.InsName, cp.CorrName = rewrite(cp.ArrName, cp.InsName, cp.CorrName)
			for k := range cp.Records {
				cp.Records[k].TargetID = newID(cp.Records[k].TargetID)
			}
			out.Vis = append(out.Vis, cp)
		}
		for _, v2 := range in.Vis2 {
			cp := v2.Clone()
			cp.UpgradeToRev2()
			cp.ArrName, cp.InsName, cp.CorrName = rewrite(cp.ArrName, cp.InsName, cp.CorrName)
			for k := range cp.Records {
				cp.Records[k].TargetID = newID(cp.Records[k].TargetID)
			}
			out.Vis2 = append(out.Vis2, cp)
		}
		for _, t3 := range in.T3 {
			cp := t3.Clone()
			cp.UpgradeToRev2()
			cp.ArrName, cp.InsName, cp.CorrName = rewrite(cp.ArrName, cp.InsName, cp.CorrName)
			for k := range cp.Records {
				cp.Records[k].TargetID = newID(cp.Records[k].TargetID)
			}
			out.T3 = append(out.T3, cp)
		}
		for _, fl := range in.Flux {
			cp := fl.Clone()
			cp.UpgradeToRev2()
			cp.ArrName, cp.InsName, _ = rewrite(cp.ArrName, cp.InsName, "")
			for k := range cp.Records {
				cp.Records[k].TargetID = newID(cp.Records[k].TargetID)
			}
			out.Flux = append(out.Flux, cp)
		}
	}

	out.RebuildIndex()
	return out, nil
}

// mergeHeader sets the output date-obs to the earliest input (as MJD) and
// every other mandatory/optional keyword to the common input value, or
// "MULTIPLE" on disagreement (spec.md §4.5 "Header").
func mergeHeader(out *Dataset, inputs []*Dataset) {
	if len(inputs) == 0 {
		return
	}
	best := inputs[0].Header.DateObs
	bestMJD := math.Inf(1)
	for _, in := range inputs {
		mjd, ok := dateObsToMJD(in.Header.DateObs)
		if !ok {
			continue
		}
		if mjd < bestMJD {
			bestMJD = mjd
			best = in.Header.DateObs
		}
	}

	field := func(get func(Header) string) string {
		vals := lo.Map(inputs, func(in *Dataset, _ int) string { return get(in.Header) })
		return mergeField(vals)
	}
	out.Header = Header{
		Origin:   field(func(h Header) string { return h.Origin }),
		Date:     field(func(h Header) string { return h.Date }),
		DateObs:  best,
		Content:  "OIFITS2",
		Telescop: field(func(h Header) string { return h.Telescop }),
		Instrume: field(func(h Header) string { return h.Instrume }),
		Observer: field(func(h Header) string { return h.Observer }),
		InsMode:  field(func(h Header) string { return h.InsMode }),
		Object:   field(func(h Header) string { return h.Object }),
		Referenc: field(func(h Header) string { return h.Referenc }),
		Author:   field(func(h Header) string { return h.Author }),
		ProgID:   field(func(h Header) string { return h.ProgID }),
		ProcSoft: field(func(h Header) string { return h.ProcSoft }),
		ObsTech:  field(func(h Header) string { return h.ObsTech }),
	}
}

func mergeField(values []string) string {
	var nonEmpty []string
	for _, v := range values {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	first := nonEmpty[0]
	for _, v := range nonEmpty[1:] {
		if v != first {
			return "MULTIPLE"
		}
	}
	return first
}

// dateObsToMJD parses a DATE-OBS string of the form "YYYY-MM-DD".
func dateObsToMJD(s string) (float64, bool) {
	var y, m, d int
	if n, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); n != 3 || err != nil {
		return 0, false
	}
	return Date2MJD(y, m, d), true
}

// mergeTargets builds the output TARGET table by first-occurrence name,
// assigning sequential ids from 1, and returns one input-target-name→
// output-id map per input (spec.md §4.5 "TARGET table").
func mergeTargets(out *Dataset, inputs []*Dataset) []map[string]int {
	nameToID := make(map[string]int)
	maps := make([]map[string]int, len(inputs))
	maxRev := 1
	for i, in := range inputs {
		maps[i] = make(map[string]int)
		if in.Target == nil {
			continue
		}
		if in.Target.Revision > maxRev {
			maxRev = in.Target.Revision
		}
		for _, tg := range in.Target.Targets {
			id, seen := nameToID[tg.Target]
			if !seen {
				id = len(out.Target.Targets) + 1
				nameToID[tg.Target] = id
				cp := tg
				cp.TargetID = id
				out.Target.Targets = append(out.Target.Targets, cp)
			}
			maps[i][tg.Target] = id
		}
	}
	out.Target.Revision = maxRev
	return maps
}

// mergeArray searches out.Arrays for a content-equal table (spec.md §4.5.1
// "Content equality for ARRAY"); returns the name to use in the rewrite
// (either the matched output table's name, or a freshly appended copy's
// possibly-renamed name).
func mergeArray(out *Dataset, a *ArrayTable) string {
	for _, existing := range out.Arrays {
		if arraysContentEqual(a, existing) {
			return existing.ArrName
		}
	}
	cp := a.Clone()
	cp.ArrName = renameOnCollision(a.ArrName, arrNames(out), "array", len(out.Arrays))
	out.Arrays = append(out.Arrays, cp)
	return cp.ArrName
}

func arraysContentEqual(a, b *ArrayTable) bool {
	const tol = 1e-10
	const diamTol = 1e-3
	if !closeVec3(a.ArrayXYZ, b.ArrayXYZ, tol) {
		return false
	}
	if len(a.Elements) != len(b.Elements) {
		return false
	}
	checkFOV := a.Revision >= 2 || b.Revision >= 2
	for _, ea := range a.Elements {
		eb, ok := b.StationByIndex(ea.StaIndex)
		if !ok {
			return false
		}
		if !closeVec3(ea.StaXYZ, eb.StaXYZ, tol) {
			return false
		}
		if math.Abs(ea.Diameter-eb.Diameter) > diamTol {
			return false
		}
		if checkFOV {
			if math.Abs(ea.FOV-eb.FOV) > tol || ea.FovType != eb.FovType {
				return false
			}
		}
	}
	return true
}

func closeVec3(a, b [3]float64, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// mergeWavelength searches out.Wavelengths for a content-equal table
// (spec.md §4.5.1 "Content equality for WAVELENGTH").
func mergeWavelength(out *Dataset, w *WavelengthTable) string {
	for _, existing := range out.Wavelengths {
		if wavelengthsContentEqual(w, existing) {
			return existing.InsName
		}
	}
	cp := w.Clone()
	cp.InsName = renameOnCollision(w.InsName, insNames(out), "ins", len(out.Wavelengths))
	out.Wavelengths = append(out.Wavelengths, cp)
	return cp.InsName
}

func wavelengthsContentEqual(a, b *WavelengthTable) bool {
	const tol = 1e-10
	if a.NWave != b.NWave {
		return false
	}
	for i := range a.EffWave {
		if math.Abs(a.EffWave[i]-b.EffWave[i]) > tol || math.Abs(a.EffBand[i]-b.EffBand[i]) > tol {
			return false
		}
	}
	return true
}

func arrNames(d *Dataset) map[string]bool {
	m := make(map[string]bool, len(d.Arrays))
	for _, a := range d.Arrays {
		m[a.ArrName] = true
	}
	return m
}

func insNames(d *Dataset) map[string]bool {
	m := make(map[string]bool, len(d.Wavelengths))
	for _, w := range d.Wavelengths {
		m[w.InsName] = true
	}
	return m
}

func corrNames(d *Dataset) map[string]bool {
	m := make(map[string]bool, len(d.Corrs))
	for _, c := range d.Corrs {
		m[c.CorrName] = true
	}
	return m
}

// renameOnCollision implements spec.md §4.5's collision-rename rule:
// append "_NNN" (NNN = count+1) on a name clash, falling back to a
// generic "<kind>NNN" pattern if the extended name would overflow a FITS
// header string keyword.
func renameOnCollision(base string, existing map[string]bool, kind string, count int) string {
	if !existing[base] {
		return base
	}
	suffix := fmt.Sprintf("_%03d", count+1)
	if len(base)+len(suffix) <= maxHeaderNameLen {
		return base + suffix
	}
	return fmt.Sprintf("%s%03d", kind, count+1)
}
