package oifits

import "math"

const radToDeg = 180 / math.Pi

// VisIterator lazily enumerates (table, record, channel) positions across
// every OI_VIS table of a dataset, applying a FilterSpec (spec.md §4.6.2).
type VisIterator struct {
	d      *Dataset
	filter FilterSpec
	ti, ri, wi int
}

// NewVisIterator returns a VisIterator positioned before the first
// position.
func NewVisIterator(d *Dataset, f FilterSpec) *VisIterator {
	return &VisIterator{d: d, filter: f, wi: -1}
}

// Table returns the VIS table of the current position.
func (it *VisIterator) Table() *VisTable { return it.d.Vis[it.ti] }

// Record returns the VisRecord of the current position.
func (it *VisIterator) Record() *VisRecord { return &it.Table().Records[it.ri] }

// Channel returns the current channel index.
func (it *VisIterator) Channel() int { return it.wi }

// UV returns the current position's (u/λ, v/λ) pair.
func (it *VisIterator) UV() (u, v float64) {
	lambda, ok := it.wavelength()
	if !ok || lambda == 0 {
		return math.NaN(), math.NaN()
	}
	r := it.Record()
	return r.UCoord / lambda, r.VCoord / lambda
}

func (it *VisIterator) wavelength() (float64, bool) {
	w, ok := it.d.WavelengthByName(it.Table().InsName)
	if !ok || it.wi >= w.NWave {
		return 0, false
	}
	return w.EffWave[it.wi], true
}

// Next advances the cursor and reports whether a passing position was
// found (spec.md §4.6.2).
func (it *VisIterator) Next() bool {
	for it.advance() {
		if it.accepts() {
			return true
		}
	}
	return false
}

func (it *VisIterator) advance() bool {
	for it.ti < len(it.d.Vis) {
		tbl := it.d.Vis[it.ti]
		if len(tbl.Records) == 0 || tbl.NWave == 0 {
			it.ti, it.ri, it.wi = it.ti+1, 0, -1
			continue
		}
		it.wi++
		if it.wi >= tbl.NWave {
			it.wi = 0
			it.ri++
		}
		if it.ri >= len(tbl.Records) {
			it.ti, it.ri, it.wi = it.ti+1, 0, -1
			continue
		}
		return true
	}
	return false
}

func (it *VisIterator) accepts() bool {
	f := &it.filter
	tbl := it.Table()
	if !globMatch(f.ArrName, tbl.ArrName) || !globMatch(f.InsName, tbl.InsName) || !globMatch(f.CorrName, tbl.CorrName) {
		return false
	}
	r := it.Record()
	if f.TargetID != AbsentInt && r.TargetID != f.TargetID {
		return false
	}
	if !inRange(r.MJD, f.MJDRange) {
		return false
	}
	bas := math.Hypot(r.UCoord, r.VCoord)
	if !inRange(bas, f.BasRange) {
		return false
	}
	if !f.AcceptFlagged && r.Flag[it.wi] {
		return false
	}
	if lambda, ok := it.wavelength(); ok {
		if !inRange(lambda, f.WaveRange) {
			return false
		}
		if lambda != 0 && !inRange(bas/lambda, f.UVRadRange) {
			return false
		}
	}
	if f.AcceptVis {
		if !inRange(r.VisAmp[it.wi]/r.VisAmpErr[it.wi], f.SNRRange) {
			return false
		}
		if !inRange(radToDeg/r.VisPhiErr[it.wi], f.SNRRange) {
			return false
		}
	}
	return true
}

// Vis2Iterator lazily enumerates positions across every OI_VIS2 table.
type Vis2Iterator struct {
	d      *Dataset
	filter FilterSpec
	ti, ri, wi int
}

func NewVis2Iterator(d *Dataset, f FilterSpec) *Vis2Iterator {
	return &Vis2Iterator{d: d, filter: f, wi: -1}
}

func (it *Vis2Iterator) Table() *Vis2Table   { return it.d.Vis2[it.ti] }
func (it *Vis2Iterator) Record() *Vis2Record { return &it.Table().Records[it.ri] }
func (it *Vis2Iterator) Channel() int        { return it.wi }

func (it *Vis2Iterator) UV() (u, v float64) {
	lambda, ok := it.wavelength()
	if !ok || lambda == 0 {
		return math.NaN(), math.NaN()
	}
	r := it.Record()
	return r.UCoord / lambda, r.VCoord / lambda
}

func (it *Vis2Iterator) wavelength() (float64, bool) {
	w, ok := it.d.WavelengthByName(it.Table().InsName)
	if !ok || it.wi >= w.NWave {
		return 0, false
	}
	return w.EffWave[it.wi], true
}

func (it *Vis2Iterator) Next() bool {
	for it.advance() {
		if it.accepts() {
			return true
		}
	}
	return false
}

func (it *Vis2Iterator) advance() bool {
	for it.ti < len(it.d.Vis2) {
		tbl := it.d.Vis2[it.ti]
		if len(tbl.Records) == 0 || tbl.NWave == 0 {
			it.ti, it.ri, it.wi = it.ti+1, 0, -1
			continue
		}
		it.wi++
		if it.wi >= tbl.NWave {
			it.wi = 0
			it.ri++
		}
		if it.ri >= len(tbl.Records) {
			it.ti, it.ri, it.wi = it.ti+1, 0, -1
			continue
		}
		return true
	}
	return false
}

func (it *Vis2Iterator) accepts() bool {
	f := &it.filter
	tbl := it.Table()
	if !globMatch(f.ArrName, tbl.ArrName) || !globMatch(f.InsName, tbl.InsName) || !globMatch(f.CorrName, tbl.CorrName) {
		return false
	}
	r := it.Record()
	if f.TargetID != AbsentInt && r.TargetID != f.TargetID {
		return false
	}
	if !inRange(r.MJD, f.MJDRange) {
		return false
	}
	bas := math.Hypot(r.UCoord, r.VCoord)
	if !inRange(bas, f.BasRange) {
		return false
	}
	if !f.AcceptFlagged && r.Flag[it.wi] {
		return false
	}
	if lambda, ok := it.wavelength(); ok {
		if !inRange(lambda, f.WaveRange) {
			return false
		}
		if lambda != 0 && !inRange(bas/lambda, f.UVRadRange) {
			return false
		}
	}
	if f.AcceptVis2 && !inRange(r.Vis2Data[it.wi]/r.Vis2Err[it.wi], f.SNRRange) {
		return false
	}
	return true
}

// T3Iterator lazily enumerates positions across every OI_T3 table.
type T3Iterator struct {
	d      *Dataset
	filter FilterSpec
	ti, ri, wi int
}

func NewT3Iterator(d *Dataset, f FilterSpec) *T3Iterator {
	return &T3Iterator{d: d, filter: f, wi: -1}
}

func (it *T3Iterator) Table() *T3Table   { return it.d.T3[it.ti] }
func (it *T3Iterator) Record() *T3Record { return &it.Table().Records[it.ri] }
func (it *T3Iterator) Channel() int      { return it.wi }

// UV returns the (u1/λ, v1/λ) and (u2/λ, v2/λ) pairs of the current
// position; the third (AC) baseline is their negated sum.
func (it *T3Iterator) UV() (uv1, uv2 [2]float64) {
	lambda, ok := it.wavelength()
	if !ok || lambda == 0 {
		return [2]float64{math.NaN(), math.NaN()}, [2]float64{math.NaN(), math.NaN()}
	}
	r := it.Record()
	return [2]float64{r.U1Coord / lambda, r.V1Coord / lambda}, [2]float64{r.U2Coord / lambda, r.V2Coord / lambda}
}

func (it *T3Iterator) wavelength() (float64, bool) {
	w, ok := it.d.WavelengthByName(it.Table().InsName)
	if !ok || it.wi >= w.NWave {
		return 0, false
	}
	return w.EffWave[it.wi], true
}

func (it *T3Iterator) Next() bool {
	for it.advance() {
		if it.accepts() {
			return true
		}
	}
	return false
}

func (it *T3Iterator) advance() bool {
	for it.ti < len(it.d.T3) {
		tbl := it.d.T3[it.ti]
		if len(tbl.Records) == 0 || tbl.NWave == 0 {
			it.ti, it.ri, it.wi = it.ti+1, 0, -1
			continue
		}
		it.wi++
		if it.wi >= tbl.NWave {
			it.wi = 0
			it.ri++
		}
		if it.ri >= len(tbl.Records) {
			it.ti, it.ri, it.wi = it.ti+1, 0, -1
			continue
		}
		return true
	}
	return false
}

func (it *T3Iterator) accepts() bool {
	f := &it.filter
	tbl := it.Table()
	if !globMatch(f.ArrName, tbl.ArrName) || !globMatch(f.InsName, tbl.InsName) || !globMatch(f.CorrName, tbl.CorrName) {
		return false
	}
	r := it.Record()
	if f.TargetID != AbsentInt && r.TargetID != f.TargetID {
		return false
	}
	if !inRange(r.MJD, f.MJDRange) {
		return false
	}
	ab, bc, ac := r.Baselines()
	basAB, basBC, basAC := math.Hypot(ab[0], ab[1]), math.Hypot(bc[0], bc[1]), math.Hypot(ac[0], ac[1])
	if !inRange(basAB, f.BasRange) || !inRange(basBC, f.BasRange) || !inRange(basAC, f.BasRange) {
		return false
	}
	if !f.AcceptFlagged && r.Flag[it.wi] {
		return false
	}
	if lambda, ok := it.wavelength(); ok {
		if !inRange(lambda, f.WaveRange) {
			return false
		}
		if lambda != 0 {
			if !inRange(basAB/lambda, f.UVRadRange) || !inRange(basBC/lambda, f.UVRadRange) || !inRange(basAC/lambda, f.UVRadRange) {
				return false
			}
		}
	}
	if f.AcceptT3Amp && !inRange(r.T3Amp[it.wi]/r.T3AmpErr[it.wi], f.SNRRange) {
		return false
	}
	if f.AcceptT3Phi && !inRange(radToDeg/r.T3PhiErr[it.wi], f.SNRRange) {
		return false
	}
	return true
}
