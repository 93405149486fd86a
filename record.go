// Package oifits reads, writes, merges, filters and validates optical/
// infrared interferometry datasets stored as FITS binary-table files
// conforming to the OIFITS exchange standard (revisions 1 and 2).
package oifits

import "math"

// AbsentInt is the sentinel for an absent integer field (spec.md §4.1).
const AbsentInt = -1

// AbsentReal returns the sentinel for an absent real-valued field.
func AbsentReal() float64 { return math.NaN() }

func isAbsentReal(v float64) bool { return math.IsNaN(v) }

// Frame is the ARRAY table's reference-frame tag.
type Frame string

const (
	FrameGeocentric Frame = "GEOCENTRIC"
	FrameSky        Frame = "SKY"
)

// FovType is the field-of-view model tag introduced at revision 2.
type FovType string

const (
	FovUnset  FovType = ""
	FovFWHM   FovType = "FWHM"
	FovRadius FovType = "RADIUS"
)

// AmpType is the VIS table's amplitude-data type (revision 2).
type AmpType string

const (
	AmpUnset          AmpType = ""
	AmpAbsolute       AmpType = "absolute"
	AmpDifferential   AmpType = "differential"
	AmpCorrelatedFlux AmpType = "correlated flux"
)

// PhiType is the VIS table's phase-data type (revision 2).
type PhiType string

const (
	PhiUnset        PhiType = ""
	PhiAbsolute     PhiType = "absolute"
	PhiDifferential PhiType = "differential"
)

// CalStat is the FLUX table's calibration-status tag.
type CalStat byte

const (
	CalStatUnset       CalStat = 0
	CalStatCalibrated  CalStat = 'C'
	CalStatUncalibrated CalStat = 'U'
)

// Element is one station of an interferometric array (spec.md §3.1).
type Element struct {
	TelName  string
	StaName  string
	StaIndex int
	Diameter float64
	StaXYZ   [3]float64

	// Revision ≥ 2 only.
	FOV     float64
	FovType FovType
}

// ArrayTable is a named collection of Elements.
type ArrayTable struct {
	Revision  int
	ArrName   string
	FrameName Frame
	ArrayXYZ  [3]float64
	Elements  []Element
}

// NewArrayTable allocates an ArrayTable with n zero-valued Elements, each
// station index defaulted to AbsentInt (spec.md §4.1).
func NewArrayTable(n int) *ArrayTable {
	t := &ArrayTable{Revision: 2, Elements: make([]Element, n)}
	for i := range t.Elements {
		t.Elements[i].StaIndex = AbsentInt
		t.Elements[i].FovType = FovUnset
	}
	return t
}

// Clone deep-copies an ArrayTable (used by the merger, spec.md §4.2 "deep-copy").
func (t *ArrayTable) Clone() *ArrayTable {
	cp := *t
	cp.Elements = append([]Element(nil), t.Elements...)
	return &cp
}

// StationByIndex returns the Element with the given station index, or
// (Element{}, false) if absent (spec.md invariant 2).
func (t *ArrayTable) StationByIndex(idx int) (Element, bool) {
	for _, e := range t.Elements {
		if e.StaIndex == idx {
			return e, true
		}
	}
	return Element{}, false
}

// Target is one astronomical source (spec.md §3.1).
type Target struct {
	TargetID    int
	Target      string
	RAEp0       float64
	DecEp0      float64
	Equinox     float64
	RAErr       float64
	DecErr      float64
	SysVel      float64
	VelTypType  string
	VelTypDef   string
	PMRA        float64
	PMDec       float64
	PMRAErr     float64
	PMDecErr    float64
	Parallax    float64
	ParaErr     float64
	SpecTyp     string

	// Revision ≥ 2 only; empty string means absent.
	Category string
}

// TargetTable is the dataset's single TARGET table.
type TargetTable struct {
	Revision int
	Targets  []Target
}

// NewTargetTable allocates a TargetTable with n Targets whose TargetID,
// RAEp0, DecEp0, Equinox, SysVel, PMRA, PMDec and Parallax are set to their
// absent sentinels; every other field is zero.
func NewTargetTable(n int) *TargetTable {
	t := &TargetTable{Revision: 2, Targets: make([]Target, n)}
	for i := range t.Targets {
		t.Targets[i].TargetID = AbsentInt
		t.Targets[i].RAEp0 = AbsentReal()
		t.Targets[i].DecEp0 = AbsentReal()
		t.Targets[i].Equinox = AbsentReal()
		t.Targets[i].SysVel = AbsentReal()
		t.Targets[i].PMRA = AbsentReal()
		t.Targets[i].PMDec = AbsentReal()
		t.Targets[i].Parallax = AbsentReal()
	}
	return t
}

func (t *TargetTable) Clone() *TargetTable {
	cp := *t
	cp.Targets = append([]Target(nil), t.Targets...)
	return &cp
}

// ByID returns the Target with the given id, or (Target{}, false).
func (t *TargetTable) ByID(id int) (Target, bool) {
	for _, tg := range t.Targets {
		if tg.TargetID == id {
			return tg, true
		}
	}
	return Target{}, false
}

// WavelengthTable is a named spectral table (spec.md §3.1).
type WavelengthTable struct {
	Revision int
	InsName  string
	NWave    int
	EffWave  []float64
	EffBand  []float64
}

// NewWavelengthTable allocates a WavelengthTable for nwave channels.
func NewWavelengthTable(nwave int) *WavelengthTable {
	return &WavelengthTable{
		Revision: 2,
		NWave:    nwave,
		EffWave:  make([]float64, nwave),
		EffBand:  make([]float64, nwave),
	}
}

func (t *WavelengthTable) Clone() *WavelengthTable {
	cp := *t
	cp.EffWave = append([]float64(nil), t.EffWave...)
	cp.EffBand = append([]float64(nil), t.EffBand...)
	return &cp
}

// CorrTable is a named sparse correlation-matrix description (spec.md §3.1).
type CorrTable struct {
	Revision int
	CorrName string
	NData    int
	IIndx    []int32
	JIndx    []int32
	CorrVal  []float64
}

// NewCorrTable allocates a CorrTable with n nonzero entries.
func NewCorrTable(n int) *CorrTable {
	return &CorrTable{
		Revision: 1,
		IIndx:    make([]int32, n),
		JIndx:    make([]int32, n),
		CorrVal:  make([]float64, n),
	}
}

func (t *CorrTable) Clone() *CorrTable {
	cp := *t
	cp.IIndx = append([]int32(nil), t.IIndx...)
	cp.JIndx = append([]int32(nil), t.JIndx...)
	cp.CorrVal = append([]float64(nil), t.CorrVal...)
	return &cp
}

// Header is the OIFITS primary-header metadata (spec.md §3.1).
type Header struct {
	Origin   string
	Date     string
	DateObs  string
	Content  string
	Telescop string
	Instrume string
	Observer string
	InsMode  string
	Object   string

	// Optional.
	Referenc string
	Author   string
	ProgID   string
	ProcSoft string
	ObsTech  string
}

// Dataset is the root aggregate owning every table in the file (spec.md
// §3.1/§3.3). The three name-indexed maps are non-owning views rebuilt on
// read and by RebuildIndex; they must not be mutated directly.
type Dataset struct {
	Header Header

	Target *TargetTable

	Arrays      []*ArrayTable
	Wavelengths []*WavelengthTable
	Corrs       []*CorrTable
	Inspols     []*InspolTable
	Vis         []*VisTable
	Vis2        []*Vis2Table
	T3          []*T3Table
	Flux        []*FluxTable

	arrnameIdx map[string]*ArrayTable
	insnameIdx map[string]*WavelengthTable
	corrnameIdx map[string]*CorrTable

	// ReadWarnings accumulates the codec-level warnings from the most
	// recent ReadFITS call (checksum mismatches, revisions beyond what
	// this codec knows, nameless binary-table extensions; spec.md
	// §4.2.1). It is distinct from the validator's Report.
	ReadWarnings []string
}

// NewDataset returns an empty Dataset with a fresh, empty TARGET table.
func NewDataset() *Dataset {
	d := &Dataset{Target: &TargetTable{Revision: 2}}
	d.RebuildIndex()
	return d
}

// RebuildIndex recomputes the three name-indexed lookup maps from the
// current table lists (spec.md §3.3, §9 "rebuild on demand rather than
// maintaining incrementally").
func (d *Dataset) RebuildIndex() {
	d.arrnameIdx = make(map[string]*ArrayTable, len(d.Arrays))
	for _, a := range d.Arrays {
		if a.ArrName != "" {
			d.arrnameIdx[a.ArrName] = a
		}
	}
	d.insnameIdx = make(map[string]*WavelengthTable, len(d.Wavelengths))
	for _, w := range d.Wavelengths {
		if w.InsName != "" {
			d.insnameIdx[w.InsName] = w
		}
	}
	d.corrnameIdx = make(map[string]*CorrTable, len(d.Corrs))
	for _, c := range d.Corrs {
		if c.CorrName != "" {
			d.corrnameIdx[c.CorrName] = c
		}
	}
}

// ArrayByName resolves arrname through the dataset's lookup index
// (spec.md invariant 2).
func (d *Dataset) ArrayByName(name string) (*ArrayTable, bool) {
	a, ok := d.arrnameIdx[name]
	return a, ok
}

// WavelengthByName resolves insname through the dataset's lookup index
// (spec.md invariant 3).
func (d *Dataset) WavelengthByName(name string) (*WavelengthTable, bool) {
	w, ok := d.insnameIdx[name]
	return w, ok
}

// CorrByName resolves corrname through the dataset's lookup index
// (spec.md invariant 4).
func (d *Dataset) CorrByName(name string) (*CorrTable, bool) {
	c, ok := d.corrnameIdx[name]
	return c, ok
}

// CountData returns the total number of VIS, VIS2 and T3 records across
// every table of each kind (spec.md §4, testable property #4).
func (d *Dataset) CountData() (nvis, nvis2, nt3 int) {
	for _, t := range d.Vis {
		nvis += len(t.Records)
	}
	for _, t := range d.Vis2 {
		nvis2 += len(t.Records)
	}
	for _, t := range d.T3 {
		nt3 += len(t.Records)
	}
	return
}
