package oifits

// FluxRecord is one per-target spectrally-resolved flux measurement
// (spec.md §3.1).
type FluxRecord struct {
	TargetID int
	MJD      float64
	IntTime  float64

	FluxData []float64
	FluxErr  []float64
	Flag     []bool

	// Present only when the owning table is uncalibrated (CalStat='U').
	StaIndex int
}

// FluxTable keys a calibration-status tag, optional field-of-view and
// optional arrname/sta-index when uncalibrated (spec.md §3.1).
type FluxTable struct {
	Revision int
	InsName  string
	NWave    int

	CalStat CalStat
	FOV     float64
	FovType FovType

	// Mandatory when CalStat == CalStatUncalibrated, absent otherwise
	// (spec.md invariant 9).
	ArrName string

	// Set when EXTNAME == "OI_SPECTRUM" (the revision-1 predecessor name
	// of OI_FLUX; SPEC_FULL.md §4 models it as a thin alias of FluxTable).
	IsSpectrum bool

	Records []FluxRecord
}

// NewFluxTable allocates a FluxTable of n records, each with nwave channels.
func NewFluxTable(n, nwave int) *FluxTable {
	t := &FluxTable{Revision: 2, NWave: nwave, Records: make([]FluxRecord, n)}
	for i := range t.Records {
		r := &t.Records[i]
		r.TargetID = AbsentInt
		r.StaIndex = AbsentInt
		r.MJD = AbsentReal()
		r.IntTime = AbsentReal()
		r.FluxData = make([]float64, nwave)
		r.FluxErr = make([]float64, nwave)
		r.Flag = make([]bool, nwave)
	}
	return t
}

func (t *FluxTable) Clone() *FluxTable {
	cp := *t
	cp.Records = make([]FluxRecord, len(t.Records))
	for i, r := range t.Records {
		nr := r
		nr.FluxData = append([]float64(nil), r.FluxData...)
		nr.FluxErr = append([]float64(nil), r.FluxErr...)
		nr.Flag = append([]bool(nil), r.Flag...)
		cp.Records[i] = nr
	}
	return &cp
}

// UpgradeToRev2 stamps the revision; FLUX introduces no new mandatory
// keywords at rev 2 beyond what calibration status already requires.
func (t *FluxTable) UpgradeToRev2() { t.Revision = 2 }
