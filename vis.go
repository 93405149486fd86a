package oifits

// VisRecord is one complex-visibility measurement (spec.md §3.1).
type VisRecord struct {
	TargetID int
	Time     float64 // deprecated at revision >= 2, always written as zero
	MJD      float64
	IntTime  float64
	UCoord   float64
	VCoord   float64
	StaIndex [2]int

	VisAmp    []float64
	VisAmpErr []float64
	VisPhi    []float64
	VisPhiErr []float64
	Flag      []bool

	// Optional, presence tracked by the owning table's Use* flags.
	RVis       []float64
	RVisErr    []float64
	IVis       []float64
	IVisErr    []float64
	VisRefMap  [][]bool // nwave x nwave, present iff the table's UseVisRefMap

	CorrIndxVisAmp []int32
	CorrIndxVisPhi []int32
	CorrIndxRVis   []int32
	CorrIndxIVis   []int32
}

// VisTable is named by (arrname, insname, optional corrname) and carries
// an ordered sequence of VisRecord plus flags for which optional columns
// are populated (spec.md §3.1).
type VisTable struct {
	Revision int
	DateObs  string
	ArrName  string
	InsName  string
	CorrName string
	NWave    int

	AmpType  AmpType
	PhiType  PhiType
	AmpOrder int
	PhiOrder int
	AmpUnit  string

	UseComplex  bool // RVIS/IVIS columns present
	UseRefMap   bool // VISREFMAP column present
	UseCorrIndx bool // CORRINDX_* columns present (requires CorrName != "")

	Records []VisRecord
}

// NewVisTable allocates a VisTable of n records, each with nwave channels.
func NewVisTable(n, nwave int) *VisTable {
	t := &VisTable{Revision: 2, NWave: nwave, Records: make([]VisRecord, n)}
	for i := range t.Records {
		r := &t.Records[i]
		r.TargetID = AbsentInt
		r.StaIndex = [2]int{AbsentInt, AbsentInt}
		r.MJD = AbsentReal()
		r.IntTime = AbsentReal()
		r.UCoord = AbsentReal()
		r.VCoord = AbsentReal()
		r.VisAmp = make([]float64, nwave)
		r.VisAmpErr = make([]float64, nwave)
		r.VisPhi = make([]float64, nwave)
		r.VisPhiErr = make([]float64, nwave)
		r.Flag = make([]bool, nwave)
	}
	return t
}

func (t *VisTable) Clone() *VisTable {
	cp := *t
	cp.Records = make([]VisRecord, len(t.Records))
	for i, r := range t.Records {
		nr := r
		nr.VisAmp = append([]float64(nil), r.VisAmp...)
		nr.VisAmpErr = append([]float64(nil), r.VisAmpErr...)
		nr.VisPhi = append([]float64(nil), r.VisPhi...)
		nr.VisPhiErr = append([]float64(nil), r.VisPhiErr...)
		nr.Flag = append([]bool(nil), r.Flag...)
		if r.RVis != nil {
			nr.RVis = append([]float64(nil), r.RVis...)
			nr.RVisErr = append([]float64(nil), r.RVisErr...)
			nr.IVis = append([]float64(nil), r.IVis...)
			nr.IVisErr = append([]float64(nil), r.IVisErr...)
		}
		if r.VisRefMap != nil {
			nr.VisRefMap = make([][]bool, len(r.VisRefMap))
			for j, row := range r.VisRefMap {
				nr.VisRefMap[j] = append([]bool(nil), row...)
			}
		}
		if r.CorrIndxVisAmp != nil {
			nr.CorrIndxVisAmp = append([]int32(nil), r.CorrIndxVisAmp...)
			nr.CorrIndxVisPhi = append([]int32(nil), r.CorrIndxVisPhi...)
		}
		if r.CorrIndxRVis != nil {
			nr.CorrIndxRVis = append([]int32(nil), r.CorrIndxRVis...)
			nr.CorrIndxIVis = append([]int32(nil), r.CorrIndxIVis...)
		}
		cp.Records[i] = nr
	}
	return &cp
}

// UpgradeToRev2 stamps the revision and zeros newly-introduced rev-2
// keywords; it never transforms data (spec.md §4.1).
func (t *VisTable) UpgradeToRev2() {
	if t.Revision >= 2 {
		return
	}
	t.Revision = 2
	t.AmpType = AmpUnset
	t.PhiType = PhiUnset
	t.AmpOrder = 0
	t.PhiOrder = 0
}
