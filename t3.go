package oifits

// T3Record is one triple-product (bispectrum) measurement (spec.md §3.1).
type T3Record struct {
	TargetID int
	Time     float64
	MJD      float64
	IntTime  float64
	U1Coord  float64
	V1Coord  float64
	U2Coord  float64
	V2Coord  float64
	StaIndex [3]int

	T3Amp    []float64
	T3AmpErr []float64
	T3Phi    []float64
	T3PhiErr []float64
	Flag     []bool

	CorrIndxT3Amp []int32
	CorrIndxT3Phi []int32
}

// T3Table is named by (arrname, insname, optional corrname) (spec.md §3.1).
type T3Table struct {
	Revision int
	DateObs  string
	ArrName  string
	InsName  string
	CorrName string
	NWave    int

	UseCorrIndx bool

	Records []T3Record
}

// NewT3Table allocates a T3Table of n records, each with nwave channels.
func NewT3Table(n, nwave int) *T3Table {
	t := &T3Table{Revision: 2, NWave: nwave, Records: make([]T3Record, n)}
	for i := range t.Records {
		r := &t.Records[i]
		r.TargetID = AbsentInt
		r.StaIndex = [3]int{AbsentInt, AbsentInt, AbsentInt}
		r.MJD = AbsentReal()
		r.IntTime = AbsentReal()
		r.U1Coord = AbsentReal()
		r.V1Coord = AbsentReal()
		r.U2Coord = AbsentReal()
		r.V2Coord = AbsentReal()
		r.T3Amp = make([]float64, nwave)
		r.T3AmpErr = make([]float64, nwave)
		r.T3Phi = make([]float64, nwave)
		r.T3PhiErr = make([]float64, nwave)
		r.Flag = make([]bool, nwave)
	}
	return t
}

func (t *T3Table) Clone() *T3Table {
	cp := *t
	cp.Records = make([]T3Record, len(t.Records))
	for i, r := range t.Records {
		nr := r
		nr.T3Amp = append([]float64(nil), r.T3Amp...)
		nr.T3AmpErr = append([]float64(nil), r.T3AmpErr...)
		nr.T3Phi = append([]float64(nil), r.T3Phi...)
		nr.T3PhiErr = append([]float64(nil), r.T3PhiErr...)
		nr.Flag = append([]bool(nil), r.Flag...)
		if r.CorrIndxT3Amp != nil {
			nr.CorrIndxT3Amp = append([]int32(nil), r.CorrIndxT3Amp...)
			nr.CorrIndxT3Phi = append([]int32(nil), r.CorrIndxT3Phi...)
		}
		cp.Records[i] = nr
	}
	return &cp
}

// UpgradeToRev2 stamps the revision; no new T3 keywords are introduced
// beyond the mandatory ARRNAME already required at rev 2 (spec.md
// invariant 7).
func (t *T3Table) UpgradeToRev2() { t.Revision = 2 }

// Baselines returns the three baseline (u,v) pairs AB, BC, AC implied by
// the two stored uv pairs (u1,v1)=AB, (u2,v2)=BC; AC = -(AB+BC) (spec.md
// glossary "Triple product").
func (r *T3Record) Baselines() (ab, bc, ac [2]float64) {
	ab = [2]float64{r.U1Coord, r.V1Coord}
	bc = [2]float64{r.U2Coord, r.V2Coord}
	ac = [2]float64{-(r.U1Coord + r.U2Coord), -(r.V1Coord + r.V2Coord)}
	return
}
