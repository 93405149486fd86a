package oifits

// Vis2Record is one squared-visibility measurement (spec.md §3.1).
type Vis2Record struct {
	TargetID int
	Time     float64
	MJD      float64
	IntTime  float64
	UCoord   float64
	VCoord   float64
	StaIndex [2]int

	Vis2Data []float64
	Vis2Err  []float64
	Flag     []bool

	CorrIndxVis2Data []int32
}

// Vis2Table is named by (arrname, insname, optional corrname) (spec.md §3.1).
type Vis2Table struct {
	Revision int
	DateObs  string
	ArrName  string
	InsName  string
	CorrName string
	NWave    int

	UseCorrIndx bool

	Records []Vis2Record
}

// NewVis2Table allocates a Vis2Table of n records, each with nwave channels.
func NewVis2Table(n, nwave int) *Vis2Table {
	t := &Vis2Table{Revision: 2, NWave: nwave, Records: make([]Vis2Record, n)}
	for i := range t.Records {
		r := &t.Records[i]
		r.TargetID = AbsentInt
		r.StaIndex = [2]int{AbsentInt, AbsentInt}
		r.MJD = AbsentReal()
		r.IntTime = AbsentReal()
		r.UCoord = AbsentReal()
		r.VCoord = AbsentReal()
		r.Vis2Data = make([]float64, nwave)
		r.Vis2Err = make([]float64, nwave)
		r.Flag = make([]bool, nwave)
	}
	return t
}

func (t *Vis2Table) Clone() *Vis2Table {
	cp := *t
	cp.Records = make([]Vis2Record, len(t.Records))
	for i, r := range t.Records {
		nr := r
		nr.Vis2Data = append([]float64(nil), r.Vis2Data...)
		nr.Vis2Err = append([]float64(nil), r.Vis2Err...)
		nr.Flag = append([]bool(nil), r.Flag...)
		if r.CorrIndxVis2Data != nil {
			nr.CorrIndxVis2Data = append([]int32(nil), r.CorrIndxVis2Data...)
		}
		cp.Records[i] = nr
	}
	return &cp
}

// UpgradeToRev2 stamps the revision; VIS2 gains no new mandatory keywords
// at revision 2 beyond ARRNAME, which callers must already have set
// (spec.md invariant 7).
func (t *Vis2Table) UpgradeToRev2() { t.Revision = 2 }
