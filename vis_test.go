package oifits

import (
	"path/filepath"
	"testing"
)

func TestVisRoundTripComplexAndRefMap(t *testing.T) {
	d := newTestDataset()
	v := NewVisTable(1, 2)
	v.ArrName = "VLTI"
	v.InsName = "PIONIER"
	v.DateObs = "2020-01-01"
	v.AmpType = AmpDifferential
	v.PhiType = PhiDifferential
	v.UseComplex = true
	v.UseRefMap = true
	r := &v.Records[0]
	r.TargetID = 1
	r.MJD = 58849.5
	r.Time = 123.456 // must round-trip as zero regardless
	r.StaIndex = [2]int{1, 2}
	r.UCoord, r.VCoord = 15, 3
	for i := 0; i < 2; i++ {
		r.VisAmp[i], r.VisAmpErr[i] = 0.8, 0.02
		r.VisPhi[i], r.VisPhiErr[i] = 10, 1
	}
	r.RVis = []float64{0.1, 0.2}
	r.RVisErr = []float64{0.01, 0.01}
	r.IVis = []float64{0.3, 0.4}
	r.IVisErr = []float64{0.01, 0.01}
	r.VisRefMap = [][]bool{{false, true}, {true, false}}
	d.Vis = append(d.Vis, v)

	path := filepath.Join(t.TempDir(), "vis.fits")
	if err := WriteFITS(path, d); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}
	got, err := ReadFITS(path)
	if err != nil {
		t.Fatalf("ReadFITS: %v", err)
	}
	if len(got.Vis) != 1 {
		t.Fatalf("expected 1 OI_VIS table, got %d", len(got.Vis))
	}
	gv := got.Vis[0]
	if gv.Revision != 2 {
		t.Errorf("expected OI_VIS to always be written at revision 2, got %d", gv.Revision)
	}
	if gv.AmpType != AmpDifferential || gv.PhiType != PhiDifferential {
		t.Errorf("unexpected amp/phi type: %q %q", gv.AmpType, gv.PhiType)
	}
	gr := gv.Records[0]
	if gr.Time != 0 {
		t.Errorf("expected TIME to read back as zero, got %v", gr.Time)
	}
	if len(gr.RVis) != 2 || gr.RVis[1] != 0.2 {
		t.Errorf("RVis did not round-trip: %v", gr.RVis)
	}
	if gr.VisRefMap == nil || !gr.VisRefMap[0][1] || gr.VisRefMap[1][0] == false {
		t.Errorf("VisRefMap did not round-trip: %v", gr.VisRefMap)
	}
}

func TestVisValidateRequiresRefMapWhenDifferential(t *testing.T) {
	d := newTestDataset()
	v := NewVisTable(1, 1)
	v.ArrName = "VLTI"
	v.InsName = "PIONIER"
	v.DateObs = "2020-01-01"
	v.AmpType = AmpDifferential
	v.Records[0].TargetID = 1
	v.Records[0].MJD = 58849.5
	v.Records[0].StaIndex = [2]int{1, 2}
	d.Vis = append(d.Vis, v)

	r := Validate(d)
	if r.Severity != SeverityNotOIFITS {
		t.Fatalf("expected NOT_OIFITS for differential VIS without VISREFMAP, got %v", r.Severity)
	}
}
