package oifits

import "testing"

func TestVis2IteratorCompleteness(t *testing.T) {
	d := newTestDataset()
	it := NewVis2Iterator(d, DefaultFilterSpec())
	count := 0
	for it.Next() {
		count++
		u, v := it.UV()
		if u == 0 && v == 0 {
			t.Errorf("expected nonzero uv, got (%v, %v)", u, v)
		}
	}
	if count != 1 {
		t.Fatalf("expected 1 position, got %d", count)
	}
}

func TestVis2IteratorTargetIDFilter(t *testing.T) {
	d := newTestDataset()
	f := DefaultFilterSpec()
	f.TargetID = 2
	it := NewVis2Iterator(d, f)
	if it.Next() {
		t.Fatal("expected no positions for nonexistent target id")
	}
}

func TestVis2IteratorInsNameGlob(t *testing.T) {
	d := newTestDataset()
	f := DefaultFilterSpec()
	f.InsName = "PION*"
	it := NewVis2Iterator(d, f)
	if !it.Next() {
		t.Fatal("expected glob PION* to match PIONIER")
	}

	f.InsName = "GRAVITY*"
	it = NewVis2Iterator(d, f)
	if it.Next() {
		t.Fatal("expected glob GRAVITY* not to match PIONIER")
	}
}

func TestVis2IteratorFlaggedExcludedByDefault(t *testing.T) {
	d := newTestDataset()
	d.Vis2[0].Records[0].Flag[0] = true
	it := NewVis2Iterator(d, DefaultFilterSpec())
	if it.Next() {
		t.Fatal("expected flagged channel to be excluded by default filter")
	}

	f := DefaultFilterSpec()
	f.AcceptFlagged = true
	it = NewVis2Iterator(d, f)
	if !it.Next() {
		t.Fatal("expected flagged channel to be accepted when AcceptFlagged is set")
	}
}

func TestT3IteratorBaselineRange(t *testing.T) {
	d := newTestDataset()
	t3 := NewT3Table(1, 1)
	t3.ArrName = "VLTI"
	t3.InsName = "PIONIER"
	t3.DateObs = "2020-01-01"
	r := &t3.Records[0]
	r.TargetID = 1
	r.MJD = 58849.5
	r.StaIndex = [3]int{1, 2, 1}
	r.U1Coord, r.V1Coord = 10, 0
	r.U2Coord, r.V2Coord = 0, 10
	r.T3Amp[0] = 0.9
	r.T3AmpErr[0] = 0.01
	r.T3Phi[0] = 1
	r.T3PhiErr[0] = 1
	d.T3 = append(d.T3, t3)

	f := DefaultFilterSpec()
	it := NewT3Iterator(d, f)
	if !it.Next() {
		t.Fatal("expected a position with the default (unbounded) filter")
	}
	uv1, uv2 := it.UV()
	if uv1[0] == 0 && uv1[1] == 0 {
		t.Errorf("unexpected zero uv1: %v", uv1)
	}
	_ = uv2

	f.BasRange = [2]float64{0, 5}
	it = NewT3Iterator(d, f)
	if it.Next() {
		t.Fatal("expected baseline range [0,5] to reject a 10m/14.1m baseline triple")
	}
}

func TestGlobMatchEmptyPatternMatchesAll(t *testing.T) {
	if !globMatch("", "anything") {
		t.Fatal("empty pattern should match everything")
	}
	if !globMatch("PIONIER", "PIONIER") {
		t.Fatal("exact match should succeed")
	}
	if globMatch("GRAVITY", "PIONIER") {
		t.Fatal("mismatched literal should not match")
	}
}
