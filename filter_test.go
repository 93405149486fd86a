package oifits

import "testing"

func TestDefaultFilterSpecAcceptsEverything(t *testing.T) {
	f := DefaultFilterSpec()
	if f.TargetID != AbsentInt {
		t.Errorf("expected AbsentInt target id, got %d", f.TargetID)
	}
	if !inRange(0, f.MJDRange) || !inRange(1e9, f.MJDRange) || !inRange(-1e9, f.MJDRange) {
		t.Error("expected MJDRange to be unbounded")
	}
	if f.AcceptFlagged {
		t.Error("expected AcceptFlagged to default to false")
	}
	if !f.AcceptVis || !f.AcceptVis2 || !f.AcceptT3Amp || !f.AcceptT3Phi {
		t.Error("expected every Accept* kind-enabler to default to true")
	}
}

func TestInRangeClosedInterval(t *testing.T) {
	r := [2]float64{1, 2}
	if !inRange(1, r) || !inRange(2, r) {
		t.Error("expected closed interval to include both endpoints")
	}
	if inRange(0.999, r) || inRange(2.001, r) {
		t.Error("expected values outside the interval to be rejected")
	}
}
