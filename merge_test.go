package oifits

import "testing"

func TestMergeRejectsFewerThanTwoInputs(t *testing.T) {
	d := newTestDataset()
	if _, err := Merge([]*Dataset{d}); err == nil {
		t.Fatal("expected an error merging a single input")
	}
	if _, err := Merge(nil); err == nil {
		t.Fatal("expected an error merging zero inputs")
	}
}

func TestMergeConservesDataRecordCounts(t *testing.T) {
	a := newTestDataset()
	b := newTestDataset()
	b.Header.Object = "other star"
	b.Target.Targets[0].Target = "other star"

	merged, err := Merge([]*Dataset{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	_, nvis2, _ := merged.CountData()
	_, wantVis2, _ := a.CountData()
	_, bVis2, _ := b.CountData()
	if nvis2 != wantVis2+bVis2 {
		t.Fatalf("expected %d vis2 records, got %d", wantVis2+bVis2, nvis2)
	}
	if len(merged.Target.Targets) != 2 {
		t.Fatalf("expected 2 distinct targets, got %d", len(merged.Target.Targets))
	}
}

func TestMergeDedupsIdenticalArrayByContent(t *testing.T) {
	a := newTestDataset()
	b := newTestDataset()
	b.Header.Object = "other star"
	b.Target.Targets[0].Target = "other star"
	// b's ARRAY table is content-identical to a's (same ArrName too).

	merged, err := Merge([]*Dataset{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(merged.Arrays) != 1 {
		t.Fatalf("expected content-equal ARRAY tables to dedup to 1, got %d", len(merged.Arrays))
	}
	if len(merged.Wavelengths) != 1 {
		t.Fatalf("expected content-equal WAVELENGTH tables to dedup to 1, got %d", len(merged.Wavelengths))
	}
}

func TestMergeRenamesOnArrayCollision(t *testing.T) {
	a := newTestDataset()
	b := newTestDataset()
	b.Header.Object = "other star"
	b.Target.Targets[0].Target = "other star"
	// Same ArrName but different array center -> content differs, must rename.
	b.Arrays[0].ArrayXYZ = [3]float64{100, 200, 300}

	merged, err := Merge([]*Dataset{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(merged.Arrays) != 2 {
		t.Fatalf("expected 2 distinct ARRAY tables after rename, got %d", len(merged.Arrays))
	}
	if merged.Arrays[0].ArrName == merged.Arrays[1].ArrName {
		t.Fatal("expected renamed ARRAY tables to carry distinct names")
	}
	// Vis2 tables must reference the (possibly renamed) array consistently.
	for _, v2 := range merged.Vis2 {
		if _, ok := merged.ArrayByName(v2.ArrName); !ok {
			t.Errorf("vis2 table references unknown array %q", v2.ArrName)
		}
	}
}

func TestMergeTargetIDRewrite(t *testing.T) {
	a := newTestDataset()
	b := newTestDataset()
	// Same target name "test star" in both -> should collapse to 1 target,
	// and b's vis2 record's target_id must be rewritten to match if its
	// original id differed.
	b.Target.Targets[0].TargetID = 7
	b.Vis2[0].Records[0].TargetID = 7

	merged, err := Merge([]*Dataset{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(merged.Target.Targets) != 1 {
		t.Fatalf("expected target names to collapse to 1, got %d", len(merged.Target.Targets))
	}
	wantID := merged.Target.Targets[0].TargetID
	for _, v2 := range merged.Vis2 {
		for _, r := range v2.Records {
			if r.TargetID != wantID {
				t.Errorf("expected rewritten target_id %d, got %d", wantID, r.TargetID)
			}
		}
	}
}

func TestMergeHeaderEarliestDateObsAndMultiple(t *testing.T) {
	a := newTestDataset()
	b := newTestDataset()
	b.Header.Object = "other star"
	b.Target.Targets[0].Target = "other star"
	a.Header.DateObs = "2021-06-15"
	b.Header.DateObs = "2019-03-10"

	merged, err := Merge([]*Dataset{a, b})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.Header.DateObs != "2019-03-10" {
		t.Errorf("expected earliest DATE-OBS, got %q", merged.Header.DateObs)
	}
	if merged.Header.Object != "MULTIPLE" {
		t.Errorf("expected disagreeing OBJECT to become MULTIPLE, got %q", merged.Header.Object)
	}
	if merged.Header.Telescop != "VLTI" {
		t.Errorf("expected agreeing TELESCOP to survive, got %q", merged.Header.Telescop)
	}
}
