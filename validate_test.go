package oifits

import "testing"

func TestValidateCleanDataset(t *testing.T) {
	d := newTestDataset()
	r := Validate(d)
	if r.Severity != SeverityNone {
		t.Fatalf("expected clean dataset, got severity %v: %s %v", r.Severity, r.Description, r.Locations)
	}
}

func TestValidateMissingTarget(t *testing.T) {
	d := newTestDataset()
	d.Target.Targets = nil
	r := Validate(d)
	if r.Severity != SeverityNotOIFITS {
		t.Fatalf("expected NOT_OIFITS for missing targets, got %v", r.Severity)
	}
}

func TestValidateUnknownTargetID(t *testing.T) {
	d := newTestDataset()
	d.Vis2[0].Records[0].TargetID = 99
	r := Validate(d)
	if r.Severity != SeverityNotOIFITS {
		t.Fatalf("expected NOT_OIFITS for dangling target_id, got %v", r.Severity)
	}
}

func TestValidateBadFrame(t *testing.T) {
	d := newTestDataset()
	d.Arrays[0].FrameName = Frame("BOGUS")
	r := Validate(d)
	if r.Severity != SeverityNotOIFITS {
		t.Fatalf("expected NOT_OIFITS for bad FRAME, got %v", r.Severity)
	}
}

func TestValidateDuplicateTargetIsWarningOnly(t *testing.T) {
	d := newTestDataset()
	d.Target.Targets = append(d.Target.Targets, Target{TargetID: 2, Target: "test star"})
	r := Validate(d)
	if r.Severity != SeverityWarning {
		t.Fatalf("expected WARNING for duplicate target name, got %v", r.Severity)
	}
}

func TestValidateNonDecreasingWavelengthWarns(t *testing.T) {
	d := newTestDataset()
	d.Wavelengths[0] = NewWavelengthTable(2)
	d.Wavelengths[0].InsName = "PIONIER"
	d.Wavelengths[0].EffWave = []float64{2e-6, 1e-6}
	d.Wavelengths[0].EffBand = []float64{0.1e-6, 0.1e-6}
	r := Validate(d)
	if r.Severity != SeverityWarning {
		t.Fatalf("expected WARNING for non-monotonic wavelengths, got %v", r.Severity)
	}
}

func TestValidateWorstSeverityWins(t *testing.T) {
	d := newTestDataset()
	// Duplicate target (WARNING) plus a dangling target_id (NOT_OIFITS);
	// the worse of the two must be reported.
	d.Target.Targets = append(d.Target.Targets, Target{TargetID: 2, Target: "test star"})
	d.Vis2[0].Records[0].TargetID = 99
	r := Validate(d)
	if r.Severity != SeverityNotOIFITS {
		t.Fatalf("expected NOT_OIFITS to dominate WARNING, got %v", r.Severity)
	}
}
