package oifits

import (
	"path/filepath"
	"testing"
)

func TestCorrRoundTrip(t *testing.T) {
	d := newTestDataset()
	c := NewCorrTable(2)
	c.CorrName = "CORR1"
	c.NData = 4
	c.IIndx[0], c.JIndx[0], c.CorrVal[0] = 0, 1, 0.5
	c.IIndx[1], c.JIndx[1], c.CorrVal[1] = 1, 2, -0.25
	d.Corrs = append(d.Corrs, c)

	path := filepath.Join(t.TempDir(), "corr.fits")
	if err := WriteFITS(path, d); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}
	got, err := ReadFITS(path)
	if err != nil {
		t.Fatalf("ReadFITS: %v", err)
	}
	if len(got.Corrs) != 1 {
		t.Fatalf("expected 1 OI_CORR table, got %d", len(got.Corrs))
	}
	gc := got.Corrs[0]
	if gc.Revision != 1 {
		t.Errorf("expected OI_CORR to always be written at revision 1, got %d", gc.Revision)
	}
	if gc.CorrName != "CORR1" || gc.NData != 4 {
		t.Errorf("unexpected CorrTable: %+v", gc)
	}
	if gc.CorrVal[1] != -0.25 {
		t.Errorf("CORRVAL[1] = %v, want -0.25", gc.CorrVal[1])
	}
}

func TestFluxRoundTripAsSpectrum(t *testing.T) {
	d := newTestDataset()
	fl := NewFluxTable(1, 1)
	fl.InsName = "PIONIER"
	fl.CalStat = CalStatCalibrated
	fl.IsSpectrum = true
	r := &fl.Records[0]
	r.TargetID = 1
	r.MJD = 58849.5
	r.IntTime = 10
	r.FluxData[0] = 1.2
	r.FluxErr[0] = 0.1
	d.Flux = append(d.Flux, fl)

	path := filepath.Join(t.TempDir(), "spectrum.fits")
	if err := WriteFITS(path, d); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}
	got, err := ReadFITS(path)
	if err != nil {
		t.Fatalf("ReadFITS: %v", err)
	}
	if len(got.Flux) != 1 {
		t.Fatalf("expected 1 flux table, got %d", len(got.Flux))
	}
	gf := got.Flux[0]
	if !gf.IsSpectrum {
		t.Error("expected IsSpectrum to round-trip true (written under EXTNAME OI_SPECTRUM)")
	}
	if gf.Revision != 1 {
		t.Errorf("expected OI_FLUX/OI_SPECTRUM to always be written at revision 1, got %d", gf.Revision)
	}
	if gf.Records[0].FluxData[0] != 1.2 {
		t.Errorf("FLUXDATA[0] = %v, want 1.2", gf.Records[0].FluxData[0])
	}
	// Calibrated flux carries no ARRNAME/STA_INDEX.
	if gf.ArrName != "" {
		t.Errorf("expected no ARRNAME on a calibrated FLUX table, got %q", gf.ArrName)
	}
}

func TestFluxUncalibratedCarriesStationIndex(t *testing.T) {
	d := newTestDataset()
	fl := NewFluxTable(1, 1)
	fl.InsName = "PIONIER"
	fl.CalStat = CalStatUncalibrated
	fl.ArrName = "VLTI"
	r := &fl.Records[0]
	r.TargetID = 1
	r.MJD = 58849.5
	r.StaIndex = 1
	r.FluxData[0] = 3.4
	r.FluxErr[0] = 0.2
	d.Flux = append(d.Flux, fl)

	path := filepath.Join(t.TempDir(), "flux_uncal.fits")
	if err := WriteFITS(path, d); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}
	got, err := ReadFITS(path)
	if err != nil {
		t.Fatalf("ReadFITS: %v", err)
	}
	gf := got.Flux[0]
	if gf.ArrName != "VLTI" {
		t.Errorf("expected ARRNAME to survive on an uncalibrated FLUX table, got %q", gf.ArrName)
	}
	if gf.Records[0].StaIndex != 1 {
		t.Errorf("expected STA_INDEX to survive, got %d", gf.Records[0].StaIndex)
	}
}
