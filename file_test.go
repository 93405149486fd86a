package oifits

import (
	"path/filepath"
	"testing"
)

func TestWriteFITSThenReadFITSRoundTrip(t *testing.T) {
	d := newTestDataset()
	path := filepath.Join(t.TempDir(), "roundtrip.fits")
	if err := WriteFITS(path, d); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}

	got, err := ReadFITS(path)
	if err != nil {
		t.Fatalf("ReadFITS: %v", err)
	}
	if len(got.ReadWarnings) != 0 {
		t.Errorf("unexpected read warnings: %v", got.ReadWarnings)
	}
	if len(got.Target.Targets) != 1 || got.Target.Targets[0].Target != "test star" {
		t.Fatalf("unexpected targets: %+v", got.Target.Targets)
	}
	if len(got.Vis2) != 1 || len(got.Vis2[0].Records) != 1 {
		t.Fatalf("unexpected vis2 tables: %+v", got.Vis2)
	}
	gotRec := got.Vis2[0].Records[0]
	wantRec := d.Vis2[0].Records[0]
	if gotRec.Vis2Data[0] != wantRec.Vis2Data[0] {
		t.Errorf("VIS2DATA[0] = %v, want %v", gotRec.Vis2Data[0], wantRec.Vis2Data[0])
	}
	// TIME is always written as zero regardless of the in-memory value.
	if gotRec.Time != 0 {
		t.Errorf("expected round-tripped TIME to read back as zero, got %v", gotRec.Time)
	}
}

func TestWriteFITSEmptyDataset(t *testing.T) {
	d := NewDataset()
	d.Target.Targets = nil
	d.Header.DateObs = "2020-01-01"
	path := filepath.Join(t.TempDir(), "empty.fits")
	if err := WriteFITS(path, d); err != nil {
		t.Fatalf("WriteFITS on empty dataset: %v", err)
	}

	got, err := ReadFITS(path)
	if err != nil {
		t.Fatalf("ReadFITS on empty dataset: %v", err)
	}
	if len(got.Target.Targets) != 0 {
		t.Errorf("expected empty TARGET table, got %d targets", len(got.Target.Targets))
	}
	if len(got.Vis) != 0 || len(got.Vis2) != 0 || len(got.T3) != 0 {
		t.Errorf("expected no data tables in an empty dataset")
	}
}

func TestWriteFITSAlwaysUpgradesToRevision2(t *testing.T) {
	d := newTestDataset()
	// Force a revision-1 ARRAY and VIS2 table; the writer must still stamp
	// OI_REVN=2 for both kinds and must not drop the rev-2 column set.
	d.Arrays[0].Revision = 1
	d.Vis2[0].Revision = 1

	path := filepath.Join(t.TempDir(), "upgrade.fits")
	if err := WriteFITS(path, d); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}

	got, err := ReadFITS(path)
	if err != nil {
		t.Fatalf("ReadFITS: %v", err)
	}
	if got.Arrays[0].Revision != 2 {
		t.Errorf("expected ARRAY to be upgraded to revision 2 on write, got %d", got.Arrays[0].Revision)
	}
	if got.Vis2[0].Revision != 2 {
		t.Errorf("expected VIS2 to be upgraded to revision 2 on write, got %d", got.Vis2[0].Revision)
	}
}

func TestWriteFITSAlwaysRev1ForOIFITS2NativeTables(t *testing.T) {
	d := newTestDataset()
	ip := NewInspolTable(1, 1)
	ip.ArrName = "VLTI"
	ip.Orient = "NORTH"
	ip.Model = "UNKNOWN"
	ip.NPol = 1
	ip.Records[0].TargetID = 1
	ip.Records[0].InsName = "PIONIER"
	ip.Records[0].StaIndex = 1
	ip.Revision = 2 // attempt a revision beyond the rev-1-only policy
	d.Inspols = append(d.Inspols, ip)

	path := filepath.Join(t.TempDir(), "inspol.fits")
	if err := WriteFITS(path, d); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}
	got, err := ReadFITS(path)
	if err != nil {
		t.Fatalf("ReadFITS: %v", err)
	}
	if len(got.Inspols) != 1 || got.Inspols[0].Revision != 1 {
		t.Fatalf("expected OI_INSPOL to always be written at revision 1, got %+v", got.Inspols)
	}
}

func TestIsAtomic(t *testing.T) {
	d := newTestDataset()
	if !IsAtomic(d, 1.0/86400) {
		t.Fatal("single-record dataset should be atomic")
	}

	d.Vis2[0].Records = append(d.Vis2[0].Records, d.Vis2[0].Records[0])
	if IsAtomic(d, 1.0/86400) {
		t.Fatal("a table with more than one record must not be atomic")
	}
}

func TestCountData(t *testing.T) {
	d := newTestDataset()
	nvis, nvis2, nt3 := d.CountData()
	if nvis != 0 || nvis2 != 1 || nt3 != 0 {
		t.Fatalf("CountData() = (%d, %d, %d), want (0, 1, 0)", nvis, nvis2, nt3)
	}
}
