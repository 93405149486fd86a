package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

const extnameVis2 = "OI_VIS2"
const maxRevVis2 = 2

// readNextVis2 advances from cursor `from` to the next OI_VIS2 extension
// (spec.md §4.2.1 "read-next").
func readNextVis2(f *fits.File, from int, warnings *[]string) (*Vis2Table, int, error) {
	tbl, next, err := findNextTable(f.HDUs(), from, extnameVis2, warnings)
	if err != nil {
		return nil, next, err
	}
	t, err := decodeVis2(tbl, warnings)
	if err != nil {
		return nil, next, wrapf("read "+extnameVis2, err)
	}
	return t, next, nil
}

func decodeVis2(tbl *fits.Table, warnings *[]string) (*Vis2Table, error) {
	verifyTableChecksum(tbl, warnings)
	hdr := tbl.Header()

	rev, err := readRevision(hdr, extnameVis2, maxRevVis2, warnings)
	if err != nil {
		return nil, err
	}
	dateObs, err := mustStringCard(hdr, "DATE-OBS")
	if err != nil {
		return nil, err
	}
	arrname, _ := getStringCard(hdr, "ARRNAME")
	insname, err := mustStringCard(hdr, "INSNAME")
	if err != nil {
		return nil, err
	}
	corrname, hasCorrName := getStringCard(hdr, "CORRNAME")

	n := int(tbl.NumRows())
	t := NewVis2Table(n, 0)
	t.Revision = rev
	t.DateObs = dateObs
	t.ArrName = arrname
	t.InsName = insname
	if hasCorrName {
		t.CorrName = corrname
	}

	hasCorrIndx := tbl.Index("CORRINDX_VIS2DATA") >= 0
	t.UseCorrIndx = hasCorrIndx

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, wrapf("read "+extnameVis2, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		r := &t.Records[i]
		var targetID int32
		var staIndex [2]int32
		args := []interface{}{
			&targetID, &r.Time, &r.MJD, &r.IntTime,
			&r.Vis2Data, &r.Vis2Err,
			&r.UCoord, &r.VCoord, &staIndex, &r.Flag,
		}
		if hasCorrIndx {
			args = append(args, &r.CorrIndxVis2Data)
		}
		if err := rows.Scan(args...); err != nil {
			return nil, wrapf("read "+extnameVis2, err)
		}
		r.TargetID = int(targetID)
		r.StaIndex = [2]int{int(staIndex[0]), int(staIndex[1])}
		if t.NWave == 0 {
			t.NWave = len(r.Vis2Data)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf("read "+extnameVis2, err)
	}
	return t, nil
}

func writeVis2(f *fits.File, t *Vis2Table, extver int) error {
	cols := []fits.Column{
		colI32("TARGET_ID"), colF64("TIME"), colF64("MJD"), colF64("INT_TIME"),
		colF64Heap("VIS2DATA", t.NWave), colF64Heap("VIS2ERR", t.NWave),
		colF64("UCOORD"), colF64("VCOORD"), colI32Fixed("STA_INDEX", 2),
		colBoolHeap("FLAG", t.NWave),
	}
	if t.UseCorrIndx {
		cols = append(cols, colI32Heap("CORRINDX_VIS2DATA", t.NWave))
	}

	tbl, err := fits.NewTable(extnameVis2, cols, fits.BINARY_TBL)
	if err != nil {
		return wrapf("write "+extnameVis2, err)
	}
	hdr := tbl.Header()
	setInt(hdr, "OI_REVN", 2, "revision number of the table definition")
	setStr(hdr, "DATE-OBS", t.DateObs, "UTC start date of observations")
	setOptStr(hdr, "ARRNAME", t.ArrName, "identifies corresponding OI_ARRAY")
	setStr(hdr, "INSNAME", t.InsName, "identifies corresponding OI_WAVELENGTH")
	if t.CorrName != "" {
		setStr(hdr, "CORRNAME", t.CorrName, "identifies corresponding OI_CORR")
	}
	setInt(hdr, "EXTVER", extver, "extension version")

	for _, r := range t.Records {
		staIndex := [2]int32{int32(r.StaIndex[0]), int32(r.StaIndex[1])}
		args := []interface{}{
			int32(r.TargetID), 0.0, r.MJD, r.IntTime,
			r.Vis2Data, r.Vis2Err,
			r.UCoord, r.VCoord, staIndex, r.Flag,
		}
		if t.UseCorrIndx {
			args = append(args, r.CorrIndxVis2Data)
		}
		if err := tbl.Write(args...); err != nil {
			return wrapf("write "+extnameVis2, err)
		}
	}
	stampChecksum(tbl)
	return wrapf("write "+extnameVis2, f.Write(tbl))
}
