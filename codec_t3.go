package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

const extnameT3 = "OI_T3"
const maxRevT3 = 2

// readNextT3 advances from cursor `from` to the next OI_T3 extension
// (spec.md §4.2.1 "read-next").
func readNextT3(f *fits.File, from int, warnings *[]string) (*T3Table, int, error) {
	tbl, next, err := findNextTable(f.HDUs(), from, extnameT3, warnings)
	if err != nil {
		return nil, next, err
	}
	t, err := decodeT3(tbl, warnings)
	if err != nil {
		return nil, next, wrapf("read "+extnameT3, err)
	}
	return t, next, nil
}

func decodeT3(tbl *fits.Table, warnings *[]string) (*T3Table, error) {
	verifyTableChecksum(tbl, warnings)
	hdr := tbl.Header()

	rev, err := readRevision(hdr, extnameT3, maxRevT3, warnings)
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
	t := NewT3Table(n, 0)
	t.Revision = rev
	t.DateObs = dateObs
	t.ArrName = arrname
	t.InsName = insname
	if hasCorrName {
		t.CorrName = corrname
	}

	hasCorrIndx := tbl.Index("CORRINDX_T3AMP") >= 0
	t.UseCorrIndx = hasCorrIndx

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, wrapf("read "+extnameT3, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		r := &t.Records[i]
		var targetID int32
		var staIndex [3]int32
		args := []interface{}{
			&targetID, &r.Time, &r.MJD, &r.IntTime,
			&r.T3Amp, &r.T3AmpErr, &r.T3Phi, &r.T3PhiErr,
			&r.U1Coord, &r.V1Coord, &r.U2Coord, &r.V2Coord, &staIndex, &r.Flag,
		}
		if hasCorrIndx {
			args = append(args, &r.CorrIndxT3Amp, &r.CorrIndxT3Phi)
		}
		if err := rows.Scan(args...); err != nil {
			return nil, wrapf("read "+extnameT3, err)
		}
		r.TargetID = int(targetID)
		r.StaIndex = [3]int{int(staIndex[0]), int(staIndex[1]), int(staIndex[2])}
		if t.NWave == 0 {
			t.NWave = len(r.T3Amp)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf("read "+extnameT3, err)
	}
	return t, nil
}

func writeT3(f *fits.File, t *T3Table, extver int) error {
	cols := []fits.Column{
		colI32("TARGET_ID"), colF64("TIME"), colF64("MJD"), colF64("INT_TIME"),
		colF64Heap("T3AMP", t.NWave), colF64Heap("T3AMPERR", t.NWave),
		colF64Heap("T3PHI", t.NWave), colF64Heap("T3PHIERR", t.NWave),
		colF64("U1COORD"), colF64("V1COORD"), colF64("U2COORD"), colF64("V2COORD"),
		colI32Fixed("STA_INDEX", 3), colBoolHeap("FLAG", t.NWave),
	}
	if t.UseCorrIndx {
		cols = append(cols, colI32Heap("CORRINDX_T3AMP", t.NWave), colI32Heap("CORRINDX_T3PHI", t.NWave))
	}

	tbl, err := fits.NewTable(extnameT3, cols, fits.BINARY_TBL)
	if err != nil {
		return wrapf("write "+extnameT3, err)
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
		staIndex := [3]int32{int32(r.StaIndex[0]), int32(r.StaIndex[1]), int32(r.StaIndex[2])}
		args := []interface{}{
			int32(r.TargetID), 0.0, r.MJD, r.IntTime,
			r.T3Amp, r.T3AmpErr, r.T3Phi, r.T3PhiErr,
			r.U1Coord, r.V1Coord, r.U2Coord, r.V2Coord, staIndex, r.Flag,
		}
		if t.UseCorrIndx {
			args = append(args, r.CorrIndxT3Amp, r.CorrIndxT3Phi)
		}
		if err := tbl.Write(args...); err != nil {
			return wrapf("write "+extnameT3, err)
		}
	}
	stampChecksum(tbl)
	return wrapf("write "+extnameT3, f.Write(tbl))
}
