package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

const extnameVis = "OI_VIS"
const maxRevVis = 2

// readNextVis advances from cursor `from` to the next OI_VIS extension
// (spec.md §4.2.1 "read-next").
func readNextVis(f *fits.File, from int, warnings *[]string) (*VisTable, int, error) {
	tbl, next, err := findNextTable(f.HDUs(), from, extnameVis, warnings)
	if err != nil {
		return nil, next, err
	}
	t, err := decodeVis(tbl, warnings)
	if err != nil {
		return nil, next, wrapf("read "+extnameVis, err)
	}
	return t, next, nil
}

func decodeVis(tbl *fits.Table, warnings *[]string) (*VisTable, error) {
	verifyTableChecksum(tbl, warnings)
	hdr := tbl.Header()

	rev, err := readRevision(hdr, extnameVis, maxRevVis, warnings)
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
	ampType, _ := getStringCard(hdr, "AMPTYP")
	phiType, _ := getStringCard(hdr, "PHITYP")
	ampOrder, _ := getIntCard(hdr, "AMPORDER")
	phiOrder, _ := getIntCard(hdr, "PHIORDER")

	n := int(tbl.NumRows())
	t := NewVisTable(n, 0)
	t.Revision = rev
	t.DateObs = dateObs
	t.ArrName = arrname
	t.InsName = insname
	t.AmpType = AmpType(ampType)
	t.PhiType = PhiType(phiType)
	t.AmpOrder = ampOrder
	t.PhiOrder = phiOrder
	if idx := tbl.Index("VISAMP"); idx >= 0 {
		t.AmpUnit = tbl.Col(idx).Unit
	}
	if hasCorrName {
		t.CorrName = corrname
	}

	hasComplex := tbl.Index("RVIS") >= 0
	hasRefMap := tbl.Index("VISREFMAP") >= 0
	hasCorrIndx := tbl.Index("CORRINDX_VISAMP") >= 0
	hasCorrIndxComplex := tbl.Index("CORRINDX_RVIS") >= 0
	t.UseComplex = hasComplex
	t.UseRefMap = hasRefMap
	t.UseCorrIndx = hasCorrIndx || hasCorrIndxComplex

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, wrapf("read "+extnameVis, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		r := &t.Records[i]
		var targetID int32
		var staIndex [2]int32
		var flatMap []bool
		args := []interface{}{
			&targetID, &r.Time, &r.MJD, &r.IntTime,
			&r.VisAmp, &r.VisAmpErr, &r.VisPhi, &r.VisPhiErr,
			&r.UCoord, &r.VCoord, &staIndex, &r.Flag,
		}
		if hasComplex {
			args = append(args, &r.RVis, &r.RVisErr, &r.IVis, &r.IVisErr)
		}
		if hasCorrIndx {
			args = append(args, &r.CorrIndxVisAmp, &r.CorrIndxVisPhi)
		}
		if hasCorrIndxComplex {
			args = append(args, &r.CorrIndxRVis, &r.CorrIndxIVis)
		}
		if hasRefMap {
			args = append(args, &flatMap)
		}
		if err := rows.Scan(args...); err != nil {
			return nil, wrapf("read "+extnameVis, err)
		}
		r.TargetID = int(targetID)
		r.StaIndex = [2]int{int(staIndex[0]), int(staIndex[1])}
		if t.NWave == 0 {
			t.NWave = len(r.VisAmp)
		}
		if hasRefMap && t.NWave > 0 && len(flatMap) == t.NWave*t.NWave {
			r.VisRefMap = unflattenBoolMatrix(flatMap, t.NWave)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf("read "+extnameVis, err)
	}
	return t, nil
}

func unflattenBoolMatrix(flat []bool, nwave int) [][]bool {
	m := make([][]bool, nwave)
	for i := range m {
		m[i] = append([]bool(nil), flat[i*nwave:(i+1)*nwave]...)
	}
	return m
}

func flattenBoolMatrix(m [][]bool) []bool {
	if m == nil {
		return nil
	}
	flat := make([]bool, 0, len(m)*len(m))
	for _, row := range m {
		flat = append(flat, row...)
	}
	return flat
}

func writeVis(f *fits.File, t *VisTable, extver int) error {
	cols := []fits.Column{
		colI32("TARGET_ID"), colF64("TIME"), colF64("MJD"), colF64("INT_TIME"),
		colF64Heap("VISAMP", t.NWave), colF64Heap("VISAMPERR", t.NWave),
		colF64Heap("VISPHI", t.NWave), colF64Heap("VISPHIERR", t.NWave),
		colF64("UCOORD"), colF64("VCOORD"), colI32Fixed("STA_INDEX", 2),
		colBoolHeap("FLAG", t.NWave),
	}
	if cols[4].Unit == "" && t.AmpType == AmpCorrelatedFlux {
		cols[4].Unit = t.AmpUnit
		cols[5].Unit = t.AmpUnit
	}
	if t.UseComplex {
		cols = append(cols,
			colF64Heap("RVIS", t.NWave), colF64Heap("RVISERR", t.NWave),
			colF64Heap("IVIS", t.NWave), colF64Heap("IVISERR", t.NWave))
	}
	if t.UseCorrIndx {
		cols = append(cols, colI32Heap("CORRINDX_VISAMP", t.NWave), colI32Heap("CORRINDX_VISPHI", t.NWave))
		if t.UseComplex {
			cols = append(cols, colI32Heap("CORRINDX_RVIS", t.NWave), colI32Heap("CORRINDX_IVIS", t.NWave))
		}
	}
	if t.UseRefMap {
		cols = append(cols, colBoolHeapMatrix("VISREFMAP", t.NWave))
	}

	tbl, err := fits.NewTable(extnameVis, cols, fits.BINARY_TBL)
	if err != nil {
		return wrapf("write "+extnameVis, err)
	}
	hdr := tbl.Header()
	setInt(hdr, "OI_REVN", 2, "revision number of the table definition")
	setStr(hdr, "DATE-OBS", t.DateObs, "UTC start date of observations")
	setOptStr(hdr, "ARRNAME", t.ArrName, "identifies corresponding OI_ARRAY")
	setStr(hdr, "INSNAME", t.InsName, "identifies corresponding OI_WAVELENGTH")
	if t.CorrName != "" {
		setStr(hdr, "CORRNAME", t.CorrName, "identifies corresponding OI_CORR")
	}
	setOptStr(hdr, "AMPTYP", string(t.AmpType), "amplitude data type")
	setOptStr(hdr, "PHITYP", string(t.PhiType), "phase data type")
	if t.AmpOrder != 0 {
		setInt(hdr, "AMPORDER", t.AmpOrder, "polynomial fit order for differential amplitudes")
	}
	if t.PhiOrder != 0 {
		setInt(hdr, "PHIORDER", t.PhiOrder, "polynomial fit order for differential phases")
	}
	setInt(hdr, "EXTVER", extver, "extension version")

	for _, r := range t.Records {
		staIndex := [2]int32{int32(r.StaIndex[0]), int32(r.StaIndex[1])}
		args := []interface{}{
			int32(r.TargetID), 0.0, r.MJD, r.IntTime,
			r.VisAmp, r.VisAmpErr, r.VisPhi, r.VisPhiErr,
			r.UCoord, r.VCoord, staIndex, r.Flag,
		}
		if t.UseComplex {
			args = append(args, r.RVis, r.RVisErr, r.IVis, r.IVisErr)
		}
		if t.UseCorrIndx {
			args = append(args, r.CorrIndxVisAmp, r.CorrIndxVisPhi)
			if t.UseComplex {
				args = append(args, r.CorrIndxRVis, r.CorrIndxIVis)
			}
		}
		if t.UseRefMap {
			args = append(args, flattenBoolMatrix(r.VisRefMap))
		}
		if err := tbl.Write(args...); err != nil {
			return wrapf("write "+extnameVis, err)
		}
	}
	stampChecksum(tbl)
	return wrapf("write "+extnameVis, f.Write(tbl))
}
