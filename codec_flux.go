package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

const extnameFlux = "OI_FLUX"
const extnameSpectrum = "OI_SPECTRUM"
const maxRevFlux = 1

// readNextFlux advances from cursor `from` to the next OI_FLUX or
// OI_SPECTRUM extension, the latter being the revision-1 name for the
// same table (SPEC_FULL.md §4 "supplemented features").
func readNextFlux(f *fits.File, from int, warnings *[]string) (*FluxTable, int, error) {
	hdus := f.HDUs()
	for i := from; i < len(hdus); i++ {
		tbl, ok := hdus[i].(*fits.Table)
		if !ok {
			continue
		}
		name := tbl.Name()
		switch name {
		case "":
			*warnings = append(*warnings, "binary-table extension has no EXTNAME keyword")
			continue
		case extnameFlux, extnameSpectrum:
			t, err := decodeFlux(tbl, warnings)
			if err != nil {
				return nil, i + 1, wrapf("read "+extnameFlux, err)
			}
			t.IsSpectrum = name == extnameSpectrum
			return t, i + 1, nil
		}
	}
	return nil, len(hdus), ErrEndOfFile
}

func decodeFlux(tbl *fits.Table, warnings *[]string) (*FluxTable, error) {
	verifyTableChecksum(tbl, warnings)
	hdr := tbl.Header()

	rev, err := readRevision(hdr, extnameFlux, maxRevFlux, warnings)
	if err != nil {
		return nil, err
	}
	insname, err := mustStringCard(hdr, "INSNAME")
	if err != nil {
		return nil, err
	}
	calstatStr, _ := getStringCard(hdr, "CALSTAT")
	var calstat CalStat
	if len(calstatStr) > 0 {
		calstat = CalStat(calstatStr[0])
	}
	arrname, _ := getStringCard(hdr, "ARRNAME")

	fov, hasFOVCard := getFloatCard(hdr, "FOV")
	fovtype, hasFovTypeCard := getStringCard(hdr, "FOVTYPE")
	hasFOV := hasFOVCard && hasFovTypeCard

	n := int(tbl.NumRows())
	t := NewFluxTable(n, 0)
	t.Revision = rev
	t.InsName = insname
	t.CalStat = calstat
	t.ArrName = arrname
	if hasFOV {
		t.FOV = fov
		t.FovType = safeFovType(fovtype)
	}

	hasStaIndex := tbl.Index("STA_INDEX") >= 0

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, wrapf("read "+extnameFlux, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		r := &t.Records[i]
		var targetID int32
		var staIndex int32
		args := []interface{}{&targetID, &r.MJD, &r.IntTime, &r.FluxData, &r.FluxErr, &r.Flag}
		if hasStaIndex {
			args = append(args, &staIndex)
		}
		if err := rows.Scan(args...); err != nil {
			return nil, wrapf("read "+extnameFlux, err)
		}
		r.TargetID = int(targetID)
		if hasStaIndex {
			r.StaIndex = int(staIndex)
		}
		if t.NWave == 0 {
			t.NWave = len(r.FluxData)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf("read "+extnameFlux, err)
	}
	return t, nil
}

func writeFlux(f *fits.File, t *FluxTable, extver int) error {
	cols := []fits.Column{
		colI32("TARGET_ID"), colF64("MJD"), colF64("INT_TIME"),
		colF64Heap("FLUXDATA", t.NWave), colF64Heap("FLUXERR", t.NWave),
		colBoolHeap("FLAG", t.NWave),
	}
	uncalibrated := t.CalStat == CalStatUncalibrated
	if uncalibrated {
		cols = append(cols, colI32("STA_INDEX"))
	}

	extname := extnameFlux
	if t.IsSpectrum {
		extname = extnameSpectrum
	}
	tbl, err := fits.NewTable(extname, cols, fits.BINARY_TBL)
	if err != nil {
		return wrapf("write "+extname, err)
	}
	hdr := tbl.Header()
	setInt(hdr, "OI_REVN", 1, "revision number of the table definition")
	setStr(hdr, "INSNAME", t.InsName, "identifies corresponding OI_WAVELENGTH")
	if t.CalStat != CalStatUnset {
		setStr(hdr, "CALSTAT", string(rune(t.CalStat)), "calibration status")
	}
	if uncalibrated {
		setStr(hdr, "ARRNAME", t.ArrName, "identifies corresponding OI_ARRAY")
	}
	if t.FovType != FovUnset {
		setFloat(hdr, "FOV", t.FOV, "field of view (arcsec)")
		setStr(hdr, "FOVTYPE", string(t.FovType), "field-of-view model")
	}
	setInt(hdr, "EXTVER", extver, "extension version")

	for _, r := range t.Records {
		args := []interface{}{int32(r.TargetID), r.MJD, r.IntTime, r.FluxData, r.FluxErr, r.Flag}
		if uncalibrated {
			args = append(args, int32(r.StaIndex))
		}
		if err := tbl.Write(args...); err != nil {
			return wrapf("write "+extname, err)
		}
	}
	stampChecksum(tbl)
	return wrapf("write "+extname, f.Write(tbl))
}
