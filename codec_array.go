package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

const extnameArray = "OI_ARRAY"
const maxRevArray = 2

// readNextArray advances from cursor `from` to the next OI_ARRAY
// extension, returning the new cursor position (spec.md §4.2.1
// "read-next").
func readNextArray(f *fits.File, from int, warnings *[]string) (*ArrayTable, int, error) {
	tbl, next, err := findNextTable(f.HDUs(), from, extnameArray, warnings)
	if err != nil {
		return nil, next, err
	}
	t, err := decodeArray(tbl, warnings)
	if err != nil {
		return nil, next, wrapf("read "+extnameArray, err)
	}
	return t, next, nil
}

// readSpecificArray positions at the first OI_ARRAY extension whose
// ARRNAME equals name (spec.md §4.2.1 "read-specific").
func readSpecificArray(f *fits.File, name string, warnings *[]string) (*ArrayTable, error) {
	cursor := 0
	for {
		t, next, err := readNextArray(f, cursor, warnings)
		if err != nil {
			return nil, err
		}
		if t.ArrName == name {
			return t, nil
		}
		cursor = next
	}
}

func decodeArray(tbl *fits.Table, warnings *[]string) (*ArrayTable, error) {
	verifyTableChecksum(tbl, warnings)
	hdr := tbl.Header()

	rev, err := readRevision(hdr, extnameArray, maxRevArray, warnings)
	if err != nil {
		return nil, err
	}

	arrname, err := mustStringCard(hdr, "ARRNAME")
	if err != nil {
		return nil, err
	}
	frame, err := mustStringCard(hdr, "FRAME")
	if err != nil {
		return nil, err
	}
	ax, err := mustFloatCard(hdr, "ARRAYX")
	if err != nil {
		return nil, err
	}
	ay, err := mustFloatCard(hdr, "ARRAYY")
	if err != nil {
		return nil, err
	}
	az, err := mustFloatCard(hdr, "ARRAYZ")
	if err != nil {
		return nil, err
	}

	n := int(tbl.NumRows())
	t := NewArrayTable(n)
	t.Revision = rev
	t.ArrName = arrname
	t.FrameName = Frame(frame)
	t.ArrayXYZ = [3]float64{ax, ay, az}

	hasFOV := tbl.Index("FOV") >= 0 && tbl.Index("FOVTYPE") >= 0

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, wrapf("read "+extnameArray, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		e := &t.Elements[i]
		var staxyz [3]float64
		var staIdx int32
		var fov float64
		var fovtype string
		var scanErr error
		if hasFOV {
			scanErr = rows.Scan(&e.TelName, &e.StaName, &staIdx, &e.Diameter, &staxyz, &fov, &fovtype)
		} else {
			scanErr = rows.Scan(&e.TelName, &e.StaName, &staIdx, &e.Diameter, &staxyz)
		}
		if scanErr != nil {
			return nil, wrapf("read "+extnameArray, scanErr)
		}
		e.StaIndex = int(staIdx)
		e.StaXYZ = staxyz
		if hasFOV {
			e.FOV = fov
			e.FovType = safeFovType(fovtype)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf("read "+extnameArray, err)
	}
	return t, nil
}

// safeFovType maps a raw FOVTYPE string to the known enum, treating
// anything outside {FWHM, RADIUS} as absent rather than copying it
// verbatim (spec.md §9 Open Question: do not replicate the source's
// FOVTYPE buffer-overrun defect; see SPEC_FULL.md §5.1).
func safeFovType(raw string) FovType {
	switch FovType(raw) {
	case FovFWHM, FovRadius:
		return FovType(raw)
	default:
		return FovUnset
	}
}

func writeArray(f *fits.File, t *ArrayTable, extver int) error {
	cols := []fits.Column{
		colString("TEL_NAME", 16),
		colString("STA_NAME", 16),
		colI32("STA_INDEX"),
		colF64("DIAMETER"),
		{Name: "STAXYZ", Format: "3D"},
		colF64("FOV"), colString("FOVTYPE", 6),
	}

	tbl, err := fits.NewTable(extnameArray, cols, fits.BINARY_TBL)
	if err != nil {
		return wrapf("write "+extnameArray, err)
	}
	hdr := tbl.Header()
	rev := 2
	setInt(hdr, "OI_REVN", rev, "revision number of the table definition")
	setStr(hdr, "ARRNAME", t.ArrName, "array name")
	setStr(hdr, "FRAME", string(t.FrameName), "coordinate frame")
	setFloat(hdr, "ARRAYX", t.ArrayXYZ[0], "array center x coordinate (m)")
	setFloat(hdr, "ARRAYY", t.ArrayXYZ[1], "array center y coordinate (m)")
	setFloat(hdr, "ARRAYZ", t.ArrayXYZ[2], "array center z coordinate (m)")
	setInt(hdr, "EXTVER", extver, "extension version")

	for _, e := range t.Elements {
		staxyz := e.StaXYZ
		if err := tbl.Write(e.TelName, e.StaName, int32(e.StaIndex), e.Diameter, staxyz, e.FOV, string(e.FovType)); err != nil {
			return wrapf("write "+extnameArray, err)
		}
	}
	stampChecksum(tbl)
	return wrapf("write "+extnameArray, f.Write(tbl))
}
