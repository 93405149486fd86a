package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

const extnameInspol = "OI_INSPOL"
const maxRevInspol = 1

// readNextInspol advances from cursor `from` to the next OI_INSPOL
// extension (spec.md §4.2.1 "read-next").
func readNextInspol(f *fits.File, from int, warnings *[]string) (*InspolTable, int, error) {
	tbl, next, err := findNextTable(f.HDUs(), from, extnameInspol, warnings)
	if err != nil {
		return nil, next, err
	}
	t, err := decodeInspol(tbl, warnings)
	if err != nil {
		return nil, next, wrapf("read "+extnameInspol, err)
	}
	return t, next, nil
}

func decodeInspol(tbl *fits.Table, warnings *[]string) (*InspolTable, error) {
	verifyTableChecksum(tbl, warnings)
	hdr := tbl.Header()

	rev, err := readRevision(hdr, extnameInspol, maxRevInspol, warnings)
	if err != nil {
		return nil, err
	}
	arrname, err := mustStringCard(hdr, "ARRNAME")
	if err != nil {
		return nil, err
	}
	orient, err := mustStringCard(hdr, "ORIENT")
	if err != nil {
		return nil, err
	}
	model, err := mustStringCard(hdr, "MODEL")
	if err != nil {
		return nil, err
	}
	npol, err := mustIntCard(hdr, "NPOL")
	if err != nil {
		return nil, err
	}

	n := int(tbl.NumRows())
	t := NewInspolTable(n, npol)
	t.Revision = rev
	t.ArrName = arrname
	t.Orient = orient
	t.Model = model
	t.NPol = npol

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, wrapf("read "+extnameInspol, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		r := &t.Records[i]
		var targetID, staIndex int32
		if err := rows.Scan(&targetID, &r.InsName, &r.MJDObs, &r.MJDEnd,
			&r.LXX, &r.LYY, &r.LXY, &r.LYX, &staIndex); err != nil {
			return nil, wrapf("read "+extnameInspol, err)
		}
		r.TargetID = int(targetID)
		r.StaIndex = int(staIndex)
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf("read "+extnameInspol, err)
	}
	return t, nil
}

func writeInspol(f *fits.File, t *InspolTable, extver int) error {
	cols := []fits.Column{
		colI32("TARGET_ID"), colString("INSNAME", 70),
		colF64("MJD_OBS"), colF64("MJD_END"),
		colC128Heap("JXX", t.NPol), colC128Heap("JYY", t.NPol),
		colC128Heap("JXY", t.NPol), colC128Heap("JYX", t.NPol),
		colI32("STA_INDEX"),
	}
	tbl, err := fits.NewTable(extnameInspol, cols, fits.BINARY_TBL)
	if err != nil {
		return wrapf("write "+extnameInspol, err)
	}
	hdr := tbl.Header()
	setInt(hdr, "OI_REVN", 1, "revision number of the table definition")
	setStr(hdr, "ARRNAME", t.ArrName, "identifies corresponding OI_ARRAY")
	setStr(hdr, "ORIENT", t.Orient, "orientation of Jones matrix")
	setStr(hdr, "MODEL", t.Model, "description of model")
	setInt(hdr, "NPOL", t.NPol, "number of polarization types")
	setInt(hdr, "EXTVER", extver, "extension version")

	for _, r := range t.Records {
		if err := tbl.Write(int32(r.TargetID), r.InsName, r.MJDObs, r.MJDEnd,
			r.LXX, r.LYY, r.LXY, r.LYX, int32(r.StaIndex)); err != nil {
			return wrapf("write "+extnameInspol, err)
		}
	}
	stampChecksum(tbl)
	return wrapf("write "+extnameInspol, f.Write(tbl))
}
