package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

const extnameCorr = "OI_CORR"
const maxRevCorr = 1

// readNextCorr advances from cursor `from` to the next OI_CORR extension
// (spec.md §4.2.1 "read-next"; OI_CORR was introduced at revision 2 of
// the standard but carries its own OI_REVN starting at 1).
func readNextCorr(f *fits.File, from int, warnings *[]string) (*CorrTable, int, error) {
	tbl, next, err := findNextTable(f.HDUs(), from, extnameCorr, warnings)
	if err != nil {
		return nil, next, err
	}
	t, err := decodeCorr(tbl, warnings)
	if err != nil {
		return nil, next, wrapf("read "+extnameCorr, err)
	}
	return t, next, nil
}

// readSpecificCorr positions at the first OI_CORR extension whose
// CORRNAME equals name (spec.md §4.2.1 "read-specific").
func readSpecificCorr(f *fits.File, name string, warnings *[]string) (*CorrTable, error) {
	cursor := 0
	for {
		t, next, err := readNextCorr(f, cursor, warnings)
		if err != nil {
			return nil, err
		}
		if t.CorrName == name {
			return t, nil
		}
		cursor = next
	}
}

func decodeCorr(tbl *fits.Table, warnings *[]string) (*CorrTable, error) {
	verifyTableChecksum(tbl, warnings)
	hdr := tbl.Header()

	rev, err := readRevision(hdr, extnameCorr, maxRevCorr, warnings)
	if err != nil {
		return nil, err
	}
	corrname, err := mustStringCard(hdr, "CORRNAME")
	if err != nil {
		return nil, err
	}
	ndata, err := mustIntCard(hdr, "NDATA")
	if err != nil {
		return nil, err
	}

	n := int(tbl.NumRows())
	t := NewCorrTable(n)
	t.Revision = rev
	t.CorrName = corrname
	t.NData = ndata

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, wrapf("read "+extnameCorr, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var ii, jj int32
		var val float64
		if err := rows.Scan(&ii, &jj, &val); err != nil {
			return nil, wrapf("read "+extnameCorr, err)
		}
		t.IIndx[i] = ii
		t.JIndx[i] = jj
		t.CorrVal[i] = val
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf("read "+extnameCorr, err)
	}
	return t, nil
}

func writeCorr(f *fits.File, t *CorrTable, extver int) error {
	cols := []fits.Column{
		colI32("IINDX"), colI32("JINDX"), colF64("CORRVAL"),
	}
	tbl, err := fits.NewTable(extnameCorr, cols, fits.BINARY_TBL)
	if err != nil {
		return wrapf("write "+extnameCorr, err)
	}
	hdr := tbl.Header()
	setInt(hdr, "OI_REVN", 1, "revision number of the table definition")
	setStr(hdr, "CORRNAME", t.CorrName, "name of correlated data set")
	setInt(hdr, "NDATA", t.NData, "number of correlated data")
	setInt(hdr, "EXTVER", extver, "extension version")

	for i := range t.IIndx {
		if err := tbl.Write(t.IIndx[i], t.JIndx[i], t.CorrVal[i]); err != nil {
			return wrapf("write "+extnameCorr, err)
		}
	}
	stampChecksum(tbl)
	return wrapf("write "+extnameCorr, f.Write(tbl))
}
