package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

const extnameTarget = "OI_TARGET"
const maxRevTarget = 2

// readTarget reads the dataset's single mandatory TARGET table (spec.md
// §4.3 "mandatory, may appear only once").
func readTarget(f *fits.File, warnings *[]string) (*TargetTable, error) {
	tbl, _, err := findNextTable(f.HDUs(), 0, extnameTarget, warnings)
	if err != nil {
		return nil, wrapf("read "+extnameTarget, err)
	}
	verifyTableChecksum(tbl, warnings)
	hdr := tbl.Header()
	rev, err := readRevision(hdr, extnameTarget, maxRevTarget, warnings)
	if err != nil {
		return nil, wrapf("read "+extnameTarget, err)
	}

	n := int(tbl.NumRows())
	t := NewTargetTable(n)
	t.Revision = rev
	hasCategory := tbl.Index("CATEGORY") >= 0

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, wrapf("read "+extnameTarget, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		tg := &t.Targets[i]
		var id int32
		var category string
		var scanErr error
		if hasCategory {
			scanErr = rows.Scan(&id, &tg.Target, &tg.RAEp0, &tg.DecEp0, &tg.Equinox,
				&tg.RAErr, &tg.DecErr, &tg.SysVel, &tg.VelTypType, &tg.VelTypDef,
				&tg.PMRA, &tg.PMDec, &tg.PMRAErr, &tg.PMDecErr, &tg.Parallax, &tg.ParaErr,
				&tg.SpecTyp, &category)
		} else {
			scanErr = rows.Scan(&id, &tg.Target, &tg.RAEp0, &tg.DecEp0, &tg.Equinox,
				&tg.RAErr, &tg.DecErr, &tg.SysVel, &tg.VelTypType, &tg.VelTypDef,
				&tg.PMRA, &tg.PMDec, &tg.PMRAErr, &tg.PMDecErr, &tg.Parallax, &tg.ParaErr,
				&tg.SpecTyp)
		}
		if scanErr != nil {
			return nil, wrapf("read "+extnameTarget, scanErr)
		}
		tg.TargetID = int(id)
		if hasCategory {
			tg.Category = category
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf("read "+extnameTarget, err)
	}
	return t, nil
}

func writeTarget(f *fits.File, t *TargetTable) error {
	cols := []fits.Column{
		colI32("TARGET_ID"), colString("TARGET", 16),
		colF64("RAEP0"), colF64("DECEP0"), colF64("EQUINOX"),
		colF64("RA_ERR"), colF64("DEC_ERR"), colF64("SYSVEL"),
		colString("VELTYP", 8), colString("VELDEF", 8),
		colF64("PMRA"), colF64("PMDEC"), colF64("PMRA_ERR"), colF64("PMDEC_ERR"),
		colF64("PARALLAX"), colF64("PARA_ERR"), colString("SPECTYP", 16),
		colString("CATEGORY", 3),
	}
	tbl, err := fits.NewTable(extnameTarget, cols, fits.BINARY_TBL)
	if err != nil {
		return wrapf("write "+extnameTarget, err)
	}
	setInt(tbl.Header(), "OI_REVN", 2, "revision number of the table definition")

	for _, tg := range t.Targets {
		if err := tbl.Write(int32(tg.TargetID), tg.Target, tg.RAEp0, tg.DecEp0, tg.Equinox,
			tg.RAErr, tg.DecErr, tg.SysVel, tg.VelTypType, tg.VelTypDef,
			tg.PMRA, tg.PMDec, tg.PMRAErr, tg.PMDecErr, tg.Parallax, tg.ParaErr,
			tg.SpecTyp, tg.Category); err != nil {
			return wrapf("write "+extnameTarget, err)
		}
	}
	stampChecksum(tbl)
	return wrapf("write "+extnameTarget, f.Write(tbl))
}
