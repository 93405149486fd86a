package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

const extnameWavelength = "OI_WAVELENGTH"
const maxRevWavelength = 2

// readNextWavelength advances from cursor `from` to the next
// OI_WAVELENGTH extension (spec.md §4.2.1 "read-next").
func readNextWavelength(f *fits.File, from int, warnings *[]string) (*WavelengthTable, int, error) {
	tbl, next, err := findNextTable(f.HDUs(), from, extnameWavelength, warnings)
	if err != nil {
		return nil, next, err
	}
	t, err := decodeWavelength(tbl, warnings)
	if err != nil {
		return nil, next, wrapf("read "+extnameWavelength, err)
	}
	return t, next, nil
}

// readSpecificWavelength positions at the first OI_WAVELENGTH extension
// whose INSNAME equals name (spec.md §4.2.1 "read-specific").
func readSpecificWavelength(f *fits.File, name string, warnings *[]string) (*WavelengthTable, error) {
	cursor := 0
	for {
		t, next, err := readNextWavelength(f, cursor, warnings)
		if err != nil {
			return nil, err
		}
		if t.InsName == name {
			return t, nil
		}
		cursor = next
	}
}

func decodeWavelength(tbl *fits.Table, warnings *[]string) (*WavelengthTable, error) {
	verifyTableChecksum(tbl, warnings)
	hdr := tbl.Header()

	rev, err := readRevision(hdr, extnameWavelength, maxRevWavelength, warnings)
	if err != nil {
		return nil, err
	}
	insname, err := mustStringCard(hdr, "INSNAME")
	if err != nil {
		return nil, err
	}

	n := int(tbl.NumRows())
	t := NewWavelengthTable(n)
	t.Revision = rev
	t.InsName = insname

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, wrapf("read "+extnameWavelength, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var wave, band float32
		if err := rows.Scan(&wave, &band); err != nil {
			return nil, wrapf("read "+extnameWavelength, err)
		}
		t.EffWave[i] = float64(wave)
		t.EffBand[i] = float64(band)
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf("read "+extnameWavelength, err)
	}
	return t, nil
}

func writeWavelength(f *fits.File, t *WavelengthTable, extver int) error {
	cols := []fits.Column{
		{Name: "EFF_WAVE", Format: "1E", Unit: "m"},
		{Name: "EFF_BAND", Format: "1E", Unit: "m"},
	}
	tbl, err := fits.NewTable(extnameWavelength, cols, fits.BINARY_TBL)
	if err != nil {
		return wrapf("write "+extnameWavelength, err)
	}
	hdr := tbl.Header()
	setInt(hdr, "OI_REVN", 2, "revision number of the table definition")
	setStr(hdr, "INSNAME", t.InsName, "name of detector")
	setInt(hdr, "EXTVER", extver, "extension version")

	for i := 0; i < t.NWave; i++ {
		if err := tbl.Write(float32(t.EffWave[i]), float32(t.EffBand[i])); err != nil {
			return wrapf("write "+extnameWavelength, err)
		}
	}
	stampChecksum(tbl)
	return wrapf("write "+extnameWavelength, f.Write(tbl))
}
