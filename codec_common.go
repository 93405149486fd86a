package oifits

import (
	"fmt"

	"github.com/jsy1001/go-oifits/internal/fits"
)

// Column-template builders. Channel-dimensioned columns are stored as
// FITS heap ("P"-format) variable-length arrays rather than fixed-repeat
// columns: astrogo/fitsio's Column/Table machinery maps fixed-repeat
// columns onto compile-time-sized Go arrays (via reflect.ArrayOf, but the
// read/write call sites still need a concrete array type), while it maps
// heap columns directly onto plain Go slices. Since nwave is only known
// at run time, every per-record channel sequence (VISAMP, FLUXDATA, ...)
// is written as a heap array sized nwave (OI_WAVELENGTH instead stores
// one channel per row in scalar columns); this is valid FITS and keeps
// the codec free of per-nwave reflection gymnastics. Station-index arrays
// (STA_INDEX) stay fixed-repeat because their length (2 or 3) is a
// compile-time constant of the table kind.

func colString(name string, width int) fits.Column {
	return fits.Column{Name: name, Format: fmt.Sprintf("%dA", width)}
}

func colI32(name string) fits.Column { return fits.Column{Name: name, Format: "1J"} }
func colF64(name string) fits.Column { return fits.Column{Name: name, Format: "1D"} }
func colBool(name string) fits.Column { return fits.Column{Name: name, Format: "1L"} }

func colI32Fixed(name string, n int) fits.Column {
	return fits.Column{Name: name, Format: fmt.Sprintf("%dJ", n)}
}

func colF64Heap(name string, nwave int) fits.Column {
	return fits.Column{Name: name, Format: fmt.Sprintf("1PD(%d)", nwave), Unit: ""}
}

func colBoolHeap(name string, n int) fits.Column {
	return fits.Column{Name: name, Format: fmt.Sprintf("1PL(%d)", n)}
}

// colBoolHeapMatrix is colBoolHeap for a flattened nwave x nwave matrix
// column, additionally carrying the TDIM card the matrix shape needs
// (spec.md §4.2.2 "VISREFMAP is emitted with TDIM = (nwave, nwave)").
func colBoolHeapMatrix(name string, nwave int) fits.Column {
	c := colBoolHeap(name, nwave*nwave)
	c.Dim = []int64{int64(nwave), int64(nwave)}
	return c
}

func colC128Heap(name string, nwave int) fits.Column {
	return fits.Column{Name: name, Format: fmt.Sprintf("1PM(%d)", nwave)}
}

func colI32Heap(name string, nwave int) fits.Column {
	return fits.Column{Name: name, Format: fmt.Sprintf("1PJ(%d)", nwave)}
}

// --- header-card access -----------------------------------------------

func getStringCard(hdr *fits.Header, key string) (string, bool) {
	c := hdr.Get(key)
	if c == nil {
		return "", false
	}
	s, ok := c.Value.(string)
	return s, ok
}

func mustStringCard(hdr *fits.Header, key string) (string, error) {
	v, ok := getStringCard(hdr, key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNoExist, key)
	}
	return v, nil
}

func getIntCard(hdr *fits.Header, key string) (int, bool) {
	c := hdr.Get(key)
	if c == nil {
		return 0, false
	}
	i, ok := c.Value.(int)
	return i, ok
}

func mustIntCard(hdr *fits.Header, key string) (int, error) {
	v, ok := getIntCard(hdr, key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrKeyNoExist, key)
	}
	return v, nil
}

func getFloatCard(hdr *fits.Header, key string) (float64, bool) {
	c := hdr.Get(key)
	if c == nil {
		return 0, false
	}
	switch v := c.Value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func mustFloatCard(hdr *fits.Header, key string) (float64, error) {
	v, ok := getFloatCard(hdr, key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrKeyNoExist, key)
	}
	return v, nil
}

func setStr(hdr *fits.Header, key, val, comment string) {
	hdr.Set(key, val, comment)
}

func setOptStr(hdr *fits.Header, key, val, comment string) {
	if val != "" {
		hdr.Set(key, val, comment)
	}
}

func setInt(hdr *fits.Header, key string, val int, comment string) {
	hdr.Set(key, val, comment)
}

func setFloat(hdr *fits.Header, key string, val float64, comment string) {
	hdr.Set(key, val, comment)
}

// --- revision handling ---------------------------------------------------

// readRevision reads OI_REVN, warning (not failing) when it exceeds the
// highest revision this codec knows for the extension kind (spec.md
// §4.2.1 step 2).
func readRevision(hdr *fits.Header, extname string, maxKnown int, warnings *[]string) (int, error) {
	rev, err := mustIntCard(hdr, "OI_REVN")
	if err != nil {
		return 0, wrapf("read "+extname, err)
	}
	if rev > maxKnown {
		*warnings = append(*warnings, fmt.Sprintf(
			"%s: revision %d exceeds highest known revision %d; reading using known schema",
			extname, rev, maxKnown))
	}
	return rev, nil
}

// --- extension scanning ---------------------------------------------------

// findNextTable scans hdus[from:] for the next binary-table HDU named
// extname, returning that table and the cursor just past it, or nil,
// len(hdus), ErrEndOfFile when there is none. Any
// nameless binary-table HDU encountered along the way produces a warning
// (spec.md §4.2.1 "read-next ... warns on any binary-table extension with
// no name keyword").
func findNextTable(hdus []fits.HDU, from int, extname string, warnings *[]string) (*fits.Table, int, error) {
	for i := from; i < len(hdus); i++ {
		tbl, ok := hdus[i].(*fits.Table)
		if !ok {
			continue
		}
		name := tbl.Name()
		if name == "" {
			*warnings = append(*warnings, fmt.Sprintf(
				"binary-table extension at index %d has no EXTNAME keyword", i))
			continue
		}
		if name == extname {
			return tbl, i + 1, nil
		}
	}
	return nil, len(hdus), ErrEndOfFile
}

// verifyTableChecksum checks a table's stored CHECKSUM/DATASUM cards (if
// present) against freshly computed values, appending a warning on
// mismatch or absence (spec.md §4.2.1 step 1); it never fails the read.
func verifyTableChecksum(tbl *fits.Table, warnings *[]string) {
	extname := tbl.Name()
	sum := ones32Sum(tbl.RawBytes())
	computed := encodeChecksum(sum)
	if ds, ok := getStringCard(tbl.Header(), "DATASUM"); ok {
		if ds != computed {
			*warnings = append(*warnings, checksumMismatchWarning(extname, "DATASUM"))
		}
	} else {
		*warnings = append(*warnings, fmt.Sprintf("%s: DATASUM keyword missing", extname))
	}
	if cs, ok := getStringCard(tbl.Header(), "CHECKSUM"); ok {
		if cs != computed {
			*warnings = append(*warnings, checksumMismatchWarning(extname, "CHECKSUM"))
		}
	} else {
		*warnings = append(*warnings, fmt.Sprintf("%s: CHECKSUM keyword missing", extname))
	}
}

// stampChecksum writes DATASUM/CHECKSUM cards for a freshly-built table
// (spec.md §4.2.2 "after writing a table the codec records a CHECKSUM and
// DATASUM"), computed over the table's actual data+heap bytes.
func stampChecksum(tbl *fits.Table) {
	sum := ones32Sum(tbl.RawBytes())
	tbl.Header().Set("DATASUM", encodeChecksum(sum), "data unit checksum")
	tbl.Header().Set("CHECKSUM", encodeChecksum(sum), "HDU checksum")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
