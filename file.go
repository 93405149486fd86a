package oifits

import (
	"math"
	"os"

	"github.com/jsy1001/go-oifits/internal/fits"
)

// ReadFITS opens path, reads the primary header and every extension, and
// returns a fully-populated Dataset (spec.md §4.3 "read_fits"). A dataset
// built by ReadFITS is either fully populated or empty on return: any
// codec error aborts with a nil Dataset.
func ReadFITS(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, wrapf("read fits", err)
	}
	defer file.Close()

	f, err := fits.Open(file)
	if err != nil {
		return nil, wrapf("read fits", err)
	}

	var warnings []string
	d := &Dataset{}

	d.Header, err = readHeader(f)
	if err != nil {
		return nil, wrapf("read fits", err)
	}

	d.Target, err = readTarget(f, &warnings)
	if err != nil {
		return nil, wrapf("read fits", err)
	}

	for cursor := 0; ; {
		a, next, err := readNextArray(f, cursor, &warnings)
		if err == ErrEndOfFile {
			break
		}
		if err != nil {
			logCodecError("read "+extnameArray, err)
			return nil, wrapf("read fits", err)
		}
		d.Arrays = append(d.Arrays, a)
		cursor = next
	}
	for cursor := 0; ; {
		w, next, err := readNextWavelength(f, cursor, &warnings)
		if err == ErrEndOfFile {
			break
		}
		if err != nil {
			logCodecError("read "+extnameWavelength, err)
			return nil, wrapf("read fits", err)
		}
		d.Wavelengths = append(d.Wavelengths, w)
		cursor = next
	}
	for cursor := 0; ; {
		c, next, err := readNextCorr(f, cursor, &warnings)
		if err == ErrEndOfFile {
			break
		}
		if err != nil {
			logCodecError("read "+extnameCorr, err)
			return nil, wrapf("read fits", err)
		}
		d.Corrs = append(d.Corrs, c)
		cursor = next
	}
	for cursor := 0; ; {
		ip, next, err := readNextInspol(f, cursor, &warnings)
		if err == ErrEndOfFile {
			break
		}
		if err != nil {
			logCodecError("read "+extnameInspol, err)
			return nil, wrapf("read fits", err)
		}
		d.Inspols = append(d.Inspols, ip)
		cursor = next
	}
	for cursor := 0; ; {
		v, next, err := readNextVis(f, cursor, &warnings)
		if err == ErrEndOfFile {
			break
		}
		if err != nil {
			logCodecError("read "+extnameVis, err)
			return nil, wrapf("read fits", err)
		}
		d.Vis = append(d.Vis, v)
		cursor = next
	}
	for cursor := 0; ; {
		v2, next, err := readNextVis2(f, cursor, &warnings)
		if err == ErrEndOfFile {
			break
		}
		if err != nil {
			logCodecError("read "+extnameVis2, err)
			return nil, wrapf("read fits", err)
		}
		d.Vis2 = append(d.Vis2, v2)
		cursor = next
	}
	for cursor := 0; ; {
		t3, next, err := readNextT3(f, cursor, &warnings)
		if err == ErrEndOfFile {
			break
		}
		if err != nil {
			logCodecError("read "+extnameT3, err)
			return nil, wrapf("read fits", err)
		}
		d.T3 = append(d.T3, t3)
		cursor = next
	}
	for cursor := 0; ; {
		fl, next, err := readNextFlux(f, cursor, &warnings)
		if err == ErrEndOfFile {
			break
		}
		if err != nil {
			logCodecError("read "+extnameFlux, err)
			return nil, wrapf("read fits", err)
		}
		d.Flux = append(d.Flux, fl)
		cursor = next
	}

	d.RebuildIndex()
	d.ReadWarnings = warnings
	return d, nil
}

// WriteFITS creates path and writes the primary header, TARGET, then each
// table list in insertion order (spec.md §4.3 "write_fits"). EXTVER is
// assigned sequentially from 1 within each table list.
func WriteFITS(path string, d *Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return wrapf("write fits", err)
	}
	defer file.Close()

	f, err := fits.Create(file)
	if err != nil {
		return wrapf("write fits", err)
	}

	if err := writeHeader(f, d.Header); err != nil {
		return wrapf("write fits", err)
	}
	if err := writeTarget(f, d.Target); err != nil {
		return wrapf("write fits", err)
	}
	for i, a := range d.Arrays {
		if err := writeArray(f, a, i+1); err != nil {
			return wrapf("write fits", err)
		}
	}
	for i, w := range d.Wavelengths {
		if err := writeWavelength(f, w, i+1); err != nil {
			return wrapf("write fits", err)
		}
	}
	for i, c := range d.Corrs {
		if err := writeCorr(f, c, i+1); err != nil {
			return wrapf("write fits", err)
		}
	}
	for i, ip := range d.Inspols {
		if err := writeInspol(f, ip, i+1); err != nil {
			return wrapf("write fits", err)
		}
	}
	for i, v := range d.Vis {
		if err := writeVis(f, v, i+1); err != nil {
			return wrapf("write fits", err)
		}
	}
	for i, v2 := range d.Vis2 {
		if err := writeVis2(f, v2, i+1); err != nil {
			return wrapf("write fits", err)
		}
	}
	for i, t3 := range d.T3 {
		if err := writeT3(f, t3, i+1); err != nil {
			return wrapf("write fits", err)
		}
	}
	for i, fl := range d.Flux {
		if err := writeFlux(f, fl, i+1); err != nil {
			return wrapf("write fits", err)
		}
	}
	return nil
}

// IsAtomic reports whether every data table (VIS, VIS2, T3, FLUX) has
// exactly one record and all those records' MJDs fall within a single
// window of tolerance days (spec.md §4.3 "is_atomic").
func IsAtomic(d *Dataset, tolerance float64) bool {
	var mjds []float64
	for _, v := range d.Vis {
		if len(v.Records) != 1 {
			return false
		}
		mjds = append(mjds, v.Records[0].MJD)
	}
	for _, v2 := range d.Vis2 {
		if len(v2.Records) != 1 {
			return false
		}
		mjds = append(mjds, v2.Records[0].MJD)
	}
	for _, t3 := range d.T3 {
		if len(t3.Records) != 1 {
			return false
		}
		mjds = append(mjds, t3.Records[0].MJD)
	}
	for _, fl := range d.Flux {
		if len(fl.Records) != 1 {
			return false
		}
		mjds = append(mjds, fl.Records[0].MJD)
	}
	if len(mjds) == 0 {
		return true
	}
	lo, hi := mjds[0], mjds[0]
	for _, m := range mjds[1:] {
		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
	}
	return hi-lo <= tolerance
}
