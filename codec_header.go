package oifits

import (
	"github.com/jsy1001/go-oifits/internal/fits"
)

// readHeader reads the primary-header metadata (spec.md §3.1, §6).
func readHeader(f *fits.File) (Header, error) {
	if len(f.HDUs()) == 0 {
		return Header{}, wrapf("read header", ErrBadHDUNum)
	}
	hdu := f.HDU(0)
	hdr := hdu.Header()

	var h Header
	h.Origin, _ = getStringCard(hdr, "ORIGIN")
	h.Date, _ = getStringCard(hdr, "DATE")
	h.DateObs, _ = getStringCard(hdr, "DATE-OBS")
	h.Content, _ = getStringCard(hdr, "CONTENT")
	h.Telescop, _ = getStringCard(hdr, "TELESCOP")
	h.Instrume, _ = getStringCard(hdr, "INSTRUME")
	h.Observer, _ = getStringCard(hdr, "OBSERVER")
	h.InsMode, _ = getStringCard(hdr, "INSMODE")
	h.Object, _ = getStringCard(hdr, "OBJECT")
	h.Referenc, _ = getStringCard(hdr, "REFERENC")
	h.Author, _ = getStringCard(hdr, "AUTHOR")
	h.ProgID, _ = getStringCard(hdr, "PROG_ID")
	h.ProcSoft, _ = getStringCard(hdr, "PROCSOFT")
	h.ObsTech, _ = getStringCard(hdr, "OBSTECH")
	return h, nil
}

// writeHeader writes the primary header. Any empty mandatory keyword is
// replaced with the literal "[unset]" (spec.md §4.3): OIFITS readers
// should never see a blank mandatory card, even for a hand-built Dataset
// that never populated one.
func writeHeader(f *fits.File, h Header) error {
	unset := func(s string) string {
		if s == "" {
			return "[unset]"
		}
		return s
	}

	hdr := fits.NewHeader(nil, fits.IMAGE_HDU, 8, []int{})
	setStr(hdr, "ORIGIN", unset(h.Origin), "institution")
	setStr(hdr, "DATE", unset(h.Date), "file creation date")
	setStr(hdr, "DATE-OBS", unset(h.DateObs), "UTC start date of observations")
	setStr(hdr, "CONTENT", "OIFITS2", "file content")
	setStr(hdr, "TELESCOP", unset(h.Telescop), "telescope name")
	setStr(hdr, "INSTRUME", unset(h.Instrume), "instrument name")
	setStr(hdr, "OBSERVER", unset(h.Observer), "observer name")
	setStr(hdr, "INSMODE", unset(h.InsMode), "instrument mode")
	setStr(hdr, "OBJECT", unset(h.Object), "observed object")
	setOptStr(hdr, "REFERENC", h.Referenc, "bibliographic reference")
	setOptStr(hdr, "AUTHOR", h.Author, "author")
	setOptStr(hdr, "PROG_ID", h.ProgID, "programme id")
	setOptStr(hdr, "PROCSOFT", h.ProcSoft, "data reduction software")
	setOptStr(hdr, "OBSTECH", h.ObsTech, "observing technique")

	phdu, err := fits.NewPrimaryHDU(hdr)
	if err != nil {
		return wrapf("write header", err)
	}
	return wrapf("write header", f.Write(phdu))
}
