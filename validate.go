package oifits

import (
	"fmt"

	"github.com/samber/lo"
)

// Severity orders conformance outcomes from none to fatal (spec.md §4.4).
type Severity int

const (
	SeverityNone Severity = iota
	SeverityWarning
	SeverityNotOIFITS
	SeverityNotFITS
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "NONE"
	case SeverityWarning:
		return "WARNING"
	case SeverityNotOIFITS:
		return "NOT_OIFITS"
	case SeverityNotFITS:
		return "NOT_FITS"
	default:
		return "UNKNOWN"
	}
}

// MaxReport bounds the number of location strings a Report carries; the
// remainder is dropped and Truncated is set, which oifits-check prints as
// "[list truncated]" (spec.md §4.4).
const MaxReport = 10

// Report is the result of one validation check, or of the multi-check
// driver (spec.md §4.4).
type Report struct {
	Severity    Severity
	Description string
	Locations   []string
	Truncated   bool
}

func newReport(sev Severity, desc string, locs []string) Report {
	r := Report{Severity: sev, Description: desc}
	if len(locs) > MaxReport {
		r.Locations = append([]string(nil), locs[:MaxReport]...)
		r.Truncated = true
	} else if len(locs) > 0 {
		r.Locations = append([]string(nil), locs...)
	}
	return r
}

func clean() Report { return Report{Severity: SeverityNone} }

// Check is a single conformance test over a dataset.
type Check func(d *Dataset) Report

// Checks lists every named check from spec.md §4.4's table, in the order
// the table presents them; order also fixes Validate's tie-break when two
// checks report the same worst severity (earlier entry wins).
var Checks = []struct {
	Name  string
	Check Check
}{
	{"tables_present", checkTablesPresent},
	{"revisions", checkRevisions},
	{"header_required", checkHeaderRequired},
	{"keyword_values", checkKeywordValues},
	{"visrefmap", checkVisRefMap},
	{"unique_targets", checkUniqueTargets},
	{"targets_present", checkTargetsPresent},
	{"arrname_present", checkArrnamePresent},
	{"elements_present", checkElementsPresent},
	{"corr_present", checkCorrPresent},
	{"flagging", checkFlagging},
	{"t3amp", checkT3Amp},
	{"waveorder", checkWaveOrder},
	{"time_deprecated", checkTimeDeprecated},
	{"flux_consistency", checkFluxConsistency},
}

// Validate runs every registered check and returns the report of the
// worst severity observed (spec.md §4.4 "multi-check driver").
func Validate(d *Dataset) Report {
	worst := clean()
	for _, c := range Checks {
		r := c.Check(d)
		if r.Severity > worst.Severity {
			worst = r
		}
	}
	return worst
}

func checkTablesPresent(d *Dataset) Report {
	if d.Target == nil || len(d.Target.Targets) == 0 {
		return newReport(SeverityNotOIFITS, "TARGET table missing or empty", nil)
	}
	if len(d.Vis) == 0 && len(d.Vis2) == 0 && len(d.T3) == 0 {
		return newReport(SeverityNotOIFITS, "no VIS, VIS2 or T3 data table present", nil)
	}
	return clean()
}

func checkRevisions(d *Dataset) Report {
	var locs []string
	add := func(extname string, i, rev, max int) {
		if rev < 1 || rev > max {
			locs = append(locs, fmt.Sprintf("%s[%d]: OI_REVN=%d", extname, i, rev))
		}
	}
	for i, t := range d.Arrays {
		add(extnameArray, i, t.Revision, 2)
	}
	for i, t := range d.Wavelengths {
		add(extnameWavelength, i, t.Revision, 2)
	}
	for i, t := range d.Corrs {
		add(extnameCorr, i, t.Revision, 1)
	}
	for i, t := range d.Inspols {
		add(extnameInspol, i, t.Revision, 2)
	}
	for i, t := range d.Vis {
		add(extnameVis, i, t.Revision, 2)
	}
	for i, t := range d.Vis2 {
		add(extnameVis2, i, t.Revision, 2)
	}
	for i, t := range d.T3 {
		add(extnameT3, i, t.Revision, 2)
	}
	for i, t := range d.Flux {
		add(extnameFlux, i, t.Revision, 2)
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "table revision out of known range", locs)
}

func checkHeaderRequired(d *Dataset) Report {
	h := d.Header
	required := map[string]string{
		"ORIGIN": h.Origin, "DATE": h.Date, "DATE-OBS": h.DateObs,
		"TELESCOP": h.Telescop, "INSTRUME": h.Instrume, "OBSERVER": h.Observer,
		"INSMODE": h.InsMode, "OBJECT": h.Object,
	}
	var locs []string
	for key, val := range required {
		if val == "" {
			locs = append(locs, "primary header: "+key)
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "mandatory primary-header keyword empty", locs)
}

func checkKeywordValues(d *Dataset) Report {
	var locs []string
	for i, a := range d.Arrays {
		if a.FrameName != FrameGeocentric && a.FrameName != FrameSky {
			locs = append(locs, fmt.Sprintf("%s[%d]: FRAME=%q", extnameArray, i, a.FrameName))
		}
	}
	for i, v := range d.Vis {
		if v.AmpType != AmpUnset && v.AmpType != AmpAbsolute && v.AmpType != AmpDifferential && v.AmpType != AmpCorrelatedFlux {
			locs = append(locs, fmt.Sprintf("%s[%d]: AMPTYP=%q", extnameVis, i, v.AmpType))
		}
		if v.PhiType != PhiUnset && v.PhiType != PhiAbsolute && v.PhiType != PhiDifferential {
			locs = append(locs, fmt.Sprintf("%s[%d]: PHITYP=%q", extnameVis, i, v.PhiType))
		}
	}
	for i, fl := range d.Flux {
		if fl.CalStat != CalStatUnset && fl.CalStat != CalStatCalibrated && fl.CalStat != CalStatUncalibrated {
			locs = append(locs, fmt.Sprintf("%s[%d]: CALSTAT=%q", extnameFlux, i, fl.CalStat))
		}
		if fl.FovType != FovUnset && fl.FovType != FovFWHM && fl.FovType != FovRadius {
			locs = append(locs, fmt.Sprintf("%s[%d]: FOVTYPE=%q", extnameFlux, i, fl.FovType))
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "keyword value outside closed set", locs)
}

func checkVisRefMap(d *Dataset) Report {
	var fatal, warn []string
	for i, v := range d.Vis {
		differential := v.AmpType == AmpDifferential || v.PhiType == PhiDifferential
		if differential && !v.UseRefMap {
			fatal = append(fatal, fmt.Sprintf("%s[%d]: differential without VISREFMAP", extnameVis, i))
		}
		if !differential && v.UseRefMap {
			warn = append(warn, fmt.Sprintf("%s[%d]: VISREFMAP present but not differential", extnameVis, i))
		}
	}
	if len(fatal) > 0 {
		return newReport(SeverityNotOIFITS, "VISREFMAP presence inconsistent with AMPTYP/PHITYP", fatal)
	}
	if len(warn) > 0 {
		return newReport(SeverityWarning, "VISREFMAP present without differential amplitude or phase", warn)
	}
	return clean()
}

func checkUniqueTargets(d *Dataset) Report {
	if d.Target == nil {
		return clean()
	}
	names := lo.Map(d.Target.Targets, func(t Target, _ int) string { return t.Target })
	dups := lo.FindDuplicates(names)
	if len(dups) == 0 {
		return clean()
	}
	locs := lo.Map(dups, func(n string, _ int) string { return "TARGET: " + n })
	return newReport(SeverityWarning, "duplicate target name", locs)
}

func checkTargetsPresent(d *Dataset) Report {
	known := make(map[int]bool, len(d.Target.Targets))
	for _, t := range d.Target.Targets {
		known[t.TargetID] = true
	}
	var locs []string
	check := func(extname string, i int, id int) {
		if !known[id] {
			locs = append(locs, fmt.Sprintf("%s[%d]: target_id=%d", extname, i, id))
		}
	}
	for i, v := range d.Vis {
		for _, r := range v.Records {
			check(extnameVis, i, r.TargetID)
		}
	}
	for i, v2 := range d.Vis2 {
		for _, r := range v2.Records {
			check(extnameVis2, i, r.TargetID)
		}
	}
	for i, t3 := range d.T3 {
		for _, r := range t3.Records {
			check(extnameT3, i, r.TargetID)
		}
	}
	for i, fl := range d.Flux {
		for _, r := range fl.Records {
			check(extnameFlux, i, r.TargetID)
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "data record target_id absent from TARGET table", locs)
}

func checkArrnamePresent(d *Dataset) Report {
	var locs []string
	for i, ip := range d.Inspols {
		if ip.ArrName == "" {
			locs = append(locs, fmt.Sprintf("%s[%d]: missing ARRNAME", extnameInspol, i))
		}
	}
	for i, v := range d.Vis {
		if v.Revision >= 2 && v.ArrName == "" {
			locs = append(locs, fmt.Sprintf("%s[%d]: missing ARRNAME", extnameVis, i))
		}
	}
	for i, v2 := range d.Vis2 {
		if v2.Revision >= 2 && v2.ArrName == "" {
			locs = append(locs, fmt.Sprintf("%s[%d]: missing ARRNAME", extnameVis2, i))
		}
	}
	for i, t3 := range d.T3 {
		if t3.Revision >= 2 && t3.ArrName == "" {
			locs = append(locs, fmt.Sprintf("%s[%d]: missing ARRNAME", extnameT3, i))
		}
	}
	for i, fl := range d.Flux {
		if fl.CalStat == CalStatUncalibrated && fl.ArrName == "" {
			locs = append(locs, fmt.Sprintf("%s[%d]: missing ARRNAME", extnameFlux, i))
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "table requires ARRNAME but lacks one", locs)
}

func checkElementsPresent(d *Dataset) Report {
	var locs []string
	hasStation := func(arrname string, idx int) bool {
		if arrname == "" || idx == AbsentInt {
			return true
		}
		a, ok := d.ArrayByName(arrname)
		if !ok {
			return true // surfaced by arrname_present/corr_present instead
		}
		_, found := a.StationByIndex(idx)
		return found
	}
	for i, v := range d.Vis {
		for _, r := range v.Records {
			for _, idx := range r.StaIndex {
				if !hasStation(v.ArrName, idx) {
					locs = append(locs, fmt.Sprintf("%s[%d]: unknown station %d", extnameVis, i, idx))
				}
			}
		}
	}
	for i, v2 := range d.Vis2 {
		for _, r := range v2.Records {
			for _, idx := range r.StaIndex {
				if !hasStation(v2.ArrName, idx) {
					locs = append(locs, fmt.Sprintf("%s[%d]: unknown station %d", extnameVis2, i, idx))
				}
			}
		}
	}
	for i, t3 := range d.T3 {
		for _, r := range t3.Records {
			for _, idx := range r.StaIndex {
				if !hasStation(t3.ArrName, idx) {
					locs = append(locs, fmt.Sprintf("%s[%d]: unknown station %d", extnameT3, i, idx))
				}
			}
		}
	}
	for i, ip := range d.Inspols {
		for _, r := range ip.Records {
			if !hasStation(ip.ArrName, r.StaIndex) {
				locs = append(locs, fmt.Sprintf("%s[%d]: unknown station %d", extnameInspol, i, r.StaIndex))
			}
		}
	}
	for i, fl := range d.Flux {
		if fl.CalStat != CalStatUncalibrated {
			continue
		}
		for _, r := range fl.Records {
			if !hasStation(fl.ArrName, r.StaIndex) {
				locs = append(locs, fmt.Sprintf("%s[%d]: unknown station %d", extnameFlux, i, r.StaIndex))
			}
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "station index not present in referenced ARRAY", locs)
}

func checkCorrPresent(d *Dataset) Report {
	var locs []string
	check := func(extname string, i int, corrname string) {
		if corrname == "" {
			return
		}
		if _, ok := d.CorrByName(corrname); !ok {
			locs = append(locs, fmt.Sprintf("%s[%d]: corrname=%q", extname, i, corrname))
		}
	}
	for i, v := range d.Vis {
		check(extnameVis, i, v.CorrName)
	}
	for i, v2 := range d.Vis2 {
		check(extnameVis2, i, v2.CorrName)
	}
	for i, t3 := range d.T3 {
		check(extnameT3, i, t3.CorrName)
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "corrname does not resolve to an OI_CORR table", locs)
}

func checkFlagging(d *Dataset) Report {
	var locs []string
	negErr := func(extname string, i, j int, flagged bool, errs ...float64) {
		if flagged {
			return
		}
		for _, e := range errs {
			if e < 0 {
				locs = append(locs, fmt.Sprintf("%s[%d] channel %d: negative error bar", extname, i, j))
				return
			}
		}
	}
	for i, v := range d.Vis {
		for _, r := range v.Records {
			for j := range r.Flag {
				negErr(extnameVis, i, j, r.Flag[j], r.VisAmpErr[j], r.VisPhiErr[j])
			}
		}
	}
	for i, v2 := range d.Vis2 {
		for _, r := range v2.Records {
			for j := range r.Flag {
				negErr(extnameVis2, i, j, r.Flag[j], r.Vis2Err[j])
			}
		}
	}
	for i, t3 := range d.T3 {
		for _, r := range t3.Records {
			for j := range r.Flag {
				negErr(extnameT3, i, j, r.Flag[j], r.T3AmpErr[j], r.T3PhiErr[j])
			}
		}
	}
	for i, fl := range d.Flux {
		for _, r := range fl.Records {
			for j := range r.Flag {
				negErr(extnameFlux, i, j, r.Flag[j], r.FluxErr[j])
			}
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "unflagged channel has negative error bar", locs)
}

func checkT3Amp(d *Dataset) Report {
	var locs []string
	for i, t3 := range d.T3 {
		for _, r := range t3.Records {
			for j := range r.Flag {
				if r.Flag[j] {
					continue
				}
				if r.T3Amp[j] > 1+r.T3AmpErr[j] {
					locs = append(locs, fmt.Sprintf("%s[%d] channel %d: T3AMP=%.6g exceeds 1 by more than 1 sigma", extnameT3, i, j, r.T3Amp[j]))
				}
			}
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "T3AMP inconsistent with unity triple-product normalization", locs)
}

func checkWaveOrder(d *Dataset) Report {
	var locs []string
	for i, w := range d.Wavelengths {
		for j := 1; j < len(w.EffWave); j++ {
			if w.EffWave[j] < w.EffWave[j-1] {
				locs = append(locs, fmt.Sprintf("%s[%d]: channel %d < channel %d", extnameWavelength, i, j, j-1))
				break
			}
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityWarning, "effective wavelengths not monotonically non-decreasing", locs)
}

func checkTimeDeprecated(d *Dataset) Report {
	var locs []string
	for i, v := range d.Vis {
		if v.Revision < 2 {
			continue
		}
		for k, r := range v.Records {
			if r.Time != 0 {
				locs = append(locs, fmt.Sprintf("%s[%d] record %d: TIME=%g", extnameVis, i, k, r.Time))
			}
		}
	}
	for i, v2 := range d.Vis2 {
		if v2.Revision < 2 {
			continue
		}
		for k, r := range v2.Records {
			if r.Time != 0 {
				locs = append(locs, fmt.Sprintf("%s[%d] record %d: TIME=%g", extnameVis2, i, k, r.Time))
			}
		}
	}
	for i, t3 := range d.T3 {
		if t3.Revision < 2 {
			continue
		}
		for k, r := range t3.Records {
			if r.Time != 0 {
				locs = append(locs, fmt.Sprintf("%s[%d] record %d: TIME=%g", extnameT3, i, k, r.Time))
			}
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityWarning, "non-zero TIME in revision 2 data", locs)
}

func checkFluxConsistency(d *Dataset) Report {
	var locs []string
	for i, fl := range d.Flux {
		switch fl.CalStat {
		case CalStatUncalibrated:
			if fl.ArrName == "" {
				locs = append(locs, fmt.Sprintf("%s[%d]: uncalibrated but no ARRNAME", extnameFlux, i))
			}
			for k, r := range fl.Records {
				if r.StaIndex == AbsentInt {
					locs = append(locs, fmt.Sprintf("%s[%d] record %d: uncalibrated but no STA_INDEX", extnameFlux, i, k))
				}
			}
		case CalStatCalibrated:
			if fl.ArrName != "" {
				locs = append(locs, fmt.Sprintf("%s[%d]: calibrated but carries ARRNAME", extnameFlux, i))
			}
			for k, r := range fl.Records {
				if r.StaIndex != AbsentInt {
					locs = append(locs, fmt.Sprintf("%s[%d] record %d: calibrated but carries STA_INDEX", extnameFlux, i, k))
				}
			}
		}
	}
	if len(locs) == 0 {
		return clean()
	}
	return newReport(SeverityNotOIFITS, "CALSTAT inconsistent with ARRNAME/STA_INDEX presence", locs)
}
