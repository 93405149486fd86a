package oifits

import (
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// Date2MJD converts a Gregorian calendar date to Modified Julian Date
// (spec.md §1 "any Gregorian-date/MJD helpers" is an external
// collaborator; this repo's copy follows sixy6e/go-gsf's use of
// soniakeys/meeus for the same conversion).
func Date2MJD(year, month, day int) float64 {
	jd := julian.CalendarGregorianToJD(year, month, float64(day))
	return float64(jd) - 2400000.5
}

// MJD2Date converts a Modified Julian Date back to a Gregorian calendar
// date, truncating any fractional day.
func MJD2Date(mjd float64) (year, month, day int) {
	y, m, d := julian.JDToCalendar(unit.JulianDay(mjd + 2400000.5))
	return y, m, int(d)
}
