package oifits

import (
	"math"
	"testing"
)

func TestDate2MJD(t *testing.T) {
	cases := []struct {
		y, m, d int
		want    float64
	}{
		{2014, 11, 13, 56974},
		{1901, 1, 1, 15385},
		{2099, 12, 31, 88068},
	}
	for _, c := range cases {
		got := Date2MJD(c.y, c.m, c.d)
		if math.Abs(got-c.want) > 0.5 {
			t.Errorf("Date2MJD(%d,%d,%d) = %v, want %v", c.y, c.m, c.d, got, c.want)
		}
	}
}

func TestMJD2Date(t *testing.T) {
	cases := []struct {
		mjd        float64
		y, m, d int
	}{
		{56974, 2014, 11, 13},
		{15385, 1901, 1, 1},
		{88068, 2099, 12, 31},
	}
	for _, c := range cases {
		y, m, d := MJD2Date(c.mjd)
		if y != c.y || m != c.m || d != c.d {
			t.Errorf("MJD2Date(%v) = %d-%d-%d, want %d-%d-%d", c.mjd, y, m, d, c.y, c.m, c.d)
		}
	}
}

func TestMJDRoundTrip(t *testing.T) {
	for _, mjd := range []float64{50000, 56974, 60310} {
		y, m, d := MJD2Date(mjd)
		back := Date2MJD(y, m, d)
		if math.Abs(back-mjd) > 0.5 {
			t.Errorf("round trip mjd=%v -> %d-%d-%d -> %v", mjd, y, m, d, back)
		}
	}
}
