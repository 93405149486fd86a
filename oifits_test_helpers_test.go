package oifits

// newTestDataset builds a minimal two-station, one-target, one-channel
// dataset with a single OI_VIS2 table, used as a fixture across several
// test files.
func newTestDataset() *Dataset {
	d := NewDataset()
	d.Header = Header{
		Origin: "TEST", Date: "2020-01-01", DateObs: "2020-01-01",
		Telescop: "VLTI", Instrume: "PIONIER", Observer: "tester",
		InsMode: "FREE", Object: "test star",
	}

	arr := NewArrayTable(2)
	arr.ArrName = "VLTI"
	arr.FrameName = FrameGeocentric
	arr.ArrayXYZ = [3]float64{1, 2, 3}
	arr.Elements[0] = Element{TelName: "A0", StaName: "A0", StaIndex: 1, Diameter: 1.8, StaXYZ: [3]float64{0, 0, 0}}
	arr.Elements[1] = Element{TelName: "B0", StaName: "B0", StaIndex: 2, Diameter: 1.8, StaXYZ: [3]float64{10, 0, 0}}
	d.Arrays = append(d.Arrays, arr)

	wave := NewWavelengthTable(1)
	wave.InsName = "PIONIER"
	wave.EffWave[0] = 1.65e-6
	wave.EffBand[0] = 0.3e-6
	d.Wavelengths = append(d.Wavelengths, wave)

	d.Target.Targets = append(d.Target.Targets, Target{
		TargetID: 1, Target: "test star", RAEp0: 10, DecEp0: 20, Equinox: 2000,
		SysVel: AbsentReal(), PMRA: AbsentReal(), PMDec: AbsentReal(), Parallax: AbsentReal(),
	})

	v2 := NewVis2Table(1, 1)
	v2.ArrName = "VLTI"
	v2.InsName = "PIONIER"
	v2.DateObs = "2020-01-01"
	r := &v2.Records[0]
	r.TargetID = 1
	r.MJD = 58849.5
	r.IntTime = 10
	r.UCoord = 20
	r.VCoord = 0
	r.StaIndex = [2]int{1, 2}
	r.Vis2Data[0] = 0.5
	r.Vis2Err[0] = 0.01
	r.Flag[0] = false
	d.Vis2 = append(d.Vis2, v2)

	d.RebuildIndex()
	return d
}
