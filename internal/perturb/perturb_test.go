package perturb

import (
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"mirage/internal/catalog"
	"mirage/internal/metadata"
	"mirage/internal/synth"
)

func baseRecord() metadata.Record {
	var rec metadata.Record
	rec.SetText(metadata.DateTimeOriginal, "2024:03:15 10:20:30")
	rec.SetText(metadata.CreateDate, "2024:03:15 10:20:30")
	rec.SetText(metadata.ModifyDate, "2024:03:15 10:20:30")
	rec.SetText(metadata.GPSDateStamp, "2024:03:15")
	rec.SetText(metadata.GPSTimeStamp, "10:20:30")
	rec.SetText(metadata.GPSLatitude, "45.500000")
	rec.SetText(metadata.GPSLatitudeRef, "N")
	rec.SetText(metadata.GPSLongitude, "179.000000")
	rec.SetText(metadata.GPSLongitudeRef, "E")
	rec.SetText(metadata.GPSAltitude, "120.00")
	rec.SetText(metadata.ExposureTime, "1/100")
	rec.SetText(metadata.FNumber, "2.8")
	rec.SetText(metadata.ISO, "200")
	rec.SetText(metadata.FocalLength, "6.0mm")
	rec.SetText(metadata.WhiteBalance, "Auto")
	rec.SetText(metadata.Flash, "No Flash")
	rec.SetText(metadata.Make, "Apple")
	return rec
}

func TestPerturb_Deterministic(t *testing.T) {
	e := New(catalog.Default())
	rec := baseRecord()

	a := e.Perturb(rec, "/photos/IMG_0001.jpg")
	b := e.Perturb(rec, "/photos/IMG_0001.jpg")
	if a != b {
		t.Fatalf("same file should perturb identically:\n%v\n%v", a.Strings(), b.Strings())
	}

	c := e.Perturb(rec, "/photos/IMG_0002.jpg")
	if a == c {
		t.Fatalf("different files should vary independently")
	}

	if rec != baseRecord() {
		t.Fatalf("input record was modified")
	}
}

func TestPerturb_LeavesGeneratorSequenceAlone(t *testing.T) {
	cat := catalog.Default()
	e := New(cat)
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	newGen := func() *synth.Generator {
		return synth.New(cat, synth.WithRand(rand.New(rand.NewPCG(42, 42))), synth.WithClock(clock))
	}

	baseline := newGen()
	want := make([]metadata.Record, 20)
	for i := range want {
		want[i] = baseline.Generate()
	}

	interleaved := newGen()
	for i := range want {
		got := interleaved.Generate()
		if got != want[i] {
			t.Fatalf("record %d differs once perturbation runs between draws:\n%v\n%v", i, got.Strings(), want[i].Strings())
		}

		first := e.Perturb(got, "file-"+strconv.Itoa(i))
		e.Perturb(baseRecord(), "other-"+strconv.Itoa(i))
		if again := e.Perturb(got, "file-"+strconv.Itoa(i)); again != first {
			t.Fatalf("perturbation of record %d depends on call order", i)
		}
	}
}

func TestPerturb_CoordinatesStayInRange(t *testing.T) {
	e := New(catalog.Default())
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 10000; i++ {
		lat := -90 + r.Float64()*180
		lon := -180 + r.Float64()*360

		var rec metadata.Record
		rec.SetText(metadata.GPSLatitude, synth.FormatCoordinate(lat))
		rec.SetText(metadata.GPSLatitudeRef, synth.LatitudeRef(lat))
		rec.SetText(metadata.GPSLongitude, synth.FormatCoordinate(lon))
		rec.SetText(metadata.GPSLongitudeRef, synth.LongitudeRef(lon))

		out := e.Perturb(rec, "trial-"+strconv.Itoa(i))

		gotLat := signed(t, out, metadata.GPSLatitude, metadata.GPSLatitudeRef, "S")
		gotLon := signed(t, out, metadata.GPSLongitude, metadata.GPSLongitudeRef, "W")

		if gotLat < -90 || gotLat > 90 {
			t.Fatalf("latitude %f out of range", gotLat)
		}
		if gotLon <= -180 || gotLon > 180 {
			t.Fatalf("longitude %f out of range", gotLon)
		}
	}
}

func signed(t *testing.T, rec metadata.Record, value, ref metadata.Field, neg string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(rec.Get(value).String(), 64)
	if err != nil {
		t.Fatalf("%s not numeric: %q", value, rec.Get(value).String())
	}
	if v < 0 {
		t.Fatalf("%s should be a magnitude when a reference is set", value)
	}
	if rec.Get(ref).String() == neg {
		return -v
	}
	return v
}

func TestPerturb_SignedCoordinateWithoutRef(t *testing.T) {
	var rec metadata.Record
	rec.SetText(metadata.GPSLongitude, "-179.500000")

	out := New(catalog.Default()).Perturb(rec, "x")
	v, err := strconv.ParseFloat(out.Get(metadata.GPSLongitude).String(), 64)
	if err != nil {
		t.Fatalf("longitude not numeric: %v", err)
	}
	if v <= -180 || v > 180 {
		t.Fatalf("longitude %f out of range", v)
	}
	if !out.Get(metadata.GPSLongitudeRef).IsOmitted() {
		t.Fatalf("absent reference should stay absent")
	}
}

func TestPerturb_Bounds(t *testing.T) {
	e := New(catalog.Default())
	base := time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC)
	maxShift := (180*24+23)*time.Hour + 59*time.Minute + 59*time.Second

	for i := 0; i < 500; i++ {
		out := e.Perturb(baseRecord(), "bounds-"+strconv.Itoa(i))

		for _, f := range []metadata.Field{metadata.DateTimeOriginal, metadata.CreateDate, metadata.ModifyDate} {
			at, err := time.Parse(synth.DateTimeLayout, out.Get(f).String())
			if err != nil {
				t.Fatalf("%s: %v", f, err)
			}
			if d := at.Sub(base); d > maxShift || d < -maxShift {
				t.Fatalf("%s shifted by %s", f, d)
			}
		}

		iso, _ := strconv.Atoi(out.Get(metadata.ISO).String())
		if iso < 100 || iso > 300 {
			t.Fatalf("ISO %d out of range", iso)
		}

		alt, _ := strconv.ParseFloat(out.Get(metadata.GPSAltitude).String(), 64)
		if alt < 0 || alt > 2120 {
			t.Fatalf("altitude %f out of range", alt)
		}

		if want := out.Get(metadata.DateTimeOriginal).String(); out.Get(metadata.GPSDateStamp).String()+" "+out.Get(metadata.GPSTimeStamp).String() != want {
			t.Fatalf("gps stamps should follow DateTimeOriginal %s", want)
		}
	}
}

func TestPerturb_SwitchesOnlySetValues(t *testing.T) {
	e := New(catalog.Default())

	var rec metadata.Record
	rec.Set(metadata.WhiteBalance, metadata.Erase())

	for i := 0; i < 100; i++ {
		out := e.Perturb(rec, strconv.Itoa(i))
		if !out.Get(metadata.WhiteBalance).IsEmpty() {
			t.Fatalf("cleared white balance must stay cleared")
		}
		if !out.Get(metadata.Flash).IsOmitted() {
			t.Fatalf("omitted flash must stay omitted")
		}
	}
}

func TestPerturb_UnparseableLeftUntouched(t *testing.T) {
	var rec metadata.Record
	rec.SetText(metadata.ExposureTime, "fast")
	rec.SetText(metadata.ISO, "auto")
	rec.SetText(metadata.DateTimeOriginal, "yesterday")
	rec.SetText(metadata.GPSLatitude, "north-ish")
	rec.SetText(metadata.FocalLength, "zoom")

	out := New(catalog.Default()).Perturb(rec, "file")
	if out != rec {
		t.Fatalf("unparseable values changed: %v", out.Strings())
	}
}

func TestScaleExposure(t *testing.T) {
	cases := []struct {
		in     string
		factor float64
		want   string
	}{
		{"1/100", 1.0, "1/100"},
		{"1/100", 2.0, "1/50"},
		{"1/2", 3.0, "1.5"},
		{"0.5", 1.0, "1/2"},
		{"2", 1.3, "2.6"},
	}
	for _, tc := range cases {
		got, err := scaleExposure(tc.in, tc.factor)
		if err != nil || got != tc.want {
			t.Fatalf("scaleExposure(%q, %v) = %q, %v want %q", tc.in, tc.factor, got, err, tc.want)
		}
	}

	if _, err := scaleExposure("1/0", 1); !errors.Is(err, metadata.ErrUnparseableValue) {
		t.Fatalf("expected ErrUnparseableValue, got %v", err)
	}
}

func TestValueHelpers_ExtremeInputs(t *testing.T) {
	helpers := map[string]func(string) (string, error){
		"exposure": func(s string) (string, error) { return scaleExposure(s, 1.3) },
		"aperture": func(s string) (string, error) { return scaleAperture(s, 1) },
		"iso":      func(s string) (string, error) { return shiftISO(s, 100) },
		"focal":    func(s string) (string, error) { return scaleFocal(s, 1.2) },
		"altitude": func(s string) (string, error) { return shiftAltitude(s, 100) },
	}
	inputs := []string{"NaN", "Inf", "-Inf", "1e400", "1e300", "1/1e300", "9223372036854775807"}

	for name, fn := range helpers {
		for _, in := range inputs {
			if got, err := fn(in); !errors.Is(err, metadata.ErrUnparseableValue) {
				t.Fatalf("%s(%q) = %q, %v want ErrUnparseableValue", name, in, got, err)
			}
		}
	}

	for _, in := range []string{"5e-324", "1e-5/1e5"} {
		if got, err := scaleExposure(in, 0.7); !errors.Is(err, metadata.ErrUnparseableValue) {
			t.Fatalf("scaleExposure(%q) = %q, %v want ErrUnparseableValue", in, got, err)
		}
	}

	var rec metadata.Record
	rec.SetText(metadata.ExposureTime, "5e-324")
	rec.SetText(metadata.ISO, "9223372036854775807")
	rec.SetText(metadata.GPSAltitude, "NaN")
	if out := New(catalog.Default()).Perturb(rec, "file"); out != rec {
		t.Fatalf("extreme values changed: %v", out.Strings())
	}
}

func TestValueHelpers(t *testing.T) {
	if got, _ := scaleAperture("2.8", 0); got != "2.8" {
		t.Fatalf("aperture at zero stops = %q", got)
	}
	if got, _ := scaleAperture("2.0", 1); got != "2.8" {
		t.Fatalf("one stop from f/2.0 = %q", got)
	}
	if got, _ := shiftISO("150", -100); got != "100" {
		t.Fatalf("ISO floor = %q", got)
	}
	if got, _ := scaleFocal("6.0mm", 1.2); got != "7mm" {
		t.Fatalf("focal = %q", got)
	}
	if got, _ := shiftAltitude("100", -500); got != "0.00" {
		t.Fatalf("altitude floor = %q", got)
	}
	for in, want := range map[float64]float64{180: 180, -180: 180, 181: -179, -181: 179, 540: 180} {
		if got := wrapLongitude(in); math.Abs(got-want) > 1e-9 {
			t.Fatalf("wrapLongitude(%v) = %v want %v", in, got, want)
		}
	}
	if Seed("a") == Seed("b") || Seed("a") != Seed("a") {
		t.Fatalf("seed must be stable and vary by identity")
	}
}
