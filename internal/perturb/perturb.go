// BYZRA ⸻ internal/perturb/perturb.go
// deterministic per-file variation of a shared record

package perturb

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"mirage/internal/catalog"
	"mirage/internal/metadata"
	"mirage/internal/synth"
)

const (
	maxShiftDays    = 180
	maxShiftHours   = 23
	maxShiftMinutes = 59

	maxCoordShift    = 9.0
	maxAltitudeShift = 2000.0

	minExposureFactor = 0.7
	maxExposureFactor = 1.3

	maxISOShift = 100
	minISO      = 100

	minFocalFactor = 0.8
	maxFocalFactor = 1.2

	switchChance = 0.3
)

// Engine varies a base record per file.
//
// Each call builds its own random source from the file identity, so the
// same (record, identity) pair always yields the same output and no shared
// source is touched. Engine is safe for concurrent use.
type Engine struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// stable 64-bit seed for a file identity
func Seed(identity string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(identity))
	return h.Sum64()
}

// Perturb returns a file-specific copy of rec.
//
// Fields that are absent, empty or unparseable are left as they are.
func (e *Engine) Perturb(rec metadata.Record, identity string) metadata.Record {
	seed := Seed(identity)
	rng := rand.New(rand.NewPCG(seed, ^seed))

	out := rec
	gpsFollowsCapture := stampsMatch(rec)

	for _, f := range []metadata.Field{metadata.DateTimeOriginal, metadata.CreateDate, metadata.ModifyDate} {
		offset := timeOffset(rng)
		update(&out, f, func(s string) (string, error) { return shiftTimestamp(s, offset) })
	}

	if gpsFollowsCapture {
		if t, err := time.Parse(synth.DateTimeLayout, out.Get(metadata.DateTimeOriginal).String()); err == nil {
			out.SetText(metadata.GPSDateStamp, t.Format(synth.DateLayout))
			out.SetText(metadata.GPSTimeStamp, t.Format(synth.TimeLayout))
		}
	}

	shiftCoordinate(&out, latitude, uniform(rng, -maxCoordShift, maxCoordShift))
	shiftCoordinate(&out, longitude, uniform(rng, -maxCoordShift, maxCoordShift))

	altDelta := uniform(rng, -maxAltitudeShift, maxAltitudeShift)
	update(&out, metadata.GPSAltitude, func(s string) (string, error) { return shiftAltitude(s, altDelta) })

	expFactor := uniform(rng, minExposureFactor, maxExposureFactor)
	update(&out, metadata.ExposureTime, func(s string) (string, error) { return scaleExposure(s, expFactor) })

	stops := uniform(rng, -1, 1)
	update(&out, metadata.FNumber, func(s string) (string, error) { return scaleAperture(s, stops) })

	isoDelta := rng.IntN(2*maxISOShift+1) - maxISOShift
	update(&out, metadata.ISO, func(s string) (string, error) { return shiftISO(s, isoDelta) })

	focalFactor := uniform(rng, minFocalFactor, maxFocalFactor)
	update(&out, metadata.FocalLength, func(s string) (string, error) { return scaleFocal(s, focalFactor) })

	for _, f := range []metadata.Field{metadata.WhiteBalance, metadata.Flash} {
		switchValue := rng.Float64() < switchChance
		choices := e.cat.Values(f)
		idx := rng.IntN(max(len(choices), 1))
		if switchValue && out.Get(f).IsSet() && len(choices) > 0 {
			out.SetText(f, choices[idx])
		}
	}

	return out
}

// rewrites a Set field; parse failures leave it untouched
func update(rec *metadata.Record, f metadata.Field, fn func(string) (string, error)) {
	v := rec.Get(f)
	if !v.IsSet() {
		return
	}
	if next, err := fn(v.String()); err == nil {
		rec.SetText(f, next)
	}
}

// true when the GPS stamps carry the same instant as DateTimeOriginal
func stampsMatch(rec metadata.Record) bool {
	d, t, o := rec.Get(metadata.GPSDateStamp), rec.Get(metadata.GPSTimeStamp), rec.Get(metadata.DateTimeOriginal)
	if !d.IsSet() || !t.IsSet() || !o.IsSet() {
		return false
	}
	return d.String()+" "+t.String() == o.String()
}

func timeOffset(rng *rand.Rand) time.Duration {
	days := rng.IntN(2*maxShiftDays+1) - maxShiftDays
	hours := rng.IntN(2*maxShiftHours+1) - maxShiftHours
	minutes := rng.IntN(2*maxShiftMinutes+1) - maxShiftMinutes
	seconds := rng.IntN(60)

	return time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
