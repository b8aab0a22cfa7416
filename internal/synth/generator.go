// BYZRA ⸻ internal/synth/generator.go
// coherent synthetic metadata records

package synth

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"mirage/internal/catalog"
	"mirage/internal/metadata"
)

const (
	// exif date/time layouts
	DateTimeLayout = "2006:01:02 15:04:05"
	DateLayout     = "2006:01:02"
	TimeLayout     = "15:04:05"

	captureWindow = 3 * 365 * 24 * time.Hour

	minLatitude  = -60.0
	maxLatitude  = 70.0
	maxLongitude = 180.0
	maxAltitude  = 3000.0
)

// draws one internally-consistent record per call
type Generator struct {
	mu     sync.Mutex
	cat    *catalog.Catalog
	rng    *rand.Rand
	now    func() time.Time
	locale catalog.Locale
}

type Option func(*Generator)

// fixed random source, mostly for tests
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// language of descriptive fields
func WithLocale(l catalog.Locale) Option {
	return func(g *Generator) { g.locale = l }
}

func New(cat *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{
		cat:    cat,
		now:    time.Now,
		locale: catalog.LocaleEN,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Generate returns a fresh record with every field set.
//
// Make, model, software and lens are correlated through the catalog. Shooting
// parameters are drawn independently of the device.
func (g *Generator) Generate() metadata.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	var rec metadata.Record

	brand := pick(g.rng, g.cat.Makes())
	model := pick(g.rng, g.cat.Models(brand))

	rec.SetText(metadata.Make, brand)
	rec.SetText(metadata.Model, model)
	rec.SetText(metadata.Software, pick(g.rng, g.cat.SoftwareFor(brand)))
	rec.SetText(metadata.LensModel, pick(g.rng, g.cat.LensesFor(brand)))

	for _, f := range []metadata.Field{
		metadata.ExposureTime, metadata.FNumber, metadata.ISO, metadata.FocalLength,
		metadata.WhiteBalance, metadata.Flash, metadata.Orientation,
	} {
		rec.SetText(f, pick(g.rng, g.cat.Values(f)))
	}

	captured := g.captureTime()
	stamp := captured.Format(DateTimeLayout)
	rec.SetText(metadata.DateTimeOriginal, stamp)
	rec.SetText(metadata.CreateDate, stamp)
	rec.SetText(metadata.ModifyDate, stamp)

	g.location(&rec, captured)
	g.descriptive(&rec, brand, model, captured)

	return rec
}

func (g *Generator) captureTime() time.Time {
	ago := time.Duration(g.rng.Int64N(int64(captureWindow / time.Second)))
	return g.now().Add(-ago * time.Second).Truncate(time.Second)
}

func (g *Generator) location(rec *metadata.Record, captured time.Time) {
	lat := minLatitude + g.rng.Float64()*(maxLatitude-minLatitude)
	lon := -maxLongitude + g.rng.Float64()*2*maxLongitude
	alt := g.rng.Float64() * maxAltitude

	rec.SetText(metadata.GPSLatitude, FormatCoordinate(lat))
	rec.SetText(metadata.GPSLatitudeRef, LatitudeRef(lat))
	rec.SetText(metadata.GPSLongitude, FormatCoordinate(lon))
	rec.SetText(metadata.GPSLongitudeRef, LongitudeRef(lon))
	rec.SetText(metadata.GPSAltitude, FormatAltitude(alt))
	rec.SetText(metadata.GPSAltitudeRef, pick(g.rng, g.cat.Values(metadata.GPSAltitudeRef)))

	rec.SetText(metadata.GPSTimeStamp, captured.Format(TimeLayout))
	rec.SetText(metadata.GPSDateStamp, captured.Format(DateLayout))
}

func (g *Generator) descriptive(rec *metadata.Record, brand, model string, captured time.Time) {
	pb := g.cat.Phrasebook(g.locale)

	rec.SetText(metadata.Creator, fmt.Sprintf(pb.Creator, between(g.rng, 1, 999)))
	rec.SetText(metadata.Copyright, fmt.Sprintf(pb.Copyright, captured.Year()))
	rec.SetText(metadata.Description, fmt.Sprintf(pb.Description, brand, model))
	rec.SetText(metadata.Title, fmt.Sprintf(pb.Title, between(g.rng, 1000, 9999)))

	topics := pb.Topics
	g.rng.Shuffle(len(topics), func(i, j int) { topics[i], topics[j] = topics[j], topics[i] })
	n := min(between(g.rng, 1, 3), len(topics))
	rec.SetText(metadata.Keywords, strings.Join(topics[:n], pb.KeywordSep))

	rec.SetText(metadata.Location, fmt.Sprintf(pb.Location, between(g.rng, 1, 100)))
}

// absolute value, 6 decimals
func FormatCoordinate(v float64) string {
	if v < 0 {
		v = -v
	}
	return fmt.Sprintf("%.6f", v)
}

func FormatAltitude(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func LatitudeRef(lat float64) string {
	if lat >= 0 {
		return "N"
	}
	return "S"
}

func LongitudeRef(lon float64) string {
	if lon >= 0 {
		return "E"
	}
	return "W"
}

func pick(r *rand.Rand, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[r.IntN(len(options))]
}

// inclusive range
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
