// BYZRA ⸻ internal/perturb/values.go
// parsing and re-rendering of perturbed values

package perturb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"mirage/internal/metadata"
	"mirage/internal/synth"
)

// numeric values beyond this are treated as unparseable
const maxMagnitude = 1e9

func unparseable(s string) error {
	return fmt.Errorf("%w: %q", metadata.ErrUnparseableValue, s)
}

// finite float no larger than maxMagnitude
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxMagnitude {
		return 0, unparseable(s)
	}
	return v, nil
}

func shiftTimestamp(s string, offset time.Duration) (string, error) {
	t, err := time.Parse(synth.DateTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", unparseable(s)
	}
	return t.Add(offset).Format(synth.DateTimeLayout), nil
}

type axis struct {
	value, ref metadata.Field
	pos, neg   string
	wrap       bool
}

var (
	latitude  = axis{metadata.GPSLatitude, metadata.GPSLatitudeRef, "N", "S", false}
	longitude = axis{metadata.GPSLongitude, metadata.GPSLongitudeRef, "E", "W", true}
)

// Moves one coordinate by delta degrees.
//
// With a Set reference the value is read as a magnitude signed by the
// reference, and both are rewritten. Without one the value is signed.
func shiftCoordinate(rec *metadata.Record, a axis, delta float64) {
	v := rec.Get(a.value)
	if !v.IsSet() {
		return
	}

	coord, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	if err != nil || math.IsNaN(coord) || math.IsInf(coord, 0) {
		return
	}

	ref := rec.Get(a.ref)
	hasRef := ref.IsSet()
	if hasRef && strings.EqualFold(strings.TrimSpace(ref.String()), a.neg) {
		coord = -math.Abs(coord)
	}

	next := coord + delta
	if a.wrap {
		next = wrapLongitude(next)
	} else {
		next = clampLatitude(next)
	}

	if !hasRef {
		rec.SetText(a.value, strconv.FormatFloat(next, 'f', 6, 64))
		return
	}

	rec.SetText(a.value, synth.FormatCoordinate(next))
	if next >= 0 {
		rec.SetText(a.ref, a.pos)
	} else {
		rec.SetText(a.ref, a.neg)
	}
}

func clampLatitude(v float64) float64 {
	return math.Max(-90, math.Min(90, v))
}

// into (-180, 180]
func wrapLongitude(v float64) float64 {
	v = math.Mod(v+180, 360)
	if v <= 0 {
		v += 360
	}
	return v - 180
}

func shiftAltitude(s string, delta float64) (string, error) {
	alt, err := parseNumber(s)
	if err != nil {
		return "", err
	}
	return synth.FormatAltitude(math.Max(0, alt+delta)), nil
}

// seconds from "1/N" or a decimal, between 1/maxMagnitude and maxMagnitude
func parseExposure(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "s"))

	var v float64
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := parseNumber(num)
		d, err2 := parseNumber(den)
		if err1 != nil || err2 != nil || d <= 0 {
			return 0, unparseable(s)
		}
		v = n / d
	} else {
		var err error
		if v, err = parseNumber(s); err != nil {
			return 0, err
		}
	}

	if v < 1/maxMagnitude {
		return 0, unparseable(s)
	}
	return v, nil
}

// "1/N" under a second, else seconds to two decimals
func formatExposure(seconds float64) string {
	if seconds < 1 {
		den := max(int64(math.Round(1/seconds)), 1)
		return fmt.Sprintf("1/%d", den)
	}
	return strconv.FormatFloat(math.Round(seconds*100)/100, 'f', -1, 64)
}

func scaleExposure(s string, factor float64) (string, error) {
	v, err := parseExposure(s)
	if err != nil {
		return "", err
	}
	return formatExposure(v * factor), nil
}

// one stop is a factor of sqrt(2) on the f-number
func scaleAperture(s string, stops float64) (string, error) {
	f, err := parseNumber(strings.TrimPrefix(strings.TrimSpace(s), "f/"))
	if err != nil || f <= 0 {
		return "", unparseable(s)
	}
	next := math.Round(f*math.Pow(2, stops/2)*10) / 10
	return strconv.FormatFloat(next, 'f', 1, 64), nil
}

func shiftISO(s string, delta int) (string, error) {
	iso, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || iso > maxMagnitude || iso < -maxMagnitude {
		return "", unparseable(s)
	}
	return strconv.Itoa(max(minISO, iso+delta)), nil
}

func scaleFocal(s string, factor float64) (string, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "mm"))
	f, err := parseNumber(trimmed)
	if err != nil || f <= 0 {
		return "", unparseable(s)
	}
	return fmt.Sprintf("%dmm", max(int(f*factor), 1)), nil
}
