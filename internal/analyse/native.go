// BYZRA ⸻ internal/analyse/native.go
// in-process EXIF reading for when exiftool is missing

package analyse

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"mirage/internal/metadata"
)

// EXIF tag backing each field goexif can decode
var nativeTags = map[metadata.Field]exif.FieldName{
	metadata.Make:             exif.Make,
	metadata.Model:            exif.Model,
	metadata.Software:         exif.Software,
	metadata.LensModel:        exif.LensModel,
	metadata.ExposureTime:     exif.ExposureTime,
	metadata.FNumber:          exif.FNumber,
	metadata.ISO:              exif.ISOSpeedRatings,
	metadata.FocalLength:      exif.FocalLength,
	metadata.WhiteBalance:     exif.WhiteBalance,
	metadata.Flash:            exif.Flash,
	metadata.Orientation:      exif.Orientation,
	metadata.DateTimeOriginal: exif.DateTimeOriginal,
	metadata.CreateDate:       exif.DateTimeDigitized,
	metadata.ModifyDate:       exif.DateTime,
	metadata.GPSLatitudeRef:   exif.GPSLatitudeRef,
	metadata.GPSLongitudeRef:  exif.GPSLongitudeRef,
	metadata.GPSAltitude:      exif.GPSAltitude,
	metadata.GPSDateStamp:     exif.GPSDateStamp,
	metadata.Creator:          exif.Artist,
	metadata.Copyright:        exif.Copyright,
	metadata.Description:      exif.ImageDescription,
}

// exif orientation 1..8
var orientationNames = []string{
	"Horizontal (normal)", "Mirror horizontal", "Rotate 180", "Mirror vertical",
	"Mirror horizontal and rotate 270 CW", "Rotate 90 CW",
	"Mirror horizontal and rotate 90 CW", "Rotate 270 CW",
}

// NativeReader reads EXIF with goexif. It only understands JPEG and TIFF
// based files and knows nothing of XMP or IPTC fields.
type NativeReader struct{}

func (NativeReader) Read(file string) (map[string]any, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeNative(f)
}

func decodeNative(r io.Reader) (map[string]any, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: no EXIF data: %v", metadata.ErrUnparseableValue, err)
	}

	tags := make(map[string]any)
	for field, name := range nativeTags {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		if text, ok := nativeText(field, tag); ok {
			tags[field.String()] = text
		}
	}

	// coordinates come back signed, refs are read separately above
	if lat, lon, err := x.LatLong(); err == nil {
		tags[metadata.GPSLatitude.String()] = strconv.FormatFloat(math.Abs(lat), 'f', 6, 64)
		tags[metadata.GPSLongitude.String()] = strconv.FormatFloat(math.Abs(lon), 'f', 6, 64)
	}

	return tags, nil
}

func nativeText(field metadata.Field, tag *tiff.Tag) (string, bool) {
	if tag.Count == 0 {
		return "", false
	}

	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return "", false
		}
		return strings.TrimSpace(strings.TrimRight(s, "\x00")), true

	case tiff.IntVal:
		n, err := tag.Int(0)
		if err != nil {
			return "", false
		}
		return intText(field, n), true

	case tiff.RatVal:
		num, den, err := tag.Rat2(0)
		if err != nil || den == 0 {
			return "", false
		}
		return ratText(field, num, den), true
	}

	return "", false
}

func intText(field metadata.Field, n int) string {
	switch field {
	case metadata.WhiteBalance:
		if n == 1 {
			return "Manual"
		}
		return "Auto"
	case metadata.Flash:
		if n&1 == 1 {
			return "Flash Fired"
		}
		return "No Flash"
	case metadata.Orientation:
		if n >= 1 && n <= len(orientationNames) {
			return orientationNames[n-1]
		}
	}
	return strconv.Itoa(n)
}

func ratText(field metadata.Field, num, den int64) string {
	v := float64(num) / float64(den)
	switch field {
	case metadata.ExposureTime:
		if v > 0 && v < 1 {
			return fmt.Sprintf("1/%d", int64(math.Round(1/v)))
		}
	case metadata.FocalLength:
		return fmt.Sprintf("%dmm", int64(math.Round(v)))
	case metadata.GPSAltitude:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
