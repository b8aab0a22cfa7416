// BYZRA ⸻ internal/util/exiftool.go
// stay-open exiftool process for writing and reading fields

package util

import (
	"fmt"
	"strings"

	"github.com/barasher/go-exiftool"

	"mirage/internal/metadata"
)

// ExifTool owns one exiftool process for the lifetime of a batch.
//
// Writes overwrite the original file; no sidecar or _original copy is left.
type ExifTool struct {
	et *exiftool.Exiftool
}

// starts exiftool; binary "" uses the one on PATH
func OpenExifTool(binary string) (*ExifTool, error) {
	var opts []func(*exiftool.Exiftool) error
	if binary != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binary))
	}

	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", metadata.ErrResourceUnavailable, err)
	}
	return &ExifTool{et: et}, nil
}

// exiftool reads one argument per line on stdin, so a line break would
// split a value into further arguments
func checkArg(what, s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("%w: line break in %s", metadata.ErrExternalProcess, what)
	}
	return nil
}

// writes every non-omitted field of rec in one exiftool call
func (e *ExifTool) Write(file string, rec metadata.Record) error {
	if err := checkArg("file name", file); err != nil {
		return err
	}
	for _, f := range rec.Present() {
		if err := checkArg(f.String(), rec.Get(f).String()); err != nil {
			return err
		}
	}

	fm := exiftool.EmptyFileMetadata()
	fm.File = file

	for _, f := range rec.Present() {
		v := rec.Get(f)
		if v.IsEmpty() {
			fm.Clear(f.String())
			continue
		}
		fm.SetString(f.String(), v.String())
	}

	batch := []exiftool.FileMetadata{fm}
	e.et.WriteMetadata(batch)
	if err := batch[0].Err; err != nil {
		return fmt.Errorf("%w: %v", metadata.ErrExternalProcess, err)
	}
	return nil
}

// current tag values of one file
func (e *ExifTool) Read(file string) (map[string]any, error) {
	if err := checkArg("file name", file); err != nil {
		return nil, err
	}
	res := e.et.ExtractMetadata(file)
	if len(res) == 0 {
		return map[string]any{}, nil
	}
	if err := res[0].Err; err != nil {
		return nil, fmt.Errorf("%w: %v", metadata.ErrExternalProcess, err)
	}
	return res[0].Fields, nil
}

func (e *ExifTool) Close() error {
	if e == nil || e.et == nil {
		return nil
	}
	return e.et.Close()
}

// tags that place or identify the photographer
func SensitiveFields() []string {
	return []string{
		"GPSLatitude", "GPSLongitude", "GPSAltitude", "GPSPosition", "Location",
		"Creator", "Artist", "Copyright", "SerialNumber", "OwnerName",
		"Make", "Model", "Software", "LensModel",
	}
}

// true if the tag may identify a person, device or place
func IsSensitiveField(name string) bool {
	lower := strings.ToLower(name)
	for _, sensitive := range SensitiveFields() {
		if strings.Contains(lower, strings.ToLower(sensitive)) {
			return true
		}
	}
	return false
}
