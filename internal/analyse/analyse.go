// BYZRA ⸻ internal/analyse/analyse.go
// current metadata of an image, before or after apply

package analyse

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"mirage/internal/metadata"
	"mirage/internal/util"
)

// anything that returns the tag map of a file, *util.ExifTool among them
type Reader interface {
	Read(file string) (map[string]any, error)
}

const (
	SourceExifTool = "exiftool"
	SourceNative   = "goexif"
)

// Inspect reads the tags of one image.
//
// r is tried first; when it is nil or fails and the image carries a
// decodable EXIF block, goexif is used instead.
func Inspect(path string, r Reader) (*AnalysisReport, error) {
	if err := util.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("invalid file: %w", err)
	}

	fileType, err := DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("file type detection failed: %w", err)
	}

	tags, source, err := readTags(path, fileType, r)
	if err != nil {
		return nil, fmt.Errorf("metadata extraction failed: %w", err)
	}

	return &AnalysisReport{
		Path:            path,
		FileType:        fileType,
		Source:          source,
		Metadata:        tags,
		Current:         metadata.FromTags(tags),
		SensitiveFields: identifySensitiveFields(tags),
	}, nil
}

func readTags(path string, ft FileType, r Reader) (map[string]any, string, error) {
	var primary error
	if r != nil {
		tags, err := r.Read(path)
		if err == nil {
			return tags, SourceExifTool, nil
		}
		primary = err
	}

	if !ft.Native {
		if primary == nil {
			primary = fmt.Errorf("%w: exiftool is required for %s files", metadata.ErrResourceUnavailable, ft.Extension)
		}
		return nil, "", primary
	}

	tags, err := NativeReader{}.Read(path)
	if err != nil {
		return nil, "", errors.Join(primary, err)
	}
	return tags, SourceNative, nil
}

// finds metadata fields that may contain sensitive information
func identifySensitiveFields(tags map[string]any) []string {
	var sensitive []string

	for key, value := range tags {
		if strings.HasPrefix(key, "_") || formatValue(value) == "" {
			continue
		}
		if util.IsSensitiveField(key) {
			sensitive = append(sensitive, key)
		}
	}

	sort.Strings(sensitive)
	return sensitive
}

// inspects multiple files, failures become error reports
func InspectFiles(paths []string, r Reader) []*AnalysisReport {
	results := make([]*AnalysisReport, 0, len(paths))

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		report, err := Inspect(path, r)
		if err != nil {
			results = append(results, &AnalysisReport{Path: path, Err: err})
			continue
		}
		results = append(results, report)
	}

	return results
}
