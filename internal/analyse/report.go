// BYZRA ⸻ internal/analyse/report.go
// format inspection reports

package analyse

import (
	"fmt"
	"sort"
	"strings"

	"mirage/internal/catalog"
	"mirage/internal/metadata"
	"mirage/internal/util"
)

// result of reading one image
type AnalysisReport struct {
	Path     string
	FileType FileType
	// SourceExifTool or SourceNative
	Source   string
	Metadata map[string]any
	// the known fields found in Metadata
	Current         metadata.Record
	SensitiveFields []string
	Err             error
}

// GenerateReport lists the known fields that carry a value, marking the
// identifying ones with "!". With all set the remaining tags follow.
func GenerateReport(report *AnalysisReport, cat *catalog.Catalog, l catalog.Locale, all bool) string {
	var sb strings.Builder

	sb.WriteString(util.NSH.Render(fmt.Sprintf("File: %s", report.Path)))
	sb.WriteString("\n")
	if report.Err != nil {
		sb.WriteString(fmt.Sprintf("%s %s\n", util.ErrorSymbol(), util.BRH.Render(report.Err.Error())))
		return sb.String()
	}
	sb.WriteString(util.NSH.Render(fmt.Sprintf("Type: %s (read by %s)", report.FileType.MimeType, report.Source)))
	sb.WriteString("\n\n")

	if report.Current.Len() == 0 && !all {
		sb.WriteString(util.LBL.Render("✓ None of the known fields are present"))
		sb.WriteString("\n")
		return sb.String()
	}

	sensitiveCount := 0
	for _, f := range metadata.Fields() {
		v := report.Current.Get(f)
		if !v.IsSet() {
			continue
		}

		value := cat.Label(f, v.String(), l)
		if util.IsSensitiveField(f.String()) {
			sensitiveCount++
			sb.WriteString(fmt.Sprintf(" %s %s: %s\n", util.ORN.Render("!"), util.NSH.Render(f.String()), util.NSH.Render(value)))
		} else {
			sb.WriteString(fmt.Sprintf(" %s %s: %s\n", util.ORN.Render("•"), util.NSH.Render(f.String()), value))
		}
	}

	if all {
		extra := otherTags(report.Metadata)
		if len(extra) > 0 {
			sb.WriteString("\n")
			sb.WriteString(util.SEC.Render("Other tags:"))
			sb.WriteString("\n")
		}
		for _, key := range extra {
			sb.WriteString(fmt.Sprintf(" %s %s: %s\n", util.ORN.Render("·"), util.SUB.Render(key), formatValue(report.Metadata[key])))
		}
	}

	sb.WriteString("\n")
	if sensitiveCount > 0 {
		sb.WriteString(util.BRH.Render(fmt.Sprintf("[!] Found %d identifying fields.", sensitiveCount)))
		sb.WriteString("\n")
		sb.WriteString(util.BRH.Render("[!] Consider 'mirage apply' to replace them with synthetic values."))
	} else {
		sb.WriteString(util.LBL.Render("✓ No identifying fields detected"))
	}
	sb.WriteString("\n")

	return sb.String()
}

// creates a machine-readable report
func GenerateSimplifiedReport(report *AnalysisReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("file: %s\n", report.Path))
	if report.Err != nil {
		sb.WriteString(fmt.Sprintf("error: %s\n", report.Err))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("mimetype: %s\n", report.FileType.MimeType))
	sb.WriteString(fmt.Sprintf("source: %s\n", report.Source))

	sensitiveCount := 0
	for _, f := range metadata.Fields() {
		v := report.Current.Get(f)
		if !v.IsSet() {
			continue
		}
		kind := "metadata"
		if util.IsSensitiveField(f.String()) {
			kind = "sensitive"
			sensitiveCount++
		}
		sb.WriteString(fmt.Sprintf("%s:%s: %s\n", kind, f, v.String()))
	}

	sb.WriteString(fmt.Sprintf("sensitive_count: %d\n", sensitiveCount))

	return sb.String()
}

// tags outside the known fields, sorted, internal and File* tags skipped
func otherTags(tags map[string]any) []string {
	var keys []string
	for k, v := range tags {
		bare := k
		if _, after, ok := strings.Cut(k, ":"); ok {
			bare = after
		}
		if strings.HasPrefix(bare, "_") || strings.HasPrefix(bare, "File") || bare == "SourceFile" {
			continue
		}
		if _, known := metadata.ParseField(bare); known || formatValue(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// converts a metadata value to string representation
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if str := formatValue(item); str != "" {
				parts = append(parts, str)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(v))
		for _, k := range keys {
			if str := formatValue(v[k]); str != "" {
				parts = append(parts, fmt.Sprintf("%s:%s", k, str))
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
