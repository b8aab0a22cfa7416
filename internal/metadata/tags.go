// BYZRA ⸻ internal/metadata/tags.go
// matching exiftool tag maps against known fields

package metadata

import (
	"fmt"
	"strings"
)

// LookupTag finds name in a tag map ignoring case and group prefixes such
// as "EXIF:" or "XMP-dc:". The value is rendered as trimmed text.
func LookupTag(tags map[string]any, name string) (string, bool) {
	if v, ok := tags[name]; ok {
		return renderTag(v), true
	}
	for k, v := range tags {
		if _, bare, ok := strings.Cut(k, ":"); ok {
			k = bare
		}
		if strings.EqualFold(k, name) {
			return renderTag(v), true
		}
	}
	return "", false
}

// record of the known fields present in tags; blank tags become Empty
func FromTags(tags map[string]any) Record {
	var rec Record
	for _, f := range Fields() {
		text, ok := LookupTag(tags, f.String())
		switch {
		case !ok:
		case text == "":
			rec.Set(f, Erase())
		default:
			rec.SetText(f, text)
		}
	}
	return rec
}

func renderTag(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			if s := renderTag(p); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
