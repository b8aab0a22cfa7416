// BYZRA ⸻ internal/apply/verify.go
// read-back check of written fields

package apply

import (
	"fmt"

	"mirage/internal/metadata"
)

// Verify reads file back and returns the fields of rec that did not stick.
//
// A Set field must come back non-empty and an Empty field must come back
// absent or empty. Values are not compared literally since exiftool
// reformats numbers, coordinates and dates when printing them.
func Verify(r Reader, file string, rec metadata.Record) ([]metadata.Field, error) {
	tags, err := r.Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read back %s: %w", file, err)
	}

	var missing []metadata.Field
	for _, f := range rec.Present() {
		got, found := metadata.LookupTag(tags, f.String())

		switch {
		case rec.Get(f).IsSet() && (!found || got == ""):
			missing = append(missing, f)
		case rec.Get(f).IsEmpty() && found && got != "":
			missing = append(missing, f)
		}
	}

	return missing, nil
}
