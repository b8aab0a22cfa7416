// BYZRA ⸻ internal/resolve/resolve.go
// per-field directives applied to a generated fallback record

package resolve

import (
	"errors"

	"mirage/internal/catalog"
	"mirage/internal/metadata"
)

type Resolver struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Resolver {
	return &Resolver{cat: cat}
}

// Resolve merges directives with a fallback record.
//
// Random takes the fallback value, Keep omits the field, Clear writes an
// empty value and Explicit writes its value. Explicit values on fixed-domain
// fields are translated to their wire form; values outside the domain are
// reported and the field falls back to Random. The returned record is always
// complete; err joins one *metadata.FieldError per rejected field.
func (r *Resolver) Resolve(directives metadata.Directives, fallback metadata.Record) (metadata.Record, error) {
	var (
		out  metadata.Record
		errs []error
	)

	for _, f := range metadata.Fields() {
		dir := directives.For(f)

		switch dir.Kind {
		case metadata.Keep:
			out.Set(f, metadata.Omit())

		case metadata.Clear:
			out.Set(f, metadata.Erase())

		case metadata.Explicit:
			v, err := r.explicit(f, dir.Value)
			if err != nil {
				errs = append(errs, err)
				out.Set(f, fallback.Get(f))
				continue
			}
			out.SetText(f, v)

		default:
			out.Set(f, fallback.Get(f))
		}
	}

	return out, errors.Join(errs...)
}

func (r *Resolver) explicit(f metadata.Field, value string) (string, error) {
	if !r.cat.FixedDomain(f) {
		return value, nil
	}

	wire, ok := r.cat.Canonical(f, value)
	if !ok {
		return "", &metadata.FieldError{Field: f, Value: value, Err: metadata.ErrInvalidDirective}
	}
	return wire, nil
}
