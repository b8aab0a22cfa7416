package resolve

import (
	"errors"
	"slices"
	"testing"

	"mirage/internal/catalog"
	"mirage/internal/metadata"
)

func fallbackRecord() metadata.Record {
	var rec metadata.Record
	rec.SetText(metadata.Make, "Sony")
	rec.SetText(metadata.Model, "Xperia 1 V")
	rec.SetText(metadata.WhiteBalance, "Auto")
	rec.SetText(metadata.Flash, "No Flash")
	rec.SetText(metadata.Title, "IMG_1234")
	return rec
}

func TestResolve_AllKeepIsEmpty(t *testing.T) {
	r := New(catalog.Default())

	out, err := r.Resolve(metadata.Uniform(metadata.KeepValue()), fallbackRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("all-keep should omit every field, got %v", out.Present())
	}
}

func TestResolve_ClearIsDistinctFromKeep(t *testing.T) {
	r := New(catalog.Default())

	dirs := metadata.Directives{
		metadata.Title: metadata.ClearValue(),
		metadata.Make:  metadata.KeepValue(),
	}
	out, err := r.Resolve(dirs, fallbackRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Get(metadata.Title).IsEmpty() {
		t.Fatalf("cleared field should be present and empty, got %v", out.Get(metadata.Title).State())
	}
	if !out.Get(metadata.Make).IsOmitted() {
		t.Fatalf("kept field should be omitted")
	}
	if !slices.Contains(out.Present(), metadata.Title) {
		t.Fatalf("cleared field must stay in the write set")
	}
}

func TestResolve_ExplicitMakeDoesNotRecorrelateModel(t *testing.T) {
	cat := catalog.Default()
	r := New(cat)

	dirs := metadata.Directives{
		metadata.Make:  metadata.ExplicitValue("Canon"),
		metadata.Model: metadata.RandomValue(),
	}
	out, err := r.Resolve(dirs, fallbackRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := out.Get(metadata.Make).String(); got != "Canon" {
		t.Fatalf("Make = %q", got)
	}
	if got := out.Get(metadata.Model).String(); !slices.Contains(cat.Models("Sony"), got) {
		t.Fatalf("Model %q should come from the Sony fallback", got)
	}
}

func TestResolve_TranslatesFixedDomains(t *testing.T) {
	r := New(catalog.Default())

	dirs := metadata.Directives{
		metadata.WhiteBalance:   metadata.ExplicitValue("日光"),
		metadata.Flash:          metadata.ExplicitValue("flash fired"),
		metadata.GPSLatitudeRef: metadata.ExplicitValue("南纬"),
		metadata.Description:    metadata.ExplicitValue("日光"),
	}
	out, err := r.Resolve(dirs, fallbackRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[metadata.Field]string{
		metadata.WhiteBalance:   "Daylight",
		metadata.Flash:          "Flash Fired",
		metadata.GPSLatitudeRef: "S",
		metadata.Description:    "日光",
	}
	for f, v := range want {
		if got := out.Get(f).String(); got != v {
			t.Fatalf("%s = %q want %q", f, got, v)
		}
	}
}

func TestResolve_InvalidDirectiveFallsBackToRandom(t *testing.T) {
	r := New(catalog.Default())

	dirs := metadata.Directives{
		metadata.Flash:        metadata.ExplicitValue("Sometimes"),
		metadata.WhiteBalance: metadata.ExplicitValue(""),
		metadata.Make:         metadata.ExplicitValue("Leica"),
	}
	out, err := r.Resolve(dirs, fallbackRecord())
	if !errors.Is(err, metadata.ErrInvalidDirective) {
		t.Fatalf("expected ErrInvalidDirective, got %v", err)
	}
	if f, ok := metadata.ErrorField(err); !ok || (f != metadata.Flash && f != metadata.WhiteBalance) {
		t.Fatalf("error should name the rejected field, got %v", f)
	}

	if got := out.Get(metadata.Flash).String(); got != "No Flash" {
		t.Fatalf("Flash should fall back to the generated value, got %q", got)
	}
	if got := out.Get(metadata.WhiteBalance).String(); got != "Auto" {
		t.Fatalf("WhiteBalance should fall back to the generated value, got %q", got)
	}
	if got := out.Get(metadata.Make).String(); got != "Leica" {
		t.Fatalf("valid directives still apply, Make = %q", got)
	}
}

func TestResolve_MissingDirectivesDefaultToRandom(t *testing.T) {
	r := New(catalog.Default())
	fb := fallbackRecord()

	out, err := r.Resolve(nil, fb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != fb {
		t.Fatalf("nil directives should reproduce the fallback")
	}
}
