package catalog

import (
	"slices"
	"strings"
	"sync"
	"testing"

	"mirage/internal/metadata"
)

func TestModels_NoCrossMakeLeakage(t *testing.T) {
	c := Default()

	owner := map[string]string{}
	for _, brand := range c.Makes() {
		models := c.Models(brand)
		if len(models) == 0 {
			t.Fatalf("%s has no models", brand)
		}
		for _, m := range models {
			if prev, ok := owner[m]; ok && prev != brand {
				t.Fatalf("model %q listed under %s and %s", m, prev, brand)
			}
			owner[m] = brand
		}
	}
}

func TestMakes_OrderAndCount(t *testing.T) {
	makes := Default().Makes()
	if len(makes) != 27 {
		t.Fatalf("got %d makes, want 27", len(makes))
	}
	if makes[0] != "Apple" || makes[len(makes)-1] != "DJI" {
		t.Fatalf("unexpected order: first=%s last=%s", makes[0], makes[len(makes)-1])
	}
}

func TestSoftwareFor_FamilyThenFallback(t *testing.T) {
	c := Default()

	apple := c.SoftwareFor("Apple")
	for _, s := range apple {
		if !strings.HasPrefix(s, "iOS") {
			t.Fatalf("Apple got non-iOS software %q", s)
		}
	}
	if len(apple) == 0 {
		t.Fatalf("Apple should have a software family")
	}

	full := c.Values(metadata.Software)
	for _, brand := range []string{"Fujifilm", "GoPro", "Unknown"} {
		if got := c.SoftwareFor(brand); !slices.Equal(got, full) {
			t.Fatalf("%s should fall back to the full list", brand)
		}
	}
}

func TestLensesFor_ByClass(t *testing.T) {
	c := Default()

	for _, l := range c.LensesFor("Samsung") {
		if !strings.HasSuffix(l, "camera") {
			t.Fatalf("phone lens %q outside mobile vocabulary", l)
		}
	}

	for _, l := range c.LensesFor("Canon") {
		if !strings.HasPrefix(l, "Canon ") && !strings.Contains(l, "mm") {
			t.Fatalf("camera lens %q has neither brand nor focal length", l)
		}
	}

	if got := c.LensesFor("DJI"); !slices.Equal(got, c.Values(metadata.LensModel)) {
		t.Fatalf("DJI should get the full lens list")
	}
}

func TestCanonical(t *testing.T) {
	c := Default()

	cases := []struct {
		field metadata.Field
		in    string
		want  string
		ok    bool
	}{
		{metadata.WhiteBalance, "日光", "Daylight", true},
		{metadata.WhiteBalance, "daylight", "Daylight", true},
		{metadata.Flash, "闪光灯已触发", "Flash Fired", true},
		{metadata.GPSLatitudeRef, "south", "S", true},
		{metadata.GPSLongitudeRef, "西经", "W", true},
		{metadata.GPSAltitudeRef, "Below Sea Level", "Below Sea Level", true},
		{metadata.Flash, "Sometimes", "", false},
		{metadata.WhiteBalance, "  ", "", false},
		{metadata.Model, "anything goes", "anything goes", true},
	}
	for _, tc := range cases {
		got, ok := c.Canonical(tc.field, tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Canonical(%s, %q) = %q,%v want %q,%v", tc.field, tc.in, got, ok, tc.want, tc.ok)
		}
	}

	if got := c.Label(metadata.WhiteBalance, "Cloudy", LocaleZH); got != "阴天" {
		t.Fatalf("Label = %q", got)
	}
}

func TestAddModels_StayWithTheirMake(t *testing.T) {
	c := Default()

	if err := c.AddMake(BrandProfile{Make: "Hasselblad", Class: Camera, Models: []string{"X2D 100C"}}); err != nil {
		t.Fatalf("AddMake: %v", err)
	}
	if err := c.AddMake(BrandProfile{Make: "Apple"}); err == nil {
		t.Fatalf("duplicate make should fail")
	}
	if err := c.AddModels("Hasselblad", "907X", "X2D 100C"); err != nil {
		t.Fatalf("AddModels: %v", err)
	}
	if err := c.AddModels("Nope", "x"); err == nil {
		t.Fatalf("unknown make should fail")
	}

	if got := c.Models("Hasselblad"); !slices.Equal(got, []string{"X2D 100C", "907X"}) {
		t.Fatalf("Models = %v", got)
	}
	if slices.Contains(c.Models("Canon"), "907X") {
		t.Fatalf("custom model leaked into Canon")
	}
	if slices.Contains(Default().Models("Hasselblad"), "907X") {
		t.Fatalf("custom entries leaked into a fresh catalog")
	}
}

func TestCatalog_ConcurrentReadsAndAdds(t *testing.T) {
	c := Default()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.SoftwareFor("Apple")
			_ = c.LensesFor("Nikon")
		}()
		go func() {
			defer wg.Done()
			c.AddSoftware("iOS 18.0")
			c.AddLenses("Nikon Z 85mm f/1.2 S")
		}()
	}
	wg.Wait()

	if !slices.Contains(c.SoftwareFor("Apple"), "iOS 18.0") {
		t.Fatalf("added software should join the family")
	}
}
