// BYZRA ⸻ internal/catalog/catalog.go
// brand catalog: makes, models, software and lens affinity

package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"mirage/internal/metadata"
)

// device family of a make, drives lens vocabulary
type Class int

const (
	Phone Class = iota
	Camera
	Other
)

// make -> models, software family, lens style
type BrandProfile struct {
	Make  string
	Class Class

	// models offered for this make only
	Models []string

	// software entries starting with one of these belong to the make
	SoftwarePrefixes []string
}

// read-mostly reference data
//
// The built-in entries never change; Add* methods append custom entries and
// are safe to call while other goroutines read.
type Catalog struct {
	mu sync.RWMutex

	makes    []string
	profiles map[string]*BrandProfile
	software []string
	lenses   []string
	mobile   []string
	values   map[metadata.Field][]string
	domains  map[metadata.Field]vocabulary
}

// fresh catalog with the built-in data
func Default() *Catalog {
	c := &Catalog{
		profiles: make(map[string]*BrandProfile, len(builtinProfiles)),
		software: slices.Clone(builtinSoftware),
		lenses:   slices.Clone(builtinLenses),
		mobile:   slices.Clone(mobileLenses),
		values: map[metadata.Field][]string{
			metadata.ExposureTime: slices.Clone(exposureTimes),
			metadata.FNumber:      slices.Clone(fNumbers),
			metadata.ISO:          slices.Clone(isoSpeeds),
			metadata.FocalLength:  slices.Clone(focalLengths),
		},
		domains: fixedDomains,
	}

	for _, p := range builtinProfiles {
		profile := cloneProfile(p)
		c.makes = append(c.makes, profile.Make)
		c.profiles[profile.Make] = &profile
	}

	return c
}

// make names in catalog order
func (c *Catalog) Makes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.makes)
}

// models of one make, nil for an unknown make
func (c *Catalog) Models(brand string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.profiles[brand]
	if !ok {
		return nil
	}
	return slices.Clone(p.Models)
}

// profile copy for a make
func (c *Catalog) Profile(brand string) (BrandProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.profiles[brand]
	if !ok {
		return BrandProfile{}, false
	}
	return cloneProfile(*p), true
}

// software strings compatible with a make
//
// Step one keeps entries matching the make's family prefixes. Step two, taken
// only when step one yields nothing, returns the whole software list.
func (c *Catalog) SoftwareFor(brand string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if family := c.familySoftware(brand); len(family) > 0 {
		return family
	}
	return slices.Clone(c.software)
}

func (c *Catalog) familySoftware(brand string) []string {
	p, ok := c.profiles[brand]
	if !ok || len(p.SoftwarePrefixes) == 0 {
		return nil
	}

	var out []string
	for _, s := range c.software {
		for _, prefix := range p.SoftwarePrefixes {
			if strings.HasPrefix(s, prefix) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// lens names compatible with a make
//
// Phones get the mobile vocabulary. Cameras get lenses carrying the brand
// prefix or a focal length, falling back to the whole list when none match.
// Everything else gets the whole list.
func (c *Catalog) LensesFor(brand string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.profiles[brand]
	if !ok {
		return slices.Clone(c.lenses)
	}

	switch p.Class {
	case Phone:
		return slices.Clone(c.mobile)
	case Camera:
		if brand := c.brandLenses(p.Make); len(brand) > 0 {
			return brand
		}
	}
	return slices.Clone(c.lenses)
}

func (c *Catalog) brandLenses(brand string) []string {
	prefix := brand + " "
	var out []string
	for _, l := range c.lenses {
		if strings.HasPrefix(l, prefix) || strings.Contains(l, "mm") {
			out = append(out, l)
		}
	}
	return out
}

// make-independent choices for a field, nil when the field has none
func (c *Catalog) Values(field metadata.Field) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch field {
	case metadata.Make:
		return slices.Clone(c.makes)
	case metadata.Software:
		return slices.Clone(c.software)
	case metadata.LensModel:
		return slices.Clone(c.lenses)
	}

	if v, ok := c.values[field]; ok {
		return slices.Clone(v)
	}

	if vocab, ok := c.domains[field]; ok {
		out := make([]string, 0, len(vocab))
		for _, entry := range vocab {
			out = append(out, entry.wire)
		}
		return out
	}

	return nil
}

// registers a new make
func (c *Catalog) AddMake(p BrandProfile) error {
	if strings.TrimSpace(p.Make) == "" {
		return fmt.Errorf("make name is empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.profiles[p.Make]; exists {
		return fmt.Errorf("make already in catalog: %s", p.Make)
	}

	profile := cloneProfile(p)
	c.makes = append(c.makes, profile.Make)
	c.profiles[profile.Make] = &profile
	return nil
}

// appends models to an existing make, skipping duplicates
func (c *Catalog) AddModels(brand string, models ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.profiles[brand]
	if !ok {
		return fmt.Errorf("unknown make: %s", brand)
	}

	for _, m := range models {
		if m != "" && !slices.Contains(p.Models, m) {
			p.Models = append(p.Models, m)
		}
	}
	return nil
}

// appends software strings, skipping duplicates
func (c *Catalog) AddSoftware(entries ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.software = appendUnique(c.software, entries)
}

// appends lens names, skipping duplicates
func (c *Catalog) AddLenses(entries ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lenses = appendUnique(c.lenses, entries)
}

func appendUnique(dst, src []string) []string {
	for _, s := range src {
		if s != "" && !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

func cloneProfile(p BrandProfile) BrandProfile {
	p.Models = slices.Clone(p.Models)
	p.SoftwarePrefixes = slices.Clone(p.SoftwarePrefixes)
	return p
}

// parses a class name from config
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "phone", "tablet", "mobile":
		return Phone, nil
	case "camera":
		return Camera, nil
	case "", "other":
		return Other, nil
	default:
		return Other, fmt.Errorf("unknown device class: %s", s)
	}
}

func (c Class) String() string {
	switch c {
	case Phone:
		return "phone"
	case Camera:
		return "camera"
	default:
		return "other"
	}
}
