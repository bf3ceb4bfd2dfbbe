// Package catalog holds the static hill catalog: the fixed list of challenge
// locations with their precomputed vertical-feet values. Loaded once at startup
// and read-only for the process lifetime.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Hill is one catalog entry. Immutable after load.
type Hill struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	LengthMiles  float64 `json:"length"`
	VerticalFeet float64 `json:"vertical"`
	StravaLink   string  `json:"strava_link"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

// hillFile mirrors the JSON layout on disk. Older catalog files use "link"
// instead of "strava_link"; both are accepted.
type hillFile struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Length      float64 `json:"length"`
	Vertical    float64 `json:"vertical"`
	StravaLink  string  `json:"strava_link"`
	Link        string  `json:"link"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Catalog is the loaded hill list with name-keyed lookup.
type Catalog struct {
	hills  []Hill
	byName map[string]Hill
}

// Load reads the catalog from a JSON array file and validates it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return Parse(data)
}

// Parse builds a Catalog from raw JSON.
func Parse(data []byte) (*Catalog, error) {
	var raw []hillFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidCatalog)
	}

	c := &Catalog{
		hills:  make([]Hill, 0, len(raw)),
		byName: make(map[string]Hill, len(raw)),
	}
	for i, r := range raw {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidCatalog, i)
		}
		if r.Vertical <= 0 {
			return nil, fmt.Errorf("%w: %q has non-positive vertical feet", ErrInvalidCatalog, r.Name)
		}
		if _, dup := c.byName[r.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate hill name %q", ErrInvalidCatalog, r.Name)
		}
		link := r.StravaLink
		if link == "" {
			link = r.Link
		}
		h := Hill{
			Name:         r.Name,
			Description:  r.Description,
			LengthMiles:  r.Length,
			VerticalFeet: r.Vertical,
			StravaLink:   link,
			Lat:          r.Lat,
			Lon:          r.Lon,
		}
		c.hills = append(c.hills, h)
		c.byName[h.Name] = h
	}
	return c, nil
}

// Lookup returns the hill with the given name.
func (c *Catalog) Lookup(name string) (Hill, bool) {
	h, ok := c.byName[name]
	return h, ok
}

// Contains reports whether name is a catalog hill.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Hills returns the catalog entries in file order. The returned slice is a copy.
func (c *Catalog) Hills() []Hill {
	out := make([]Hill, len(c.hills))
	copy(out, c.hills)
	return out
}

// Size returns the number of hills in the catalog. This is the fixed total used
// by the location-coverage summary.
func (c *Catalog) Size() int {
	return len(c.hills)
}
