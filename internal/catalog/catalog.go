// Package catalog holds the static device reference data and the matching
// primitives that map loosely-written vendor titles onto canonical models.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/catalog.json
var catalogJSON []byte

// Entry is one known brand/model with its sold storage and color variants.
// Entries are reference data: loaded once, never mutated.
type Entry struct {
	Brand    string   `json:"brand"`
	Model    string   `json:"model"`
	Storages []int    `json:"storages"`
	Colors   []string `json:"colors"`
}

// Catalog is an ordered, immutable list of entries. Order matters for
// matching: more specific models must precede their prefixes ("iPhone 13
// Pro Max" before "iPhone 13").
type Catalog struct {
	entries []Entry
}

// New builds a catalog from explicit entries. Tests use this with a reduced
// fixture set.
func New(entries []Entry) *Catalog {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp}
}

// Entries returns a copy of the catalog contents.
func (c *Catalog) Entries() []Entry {
	cp := make([]Entry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

func (c *Catalog) Len() int { return len(c.entries) }

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		var entries []Entry
		if err := json.Unmarshal(catalogJSON, &entries); err != nil {
			panic(fmt.Sprintf("catalog: embedded data is broken: %v", err))
		}
		defaultCat = New(entries)
	})
	return defaultCat
}
