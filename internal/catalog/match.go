package catalog

import (
	"regexp"
	"strings"
)

// Match is the result of resolving a free-text title against the catalog.
type Match struct {
	Brand      string
	Model      string
	StorageGB  int  // 0 when not found in the text
	HasStorage bool
	Color      string
	Confidence float64
}

const (
	exactConfidence  = 0.9
	partialThreshold = 0.6
)

var reStorageToken = regexp.MustCompile(`(?i)\d+\s*(gb|tb|g)\b`)

// MatchModel resolves text against the catalog. Exact substring hits win at
// confidence 0.9 in catalog order; otherwise the best token-overlap
// candidate at or above 0.6 is taken. Returns nil when nothing qualifies.
func (c *Catalog) MatchModel(text string) *Match {
	lower := strings.ToLower(text)

	var best *Match

	// pass 1: exact substring, first hit wins (constant confidence)
	for i := range c.entries {
		e := &c.entries[i]
		if strings.Contains(lower, strings.ToLower(e.Model)) {
			best = &Match{Brand: e.Brand, Model: e.Model, Confidence: exactConfidence}
			break
		}
	}

	// pass 2: token overlap fallback
	if best == nil {
		for i := range c.entries {
			e := &c.entries[i]
			tokens := strings.Fields(strings.ToLower(e.Model))
			if len(tokens) == 0 {
				continue
			}
			hit := 0
			for _, tok := range tokens {
				if strings.Contains(lower, tok) {
					hit++
				}
			}
			conf := float64(hit) / float64(len(tokens))
			if conf >= partialThreshold && (best == nil || conf > best.Confidence) {
				best = &Match{Brand: e.Brand, Model: e.Model, Confidence: conf}
			}
		}
	}

	if best == nil {
		return nil
	}

	if tok := reStorageToken.FindString(text); tok != "" {
		if gb, ok := NormalizeStorage(tok); ok {
			best.StorageGB = gb
			best.HasStorage = true
		}
	}
	for _, tok := range strings.Fields(text) {
		if color, ok := LookupColor(tok); ok {
			best.Color = color
			break
		}
	}

	return best
}
