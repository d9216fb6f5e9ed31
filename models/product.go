package models

// SourceImage represents one enumerated input file and the attributes
// derived from it during classification.
type SourceImage struct {
	Path     string `json:"path"`
	Key      string `json:"key"`
	Category string `json:"category"`
	Location string `json:"location"`
	Hash     string `json:"hash,omitempty"`
}

// ProductGroup represents all source files resolved to one product key.
// Files are sorted lexicographically; the first file is the primary image
// and alone drives facet inference, pricing and the canonical variants.
type ProductGroup struct {
	Key   string
	Files []string
}

// Primary returns the group's primary image path.
func (g ProductGroup) Primary() string {
	return g.Files[0]
}

// Extras returns the non-primary files, capped at max.
func (g ProductGroup) Extras(max int) []string {
	rest := g.Files[1:]
	if len(rest) > max {
		rest = rest[:max]
	}
	return rest
}
