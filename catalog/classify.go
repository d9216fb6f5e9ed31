package catalog

import (
	"strings"

	"github.com/michaelhaslim/printshop-pipeline/config"
)

// DefaultFacet is assigned when no rule matches.
const DefaultFacet = "Other"

// Metadata holds the facets inferred from a file's path.
type Metadata struct {
	Category string
	Location string
}

// Classifier assigns category and location facets by case-insensitive
// substring matching of the full path against ordered rule lists.
type Classifier struct {
	category []config.FacetRule
	location []config.FacetRule
}

func NewClassifier(cfg *config.Config) *Classifier {
	return &Classifier{category: cfg.CategoryRules, location: cfg.LocationRules}
}

// Classify runs both facet passes over the path. The passes are
// independent and each is first-match-wins.
func (c *Classifier) Classify(path string) Metadata {
	p := strings.ToLower(path)
	return Metadata{
		Category: matchRules(p, c.category),
		Location: matchRules(p, c.location),
	}
}

func matchRules(lowerPath string, rules []config.FacetRule) string {
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lowerPath, kw) {
				return r.Value
			}
		}
	}
	return DefaultFacet
}
