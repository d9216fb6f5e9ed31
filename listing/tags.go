package listing

import (
	"strings"

	"github.com/michaelhaslim/printshop-pipeline/catalog"
	"github.com/michaelhaslim/printshop-pipeline/config"
)

// Tags builds the marketplace tag list for a product: the default tags,
// category-specific extras, the location (unless "Other"), then the
// product-key tokens longer than two characters. Duplicates are dropped
// keeping first-seen order and the result is capped at cfg.MaxTags.
func Tags(cfg *config.Config, key, category, location string) []string {
	raw := make([]string, 0, 2*cfg.MaxTags)
	raw = append(raw, cfg.DefaultTags...)
	raw = append(raw, cfg.CategoryTags[category]...)
	if location != catalog.DefaultFacet {
		raw = append(raw, strings.ToLower(location))
	}
	for _, tok := range strings.Fields(strings.ReplaceAll(key, "-", " ")) {
		if len(tok) > 2 {
			raw = append(raw, tok)
		}
	}

	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, cfg.MaxTags)
	for _, t := range raw {
		if seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
		if len(tags) == cfg.MaxTags {
			break
		}
	}
	return tags
}
