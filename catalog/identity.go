package catalog

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gosimple/slug"

	"github.com/michaelhaslim/printshop-pipeline/config"
)

// Resolver derives canonical product keys from filenames. The key is the
// sole grouping criterion: two files anywhere in the tree with the same
// key belong to the same product.
type Resolver struct {
	pattern *regexp.Regexp
	maxLen  int
}

func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{pattern: cfg.ProductPattern, maxLen: cfg.MaxKeyLength}
}

// Key extracts the product key for a file. The filename pattern is tried
// first; files that do not match fall back to the stem before the first
// underscore, so every image resolves to some group. The raw stem is
// slugified and bounded in length.
func (r *Resolver) Key(path string) string {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	raw := stem
	if m := r.pattern.FindStringSubmatch(name); m != nil {
		raw = m[1]
	} else if i := strings.Index(stem, "_"); i >= 0 {
		raw = stem[:i]
	}

	key := slug.Make(raw)
	if len(key) > r.maxLen {
		key = strings.TrimRight(key[:r.maxLen], "-")
	}
	if key == "" {
		key = "untitled"
	}
	return key
}

// Title renders a product key as a display title: separators become
// spaces and each word is capitalized.
func Title(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
