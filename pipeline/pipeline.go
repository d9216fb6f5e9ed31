package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/michaelhaslim/printshop-pipeline/catalog"
	"github.com/michaelhaslim/printshop-pipeline/config"
	"github.com/michaelhaslim/printshop-pipeline/img"
	"github.com/michaelhaslim/printshop-pipeline/listing"
	"github.com/michaelhaslim/printshop-pipeline/models"
	"github.com/michaelhaslim/printshop-pipeline/utils"
)

// Pipeline drives one batch run: scan, group, process, export. It holds
// only read-only configuration and the preloaded watermark asset; groups
// never share mutable state, so processing is strictly sequential.
type Pipeline struct {
	cfg        *config.Config
	resolver   *catalog.Resolver
	classifier *catalog.Classifier
	watermark  *img.Watermarker
}

func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		resolver:   catalog.NewResolver(cfg),
		classifier: catalog.NewClassifier(cfg),
		watermark:  img.NewWatermarker(cfg.Watermark),
	}
}

// Result is the outcome of one product group: either both composed
// records, or a skip reason. Skips never abort the run; they are
// aggregated into the report.
type Result struct {
	Key     string
	Etsy    *models.EtsyListing
	Website *models.WebsiteProduct
	Extras  []models.ExtraSource
	Skipped string
}

// Ok reports whether the group produced listings.
func (r Result) Ok() bool {
	return r.Skipped == ""
}

// Run executes the full pipeline and returns the run report. Only
// failures creating the output root are fatal; everything else degrades
// to per-file or per-group skips.
func (p *Pipeline) Run() (*models.Report, error) {
	if err := os.MkdirAll(filepath.Join(p.cfg.OutputRoot, "etsy_images"), 0o755); err != nil {
		return nil, fmt.Errorf("creating output root: %w", err)
	}

	files, err := p.Scan()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", p.cfg.InputRoot, err)
	}

	groups := p.Group(files)
	fmt.Printf("Found %d images grouped into %d products\n", len(files), len(groups))

	results := make([]Result, 0, len(groups))
	for i, g := range groups {
		fmt.Printf("[%d/%d] %s (%d files)\n", i+1, len(groups), g.Key, len(g.Files))
		res := p.ProcessGroup(g)
		if !res.Ok() {
			log.Warn().Str("product", g.Key).Str("reason", res.Skipped).Msg("skipping product group")
		}
		results = append(results, res)
	}

	return p.Export(results)
}

// Scan enumerates every allowed image file under the input root,
// excluding any path containing the already-processed marker segment.
func (p *Pipeline) Scan() ([]string, error) {
	var files []string
	err := filepath.WalkDir(p.cfg.InputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// an unreadable entry never aborts the batch; skip it like
			// an undecodable file
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}
		if d.IsDir() {
			if strings.Contains(path, p.cfg.SkipDirMarker) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.Contains(path, p.cfg.SkipDirMarker) {
			return nil
		}
		if p.cfg.AllowedExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Group buckets files by resolved product key. Bucket file lists are
// sorted lexicographically (the first file becomes the primary) and the
// groups themselves are ordered by key so runs are deterministic.
func (p *Pipeline) Group(files []string) []models.ProductGroup {
	buckets := make(map[string][]string)
	for _, f := range files {
		key := p.resolver.Key(f)
		buckets[key] = append(buckets[key], f)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]models.ProductGroup, 0, len(keys))
	for _, k := range keys {
		sort.Strings(buckets[k])
		groups = append(groups, models.ProductGroup{Key: k, Files: buckets[k]})
	}
	return groups
}

// ProcessGroup runs one product group end to end: classify the primary,
// generate all variants and extras, compose both listing records. Any
// error is converted into a skip result with its reason.
func (p *Pipeline) ProcessGroup(g models.ProductGroup) Result {
	res := Result{Key: g.Key}

	productDir := filepath.Join(p.cfg.OutputRoot, "etsy_images", g.Key)
	if err := os.MkdirAll(productDir, 0o755); err != nil {
		res.Skipped = fmt.Sprintf("creating product directory: %v", err)
		return res
	}

	meta := p.classifier.Classify(g.Primary())

	primary, err := img.Load(g.Primary())
	if err != nil {
		log.Error().Err(err).Str("file", g.Primary()).Msg("primary image unreadable")
		res.Skipped = fmt.Sprintf("primary image unreadable: %v", err)
		return res
	}

	variants := make(map[string]string, len(p.cfg.Variants))
	for _, v := range p.cfg.Variants {
		bg, err := img.ParseHexColor(v.Background)
		if err != nil {
			res.Skipped = fmt.Sprintf("variant %s: %v", v.Label, err)
			return res
		}
		frame := p.watermark.Apply(img.PadResize(primary, v.Width, v.Height, bg))
		out := filepath.Join(productDir, fmt.Sprintf("%s_%s.jpg", g.Key, v.Label))
		if err := img.SaveJPEG(frame, out, p.cfg.JPEGQuality); err != nil {
			res.Skipped = fmt.Sprintf("writing variant %s: %v", v.Label, err)
			return res
		}
		variants[v.Label] = out
	}

	extraBg, err := img.ParseHexColor(p.cfg.ExtraBackground)
	if err != nil {
		res.Skipped = fmt.Sprintf("extra background: %v", err)
		return res
	}
	var extraPaths []string
	for i, extraFile := range g.Extras(p.cfg.MaxExtras) {
		extra, err := img.Load(extraFile)
		if err != nil {
			// one unreadable extra never fails its group
			log.Error().Err(err).Str("file", extraFile).Msg("skipping unreadable extra image")
			continue
		}
		frame := p.watermark.Apply(img.PadResize(extra, p.cfg.ExtraSize, p.cfg.ExtraSize, extraBg))
		name := fmt.Sprintf("%s_extra_%d_%s.jpg", g.Key, i+1, utils.FileHash(extraFile, p.cfg.HashLength))
		out := filepath.Join(productDir, name)
		if err := img.SaveJPEG(frame, out, p.cfg.JPEGQuality); err != nil {
			log.Error().Err(err).Str("file", out).Msg("skipping unwritable extra image")
			continue
		}
		extraPaths = append(extraPaths, out)
		res.Extras = append(res.Extras, models.ExtraSource{Index: i + 1, Source: extraFile, Output: out})
	}

	bounds := primary.Bounds()
	facts := listing.Facts{
		Key:         g.Key,
		Title:       catalog.Title(g.Key),
		Category:    meta.Category,
		Location:    meta.Location,
		Price:       listing.Price(p.cfg.PriceMatrix, meta.Category, meta.Location),
		Tags:        listing.Tags(p.cfg, g.Key, meta.Category, meta.Location),
		Variants:    variants,
		Extras:      extraPaths,
		Folder:      productDir,
		SourceFiles: len(g.Files),
		Dimensions:  models.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()},
		CreatedAt:   time.Now(),
	}
	if t, ok := img.CaptureTime(g.Primary()); ok {
		facts.CapturedAt = t.Format(time.RFC3339)
	}

	etsy := listing.ComposeEtsy(p.cfg, facts)
	web := listing.ComposeWebsite(facts)
	res.Etsy = &etsy
	res.Website = &web
	return res
}
