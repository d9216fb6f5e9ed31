package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/michaelhaslim/printshop-pipeline/config"
	"github.com/michaelhaslim/printshop-pipeline/models"
)

// Facts collects everything computed for one product group. Both record
// composers are pure views over the same Facts value.
type Facts struct {
	Key         string
	Title       string
	Category    string
	Location    string
	Price       float64
	Tags        []string
	Variants    map[string]string // variant label -> output path
	Extras      []string          // extra derivative paths, in index order
	Folder      string
	SourceFiles int
	Dimensions  models.Dimensions
	CapturedAt  string
	CreatedAt   time.Time
}

// ComposeEtsy builds the marketplace listing record.
func ComposeEtsy(cfg *config.Config, f Facts) models.EtsyListing {
	additional := append([]string{f.Variants[config.VariantEtsySquare]}, f.Extras...)

	return models.EtsyListing{
		SKU:              f.Key,
		Title:            f.Title + " - Fine Art Photography Print",
		Description:      Description(f.Title, f.Category, f.Location),
		Price:            fmt.Sprintf("%.2f", f.Price),
		Materials:        strings.Join(cfg.DefaultMaterials, ", "),
		Tags:             strings.Join(f.Tags, ", "),
		Category:         f.Category,
		Location:         f.Location,
		PrimaryImage:     f.Variants[config.VariantEtsyPrimary],
		AdditionalImages: strings.Join(additional, ", "),
		Folder:           f.Folder,
		SourceFiles:      f.SourceFiles,
		CreatedAt:        f.CreatedAt.Format(time.RFC3339),
	}
}

// ComposeWebsite builds the website catalog record. The web paths point
// at the published image locations, not the local output files.
func ComposeWebsite(f Facts) models.WebsiteProduct {
	return models.WebsiteProduct{
		ID:            f.Key,
		Title:         f.Title,
		Description:   WebsiteDescription(f.Category, f.Location),
		Category:      f.Category,
		Location:      f.Location,
		ImageType:     "Main_Images",
		WebPath:       webPath(f.Key, config.VariantWebsiteMedium),
		ThumbnailPath: webPath(f.Key, config.VariantWebsiteThumb),
		LargePath:     webPath(f.Key, config.VariantWebsiteLarge),
		Dimensions:    f.Dimensions,
		Tags:          f.Tags,
		BasePrice:     f.Price,
		Variants:      f.Variants,
		CapturedAt:    f.CapturedAt,
	}
}

// ImportRow flattens a website record into the import CSV shape. Every
// field is taken directly from the record so the CSV and the JSON agree.
func ImportRow(p models.WebsiteProduct) models.ImportRow {
	return models.ImportRow{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.WebPath,
		BasePrice:   p.BasePrice,
		Category:    p.Category,
		Tags:        strings.Join(p.Tags, ", "),
		Width:       p.Dimensions.Width,
		Height:      p.Dimensions.Height,
	}
}

func webPath(key, label string) string {
	return fmt.Sprintf("/images/%s_%s.jpg", key, label)
}
