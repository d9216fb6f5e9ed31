package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/michaelhaslim/printshop-pipeline/listing"
	"github.com/michaelhaslim/printshop-pipeline/models"
)

// etsyColumns is the marketplace CSV header, matching the EtsyListing
// record keys in order.
var etsyColumns = []string{
	"sku", "title", "description", "price", "materials", "tags",
	"category", "location", "primary_image", "additional_images",
	"folder", "source_files", "created_at",
}

// importColumns is the website import CSV header.
var importColumns = []string{
	"title", "description", "image_url", "base_price",
	"category", "tags", "width", "height",
}

// Export writes both catalogs, the import CSV and the run report, and
// returns the report. Skipped groups contribute nothing to the catalogs
// or the totals; only their keys and reasons appear in the report.
func (p *Pipeline) Export(results []Result) (*models.Report, error) {
	listings := make([]models.EtsyListing, 0, len(results))
	products := make([]models.WebsiteProduct, 0, len(results))
	skipped := make([]models.SkippedGroup, 0)
	extraSources := make(map[string][]models.ExtraSource)

	for _, r := range results {
		if !r.Ok() {
			skipped = append(skipped, models.SkippedGroup{Key: r.Key, Reason: r.Skipped})
			continue
		}
		listings = append(listings, *r.Etsy)
		products = append(products, *r.Website)
		if len(r.Extras) > 0 {
			extraSources[r.Key] = r.Extras
		}
	}

	etsyCSV := filepath.Join(p.cfg.OutputRoot, "etsy_listings.csv")
	if err := WriteEtsyCSV(etsyCSV, listings); err != nil {
		return nil, err
	}

	websiteJSON := filepath.Join(p.cfg.OutputRoot, "website_products.json")
	if err := writeJSON(websiteJSON, products); err != nil {
		return nil, err
	}

	importCSV := filepath.Join(p.cfg.OutputRoot, "products_for_import.csv")
	if err := WriteImportCSV(importCSV, products); err != nil {
		return nil, err
	}

	totalImages := 0
	categories := make(map[string]int)
	locations := make(map[string]int)
	for _, l := range listings {
		totalImages += l.SourceFiles
		categories[l.Category]++
		locations[l.Location]++
	}

	reportPath := filepath.Join(p.cfg.OutputRoot, "processing_report.json")
	report := &models.Report{
		RunID:                uuid.NewString(),
		ProcessedAt:          time.Now().Format(time.RFC3339),
		TotalProducts:        len(listings),
		TotalImagesProcessed: totalImages,
		Categories:           categories,
		Locations:            locations,
		Skipped:              skipped,
		ExtraSources:         extraSources,
		OutputPaths: map[string]string{
			"etsy_csv":         etsyCSV,
			"website_json":     websiteJSON,
			"website_csv":      importCSV,
			"images_directory": filepath.Join(p.cfg.OutputRoot, "etsy_images"),
			"report":           reportPath,
		},
	}

	if err := writeJSON(reportPath, report); err != nil {
		return nil, err
	}
	return report, nil
}

// WriteEtsyCSV writes the marketplace listings as tabular CSV, one row
// per product.
func WriteEtsyCSV(path string, listings []models.EtsyListing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(etsyColumns); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, l := range listings {
		row := []string{
			l.SKU, l.Title, l.Description, l.Price, l.Materials, l.Tags,
			l.Category, l.Location, l.PrimaryImage, l.AdditionalImages,
			l.Folder, strconv.Itoa(l.SourceFiles), l.CreatedAt,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteImportCSV flattens the website records into the catalog import
// CSV. Rows are derived with listing.ImportRow so the CSV always agrees
// with website_products.json.
func WriteImportCSV(path string, products []models.WebsiteProduct) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(importColumns); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, p := range products {
		r := listing.ImportRow(p)
		row := []string{
			r.Title, r.Description, r.ImageURL,
			strconv.FormatFloat(r.BasePrice, 'f', -1, 64),
			r.Category, r.Tags,
			strconv.Itoa(r.Width), strconv.Itoa(r.Height),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
