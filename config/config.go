package config

import (
	"log"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
)

// Variant labels, referenced by the listing composers when wiring variant
// paths into the records.
const (
	VariantEtsyPrimary   = "etsy_primary_3000x2400"
	VariantEtsySquare    = "etsy_square_2000"
	VariantWebsiteLarge  = "website_large_1600"
	VariantWebsiteMedium = "website_medium_1000"
	VariantWebsiteThumb  = "website_thumb_400"
)

// Variant describes one derivative size generated from a primary image.
type Variant struct {
	Label      string
	Width      int
	Height     int
	Background string
}

// FacetRule maps a set of path keywords to a facet value. Rules are
// evaluated in order; the first rule with a matching keyword wins.
type FacetRule struct {
	Keywords []string
	Value    string
}

// WatermarkConfig controls the optional watermark overlay.
type WatermarkConfig struct {
	Enabled  bool
	Path     string
	Opacity  float64
	Scale    float64
	Position string
	Margin   float64
}

// S3Config controls the optional publish step. Disabled unless a bucket
// is configured and PUBLISH_S3 is set.
type S3Config struct {
	Enabled bool
	Bucket  string
	Prefix  string
	Region  string
}

// Config carries every setting the pipeline needs. It is built once in
// main and passed down; no package reads the environment after Load.
type Config struct {
	InputRoot  string
	OutputRoot string

	AllowedExts   map[string]bool
	SkipDirMarker string

	ProductPattern *regexp.Regexp
	MaxKeyLength   int

	CategoryRules []FacetRule
	LocationRules []FacetRule

	Variants        []Variant
	ExtraSize       int
	ExtraBackground string
	MaxExtras       int
	JPEGQuality     int
	HashLength      int

	Watermark WatermarkConfig

	PriceMatrix      map[string]map[string]float64
	DefaultTags      []string
	DefaultMaterials []string
	CategoryTags     map[string][]string
	MaxTags          int

	S3 S3Config
}

// productPattern captures the leading name segment of a product photo
// filename, before an optional role token and trailing counter/hash parts.
var productPattern = regexp.MustCompile(`(?i)^([A-Za-z0-9\-_ ]+?)[-_ ]?(main|extra|listing)?[-_ ]?\d{0,2}[-_ ]?\d{4}[-_ ]?[a-f0-9]*\.(jpg|jpeg|png|tif|tiff)$`)

// Load builds the pipeline configuration. Deployment-specific paths and
// toggles come from the environment (with .env support); the processing
// tables are fixed here.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	cfg := &Config{
		InputRoot:  envOr("PIPELINE_INPUT_ROOT", "/Volumes/LaCie/Etsy"),
		OutputRoot: envOr("PIPELINE_OUTPUT_ROOT", "data/etsy-processed"),

		AllowedExts: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".tif":  true,
			".tiff": true,
		},
		SkipDirMarker: "listing_print_files",

		ProductPattern: productPattern,
		MaxKeyLength:   50,

		CategoryRules: []FacetRule{
			{Keywords: []string{"landscape", "nature", "scenic"}, Value: "Landscapes"},
			{Keywords: []string{"architecture", "building", "structure"}, Value: "Architecture"},
			{Keywords: []string{"city", "urban", "skyline"}, Value: "Cityscapes"},
			{Keywords: []string{"nature", "wildlife", "natural"}, Value: "Nature"},
		},
		LocationRules: []FacetRule{
			{Keywords: []string{"hawaii", "maui", "oahu"}, Value: "Hawaii"},
			{Keywords: []string{"california", "ca", "big_sur", "carmel", "monterey"}, Value: "California"},
			{Keywords: []string{"arizona", "az", "sedona", "flagstaff"}, Value: "Arizona"},
		},

		Variants: []Variant{
			{Label: VariantEtsyPrimary, Width: 3000, Height: 2400, Background: "#ffffff"},
			{Label: VariantEtsySquare, Width: 2000, Height: 2000, Background: "#ffffff"},
			{Label: VariantWebsiteLarge, Width: 1600, Height: 1600, Background: "#ffffff"},
			{Label: VariantWebsiteMedium, Width: 1000, Height: 1000, Background: "#ffffff"},
			{Label: VariantWebsiteThumb, Width: 400, Height: 400, Background: "#ffffff"},
		},
		ExtraSize:       2000,
		ExtraBackground: "#ffffff",
		MaxExtras:       9,
		JPEGQuality:     90,
		HashLength:      10,

		Watermark: WatermarkConfig{
			Enabled:  envOr("WATERMARK_ENABLED", "true") == "true",
			Path:     envOr("WATERMARK_PATH", "watermark.png"),
			Opacity:  0.15,
			Scale:    0.20,
			Position: "bottom_right",
			Margin:   0.02,
		},

		PriceMatrix: map[string]map[string]float64{
			"Architecture": {"California": 45, "Hawaii": 55, "Arizona": 40, "Other": 35},
			"Landscapes":   {"California": 50, "Hawaii": 65, "Arizona": 45, "Other": 40},
			"Cityscapes":   {"California": 45, "Hawaii": 55, "Arizona": 40, "Other": 35},
			"Nature":       {"California": 40, "Hawaii": 60, "Arizona": 35, "Other": 30},
			"Other":        {"California": 35, "Hawaii": 45, "Arizona": 30, "Other": 25},
		},
		DefaultTags:      []string{"fine art print", "photography", "wall art", "landscape", "home decor"},
		DefaultMaterials: []string{"archival ink", "fine-art paper", "museum quality"},
		CategoryTags: map[string][]string{
			"Landscapes":   {"nature", "scenic", "landscape photography"},
			"Architecture": {"building", "structure", "architectural"},
			"Cityscapes":   {"urban", "city", "skyline"},
			"Nature":       {"natural", "outdoor", "wilderness"},
		},
		MaxTags: 13,

		S3: S3Config{
			Enabled: os.Getenv("PUBLISH_S3") == "true",
			Bucket:  os.Getenv("S3_BUCKET"),
			Prefix:  envOr("S3_PREFIX", "etsy-processed"),
			Region:  envOr("AWS_REGION", "us-east-1"),
		},
	}

	if n, err := strconv.Atoi(os.Getenv("MAX_EXTRAS")); err == nil && n >= 0 {
		cfg.MaxExtras = n
	}
	if cfg.S3.Bucket == "" {
		cfg.S3.Enabled = false
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
