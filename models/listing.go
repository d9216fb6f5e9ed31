package models

// EtsyListing represents one row of the marketplace import CSV.
type EtsyListing struct {
	SKU              string `json:"sku"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Price            string `json:"price"` // formatted with two decimals
	Materials        string `json:"materials"`
	Tags             string `json:"tags"` // comma-joined, max 13
	Category         string `json:"category"`
	Location         string `json:"location"`
	PrimaryImage     string `json:"primary_image"`
	AdditionalImages string `json:"additional_images"`
	Folder           string `json:"folder"`
	SourceFiles      int    `json:"source_files"`
	CreatedAt        string `json:"created_at"`
}

// Dimensions holds the pixel size of the original primary image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WebsiteProduct represents one entry of the website catalog JSON.
type WebsiteProduct struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Location      string            `json:"location"`
	ImageType     string            `json:"image_type"`
	WebPath       string            `json:"web_path"`
	ThumbnailPath string            `json:"thumbnail_path"`
	LargePath     string            `json:"large_path"`
	Dimensions    Dimensions        `json:"dimensions"`
	Tags          []string          `json:"tags"`
	BasePrice     float64           `json:"base_price"`
	Variants      map[string]string `json:"variants"`
	CapturedAt    string            `json:"captured_at,omitempty"`
}

// ImportRow represents one row of the flattened website import CSV. It is
// derived from a WebsiteProduct and must agree with it field for field.
type ImportRow struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	BasePrice   float64 `json:"base_price"`
	Category    string  `json:"category"`
	Tags        string  `json:"tags"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}
