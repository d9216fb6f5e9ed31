package listing

import (
	"fmt"
	"strings"

	"github.com/michaelhaslim/printshop-pipeline/catalog"
)

// Description renders the multi-section marketplace description for a
// listing, substituting the category and location into the fixed
// template.
func Description(title, category, location string) string {
	parts := []string{
		title,
		"",
		fmt.Sprintf("Transform your space with this stunning %s photograph", strings.ToLower(category)),
	}

	if location != catalog.DefaultFacet {
		parts = append(parts, fmt.Sprintf("captured in the breathtaking landscapes of %s.", location))
	} else {
		parts = append(parts, "featuring exceptional composition and natural beauty.")
	}

	parts = append(parts,
		"",
		"WHAT YOU GET:",
		"- High-resolution digital download",
		"- Multiple sizes included (8x10, 11x14, 16x20)",
		"- Print-ready files at 300 DPI",
		"- Instant download after purchase",
		"",
		"PRINT DETAILS:",
		"- Professional archival quality recommended",
		"- Museum-grade paper for lasting beauty",
		"- Frame not included",
		"",
		"SIZING OPTIONS:",
		"Files are sized to print perfectly at standard frame sizes. Print at home or at your local print shop.",
		"",
		"DELIVERY:",
		"Instant digital download - no waiting, no shipping fees!",
		"",
		"Perfect for home decor, office spaces, or as a thoughtful gift for photography and nature lovers.",
		"",
		"Questions? Message me anytime!",
	)

	return strings.Join(parts, "\n")
}

// WebsiteDescription renders the one-line catalog description used by
// the website records.
func WebsiteDescription(category, location string) string {
	return fmt.Sprintf("Beautiful %s photography from %s. Professional quality print ready for your home or office.",
		strings.ToLower(category), location)
}
