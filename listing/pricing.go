package listing

import "github.com/michaelhaslim/printshop-pipeline/catalog"

// Price looks up the (category, location) cell of the price matrix. An
// unknown category falls back to the "Other" row and an unknown location
// to the row's "Other" column, so any pair resolves to a price.
func Price(matrix map[string]map[string]float64, category, location string) float64 {
	row, ok := matrix[category]
	if !ok {
		row = matrix[catalog.DefaultFacet]
	}
	if p, ok := row[location]; ok {
		return p
	}
	return row[catalog.DefaultFacet]
}
