package models

// SkippedGroup records a product group that was dropped from the run
// together with the reason, for the processing report.
type SkippedGroup struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// ExtraSource maps one extra derivative back to the file it came from.
type ExtraSource struct {
	Index  int    `json:"index"`
	Source string `json:"source"`
	Output string `json:"output"`
}

// Report summarizes a full pipeline run.
type Report struct {
	RunID                string                   `json:"run_id"`
	ProcessedAt          string                   `json:"processed_at"`
	TotalProducts        int                      `json:"total_products"`
	TotalImagesProcessed int                      `json:"total_images_processed"`
	Categories           map[string]int           `json:"categories"`
	Locations            map[string]int           `json:"locations"`
	Skipped              []SkippedGroup           `json:"skipped"`
	ExtraSources         map[string][]ExtraSource `json:"extra_sources,omitempty"`
	OutputPaths          map[string]string        `json:"output_paths"`
}
