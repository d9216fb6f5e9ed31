package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/michaelhaslim/printshop-pipeline/config"
	"github.com/michaelhaslim/printshop-pipeline/pipeline"
	"github.com/michaelhaslim/printshop-pipeline/publish"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.Load()

	fmt.Println("Etsy Listing Photo Pipeline")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Input:  %s\n", cfg.InputRoot)
	fmt.Printf("Output: %s\n", cfg.OutputRoot)

	p := pipeline.New(cfg)
	report, err := p.Run()
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	fmt.Println("\nProcessing Complete!")
	fmt.Printf("  Products created: %d\n", report.TotalProducts)
	fmt.Printf("  Images processed: %d\n", report.TotalImagesProcessed)
	fmt.Printf("  Categories: %s\n", strings.Join(keys(report.Categories), ", "))
	fmt.Printf("  Locations: %s\n", strings.Join(keys(report.Locations), ", "))
	if len(report.Skipped) > 0 {
		fmt.Printf("  Skipped groups: %d (see processing report)\n", len(report.Skipped))
	}
	fmt.Println("\nOutput files:")
	fmt.Printf("  Etsy listings: %s\n", report.OutputPaths["etsy_csv"])
	fmt.Printf("  Website products: %s\n", report.OutputPaths["website_json"])
	fmt.Printf("  Import CSV: %s\n", report.OutputPaths["website_csv"])
	fmt.Printf("  Processing report: %s\n", report.OutputPaths["report"])

	if cfg.S3.Enabled {
		ctx := context.Background()
		pub, err := publish.New(ctx, cfg.S3)
		if err != nil {
			fmt.Fprintf(os.Stderr, "S3 publish unavailable: %v\n", err)
			return
		}
		n, err := pub.UploadDir(ctx, cfg.OutputRoot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "S3 publish failed: %v\n", err)
			return
		}
		fmt.Printf("\nPublished %d objects to s3://%s/%s\n", n, cfg.S3.Bucket, cfg.S3.Prefix)
	}
}

func keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
