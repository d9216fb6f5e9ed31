package publish

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/michaelhaslim/printshop-pipeline/config"
)

// Publisher uploads generated pipeline outputs to S3 so the website can
// serve them directly. Per-object failures are logged and counted, never
// fatal; the pipeline's local outputs remain the source of truth.
type Publisher struct {
	client *s3.Client
	bucket string
	prefix string
}

// New builds a Publisher from the pipeline's S3 settings.
func New(ctx context.Context, cfg config.S3Config) (*Publisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}
	return &Publisher{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// UploadDir walks root and uploads every regular file, keyed by its path
// relative to root under the configured prefix. Uploads run with bounded
// concurrency. Returns how many objects were uploaded.
func (p *Publisher) UploadDir(ctx context.Context, root string) (int, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking %s: %w", root, err)
	}

	var uploaded int
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, 5)

	for _, path := range files {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			key := p.prefix + "/" + filepath.ToSlash(rel)

			if err := p.uploadFile(ctx, path, key); err != nil {
				log.Error().Err(err).Str("file", path).Msg("failed to publish object")
				return
			}

			mu.Lock()
			uploaded++
			mu.Unlock()
		}(path)
	}

	wg.Wait()
	return uploaded, nil
}

func (p *Publisher) uploadFile(ctx context.Context, path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(path)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %v", err)
	}
	return nil
}

func contentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
