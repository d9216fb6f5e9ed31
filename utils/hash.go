package utils

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
)

// FileHash returns the first n hex characters of the file's MD5 digest.
// Extra-image filenames embed it so extras sharing a base name cannot
// collide within a run. Unreadable files hash to "unknown", matching the
// tolerant per-file error policy of the pipeline.
func FileHash(path string, n int) string {
	f, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "unknown"
	}
	sum := hex.EncodeToString(h.Sum(nil))
	if n > 0 && n < len(sum) {
		sum = sum[:n]
	}
	return sum
}
