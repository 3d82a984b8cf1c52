package workers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-service/internal/logger"
)

// uploadFilePrefix is the name prefix of the multipart temp files written by
// the HTTP handlers.
const uploadFilePrefix = "upload-"

// UploadJanitor removes upload temp files left behind by requests that were
// interrupted before their cleanup ran (crash, killed connection).
type UploadJanitor struct {
	dir      string
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewUploadJanitor(dir string, interval, maxAge time.Duration, logger *logger.Logger) *UploadJanitor {
	return &UploadJanitor{
		dir:      dir,
		interval: interval,
		maxAge:   maxAge,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps once per interval until ctx is done.
func (j *UploadJanitor) Run(ctx context.Context) {
	if j.dir == "" || j.interval <= 0 {
		j.logger.Info().Msg("upload janitor disabled")
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

// sweep removes upload files older than maxAge and returns how many were
// removed.
func (j *UploadJanitor) sweep() int {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		j.logger.Err(err).Str("dir", j.dir).Msg("error reading upload dir")
		return 0
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), uploadFilePrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(j.dir, entry.Name())
		if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
			j.logger.Warn().Err(err).Str("path", path).Msg("error removing stale upload")
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info().Int("removed", removed).Msg("stale uploads removed")
	}
	return removed
}
