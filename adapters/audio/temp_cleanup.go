package audio

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const uploadPrefix = "upload_"

// TempCleanupService removes staged uploads left behind by interrupted requests
type TempCleanupService struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewTempCleanupService creates a cleanup service for dir. Files older than maxAge are removed.
func NewTempCleanupService(dir string, maxAge time.Duration, logger *zap.Logger) *TempCleanupService {
	if dir == "" {
		dir = os.TempDir()
	}
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &TempCleanupService{
		dir:      dir,
		maxAge:   maxAge,
		interval: 30 * time.Minute,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins the background cleanup process
func (s *TempCleanupService) Start() {
	go s.cleanupLoop()
	s.logger.Info("Temp upload cleanup service started", zap.String("dir", s.dir))
}

// Stop gracefully stops the cleanup service
func (s *TempCleanupService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.logger.Info("Temp upload cleanup service stopped")
	})
}

func (s *TempCleanupService) cleanupLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Sweep once right away for leftovers from a previous run
	s.runCleanup(time.Now())

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			s.runCleanup(now)
		}
	}
}

// runCleanup removes staged uploads older than maxAge and returns how many it removed
func (s *TempCleanupService) runCleanup(now time.Time) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error("Failed to list temp dir", zap.String("dir", s.dir), zap.Error(err))
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), uploadPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || now.Sub(info.ModTime()) < s.maxAge {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("Failed to remove stale upload", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("Removed stale uploads", zap.Int("count", removed))
	}
	return removed
}
