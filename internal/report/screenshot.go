package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atheor/gowebtest/internal/browser"
	"github.com/atheor/gowebtest/internal/logging"
)

// SaveScreenshot captures the session's viewport and writes it under dir
// as <name>_<timestamp>_<shortid>.png. Returns the written path.
// Backends without screenshot support report browser.ErrNotSupported.
func SaveScreenshot(ctx context.Context, session browser.Session, dir, name string, logger logging.Logger) (string, error) {
	data, err := session.Screenshot(ctx)
	if err != nil {
		return "", fmt.Errorf("capture screenshot: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create screenshot directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.png",
		sanitizeName(name),
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8])
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}

	logger.Info("screenshot saved",
		logging.Field{Key: "name", Value: name},
		logging.Field{Key: "path", Value: path})
	return path, nil
}

// sanitizeName makes a test name safe to embed in a filename.
func sanitizeName(name string) string {
	if name == "" {
		return "screenshot"
	}
	replacer := strings.NewReplacer(
		" ", "_", "/", "_", "\\", "_", ":", "_",
		"*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	)
	return replacer.Replace(name)
}
