// Package export stores rendered analysis reports in a local directory or an
// object store, keyed by run ID.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/trafficscope/trafficscope/pkg/config"
)

// ErrNotFound is returned by GetReport when no report exists under the key.
var ErrNotFound = errors.New("report not found")

// ReportStore abstracts blob storage for rendered reports.
type ReportStore interface {
	PutReport(ctx context.Context, runID, name, contentType string, data []byte) error
	GetReport(ctx context.Context, runID, name string) ([]byte, error)
	// Location describes where a report is stored, for display.
	Location(runID, name string) string
	Close() error
}

// New builds the store selected by cfg.Backend. It returns a nil store and
// no error when export is disabled.
func New(ctx context.Context, cfg config.ExportConfig) (ReportStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "none":
		return nil, nil
	case "local":
		return NewLocalStore(filepath.Join(cfg.Dir, cfg.Prefix)), nil
	case "s3":
		store, err := NewS3Store(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Prefix:    cfg.Prefix,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case "gcs":
		store, err := NewGCSStore(ctx, cfg.Bucket, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown export backend %q", cfg.Backend)
	}
}

// objectKey joins prefix, run ID and report name into a slash-separated key.
func objectKey(prefix, runID, name string) (string, error) {
	if err := checkSegment("run id", runID); err != nil {
		return "", err
	}
	if err := checkSegment("report name", name); err != nil {
		return "", err
	}
	return path.Join(strings.Trim(prefix, "/"), runID, name), nil
}

func checkSegment(kind, s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("invalid %s %q", kind, s)
	}
	return nil
}

// LocalStore implements ReportStore using the local filesystem.
type LocalStore struct {
	BaseDir string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{BaseDir: baseDir}
}

func (s *LocalStore) path(runID, name string) (string, error) {
	key, err := objectKey("", runID, name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.BaseDir, filepath.FromSlash(key)), nil
}

// PutReport writes a report blob. The content type is implied by the name.
func (s *LocalStore) PutReport(ctx context.Context, runID, name, contentType string, data []byte) error {
	p, err := s.path(runID, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", p, err)
	}
	return nil
}

// GetReport reads a report blob.
func (s *LocalStore) GetReport(ctx context.Context, runID, name string) ([]byte, error) {
	p, err := s.path(runID, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	return data, err
}

func (s *LocalStore) Location(runID, name string) string {
	p, err := s.path(runID, name)
	if err != nil {
		return ""
	}
	return p
}

func (s *LocalStore) Close() error { return nil }
