package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"foliogen/internal/logging"
	"foliogen/pkg/models"
	"foliogen/pkg/utils"
)

const (
	rawTextFilename = "cv_raw_text.txt"
	dataFilename    = "cv_extracted_data.json"
	indexFilename   = "index.html"

	archiveTimestampLayout = "20060102_150405"
)

// FileStore persists pipeline artifacts under a single output directory.
// Intermediate artifacts (raw text, extracted data) are written as soon as
// their stage completes, so a failure in a later stage never loses them.
type FileStore struct {
	dir    string
	logger logging.Logger
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, utils.NewPersistenceError(fmt.Sprintf("cannot create output directory %s: %v", dir, err))
	}
	return &FileStore{
		dir:    dir,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// Dir returns the output directory the store writes into
func (s *FileStore) Dir() string {
	return s.dir
}

// SaveRawText persists the Phase-0 transcript and returns its path
func (s *FileStore) SaveRawText(text string) (string, error) {
	path := filepath.Join(s.dir, rawTextFilename)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", utils.NewPersistenceError(fmt.Sprintf("cannot write %s: %v", path, err))
	}
	s.logger.Debug("Saved raw CV text", map[string]interface{}{"path": path})
	return path, nil
}

// SaveCVData persists the structured record as pretty-printed JSON and
// returns its path
func (s *FileStore) SaveCVData(cv *models.CV) (string, error) {
	data, err := json.MarshalIndent(cv, "", "  ")
	if err != nil {
		return "", utils.NewPersistenceError(fmt.Sprintf("cannot serialize CV record: %v", err))
	}
	path := filepath.Join(s.dir, dataFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", utils.NewPersistenceError(fmt.Sprintf("cannot write %s: %v", path, err))
	}
	s.logger.Debug("Saved extracted CV data", map[string]interface{}{"path": path})
	return path, nil
}

// SaveSite persists the generated page twice: index.html (always the latest
// run, overwritten) and a timestamped archive copy named after the source
// document that is never overwritten. Returns (indexPath, archivePath).
func (s *FileStore) SaveSite(html string, stem string, now time.Time) (string, string, error) {
	archivePath, err := s.archivePath(stem, now)
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(archivePath, []byte(html), 0o644); err != nil {
		return "", "", utils.NewPersistenceError(fmt.Sprintf("cannot write %s: %v", archivePath, err))
	}

	indexPath := filepath.Join(s.dir, indexFilename)
	if err := os.WriteFile(indexPath, []byte(html), 0o644); err != nil {
		return "", "", utils.NewPersistenceError(fmt.Sprintf("cannot write %s: %v", indexPath, err))
	}

	s.logger.Info("Saved portfolio site", map[string]interface{}{
		"index":   indexPath,
		"archive": archivePath,
	})
	return indexPath, archivePath, nil
}

// archivePath picks a free archive filename. Two runs of the same document in
// the same second get numeric suffixes rather than clobbering each other.
func (s *FileStore) archivePath(stem string, now time.Time) (string, error) {
	base := fmt.Sprintf("%s_portfolio_%s", stem, now.Format(archiveTimestampLayout))
	candidate := filepath.Join(s.dir, base+".html")
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil && !os.IsExist(err) {
			return "", utils.NewPersistenceError(fmt.Sprintf("cannot probe %s: %v", candidate, err))
		}
		candidate = filepath.Join(s.dir, fmt.Sprintf("%s_%d.html", base, i))
	}
}
