// Package ingest reads document batches from JSON files.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/invoice-ledger/constants"
	"github.com/joseph-ayodele/invoice-ledger/internal/common"
)

// Stats summarizes a load.
type Stats struct {
	Scanned   int
	Matched   int
	Documents int
}

// Loader reads documents from a file or a directory of files.
type Loader struct {
	logger *slog.Logger
	schema *jsonschema.Schema
}

// NewLoader compiles the batch schema.
func NewLoader(logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := compileSchema(batchSchema)
	if err != nil {
		return nil, err
	}
	return &Loader{logger: logger, schema: schema}, nil
}

// Load returns the documents at path in input order. A directory is walked in lexical order,
// skipping hidden entries and files without an allowed extension. Any unreadable or invalid
// file fails the whole load with an INPUT_ERROR.
func (l *Loader) Load(path string) ([]json.RawMessage, Stats, error) {
	var stats Stats
	if strings.TrimSpace(path) == "" {
		return nil, stats, common.NewAppError(common.CodeInput, "input path is required", common.ErrInvalidInput)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, stats, common.NewAppError(common.CodeInput, "stat input", err)
	}

	if !info.IsDir() {
		stats.Scanned, stats.Matched = 1, 1
		docs, err := l.loadFile(path)
		if err != nil {
			return nil, stats, err
		}
		stats.Documents = len(docs)
		return docs, stats, nil
	}

	var docs []json.RawMessage
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == path {
			return nil
		}
		stats.Scanned++
		if IsHidden(p) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !AllowedExt(filepath.Ext(p)) {
			return nil
		}
		stats.Matched++
		fileDocs, err := l.loadFile(p)
		if err != nil {
			return err
		}
		docs = append(docs, fileDocs...)
		return nil
	})
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			return nil, stats, err
		}
		return nil, stats, common.NewAppError(common.CodeInput, "walk input directory", err)
	}
	stats.Documents = len(docs)
	l.logger.Info("ingest.directory.loaded", "root", path, "files", stats.Matched, "documents", stats.Documents)
	return docs, stats, nil
}

func (l *Loader) loadFile(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewAppError(common.CodeInput, fmt.Sprintf("read %s", path), err)
	}
	docs, err := validateBatch(l.schema, data)
	if err != nil {
		return nil, common.NewAppError(common.CodeInput, fmt.Sprintf("invalid batch %s", path), err)
	}
	l.logger.Debug("ingest.file.loaded", "path", path, "documents", len(docs))
	return docs, nil
}

// AllowedExt checks if a file extension is in the allowed set.
func AllowedExt(ext string) bool {
	_, ok := constants.AllowedExtensions[constants.NormalizeExt(ext)]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
