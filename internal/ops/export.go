package ops

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/hpungsan/stoic/internal/db"
	"github.com/hpungsan/stoic/internal/errors"
	"github.com/hpungsan/stoic/internal/meditation"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path string // optional, default: exports/meditations-<timestamp>.jsonl
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// Export writes every stored meditation to a JSONL file. The file is
// replaced atomically, so an existing export survives a failed write.
func Export(ctx context.Context, database *sql.DB, input ExportInput) (*ExportOutput, error) {
	now := time.Now()

	path := strings.TrimSpace(input.Path)
	if path == "" {
		path = filepath.Join("exports", fmt.Sprintf("meditations-%s.jsonl", now.UTC().Format("20060102-150405")))
	}
	if filepath.Ext(path) != ".jsonl" {
		return nil, errors.NewInvalidRequest("export path must end in .jsonl")
	}

	var buf bytes.Buffer
	count, err := WriteExport(ctx, database, &buf, now)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
		}
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to write export file: %w", err))
	}

	return &ExportOutput{
		Path:       path,
		Count:      count,
		ExportedAt: now.Unix(),
	}, nil
}

// WriteExport streams a header line followed by one JSON line per meditation to w.
// It returns the number of meditations written.
func WriteExport(ctx context.Context, database *sql.DB, w io.Writer, now time.Time) (int, error) {
	rows, err := db.All(ctx, database)
	if err != nil {
		return 0, err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	header := meditation.ExportHeader{
		StoicExport: true,
		Version:     meditation.ExportVersion,
		ExportedAt:  now.Unix(),
		Count:       len(rows),
	}
	if err := enc.Encode(header); err != nil {
		return 0, errors.NewInternal(err)
	}

	for _, r := range rows {
		if err := enc.Encode(meditation.ExportRecord{ID: r.ID, Meditation: r.Meditation}); err != nil {
			return 0, errors.NewInternal(err)
		}
	}

	return len(rows), nil
}
