// Package loader reads the dashboard's input files into raw tables.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
	"unicode/utf8"

	"influencerdash/internal/config"
	"influencerdash/internal/logger"
	"influencerdash/internal/normalizer"
)

// TableStats describes one loaded file.
type TableStats struct {
	Table    string        `json:"table"`
	Path     string        `json:"path"`
	Size     int64         `json:"size"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration"`
}

// Reader loads CSV files from local disk.
type Reader struct {
	log *logger.Logger
}

// NewReader creates a reader. A nil logger discards output.
func NewReader(log *logger.Logger) *Reader {
	if log == nil {
		log = logger.Discard()
	}

	return &Reader{log: log}
}

// ReadTable reads a CSV file. A missing or unreadable file is returned as a
// *normalizer.ConfigurationError.
func (r *Reader) ReadTable(table, path string) (*normalizer.RawTable, TableStats, error) {
	start := time.Now()
	stats := TableStats{Table: table, Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stats, normalizer.NewConfigurationError(table, path, normalizer.ErrMissingFile)
		}

		return nil, stats, normalizer.NewConfigurationError(table, path, fmt.Errorf("failed to stat file: %w", err))
	}

	if info.IsDir() {
		return nil, stats, normalizer.NewConfigurationError(table, path, fmt.Errorf("%w: is a directory", normalizer.ErrUnreadable))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, stats, normalizer.NewConfigurationError(table, path, fmt.Errorf("failed to read file: %w", err))
	}

	raw, err := r.Parse(table, path, bytes.NewReader(content))
	if err != nil {
		return nil, stats, err
	}

	stats.Size = info.Size()
	stats.Rows = len(raw.Rows)
	stats.Duration = time.Since(start)

	r.log.Debug("table loaded", "table", table, "path", path, "rows", stats.Rows, "bytes", stats.Size, "duration", stats.Duration)

	return raw, stats, nil
}

// Parse reads CSV text from in. The first record is the header.
func (r *Reader) Parse(table, source string, in io.Reader) (*normalizer.RawTable, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, normalizer.NewConfigurationError(table, source, fmt.Errorf("failed to read input: %w", err))
	}

	if bytes.IndexByte(content, 0) >= 0 {
		return nil, normalizer.NewConfigurationError(table, source, fmt.Errorf("%w: binary content", normalizer.ErrUnreadable))
	}

	// A stray non-UTF-8 byte spoils one cell, not the table.
	if !utf8.Valid(content) {
		content = bytes.ToValidUTF8(content, []byte(string(utf8.RuneError)))
		r.log.Warn("invalid UTF-8 replaced", "table", table, "source", source)
	}

	cr := csv.NewReader(bytes.NewReader(content))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, normalizer.NewConfigurationError(table, source, fmt.Errorf("%w: %v", normalizer.ErrUnreadable, err))
	}

	if len(records) == 0 {
		return nil, normalizer.NewConfigurationError(table, source, normalizer.ErrNoHeader)
	}

	return normalizer.NewRawTable(table, source, records[0], records[1:]), nil
}

// LoadAll reads the four input files named by cfg. The first failure aborts
// the load; no partial set is returned.
func (r *Reader) LoadAll(cfg *config.Config) (normalizer.RawTables, []TableStats, error) {
	tables := make(normalizer.RawTables, 4)
	stats := make([]TableStats, 0, 4)

	for _, name := range config.TableNames() {
		raw, st, err := r.ReadTable(name, cfg.DataPath(name))
		if err != nil {
			r.log.Error("failed to load table", "table", name, "path", cfg.DataPath(name), "error", err)
			return nil, nil, err
		}

		tables[name] = raw
		stats = append(stats, st)
	}

	return tables, stats, nil
}
