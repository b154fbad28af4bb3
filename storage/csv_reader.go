package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"listing-profiler/table"
	"listing-profiler/utils"
)

// IOError reports a dataset that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("storage: read %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CSVReader loads a delimited file with a header row into a Table.
type CSVReader struct {
	Path      string
	Policy    EncodingPolicy
	Charset   string
	Delimiter rune
	Schema    table.Schema
	Logger    *utils.Logger

	stats LoadStats
}

// NewCSVReader returns a comma separated reader using the given policy.
func NewCSVReader(path string, policy EncodingPolicy, schema table.Schema, logger *utils.Logger) *CSVReader {
	return &CSVReader{Path: path, Policy: policy, Delimiter: ',', Schema: schema, Logger: logger}
}

// LoadCSV reads path with the given encoding policy.
func LoadCSV(path string, policy EncodingPolicy, schema table.Schema) (*table.Table, error) {
	return NewCSVReader(path, policy, schema, utils.NewNopLogger()).Read(context.Background())
}

// Stats returns the counters of the last Read.
func (r *CSVReader) Stats() LoadStats { return r.stats }

// Read opens and parses the file. Records with the wrong number of fields
// are skipped and counted; an unreadable file returns an *IOError.
func (r *CSVReader) Read(ctx context.Context) (*table.Table, error) {
	r.stats = LoadStats{}

	f, err := os.Open(r.Path)
	if err != nil {
		return nil, &IOError{Path: r.Path, Err: err}
	}
	defer f.Close()

	src, err := decodeReader(f, r.Charset, r.Policy)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(src)
	if r.Delimiter != 0 {
		cr.Comma = r.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	line := 1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &IOError{Path: r.Path, Err: errors.New("empty file")}
		}
		return nil, &IOError{Path: r.Path, Err: fmt.Errorf("read header: %w", err)}
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		header[i] = h
	}
	if err := r.checkText(line, header); err != nil {
		return nil, err
	}

	var records [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line++
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				r.skip(line, err)
				continue
			}
			return nil, &IOError{Path: r.Path, Err: err}
		}
		if len(rec) != len(header) {
			r.skip(line, fmt.Errorf("got %d fields, want %d", len(rec), len(header)))
			continue
		}
		if err := r.checkText(line, rec); err != nil {
			return nil, err
		}
		for i, v := range rec {
			rec[i] = strings.TrimSpace(v)
		}
		records = append(records, rec)
	}

	t, bad, err := table.FromRecords(header, records, r.Schema)
	if err != nil {
		return nil, fmt.Errorf("storage: build table from %q: %w", r.Path, err)
	}
	r.stats.Rows = t.Len()
	r.stats.UnparsedCells = bad
	if bad > 0 && r.Logger != nil {
		r.Logger.Warn("[csv] %d numeric cells in %s did not parse and were stored as missing", bad, r.Path)
	}
	return t, nil
}

func (r *CSVReader) skip(line int, err error) {
	r.stats.SkippedRows++
	if r.Logger != nil {
		r.Logger.Debug("[csv] skipping line %d of %s: %v", line, r.Path, err)
	}
}

// checkText enforces the strict policy.
func (r *CSVReader) checkText(line int, rec []string) error {
	if r.Policy != EncodingStrict {
		return nil
	}
	for _, v := range rec {
		if !utf8.ValidString(v) {
			return fmt.Errorf("storage: %s line %d: invalid UTF-8 under strict encoding policy", r.Path, line)
		}
	}
	return nil
}
