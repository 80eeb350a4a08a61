// Package export writes a parsed report to an output directory:
//
//	<dir>/metadata.yaml
//	<dir>/calibration.yaml
//	<dir>/results/<basename>.tsv
//
// The directory must not exist beforehand. Writes are not transactional; a
// failure part-way leaves whatever was already written in place.
package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/calparse/internal/ctxlog"
	"github.com/specialistvlad/calparse/internal/errs"
	"github.com/specialistvlad/calparse/internal/fsutil"
	"github.com/specialistvlad/calparse/internal/report"
)

// DataTypeLabel is the required first cell of a result table's info row.
const DataTypeLabel = "DataType:"

// Default file names.
const (
	DefaultMetadataFile    = "metadata.yaml"
	DefaultCalibrationFile = "calibration.yaml"
	DefaultResultsDir      = "results"
)

// Options controls output naming and permissions. Zero values use defaults.
type Options struct {
	MetadataFile    string
	CalibrationFile string
	ResultsDir      string
	PermFile        os.FileMode
	PermDir         os.FileMode
}

// Writer renders documents to disk.
type Writer struct {
	opts Options
}

// Written describes one file produced by Write.
type Written struct {
	Path string
	Kind string // "metadata", "calibration" or "result"
	Rows int
}

// New creates a Writer with defaults applied to opts.
func New(opts Options) *Writer {
	if opts.MetadataFile == "" {
		opts.MetadataFile = DefaultMetadataFile
	}
	if opts.CalibrationFile == "" {
		opts.CalibrationFile = DefaultCalibrationFile
	}
	if opts.ResultsDir == "" {
		opts.ResultsDir = DefaultResultsDir
	}
	if opts.PermFile == 0 {
		opts.PermFile = 0o644
	}
	if opts.PermDir == 0 {
		opts.PermDir = 0o755
	}
	return &Writer{opts: opts}
}

var nonWordRe = regexp.MustCompile(`\W+`)

// MakeBasename derives a file-safe name from a datatype label: every run of
// non-word characters becomes a single underscore and the result is lower-cased.
func MakeBasename(name string) string {
	return strings.ToLower(nonWordRe.ReplaceAllString(name, "_"))
}

// Write creates dir and writes every part of doc into it.
func (w *Writer) Write(ctx context.Context, doc *report.Document, dir string) ([]Written, error) {
	logger := ctxlog.FromContext(ctx)

	if err := fsutil.MkdirExclusive(dir, w.opts.PermDir); err != nil {
		return nil, err
	}
	logger.Debug("Output directory created.", "path", dir)

	var written []Written

	metadataPath := filepath.Join(dir, w.opts.MetadataFile)
	if err := w.writeYAML(metadataPath, doc.Metadata); err != nil {
		return written, fmt.Errorf("failed to write metadata: %w", err)
	}
	written = append(written, Written{Path: metadataPath, Kind: "metadata", Rows: doc.Metadata.Len()})
	logger.Info("Wrote metadata.", "path", metadataPath)

	calibrationPath := filepath.Join(dir, w.opts.CalibrationFile)
	entries := doc.Calibration
	if entries == nil {
		entries = []*report.CalibrationEntry{}
	}
	if err := w.writeYAML(calibrationPath, entries); err != nil {
		return written, fmt.Errorf("failed to write calibration: %w", err)
	}
	written = append(written, Written{Path: calibrationPath, Kind: "calibration", Rows: len(entries)})
	logger.Info("Wrote calibration.", "path", calibrationPath, "entries", len(entries))

	results, err := w.writeResults(ctx, doc.Results, filepath.Join(dir, w.opts.ResultsDir))
	written = append(written, results...)
	return written, err
}

func (w *Writer) writeYAML(path string, v any) error {
	return fsutil.WriteFileAtomic(path, w.opts.PermFile, func(out io.Writer) error {
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	})
}

func (w *Writer) writeResults(ctx context.Context, results []*report.ResultTable, dir string) ([]Written, error) {
	const op = "export.Write"
	logger := ctxlog.FromContext(ctx)

	if err := fsutil.MkdirExclusive(dir, w.opts.PermDir); err != nil {
		return nil, err
	}

	var written []Written
	seen := make(map[string]int, len(results))
	for i, result := range results {
		if len(result.Info) != 2 || result.Info[0] != DataTypeLabel {
			return written, errs.New(errs.KindSchema, op,
				"result %d: expected info [%q, <name>] but found %q", i+1, DataTypeLabel, result.Info)
		}

		filename := MakeBasename(result.Info[1]) + ".tsv"
		if prev, dup := seen[filename]; dup {
			return written, errs.New(errs.KindNamingCollision, op,
				"result %d (%q) and result %d both map to %s", i+1, result.Info[1], prev, filename)
		}
		seen[filename] = i + 1

		path := filepath.Join(dir, filename)
		if err := fsutil.WriteFileAtomic(path, w.opts.PermFile, func(out io.Writer) error {
			return WriteTSV(out, result)
		}); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, Written{Path: path, Kind: "result", Rows: len(result.Data.Rows)})
		logger.Info("Wrote result table.", "path", path, "datatype", result.Info[1], "rows", len(result.Data.Rows))
	}
	return written, nil
}

// WriteTSV writes a result table as tab-separated text with a header row.
// Cells are quoted only when they hold a tab, a quote or a line break; a
// row made of a single empty cell is written as "" so it is not read back
// as a blank line.
func WriteTSV(out io.Writer, result *report.ResultTable) error {
	bw := bufio.NewWriter(out)
	if err := writeTSVRecord(bw, result.Data.Header()); err != nil {
		return err
	}
	for _, rec := range result.Data.Records() {
		if err := writeTSVRecord(bw, rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeTSVRecord(w *bufio.Writer, rec []string) error {
	if len(rec) == 1 && rec[0] == "" {
		_, err := w.WriteString("\"\"\n")
		return err
	}
	for i, field := range rec {
		if i > 0 {
			if err := w.WriteByte('\t'); err != nil {
				return err
			}
		}
		if strings.ContainsAny(field, "\t\"\r\n") {
			field = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		if _, err := w.WriteString(field); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
