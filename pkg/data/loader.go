package data

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

// Loader errors. Every error message names the offending path or extension.
var (
	ErrPathType          = errors.New("file path must be a non-empty string")
	ErrNotFound          = errors.New("data file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyData         = errors.New("data file contains no rows")
)

// SupportedExtensions lists the file extensions Load dispatches on.
var SupportedExtensions = []string{".csv", ".parquet"}

// Load reads a tabular data file into a Dataset. The reader is chosen by the
// file extension: .csv uses a delimited-text reader (header row required),
// .parquet uses the arrow parquet reader. Null and empty cells become "".
func Load(path string) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathType
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrPathType, path)
	}

	var ds *Dataset
	switch ext := filepath.Ext(path); ext {
	case ".csv":
		ds, err = readCSV(path)
	case ".parquet":
		ds, err = readParquet(path)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions, ", "))
	}
	if err != nil {
		return nil, err
	}

	if ds.Rows() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
	}
	slog.Debug("loaded dataset", "path", path, "rows", ds.Rows(), "columns", len(ds.Columns()))
	return ds, nil
}

func readCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, path)
	}
	return NewDataset(records[0], records[1:])
}

func readParquet(path string) (*Dataset, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	defer rdr.Close()

	arrowRdr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	tbl, err := arrowRdr.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	defer tbl.Release()

	names := make([]string, tbl.NumCols())
	rows := make([][]string, tbl.NumRows())
	for i := range rows {
		rows[i] = make([]string, tbl.NumCols())
	}
	for j := 0; j < int(tbl.NumCols()); j++ {
		col := tbl.Column(j)
		names[j] = col.Name()
		i := 0
		for _, chunk := range col.Data().Chunks() {
			for k := 0; k < chunk.Len(); k++ {
				rows[i][j] = cellString(chunk, k)
				i++
			}
		}
	}
	return NewDataset(names, rows)
}

// cellString renders one arrow array element as a raw cell, nulls as "".
func cellString(arr arrow.Array, i int) string {
	if arr.IsNull(i) {
		return ""
	}
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	default:
		return arr.ValueStr(i)
	}
}
