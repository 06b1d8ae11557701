package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/bburaakk/ScaffoldML/pkg/config"
	"github.com/bburaakk/ScaffoldML/pkg/data"
	"github.com/bburaakk/ScaffoldML/pkg/logging"
	"github.com/bburaakk/ScaffoldML/pkg/pipeline"
)

//
// ---------------------- CLI FLAGS DOCUMENTATION ----------------------
//
// --config  : Path to YAML preprocessing config. Default from SCAFFOLD_CONFIG
// --input   : Path to input data file (.csv or .parquet). Default from SCAFFOLD_INPUT
// --mode    : Output mode: "cli" (preview in console) or "csv" (save processed file)
// --output  : Path to save processed CSV (if mode=csv). Default = ./processed_<input>.csv
// --preview : Number of rows to preview in console
//
// Example:
//   go run main.go --config config.yaml --input claims.csv --mode csv
//
// ---------------------------------------------------------------------
//

// previewMatrix prints the first n rows of the transformed matrix with headers.
func previewMatrix(headers []string, m *mat.Dense, n int) {
	rows, cols := m.Dims()
	if n > rows {
		n = rows
	}
	for _, h := range headers {
		fmt.Printf("%-15s", h)
	}
	fmt.Println()
	for i := 0; i < n; i++ {
		for j := 0; j < cols; j++ {
			fmt.Printf("%-15.6f", m.At(i, j))
		}
		fmt.Println()
	}
}

func main() {
	app, err := config.LoadApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	configPath := flag.String("config", app.ConfigPath, "Path to YAML preprocessing config")
	inputPath := flag.String("input", app.InputPath, "Path to input data file (.csv or .parquet)")
	mode := flag.String("mode", "cli", "Output mode: cli or csv")
	outputPath := flag.String("output", app.OutputPath, "Path to save processed CSV (if mode=csv)")
	previewRows := flag.Int("preview", 5, "Number of rows to preview in console")
	flag.Parse()

	logger := logging.Setup(app.Logging)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config failed", "error", err)
		os.Exit(1)
	}

	ds, err := data.Load(*inputPath)
	if err != nil {
		logger.Error("loading data failed", "error", err)
		os.Exit(1)
	}
	logger.Info("loaded dataset", "path", *inputPath, "rows", ds.Rows(), "columns", len(ds.Columns()))

	pre := pipeline.NewPreprocessor(cfg)
	transformed, err := pre.FitTransform(ds, nil)
	if err != nil {
		logger.Error("preprocessing failed", "error", err)
		os.Exit(1)
	}

	headers, err := pre.FeatureNames()
	if err != nil {
		logger.Error("reading feature names failed", "error", err)
		os.Exit(1)
	}
	rows, cols := transformed.Dims()
	logger.Info("preprocessing complete", "rows", rows, "output_columns", cols)

	if *mode != "csv" {
		fmt.Println("\nPreview of processed data:")
		previewMatrix(headers, transformed, *previewRows)
		return
	}

	if *outputPath == "" {
		base := filepath.Base(*inputPath)
		*outputPath = filepath.Join(".", "processed_"+base[:len(base)-len(filepath.Ext(base))]+".csv")
	}

	file, err := os.Create(*outputPath)
	if err != nil {
		logger.Error("creating output file failed", "path", *outputPath, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		logger.Error("writing headers failed", "error", err)
		os.Exit(1)
	}
	record := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.FormatFloat(transformed.At(i, j), 'f', 6, 64)
		}
		if err := writer.Write(record); err != nil {
			logger.Error("writing row failed", "row", i, "error", err)
			os.Exit(1)
		}
	}

	fmt.Println("Processed data saved to:", *outputPath)
}
