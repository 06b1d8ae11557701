package data

import "fmt"

// Dataset is an in-memory table: ordered named columns with rows aligned by
// position. Cells are raw strings; "" marks a missing value.
type Dataset struct {
	names []string
	index map[string]int
	cols  [][]string
}

// NewDataset builds a Dataset from column names and row-major cells. Every
// row must have one cell per column.
func NewDataset(names []string, rows [][]string) (*Dataset, error) {
	index := make(map[string]int, len(names))
	for i, n := range names {
		if _, ok := index[n]; ok {
			return nil, fmt.Errorf("duplicate column name %q", n)
		}
		index[n] = i
	}

	cols := make([][]string, len(names))
	for j := range cols {
		cols[j] = make([]string, len(rows))
	}
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(names))
		}
		for j, v := range row {
			cols[j][i] = v
		}
	}
	return &Dataset{names: names, index: index, cols: cols}, nil
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string { return d.names }

// Rows returns the number of rows.
func (d *Dataset) Rows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return len(d.cols[0])
}

// Column returns the values of the named column.
func (d *Dataset) Column(name string) ([]string, bool) {
	j, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[j], true
}
