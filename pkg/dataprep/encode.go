package dataprep

import (
	"errors"
	"fmt"
	"sort"
)

// Unknown-category policies for OneHotEncoder.
const (
	UnknownError  = "error"
	UnknownIgnore = "ignore"
)

// OneHotEncoder expands a categorical column into one indicator column per
// category seen at fit time. Categories are ordered ascending by byte value,
// so output column identity is stable across fits on the same data.
type OneHotEncoder struct {
	handleUnknown string

	categories []string
	index      map[string]int
	fitted     bool
}

func NewOneHotEncoder(handleUnknown string) (*OneHotEncoder, error) {
	switch handleUnknown {
	case UnknownError, UnknownIgnore:
	default:
		return nil, fmt.Errorf("unknown handle_unknown policy %q", handleUnknown)
	}
	return &OneHotEncoder{handleUnknown: handleUnknown}, nil
}

// Fit collects the distinct non-missing values of the column.
func (e *OneHotEncoder) Fit(col []string) error {
	e.index = make(map[string]int)
	e.categories = e.categories[:0]
	for _, v := range col {
		if IsMissing(v) {
			continue
		}
		if _, ok := e.index[v]; !ok {
			e.index[v] = 0
			e.categories = append(e.categories, v)
		}
	}
	if len(e.categories) == 0 {
		return errors.New("one-hot encoder: column has no values")
	}
	sort.Strings(e.categories)
	for i, c := range e.categories {
		e.index[c] = i
	}
	e.fitted = true
	return nil
}

// Encode returns the indicator matrix, one row per cell. Missing cells and
// unseen categories follow the handle_unknown policy: an all-zero row under
// "ignore", an error otherwise.
func (e *OneHotEncoder) Encode(col []string) ([][]float64, error) {
	if !e.fitted {
		return nil, errors.New("one-hot encoder used before fit")
	}
	out := make([][]float64, len(col))
	for i, v := range col {
		row := make([]float64, len(e.categories))
		idx, known := e.index[v]
		if known && !IsMissing(v) {
			row[idx] = 1
		} else if e.handleUnknown == UnknownError {
			return nil, fmt.Errorf("one-hot encoder: unknown category %q", v)
		}
		out[i] = row
	}
	return out, nil
}

// Width returns the number of output columns.
func (e *OneHotEncoder) Width() int { return len(e.categories) }

// Categories returns the learned categories in output order.
func (e *OneHotEncoder) Categories() []string { return e.categories }

// FeatureNames derives output column names from the source column name.
func (e *OneHotEncoder) FeatureNames(base string) []string {
	names := make([]string, len(e.categories))
	for i, c := range e.categories {
		names[i] = base + "_" + c
	}
	return names
}

// OrdinalEncoder maps each category to its index in the sorted training
// vocabulary, producing a single integer-valued column.
type OrdinalEncoder struct {
	categories []string
	index      map[string]int
	fitted     bool
}

func NewOrdinalEncoder() *OrdinalEncoder { return &OrdinalEncoder{} }

func (e *OrdinalEncoder) Fit(col []string) error {
	seen := make(map[string]struct{})
	e.categories = e.categories[:0]
	for _, v := range col {
		if IsMissing(v) {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			e.categories = append(e.categories, v)
		}
	}
	if len(e.categories) == 0 {
		return errors.New("ordinal encoder: column has no values")
	}
	sort.Strings(e.categories)
	e.index = make(map[string]int, len(e.categories))
	for i, c := range e.categories {
		e.index[c] = i
	}
	e.fitted = true
	return nil
}

func (e *OrdinalEncoder) Encode(col []string) ([][]float64, error) {
	if !e.fitted {
		return nil, errors.New("ordinal encoder used before fit")
	}
	out := make([][]float64, len(col))
	for i, v := range col {
		if IsMissing(v) {
			return nil, errors.New("ordinal encoder: missing value; configure an imputer upstream")
		}
		idx, ok := e.index[v]
		if !ok {
			return nil, fmt.Errorf("ordinal encoder: unknown category %q", v)
		}
		out[i] = []float64{float64(idx)}
	}
	return out, nil
}

func (e *OrdinalEncoder) Width() int { return 1 }

// Categories returns the learned categories in index order.
func (e *OrdinalEncoder) Categories() []string { return e.categories }

func (e *OrdinalEncoder) FeatureNames(base string) []string { return []string{base} }
