package dataprep

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Imputation strategies supported by SimpleImputer.
const (
	StrategyMean         = "mean"
	StrategyMedian       = "median"
	StrategyMostFrequent = "most_frequent"
	StrategyConstant     = "constant"
)

// SimpleImputer replaces missing cells with a value learned at fit time:
// column mean or median (numeric strategies), the most frequent value, or a
// fixed constant.
type SimpleImputer struct {
	strategy  string
	fillValue string

	fill   string
	fitted bool
}

// NewSimpleImputer builds a SimpleImputer. fillValue is only used by the
// constant strategy.
func NewSimpleImputer(strategy, fillValue string) (*SimpleImputer, error) {
	switch strategy {
	case StrategyMean, StrategyMedian, StrategyMostFrequent, StrategyConstant:
	default:
		return nil, fmt.Errorf("unknown imputation strategy %q", strategy)
	}
	if strategy == StrategyConstant && fillValue == "" {
		fillValue = "missing_value"
	}
	return &SimpleImputer{strategy: strategy, fillValue: fillValue}, nil
}

// Fit learns the replacement value from the non-missing cells.
func (im *SimpleImputer) Fit(col []string) error {
	switch im.strategy {
	case StrategyMean, StrategyMedian:
		nums, err := numericValues(col)
		if err != nil {
			return fmt.Errorf("%s imputer: %w", im.strategy, err)
		}
		if len(nums) == 0 {
			return fmt.Errorf("%s imputer: column has no numeric values", im.strategy)
		}
		if im.strategy == StrategyMean {
			im.fill = formatFloat(stat.Mean(nums, nil))
		} else {
			im.fill = formatFloat(median(nums))
		}
	case StrategyMostFrequent:
		mode, err := mostFrequent(col)
		if err != nil {
			return err
		}
		im.fill = mode
	case StrategyConstant:
		im.fill = im.fillValue
	}
	im.fitted = true
	return nil
}

// Transform returns a copy of the column with missing cells filled.
func (im *SimpleImputer) Transform(col []string) ([]string, error) {
	if !im.fitted {
		return nil, errors.New("imputer used before fit")
	}
	out := make([]string, len(col))
	for i, v := range col {
		if IsMissing(v) {
			out[i] = im.fill
		} else {
			out[i] = v
		}
	}
	return out, nil
}

// FillValue returns the learned replacement value.
func (im *SimpleImputer) FillValue() string { return im.fill }

// mostFrequent returns the most common non-missing cell; ties resolve to the
// smallest value so repeated fits are deterministic.
func mostFrequent(col []string) (string, error) {
	counts := make(map[string]int)
	for _, v := range col {
		if !IsMissing(v) {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return "", errors.New("most_frequent imputer: column has no values")
	}
	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)
	best := values[0]
	for _, v := range values[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, nil
}
