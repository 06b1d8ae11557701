package dataprep

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardizes a numeric column to zero mean and unit
// variance. Either half of the transform can be switched off.
type StandardScaler struct {
	withMean bool
	withStd  bool

	mean   float64
	std    float64
	fitted bool
}

func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{withMean: withMean, withStd: withStd}
}

// Fit learns mean and population standard deviation from the non-missing
// cells. A constant column gets a unit divisor.
func (s *StandardScaler) Fit(col []string) error {
	nums, err := numericValues(col)
	if err != nil {
		return fmt.Errorf("standard scaler: %w", err)
	}
	if len(nums) == 0 {
		return errors.New("standard scaler: column has no numeric values")
	}
	s.mean = stat.Mean(nums, nil)
	s.std = 0
	if n := len(nums); n > 1 {
		s.std = math.Sqrt(stat.Variance(nums, nil) * float64(n-1) / float64(n))
	}
	if s.std == 0 {
		s.std = 1
	}
	s.fitted = true
	return nil
}

func (s *StandardScaler) Transform(col []string) ([]string, error) {
	if !s.fitted {
		return nil, errors.New("standard scaler used before fit")
	}
	return mapNumeric(col, "standard scaler", func(v float64) float64 {
		if s.withMean {
			v -= s.mean
		}
		if s.withStd {
			v /= s.std
		}
		return v
	})
}

// MinMaxScaler rescales a numeric column to the [lo, hi] feature range,
// [0, 1] by default. A constant column maps to lo.
type MinMaxScaler struct {
	lo float64
	hi float64

	min    float64
	max    float64
	fitted bool
}

func NewMinMaxScaler(lo, hi float64) (*MinMaxScaler, error) {
	if hi <= lo {
		return nil, fmt.Errorf("invalid feature range [%g, %g]: minimum must be below maximum", lo, hi)
	}
	return &MinMaxScaler{lo: lo, hi: hi}, nil
}

func (s *MinMaxScaler) Fit(col []string) error {
	nums, err := numericValues(col)
	if err != nil {
		return fmt.Errorf("min-max scaler: %w", err)
	}
	if len(nums) == 0 {
		return errors.New("min-max scaler: column has no numeric values")
	}
	s.min = floats.Min(nums)
	s.max = floats.Max(nums)
	s.fitted = true
	return nil
}

func (s *MinMaxScaler) Transform(col []string) ([]string, error) {
	if !s.fitted {
		return nil, errors.New("min-max scaler used before fit")
	}
	span := s.max - s.min
	return mapNumeric(col, "min-max scaler", func(v float64) float64 {
		if span == 0 {
			return s.lo
		}
		return s.lo + (v-s.min)/span*(s.hi-s.lo)
	})
}

// RobustScaler centers on the median and scales by the interquartile range,
// which keeps outliers from dominating the spread.
type RobustScaler struct {
	median float64
	iqr    float64
	fitted bool
}

func NewRobustScaler() *RobustScaler { return &RobustScaler{} }

func (s *RobustScaler) Fit(col []string) error {
	nums, err := numericValues(col)
	if err != nil {
		return fmt.Errorf("robust scaler: %w", err)
	}
	if len(nums) == 0 {
		return errors.New("robust scaler: column has no numeric values")
	}
	s.median = median(nums)
	s.iqr = percentile(nums, 75) - percentile(nums, 25)
	if s.iqr == 0 {
		s.iqr = 1
	}
	s.fitted = true
	return nil
}

func (s *RobustScaler) Transform(col []string) ([]string, error) {
	if !s.fitted {
		return nil, errors.New("robust scaler used before fit")
	}
	return mapNumeric(col, "robust scaler", func(v float64) float64 {
		return (v - s.median) / s.iqr
	})
}

// mapNumeric applies f to every non-missing cell; missing cells pass through
// untouched so a downstream step still sees them as missing.
func mapNumeric(col []string, who string, f func(float64) float64) ([]string, error) {
	out := make([]string, len(col))
	for i, v := range col {
		if IsMissing(v) {
			out[i] = v
			continue
		}
		num, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: non-numeric value %q", who, v)
		}
		out[i] = formatFloat(f(num))
	}
	return out, nil
}
