package dataprep

import (
	"fmt"
	"sort"
	"strconv"
)

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(v string) bool {
	return v == "" || v == "NA" || v == "NaN"
}

// numericValues parses the non-missing cells of a column. Returns an error
// naming the first cell that is not numeric.
func numericValues(col []string) ([]float64, error) {
	nums := make([]float64, 0, len(col))
	for _, v := range col {
		if IsMissing(v) {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value %q", v)
		}
		nums = append(nums, f)
	}
	return nums, nil
}

// formatFloat renders a float so that it parses back to the same value.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// median returns the midpoint median of a slice (allocates a copy).
func median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// percentile returns the p-th percentile (0 <= p <= 100) with linear
// interpolation between ranks.
func percentile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	if p <= 0 {
		return cp[0]
	}
	if p >= 100 {
		return cp[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}
