package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/bburaakk/ScaffoldML/pkg/config"
	"github.com/bburaakk/ScaffoldML/pkg/data"
)

func makeDataset(t *testing.T, names []string, rows [][]string) *data.Dataset {
	t.Helper()
	ds, err := data.NewDataset(names, rows)
	require.NoError(t, err)
	return ds
}

// meanImputeConfig declares one numerical feature with a mean imputer only.
func meanImputeConfig(features ...string) *config.PreprocessorConfig {
	return &config.PreprocessorConfig{
		Features: config.FeatureConfig{Numerical: features},
		Steps: config.StepsConfig{
			Numerical: &config.NumericalStepsConfig{
				Imputer:       "SimpleImputer",
				ImputerKwargs: map[string]interface{}{"strategy": "mean"},
			},
		},
	}
}

// fullConfig mirrors the numerical imputer+scaler / categorical
// imputer+encoder setup.
func fullConfig() *config.PreprocessorConfig {
	return &config.PreprocessorConfig{
		Features: config.FeatureConfig{
			Numerical:   []string{"Col_0", "Col_1"},
			Categorical: []string{"city"},
		},
		Steps: config.StepsConfig{
			Numerical: &config.NumericalStepsConfig{
				Imputer:       "SimpleImputer",
				ImputerKwargs: map[string]interface{}{"strategy": "mean"},
				Scaler:        "StandardScaler",
				ScalerKwargs:  map[string]interface{}{"with_mean": true, "with_std": true},
			},
			Categorical: &config.CategoricalStepsConfig{
				Imputer:       "SimpleImputer",
				ImputerKwargs: map[string]interface{}{"strategy": "most_frequent"},
				Encoder:       "OneHotEncoder",
				EncoderKwargs: map[string]interface{}{"handle_unknown": "ignore"},
			},
		},
	}
}

// sixRowDataset is the worked example: two numeric columns with one missing
// cell each, one categorical column with one missing cell.
func sixRowDataset(t *testing.T) *data.Dataset {
	return makeDataset(t,
		[]string{"Col_0", "Col_1", "city"},
		[][]string{
			{"1.0", "4.0", "İstanbul"},
			{"2.0", "5.0", "Ankara"},
			{"3.0", "", ""},
			{"", "7.0", "Ankara"},
			{"6.0", "8.0", "Antalya"},
			{"10.0", "9.0", "İzmir"},
		})
}

func popStandardize(values []float64) []float64 {
	n := float64(len(values))
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= n
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / n)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}

func TestBuildColumnTransformerEntryOrder(t *testing.T) {
	ct, err := BuildColumnTransformer(fullConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Col_0", "Col_1", "city"}, ct.Entries(),
		"numerical features precede categorical, both in declared order")
}

func TestBuildColumnTransformerEmpty(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.PreprocessorConfig
	}{
		{"no features at all", &config.PreprocessorConfig{}},
		{
			"features without any configured step",
			&config.PreprocessorConfig{
				Features: config.FeatureConfig{Numerical: []string{"A"}, Categorical: []string{"B"}},
			},
		},
		{
			"step config present but every name empty",
			&config.PreprocessorConfig{
				Features: config.FeatureConfig{Numerical: []string{"A"}},
				Steps:    config.StepsConfig{Numerical: &config.NumericalStepsConfig{}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildColumnTransformer(tt.cfg)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestBuildColumnTransformerBadStep(t *testing.T) {
	cfg := meanImputeConfig("A")
	cfg.Steps.Numerical.Imputer = "QuantumImputer"
	_, err := BuildColumnTransformer(cfg)
	assert.ErrorIs(t, err, ErrResolution)

	cfg = meanImputeConfig("A")
	cfg.Steps.Numerical.ImputerKwargs = map[string]interface{}{"strategy": "mean", "jobs": 4}
	_, err = BuildColumnTransformer(cfg)
	assert.ErrorIs(t, err, ErrInstantiation)
}

func TestTransformBeforeFit(t *testing.T) {
	pre := NewPreprocessor(meanImputeConfig("A"))
	ds := makeDataset(t, []string{"A"}, [][]string{{"1"}})

	_, err := pre.Transform(ds)
	assert.ErrorIs(t, err, ErrNotFitted)
	assert.False(t, pre.IsFitted())
}

func TestMeanImputationScenario(t *testing.T) {
	pre := NewPreprocessor(meanImputeConfig("A"))
	ds := makeDataset(t, []string{"A"}, [][]string{{"1.0"}, {""}, {"3.0"}})

	got, err := pre.FitTransform(ds, nil)
	require.NoError(t, err)
	require.True(t, pre.IsFitted())

	want := mat.NewDense(3, 1, []float64{1, 2, 3})
	assert.True(t, mat.Equal(want, got), "fitted mean 2.0 fills the missing cell")
}

func TestFitTransformEqualsFitThenTransform(t *testing.T) {
	ds := sixRowDataset(t)

	a := NewPreprocessor(fullConfig())
	require.NoError(t, a.Fit(ds, nil))
	wantMat, err := a.Transform(ds)
	require.NoError(t, err)

	b := NewPreprocessor(fullConfig())
	gotMat, err := b.FitTransform(ds, nil)
	require.NoError(t, err)

	assert.True(t, mat.Equal(wantMat, gotMat))
}

func TestWorkedExample(t *testing.T) {
	pre := NewPreprocessor(fullConfig())
	got, err := pre.FitTransform(sixRowDataset(t), nil)
	require.NoError(t, err)

	rows, cols := got.Dims()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 6, cols, "2 numeric + 4 one-hot columns")

	names, err := pre.FeatureNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Col_0", "Col_1", "city_Ankara", "city_Antalya", "city_İstanbul", "city_İzmir"}, names)

	col0 := popStandardize([]float64{1, 2, 3, 4.4, 6, 10})
	col1 := popStandardize([]float64{4, 5, 6.6, 7, 8, 9})
	ohe := [][]float64{
		{0, 0, 1, 0}, // İstanbul
		{1, 0, 0, 0}, // Ankara
		{1, 0, 0, 0}, // Ankara (imputed most frequent)
		{1, 0, 0, 0}, // Ankara
		{0, 1, 0, 0}, // Antalya
		{0, 0, 0, 1}, // İzmir
	}

	for i := 0; i < 6; i++ {
		assert.InDelta(t, col0[i], got.At(i, 0), 1e-9, "Col_0 row %d", i)
		assert.InDelta(t, col1[i], got.At(i, 1), 1e-9, "Col_1 row %d", i)
		for j, want := range ohe[i] {
			assert.Equal(t, want, got.At(i, 2+j), "city row %d col %d", i, j)
		}
	}
}

func TestOptionalScalerSkipped(t *testing.T) {
	cfg := fullConfig()
	cfg.Steps.Numerical.Scaler = ""
	cfg.Steps.Numerical.ScalerKwargs = nil

	pre := NewPreprocessor(cfg)
	got, err := pre.FitTransform(sixRowDataset(t), nil)
	require.NoError(t, err)

	wantCol0 := []float64{1, 2, 3, 4.4, 6, 10}
	wantCol1 := []float64{4, 5, 6.6, 7, 8, 9}
	for i := 0; i < 6; i++ {
		assert.InDelta(t, wantCol0[i], got.At(i, 0), 1e-12, "imputed but unscaled Col_0 row %d", i)
		assert.InDelta(t, wantCol1[i], got.At(i, 1), 1e-12, "imputed but unscaled Col_1 row %d", i)
	}
}

func TestUndeclaredColumnsDropped(t *testing.T) {
	pre := NewPreprocessor(meanImputeConfig("A"))
	ds := makeDataset(t, []string{"A", "noise"}, [][]string{
		{"1", "left"},
		{"2", "right"},
	})

	got, err := pre.FitTransform(ds, nil)
	require.NoError(t, err)
	_, cols := got.Dims()
	assert.Equal(t, 1, cols, "undeclared columns must not reach the output")
}

func TestRefitReplacesState(t *testing.T) {
	pre := NewPreprocessor(meanImputeConfig("A"))

	first := makeDataset(t, []string{"A"}, [][]string{{"1"}, {""}})
	_, err := pre.FitTransform(first, nil)
	require.NoError(t, err)

	second := makeDataset(t, []string{"A"}, [][]string{{"10"}, {"20"}, {""}})
	got, err := pre.FitTransform(second, nil)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, got.At(2, 0), 1e-12, "refit must learn from the new data only")
}

func TestFailedFitLeavesUnfitted(t *testing.T) {
	pre := NewPreprocessor(meanImputeConfig("A"))
	ds := makeDataset(t, []string{"A"}, [][]string{{"1"}})
	require.NoError(t, pre.Fit(ds, nil))

	// Second fit fails: the declared feature is missing from the data.
	other := makeDataset(t, []string{"B"}, [][]string{{"1"}})
	require.Error(t, pre.Fit(other, nil))
	assert.False(t, pre.IsFitted())

	_, err := pre.Transform(ds)
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestFeatureInBothGroups(t *testing.T) {
	cfg := fullConfig()
	cfg.Features.Numerical = []string{"dual"}
	cfg.Features.Categorical = []string{"dual"}

	pre := NewPreprocessor(cfg)
	ds := makeDataset(t, []string{"dual"}, [][]string{{"1"}, {"2"}, {"1"}})

	got, err := pre.FitTransform(ds, nil)
	require.NoError(t, err)
	_, cols := got.Dims()
	assert.Equal(t, 3, cols, "one scaled column plus a two-category one-hot block")
}
