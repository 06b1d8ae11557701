package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bburaakk/ScaffoldML/pkg/config"
	"github.com/bburaakk/ScaffoldML/pkg/data"
)

type entry struct {
	feature string
	pipe    *FeaturePipeline
}

// ColumnTransformer routes each declared feature through its own pipeline and
// concatenates the output blocks: numerical features first, then categorical,
// each group in declared order. Input columns not declared in the
// configuration are dropped.
type ColumnTransformer struct {
	entries []entry
}

// BuildColumnTransformer assembles a ColumnTransformer from configuration.
// All features of a group share the group's step config. Fails with
// ErrConfiguration when no feature ends up with at least one configured step,
// since an empty transformer would silently produce nothing.
func BuildColumnTransformer(cfg *config.PreprocessorConfig) (*ColumnTransformer, error) {
	var entries []entry

	var numSpecs []stepSpec
	if num := cfg.Steps.Numerical; num != nil {
		numSpecs = []stepSpec{
			{label: labelImputer, name: num.Imputer, kwargs: num.ImputerKwargs},
			{label: labelScaler, name: num.Scaler, kwargs: num.ScalerKwargs},
		}
	}
	for _, feature := range cfg.Features.Numerical {
		pipe, err := newFeaturePipeline(feature, numSpecs)
		if err != nil {
			return nil, err
		}
		if pipe != nil {
			entries = append(entries, entry{feature: feature, pipe: pipe})
		}
	}

	var catSpecs []stepSpec
	if cat := cfg.Steps.Categorical; cat != nil {
		catSpecs = []stepSpec{
			{label: labelImputer, name: cat.Imputer, kwargs: cat.ImputerKwargs},
			{label: labelEncoder, name: cat.Encoder, kwargs: cat.EncoderKwargs},
		}
	}
	for _, feature := range cfg.Features.Categorical {
		pipe, err := newFeaturePipeline(feature, catSpecs)
		if err != nil {
			return nil, err
		}
		if pipe != nil {
			entries = append(entries, entry{feature: feature, pipe: pipe})
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no transformers were created; check the features and steps sections", ErrConfiguration)
	}
	return &ColumnTransformer{entries: entries}, nil
}

// Fit fits every feature pipeline on its source column.
func (ct *ColumnTransformer) Fit(ds *data.Dataset) error {
	for _, e := range ct.entries {
		col, ok := ds.Column(e.feature)
		if !ok {
			return fmt.Errorf("feature %q not present in data (columns: %v)", e.feature, ds.Columns())
		}
		if err := e.pipe.Fit(col); err != nil {
			return err
		}
	}
	return nil
}

// Transform applies the fitted pipelines and stacks their blocks side by side
// into one numeric matrix, rows aligned with the input.
func (ct *ColumnTransformer) Transform(ds *data.Dataset) (*mat.Dense, error) {
	rows := ds.Rows()
	if rows == 0 {
		return nil, fmt.Errorf("cannot transform an empty dataset")
	}
	width := 0
	for _, e := range ct.entries {
		width += e.pipe.Width()
	}

	out := mat.NewDense(rows, width, nil)
	offset := 0
	for _, e := range ct.entries {
		col, ok := ds.Column(e.feature)
		if !ok {
			return nil, fmt.Errorf("feature %q not present in data (columns: %v)", e.feature, ds.Columns())
		}
		block, err := e.pipe.Transform(col)
		if err != nil {
			return nil, err
		}
		if len(block) != rows {
			return nil, fmt.Errorf("feature %q: pipeline produced %d rows, want %d", e.feature, len(block), rows)
		}
		for i, row := range block {
			for j, v := range row {
				out.Set(i, offset+j, v)
			}
		}
		offset += e.pipe.Width()
	}
	return out, nil
}

// FeatureNames returns the output column names in matrix order.
func (ct *ColumnTransformer) FeatureNames() []string {
	var names []string
	for _, e := range ct.entries {
		names = append(names, e.pipe.FeatureNames()...)
	}
	return names
}

// Entries returns the declared feature of every assembled pipeline, in order.
func (ct *ColumnTransformer) Entries() []string {
	names := make([]string, len(ct.entries))
	for i, e := range ct.entries {
		names[i] = e.feature
	}
	return names
}
