package pipeline

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bburaakk/ScaffoldML/pkg/dataprep"
)

// Step is one narrow stage of a feature pipeline: it fits on a column and
// maps it to a column of the same length.
type Step interface {
	Fit(col []string) error
	Transform(col []string) ([]string, error)
}

// Encoder is a terminal widening stage: it maps a column to a numeric block
// of one or more output columns.
type Encoder interface {
	Fit(col []string) error
	Encode(col []string) ([][]float64, error)
	Width() int
	FeatureNames(base string) []string
}

// Step labels inside a feature pipeline. The label is the step's identity,
// independent of which algorithm fills the slot.
const (
	labelImputer = "imputer"
	labelScaler  = "scaler"
	labelEncoder = "encoder"
)

type namedStep struct {
	label string
	step  Step
}

// stepSpec is one configured slot of a feature group: label, symbolic
// algorithm name (empty = skip) and keyword arguments.
type stepSpec struct {
	label  string
	name   string
	kwargs map[string]interface{}
}

// makeStep instantiates one configured step. An empty name means the step is
// not configured, which is a valid outcome, not an error.
func makeStep(spec stepSpec) (interface{}, bool, error) {
	if spec.name == "" {
		return nil, false, nil
	}
	factory, err := Resolve(spec.name)
	if err != nil {
		return nil, false, err
	}
	kwargs := spec.kwargs
	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}
	unit, err := factory(kwargs)
	if err != nil {
		return nil, false, err
	}
	return unit, true, nil
}

// FeaturePipeline applies the configured steps of one feature group to a
// single source column, in fixed order: imputation first, then scaling or
// encoding. Missing values must be filled before any step that cannot
// tolerate them.
type FeaturePipeline struct {
	feature string
	steps   []namedStep
	encoder Encoder
}

// newFeaturePipeline assembles the pipeline for one feature. Returns nil if
// no step is configured; that feature then contributes nothing to the output.
func newFeaturePipeline(feature string, specs []stepSpec) (*FeaturePipeline, error) {
	p := &FeaturePipeline{feature: feature}
	for _, spec := range specs {
		unit, configured, err := makeStep(spec)
		if err != nil {
			return nil, fmt.Errorf("feature %q, step %s (%s): %w", feature, spec.label, spec.name, err)
		}
		if !configured {
			continue
		}
		switch u := unit.(type) {
		case Encoder:
			p.encoder = u
		case Step:
			p.steps = append(p.steps, namedStep{label: spec.label, step: u})
		default:
			return nil, fmt.Errorf("%w: step %s (%s) implements neither transform nor encode",
				ErrInstantiation, spec.label, spec.name)
		}
	}
	if len(p.steps) == 0 && p.encoder == nil {
		return nil, nil
	}
	return p, nil
}

// Fit runs the sequential fit-then-transform chain over the column.
func (p *FeaturePipeline) Fit(col []string) error {
	cur := col
	for _, s := range p.steps {
		if err := s.step.Fit(cur); err != nil {
			return fmt.Errorf("fit %s for feature %q: %w", s.label, p.feature, err)
		}
		next, err := s.step.Transform(cur)
		if err != nil {
			return fmt.Errorf("fit %s for feature %q: %w", s.label, p.feature, err)
		}
		cur = next
	}
	if p.encoder != nil {
		if err := p.encoder.Fit(cur); err != nil {
			return fmt.Errorf("fit %s for feature %q: %w", labelEncoder, p.feature, err)
		}
	}
	return nil
}

// Transform applies the fitted steps and materializes the numeric output
// block, one row per input cell.
func (p *FeaturePipeline) Transform(col []string) ([][]float64, error) {
	cur := col
	for _, s := range p.steps {
		next, err := s.step.Transform(cur)
		if err != nil {
			return nil, fmt.Errorf("transform %s for feature %q: %w", s.label, p.feature, err)
		}
		cur = next
	}
	if p.encoder != nil {
		block, err := p.encoder.Encode(cur)
		if err != nil {
			return nil, fmt.Errorf("transform %s for feature %q: %w", labelEncoder, p.feature, err)
		}
		return block, nil
	}

	// No encoder: the result is a single numeric column. Cells still missing
	// at this point come out as NaN.
	out := make([][]float64, len(cur))
	for i, v := range cur {
		if dataprep.IsMissing(v) {
			out[i] = []float64{math.NaN()}
			continue
		}
		num, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("feature %q: non-numeric value %q after preprocessing", p.feature, v)
		}
		out[i] = []float64{num}
	}
	return out, nil
}

// Width returns the number of output columns this pipeline produces.
func (p *FeaturePipeline) Width() int {
	if p.encoder != nil {
		return p.encoder.Width()
	}
	return 1
}

// FeatureNames returns the output column names of this pipeline.
func (p *FeaturePipeline) FeatureNames() []string {
	if p.encoder != nil {
		return p.encoder.FeatureNames(p.feature)
	}
	return []string{p.feature}
}
