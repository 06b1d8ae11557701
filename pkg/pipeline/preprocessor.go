package pipeline

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/bburaakk/ScaffoldML/pkg/config"
	"github.com/bburaakk/ScaffoldML/pkg/data"
)

// Preprocessor owns the configuration and the fitted column transformer.
// Lifecycle: unfitted until a Fit succeeds; Transform is only legal after
// that. A single instance is not safe for concurrent use; the config may be
// shared read-only across instances.
type Preprocessor struct {
	cfg    *config.PreprocessorConfig
	ct     *ColumnTransformer
	fitted bool
}

// NewPreprocessor creates an unfitted Preprocessor over a loaded config.
func NewPreprocessor(cfg *config.PreprocessorConfig) *Preprocessor {
	return &Preprocessor{cfg: cfg}
}

// Fit rebuilds the column transformer from the configuration and fits it on
// the dataset. Labels are accepted for interface uniformity; no built-in step
// uses them. On failure no fitted state survives: the instance stays (or
// reverts to) unfitted.
func (p *Preprocessor) Fit(ds *data.Dataset, labels []float64) error {
	_ = labels

	p.fitted = false
	ct, err := BuildColumnTransformer(p.cfg)
	if err != nil {
		return err
	}
	if err := ct.Fit(ds); err != nil {
		return err
	}
	p.ct = ct
	p.fitted = true
	slog.Debug("preprocessor fitted", "features", ct.Entries(), "output_columns", len(ct.FeatureNames()))
	return nil
}

// Transform applies the fitted transformer. Fails with ErrNotFitted if Fit
// has not succeeded yet.
func (p *Preprocessor) Transform(ds *data.Dataset) (*mat.Dense, error) {
	if !p.fitted {
		return nil, ErrNotFitted
	}
	return p.ct.Transform(ds)
}

// FitTransform fits on the dataset and transforms it, exactly as calling Fit
// then Transform.
func (p *Preprocessor) FitTransform(ds *data.Dataset, labels []float64) (*mat.Dense, error) {
	if err := p.Fit(ds, labels); err != nil {
		return nil, err
	}
	return p.Transform(ds)
}

// IsFitted reports whether a Fit has succeeded.
func (p *Preprocessor) IsFitted() bool { return p.fitted }

// FeatureNames returns the output column names of the fitted transformer.
func (p *Preprocessor) FeatureNames() ([]string, error) {
	if !p.fitted {
		return nil, ErrNotFitted
	}
	return p.ct.FeatureNames(), nil
}
