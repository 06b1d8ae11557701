package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// FeatureConfig lists the feature names per group, in the order their
// output blocks appear in the transformed matrix.
type FeatureConfig struct {
	Numerical   []string `yaml:"numerical" validate:"unique,dive,min=1"`
	Categorical []string `yaml:"categorical" validate:"unique,dive,min=1"`
}

// NumericalStepsConfig names the preprocessing steps for numerical features.
// An empty step name means the step is skipped.
type NumericalStepsConfig struct {
	Imputer       string                 `yaml:"imputer"`
	Scaler        string                 `yaml:"scaler"`
	ImputerKwargs map[string]interface{} `yaml:"imputer_kwargs"`
	ScalerKwargs  map[string]interface{} `yaml:"scaler_kwargs"`
}

// CategoricalStepsConfig names the preprocessing steps for categorical features.
type CategoricalStepsConfig struct {
	Imputer       string                 `yaml:"imputer"`
	Encoder       string                 `yaml:"encoder"`
	ImputerKwargs map[string]interface{} `yaml:"imputer_kwargs"`
	EncoderKwargs map[string]interface{} `yaml:"encoder_kwargs"`
}

// StepsConfig holds one step config per feature group. A nil group means no
// steps are configured for that group.
type StepsConfig struct {
	Numerical   *NumericalStepsConfig   `yaml:"numerical"`
	Categorical *CategoricalStepsConfig `yaml:"categorical"`
}

// PreprocessorConfig is the full preprocessing configuration. It is loaded
// once and read-only afterwards; sharing one instance across preprocessors
// is safe.
type PreprocessorConfig struct {
	Features FeatureConfig `yaml:"features"`
	Steps    StepsConfig   `yaml:"steps"`
}

var validate = validator.New()

// Load reads a YAML configuration file into a PreprocessorConfig and
// validates it (feature names unique within each group, no blank names).
func Load(path string) (*PreprocessorConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg PreprocessorConfig
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}
