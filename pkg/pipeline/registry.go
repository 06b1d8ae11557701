package pipeline

import (
	"fmt"
	"strings"

	"github.com/bburaakk/ScaffoldML/pkg/dataprep"
)

// Factory builds a configured transformation unit from keyword arguments.
// The result implements Step or Encoder.
type Factory func(kwargs map[string]interface{}) (interface{}, error)

// Step names resolve against a fixed, ordered list of namespaces, mirroring
// how the supported algorithms are grouped. A dotted name ("impute.SimpleImputer")
// addresses one namespace directly. All registration happens at startup;
// the registry is read-only afterwards.
var (
	namespaces  = map[string]map[string]Factory{}
	searchOrder []string
)

// RegisterNamespace adds a namespace to the bare-name search order. Adding an
// existing namespace is a no-op.
func RegisterNamespace(ns string) {
	if _, ok := namespaces[ns]; ok {
		return
	}
	namespaces[ns] = map[string]Factory{}
	searchOrder = append(searchOrder, ns)
}

// Register binds a step name to a factory inside a namespace.
func Register(ns, name string, f Factory) {
	RegisterNamespace(ns)
	namespaces[ns][name] = f
}

// Resolve returns the factory for a symbolic step name. Bare names search the
// registered namespaces in order; dotted names look up exactly one namespace.
func Resolve(name string) (Factory, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty step name", ErrResolution)
	}
	for _, ns := range searchOrder {
		if f, ok := namespaces[ns][name]; ok {
			return f, nil
		}
	}

	i := strings.LastIndex(name, ".")
	if i < 0 {
		return nil, fmt.Errorf("%w: %q is not registered and is not a dotted path", ErrResolution, name)
	}
	ns, attr := name[:i], name[i+1:]
	reg, ok := namespaces[ns]
	if !ok {
		return nil, fmt.Errorf("%w: unknown namespace %q in %q", ErrResolution, ns, name)
	}
	f, ok := reg[attr]
	if !ok {
		return nil, fmt.Errorf("%w: namespace %q has no step %q", ErrResolution, ns, attr)
	}
	return f, nil
}

func init() {
	Register("impute", "SimpleImputer", func(kw map[string]interface{}) (interface{}, error) {
		if err := checkKwargKeys(kw, "strategy", "fill_value"); err != nil {
			return nil, err
		}
		strategy, err := kwargString(kw, "strategy", dataprep.StrategyMean)
		if err != nil {
			return nil, err
		}
		fill, err := kwargString(kw, "fill_value", "")
		if err != nil {
			return nil, err
		}
		im, err := dataprep.NewSimpleImputer(strategy, fill)
		if err != nil {
			return nil, fmt.Errorf("%w: SimpleImputer: %v", ErrInstantiation, err)
		}
		return im, nil
	})

	Register("preprocessing", "StandardScaler", func(kw map[string]interface{}) (interface{}, error) {
		if err := checkKwargKeys(kw, "with_mean", "with_std"); err != nil {
			return nil, err
		}
		withMean, err := kwargBool(kw, "with_mean", true)
		if err != nil {
			return nil, err
		}
		withStd, err := kwargBool(kw, "with_std", true)
		if err != nil {
			return nil, err
		}
		return dataprep.NewStandardScaler(withMean, withStd), nil
	})

	Register("preprocessing", "MinMaxScaler", func(kw map[string]interface{}) (interface{}, error) {
		if err := checkKwargKeys(kw, "feature_range"); err != nil {
			return nil, err
		}
		lo, hi, err := kwargRange(kw, "feature_range", 0, 1)
		if err != nil {
			return nil, err
		}
		s, err := dataprep.NewMinMaxScaler(lo, hi)
		if err != nil {
			return nil, fmt.Errorf("%w: MinMaxScaler: %v", ErrInstantiation, err)
		}
		return s, nil
	})

	Register("preprocessing", "RobustScaler", func(kw map[string]interface{}) (interface{}, error) {
		if err := checkKwargKeys(kw); err != nil {
			return nil, err
		}
		return dataprep.NewRobustScaler(), nil
	})

	Register("preprocessing", "OneHotEncoder", func(kw map[string]interface{}) (interface{}, error) {
		if err := checkKwargKeys(kw, "handle_unknown"); err != nil {
			return nil, err
		}
		policy, err := kwargString(kw, "handle_unknown", dataprep.UnknownError)
		if err != nil {
			return nil, err
		}
		enc, err := dataprep.NewOneHotEncoder(policy)
		if err != nil {
			return nil, fmt.Errorf("%w: OneHotEncoder: %v", ErrInstantiation, err)
		}
		return enc, nil
	})

	Register("preprocessing", "OrdinalEncoder", func(kw map[string]interface{}) (interface{}, error) {
		if err := checkKwargKeys(kw); err != nil {
			return nil, err
		}
		return dataprep.NewOrdinalEncoder(), nil
	})
}

// checkKwargKeys rejects keyword arguments the step does not accept.
func checkKwargKeys(kw map[string]interface{}, allowed ...string) error {
	for key := range kw {
		ok := false
		for _, a := range allowed {
			if key == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: unexpected keyword argument %q", ErrInstantiation, key)
		}
	}
	return nil
}

func kwargString(kw map[string]interface{}, key, def string) (string, error) {
	v, ok := kw[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: keyword argument %q must be a string, got %T", ErrInstantiation, key, v)
	}
	return s, nil
}

// kwargRange reads a two-element numeric sequence such as feature_range.
func kwargRange(kw map[string]interface{}, key string, defLo, defHi float64) (float64, float64, error) {
	v, ok := kw[key]
	if !ok || v == nil {
		return defLo, defHi, nil
	}
	seq, ok := v.([]interface{})
	if !ok || len(seq) != 2 {
		return 0, 0, fmt.Errorf("%w: keyword argument %q must be a sequence of two numbers, got %v", ErrInstantiation, key, v)
	}
	bounds := make([]float64, 2)
	for i, el := range seq {
		switch n := el.(type) {
		case int:
			bounds[i] = float64(n)
		case float64:
			bounds[i] = n
		default:
			return 0, 0, fmt.Errorf("%w: keyword argument %q must contain numbers, got %T", ErrInstantiation, key, el)
		}
	}
	return bounds[0], bounds[1], nil
}

func kwargBool(kw map[string]interface{}, key string, def bool) (bool, error) {
	v, ok := kw[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: keyword argument %q must be a bool, got %T", ErrInstantiation, key, v)
	}
	return b, nil
}
