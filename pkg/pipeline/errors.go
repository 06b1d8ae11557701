package pipeline

import "errors"

// Pipeline construction and lifecycle errors. Callers match with errors.Is.
var (
	// ErrResolution marks a step name that no registered namespace provides.
	ErrResolution = errors.New("cannot resolve step")
	// ErrInstantiation marks a resolved step rejecting its keyword arguments.
	ErrInstantiation = errors.New("cannot instantiate step")
	// ErrConfiguration marks a configuration yielding an empty transformer.
	ErrConfiguration = errors.New("invalid preprocessor configuration")
	// ErrNotFitted marks a transform attempted before any successful fit.
	ErrNotFitted = errors.New("preprocessor must be fit before transform")
)
