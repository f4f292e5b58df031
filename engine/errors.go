package engine

import "errors"

// Error taxonomy for the rules engine and solver.
//
// ErrPassLimitType vs ErrPassLimitValue lets callers distinguish a profile
// carrying the wrong data type from one carrying the right type with an
// invalid value.
var (
	// ErrInvalidMove is returned when a move carries no usable
	// type/action discriminant. The engine cannot classify an untyped
	// action, so this is never recovered.
	ErrInvalidMove = errors.New("engine: move must define a type or action field")

	// ErrPassLimitType is returned when the profile's passes field holds
	// an unsupported data type (bool, struct, ...).
	ErrPassLimitType = errors.New("engine: pass limit has unsupported type")

	// ErrPassLimitValue is returned when the passes field holds a value
	// of a supported type that cannot normalize to a non-negative limit
	// (negative, NaN, Inf, unparseable string).
	ErrPassLimitValue = errors.New("engine: pass limit has invalid value")

	// ErrDrawCount is returned by NewSolver when the configured draw
	// count is below one.
	ErrDrawCount = errors.New("engine: draw count must be at least 1")

	// ErrPassLimitNegative is returned by NewSolver when a negative pass
	// limit is configured.
	ErrPassLimitNegative = errors.New("engine: pass limit must be non-negative")
)
