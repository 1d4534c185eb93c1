package field

import "errors"

// Domain errors for field construction and evaluation.
var (
	// ErrInvalidGrid indicates a grid with bad dimensionality or empty extent.
	ErrInvalidGrid = errors.New("field: invalid grid")

	// ErrInvalidEpsilon indicates a non-positive regularization constant.
	ErrInvalidEpsilon = errors.New("field: regularization epsilon must be positive")

	// ErrDimensionMismatch indicates a source position whose dimensionality
	// does not match the grid.
	ErrDimensionMismatch = errors.New("field: source dimension does not match grid")

	// ErrGridMismatch indicates fields defined on different grids.
	ErrGridMismatch = errors.New("field: fields defined on different grids")

	// ErrNoFields indicates a superposition over an empty collection.
	ErrNoFields = errors.New("field: nothing to superpose")

	// ErrUnknownKind indicates a source kernel kind outside the known set.
	ErrUnknownKind = errors.New("field: unknown kernel kind")

	// ErrScalarKind indicates a scalar-only kernel used where a vector
	// field is required.
	ErrScalarKind = errors.New("field: scalar kernel has no vector form")
)
