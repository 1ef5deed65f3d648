package pool

import "errors"

var (
	// ErrNotInitialized indicates an operation that needs a live backing
	// store was called before Initialize (or after Shutdown).
	ErrNotInitialized = errors.New("pool: not initialized")

	// ErrInvalidSize indicates a non-positive request or one exceeding the
	// pool's total capacity in bytes.
	ErrInvalidSize = errors.New("pool: size must be positive and within pool capacity")

	// ErrNoFittingHole indicates the placement strategy found no hole large
	// enough for the request.
	ErrNoFittingHole = errors.New("pool: no hole large enough")

	// ErrBadStrategyOffset indicates the strategy broke its contract by
	// returning an offset that is not the start of a listed hole that fits.
	ErrBadStrategyOffset = errors.New("pool: strategy returned an offset not usable for the request")
)
