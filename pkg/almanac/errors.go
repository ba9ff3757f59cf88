package almanac

import "errors"

var (
	// ErrUnexpectedCrossingShape indicates the crossing finder returned a
	// sequence the event resolver does not recognize. The affected row is
	// rendered with placeholders; the run continues.
	ErrUnexpectedCrossingShape = errors.New("unexpected horizon-crossing shape")

	// ErrTransitSearchStartOverflow indicates the transit sweep's start-index
	// heuristic landed past the event. This is a bug in the heuristic, not in
	// the inputs, so it aborts the run.
	ErrTransitSearchStartOverflow = errors.New("transit search start index overshot the event")
)
