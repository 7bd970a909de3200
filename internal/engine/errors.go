package engine

import "errors"

// The engine's error taxonomy. Absence of a verdict must be visible to the
// caller: none of these are ever converted into a low-risk score.
var (
	// ErrInvalidInput marks an empty or whitespace-only submission; it is
	// rejected before the classifier runs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelUnavailable means no ensemble model could vote; the request
	// fails closed rather than guessing.
	ErrModelUnavailable = errors.New("no ensemble model available")

	// ErrAnalysisTimeout means the per-request deadline elapsed before a
	// complete assessment was produced; no partial score is returned.
	ErrAnalysisTimeout = errors.New("analysis timed out")
)
