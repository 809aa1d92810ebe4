package generation

import "errors"

var (
	// ErrDegenerateGeometry marks input the geometry routines cannot work with,
	// such as zero-length edges or coincident connector endpoints.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrNoSharedEndpoint is returned by JoinWall when the two paths do not touch
	ErrNoSharedEndpoint = errors.New("paths share no endpoint")

	// ErrRoundingFailed is returned by RoundToAngle when no rounded ray meets the following edge
	ErrRoundingFailed = errors.New("angle rounding found no intersection")
)
