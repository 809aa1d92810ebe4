package generation

import (
	"fmt"
	"math"
)

// Path is an ordered polyline. A valid path has at least two points and no
// zero-length edges; a closed loop repeats its first point at the end.
type Path []Vec2

const pointTolerance = 1e-6

func samePoint(a, b Vec2) bool {
	return a.Dist(b) <= pointTolerance
}

// First returns the first point
func (p Path) First() Vec2 { return p[0] }

// Last returns the last point
func (p Path) Last() Vec2 { return p[len(p)-1] }

// Closed reports whether the path ends where it starts
func (p Path) Closed() bool {
	return len(p) > 2 && samePoint(p[0], p[len(p)-1])
}

// Length returns the total arc length
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += p[i].Dist(p[i-1])
	}
	return total
}

// Validate checks the path invariants
func (p Path) Validate() error {
	if len(p) < 2 {
		return fmt.Errorf("path has %d points: %w", len(p), ErrDegenerateGeometry)
	}
	for i := 1; i < len(p); i++ {
		if p[i] == p[i-1] {
			return fmt.Errorf("zero-length edge at %d: %w", i-1, ErrDegenerateGeometry)
		}
	}
	return nil
}

// Compact drops points that coincide with their predecessor. Both endpoints
// are kept exactly.
func (p Path) Compact() Path {
	if len(p) == 0 {
		return nil
	}
	out := Path{p[0]}
	for i, v := range p[1:] {
		if !samePoint(v, out[len(out)-1]) {
			out = append(out, v)
		} else if i == len(p)-2 && len(out) > 1 {
			out[len(out)-1] = v
		}
	}
	return out
}

// Reverse returns a reversed copy
func (p Path) Reverse() Path {
	out := make(Path, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// PointAtLength returns the point at arc length l (clamped to the path) and the
// index of the edge it lies on.
func (p Path) PointAtLength(l float64) (Vec2, int) {
	if l <= 0 {
		return p[0], 0
	}
	acc := 0.0
	for i := 1; i < len(p); i++ {
		seg := p[i].Dist(p[i-1])
		if acc+seg >= l {
			return p[i-1].Lerp(p[i], (l-acc)/seg), i - 1
		}
		acc += seg
	}
	return p[len(p)-1], len(p) - 2
}

// SubPath returns the part of the path between two arc lengths, or nil when
// the span is empty.
func (p Path) SubPath(from, to float64) Path {
	total := p.Length()
	from = math.Max(0, from)
	to = math.Min(total, to)
	if to-from <= pointTolerance {
		return nil
	}

	start, _ := p.PointAtLength(from)
	out := Path{start}
	acc := 0.0
	for i := 1; i < len(p); i++ {
		acc += p[i].Dist(p[i-1])
		if acc <= from+pointTolerance {
			continue
		}
		if acc >= to-pointTolerance {
			break
		}
		out = append(out, p[i])
	}
	end := p.Last()
	if to < total {
		end, _ = p.PointAtLength(to)
	}
	out = append(out, end)
	return out.Compact()
}

// DeleteAfterLength truncates the path at arc length l
func (p Path) DeleteAfterLength(l float64) Path {
	if l >= p.Length() {
		out := make(Path, len(p))
		copy(out, p)
		return out
	}
	return p.SubPath(0, l)
}

// NearestPoint returns the closest point on the path to q, its distance and its arc length
func (p Path) NearestPoint(q Vec2) (Vec2, float64, float64) {
	best := p[0]
	bestDist := q.Dist(p[0])
	bestAt := 0.0
	acc := 0.0
	for i := 1; i < len(p); i++ {
		c, t := pointOnSegment(q, p[i-1], p[i])
		seg := p[i].Dist(p[i-1])
		if d := q.Dist(c); d < bestDist {
			best, bestDist, bestAt = c, d, acc+t*seg
		}
		acc += seg
	}
	return best, bestDist, bestAt
}

// JoinWall concatenates two paths that share an endpoint, orienting them as
// needed. The shared point appears once.
func JoinWall(a, b Path) (Path, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("join empty path: %w", ErrDegenerateGeometry)
	}

	var head, tail Path
	switch {
	case samePoint(a.Last(), b.First()):
		head, tail = a, b
	case samePoint(a.Last(), b.Last()):
		head, tail = a, b.Reverse()
	case samePoint(a.First(), b.Last()):
		head, tail = b, a
	case samePoint(a.First(), b.First()):
		head, tail = a.Reverse(), b
	default:
		return nil, ErrNoSharedEndpoint
	}

	out := make(Path, 0, len(head)+len(tail)-1)
	out = append(out, head...)
	out = append(out, tail[1:]...)
	return out, nil
}

// JoinWalls folds JoinWall over several pieces in order
func JoinWalls(pieces ...Path) (Path, error) {
	if len(pieces) == 0 {
		return nil, fmt.Errorf("join nothing: %w", ErrDegenerateGeometry)
	}
	out := pieces[0]
	for i, piece := range pieces[1:] {
		joined, err := JoinWall(out, piece)
		if err != nil {
			return nil, fmt.Errorf("joining piece %d: %w", i+1, err)
		}
		out = joined
	}
	return out, nil
}

// SplitForPath cuts a gap of gapWidth centred at arc length at, returning the
// pieces before and after it. A piece that would be empty is nil.
func SplitForPath(p Path, at, gapWidth float64) (Path, Path) {
	total := p.Length()
	half := math.Max(0, gapWidth) / 2
	before := p.SubPath(0, at-half)
	after := p.SubPath(at+half, total)
	return before, after
}

// Area returns the signed shoelace area of a closed loop; counter-clockwise is positive
func (p Path) Area() float64 {
	area := 0.0
	for i := 1; i < len(p); i++ {
		area += p[i-1].Cross(p[i])
	}
	return area / 2
}
