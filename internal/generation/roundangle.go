package generation

import (
	"fmt"
	"math"
)

// RoundToAngle rewrites a path so its edges run along multiples of interval.
// Each vertex moves to where a ray from the previously placed vertex, heading
// along the rounded incoming direction, meets the line of the following edge.
// Of the two roundings (down and up) the hit closest to the original vertex
// wins; if neither meets the line the roundings are widened by one interval,
// and if that fails too the path is rejected with ErrRoundingFailed.
//
// Open paths keep their first point and project their last one onto the final
// rounded ray. Closed loops stay closed: the closing vertex replaces both ends.
func RoundToAngle(p Path, interval float64) (Path, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if interval <= 0 {
		out := make(Path, len(p))
		copy(out, p)
		return out, nil
	}

	closed := p.Closed()
	n := len(p)
	out := Path{p[0]}
	for i := 1; i < n-1; i++ {
		q, keep, err := roundVertex(out[len(out)-1], p[i], p[i+1], interval)
		if err != nil {
			return nil, fmt.Errorf("rounding vertex %d: %w", i, err)
		}
		if keep && !samePoint(q, out[len(out)-1]) {
			out = append(out, q)
		}
	}

	if closed {
		if len(out) < 3 {
			return nil, fmt.Errorf("loop collapsed while rounding: %w", ErrDegenerateGeometry)
		}
		q, keep, err := roundVertex(out[len(out)-1], p[n-1], out[1], interval)
		if err != nil {
			return nil, fmt.Errorf("rounding closing vertex: %w", err)
		}
		if !keep {
			q = out[0]
		}
		out[0] = q
		out = append(out, q)
		return out.Compact(), nil
	}

	out = append(out, projectRounded(out[len(out)-1], p[n-1], interval))
	return out.Compact(), nil
}

// roundVertex places the vertex cur. keep is false when cur is redundant
// because prev, cur and next are collinear.
func roundVertex(prev, cur, next Vec2, interval float64) (Vec2, bool, error) {
	following := next.Sub(cur)
	if following.Len() <= pointTolerance {
		return Vec2{}, false, fmt.Errorf("zero-length edge: %w", ErrDegenerateGeometry)
	}
	incoming := cur.Sub(prev)
	if incoming.Len() <= pointTolerance {
		return Vec2{}, false, nil
	}
	if math.Abs(incoming.Normalize().Cross(following.Normalize())) < geomEpsilon {
		return Vec2{}, false, nil
	}

	angle := incoming.Angle()
	lo := math.Floor(angle/interval) * interval
	hi := math.Ceil(angle/interval) * interval

	for _, candidates := range [][2]float64{{lo, hi}, {lo - interval, hi + interval}} {
		best := Vec2{}
		bestDist := math.Inf(1)
		for _, heading := range candidates {
			hit, _, ok := rayLineIntersection(prev, FromAngle(heading), cur, following)
			if !ok {
				continue
			}
			if d := hit.Dist(cur); d < bestDist {
				best, bestDist = hit, d
			}
		}
		if !math.IsInf(bestDist, 1) {
			return best, true, nil
		}
	}
	return Vec2{}, false, ErrRoundingFailed
}

// projectRounded projects last onto the rounded ray from prev that passes closest to it
func projectRounded(prev, last Vec2, interval float64) Vec2 {
	d := last.Sub(prev)
	if d.Len() <= pointTolerance {
		return last
	}
	angle := d.Angle()
	best := last
	bestDist := math.Inf(1)
	for _, heading := range []float64{math.Floor(angle/interval) * interval, math.Ceil(angle/interval) * interval} {
		dir := FromAngle(heading)
		proj := prev.Add(dir.Mul(math.Max(0, d.Dot(dir))))
		if dist := proj.Dist(last); dist < bestDist {
			best, bestDist = proj, dist
		}
	}
	return best
}
