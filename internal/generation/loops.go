package generation

import (
	"math"

	"github.com/tidwall/rtree"
)

// RemoveLoops walks the path edge by edge and cuts out every loop it closes.
// When the next edge properly crosses an earlier, non-adjacent edge, all
// accepted edges from the crossed one onward are dropped and the crossing
// point takes their place. Accepted edges are indexed in an R-tree so each
// edge is only tested against the edges whose boxes it overlaps.
//
// Touching endpoints and collinear overlaps are not crossings, so the closing
// edge of a loop is allowed to meet the first point. The result has no proper
// crossings, which makes a second call a no-op.
func RemoveLoops(p Path) Path {
	if len(p) < 4 {
		out := make(Path, len(p))
		copy(out, p)
		return out
	}

	var tr rtree.RTreeG[int]
	var boxes [][2][2]float64

	out := make(Path, 0, len(p))
	out = append(out, p[0])

	accept := func(j int) {
		lo, hi := edgeBox(out[j], out[j+1])
		tr.Insert(lo, hi, j)
		boxes = append(boxes[:j], [2][2]float64{lo, hi})
	}

	for k := 1; k < len(p); k++ {
		a := out[len(out)-1]
		b := p[k]
		adjacent := len(out) - 2

		hitEdge := -1
		var hitPoint Vec2
		lo, hi := edgeBox(a, b)
		tr.Search(lo, hi, func(_, _ [2]float64, j int) bool {
			if j >= adjacent || (hitEdge >= 0 && j > hitEdge) {
				return true
			}
			if x, ok := segmentIntersection(out[j], out[j+1], a, b); ok {
				hitEdge, hitPoint = j, x
			}
			return true
		})

		if hitEdge >= 0 {
			for j := hitEdge; j <= adjacent; j++ {
				tr.Delete(boxes[j][0], boxes[j][1], j)
			}
			boxes = boxes[:hitEdge]
			out = append(out[:hitEdge+1], hitPoint)
			accept(hitEdge)
		}

		out = append(out, b)
		accept(len(out) - 2)
	}
	return out.Compact()
}

func edgeBox(a, b Vec2) ([2]float64, [2]float64) {
	return [2]float64{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		[2]float64{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}
