package generation

import (
	"fmt"
	"math"
	"sort"

	"github.com/tidwall/rtree"
)

// minCrossingSin caps how far a glancing road stretches its opening
const minCrossingSin = 0.25

// Opening is a gap cut into a wall where a road passes through it
type Opening struct {
	Wall     string  `json:"wall"`
	Divider  int     `json:"divider"`
	Position Vec2    `json:"position"`
	Width    float64 `json:"width"`
	Road     int     `json:"road"`
}

// wallGap is a span of a wall's arc length to remove
type wallGap struct {
	lo, hi float64
}

// roadCrossing is a point where a road segment meets a wall
type roadCrossing struct {
	at    float64
	point Vec2
	width float64
	road  int
}

type roadSegment struct {
	node, i int
}

// roadIndex finds road segments near a wall. Every segment of every node is
// indexed by its bounding box.
type roadIndex struct {
	network *RoadNetwork
	tr      rtree.RTreeG[roadSegment]
}

func newRoadIndex(rn *RoadNetwork) *roadIndex {
	ri := &roadIndex{network: rn}
	for n, node := range rn.Nodes {
		for i := 1; i < len(node.Points); i++ {
			lo, hi := edgeBox(node.Points[i-1], node.Points[i])
			ri.tr.Insert(lo, hi, roadSegment{node: n, i: i - 1})
		}
	}
	return ri
}

// crossings returns every place a road meets the wall, ordered by arc length
// along the wall. The width is the road's width at the crossing stretched by
// the crossing angle, so glancing roads get wider openings.
func (ri *roadIndex) crossings(wall Path) []roadCrossing {
	var out []roadCrossing
	acc := 0.0
	for j := 1; j < len(wall); j++ {
		c, d := wall[j-1], wall[j]
		seg := c.Dist(d)
		lo, hi := edgeBox(c, d)
		ri.tr.Search(lo, hi, func(_, _ [2]float64, s roadSegment) bool {
			node := &ri.network.Nodes[s.node]
			a, b := node.Points[s.i], node.Points[s.i+1]
			x, t, u, ok := segmentHit(a, b, c, d)
			if !ok {
				return true
			}
			width := node.Thickness[s.i] + (node.Thickness[s.i+1]-node.Thickness[s.i])*t
			sin := math.Abs(b.Sub(a).Normalize().Cross(d.Sub(c).Normalize()))
			out = append(out, roadCrossing{
				at:    acc + u*seg,
				point: x,
				width: width / math.Max(sin, minCrossingSin),
				road:  s.node,
			})
			return true
		})
		acc += seg
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].at != out[j].at {
			return out[i].at < out[j].at
		}
		return out[i].road < out[j].road
	})
	return out
}

// mergeGaps clips gaps to [0, total] and joins the ones that overlap
func mergeGaps(gaps []wallGap, total float64) []wallGap {
	var clipped []wallGap
	for _, g := range gaps {
		lo, hi := math.Max(0, g.lo), math.Min(total, g.hi)
		if hi > lo {
			clipped = append(clipped, wallGap{lo, hi})
		}
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i].lo < clipped[j].lo })

	var merged []wallGap
	for _, g := range clipped {
		if n := len(merged); n > 0 && g.lo <= merged[n-1].hi {
			merged[n-1].hi = math.Max(merged[n-1].hi, g.hi)
			continue
		}
		merged = append(merged, g)
	}
	return merged
}

// carveWall cuts gaps out of an open wall and returns the pieces left
// standing, in order along the wall. Gaps are worked from the far end so the
// arc lengths of the ones still to cut never move.
func carveWall(wall Path, gaps []wallGap) []Path {
	merged := mergeGaps(gaps, wall.Length())

	var pieces []Path
	rest := wall
	for k := len(merged) - 1; k >= 0 && rest != nil; k-- {
		g := merged[k]
		before, after := SplitForPath(rest, (g.lo+g.hi)/2, g.hi-g.lo)
		if after != nil {
			pieces = append(pieces, after)
		}
		rest = before
	}
	if rest != nil {
		pieces = append(pieces, rest)
	}

	for i, j := 0, len(pieces)-1; i < j; i, j = i+1, j-1 {
		pieces[i], pieces[j] = pieces[j], pieces[i]
	}
	return pieces
}

// carveLoop cuts gaps out of a closed wall. The loop is reopened at the middle
// of the first gap so no piece runs across the old seam, and every gap is
// wrapped onto the reopened loop. A loop without gaps stays whole.
func carveLoop(loop Path, gaps []wallGap) ([]Path, error) {
	if len(gaps) == 0 {
		return []Path{loop}, nil
	}
	total := loop.Length()
	seam := (gaps[0].lo + gaps[0].hi) / 2
	opened, err := reopenLoop(loop, seam)
	if err != nil {
		return nil, err
	}

	var wrapped []wallGap
	for _, g := range gaps {
		half := (g.hi - g.lo) / 2
		c := math.Mod((g.lo+g.hi)/2-seam, total)
		if c < 0 {
			c += total
		}
		for _, shift := range []float64{-total, 0, total} {
			wrapped = append(wrapped, wallGap{c - half + shift, c + half + shift})
		}
	}
	return carveWall(opened, wrapped), nil
}

// reopenLoop returns the same closed loop starting and ending at arc length at
func reopenLoop(loop Path, at float64) (Path, error) {
	total := loop.Length()
	if at <= pointTolerance || at >= total-pointTolerance {
		out := make(Path, len(loop))
		copy(out, loop)
		return out, nil
	}
	opened, err := JoinWall(loop.SubPath(at, total), loop.SubPath(0, at))
	if err != nil {
		return nil, fmt.Errorf("reopening loop at %.1f: %w", at, err)
	}
	return opened, nil
}

// openingsFor finds the road crossings on a wall and turns them into gaps
// clearance wider than the road
func openingsFor(ri *roadIndex, wall Path, kind string, divider int, clearance float64) ([]wallGap, []Opening) {
	var gaps []wallGap
	var openings []Opening
	for _, c := range ri.crossings(wall) {
		width := c.width + clearance
		gaps = append(gaps, wallGap{c.at - width/2, c.at + width/2})
		openings = append(openings, Opening{
			Wall:     kind,
			Divider:  divider,
			Position: c.point,
			Width:    width,
			Road:     c.road,
		})
	}
	return gaps, openings
}
