package generation

import "math"

// Vec2 is a point or direction in world space
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FromAngle returns the unit vector pointing at angle radians
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Len2() float64 { return v.Dot(v) }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between two points
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Angle returns the heading of v in (-pi, pi]
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Perp returns v rotated a quarter turn counter-clockwise
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Normalize returns the unit vector of v, or the zero vector
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Mul(1 / l)
}

// Lerp interpolates from v to o
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{lerp(v.X, o.X, t), lerp(v.Y, o.Y, t)}
}

// ---- Angles ----

// AngleBetween returns the shortest signed rotation from one heading to another, in (-pi, pi]
func AngleBetween(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// RoundToInterval snaps angle to the nearest multiple of interval. A non-positive interval leaves it unchanged.
func RoundToInterval(angle, interval float64) float64 {
	if interval <= 0 {
		return angle
	}
	return math.Round(angle/interval) * interval
}

// NormalizeAngle maps an angle into [0, 2pi)
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// pointOnSegment returns the closest point to p on segment ab and the fraction along it
func pointOnSegment(p, a, b Vec2) (Vec2, float64) {
	ab := b.Sub(a)
	l2 := ab.Len2()
	if l2 == 0 {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t)), t
}

const geomEpsilon = 1e-9

// segmentIntersection reports a proper crossing between segments ab and cd:
// both fractions strictly inside (0, 1). Touching endpoints and collinear overlap are not crossings.
func segmentIntersection(a, b, c, d Vec2) (Vec2, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r.Cross(s)
	if math.Abs(denom) < geomEpsilon*r.Len()*s.Len() || denom == 0 {
		return Vec2{}, false
	}
	ca := c.Sub(a)
	t := ca.Cross(s) / denom
	u := ca.Cross(r) / denom
	if t <= geomEpsilon || t >= 1-geomEpsilon || u <= geomEpsilon || u >= 1-geomEpsilon {
		return Vec2{}, false
	}
	return a.Add(r.Mul(t)), true
}

// segmentHit intersects segments ab and cd with their endpoints included and
// returns the hit with its fractions along ab and cd. Parallel segments never hit.
func segmentHit(a, b, c, d Vec2) (Vec2, float64, float64, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r.Cross(s)
	if math.Abs(denom) < geomEpsilon*r.Len()*s.Len() || denom == 0 {
		return Vec2{}, 0, 0, false
	}
	ca := c.Sub(a)
	t := ca.Cross(s) / denom
	u := ca.Cross(r) / denom
	if t < -geomEpsilon || t > 1+geomEpsilon || u < -geomEpsilon || u > 1+geomEpsilon {
		return Vec2{}, 0, 0, false
	}
	t = math.Max(0, math.Min(1, t))
	u = math.Max(0, math.Min(1, u))
	return a.Add(r.Mul(t)), t, u, true
}

// rayLineIntersection intersects the ray origin + t*dir (t > 0) with the infinite line through p along q.
// It returns the hit point and t.
func rayLineIntersection(origin, dir, p, q Vec2) (Vec2, float64, bool) {
	denom := dir.Cross(q)
	if math.Abs(denom) < geomEpsilon*dir.Len()*q.Len() || denom == 0 {
		return Vec2{}, 0, false
	}
	t := p.Sub(origin).Cross(q) / denom
	if t <= geomEpsilon {
		return Vec2{}, 0, false
	}
	return origin.Add(dir.Mul(t)), t, true
}
