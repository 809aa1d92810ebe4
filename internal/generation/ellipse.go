package generation

import "math"

// Boundary is the axis-aligned safe-zone ellipse centred on the origin
type Boundary struct {
	RadiusX float64 `json:"radius_x"`
	RadiusY float64 `json:"radius_y"`
}

// PointAt returns the boundary point at elliptic parameter angle t
func (b Boundary) PointAt(t float64) Vec2 {
	return Vec2{math.Cos(t) * b.RadiusX, math.Sin(t) * b.RadiusY}
}

// Contains reports whether p lies inside or on the ellipse
func (b Boundary) Contains(p Vec2) bool {
	return b.radialFactor(p) <= 1
}

// radialFactor is 1 on the ellipse, below 1 inside and above 1 outside
func (b Boundary) radialFactor(p Vec2) float64 {
	dx := p.X / b.RadiusX
	dy := p.Y / b.RadiusY
	return math.Sqrt(dx*dx + dy*dy)
}

// parameter returns the elliptic parameter angle of p
func (b Boundary) parameter(p Vec2) float64 {
	return math.Atan2(p.Y/b.RadiusY, p.X/b.RadiusX)
}

// Normal returns the outward unit normal at boundary point p
func (b Boundary) Normal(p Vec2) Vec2 {
	n := Vec2{p.X / (b.RadiusX * b.RadiusX), p.Y / (b.RadiusY * b.RadiusY)}.Normalize()
	if n == (Vec2{}) {
		return Vec2{1, 0}
	}
	return n
}

// Nearest approximates the closest boundary point to p with three fixed-point
// iterations on the ellipse evolute, and returns it with its distance to p.
func (b Boundary) Nearest(p Vec2) (Vec2, float64) {
	px := math.Abs(p.X)
	py := math.Abs(p.Y)
	a, c := b.RadiusX, b.RadiusY

	tx, ty := 0.707, 0.707
	for i := 0; i < 3; i++ {
		x := a * tx
		y := c * ty

		ex := (a*a - c*c) * tx * tx * tx / a
		ey := (c*c - a*a) * ty * ty * ty / c

		rx, ry := x-ex, y-ey
		qx, qy := px-ex, py-ey

		r := math.Hypot(rx, ry)
		q := math.Hypot(qx, qy)
		if q == 0 {
			break
		}

		tx = math.Min(1, math.Max(0, (qx*r/q+ex)/a))
		ty = math.Min(1, math.Max(0, (qy*r/q+ey)/c))
		t := math.Hypot(tx, ty)
		tx /= t
		ty /= t
	}

	nearest := Vec2{
		math.Copysign(a*tx, p.X),
		math.Copysign(c*ty, p.Y),
	}
	return nearest, nearest.Dist(p)
}

// Arc returns a path from one point to another that follows the ellipse,
// travelling counter-clockwise when ccw is set. The radial factor is
// interpolated so both endpoints are reproduced exactly.
func (b Boundary) Arc(from, to Vec2, ccw bool) (Path, error) {
	if samePoint(from, to) {
		return nil, ErrDegenerateGeometry
	}
	t0 := b.parameter(from)
	t1 := b.parameter(to)
	k0 := b.radialFactor(from)
	k1 := b.radialFactor(to)

	sweep := NormalizeAngle(t1 - t0)
	if !ccw {
		sweep -= 2 * math.Pi
	}

	approx := math.Abs(sweep) * (b.RadiusX + b.RadiusY) / 2 * (k0 + k1) / 2
	segments := segmentCount(approx)

	out := make(Path, 0, segments+1)
	out = append(out, from)
	for i := 1; i < segments; i++ {
		f := float64(i) / float64(segments)
		t := t0 + sweep*f
		k := lerp(k0, k1, f)
		out = append(out, Vec2{math.Cos(t) * b.RadiusX * k, math.Sin(t) * b.RadiusY * k})
	}
	out = append(out, to)
	return out.Compact(), nil
}

// Perimeter approximates the circumference of the ellipse (Ramanujan)
func (b Boundary) Perimeter() float64 {
	a, c := b.RadiusX, b.RadiusY
	return math.Pi * (3*(a+c) - math.Sqrt((3*a+c)*(a+3*c)))
}
