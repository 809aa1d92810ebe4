package generation

import (
	"fmt"
	"math"
)

// Offset is a centreline expanded into its two sides
type Offset struct {
	Left      Path
	Right     Path
	Thickness []float64
}

// Thickener expands wall centrelines into their two sides
type Thickener struct {
	src          *Source
	minThickness float64
}

// NewThickener creates a thickener that never goes below minThickness
func NewThickener(src *Source, minThickness float64) *Thickener {
	return &Thickener{src: src, minThickness: minThickness}
}

// Thicken offsets every vertex along its normal by a half-width that ramps
// linearly from start to end and is modulated by two low-frequency noise
// samples. Interior normals bisect the turn; endpoint normals are square to
// their edge. Left is the counter-clockwise side of the direction of travel.
func (t *Thickener) Thicken(p Path, start, end float64) (Offset, error) {
	if err := p.Validate(); err != nil {
		return Offset{}, fmt.Errorf("thicken: %w", err)
	}

	n := len(p)
	off := Offset{
		Left:      make(Path, 0, n),
		Right:     make(Path, 0, n),
		Thickness: make([]float64, 0, n),
	}
	for i, v := range p {
		var heading float64
		switch i {
		case 0:
			heading = p[1].Sub(v).Angle()
		case n - 1:
			heading = v.Sub(p[i-1]).Angle()
		default:
			in := v.Sub(p[i-1]).Angle()
			heading = in + AngleBetween(in, p[i+1].Sub(v).Angle())/2
		}
		normal := FromAngle(heading + math.Pi/2)

		p1 := (t.src.NoiseAt(v, 3452, 3452, 10) + 1) / 2
		p2 := (t.src.NoiseAt(v, 87362, 87362, 10) + 1) / 2
		mod := p1*p2*8 - 0.5

		width := lerp(start, end, float64(i)/float64(n-1)) * mod
		width = math.Max(width, t.minThickness)

		off.Left = append(off.Left, v.Add(normal.Mul(width)))
		off.Right = append(off.Right, v.Sub(normal.Mul(width)))
		off.Thickness = append(off.Thickness, width)
	}
	off.Left = off.Left.Compact()
	off.Right = off.Right.Compact()
	return off, nil
}
