package generation

import (
	"fmt"
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseField is a seeded, smooth 2D scalar field in roughly [-1, 1].
// Seed rebuilds all internal state; Noise2 never mutates it.
type NoiseField interface {
	Seed(value float64)
	Noise2(x, y float64) float64
}

// Noise backends selectable from configuration
const (
	NoiseClassic = "classic"
	NoisePerlin  = "perlin"
	NoiseSimplex = "simplex"
)

// NewNoiseField returns an unseeded field for the named backend
func NewNoiseField(backend string) (NoiseField, error) {
	switch backend {
	case "", NoiseClassic:
		return NewPermutationNoise(), nil
	case NoisePerlin:
		return &perlinNoise{}, nil
	case NoiseSimplex:
		return &simplexNoise{}, nil
	}
	return nil, fmt.Errorf("unknown noise backend %q", backend)
}

// seedInt converts a [0, 1) seed value into the integer seed the tables are keyed on
func seedInt(value float64) int32 {
	return int32(value * 65536)
}

// ---- Classic permutation noise ----

var basePermutation = [256]int32{
	151, 160, 137, 91, 90, 15,
	131, 13, 201, 95, 96, 53, 194, 233, 7, 225, 140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23,
	190, 6, 148, 247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32, 57, 177, 33,
	88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175, 74, 165, 71, 134, 139, 48, 27, 166,
	77, 146, 158, 231, 83, 111, 229, 122, 60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244,
	102, 143, 54, 65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169, 200, 196,
	135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64, 52, 217, 226, 250, 124, 123,
	5, 202, 38, 147, 118, 126, 255, 82, 85, 212, 207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42,
	223, 183, 170, 213, 119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104, 218, 246, 97, 228,
	251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241, 81, 51, 145, 235, 249, 14, 239, 107,
	49, 192, 214, 31, 181, 199, 106, 157, 184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254,
	138, 236, 205, 93, 222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// gradients are the 12 edge directions of a cube; only x and y are used in 2D
var gradients = [12]Vec2{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

// PermutationNoise is 2D gradient noise over a seeded permutation table
type PermutationNoise struct {
	perm  [512]int
	gradP [512]Vec2
}

// NewPermutationNoise returns a field seeded with 0
func NewPermutationNoise() *PermutationNoise {
	n := &PermutationNoise{}
	n.Seed(0)
	return n
}

// Seed rebuilds the permutation and gradient tables
func (n *PermutationNoise) Seed(value float64) {
	seed := seedInt(value)
	if seed < 256 {
		seed |= seed << 8
	}

	for i := 0; i < 256; i++ {
		var v int32
		if i&1 == 1 {
			v = basePermutation[i] ^ (seed & 255)
		} else {
			v = basePermutation[i] ^ ((seed >> 8) & 255)
		}

		n.perm[i] = int(v)
		n.perm[i+256] = int(v)
		n.gradP[i] = gradients[v%12]
		n.gradP[i+256] = gradients[v%12]
	}
}

// Noise2 samples the field at (x, y)
func (n *PermutationNoise) Noise2(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	x -= fx
	y -= fy

	ix := int(fx) & 0xff
	iy := int(fy) & 0xff

	n00 := n.gradP[ix+n.perm[iy]].Dot(Vec2{x, y})
	n01 := n.gradP[ix+n.perm[iy+1]].Dot(Vec2{x, y - 1})
	n10 := n.gradP[ix+1+n.perm[iy]].Dot(Vec2{x - 1, y})
	n11 := n.gradP[ix+1+n.perm[iy+1]].Dot(Vec2{x - 1, y - 1})

	u := fade(x)
	return lerp(lerp(n00, n10, u), lerp(n01, n11, u), fade(y))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// ---- Library backends ----

// perlinNoise wraps go-perlin with a single octave
type perlinNoise struct {
	gen *perlin.Perlin
}

func (n *perlinNoise) Seed(value float64) {
	n.gen = perlin.NewPerlin(2, 2, 1, int64(seedInt(value)))
}

func (n *perlinNoise) Noise2(x, y float64) float64 {
	if n.gen == nil {
		n.Seed(0)
	}
	return n.gen.Noise2D(x, y)
}

// simplexNoise wraps OpenSimplex
type simplexNoise struct {
	gen opensimplex.Noise
}

func (n *simplexNoise) Seed(value float64) {
	n.gen = opensimplex.New(int64(seedInt(value)))
}

func (n *simplexNoise) Noise2(x, y float64) float64 {
	if n.gen == nil {
		n.Seed(0)
	}
	return n.gen.Eval2(x, y)
}
