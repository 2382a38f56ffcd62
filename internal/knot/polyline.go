package knot

import "math"

// Vec3 is a world-space position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Lerp returns the point at t along v and o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t, v.Z + (o.Z-v.Z)*t}
}

// Options controls the grid-to-world mapping.
type Options struct {
	// Width and Height of the square the grid is mapped onto, centred on
	// the origin.
	Width  float64
	Height float64

	// Lift is the z offset of lifted (crossing) vertices.
	Lift float64

	// MaxEdge, if positive, subdivides every edge to at most this length.
	MaxEdge float64
}

// DefaultOptions maps the grid onto a unit square, lifts crossings by 0.1
// and subdivides edges to 0.05.
func DefaultOptions() Options {
	return Options{Width: 1, Height: 1, Lift: 0.1, MaxEdge: 0.05}
}

// Polylines returns one closed world-space polyline per strand. Row 0 is at
// the top; column 0 at the left. The first vertex is repeated at the end.
func (k *Knot) Polylines(opts Options) [][]Vec3 {
	n := float64(k.Size)
	if n == 0 {
		return nil
	}
	out := make([][]Vec3, 0, len(k.Strands))
	for _, s := range k.Strands {
		pts := make([]Vec3, 0, len(s.Vertices)+1)
		for _, v := range s.Vertices {
			p := Vec3{
				X: float64(v.Col)/n*opts.Width - 0.5*opts.Width,
				Y: opts.Height - float64(v.Row)/n*opts.Height - 0.5*opts.Height,
			}
			if v.Lifted {
				p.Z = opts.Lift
			}
			pts = append(pts, p)
		}
		if len(pts) > 0 {
			pts = append(pts, pts[0])
		}
		if opts.MaxEdge > 0 {
			pts = Refine(pts, opts.MaxEdge)
		}
		out = append(out, pts)
	}
	return out
}

// Refine subdivides each edge of an open point sequence so that no edge is
// longer than maxEdge. Original vertices are kept. maxEdge <= 0 returns a
// copy of pts.
func Refine(pts []Vec3, maxEdge float64) []Vec3 {
	if maxEdge <= 0 || len(pts) < 2 {
		return append([]Vec3(nil), pts...)
	}
	out := make([]Vec3, 0, len(pts))
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		out = append(out, a)
		parts := int(math.Ceil(b.Sub(a).Len() / maxEdge))
		for p := 1; p < parts; p++ {
			out = append(out, a.Lerp(b, float64(p)/float64(parts)))
		}
	}
	return append(out, pts[len(pts)-1])
}
