package kinetic

import "math"

// Mat4 is a 4x4 matrix in column-major order.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed projection. fovY is in radians and
// aspect is width/height.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// LookAt returns a view matrix looking from eye toward center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// RotateZ returns a rotation about the Z axis by angle radians.
func RotateZ(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			r[col*4+row] = m[row]*o[col*4] +
				m[4+row]*o[col*4+1] +
				m[8+row]*o[col*4+2] +
				m[12+row]*o[col*4+3]
		}
	}
	return r
}

// TransformPoint transforms p with w=1, without the perspective divide.
func (m Mat4) TransformPoint(p Vec3) (Vec3, float64) {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}, m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
}

// PerspectiveCamera mirrors the state a 3D renderer keeps for a camera.
type PerspectiveCamera struct {
	FovDeg    float64
	Aspect    float64
	Near, Far float64
	Position  Vec3
	Target    Vec3

	view, proj Mat4
}

// Update recomputes the view and projection from the camera fields.
func (c *PerspectiveCamera) Update() {
	aspect := c.Aspect
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	c.proj = Perspective(c.FovDeg*math.Pi/180, aspect, c.Near, c.Far)
	c.view = LookAt(c.Position, c.Target, Vec3{0, 1, 0})
}

// View returns the last computed view matrix.
func (c *PerspectiveCamera) View() Mat4 {
	return c.view
}

// ToView moves a world point into camera space. Visible points have negative Z.
func (c *PerspectiveCamera) ToView(p Vec3) Vec3 {
	v, _ := c.view.TransformPoint(p)
	return v
}

// ProjectView maps a camera-space point onto a width x height surface with
// the origin at the top-left. ok is false for points not in front of the
// near plane.
func (c *PerspectiveCamera) ProjectView(v Vec3, width, height float64) (x, y float64, ok bool) {
	if -v.Z < c.Near-1e-9 {
		return 0, 0, false
	}
	clip, w := c.proj.TransformPoint(v)
	if w == 0 {
		return 0, 0, false
	}
	nx, ny := clip.X/w, clip.Y/w
	return (nx + 1) / 2 * width, (1 - ny) / 2 * height, true
}

// clipNear shortens the camera-space segment a-b so both ends lie in front
// of the near plane. ok is false when the whole segment is behind it.
func clipNear(a, b Vec3, near float64) (Vec3, Vec3, bool) {
	da, db := -a.Z-near, -b.Z-near
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da >= 0 && db >= 0:
		return a, b, true
	}
	t := da / (da - db)
	p := a.Add(b.Sub(a).Scale(t))
	if da < 0 {
		return p, b, true
	}
	return a, p, true
}

// FogExp2 returns the visibility (1 = clear, 0 = fully fogged) of a point
// at distance d for squared-exponential fog of the given density.
func FogExp2(density, d float64) float64 {
	x := density * d
	return math.Exp(-x * x)
}
