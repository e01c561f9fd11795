package types

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Mat4 is a 4x4 matrix stored in column-major order, the layout expected by
// glUniformMatrix4fv with transpose set to false.
type Mat4 f32.Mat4

// Ident4 returns the 4x4 identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection matrix.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rml, tmb, fmn := right-left, top-bottom, far-near
	return Mat4{
		2 / rml, 0, 0, 0,
		0, 2 / tmb, 0, 0,
		0, 0, -2 / fmn, 0,
		-(right + left) / rml, -(top + bottom) / tmb, -(far + near) / fmn, 1,
	}
}

// Perspective returns a perspective projection matrix. The field of view is
// specified in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovY)/2.0))
	nmf := near - far
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / nmf, -1,
		0, 0, 2 * far * near / nmf, 0,
	}
}

// Translate4 returns a translation matrix.
func Translate4(v Vec3) Mat4 {
	m := Ident4()
	m[12], m[13], m[14] = v[0], v[1], v[2]
	return m
}

// Scale4 returns a non-uniform scale matrix.
func Scale4(v Vec3) Mat4 {
	return Mat4{
		v[0], 0, 0, 0,
		0, v[1], 0, 0,
		0, 0, v[2], 0,
		0, 0, 0, 1,
	}
}

// LookAt returns a view matrix for a camera at eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s[0], u[0], -f[0], 0,
		s[1], u[1], -f[1], 0,
		s[2], u[2], -f[2], 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Mul4 returns m * m2.
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * m2[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Ptr returns a pointer to the first element for uploading as a uniform.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
