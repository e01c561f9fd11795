package types

import "math"

// Quat is a rotation quaternion.
type Quat struct {
	V Vec3
	W float32
}

// Create a quaternion from an axis vector and an angle in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	sin, cos := math.Sincos(float64(angle) * 0.5)
	return Quat{
		V: axis.Normalize().Mul(float32(sin)),
		W: float32(cos),
	}
}

// Mul composes two rotations; q2 is applied first.
func (q Quat) Mul(q2 Quat) Quat {
	return Quat{
		V: q.V.Cross(q2.V).Add(q2.V.Mul(q.W)).Add(q.V.Mul(q2.W)),
		W: q.W*q2.W - q.V.Dot(q2.V),
	}
}

// Mat4 returns the rotation matrix for a unit quaternion.
func (q Quat) Mat4() Mat4 {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.W
	return Mat4{
		1 - 2*y*y - 2*z*z, 2*x*y + 2*w*z, 2*x*z - 2*w*y, 0,
		2*x*y - 2*w*z, 1 - 2*x*x - 2*z*z, 2*y*z + 2*w*x, 0,
		2*x*z + 2*w*y, 2*y*z - 2*w*x, 1 - 2*x*x - 2*y*y, 0,
		0, 0, 0, 1,
	}
}
