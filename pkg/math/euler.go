package math

// Euler holds intrinsic XYZ rotation angles in radians: rotate about X
// (pitch), then the rotated Y (yaw), then the rotated Z (roll).
type Euler struct {
	Pitch, Yaw, Roll float32
}

// Quat composes the three axis rotations into a single quaternion.
func (e Euler) Quat() Quat {
	qx := QuatFromAxisAngle(Vec3{X: 1}, e.Pitch)
	qy := QuatFromAxisAngle(Vec3{Y: 1}, e.Yaw)
	qz := QuatFromAxisAngle(Vec3{Z: 1}, e.Roll)
	return qx.Mul(qy).Mul(qz)
}

// Mat4 returns the rotation matrix, equal to RotateX * RotateY * RotateZ.
func (e Euler) Mat4() Mat4 {
	return e.Quat().ToMat4()
}

// Apply rotates v by this Euler rotation.
func (e Euler) Apply(v Vec3) Vec3 {
	return e.Mat4().TransformVec3(v)
}

// IsZero reports whether all three angles are exactly zero.
func (e Euler) IsZero() bool {
	return e.Pitch == 0 && e.Yaw == 0 && e.Roll == 0
}
