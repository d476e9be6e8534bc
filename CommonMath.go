package playrho

import (
	"math"
)

func IsValidFloat(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

/// A 2D column vector.
type Vec2 struct {
	X, Y float64
}

func MakeVec2(xIn, yIn float64) Vec2 {
	return Vec2{
		X: xIn,
		Y: yIn,
	}
}

func NewVec2(xIn, yIn float64) *Vec2 {
	res := MakeVec2(xIn, yIn)
	return &res
}

var Vec2_zero = MakeVec2(0, 0)

/// Set this vector to all zeros.
func (v *Vec2) SetZero() {
	v.X = 0.0
	v.Y = 0.0
}

/// Set this vector to some specified coordinates.
func (v *Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

/// Negate this vector.
func (v Vec2) OperatorNegate() Vec2 {
	return MakeVec2(-v.X, -v.Y)
}

/// Read from an indexed element.
func (v Vec2) OperatorIndexGet(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}

/// Write to an indexed element.
func (v *Vec2) OperatorIndexSet(i int, value float64) {
	if i == 0 {
		v.X = value
		return
	}
	v.Y = value
}

/// Add a vector to this vector.
func (v *Vec2) OperatorPlusInplace(other Vec2) {
	v.X += other.X
	v.Y += other.Y
}

/// Subtract a vector from this vector.
func (v *Vec2) OperatorMinusInplace(other Vec2) {
	v.X -= other.X
	v.Y -= other.Y
}

/// Multiply this vector by a scalar.
func (v *Vec2) OperatorScalarMulInplace(a float64) {
	v.X *= a
	v.Y *= a
}

/// Get the length of this vector (the norm).
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

/// Get the length squared. For performance, use this instead of
/// Length (if possible).
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

/// Convert this vector into a unit vector. Returns the length.
func (v *Vec2) Normalize() float64 {
	length := v.Length()
	if length < epsilon {
		return 0.0
	}

	invLength := 1.0 / length
	v.X *= invLength
	v.Y *= invLength

	return length
}

/// Does this vector contain finite coordinates?
func (v Vec2) IsValid() bool {
	return IsValidFloat(v.X) && IsValidFloat(v.Y)
}

/// Get the skew vector such that dot(skew_vec, other) == cross(vec, other).
func (v Vec2) Skew() Vec2 {
	return MakeVec2(-v.Y, v.X)
}

func (v Vec2) Clone() Vec2 {
	return MakeVec2(v.X, v.Y)
}

/// A 2D column vector with 3 elements.
type Vec3 struct {
	X, Y, Z float64
}

func MakeVec3(xIn, yIn, zIn float64) Vec3 {
	return Vec3{
		X: xIn,
		Y: yIn,
		Z: zIn,
	}
}

func (v *Vec3) SetZero() {
	v.X = 0.0
	v.Y = 0.0
	v.Z = 0.0
}

func (v *Vec3) Set(x, y, z float64) {
	v.X = x
	v.Y = y
	v.Z = z
}

func (v Vec3) OperatorNegate() Vec3 {
	return MakeVec3(-v.X, -v.Y, -v.Z)
}

func (v *Vec3) OperatorPlusInplace(other Vec3) {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
}

func (v *Vec3) OperatorMinusInplace(other Vec3) {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
}

func (v *Vec3) OperatorScalarMulInplace(a float64) {
	v.X *= a
	v.Y *= a
	v.Z *= a
}

/// A 2-by-2 matrix. Stored in column-major order.
type Mat22 struct {
	Ex, Ey Vec2
}

func MakeMat22() Mat22 {
	return Mat22{}
}

/// Construct this matrix using columns.
func MakeMat22FromColumns(c1, c2 Vec2) Mat22 {
	return Mat22{
		Ex: c1,
		Ey: c2,
	}
}

/// Construct this matrix using scalars.
func MakeMat22FromScalars(a11, a12, a21, a22 float64) Mat22 {
	return Mat22{
		Ex: MakeVec2(a11, a21),
		Ey: MakeVec2(a12, a22),
	}
}

/// Initialize this matrix using columns.
func (m *Mat22) Set(c1, c2 Vec2) {
	m.Ex = c1
	m.Ey = c2
}

/// Set this to the identity matrix.
func (m *Mat22) SetIdentity() {
	m.Ex.X = 1.0
	m.Ey.X = 0.0
	m.Ex.Y = 0.0
	m.Ey.Y = 1.0
}

/// Set this matrix to all zeros.
func (m *Mat22) SetZero() {
	m.Ex.X = 0.0
	m.Ey.X = 0.0
	m.Ex.Y = 0.0
	m.Ey.Y = 0.0
}

func (m Mat22) GetInverse() Mat22 {
	a := m.Ex.X
	b := m.Ey.X
	c := m.Ex.Y
	d := m.Ey.Y

	det := a*d - b*c
	if det != 0.0 {
		det = 1.0 / det
	}

	var B Mat22
	B.Ex.X = det * d
	B.Ey.X = -det * b
	B.Ex.Y = -det * c
	B.Ey.Y = det * a

	return B
}

/// Solve A * x = b, where b is a column vector. This is more efficient
/// than computing the inverse in one-shot cases.
func (m Mat22) Solve(b Vec2) Vec2 {
	a11 := m.Ex.X
	a12 := m.Ey.X
	a21 := m.Ex.Y
	a22 := m.Ey.Y

	det := a11*a22 - a12*a21
	if det != 0.0 {
		det = 1.0 / det
	}

	return MakeVec2(
		det*(a22*b.X-a12*b.Y),
		det*(a11*b.Y-a21*b.X),
	)
}

/// A 3-by-3 matrix. Stored in column-major order.
type Mat33 struct {
	Ex, Ey, Ez Vec3
}

func MakeMat33() Mat33 {
	return Mat33{}
}

func MakeMat33FromColumns(c1, c2, c3 Vec3) Mat33 {
	return Mat33{
		Ex: c1,
		Ey: c2,
		Ez: c3,
	}
}

/// Set this matrix to all zeros.
func (m *Mat33) SetZero() {
	m.Ex.SetZero()
	m.Ey.SetZero()
	m.Ez.SetZero()
}

/// Solve A * x = b, where b is a column vector. This is more efficient
/// than computing the inverse in one-shot cases.
func (m Mat33) Solve33(b Vec3) Vec3 {
	det := Vec3Dot(m.Ex, Vec3Cross(m.Ey, m.Ez))
	if det != 0.0 {
		det = 1.0 / det
	}

	return MakeVec3(
		det*Vec3Dot(b, Vec3Cross(m.Ey, m.Ez)),
		det*Vec3Dot(m.Ex, Vec3Cross(b, m.Ez)),
		det*Vec3Dot(m.Ex, Vec3Cross(m.Ey, b)),
	)
}

/// Solve A * x = b, where b is a column vector. This is more efficient
/// than computing the inverse in one-shot cases. Solve only the upper
/// 2-by-2 matrix equation.
func (m Mat33) Solve22(b Vec2) Vec2 {
	a11 := m.Ex.X
	a12 := m.Ey.X
	a21 := m.Ex.Y
	a22 := m.Ey.Y

	det := a11*a22 - a12*a21
	if det != 0.0 {
		det = 1.0 / det
	}

	return MakeVec2(
		det*(a22*b.X-a12*b.Y),
		det*(a11*b.Y-a21*b.X),
	)
}

/// Get the inverse of this matrix as a 2-by-2.
/// Returns the zero matrix if singular.
func (m Mat33) GetInverse22(dst *Mat33) {
	a := m.Ex.X
	b := m.Ey.X
	c := m.Ex.Y
	d := m.Ey.Y

	det := a*d - b*c
	if det != 0.0 {
		det = 1.0 / det
	}

	dst.Ex.X = det * d
	dst.Ey.X = -det * b
	dst.Ex.Z = 0.0
	dst.Ex.Y = -det * c
	dst.Ey.Y = det * a
	dst.Ey.Z = 0.0
	dst.Ez.X = 0.0
	dst.Ez.Y = 0.0
	dst.Ez.Z = 0.0
}

/// Get the symmetric inverse of this matrix as a 3-by-3.
/// Returns the zero matrix if singular.
func (m Mat33) GetSymInverse33(dst *Mat33) {
	det := Vec3Dot(m.Ex, Vec3Cross(m.Ey, m.Ez))
	if det != 0.0 {
		det = 1.0 / det
	}

	a11 := m.Ex.X
	a12 := m.Ey.X
	a13 := m.Ez.X
	a22 := m.Ey.Y
	a23 := m.Ez.Y
	a33 := m.Ez.Z

	dst.Ex.X = det * (a22*a33 - a23*a23)
	dst.Ex.Y = det * (a13*a23 - a12*a33)
	dst.Ex.Z = det * (a12*a23 - a13*a22)

	dst.Ey.X = dst.Ex.Y
	dst.Ey.Y = det * (a11*a33 - a13*a13)
	dst.Ey.Z = det * (a13*a12 - a11*a23)

	dst.Ez.X = dst.Ex.Z
	dst.Ez.Y = dst.Ey.Z
	dst.Ez.Z = det * (a11*a22 - a12*a12)
}

/// Rotation: stored as a sine/cosine pair.
type Rot struct {
	/// Sine and cosine
	S, C float64
}

func MakeRot() Rot {
	return Rot{
		S: 0.0,
		C: 1.0,
	}
}

/// Initialize from an angle in radians.
func MakeRotFromAngle(anglerad float64) Rot {
	return Rot{
		S: math.Sin(anglerad),
		C: math.Cos(anglerad),
	}
}

/// Set using an angle in radians.
func (r *Rot) Set(anglerad float64) {
	r.S = math.Sin(anglerad)
	r.C = math.Cos(anglerad)
}

/// Set to the identity rotation.
func (r *Rot) SetIdentity() {
	r.S = 0.0
	r.C = 1.0
}

/// Get the angle in radians.
func (r Rot) GetAngle() float64 {
	return math.Atan2(r.S, r.C)
}

/// Get the x-axis.
func (r Rot) GetXAxis() Vec2 {
	return MakeVec2(r.C, r.S)
}

/// Get the u-axis.
func (r Rot) GetYAxis() Vec2 {
	return MakeVec2(-r.S, r.C)
}

/// A transform contains translation and rotation. It is used to represent
/// the position and orientation of rigid frames.
type Transform struct {
	P Vec2
	Q Rot
}

func MakeTransform() Transform {
	return Transform{
		P: MakeVec2(0, 0),
		Q: MakeRot(),
	}
}

/// Initialize using a position vector and a rotation.
func MakeTransformByPositionAndRotation(position Vec2, rotation Rot) Transform {
	return Transform{
		P: position,
		Q: rotation,
	}
}

/// Set this to the identity transform.
func (t *Transform) SetIdentity() {
	t.P.SetZero()
	t.Q.SetIdentity()
}

/// Set this based on the position and angle.
func (t *Transform) Set(position Vec2, anglerad float64) {
	t.P = position
	t.Q.Set(anglerad)
}

/// Positional data: linear location and angular orientation.
type Position struct {
	Linear  Vec2
	Angular float64
}

func MakePosition(linear Vec2, angular float64) Position {
	return Position{
		Linear:  linear,
		Angular: angular,
	}
}

///// Velocity data: linear velocity and angular velocity (rate).
type Velocity struct {
	Linear  Vec2
	Angular float64
}

func MakeVelocity(linear Vec2, angular float64) Velocity {
	return Velocity{
		Linear:  linear,
		Angular: angular,
	}
}

/// Gets the interpolated position at the given unit interval value.
func GetPosition(pos0, pos1 Position, beta float64) Position {
	return Position{
		Linear: Vec2Add(
			Vec2MulScalar(1.0-beta, pos0.Linear),
			Vec2MulScalar(beta, pos1.Linear),
		),
		Angular: (1.0-beta)*pos0.Angular + beta*pos1.Angular,
	}
}

/// This describes the motion of a body/shape for TOI computation.
/// Shapes are defined with respect to the body origin, which may
/// not coincide with the center of mass. However, to support dynamics
/// we must interpolate the center of mass position.
type Sweep struct {
	/// Local center of mass position.
	LocalCenter Vec2

	/// Center world position and world angle at time 0 of the current step.
	Pos0 Position

	/// Center world position and world angle at time 1 of the current step.
	Pos1 Position

	/// Fraction of the current time step in the range [0,1]; Pos0 is
	/// defined at alpha0.
	Alpha0 float64
}

/// Get the interpolated transform at a specific time.
/// @param beta is a factor in [0,1], where 0 indicates alpha0.
func (sweep Sweep) GetTransform(beta float64) Transform {
	pos := GetPosition(sweep.Pos0, sweep.Pos1, beta)

	xf := MakeTransform()
	xf.Q.Set(pos.Angular)
	xf.P = pos.Linear

	// Shift to origin.
	xf.P.OperatorMinusInplace(RotVec2Mul(xf.Q, sweep.LocalCenter))

	return xf
}

/// Advance the sweep forward, yielding a new initial state.
/// @param alpha the new initial time.
func (sweep *Sweep) Advance0(alpha float64) {
	assert(sweep.Alpha0 < 1.0)
	beta := (alpha - sweep.Alpha0) / (1.0 - sweep.Alpha0)
	sweep.Pos0 = GetPosition(sweep.Pos0, sweep.Pos1, beta)
	sweep.Alpha0 = alpha
}

/// Normalize the angles: removes the same number of full turns from both
/// angles so Pos0's angular value lands inside [-2*pi, 2*pi].
func (sweep *Sweep) Normalize() {
	twoPi := 2.0 * Pi
	d := twoPi * math.Floor(sweep.Pos0.Angular/twoPi)
	sweep.Pos0.Angular -= d
	sweep.Pos1.Angular -= d
}

///////////////////////////////////////////////////////////////////////////////
// Free vector/matrix operations
///////////////////////////////////////////////////////////////////////////////

/// Perform the dot product on two vectors.
func Vec2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

/// Perform the cross product on two vectors. In 2D this produces a scalar.
func Vec2Cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

/// Perform the cross product on a vector and a scalar. In 2D this produces
/// a vector.
func Vec2CrossVectorScalar(a Vec2, s float64) Vec2 {
	return MakeVec2(s*a.Y, -s*a.X)
}

/// Perform the cross product on a scalar and a vector. In 2D this produces
/// a vector.
func Vec2CrossScalarVector(s float64, a Vec2) Vec2 {
	return MakeVec2(-s*a.Y, s*a.X)
}

/// Multiply a matrix times a vector. If a rotation matrix is provided,
/// then this transforms the vector from one frame to another.
func Vec2Mat22Mul(m Mat22, v Vec2) Vec2 {
	return MakeVec2(
		m.Ex.X*v.X+m.Ey.X*v.Y,
		m.Ex.Y*v.X+m.Ey.Y*v.Y,
	)
}

/// Multiply a matrix transpose times a vector. If a rotation matrix is
/// provided, then this transforms the vector from one frame to another
/// (inverse transform).
func Vec2Mat22MulT(m Mat22, v Vec2) Vec2 {
	return MakeVec2(
		Vec2Dot(v, m.Ex),
		Vec2Dot(v, m.Ey),
	)
}

/// Add two vectors component-wise.
func Vec2Add(a, b Vec2) Vec2 {
	return MakeVec2(a.X+b.X, a.Y+b.Y)
}

/// Subtract two vectors component-wise.
func Vec2Sub(a, b Vec2) Vec2 {
	return MakeVec2(a.X-b.X, a.Y-b.Y)
}

func Vec2MulScalar(s float64, a Vec2) Vec2 {
	return MakeVec2(s*a.X, s*a.Y)
}

func Vec2Equals(a, b Vec2) bool {
	return a.X == b.X && a.Y == b.Y
}

func Vec2NotEquals(a, b Vec2) bool {
	return a.X != b.X || a.Y != b.Y
}

func Vec2Distance(a, b Vec2) float64 {
	return Vec2Sub(a, b).Length()
}

func Vec2DistanceSquared(a, b Vec2) float64 {
	c := Vec2Sub(a, b)
	return Vec2Dot(c, c)
}

func Vec3MulScalar(s float64, a Vec3) Vec3 {
	return MakeVec3(s*a.X, s*a.Y, s*a.Z)
}

func Vec3Add(a, b Vec3) Vec3 {
	return MakeVec3(a.X+b.X, a.Y+b.Y, a.Z+b.Z)
}

func Vec3Sub(a, b Vec3) Vec3 {
	return MakeVec3(a.X-b.X, a.Y-b.Y, a.Z-b.Z)
}

/// Perform the dot product on two 3-vectors.
func Vec3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

/// Perform the cross product on two 3-vectors.
func Vec3Cross(a, b Vec3) Vec3 {
	return MakeVec3(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

func Mat22Add(a, b Mat22) Mat22 {
	return MakeMat22FromColumns(
		Vec2Add(a.Ex, b.Ex),
		Vec2Add(a.Ey, b.Ey),
	)
}

// A * B
func Mat22Mul(a, b Mat22) Mat22 {
	return MakeMat22FromColumns(
		Vec2Mat22Mul(a, b.Ex),
		Vec2Mat22Mul(a, b.Ey),
	)
}

// A^T * B
func Mat22MulT(a, b Mat22) Mat22 {
	c1 := MakeVec2(Vec2Dot(a.Ex, b.Ex), Vec2Dot(a.Ey, b.Ex))
	c2 := MakeVec2(Vec2Dot(a.Ex, b.Ey), Vec2Dot(a.Ey, b.Ey))
	return MakeMat22FromColumns(c1, c2)
}

/// Multiply a matrix times a vector.
func Vec3Mat33Mul(m Mat33, v Vec3) Vec3 {
	res := Vec3MulScalar(v.X, m.Ex)
	res.OperatorPlusInplace(Vec3MulScalar(v.Y, m.Ey))
	res.OperatorPlusInplace(Vec3MulScalar(v.Z, m.Ez))
	return res
}

/// Multiply a matrix times a vector.
func Vec2Mat33Mul22(m Mat33, v Vec2) Vec2 {
	return MakeVec2(
		m.Ex.X*v.X+m.Ey.X*v.Y,
		m.Ex.Y*v.X+m.Ey.Y*v.Y,
	)
}

/// Multiply two rotations: q * r
func RotMul(q, r Rot) Rot {
	// [qc -qs] * [rc -rs] = [qc*rc-qs*rs -qc*rs-qs*rc]
	// [qs  qc]   [rs  rc]   [qs*rc+qc*rs -qs*rs+qc*rc]
	// s = qs * rc + qc * rs
	// c = qc * rc - qs * rs
	var qr Rot
	qr.S = q.S*r.C + q.C*r.S
	qr.C = q.C*r.C - q.S*r.S
	return qr
}

/// Transpose multiply two rotations: qT * r
func RotMulT(q, r Rot) Rot {
	// [ qc qs] * [rc -rs] = [qc*rc+qs*rs -qc*rs+qs*rc]
	// [-qs qc]   [rs  rc]   [-qs*rc+qc*rs qs*rs+qc*rc]
	// s = qc * rs - qs * rc
	// c = qc * rc + qs * rs
	var qr Rot
	qr.S = q.C*r.S - q.S*r.C
	qr.C = q.C*r.C + q.S*r.S
	return qr
}

/// Rotate a vector
func RotVec2Mul(q Rot, v Vec2) Vec2 {
	return MakeVec2(
		q.C*v.X-q.S*v.Y,
		q.S*v.X+q.C*v.Y,
	)
}

/// Inverse rotate a vector
func RotVec2MulT(q Rot, v Vec2) Vec2 {
	return MakeVec2(
		q.C*v.X+q.S*v.Y,
		-q.S*v.X+q.C*v.Y,
	)
}

func TransformVec2Mul(t Transform, v Vec2) Vec2 {
	return MakeVec2(
		(t.Q.C*v.X-t.Q.S*v.Y)+t.P.X,
		(t.Q.S*v.X+t.Q.C*v.Y)+t.P.Y,
	)
}

func TransformVec2MulT(t Transform, v Vec2) Vec2 {
	px := v.X - t.P.X
	py := v.Y - t.P.Y
	return MakeVec2(
		t.Q.C*px+t.Q.S*py,
		-t.Q.S*px+t.Q.C*py,
	)
}

// v2 = A.q.Rot(B.q.Rot(v1) + B.p) + A.p
//    = (A.q * B.q).Rot(v1) + A.q.Rot(B.p) + A.p
func TransformMul(a, b Transform) Transform {
	var c Transform
	c.Q = RotMul(a.Q, b.Q)
	c.P = Vec2Add(RotVec2Mul(a.Q, b.P), a.P)
	return c
}

// v2 = A.q' * (B.q * v1 + B.p - A.p)
//    = A.q' * B.q * v1 + A.q' * (B.p - A.p)
func TransformMulT(a, b Transform) Transform {
	var c Transform
	c.Q = RotMulT(a.Q, b.Q)
	c.P = RotVec2MulT(a.Q, Vec2Sub(b.P, a.P))
	return c
}

func AbsFloat(a float64) float64 {
	return math.Abs(a)
}

func Vec2Abs(a Vec2) Vec2 {
	return MakeVec2(math.Abs(a.X), math.Abs(a.Y))
}

func Mat22Abs(a Mat22) Mat22 {
	return MakeMat22FromColumns(Vec2Abs(a.Ex), Vec2Abs(a.Ey))
}

func AbsInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Vec2Min(a, b Vec2) Vec2 {
	return MakeVec2(
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
	)
}

func Vec2Max(a, b Vec2) Vec2 {
	return MakeVec2(
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
	)
}

func FloatClamp(a, low, high float64) float64 {
	return math.Max(low, math.Min(a, high))
}

func Vec2Clamp(a, low, high Vec2) Vec2 {
	return Vec2Max(low, Vec2Min(a, high))
}

/// "Next Largest Power of 2
/// Given a binary integer value x, the next largest power of 2 can be
/// computed by a SWAR algorithm that recursively "folds" the upper bits
/// into the lower bits. This process yields a bit vector with the same
/// most significant 1 as x, but all 1's below it.
func NextPowerOfTwo(x uint32) uint32 {
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	return x + 1
}

func IsPowerOfTwo(x uint32) bool {
	return x > 0 && (x&(x-1)) == 0
}
