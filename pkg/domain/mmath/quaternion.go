// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	unitX = mgl64.Vec3{1, 0, 0}
	unitY = mgl64.Vec3{0, 1, 0}
	unitZ = mgl64.Vec3{0, 0, 1}
)

// Quaternion は回転を表す。
type Quaternion struct {
	mgl64.Quat
}

// NewQuaternion は単位クォータニオンを生成する。
func NewQuaternion() Quaternion {
	return Quaternion{Quat: mgl64.QuatIdent()}
}

// NewQuaternionByValues は x, y, z, w 成分からクォータニオンを生成する。
func NewQuaternionByValues(x, y, z, w float64) Quaternion {
	return Quaternion{Quat: mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}}
}

// NewQuaternionFromAxisAngle は軸と角度(ラジアン)から回転を生成する。
func NewQuaternionFromAxisAngle(axis Vec3, radians float64) Quaternion {
	return Quaternion{Quat: mgl64.QuatRotate(radians, axis.Mgl().Normalize())}
}

// NewQuaternionFromDegrees はオイラー角(度)から回転を生成する。
// Z, X, Y の順に回転を適用する。
func NewQuaternionFromDegrees(x, y, z float64) Quaternion {
	qx := mgl64.QuatRotate(DegToRad(x), unitX)
	qy := mgl64.QuatRotate(DegToRad(y), unitY)
	qz := mgl64.QuatRotate(DegToRad(z), unitZ)
	return Quaternion{Quat: qy.Mul(qx).Mul(qz)}
}

// NewQuaternionFromEulerVec はオイラー角ベクトル(度)から回転を生成する。
func NewQuaternionFromEulerVec(degrees Vec3) Quaternion {
	return NewQuaternionFromDegrees(degrees.X, degrees.Y, degrees.Z)
}

// X はx成分を返す。
func (q Quaternion) X() float64 { return q.V[0] }

// Y はy成分を返す。
func (q Quaternion) Y() float64 { return q.V[1] }

// Z はz成分を返す。
func (q Quaternion) Z() float64 { return q.V[2] }

// Muled は q * other の結果を返す。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion{Quat: q.Quat.Mul(other.Quat)}
}

// MulVec3 はベクトルを回転した結果を返す。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	return Vec3FromMgl(q.Quat.Rotate(v.Mgl()))
}

// Inverted は逆回転を返す。
func (q Quaternion) Inverted() Quaternion {
	return Quaternion{Quat: q.Quat.Inverse()}
}

// Normalized は正規化した回転を返す。
func (q Quaternion) Normalized() Quaternion {
	return Quaternion{Quat: q.Quat.Normalize()}
}

// ToMat4 は回転行列を返す。
func (q Quaternion) ToMat4() mgl64.Mat4 {
	return q.Quat.Normalize().Mat4()
}

// NearEquals は同じ回転を表すか許容誤差内で判定する。q と -q は同一回転として扱う。
// 各成分の差の絶対値で比較する。
func (q Quaternion) NearEquals(other Quaternion, epsilon float64) bool {
	return nearQuat(q.Quat, other.Quat, epsilon, 1) || nearQuat(q.Quat, other.Quat, epsilon, -1)
}

// nearQuat は other に sign を掛けた値と成分ごとに比較する。
func nearQuat(q, other mgl64.Quat, epsilon float64, sign float64) bool {
	return math.Abs(q.W-sign*other.W) <= epsilon &&
		math.Abs(q.V[0]-sign*other.V[0]) <= epsilon &&
		math.Abs(q.V[1]-sign*other.V[1]) <= epsilon &&
		math.Abs(q.V[2]-sign*other.V[2]) <= epsilon
}

// Equals は成分の完全一致を判定する。
func (q Quaternion) Equals(other Quaternion) bool {
	return q.W == other.W && q.V == other.V
}

// Slice は [x, y, z, w] 形式へ変換する。
func (q Quaternion) Slice() []float64 {
	return []float64{q.V[0], q.V[1], q.V[2], q.W}
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadToDeg はラジアンを度へ変換する。
func RadToDeg(radians float64) float64 {
	return radians * 180.0 / math.Pi
}
