// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// NewVec3 は成分指定でベクトルを生成する。
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// ZeroVec3 はゼロベクトルを返す。
func ZeroVec3() Vec3 {
	return Vec3{}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍の結果を返す。
func (v Vec3) MuledScalar(s float64) Vec3 {
	return Vec3{Vec: r3.Scale(s, v.Vec)}
}

// Negated は符号反転の結果を返す。
func (v Vec3) Negated() Vec3 {
	return v.MuledScalar(-1)
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// NearEquals は各成分が許容誤差内で一致するか判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// Equals は完全一致を判定する。
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Mgl はmgl64形式へ変換する。
func (v Vec3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Vec3FromMgl はmgl64形式から変換する。
func Vec3FromMgl(v mgl64.Vec3) Vec3 {
	return NewVec3(v[0], v[1], v[2])
}

// Slice は [x, y, z] 形式へ変換する。
func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}
