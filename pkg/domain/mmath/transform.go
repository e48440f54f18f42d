// 指示: miu200521358
package mmath

// Transform は位置と回転の組を表す。
type Transform struct {
	Position Vec3
	Rotation Quaternion
}

// NewTransform は恒等変換を生成する。
func NewTransform() Transform {
	return Transform{
		Position: ZeroVec3(),
		Rotation: NewQuaternion(),
	}
}

// NewTransformFrom は位置と回転から変換を生成する。
func NewTransformFrom(position Vec3, rotation Quaternion) Transform {
	return Transform{Position: position, Rotation: rotation}
}

// Composed は親変換 t の下に子変換 child を合成した結果を返す。
func (t Transform) Composed(child Transform) Transform {
	return Transform{
		Position: t.Position.Added(t.Rotation.MulVec3(child.Position)),
		Rotation: t.Rotation.Muled(child.Rotation),
	}
}

// Inverted は逆変換を返す。
func (t Transform) Inverted() Transform {
	inv := t.Rotation.Inverted()
	return Transform{
		Position: inv.MulVec3(t.Position.Negated()),
		Rotation: inv,
	}
}

// NearEquals は位置と回転が許容誤差内で一致するか判定する。
func (t Transform) NearEquals(other Transform, epsilon float64) bool {
	return t.Position.NearEquals(other.Position, epsilon) && t.Rotation.NearEquals(other.Rotation, epsilon)
}
