// 指示: miu200521358
package humanoid

// Side は左右を表す。
type Side int

const (
	Left Side = iota
	Right
)

// Sides は左右の処理順を保持する。
var Sides = []Side{Left, Right}

// String は左右名を返す。
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// HandBone は左右に対応する手首ボーンを返す。
func (s Side) HandBone() BoneId {
	if s == Left {
		return LeftHand
	}
	return RightHand
}
