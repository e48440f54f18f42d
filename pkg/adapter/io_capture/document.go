// 指示: miu200521358
package io_capture

import "github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"

// CaptureDocument はキャプチャファイルのYAML構造を表す。
type CaptureDocument struct {
	Name   string          `yaml:"name,omitempty"`
	Hands  HandsDocument   `yaml:"hands"`
	Frames []FrameDocument `yaml:"frames"`
}

// HandsDocument は左右のデバイス定義を表す。
type HandsDocument struct {
	Left  HandDocument `yaml:"left"`
	Right HandDocument `yaml:"right"`
}

// HandDocument は片手分のデバイス定義を表す。
type HandDocument struct {
	JointCount int             `yaml:"joint_count"`
	Parents    []int           `yaml:"parents,omitempty"`
	BindPose   []JointDocument `yaml:"bind_pose"`
}

// FrameDocument は1フレーム分の左右入力を表す。
type FrameDocument struct {
	Left  HandFrameDocument `yaml:"left"`
	Right HandFrameDocument `yaml:"right"`
}

// HandFrameDocument は1フレーム分の片手入力を表す。
// joints を省略したフレームはバインドポーズのまま扱う。
type HandFrameDocument struct {
	Tracked bool            `yaml:"tracked"`
	Ready   *bool           `yaml:"ready,omitempty"`
	Joints  []JointDocument `yaml:"joints,omitempty"`
	Anchor  *JointDocument  `yaml:"anchor,omitempty"`
}

// JointDocument は関節1つ分の姿勢を表す。回転は [x, y, z, w] かオイラー角(度)。
type JointDocument struct {
	Position []float64 `yaml:"position,omitempty"`
	Rotation []float64 `yaml:"rotation,omitempty"`
	Euler    []float64 `yaml:"euler,omitempty"`
}

// toTransform は関節姿勢を変換する。
func (d JointDocument) toTransform() (mmath.Transform, error) {
	transform := mmath.NewTransform()
	switch len(d.Position) {
	case 0:
	case 3:
		transform.Position = mmath.NewVec3(d.Position[0], d.Position[1], d.Position[2])
	default:
		return transform, NewCaptureFormatError("positionの要素数が不正です: %d", len(d.Position))
	}

	switch {
	case len(d.Rotation) > 0 && len(d.Euler) > 0:
		return transform, NewCaptureFormatError("rotationとeulerは同時に指定できません")
	case len(d.Rotation) == 4:
		transform.Rotation = mmath.NewQuaternionByValues(d.Rotation[0], d.Rotation[1], d.Rotation[2], d.Rotation[3]).Normalized()
	case len(d.Euler) == 3:
		transform.Rotation = mmath.NewQuaternionFromDegrees(d.Euler[0], d.Euler[1], d.Euler[2])
	case len(d.Rotation) == 0 && len(d.Euler) == 0:
	default:
		return transform, NewCaptureFormatError("回転の要素数が不正です: rotation=%d euler=%d", len(d.Rotation), len(d.Euler))
	}
	return transform, nil
}

// newJointDocument は姿勢からYAML用の関節姿勢を生成する。
func newJointDocument(transform mmath.Transform) JointDocument {
	return JointDocument{
		Position: transform.Position.Slice(),
		Rotation: transform.Rotation.Slice(),
	}
}
