// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// WristState は手首基準点の配置状態を表す。
type WristState int

const (
	// WristStateControllerHeld はコントローラ保持中を表す。
	WristStateControllerHeld WristState = iota
	// WristStateHandTracked はハンドトラッキング中を表す。
	WristStateHandTracked
)

// String は状態名を返す。
func (s WristState) String() string {
	if s == WristStateHandTracked {
		return "hand_tracked"
	}
	return "controller_held"
}

// SelectWristState は追跡フラグから手首状態を選ぶ。前フレームの状態は参照しない。
func SelectWristState(tracked bool) WristState {
	if tracked {
		return WristStateHandTracked
	}
	return WristStateControllerHeld
}

// WristPreset は手首基準点のローカル位置とオイラー角(度)を表す。
type WristPreset struct {
	Position mmath.Vec3
	Angles   mmath.Vec3
}

// HandWristPresets は片手分の状態別プリセットを表す。
type HandWristPresets struct {
	Controller   WristPreset
	HandTracking WristPreset
}

// For は状態に対応するプリセットを返す。
func (p HandWristPresets) For(state WristState) WristPreset {
	if state == WristStateHandTracked {
		return p.HandTracking
	}
	return p.Controller
}

// WristPresets は左右の手首プリセットを表す。
type WristPresets struct {
	Left  HandWristPresets
	Right HandWristPresets
}

// NewWristPresets は既定の手首プリセットを返す。
func NewWristPresets() WristPresets {
	return WristPresets{
		Left: HandWristPresets{
			Controller:   WristPreset{Position: mmath.NewVec3(0, -0.03, -0.1), Angles: mmath.NewVec3(-90, 90, 0)},
			HandTracking: WristPreset{Position: mmath.ZeroVec3(), Angles: mmath.NewVec3(0, 0, 180)},
		},
		Right: HandWristPresets{
			Controller:   WristPreset{Position: mmath.NewVec3(0, -0.03, -0.1), Angles: mmath.NewVec3(-90, -90, 0)},
			HandTracking: WristPreset{Position: mmath.ZeroVec3(), Angles: mmath.NewVec3(180, 0, 180)},
		},
	}
}

// For は指定側のプリセットを返す。
func (p WristPresets) For(side humanoid.Side) HandWristPresets {
	if side == humanoid.Left {
		return p.Left
	}
	return p.Right
}

// WristPlacer は追跡状態に応じて手首基準点を配置する。
type WristPlacer struct {
	presets    WristPresets
	source     moutput.IHandTrackingSource
	references [2]moutput.ITransformNode
	states     [2]WristState
}

// NewWristPlacer は手首配置を生成する。基準点は nil でもよい。
func NewWristPlacer(
	presets WristPresets,
	source moutput.IHandTrackingSource,
	leftReference moutput.ITransformNode,
	rightReference moutput.ITransformNode,
) *WristPlacer {
	return &WristPlacer{
		presets:    presets,
		source:     source,
		references: [2]moutput.ITransformNode{leftReference, rightReference},
	}
}

// SetReference は指定側の基準点を差し替える。
func (w *WristPlacer) SetReference(side humanoid.Side, reference moutput.ITransformNode) {
	w.references[side] = reference
}

// Reference は指定側の基準点を返す。
func (w *WristPlacer) Reference(side humanoid.Side) moutput.ITransformNode {
	return w.references[side]
}

// State は直近の Update で選んだ状態を返す。
func (w *WristPlacer) State(side humanoid.Side) WristState {
	return w.states[side]
}

// Presets は手首プリセットを返す。
func (w *WristPlacer) Presets() WristPresets {
	return w.presets
}

// Update は左右の基準点を現在の追跡状態のプリセットへ配置し、選んだ状態を返す。
func (w *WristPlacer) Update() [2]WristState {
	for _, side := range humanoid.Sides {
		tracked := w.source != nil && w.source.IsTracked(side)
		state := SelectWristState(tracked)
		if state != w.states[side] {
			logTransferDebug("手首状態を切り替えました: side=%s state=%s", side, state)
		}
		w.states[side] = state

		reference := w.references[side]
		if reference == nil {
			continue
		}
		preset := w.presets.For(side).For(state)
		reference.SetLocalEulerAngles(preset.Position, preset.Angles)
	}
	return w.states
}

// FollowTargetWrists は基準点のワールド姿勢をアバターの手首へ写し、写した数を返す。
func (w *WristPlacer) FollowTargetWrists(leftWrist, rightWrist moutput.ITransformNode) int {
	moved := 0
	for side, wrist := range [2]moutput.ITransformNode{leftWrist, rightWrist} {
		reference := w.references[side]
		if wrist == nil || reference == nil {
			continue
		}
		world := reference.WorldPose()
		wrist.SetWorldPose(world.Position, world.Rotation)
		moved++
	}
	return moved
}

// WristPoses は左右の基準点の姿勢を返す。
func (w *WristPlacer) WristPoses() []WristPose {
	poses := make([]WristPose, 0, len(humanoid.Sides))
	for _, side := range humanoid.Sides {
		wristPose := WristPose{Side: side, State: w.states[side], World: mmath.NewTransform()}
		if reference := w.references[side]; reference != nil {
			wristPose.World = reference.WorldPose()
			wristPose.Resolved = true
		}
		poses = append(poses, wristPose)
	}
	return poses
}
