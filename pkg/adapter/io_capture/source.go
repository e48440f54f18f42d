// 指示: miu200521358
package io_capture

import (
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// CaptureSource は記録済みキャプチャをハンドトラッキング入力として再生する。
type CaptureSource struct {
	capture *Capture
	frame   int
}

// NewCaptureSource は先頭フレームを指す再生入力を生成する。
func NewCaptureSource(capture *Capture) *CaptureSource {
	return &CaptureSource{capture: capture}
}

// Frame は現在のフレーム番号を返す。
func (s *CaptureSource) Frame() int {
	return s.frame
}

// FrameCount はフレーム数を返す。
func (s *CaptureSource) FrameCount() int {
	return s.capture.FrameCount()
}

// Advance は次のフレームへ進む。末尾なら false を返して位置を保つ。
func (s *CaptureSource) Advance() bool {
	if s.frame+1 >= s.capture.FrameCount() {
		return false
	}
	s.frame++
	return true
}

// Rewind は先頭フレームへ戻る。
func (s *CaptureSource) Rewind() {
	s.frame = 0
}

// current は現在フレームの片手入力を返す。
func (s *CaptureSource) current(side humanoid.Side) HandFrame {
	return s.capture.Frames[s.frame][side]
}

// IsReady は現在フレームでデバイス初期化済みか返す。
func (s *CaptureSource) IsReady(side humanoid.Side) bool {
	return s.current(side).Ready
}

// IsTracked は現在フレームで追跡中か返す。
func (s *CaptureSource) IsTracked(side humanoid.Side) bool {
	return s.current(side).Tracked
}

// JointCount はデバイスの関節数を返す。
func (s *CaptureSource) JointCount(side humanoid.Side) int {
	return s.capture.Hands[side].JointCount
}

// LocalTransform は現在フレームの関節ローカル姿勢を返す。範囲外は単位姿勢。
func (s *CaptureSource) LocalTransform(side humanoid.Side, joint humanoid.VendorBoneId) mmath.Transform {
	joints := s.current(side).Joints
	if int(joint) < 0 || int(joint) >= len(joints) {
		return mmath.NewTransform()
	}
	return joints[joint]
}

// BindLocalTransform はバインドポーズの関節ローカル姿勢を返す。範囲外は単位姿勢。
func (s *CaptureSource) BindLocalTransform(side humanoid.Side, joint humanoid.VendorBoneId) mmath.Transform {
	bind := s.capture.Hands[side].BindPose
	if int(joint) < 0 || int(joint) >= len(bind) {
		return mmath.NewTransform()
	}
	return bind[joint]
}

// ParentJointIndex は親関節のindexを返す。範囲外は -1。
func (s *CaptureSource) ParentJointIndex(side humanoid.Side, joint humanoid.VendorBoneId) int {
	parents := s.capture.Hands[side].Parents
	if int(joint) < 0 || int(joint) >= len(parents) {
		return -1
	}
	return parents[joint]
}

// ApplyAnchors は現在フレームのコントローラ位置を基準ノードへ反映し、反映数を返す。
func (s *CaptureSource) ApplyAnchors(left, right moutput.ITransformNode) int {
	applied := 0
	for side, node := range [2]moutput.ITransformNode{left, right} {
		anchor := s.current(humanoid.Side(side)).Anchor
		if node == nil || anchor == nil {
			continue
		}
		node.SetLocalPose(anchor.Position, anchor.Rotation)
		applied++
	}
	return applied
}
