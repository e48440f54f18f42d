// 指示: miu200521358
package moutput

import (
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/pose"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/skeleton"
)

// IHandTrackingSource はハンドトラッキングデバイスの読み取り契約を表す。
type IHandTrackingSource interface {
	// IsReady はデバイスの初期化完了を返す。
	IsReady(side humanoid.Side) bool
	// IsTracked は今フレームの追跡データが信頼できるかを返す。
	IsTracked(side humanoid.Side) bool
	// JointCount はデバイスが公開する関節数を返す。
	JointCount(side humanoid.Side) int
	// LocalTransform は今フレームの関節ローカル姿勢を返す。
	LocalTransform(side humanoid.Side, joint humanoid.VendorBoneId) mmath.Transform
	// BindLocalTransform はバインドポーズの関節ローカル姿勢を返す。
	BindLocalTransform(side humanoid.Side, joint humanoid.VendorBoneId) mmath.Transform
	// ParentJointIndex は親関節のindexを返す。ルートは -1。
	ParentJointIndex(side humanoid.Side, joint humanoid.VendorBoneId) int
}

// IPoseHandler はマッスル空間姿勢の読み書き契約を表す。
type IPoseHandler interface {
	// GetPose は現在の姿勢を新しく生成して返す。
	GetPose() *pose.Pose
	// SetPose は姿勢を書き戻す。
	SetPose(p *pose.Pose)
}

// IPoseHandlerFactory は合成リグ用のポーズハンドラ生成契約を表す。
type IPoseHandlerFactory interface {
	NewPoseHandler(rig *skeleton.RigDescription, sk *skeleton.Skeleton) (IPoseHandler, error)
}

// ITransformNode はホスト側変換ノードの契約を表す。
type ITransformNode interface {
	SetLocalPose(position mmath.Vec3, rotation mmath.Quaternion)
	SetLocalEulerAngles(position mmath.Vec3, degrees mmath.Vec3)
	LocalPose() mmath.Transform
	WorldPose() mmath.Transform
	SetWorldPose(position mmath.Vec3, rotation mmath.Quaternion)
}

// IAvatar はリターゲット先アバターの契約を表す。
type IAvatar interface {
	// NewPoseHandler はアバター用ポーズハンドラを生成する。
	NewPoseHandler() (IPoseHandler, error)
	// ResolveBoneTransform は標準ボーンに対応する変換ノードを返す。無ければ nil。
	ResolveBoneTransform(bone humanoid.BoneId) ITransformNode
}

// BoneMarker はボーン確認用マーカー1件を表す。
type BoneMarker struct {
	Bone  humanoid.BoneId
	Name  string
	Scale float64
}

// IBoneMarkerFactory はボーン確認用マーカーの受け口を表す。
type IBoneMarkerFactory interface {
	AttachMarker(marker BoneMarker)
}
