// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
)

// TransferProgressEventType は初期化処理の進捗イベント種別を表す。
type TransferProgressEventType string

const (
	// TransferProgressEventTypeDeviceReady はデバイス初期化完了イベントを表す。
	TransferProgressEventTypeDeviceReady TransferProgressEventType = "device_ready"
	// TransferProgressEventTypeBaseSkeletonBuilt は基本骨格構築完了イベントを表す。
	TransferProgressEventTypeBaseSkeletonBuilt TransferProgressEventType = "base_skeleton_built"
	// TransferProgressEventTypeHandGrafted は片手分の手指移植完了イベントを表す。
	TransferProgressEventTypeHandGrafted TransferProgressEventType = "hand_grafted"
	// TransferProgressEventTypeRigDescribed はリグ記述生成完了イベントを表す。
	TransferProgressEventTypeRigDescribed TransferProgressEventType = "rig_described"
	// TransferProgressEventTypeMarkersAttached はボーン確認用マーカー配置完了イベントを表す。
	TransferProgressEventTypeMarkersAttached TransferProgressEventType = "markers_attached"
	// TransferProgressEventTypeAvailable は転送開始可能イベントを表す。
	TransferProgressEventTypeAvailable TransferProgressEventType = "available"
)

// TransferProgressEvent は初期化処理の進捗イベントを表す。
type TransferProgressEvent struct {
	Type         TransferProgressEventType
	Side         humanoid.Side
	BoneCount    int
	SkippedCount int
}

// ITransferProgressReporter は初期化処理の進捗通知契約を表す。
type ITransferProgressReporter interface {
	// ReportTransferProgress は初期化進捗を通知する。
	ReportTransferProgress(event TransferProgressEvent)
}

// GraftReport は片手分の手指ボーン移植結果を表す。
type GraftReport struct {
	Side    humanoid.Side
	Grafted []humanoid.BoneId
	Skipped []*InsufficientJointDataError
}

// FrameResult は1フレーム分の処理結果を表す。
type FrameResult struct {
	WristStates  [2]WristState
	HandsUpdated [2]bool
	BonesUpdated int
	Retargeted   bool
	WristsMoved  int
	Skipped      bool
}

// WristStateFor は指定側の手首状態を返す。
func (r FrameResult) WristStateFor(side humanoid.Side) WristState {
	return r.WristStates[side]
}

// HandUpdatedFor は指定側の手指が更新されたか返す。
func (r FrameResult) HandUpdatedFor(side humanoid.Side) bool {
	return r.HandsUpdated[side]
}

// WristPose は手首基準点の姿勢出力を表す。
type WristPose struct {
	Side     humanoid.Side
	State    WristState
	World    mmath.Transform
	Resolved bool
}
