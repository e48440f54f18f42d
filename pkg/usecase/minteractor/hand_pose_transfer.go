// 指示: miu200521358
package minteractor

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/pose"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/skeleton"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// tracerName はユースケースのトレーサー名。
const tracerName = "github.com/miu200521358/mu_handpose_transfer/pkg/usecase/minteractor"

// DefaultOriginName は合成リグを載せるホスト側オブジェクトの既定名。
const DefaultOriginName = "HandPoseTransfer"

// HandPoseTransferConfig はハンドポーズ転送の設定を表す。
type HandPoseTransferConfig struct {
	OriginName             string
	Origin                 mmath.Transform
	SkeletonParams         SkeletonBuilderParams
	BodyPositionCorrection mmath.Vec3
	ChannelRange           pose.ChannelRange
	VisualizeBones         bool
	BoneAxisScale          float64
	ReadyTimeout           time.Duration
}

// NewHandPoseTransferConfig は既定設定を返す。
func NewHandPoseTransferConfig() HandPoseTransferConfig {
	return HandPoseTransferConfig{
		OriginName:             DefaultOriginName,
		Origin:                 mmath.NewTransform(),
		SkeletonParams:         NewSkeletonBuilderParams(),
		BodyPositionCorrection: mmath.NewVec3(0, -0.1, 0),
		ChannelRange:           pose.DefaultHandChannelRange,
		BoneAxisScale:          DefaultBoneAxisScale,
	}
}

// HandPoseTransferDeps はハンドポーズ転送の依存を表す。
type HandPoseTransferDeps struct {
	Source             moutput.IHandTrackingSource
	PoseHandlerFactory moutput.IPoseHandlerFactory
	WristPlacer        *WristPlacer
	MarkerFactory      moutput.IBoneMarkerFactory
	ProgressReporter   ITransferProgressReporter
	TracerProvider     trace.TracerProvider
}

// HandPoseTransfer はハンドトラッキングの手指姿勢をアバターへ毎フレーム転送する。
type HandPoseTransfer struct {
	config             HandPoseTransferConfig
	source             moutput.IHandTrackingSource
	poseHandlerFactory moutput.IPoseHandlerFactory
	wristPlacer        *WristPlacer
	markerFactory      moutput.IBoneMarkerFactory
	progressReporter   ITransferProgressReporter
	tracer             trace.Tracer

	gate              *ReadinessGate
	builder           *SkeletonBuilder
	rig               *skeleton.RigDescription
	graftReports      []GraftReport
	sourcePoseHandler moutput.IPoseHandler
	available         bool

	targetAvatar      moutput.IAvatar
	targetPoseHandler moutput.IPoseHandler
	targetWrists      [2]moutput.ITransformNode
}

// NewHandPoseTransfer はハンドポーズ転送を生成する。
func NewHandPoseTransfer(config HandPoseTransferConfig, deps HandPoseTransferDeps) *HandPoseTransfer {
	provider := deps.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &HandPoseTransfer{
		config:             config,
		source:             deps.Source,
		poseHandlerFactory: deps.PoseHandlerFactory,
		wristPlacer:        deps.WristPlacer,
		markerFactory:      deps.MarkerFactory,
		progressReporter:   deps.ProgressReporter,
		tracer:             provider.Tracer(tracerName),
		gate:               NewReadinessGate(deps.Source),
	}
}

// IsAvailable は初期化が完了し転送可能か返す。
func (h *HandPoseTransfer) IsAvailable() bool {
	return h.available
}

// Skeleton は合成スケルトンを返す。初期化前は nil。
func (h *HandPoseTransfer) Skeleton() *skeleton.Skeleton {
	if h.builder == nil {
		return nil
	}
	return h.builder.Skeleton()
}

// RigDescription は合成リグの記述を返す。初期化前は nil。
func (h *HandPoseTransfer) RigDescription() *skeleton.RigDescription {
	return h.rig
}

// GraftReports は左右の手指移植結果を返す。
func (h *HandPoseTransfer) GraftReports() []GraftReport {
	return append([]GraftReport(nil), h.graftReports...)
}

// WristPlacer は手首配置を返す。
func (h *HandPoseTransfer) WristPlacer() *WristPlacer {
	return h.wristPlacer
}

// SourcePoseHandler は合成リグのポーズハンドラを返す。
func (h *HandPoseTransfer) SourcePoseHandler() moutput.IPoseHandler {
	return h.sourcePoseHandler
}

// HasTargetPoseHandler は転送先ポーズハンドラが設定済みか返す。
func (h *HandPoseTransfer) HasTargetPoseHandler() bool {
	return h.targetPoseHandler != nil
}

// Start はデバイスの初期化完了を待ってから初期化する。
func (h *HandPoseTransfer) Start(ctx context.Context, ticks <-chan struct{}) error {
	if h.available {
		return nil
	}
	if err := WaitUntilReady(ctx, ticks, h.gate, h.config.ReadyTimeout); err != nil {
		logTransferWarn("デバイスの初期化待ちに失敗しました: %s", err.Error())
		return err
	}
	h.reportProgress(TransferProgressEvent{Type: TransferProgressEventTypeDeviceReady})
	return h.Initialize(ctx)
}

// TryInitialize はデバイス状態を1回だけ確認し、準備完了なら初期化する。
func (h *HandPoseTransfer) TryInitialize(ctx context.Context) (bool, error) {
	if h.available {
		return true, nil
	}
	if h.gate.Poll() {
		h.reportProgress(TransferProgressEvent{Type: TransferProgressEventTypeDeviceReady})
	}
	if h.gate.State() != ReadinessReady {
		return false, nil
	}
	if err := h.Initialize(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Initialize は合成スケルトンを構築し、手指を移植してリグを準備する。2回目以降は何もしない。
func (h *HandPoseTransfer) Initialize(ctx context.Context) (err error) {
	if h.available {
		return nil
	}
	_, span := h.tracer.Start(ctx, "HandPoseTransfer.Initialize")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "initialize failed")
		}
		span.End()
	}()

	if h.source == nil {
		return &DeviceNotReadyError{}
	}

	builder := NewSkeletonBuilder(h.config.OriginName, h.config.Origin)
	if err := builder.BuildBaseSkeleton(h.config.SkeletonParams); err != nil {
		return err
	}
	if err := builder.ApplyHandBaseRotations(); err != nil {
		return err
	}
	h.reportProgress(TransferProgressEvent{
		Type:      TransferProgressEventTypeBaseSkeletonBuilt,
		BoneCount: builder.Skeleton().Len(),
	})

	reports := make([]GraftReport, 0, len(humanoid.Sides))
	for _, side := range humanoid.Sides {
		report, err := builder.GraftHandBones(side, h.source)
		if err != nil {
			return err
		}
		if len(report.Skipped) > 0 {
			logTransferWarn("関節データ不足のため手指ボーンを飛ばしました: side=%s skipped=%d", side, len(report.Skipped))
		}
		span.SetAttributes(
			attribute.Int("hand."+side.String()+".grafted", len(report.Grafted)),
			attribute.Int("hand."+side.String()+".skipped", len(report.Skipped)),
		)
		reports = append(reports, report)
		h.reportProgress(TransferProgressEvent{
			Type:         TransferProgressEventTypeHandGrafted,
			Side:         side,
			BoneCount:    len(report.Grafted),
			SkippedCount: len(report.Skipped),
		})
	}

	rig := builder.BuildRigDescription()
	h.reportProgress(TransferProgressEvent{
		Type:      TransferProgressEventTypeRigDescribed,
		BoneCount: len(rig.HumanBones()),
	})

	if h.poseHandlerFactory == nil {
		return &PoseHandlerMissingError{Role: "source"}
	}
	handler, err := h.poseHandlerFactory.NewPoseHandler(rig, builder.Skeleton())
	if err != nil {
		return err
	}

	if h.config.VisualizeBones && h.markerFactory != nil {
		count := attachBoneMarkers(builder.Skeleton(), h.markerFactory, h.config.BoneAxisScale)
		h.reportProgress(TransferProgressEvent{Type: TransferProgressEventTypeMarkersAttached, BoneCount: count})
	}

	h.builder = builder
	h.rig = rig
	h.graftReports = reports
	h.sourcePoseHandler = handler
	h.available = true
	span.SetAttributes(attribute.Int("skeleton.bones", builder.Skeleton().Len()))
	h.reportProgress(TransferProgressEvent{Type: TransferProgressEventTypeAvailable, BoneCount: builder.Skeleton().Len()})
	logTransferInfo("ハンドポーズ転送を開始できます: bones=%d rig=%s", builder.Skeleton().Len(), rig.ID())
	return nil
}

// SetTargetAvatar は転送先アバターを設定する。nil なら解除する。
// ポーズハンドラを作れない場合は警告のみで、手首追従だけ有効にする。
func (h *HandPoseTransfer) SetTargetAvatar(avatar moutput.IAvatar) {
	h.targetAvatar = avatar
	h.targetPoseHandler = nil
	h.targetWrists = [2]moutput.ITransformNode{}
	if avatar == nil {
		return
	}

	handler, err := avatar.NewPoseHandler()
	if err != nil {
		logTransferWarn("転送先ポーズハンドラを生成できませんでした: %s", err.Error())
	} else {
		h.targetPoseHandler = handler
	}
	for _, side := range humanoid.Sides {
		h.targetWrists[side] = avatar.ResolveBoneTransform(side.HandBone())
		if h.targetWrists[side] == nil {
			logTransferDebug("転送先アバターに手首ボーンがありません: side=%s", side)
		}
	}
}

// Tick は1フレーム分の処理を行う。手首配置、手指更新、リターゲット、手首追従の順。
func (h *HandPoseTransfer) Tick(ctx context.Context) (result FrameResult, err error) {
	_, span := h.tracer.Start(ctx, "HandPoseTransfer.Tick")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "tick failed")
		}
		span.End()
	}()
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if h.wristPlacer != nil {
		result.WristStates = h.wristPlacer.Update()
	} else {
		for _, side := range humanoid.Sides {
			result.WristStates[side] = SelectWristState(h.isTracked(side))
		}
	}

	if !h.available {
		result.Skipped = true
		span.SetAttributes(attribute.Bool("frame.skipped", true))
		return result, nil
	}

	for _, side := range humanoid.Sides {
		if !h.isTracked(side) {
			continue
		}
		updated, err := UpdateHandBones(h.builder.Skeleton(), side, h.source)
		if err != nil {
			return result, err
		}
		result.HandsUpdated[side] = true
		result.BonesUpdated += updated
	}

	// リターゲットの失敗はこのフレームのリターゲットだけを飛ばし、手首追従は続ける。
	if h.targetPoseHandler != nil {
		if err := Retarget(h.sourcePoseHandler, h.targetPoseHandler, h.config.ChannelRange, h.config.BodyPositionCorrection); err != nil {
			logTransferWarn("リターゲットを飛ばしました: %s", err.Error())
			span.AddEvent("retarget skipped", trace.WithAttributes(attribute.String("error", err.Error())))
		} else {
			result.Retargeted = true
		}
	}

	if h.targetAvatar != nil && h.wristPlacer != nil {
		result.WristsMoved = h.wristPlacer.FollowTargetWrists(h.targetWrists[humanoid.Left], h.targetWrists[humanoid.Right])
	}

	span.SetAttributes(
		attribute.Int("frame.bones_updated", result.BonesUpdated),
		attribute.Bool("frame.retargeted", result.Retargeted),
		attribute.Int("frame.wrists_moved", result.WristsMoved),
	)
	return result, nil
}

// isTracked は指定側が今フレーム追跡中か返す。
func (h *HandPoseTransfer) isTracked(side humanoid.Side) bool {
	return h.source != nil && h.source.IsTracked(side)
}

// reportProgress は進捗を通知する。
func (h *HandPoseTransfer) reportProgress(event TransferProgressEvent) {
	if h.progressReporter == nil {
		return
	}
	h.progressReporter.ReportTransferProgress(event)
}
