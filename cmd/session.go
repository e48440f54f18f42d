// 指示: miu200521358
package main

import (
	"context"
	"strings"

	"github.com/miu200521358/mu_handpose_transfer/pkg/adapter/avatar"
	"github.com/miu200521358/mu_handpose_transfer/pkg/adapter/io_capture"
	"github.com/miu200521358/mu_handpose_transfer/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/scene"
	"github.com/miu200521358/mu_handpose_transfer/pkg/infra/config"
	"github.com/miu200521358/mu_handpose_transfer/pkg/infra/tracing"
	"github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/logging"
	"github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/merr"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/minteractor"
)

// sessionRequest はセッション構築の入力を表す。
type sessionRequest struct {
	CapturePath string
	// Visualize が nil なら設定値を使う。
	Visualize *bool
}

// session はキャプチャ再生からアバターまでを結線した実行単位を表す。
type session struct {
	lang     string
	logger   logging.ILogger
	config   *config.Config
	capture  *io_capture.Capture
	source   *io_capture.CaptureSource
	anchors  [2]*scene.TransformNode
	avatar   *avatar.MemoryAvatar
	markers  *avatar.MarkerRecorder
	progress *progressLog
	transfer *minteractor.HandPoseTransfer
	shutdown tracing.ShutdownFunc
}

// openSession は設定とキャプチャを読み込み、転送処理を組み立てる。
func openSession(ctx context.Context, opts *rootOptions, req sessionRequest) (*session, error) {
	if strings.TrimSpace(req.CapturePath) == "" {
		return nil, merr.NewCommonError(io_capture.ErrorIDCaptureFileNotFound, nil, "%s", messages.Translate(opts.Lang, messages.MessageCaptureRequired))
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, merr.NewCommonError(config.ErrorIDConfigInvalid, err, "%s", messages.Translate(opts.Lang, messages.MessageConfigInvalid, opts.ConfigPath))
	}
	if req.Visualize != nil {
		cfg.VisualizeBones = *req.Visualize
	}

	logger := logging.NewLogger(opts.errOut)
	logger.SetLevel(cfg.Level())
	logging.SetDefaultLogger(logger)

	provider, shutdown, err := tracing.Setup(ctx, appName, cfg.OtelEndpoint)
	if err != nil {
		return nil, err
	}
	if cfg.OtelEndpoint != "" {
		logger.Info("%s", messages.Translate(opts.Lang, messages.LogTracingActive, cfg.OtelEndpoint))
	}

	capture, err := io_capture.NewCaptureRepository().Load(req.CapturePath)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	source := io_capture.NewCaptureSource(capture)

	// コントローラ位置の下に手首基準点を置く。
	tracking := scene.NewTransformNode("TrackingSpace", nil)
	var anchors [2]*scene.TransformNode
	var references [2]*scene.TransformNode
	for _, side := range humanoid.Sides {
		anchors[side] = scene.NewTransformNode(side.String()+"ControllerAnchor", tracking)
		references[side] = scene.NewTransformNode(side.String()+"WristReference", anchors[side])
	}
	placer := minteractor.NewWristPlacer(cfg.WristPresets(), source, references[humanoid.Left], references[humanoid.Right])

	s := &session{
		lang:     opts.Lang,
		logger:   logger,
		config:   cfg,
		capture:  capture,
		source:   source,
		anchors:  anchors,
		avatar:   avatar.NewMemoryAvatar(capture.Name, nil),
		markers:  avatar.NewMarkerRecorder(),
		progress: newProgressLog(),
		shutdown: shutdown,
	}
	s.transfer = minteractor.NewHandPoseTransfer(cfg.TransferConfig(), minteractor.HandPoseTransferDeps{
		Source:             source,
		PoseHandlerFactory: avatar.NewRigPoseHandlerFactory(),
		WristPlacer:        placer,
		MarkerFactory:      s.markers,
		ProgressReporter:   s.progress,
		TracerProvider:     provider,
	})
	return s, nil
}

// Close はトレースを送り切って終了する。
func (s *session) Close(ctx context.Context) error {
	if s.shutdown == nil {
		return nil
	}
	return s.shutdown(ctx)
}

// applyAnchors は現在フレームのコントローラ位置を反映する。
func (s *session) applyAnchors() {
	s.source.ApplyAnchors(s.anchors[humanoid.Left], s.anchors[humanoid.Right])
}

// logSkippedBones は移植で飛ばしたボーン数を警告する。
func (s *session) logSkippedBones() {
	for _, report := range s.transfer.GraftReports() {
		if len(report.Skipped) == 0 {
			continue
		}
		s.logger.Warn("%s", messages.Translate(s.lang, messages.LogSkippedBones, report.Side, len(report.Skipped)))
	}
}

// progressLog は初期化の進捗イベントを記録する。
type progressLog struct {
	events []minteractor.TransferProgressEvent
}

// newProgressLog は進捗記録を生成する。
func newProgressLog() *progressLog {
	return &progressLog{}
}

// ReportTransferProgress は進捗イベントを記録する。
func (p *progressLog) ReportTransferProgress(event minteractor.TransferProgressEvent) {
	p.events = append(p.events, event)
}

// Stages は記録したイベント種別を順に返す。
func (p *progressLog) Stages() []string {
	stages := make([]string, 0, len(p.events))
	for _, event := range p.events {
		stages = append(stages, string(event.Type))
	}
	return stages
}
