// 指示: miu200521358
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/miu200521358/mu_handpose_transfer/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/merr"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/minteractor"
)

// replayOptions は replay コマンドのフラグを保持する。
type replayOptions struct {
	*rootOptions
	CapturePath string
	Frames      int
	Visualize   bool
}

// replayReport は再生結果全体を表す。
type replayReport struct {
	Capture     string        `json:"capture" yaml:"capture"`
	FrameCount  int           `json:"frame_count" yaml:"frame_count"`
	ReadyFrame  int           `json:"ready_frame" yaml:"ready_frame"`
	Retargeted  int           `json:"retargeted" yaml:"retargeted"`
	Markers     int           `json:"markers" yaml:"markers"`
	Stages      []string      `json:"stages" yaml:"stages,flow"`
	AvatarWrite int           `json:"avatar_writes" yaml:"avatar_writes"`
	Frames      []frameReport `json:"frames" yaml:"frames"`
}

// frameReport は1フレーム分の結果を表す。
type frameReport struct {
	Frame        int           `json:"frame" yaml:"frame"`
	Skipped      bool          `json:"skipped" yaml:"skipped"`
	BonesUpdated int           `json:"bones_updated" yaml:"bones_updated"`
	Retargeted   bool          `json:"retargeted" yaml:"retargeted"`
	WristsMoved  int           `json:"wrists_moved" yaml:"wrists_moved"`
	BodyPosition []float64     `json:"body_position" yaml:"body_position,flow"`
	Hands        []handReport  `json:"hands" yaml:"hands"`
	Wrists       []wristReport `json:"wrists" yaml:"wrists"`
}

// handReport は片手分の手指マッスル値を表す。
type handReport struct {
	Side    string    `json:"side" yaml:"side"`
	Updated bool      `json:"updated" yaml:"updated"`
	Muscles []float64 `json:"muscles" yaml:"muscles,flow"`
}

// wristReport は手首基準点の姿勢を表す。
type wristReport struct {
	Side     string    `json:"side" yaml:"side"`
	State    string    `json:"state" yaml:"state"`
	Position []float64 `json:"position" yaml:"position,flow"`
	Rotation []float64 `json:"rotation" yaml:"rotation,flow"`
}

// newReplayCommand は replay コマンドを生成する。
func newReplayCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &replayOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: messages.Translate(helpLang, messages.CommandReplayShort),
		Example: `  mu_handpose replay --capture hands.yaml
  mu_handpose replay --capture hands.yaml --frames 30 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := sessionRequest{CapturePath: opts.CapturePath}
			if cmd.Flags().Changed("visualize") {
				req.Visualize = &opts.Visualize
			}
			report, err := runReplay(cmd.Context(), opts.rootOptions, req, opts.Frames)
			if err != nil {
				return err
			}
			return writeReport(opts.out, opts.Format, report, report.writeText)
		},
	}

	cmd.Flags().StringVar(&opts.CapturePath, "capture", "", messages.Translate(helpLang, messages.FlagCapture))
	cmd.Flags().IntVarP(&opts.Frames, "frames", "n", 0, messages.Translate(helpLang, messages.FlagFrames))
	cmd.Flags().BoolVar(&opts.Visualize, "visualize", false, messages.Translate(helpLang, messages.FlagVisualize))
	return cmd
}

// runReplay はキャプチャを先頭から再生し、各フレームの転送結果を集める。
// デバイスが最後まで初期化完了しなければ DeviceNotReadyError を返す。
func runReplay(ctx context.Context, opts *rootOptions, req sessionRequest, limit int) (report *replayReport, err error) {
	s, err := openSession(ctx, opts, req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := s.Close(ctx); err == nil {
			err = closeErr
		}
	}()

	total := s.source.FrameCount()
	if limit > 0 && limit < total {
		total = limit
	}
	s.logger.Info("%s", messages.Translate(s.lang, messages.LogReplayStart, s.capture.Name, total))

	report = &replayReport{Capture: s.capture.Name, ReadyFrame: -1}
	for frame := 0; frame < total; frame++ {
		s.applyAnchors()
		if !s.transfer.IsAvailable() {
			ok, err := s.transfer.TryInitialize(ctx)
			if err != nil {
				return nil, err
			}
			if ok {
				report.ReadyFrame = frame
				s.transfer.SetTargetAvatar(s.avatar)
				s.logSkippedBones()
			}
		}

		result, err := s.transfer.Tick(ctx)
		if err != nil {
			return nil, err
		}
		report.Frames = append(report.Frames, s.frameReport(frame, result))
		if result.Retargeted {
			report.Retargeted++
		}
		if !s.source.Advance() {
			break
		}
	}
	report.FrameCount = len(report.Frames)
	report.Markers = len(s.markers.Markers())
	report.Stages = s.progress.Stages()
	report.AvatarWrite = s.avatar.Writes()

	if !s.transfer.IsAvailable() {
		cause := &minteractor.DeviceNotReadyError{Polls: report.FrameCount, Closed: true}
		return nil, merr.NewCommonError(minteractor.ErrorIDDeviceNotReady, cause, "%s", messages.Translate(s.lang, messages.MessageDeviceNotReady))
	}
	s.logger.Info("%s", messages.Translate(s.lang, messages.LogReplayDone, report.FrameCount, report.Retargeted))
	return report, nil
}

// frameReport はフレーム結果とアバターの現在値から出力を作る。
func (s *session) frameReport(frame int, result minteractor.FrameResult) frameReport {
	current := s.avatar.Pose()
	fr := frameReport{
		Frame:        frame,
		Skipped:      result.Skipped,
		BonesUpdated: result.BonesUpdated,
		Retargeted:   result.Retargeted,
		WristsMoved:  result.WristsMoved,
		BodyPosition: current.BodyPosition.Slice(),
	}
	for _, side := range humanoid.Sides {
		lower := humanoid.FingerMuscleIndex(side, humanoid.Thumb, humanoid.Stretched1)
		fr.Hands = append(fr.Hands, handReport{
			Side:    side.String(),
			Updated: result.HandUpdatedFor(side),
			Muscles: append([]float64(nil), current.Muscles[lower:lower+humanoid.FingerMusclesPerHand]...),
		})
	}
	for _, wrist := range s.transfer.WristPlacer().WristPoses() {
		fr.Wrists = append(fr.Wrists, wristReport{
			Side:     wrist.Side.String(),
			State:    wrist.State.String(),
			Position: wrist.World.Position.Slice(),
			Rotation: wrist.World.Rotation.Slice(),
		})
	}
	return fr
}

// writeText は再生結果を1フレーム数行で出力する。
func (r *replayReport) writeText(w io.Writer) error {
	fmt.Fprintf(w, "capture=%s frames=%d ready_frame=%d retargeted=%d markers=%d\n",
		r.Capture, r.FrameCount, r.ReadyFrame, r.Retargeted, r.Markers)
	for _, frame := range r.Frames {
		fmt.Fprintf(w, "[%d] skipped=%t bones=%d retargeted=%t wrists=%d body=%s\n",
			frame.Frame, frame.Skipped, frame.BonesUpdated, frame.Retargeted, frame.WristsMoved, formatFloats(frame.BodyPosition))
		for _, wrist := range frame.Wrists {
			fmt.Fprintf(w, "  wrist %-5s %-15s pos=%s rot=%s\n",
				wrist.Side, wrist.State, formatFloats(wrist.Position), formatFloats(wrist.Rotation))
		}
		for _, hand := range frame.Hands {
			fmt.Fprintf(w, "  hand  %-5s updated=%t muscles=%s\n", hand.Side, hand.Updated, formatFloats(hand.Muscles))
		}
	}
	return nil
}
