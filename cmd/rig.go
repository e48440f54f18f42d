// 指示: miu200521358
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/miu200521358/mu_handpose_transfer/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/skeleton"
)

// rigOptions は rig コマンドのフラグを保持する。
type rigOptions struct {
	*rootOptions
	CapturePath string
}

// rigReport は合成リグの出力を表す。
type rigReport struct {
	Capture string               `json:"capture" yaml:"capture"`
	Bones   int                  `json:"bones" yaml:"bones"`
	Grafts  []graftReport        `json:"grafts" yaml:"grafts"`
	Rig     skeleton.RigDocument `json:"rig" yaml:"rig"`
}

// graftReport は片手分の移植結果を表す。
type graftReport struct {
	Side    string   `json:"side" yaml:"side"`
	Grafted int      `json:"grafted" yaml:"grafted"`
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// newRigCommand は rig コマンドを生成する。
func newRigCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &rigOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "rig",
		Short:   messages.Translate(helpLang, messages.CommandRigShort),
		Example: `  mu_handpose rig --capture hands.yaml --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runRig(cmd.Context(), opts.rootOptions, opts.CapturePath)
			if err != nil {
				return err
			}
			return writeReport(opts.out, opts.Format, report, report.writeText)
		},
	}
	cmd.Flags().StringVar(&opts.CapturePath, "capture", "", messages.Translate(helpLang, messages.FlagCapture))
	return cmd
}

// runRig はキャプチャのバインドポーズから合成リグを組み立てる。デバイス準備状態は見ない。
func runRig(ctx context.Context, opts *rootOptions, capturePath string) (report *rigReport, err error) {
	s, err := openSession(ctx, opts, sessionRequest{CapturePath: capturePath})
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := s.Close(ctx); err == nil {
			err = closeErr
		}
	}()

	if err := s.transfer.Initialize(ctx); err != nil {
		return nil, err
	}
	s.logSkippedBones()

	report = &rigReport{
		Capture: s.capture.Name,
		Bones:   s.transfer.Skeleton().Len(),
		Rig:     s.transfer.RigDescription().Document(),
	}
	for _, graft := range s.transfer.GraftReports() {
		entry := graftReport{Side: graft.Side.String(), Grafted: len(graft.Grafted)}
		for _, skipped := range graft.Skipped {
			entry.Skipped = append(entry.Skipped, skipped.Bone.String())
		}
		report.Grafts = append(report.Grafts, entry)
	}
	return report, nil
}

// writeText はリグのボーン一覧を出力する。
func (r *rigReport) writeText(w io.Writer) error {
	fmt.Fprintf(w, "capture=%s rig=%s bones=%d\n", r.Capture, r.Rig.ID, r.Bones)
	for _, graft := range r.Grafts {
		fmt.Fprintf(w, "graft %-5s grafted=%d skipped=%d\n", graft.Side, graft.Grafted, len(graft.Skipped))
	}
	for _, bone := range r.Rig.SkeletonBones {
		fmt.Fprintf(w, "  %-24s pos=%s rot=%s\n", bone.Name, formatFloats(bone.Position), formatFloats(bone.Rotation))
	}
	return nil
}
