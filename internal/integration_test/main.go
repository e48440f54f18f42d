// 指示: miu200521358
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_handpose_transfer/pkg/adapter/avatar"
	"github.com/miu200521358/mu_handpose_transfer/pkg/adapter/io_capture"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/scene"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/minteractor"
)

const (
	batchOutputDirMode = 0o755
	scenarioFrameCount = 48
)

// scenario は合成キャプチャ1件分の条件を表す。
type scenario struct {
	Name        string
	JointCount  int
	ReadyFrame  int
	ExpectReady bool
}

var targetScenarios = []scenario{
	{Name: "full_hands", JointCount: humanoid.VendorBoneCount, ReadyFrame: 0, ExpectReady: true},
	{Name: "no_tips", JointCount: int(humanoid.HandThumbTip), ReadyFrame: 0, ExpectReady: true},
	{Name: "no_pinky", JointCount: int(humanoid.HandPinky1), ReadyFrame: 0, ExpectReady: true},
	{Name: "late_ready", JointCount: humanoid.VendorBoneCount, ReadyFrame: 12, ExpectReady: true},
	{Name: "never_ready", JointCount: humanoid.VendorBoneCount, ReadyFrame: scenarioFrameCount, ExpectReady: false},
}

// batchConfig はバッチ再生の実行設定を表す。
type batchConfig struct {
	OutputRoot string
	DryRun     bool
	FailFast   bool
}

// replayEntry は1シナリオ分の入出力情報を表す。
type replayEntry struct {
	Index       int
	Scenario    scenario
	CaseDir     string
	CapturePath string
	RigPath     string
}

// replayResult は1シナリオ分の再生結果を表す。
type replayResult struct {
	Entry        replayEntry
	Status       string
	Duration     time.Duration
	Err          error
	Retargeted   int
	MaxStretch   float64
	ProgressInfo string
}

// transferProgressCollector は初期化の進捗イベントを収集する。
type transferProgressCollector struct {
	eventCounts map[minteractor.TransferProgressEventType]int
	boneMax     int
	skipTotal   int
}

// main は合成キャプチャでハンドポーズ転送を一括検証する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括再生を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries := buildReplayEntries(config.OutputRoot, targetScenarios)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "再生対象シナリオがありません")
		return 2
	}

	results := executeBatchReplay(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultOutputRoot, err := resolveDefaultOutputRoot()
	if err != nil {
		return batchConfig{}, err
	}
	outputRoot := flag.String("output-root", defaultOutputRoot, "再生結果の出力ルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "再生せず、出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	return batchConfig{
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// resolveDefaultOutputRoot はスクリプト配置ディレクトリ基準の既定出力先を返す。
func resolveDefaultOutputRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	return filepath.Join(filepath.Dir(currentFilePath), "output"), nil
}

// buildReplayEntries はシナリオ一覧から再生エントリを生成する。
func buildReplayEntries(outputRoot string, scenarios []scenario) []replayEntry {
	entries := make([]replayEntry, 0, len(scenarios))
	for i, sc := range scenarios {
		caseDir := filepath.Join(outputRoot, fmt.Sprintf("%03d_%s", i+1, sc.Name))
		entries = append(entries, replayEntry{
			Index:       i + 1,
			Scenario:    sc,
			CaseDir:     caseDir,
			CapturePath: filepath.Join(caseDir, sc.Name+".yaml"),
			RigPath:     filepath.Join(caseDir, "rig.yaml"),
		})
	}
	return entries
}

// executeBatchReplay は全シナリオを順次再生する。
func executeBatchReplay(config batchConfig, entries []replayEntry) []replayResult {
	results := make([]replayResult, 0, len(entries))
	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 再生開始: scenario=%s\n", entry.Index, total, entry.Scenario.Name)
		result := replayScenario(config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 再生成功: scenario=%s retargeted=%d maxStretch=%.3f elapsed=%s\n",
				entry.Index, total, entry.Scenario.Name, result.Retargeted, result.MaxStretch, result.Duration.Round(time.Millisecond))
			if result.ProgressInfo != "" {
				fmt.Printf("[%d/%d] 初期化進捗: %s\n", entry.Index, total, result.ProgressInfo)
			}
		case "not_ready":
			fmt.Printf("[%d/%d] 想定どおり未初期化: scenario=%s reason=%v\n", entry.Index, total, entry.Scenario.Name, result.Err)
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: scenario=%s capture=%s\n", entry.Index, total, entry.Scenario.Name, entry.CapturePath)
		default:
			fmt.Printf("[%d/%d] 再生失敗: scenario=%s reason=%v\n", entry.Index, total, entry.Scenario.Name, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// replayScenario は1シナリオ分のキャプチャを書き出し、読み戻して再生する。
func replayScenario(config batchConfig, entry replayEntry) replayResult {
	result := replayResult{Entry: entry, Status: "failed"}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(entry.CaseDir, batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	repository := io_capture.NewCaptureRepository()
	if err := repository.Save(entry.CapturePath, buildScenarioCapture(entry.Scenario)); err != nil {
		result.Err = fmt.Errorf("キャプチャ保存に失敗しました: %w", err)
		return result
	}
	capture, err := repository.Load(entry.CapturePath)
	if err != nil {
		result.Err = fmt.Errorf("キャプチャ読込に失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	collector := newTransferProgressCollector()
	source := io_capture.NewCaptureSource(capture)
	root := scene.NewTransformNode("TrackingSpace", nil)
	placer := minteractor.NewWristPlacer(
		minteractor.NewWristPresets(),
		source,
		scene.NewTransformNode("leftWristReference", root),
		scene.NewTransformNode("rightWristReference", root),
	)
	target := avatar.NewMemoryAvatar(capture.Name, nil)
	transfer := minteractor.NewHandPoseTransfer(minteractor.NewHandPoseTransferConfig(), minteractor.HandPoseTransferDeps{
		Source:             source,
		PoseHandlerFactory: avatar.NewRigPoseHandlerFactory(),
		WristPlacer:        placer,
		ProgressReporter:   collector,
	})

	ctx := context.Background()
	for {
		if !transfer.IsAvailable() {
			ok, err := transfer.TryInitialize(ctx)
			if err != nil {
				result.Err = fmt.Errorf("初期化に失敗しました: %w", err)
				return result
			}
			if ok {
				transfer.SetTargetAvatar(target)
			}
		}
		frame, err := transfer.Tick(ctx)
		if err != nil {
			result.Err = fmt.Errorf("フレーム処理に失敗しました: %w", err)
			return result
		}
		if frame.Retargeted {
			result.Retargeted++
			result.MaxStretch = math.Max(result.MaxStretch, maxHandMuscle(target))
		}
		if !source.Advance() {
			break
		}
	}
	result.Duration = time.Since(startedAt)
	result.ProgressInfo = collector.Summary()

	if !transfer.IsAvailable() {
		if entry.Scenario.ExpectReady {
			result.Err = errors.New("デバイスが初期化完了しませんでした")
			return result
		}
		result.Status = "not_ready"
		result.Err = &minteractor.DeviceNotReadyError{Polls: capture.FrameCount(), Closed: true}
		return result
	}
	if !entry.Scenario.ExpectReady {
		result.Err = errors.New("初期化されない想定のシナリオが初期化されました")
		return result
	}
	if err := writeRigDocument(entry.RigPath, transfer); err != nil {
		result.Err = err
		return result
	}
	result.Status = "succeeded"
	return result
}

// buildScenarioCapture は人差し指から小指を順に曲げ伸ばしする合成キャプチャを生成する。
func buildScenarioCapture(sc scenario) *io_capture.Capture {
	capture := &io_capture.Capture{Name: sc.Name}
	for _, side := range humanoid.Sides {
		track := io_capture.HandTrack{
			JointCount: sc.JointCount,
			Parents:    append([]int(nil), humanoid.DefaultVendorParentIndex[:sc.JointCount]...),
		}
		for joint := 0; joint < sc.JointCount; joint++ {
			position := mmath.NewVec3(0.02*float64(joint%4), 0, 0.03)
			track.BindPose = append(track.BindPose, mmath.NewTransformFrom(position, mmath.NewQuaternion()))
		}
		capture.Hands[side] = track
	}

	curled := []humanoid.VendorBoneId{humanoid.HandIndex1, humanoid.HandMiddle1, humanoid.HandRing1}
	for i := 0; i < scenarioFrameCount; i++ {
		angle := 60 * math.Sin(float64(i)*math.Pi/float64(scenarioFrameCount))
		var frame [2]io_capture.HandFrame
		for _, side := range humanoid.Sides {
			joints := append([]mmath.Transform(nil), capture.Hands[side].BindPose...)
			for _, joint := range curled {
				if int(joint) < len(joints) {
					joints[joint].Rotation = mmath.NewQuaternionFromDegrees(0, 0, angle)
				}
			}
			frame[side] = io_capture.HandFrame{
				Ready:   i >= sc.ReadyFrame,
				Tracked: i >= sc.ReadyFrame && (i/8)%2 == int(side),
				Joints:  joints,
			}
		}
		capture.Frames = append(capture.Frames, frame)
	}
	return capture
}

// maxHandMuscle はアバターの手指マッスルの最大絶対値を返す。
func maxHandMuscle(target *avatar.MemoryAvatar) float64 {
	maxValue := 0.0
	for _, value := range target.Pose().Muscles[humanoid.HandMuscleLower:humanoid.HandMuscleUpper] {
		maxValue = math.Max(maxValue, math.Abs(value))
	}
	return maxValue
}

// writeRigDocument は合成リグの記述をYAMLで保存する。
func writeRigDocument(path string, transfer *minteractor.HandPoseTransfer) error {
	b, err := yaml.Marshal(transfer.RigDescription().Document())
	if err != nil {
		return fmt.Errorf("リグ記述の生成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("リグ記述の保存に失敗しました: %w", err)
	}
	return nil
}

// printBatchSummary は再生結果の集計を標準出力へ表示する。
func printBatchSummary(results []replayResult) {
	succeeded := 0
	failed := 0
	notReady := 0
	dryRun := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
		case "not_ready":
			notReady++
		case "dry_run":
			dryRun++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチ再生サマリ: total=%d succeeded=%d failed=%d not_ready=%d dry_run=%d\n",
		len(results),
		succeeded,
		failed,
		notReady,
		dryRun,
	)
}

// newTransferProgressCollector は進捗収集器を生成する。
func newTransferProgressCollector() *transferProgressCollector {
	return &transferProgressCollector{
		eventCounts: map[minteractor.TransferProgressEventType]int{},
	}
}

// ReportTransferProgress は初期化の進捗イベントを収集する。
func (collector *transferProgressCollector) ReportTransferProgress(event minteractor.TransferProgressEvent) {
	if collector == nil {
		return
	}
	if collector.eventCounts == nil {
		collector.eventCounts = map[minteractor.TransferProgressEventType]int{}
	}
	collector.eventCounts[event.Type]++
	if event.BoneCount > collector.boneMax {
		collector.boneMax = event.BoneCount
	}
	collector.skipTotal += event.SkippedCount
}

// Summary は収集した進捗の要約文字列を返す。
func (collector *transferProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for stageType := range collector.eventCounts {
		types = append(types, string(stageType))
	}
	sort.Strings(types)
	return fmt.Sprintf(
		"events=%d boneMax=%d skipped=%d stages=%s",
		len(collector.eventCounts),
		collector.boneMax,
		collector.skipTotal,
		strings.Join(types, ","),
	)
}
