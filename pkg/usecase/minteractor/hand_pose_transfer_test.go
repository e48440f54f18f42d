// 指示: miu200521358
package minteractor

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/scene"
)

type transferFixture struct {
	transfer *HandPoseTransfer
	source   *fakeHandSource
	handler  *fakePoseHandler
	factory  *fakePoseHandlerFactory
	markers  *fakeMarkerFactory
	progress *fakeProgressReporter
	recorder *tracetest.SpanRecorder
	anchors  [2]*scene.TransformNode
}

func newTransferFixture(t *testing.T, config HandPoseTransferConfig) *transferFixture {
	t.Helper()
	source := newFakeHandSource()
	handler := newFakePoseHandler(0)
	for i := range handler.pose.Muscles {
		handler.pose.Muscles[i] = float64(i) / 100
	}
	factory := &fakePoseHandlerFactory{handler: handler}
	markers := &fakeMarkerFactory{}
	progress := &fakeProgressReporter{}
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	anchors := [2]*scene.TransformNode{
		scene.NewTransformNode("LeftHandAnchor", nil),
		scene.NewTransformNode("RightHandAnchor", nil),
	}
	transfer := NewHandPoseTransfer(config, HandPoseTransferDeps{
		Source:             source,
		PoseHandlerFactory: factory,
		WristPlacer:        NewWristPlacer(NewWristPresets(), source, anchors[0], anchors[1]),
		MarkerFactory:      markers,
		ProgressReporter:   progress,
		TracerProvider:     provider,
	})
	return &transferFixture{
		transfer: transfer,
		source:   source,
		handler:  handler,
		factory:  factory,
		markers:  markers,
		progress: progress,
		recorder: recorder,
		anchors:  anchors,
	}
}

func TestHandPoseTransferTickBeforeInitializeIsSkipped(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())

	result, err := fixture.transfer.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if !result.Skipped || result.Retargeted {
		t.Fatalf("tick before initialize should be skipped: %+v", result)
	}
	if result.WristStateFor(humanoid.Left) != WristStateHandTracked {
		t.Fatalf("wrist placement should run before initialize")
	}
	if fixture.transfer.IsAvailable() || fixture.transfer.Skeleton() != nil {
		t.Fatalf("transfer should not be available")
	}
}

func TestHandPoseTransferInitializeBuildsRig(t *testing.T) {
	config := NewHandPoseTransferConfig()
	config.VisualizeBones = true
	fixture := newTransferFixture(t, config)

	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if !fixture.transfer.IsAvailable() {
		t.Fatalf("transfer should be available")
	}
	sk := fixture.transfer.Skeleton()
	if sk.Len() != 21+2*humanoid.HandSlotCount {
		t.Fatalf("bone count mismatch: got=%d", sk.Len())
	}
	if fixture.factory.rig != fixture.transfer.RigDescription() || fixture.factory.sk != sk {
		t.Fatalf("pose handler factory should receive the built rig")
	}
	if len(fixture.markers.markers) != sk.Len() {
		t.Fatalf("marker count mismatch: got=%d want=%d", len(fixture.markers.markers), sk.Len())
	}
	if fixture.markers.markers[0].Scale != DefaultBoneAxisScale {
		t.Fatalf("marker scale mismatch: got=%v", fixture.markers.markers[0].Scale)
	}
	if len(fixture.transfer.GraftReports()) != 2 {
		t.Fatalf("graft report count mismatch")
	}

	last := fixture.progress.events[len(fixture.progress.events)-1]
	if last.Type != TransferProgressEventTypeAvailable {
		t.Fatalf("last progress event mismatch: got=%s", last.Type)
	}

	rig := fixture.transfer.RigDescription()
	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("second initialize failed: %v", err)
	}
	if fixture.transfer.RigDescription() != rig {
		t.Fatalf("second initialize should keep the rig")
	}
}

func TestHandPoseTransferInitializeWithoutMarkersByDefault(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if len(fixture.markers.markers) != 0 {
		t.Fatalf("markers should not be attached: got=%d", len(fixture.markers.markers))
	}
}

func TestHandPoseTransferInitializeFailsWhenFactoryFails(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	fixture.factory.err = errFakeHandler

	if err := fixture.transfer.Initialize(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if fixture.transfer.IsAvailable() {
		t.Fatalf("transfer should stay unavailable")
	}

	fixture.factory.err = nil
	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
}

func TestHandPoseTransferTickRetargetsAndFollowsWrists(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	avatar := newFakeAvatar()
	avatar.handler.pose.BodyPosition = mmath.NewVec3(0, 1, 0)
	fixture.transfer.SetTargetAvatar(avatar)

	fixture.source.tracked[humanoid.Right] = false
	fixture.source.live[humanoid.Left][humanoid.HandIndex1] = mmath.NewTransformFrom(
		mmath.ZeroVec3(),
		mmath.NewQuaternionFromDegrees(0, 0, 30),
	)

	result, err := fixture.transfer.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if !result.HandUpdatedFor(humanoid.Left) || result.HandUpdatedFor(humanoid.Right) {
		t.Fatalf("hand update flags mismatch: %+v", result)
	}
	if result.BonesUpdated != humanoid.HandSlotCount {
		t.Fatalf("bones updated mismatch: got=%d", result.BonesUpdated)
	}
	if result.WristStateFor(humanoid.Right) != WristStateControllerHeld {
		t.Fatalf("untracked right hand should be controller held")
	}
	if !result.Retargeted || result.WristsMoved != 2 {
		t.Fatalf("retarget result mismatch: %+v", result)
	}

	index := fixture.transfer.Skeleton().Get(humanoid.LeftIndexProximal)
	if !index.LocalRotation().NearEquals(mmath.NewQuaternionFromDegrees(0, 0, 30), 1e-12) {
		t.Fatalf("left index rotation mismatch: got=%v", index.LocalRotation())
	}

	got := avatar.handler.pose
	for i, value := range got.Muscles {
		want := -7.0
		if i >= humanoid.HandMuscleLower {
			want = float64(i) / 100
		}
		if value != want {
			t.Fatalf("muscle mismatch: index=%d got=%v want=%v", i, value, want)
		}
	}
	if !got.BodyPosition.NearEquals(mmath.NewVec3(0, 0.9, 0), 1e-12) {
		t.Fatalf("body position mismatch: got=%v", got.BodyPosition)
	}

	leftWrist := avatar.wrists[humanoid.LeftHand]
	if !leftWrist.WorldPose().NearEquals(fixture.anchors[humanoid.Left].WorldPose(), 1e-9) {
		t.Fatalf("left wrist should follow anchor: got=%v want=%v", leftWrist.WorldPose(), fixture.anchors[humanoid.Left].WorldPose())
	}
}

func TestHandPoseTransferTickWithoutTargetSkipsRetarget(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	result, err := fixture.transfer.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if result.Retargeted || result.WristsMoved != 0 {
		t.Fatalf("retarget should be skipped without target: %+v", result)
	}
	if result.BonesUpdated != 2*humanoid.HandSlotCount {
		t.Fatalf("bones updated mismatch: got=%d", result.BonesUpdated)
	}
}

func TestHandPoseTransferAvatarWithoutPoseHandlerStillMovesWrists(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	avatar := newFakeAvatar()
	avatar.err = errFakeHandler
	delete(avatar.wrists, humanoid.RightHand)
	fixture.transfer.SetTargetAvatar(avatar)

	if fixture.transfer.HasTargetPoseHandler() {
		t.Fatalf("target pose handler should be cleared")
	}
	result, err := fixture.transfer.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if result.Retargeted || result.WristsMoved != 1 {
		t.Fatalf("result mismatch: %+v", result)
	}

	fixture.transfer.SetTargetAvatar(nil)
	result, err = fixture.transfer.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if result.WristsMoved != 0 {
		t.Fatalf("cleared avatar should not move wrists")
	}
}

func TestHandPoseTransferTargetWithoutPoseStillMovesWrists(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	avatar := newFakeAvatar()
	avatar.handler.pose = nil
	fixture.transfer.SetTargetAvatar(avatar)

	result, err := fixture.transfer.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if result.Retargeted {
		t.Fatalf("retarget should be skipped without target pose")
	}
	if result.WristsMoved != 2 {
		t.Fatalf("wrists moved mismatch: got=%d want=2", result.WristsMoved)
	}
	if avatar.handler.setCalls != 0 {
		t.Fatalf("target pose should not be written: setCalls=%d", avatar.handler.setCalls)
	}
}

func TestHandPoseTransferShortTargetPoseIsSkipped(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	avatar := newFakeAvatar()
	avatar.handler.pose.Muscles = avatar.handler.pose.Muscles[:humanoid.HandMuscleLower]
	fixture.transfer.SetTargetAvatar(avatar)

	result, err := fixture.transfer.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if result.Retargeted || result.WristsMoved != 2 {
		t.Fatalf("result mismatch: %+v", result)
	}
}

func TestHandPoseTransferInitializeWithoutSourceIsDeviceNotReady(t *testing.T) {
	transfer := NewHandPoseTransfer(NewHandPoseTransferConfig(), HandPoseTransferDeps{
		PoseHandlerFactory: &fakePoseHandlerFactory{handler: newFakePoseHandler(0)},
	})
	err := transfer.Initialize(context.Background())
	if !IsDeviceNotReadyError(err) {
		t.Fatalf("expected device not ready error: got=%v", err)
	}
	if transfer.IsAvailable() {
		t.Fatalf("transfer should not be available without source")
	}
}

func TestHandPoseTransferTryInitializeWaitsForDevice(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	fixture.source.readyAfter = 2

	ready, err := fixture.transfer.TryInitialize(context.Background())
	if err != nil || ready {
		t.Fatalf("first poll should not initialize: ready=%v err=%v", ready, err)
	}
	ready, err = fixture.transfer.TryInitialize(context.Background())
	if err != nil || !ready {
		t.Fatalf("second poll should initialize: ready=%v err=%v", ready, err)
	}
	if fixture.progress.events[0].Type != TransferProgressEventTypeDeviceReady {
		t.Fatalf("first progress event mismatch: got=%s", fixture.progress.events[0].Type)
	}
}

func TestHandPoseTransferStartWaitsOnTicks(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	fixture.source.readyAfter = 3
	ticks := make(chan struct{}, 4)
	for i := 0; i < 4; i++ {
		ticks <- struct{}{}
	}

	if err := fixture.transfer.Start(context.Background(), ticks); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !fixture.transfer.IsAvailable() {
		t.Fatalf("transfer should be available after start")
	}
}

func TestHandPoseTransferRecordsSpans(t *testing.T) {
	fixture := newTransferFixture(t, NewHandPoseTransferConfig())
	if err := fixture.transfer.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := fixture.transfer.Tick(context.Background()); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
	}

	names := map[string]int{}
	for _, span := range fixture.recorder.Ended() {
		names[span.Name()]++
	}
	if names["HandPoseTransfer.Initialize"] != 1 {
		t.Fatalf("initialize span count mismatch: got=%d", names["HandPoseTransfer.Initialize"])
	}
	if names["HandPoseTransfer.Tick"] != 3 {
		t.Fatalf("tick span count mismatch: got=%d", names["HandPoseTransfer.Tick"])
	}
}
