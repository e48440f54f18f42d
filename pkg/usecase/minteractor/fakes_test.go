// 指示: miu200521358
package minteractor

import (
	"errors"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/pose"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/scene"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/skeleton"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

type fakeHandSource struct {
	ready      [2]bool
	tracked    [2]bool
	jointCount [2]int
	parents    [2][humanoid.VendorBoneCount]int
	bind       [2][humanoid.VendorBoneCount]mmath.Transform
	live       [2][humanoid.VendorBoneCount]mmath.Transform
	readyAfter int
	readyCalls int
}

// newFakeHandSource は全関節を持つ準備済み・追跡中の入力を生成する。
func newFakeHandSource() *fakeHandSource {
	source := &fakeHandSource{
		ready:   [2]bool{true, true},
		tracked: [2]bool{true, true},
	}
	for _, side := range humanoid.Sides {
		source.jointCount[side] = humanoid.VendorBoneCount
		source.parents[side] = humanoid.DefaultVendorParentIndex
		for i := 0; i < humanoid.VendorBoneCount; i++ {
			f := float64(i)
			source.bind[side][i] = mmath.NewTransformFrom(
				mmath.NewVec3(0.01*(f+1), 0.002*f, -0.001*f),
				mmath.NewQuaternionFromDegrees(f, 2*f, -f),
			)
			source.live[side][i] = source.bind[side][i]
		}
	}
	return source
}

func (s *fakeHandSource) IsReady(side humanoid.Side) bool {
	if s.readyAfter > 0 {
		if side == humanoid.Left {
			s.readyCalls++
		}
		return s.readyCalls >= s.readyAfter
	}
	return s.ready[side]
}

func (s *fakeHandSource) IsTracked(side humanoid.Side) bool { return s.tracked[side] }

func (s *fakeHandSource) JointCount(side humanoid.Side) int { return s.jointCount[side] }

func (s *fakeHandSource) LocalTransform(side humanoid.Side, joint humanoid.VendorBoneId) mmath.Transform {
	return s.live[side][joint]
}

func (s *fakeHandSource) BindLocalTransform(side humanoid.Side, joint humanoid.VendorBoneId) mmath.Transform {
	return s.bind[side][joint]
}

func (s *fakeHandSource) ParentJointIndex(side humanoid.Side, joint humanoid.VendorBoneId) int {
	return s.parents[side][joint]
}

type fakePoseHandler struct {
	pose     *pose.Pose
	getCalls int
	setCalls int
}

func newFakePoseHandler(fill float64) *fakePoseHandler {
	p := pose.NewPose()
	p.Fill(fill)
	return &fakePoseHandler{pose: p}
}

func (h *fakePoseHandler) GetPose() *pose.Pose {
	h.getCalls++
	return h.pose.Clone()
}

func (h *fakePoseHandler) SetPose(p *pose.Pose) {
	h.setCalls++
	h.pose = p.Clone()
}

type fakePoseHandlerFactory struct {
	handler *fakePoseHandler
	err     error
	rig     *skeleton.RigDescription
	sk      *skeleton.Skeleton
}

func (f *fakePoseHandlerFactory) NewPoseHandler(rig *skeleton.RigDescription, sk *skeleton.Skeleton) (moutput.IPoseHandler, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.rig = rig
	f.sk = sk
	return f.handler, nil
}

type fakeAvatar struct {
	handler *fakePoseHandler
	err     error
	wrists  map[humanoid.BoneId]*scene.TransformNode
}

func newFakeAvatar() *fakeAvatar {
	root := scene.NewTransformNode("avatar", nil)
	root.SetLocalPose(mmath.NewVec3(0, 0, 1), mmath.NewQuaternion())
	return &fakeAvatar{
		handler: newFakePoseHandler(-7),
		wrists: map[humanoid.BoneId]*scene.TransformNode{
			humanoid.LeftHand:  scene.NewTransformNode("LeftHand", root),
			humanoid.RightHand: scene.NewTransformNode("RightHand", root),
		},
	}
}

func (a *fakeAvatar) NewPoseHandler() (moutput.IPoseHandler, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.handler, nil
}

func (a *fakeAvatar) ResolveBoneTransform(bone humanoid.BoneId) moutput.ITransformNode {
	node, ok := a.wrists[bone]
	if !ok {
		return nil
	}
	return node
}

type fakeMarkerFactory struct {
	markers []moutput.BoneMarker
}

func (f *fakeMarkerFactory) AttachMarker(marker moutput.BoneMarker) {
	f.markers = append(f.markers, marker)
}

type fakeProgressReporter struct {
	events []TransferProgressEvent
}

func (r *fakeProgressReporter) ReportTransferProgress(event TransferProgressEvent) {
	r.events = append(r.events, event)
}

var errFakeHandler = errors.New("pose handler unavailable")
