// 指示: miu200521358
package minteractor

import (
	"errors"
	"testing"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/pose"
)

func TestRetargetCopiesOnlyHandChannelsAndOffsetsBody(t *testing.T) {
	src := newFakePoseHandler(0)
	for i := range src.pose.Muscles {
		src.pose.Muscles[i] = float64(i) / 100
	}
	src.pose.BodyPosition = mmath.NewVec3(5, 5, 5)

	dst := newFakePoseHandler(-7)
	dst.pose.BodyPosition = mmath.NewVec3(1, 2, 3)
	dst.pose.BodyRotation = mmath.NewQuaternionFromDegrees(0, 90, 0)
	offset := mmath.NewVec3(0, -0.1, 0)

	if err := Retarget(src, dst, pose.DefaultHandChannelRange, offset); err != nil {
		t.Fatalf("retarget failed: %v", err)
	}

	for i, value := range dst.pose.Muscles {
		if i < humanoid.HandMuscleLower {
			if value != -7 {
				t.Fatalf("body channel changed: index=%d got=%v", i, value)
			}
			continue
		}
		if value != float64(i)/100 {
			t.Fatalf("hand channel mismatch: index=%d got=%v want=%v", i, value, float64(i)/100)
		}
	}
	wantBody := mmath.NewVec3(1, 2+(-0.1), 3)
	if !dst.pose.BodyPosition.Equals(wantBody) {
		t.Fatalf("body position mismatch: got=%v want=%v", dst.pose.BodyPosition, wantBody)
	}
	if !dst.pose.BodyRotation.NearEquals(mmath.NewQuaternionFromDegrees(0, 90, 0), 0) {
		t.Fatalf("body rotation should not change: got=%v", dst.pose.BodyRotation)
	}
	if dst.setCalls != 1 || src.setCalls != 0 {
		t.Fatalf("set calls mismatch: src=%d dst=%d", src.setCalls, dst.setCalls)
	}
	if src.pose.BodyPosition.X != 5 {
		t.Fatalf("source pose should not change")
	}
}

func TestRetargetRejectsInvalidRange(t *testing.T) {
	src := newFakePoseHandler(1)
	dst := newFakePoseHandler(0)
	for _, rng := range []pose.ChannelRange{
		{Lower: -1, Upper: 10},
		{Lower: 55, Upper: 96},
		{Lower: 60, Upper: 50},
	} {
		err := Retarget(src, dst, rng, mmath.ZeroVec3())
		var target *InvalidChannelRangeError
		if !errors.As(err, &target) {
			t.Fatalf("expected invalid range error: range=%s got=%v", rng, err)
		}
	}
	if dst.setCalls != 0 {
		t.Fatalf("invalid range should not write pose")
	}
}

func TestRetargetRequiresBothHandlers(t *testing.T) {
	handler := newFakePoseHandler(0)
	err := Retarget(nil, handler, pose.DefaultHandChannelRange, mmath.ZeroVec3())
	var missing *PoseHandlerMissingError
	if !errors.As(err, &missing) || missing.Role != "source" {
		t.Fatalf("expected missing source handler: got=%v", err)
	}
	err = Retarget(handler, nil, pose.DefaultHandChannelRange, mmath.ZeroVec3())
	if !errors.As(err, &missing) || missing.Role != "target" {
		t.Fatalf("expected missing target handler: got=%v", err)
	}
}

func TestRetargetRejectsShortTargetPose(t *testing.T) {
	src := newFakePoseHandler(1)
	dst := newFakePoseHandler(0)
	dst.pose.Muscles = dst.pose.Muscles[:60]

	err := Retarget(src, dst, pose.DefaultHandChannelRange, mmath.ZeroVec3())
	var target *InvalidChannelRangeError
	if !errors.As(err, &target) {
		t.Fatalf("expected invalid range error: got=%v", err)
	}
	if target.MuscleCount != 60 {
		t.Fatalf("muscle count mismatch: got=%d want=60", target.MuscleCount)
	}
	if dst.setCalls != 0 {
		t.Fatalf("short target should not be written")
	}
}
