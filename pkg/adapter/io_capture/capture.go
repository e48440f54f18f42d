// 指示: miu200521358
package io_capture

import (
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
)

// HandTrack は片手分のデバイス定義を表す。
type HandTrack struct {
	JointCount int
	Parents    []int
	BindPose   []mmath.Transform
}

// HandFrame は1フレーム分の片手入力を表す。
type HandFrame struct {
	Tracked bool
	Ready   bool
	Joints  []mmath.Transform
	Anchor  *mmath.Transform
}

// Capture は記録済みのハンドトラッキング入力を表す。
type Capture struct {
	Name   string
	Hands  [2]HandTrack
	Frames [][2]HandFrame
}

// FrameCount はフレーム数を返す。
func (c *Capture) FrameCount() int {
	return len(c.Frames)
}

// newCapture はYAML構造を検証して変換する。
func newCapture(doc *CaptureDocument) (*Capture, error) {
	if len(doc.Frames) == 0 {
		return nil, NewCaptureFormatError("framesが空です")
	}
	capture := &Capture{Name: doc.Name}
	for _, side := range humanoid.Sides {
		track, err := newHandTrack(side, doc.Hands.For(side))
		if err != nil {
			return nil, err
		}
		capture.Hands[side] = track
	}

	capture.Frames = make([][2]HandFrame, 0, len(doc.Frames))
	for index, frameDoc := range doc.Frames {
		var frame [2]HandFrame
		for _, side := range humanoid.Sides {
			handFrame, err := newHandFrame(capture.Hands[side], frameDoc.For(side))
			if err != nil {
				return nil, NewCaptureFormatError("frame=%d side=%s: %s", index, side, err.Error())
			}
			frame[side] = handFrame
		}
		capture.Frames = append(capture.Frames, frame)
	}
	return capture, nil
}

// For は指定側のデバイス定義を返す。
func (d HandsDocument) For(side humanoid.Side) HandDocument {
	if side == humanoid.Left {
		return d.Left
	}
	return d.Right
}

// For は指定側のフレーム入力を返す。
func (d FrameDocument) For(side humanoid.Side) HandFrameDocument {
	if side == humanoid.Left {
		return d.Left
	}
	return d.Right
}

// newHandTrack は片手分のデバイス定義を変換する。
func newHandTrack(side humanoid.Side, doc HandDocument) (HandTrack, error) {
	if doc.JointCount < 0 || doc.JointCount > humanoid.VendorBoneCount {
		return HandTrack{}, NewCaptureFormatError("joint_countが範囲外です: side=%s count=%d", side, doc.JointCount)
	}
	track := HandTrack{JointCount: doc.JointCount}

	if len(doc.Parents) == 0 {
		track.Parents = append([]int(nil), humanoid.DefaultVendorParentIndex[:doc.JointCount]...)
	} else {
		if len(doc.Parents) != doc.JointCount {
			return HandTrack{}, NewCaptureFormatError("parentsの要素数が不正です: side=%s got=%d want=%d", side, len(doc.Parents), doc.JointCount)
		}
		for joint, parent := range doc.Parents {
			if parent < -1 || parent >= doc.JointCount || parent == joint {
				return HandTrack{}, NewCaptureFormatError("親関節が不正です: side=%s joint=%d parent=%d", side, joint, parent)
			}
		}
		track.Parents = append([]int(nil), doc.Parents...)
	}

	joints, err := toTransforms(doc.BindPose, doc.JointCount)
	if err != nil {
		return HandTrack{}, NewCaptureFormatError("bind_poseが不正です: side=%s: %s", side, err.Error())
	}
	track.BindPose = joints
	return track, nil
}

// newHandFrame は1フレーム分の片手入力を変換する。
func newHandFrame(track HandTrack, doc HandFrameDocument) (HandFrame, error) {
	frame := HandFrame{Tracked: doc.Tracked, Ready: true}
	if doc.Ready != nil {
		frame.Ready = *doc.Ready
	}
	if len(doc.Joints) == 0 {
		frame.Joints = append([]mmath.Transform(nil), track.BindPose...)
	} else {
		joints, err := toTransforms(doc.Joints, track.JointCount)
		if err != nil {
			return HandFrame{}, err
		}
		frame.Joints = joints
	}
	if doc.Anchor != nil {
		anchor, err := doc.Anchor.toTransform()
		if err != nil {
			return HandFrame{}, err
		}
		frame.Anchor = &anchor
	}
	return frame, nil
}

// toTransforms は関節姿勢の列を変換する。
func toTransforms(docs []JointDocument, count int) ([]mmath.Transform, error) {
	if len(docs) != count {
		return nil, NewCaptureFormatError("関節数が不正です: got=%d want=%d", len(docs), count)
	}
	transforms := make([]mmath.Transform, 0, count)
	for _, doc := range docs {
		transform, err := doc.toTransform()
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, transform)
	}
	return transforms, nil
}

// Document はキャプチャをYAML構造へ戻す。
func (c *Capture) Document() *CaptureDocument {
	doc := &CaptureDocument{Name: c.Name}
	hands := [2]HandDocument{}
	for _, side := range humanoid.Sides {
		track := c.Hands[side]
		hand := HandDocument{
			JointCount: track.JointCount,
			Parents:    append([]int(nil), track.Parents...),
		}
		for _, joint := range track.BindPose {
			hand.BindPose = append(hand.BindPose, newJointDocument(joint))
		}
		hands[side] = hand
	}
	doc.Hands = HandsDocument{Left: hands[humanoid.Left], Right: hands[humanoid.Right]}

	for _, frame := range c.Frames {
		sides := [2]HandFrameDocument{}
		for _, side := range humanoid.Sides {
			handFrame := frame[side]
			ready := handFrame.Ready
			sideDoc := HandFrameDocument{Tracked: handFrame.Tracked, Ready: &ready}
			for _, joint := range handFrame.Joints {
				sideDoc.Joints = append(sideDoc.Joints, newJointDocument(joint))
			}
			if handFrame.Anchor != nil {
				anchor := newJointDocument(*handFrame.Anchor)
				sideDoc.Anchor = &anchor
			}
			sides[side] = sideDoc
		}
		doc.Frames = append(doc.Frames, FrameDocument{Left: sides[humanoid.Left], Right: sides[humanoid.Right]})
	}
	return doc
}
