// 指示: miu200521358
package avatar

import "github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"

// fingerMuscleLimit は指マッスル1.0に相当する角度(度)を表す。
type fingerMuscleLimit struct {
	Stretch float64
	Spread  float64
}

// fingerMuscleLimits は指ごとの可動域。
var fingerMuscleLimits = map[humanoid.Finger]fingerMuscleLimit{
	humanoid.Thumb:  {Stretch: 40, Spread: 25},
	humanoid.Index:  {Stretch: 80, Spread: 20},
	humanoid.Middle: {Stretch: 80, Spread: 7.5},
	humanoid.Ring:   {Stretch: 80, Spread: 7.5},
	humanoid.Little: {Stretch: 80, Spread: 20},
}

// fingerSegment は指ボーン1本分のマッスル割り当てを表す。
type fingerSegment struct {
	Bone    humanoid.BoneId
	Finger  humanoid.Finger
	Stretch humanoid.FingerMuscleKind
	// HasSpread は付け根だけが開きを持つことを示す。
	HasSpread bool
}

// fingerSegments は左右の指ボーンとマッスルの割り当てを返す。
func fingerSegments(side humanoid.Side) []fingerSegment {
	slots := humanoid.HandBoneSlots(side)
	segments := make([]fingerSegment, 0, len(slots))
	kinds := [3]humanoid.FingerMuscleKind{humanoid.Stretched1, humanoid.Stretched2, humanoid.Stretched3}
	for i, slot := range slots {
		segments = append(segments, fingerSegment{
			Bone:      slot.Bone,
			Finger:    humanoid.Fingers[i/3],
			Stretch:   kinds[i%3],
			HasSpread: i%3 == 0,
		})
	}
	return segments
}
