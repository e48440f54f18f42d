// 指示: miu200521358
package humanoid

import "fmt"

const (
	// MuscleCount はマッスル値の総数。
	MuscleCount = 95
	// HandMuscleLower は手指マッスル範囲の先頭(含む)。
	HandMuscleLower = 55
	// HandMuscleUpper は手指マッスル範囲の末尾(含まない)。
	HandMuscleUpper = 95
	// FingerMusclesPerHand は片手あたりの手指マッスル数。
	FingerMusclesPerHand = 20
	// musclesPerFinger は指1本あたりのマッスル数。
	musclesPerFinger = 4
)

// Finger は指の種類を表す。
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Little
)

// Fingers は指の並び順を保持する。
var Fingers = []Finger{Thumb, Index, Middle, Ring, Little}

// fingerNames は指の名称を保持する。
var fingerNames = [...]string{"Thumb", "Index", "Middle", "Ring", "Little"}

// String は指名を返す。
func (f Finger) String() string {
	if f < Thumb || f > Little {
		return fmt.Sprintf("Finger(%d)", int(f))
	}
	return fingerNames[f]
}

// FingerMuscleKind は指マッスルの自由度を表す。
type FingerMuscleKind int

const (
	// Stretched1 は付け根関節の曲げ。
	Stretched1 FingerMuscleKind = iota
	// Spread は付け根関節の開き。
	Spread
	// Stretched2 は中間関節の曲げ。
	Stretched2
	// Stretched3 は先端関節の曲げ。
	Stretched3
)

// FingerMuscleIndex は指マッスルのチャンネル番号を返す。
func FingerMuscleIndex(side Side, finger Finger, kind FingerMuscleKind) int {
	return HandMuscleLower + int(side)*FingerMusclesPerHand + int(finger)*musclesPerFinger + int(kind)
}

// bodyMuscleNames は体幹・四肢のマッスル名(0..54)を保持する。
var bodyMuscleNames = [...]string{
	"Spine Front-Back", "Spine Left-Right", "Spine Twist Left-Right",
	"Chest Front-Back", "Chest Left-Right", "Chest Twist Left-Right",
	"UpperChest Front-Back", "UpperChest Left-Right", "UpperChest Twist Left-Right",
	"Neck Nod Down-Up", "Neck Tilt Left-Right", "Neck Turn Left-Right",
	"Head Nod Down-Up", "Head Tilt Left-Right", "Head Turn Left-Right",
	"Left Eye Down-Up", "Left Eye In-Out", "Right Eye Down-Up", "Right Eye In-Out",
	"Jaw Close", "Jaw Left-Right",
	"Left Upper Leg Front-Back", "Left Upper Leg In-Out", "Left Upper Leg Twist In-Out",
	"Left Lower Leg Stretch", "Left Lower Leg Twist In-Out",
	"Left Foot Up-Down", "Left Foot Twist In-Out", "Left Toes Up-Down",
	"Right Upper Leg Front-Back", "Right Upper Leg In-Out", "Right Upper Leg Twist In-Out",
	"Right Lower Leg Stretch", "Right Lower Leg Twist In-Out",
	"Right Foot Up-Down", "Right Foot Twist In-Out", "Right Toes Up-Down",
	"Left Shoulder Down-Up", "Left Shoulder Front-Back",
	"Left Arm Down-Up", "Left Arm Front-Back", "Left Arm Twist In-Out",
	"Left Forearm Stretch", "Left Forearm Twist In-Out",
	"Left Hand Down-Up", "Left Hand In-Out",
	"Right Shoulder Down-Up", "Right Shoulder Front-Back",
	"Right Arm Down-Up", "Right Arm Front-Back", "Right Arm Twist In-Out",
	"Right Forearm Stretch", "Right Forearm Twist In-Out",
	"Right Hand Down-Up", "Right Hand In-Out",
}

// muscleNames は全マッスル名を保持する。
var muscleNames = buildMuscleNames()

// MuscleName はチャンネル番号に対応するマッスル名を返す。
func MuscleName(index int) string {
	if index < 0 || index >= MuscleCount {
		return ""
	}
	return muscleNames[index]
}

// IsHandMuscle は手指マッスルか判定する。
func IsHandMuscle(index int) bool {
	return index >= HandMuscleLower && index < HandMuscleUpper
}

// buildMuscleNames はマッスル名一覧を構築する。
func buildMuscleNames() [MuscleCount]string {
	var names [MuscleCount]string
	copy(names[:], bodyMuscleNames[:])
	kindNames := [musclesPerFinger]string{"1 Stretched", "Spread", "2 Stretched", "3 Stretched"}
	for _, side := range Sides {
		prefix := "LeftHand"
		if side == Right {
			prefix = "RightHand"
		}
		for _, finger := range Fingers {
			for kind, kindName := range kindNames {
				index := FingerMuscleIndex(side, finger, FingerMuscleKind(kind))
				names[index] = fmt.Sprintf("%s.%s.%s", prefix, finger, kindName)
			}
		}
	}
	return names
}
