// 指示: miu200521358
// Package humanoid は標準ヒューマノイドボーンとハンドトラッキング関節の対応表を提供する。
package humanoid

import "fmt"

// BoneId は標準ヒューマノイドボーンの識別子を表す。
type BoneId int

// 標準ヒューマノイドボーン一覧。並びはエンジンの列挙順に合わせる。
const (
	BoneNone BoneId = iota - 1
	Hips
	LeftUpperLeg
	RightUpperLeg
	LeftLowerLeg
	RightLowerLeg
	LeftFoot
	RightFoot
	Spine
	Chest
	Neck
	Head
	LeftShoulder
	RightShoulder
	LeftUpperArm
	RightUpperArm
	LeftLowerArm
	RightLowerArm
	LeftHand
	RightHand
	LeftToes
	RightToes
	LeftEye
	RightEye
	Jaw
	LeftThumbProximal
	LeftThumbIntermediate
	LeftThumbDistal
	LeftIndexProximal
	LeftIndexIntermediate
	LeftIndexDistal
	LeftMiddleProximal
	LeftMiddleIntermediate
	LeftMiddleDistal
	LeftRingProximal
	LeftRingIntermediate
	LeftRingDistal
	LeftLittleProximal
	LeftLittleIntermediate
	LeftLittleDistal
	RightThumbProximal
	RightThumbIntermediate
	RightThumbDistal
	RightIndexProximal
	RightIndexIntermediate
	RightIndexDistal
	RightMiddleProximal
	RightMiddleIntermediate
	RightMiddleDistal
	RightRingProximal
	RightRingIntermediate
	RightRingDistal
	RightLittleProximal
	RightLittleIntermediate
	RightLittleDistal
	UpperChest
)

const (
	// BoneCount は標準ボーン数。
	BoneCount = int(UpperChest) + 1
	// FirstHandBone は手指ボーン範囲の先頭。
	FirstHandBone = LeftThumbProximal
	// LastHandBone は手指ボーン範囲の末尾。
	LastHandBone = RightLittleDistal
)

// boneDefinition はボーンの識別名と表示名を保持する。
type boneDefinition struct {
	Name        string
	DisplayName string
}

// boneDefinitions はBoneIdごとの名称を保持する。
var boneDefinitions = [BoneCount]boneDefinition{
	Hips:                    {"Hips", "Hips"},
	LeftUpperLeg:            {"LeftUpperLeg", "LeftUpperLeg"},
	RightUpperLeg:           {"RightUpperLeg", "RightUpperLeg"},
	LeftLowerLeg:            {"LeftLowerLeg", "LeftLowerLeg"},
	RightLowerLeg:           {"RightLowerLeg", "RightLowerLeg"},
	LeftFoot:                {"LeftFoot", "LeftFoot"},
	RightFoot:               {"RightFoot", "RightFoot"},
	Spine:                   {"Spine", "Spine"},
	Chest:                   {"Chest", "Chest"},
	Neck:                    {"Neck", "Neck"},
	Head:                    {"Head", "Head"},
	LeftShoulder:            {"LeftShoulder", "LeftShoulder"},
	RightShoulder:           {"RightShoulder", "RightShoulder"},
	LeftUpperArm:            {"LeftUpperArm", "LeftUpperArm"},
	RightUpperArm:           {"RightUpperArm", "RightUpperArm"},
	LeftLowerArm:            {"LeftLowerArm", "LeftLowerArm"},
	RightLowerArm:           {"RightLowerArm", "RightLowerArm"},
	LeftHand:                {"LeftHand", "LeftHand"},
	RightHand:               {"RightHand", "RightHand"},
	LeftToes:                {"LeftToes", "LeftToes"},
	RightToes:               {"RightToes", "RightToes"},
	LeftEye:                 {"LeftEye", "LeftEye"},
	RightEye:                {"RightEye", "RightEye"},
	Jaw:                     {"Jaw", "Jaw"},
	LeftThumbProximal:       {"LeftThumbProximal", "Left Thumb Proximal"},
	LeftThumbIntermediate:   {"LeftThumbIntermediate", "Left Thumb Intermediate"},
	LeftThumbDistal:         {"LeftThumbDistal", "Left Thumb Distal"},
	LeftIndexProximal:       {"LeftIndexProximal", "Left Index Proximal"},
	LeftIndexIntermediate:   {"LeftIndexIntermediate", "Left Index Intermediate"},
	LeftIndexDistal:         {"LeftIndexDistal", "Left Index Distal"},
	LeftMiddleProximal:      {"LeftMiddleProximal", "Left Middle Proximal"},
	LeftMiddleIntermediate:  {"LeftMiddleIntermediate", "Left Middle Intermediate"},
	LeftMiddleDistal:        {"LeftMiddleDistal", "Left Middle Distal"},
	LeftRingProximal:        {"LeftRingProximal", "Left Ring Proximal"},
	LeftRingIntermediate:    {"LeftRingIntermediate", "Left Ring Intermediate"},
	LeftRingDistal:          {"LeftRingDistal", "Left Ring Distal"},
	LeftLittleProximal:      {"LeftLittleProximal", "Left Little Proximal"},
	LeftLittleIntermediate:  {"LeftLittleIntermediate", "Left Little Intermediate"},
	LeftLittleDistal:        {"LeftLittleDistal", "Left Little Distal"},
	RightThumbProximal:      {"RightThumbProximal", "Right Thumb Proximal"},
	RightThumbIntermediate:  {"RightThumbIntermediate", "Right Thumb Intermediate"},
	RightThumbDistal:        {"RightThumbDistal", "Right Thumb Distal"},
	RightIndexProximal:      {"RightIndexProximal", "Right Index Proximal"},
	RightIndexIntermediate:  {"RightIndexIntermediate", "Right Index Intermediate"},
	RightIndexDistal:        {"RightIndexDistal", "Right Index Distal"},
	RightMiddleProximal:     {"RightMiddleProximal", "Right Middle Proximal"},
	RightMiddleIntermediate: {"RightMiddleIntermediate", "Right Middle Intermediate"},
	RightMiddleDistal:       {"RightMiddleDistal", "Right Middle Distal"},
	RightRingProximal:       {"RightRingProximal", "Right Ring Proximal"},
	RightRingIntermediate:   {"RightRingIntermediate", "Right Ring Intermediate"},
	RightRingDistal:         {"RightRingDistal", "Right Ring Distal"},
	RightLittleProximal:     {"RightLittleProximal", "Right Little Proximal"},
	RightLittleIntermediate: {"RightLittleIntermediate", "Right Little Intermediate"},
	RightLittleDistal:       {"RightLittleDistal", "Right Little Distal"},
	UpperChest:              {"UpperChest", "UpperChest"},
}

// Valid は標準ボーン範囲内か判定する。
func (b BoneId) Valid() bool {
	return b >= Hips && int(b) < BoneCount
}

// String はボーン識別名を返す。
func (b BoneId) String() string {
	if !b.Valid() {
		return fmt.Sprintf("BoneId(%d)", int(b))
	}
	return boneDefinitions[b].Name
}

// DisplayName はヒューマノイド表示名を返す。
func (b BoneId) DisplayName() string {
	if !b.Valid() {
		return ""
	}
	return boneDefinitions[b].DisplayName
}

// IsHandBone は手指ボーンか判定する。
func (b BoneId) IsHandBone() bool {
	return b >= FirstHandBone && b <= LastHandBone
}

// BoneByName は識別名からBoneIdを解決する。
func BoneByName(name string) (BoneId, bool) {
	bone, ok := boneIdsByName[name]
	return bone, ok
}

// boneIdsByName は識別名からBoneIdへの逆引き辞書を保持する。
var boneIdsByName = buildBoneIdsByName()

// buildBoneIdsByName は識別名の逆引き辞書を構築する。
func buildBoneIdsByName() map[string]BoneId {
	names := make(map[string]BoneId, BoneCount)
	for i := 0; i < BoneCount; i++ {
		names[boneDefinitions[i].Name] = BoneId(i)
	}
	return names
}
