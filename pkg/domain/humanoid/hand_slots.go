// 指示: miu200521358
package humanoid

// HandBoneSlot は手指ボーン1枠分の対応(標準ボーン・デバイス関節・親ボーン)を表す。
type HandBoneSlot struct {
	Bone   BoneId
	Vendor VendorBoneId
	Parent BoneId
}

// HandSlotCount は片手あたりの手指ボーン枠数。
const HandSlotCount = 15

// leftHandBoneSlots は左手の対応表。親が子より先に並ぶ。
var leftHandBoneSlots = [HandSlotCount]HandBoneSlot{
	{LeftThumbProximal, HandThumb0, LeftHand},
	{LeftThumbIntermediate, HandThumb2, LeftThumbProximal},
	{LeftThumbDistal, HandThumb3, LeftThumbIntermediate},
	{LeftIndexProximal, HandIndex1, LeftHand},
	{LeftIndexIntermediate, HandIndex2, LeftIndexProximal},
	{LeftIndexDistal, HandIndex3, LeftIndexIntermediate},
	{LeftMiddleProximal, HandMiddle1, LeftHand},
	{LeftMiddleIntermediate, HandMiddle2, LeftMiddleProximal},
	{LeftMiddleDistal, HandMiddle3, LeftMiddleIntermediate},
	{LeftRingProximal, HandRing1, LeftHand},
	{LeftRingIntermediate, HandRing2, LeftRingProximal},
	{LeftRingDistal, HandRing3, LeftRingIntermediate},
	{LeftLittleProximal, HandPinky1, LeftHand},
	{LeftLittleIntermediate, HandPinky2, LeftLittleProximal},
	{LeftLittleDistal, HandPinky3, LeftLittleIntermediate},
}

// rightHandBoneSlots は右手の対応表。
var rightHandBoneSlots = [HandSlotCount]HandBoneSlot{
	{RightThumbProximal, HandThumb0, RightHand},
	{RightThumbIntermediate, HandThumb2, RightThumbProximal},
	{RightThumbDistal, HandThumb3, RightThumbIntermediate},
	{RightIndexProximal, HandIndex1, RightHand},
	{RightIndexIntermediate, HandIndex2, RightIndexProximal},
	{RightIndexDistal, HandIndex3, RightIndexIntermediate},
	{RightMiddleProximal, HandMiddle1, RightHand},
	{RightMiddleIntermediate, HandMiddle2, RightMiddleProximal},
	{RightMiddleDistal, HandMiddle3, RightMiddleIntermediate},
	{RightRingProximal, HandRing1, RightHand},
	{RightRingIntermediate, HandRing2, RightRingProximal},
	{RightRingDistal, HandRing3, RightRingIntermediate},
	{RightLittleProximal, HandPinky1, RightHand},
	{RightLittleIntermediate, HandPinky2, RightLittleProximal},
	{RightLittleDistal, HandPinky3, RightLittleIntermediate},
}

// parentCompositionJoints は親関節のローカル姿勢を合成してから使う関節を保持する。
// デバイスのバインドポーズが階層を1段畳んでいる関節だけを列挙する。
var parentCompositionJoints = map[VendorBoneId]struct{}{
	HandThumb2: {},
	HandPinky1: {},
}

// handSlotIndexByBone はBoneIdから手指枠への逆引きを保持する。
var handSlotIndexByBone = buildHandSlotIndexByBone()

// handSlotRef は逆引き結果を表す。
type handSlotRef struct {
	Side  Side
	Index int
	Found bool
}

// HandBoneSlots は指定側の手指対応表を返す。
func HandBoneSlots(side Side) []HandBoneSlot {
	slots := leftHandBoneSlots
	if side == Right {
		slots = rightHandBoneSlots
	}
	return slots[:]
}

// HandSlotByBone はBoneIdに対応する手指枠と左右を返す。
func HandSlotByBone(bone BoneId) (HandBoneSlot, Side, bool) {
	if !bone.Valid() {
		return HandBoneSlot{}, Left, false
	}
	ref := handSlotIndexByBone[bone]
	if !ref.Found {
		return HandBoneSlot{}, Left, false
	}
	return HandBoneSlots(ref.Side)[ref.Index], ref.Side, true
}

// RequiresParentComposition は親関節との姿勢合成が必要な関節か判定する。
func RequiresParentComposition(joint VendorBoneId) bool {
	_, ok := parentCompositionJoints[joint]
	return ok
}

// ParentCompositionJoints は姿勢合成対象の関節一覧を返す。
func ParentCompositionJoints() []VendorBoneId {
	joints := make([]VendorBoneId, 0, len(parentCompositionJoints))
	for i := 0; i < VendorBoneCount; i++ {
		if RequiresParentComposition(VendorBoneId(i)) {
			joints = append(joints, VendorBoneId(i))
		}
	}
	return joints
}

// buildHandSlotIndexByBone は手指枠の逆引きを構築する。
func buildHandSlotIndexByBone() [BoneCount]handSlotRef {
	var refs [BoneCount]handSlotRef
	for _, side := range Sides {
		for i, slot := range HandBoneSlots(side) {
			refs[slot.Bone] = handSlotRef{Side: side, Index: i, Found: true}
		}
	}
	return refs
}
