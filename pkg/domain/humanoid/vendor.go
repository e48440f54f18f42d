// 指示: miu200521358
package humanoid

import "fmt"

// VendorBoneId はハンドトラッキングデバイスの関節識別子を表す。
type VendorBoneId int

// ハンドトラッキング関節一覧。
const (
	HandWristRoot VendorBoneId = iota
	HandForearmStub
	HandThumb0
	HandThumb1
	HandThumb2
	HandThumb3
	HandIndex1
	HandIndex2
	HandIndex3
	HandMiddle1
	HandMiddle2
	HandMiddle3
	HandRing1
	HandRing2
	HandRing3
	HandPinky0
	HandPinky1
	HandPinky2
	HandPinky3
	HandThumbTip
	HandIndexTip
	HandMiddleTip
	HandRingTip
	HandPinkyTip
)

// VendorBoneCount はデバイスが公開する関節数の最大値。
const VendorBoneCount = int(HandPinkyTip) + 1

// vendorBoneNames は関節識別名を保持する。
var vendorBoneNames = [VendorBoneCount]string{
	"Hand_WristRoot", "Hand_ForearmStub",
	"Hand_Thumb0", "Hand_Thumb1", "Hand_Thumb2", "Hand_Thumb3",
	"Hand_Index1", "Hand_Index2", "Hand_Index3",
	"Hand_Middle1", "Hand_Middle2", "Hand_Middle3",
	"Hand_Ring1", "Hand_Ring2", "Hand_Ring3",
	"Hand_Pinky0", "Hand_Pinky1", "Hand_Pinky2", "Hand_Pinky3",
	"Hand_ThumbTip", "Hand_IndexTip", "Hand_MiddleTip", "Hand_RingTip", "Hand_PinkyTip",
}

// DefaultVendorParentIndex はデバイス標準の関節階層(親index)を保持する。ルートは -1。
var DefaultVendorParentIndex = [VendorBoneCount]int{
	HandWristRoot:   -1,
	HandForearmStub: int(HandWristRoot),
	HandThumb0:      int(HandWristRoot),
	HandThumb1:      int(HandThumb0),
	HandThumb2:      int(HandThumb1),
	HandThumb3:      int(HandThumb2),
	HandIndex1:      int(HandWristRoot),
	HandIndex2:      int(HandIndex1),
	HandIndex3:      int(HandIndex2),
	HandMiddle1:     int(HandWristRoot),
	HandMiddle2:     int(HandMiddle1),
	HandMiddle3:     int(HandMiddle2),
	HandRing1:       int(HandWristRoot),
	HandRing2:       int(HandRing1),
	HandRing3:       int(HandRing2),
	HandPinky0:      int(HandWristRoot),
	HandPinky1:      int(HandPinky0),
	HandPinky2:      int(HandPinky1),
	HandPinky3:      int(HandPinky2),
	HandThumbTip:    int(HandThumb3),
	HandIndexTip:    int(HandIndex3),
	HandMiddleTip:   int(HandMiddle3),
	HandRingTip:     int(HandRing3),
	HandPinkyTip:    int(HandPinky3),
}

// Valid は関節範囲内か判定する。
func (v VendorBoneId) Valid() bool {
	return v >= HandWristRoot && int(v) < VendorBoneCount
}

// String は関節識別名を返す。
func (v VendorBoneId) String() string {
	if !v.Valid() {
		return fmt.Sprintf("VendorBoneId(%d)", int(v))
	}
	return vendorBoneNames[v]
}
