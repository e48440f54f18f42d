// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/skeleton"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// DefaultBoneAxisScale はボーン確認用マーカーの既定スケール。
const DefaultBoneAxisScale = 0.2

// attachBoneMarkers はスケルトンの全ボーンにマーカーを付け、付けた数を返す。
func attachBoneMarkers(sk *skeleton.Skeleton, factory moutput.IBoneMarkerFactory, scale float64) int {
	if sk == nil || factory == nil {
		return 0
	}
	count := 0
	for _, node := range sk.Bones() {
		factory.AttachMarker(moutput.BoneMarker{
			Bone:  node.Bone(),
			Name:  node.Name(),
			Scale: scale,
		})
		count++
	}
	return count
}
