// 指示: miu200521358
package avatar

import (
	"sync"

	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// MarkerRecorder はボーン確認用マーカーを記録する。
type MarkerRecorder struct {
	mu      sync.Mutex
	markers []moutput.BoneMarker
}

// NewMarkerRecorder はマーカー記録を生成する。
func NewMarkerRecorder() *MarkerRecorder {
	return &MarkerRecorder{}
}

// AttachMarker はマーカーを記録する。
func (r *MarkerRecorder) AttachMarker(marker moutput.BoneMarker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers = append(r.markers, marker)
}

// Markers は記録済みマーカーの複製を返す。
func (r *MarkerRecorder) Markers() []moutput.BoneMarker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]moutput.BoneMarker(nil), r.markers...)
}
