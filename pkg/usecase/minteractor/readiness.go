// 指示: miu200521358
package minteractor

import (
	"context"
	"time"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/port/moutput"
)

// ReadinessState はデバイス初期化待ちの状態を表す。
type ReadinessState int

const (
	// ReadinessWaiting は初期化待ちを表す。
	ReadinessWaiting ReadinessState = iota
	// ReadinessReady は初期化完了を表す。
	ReadinessReady
)

// ReadinessGate は左右のデバイス初期化完了をフレームごとに確認する。一度 Ready になれば戻らない。
type ReadinessGate struct {
	source moutput.IHandTrackingSource
	state  ReadinessState
	polls  int
}

// NewReadinessGate は初期化待ちゲートを生成する。
func NewReadinessGate(source moutput.IHandTrackingSource) *ReadinessGate {
	return &ReadinessGate{source: source}
}

// Poll は1回だけ確認し、今回の確認で Ready に遷移したときだけ true を返す。
func (g *ReadinessGate) Poll() bool {
	if g.state == ReadinessReady {
		return false
	}
	g.polls++
	if g.source == nil {
		return false
	}
	for _, side := range humanoid.Sides {
		if !g.source.IsReady(side) {
			return false
		}
	}
	g.state = ReadinessReady
	return true
}

// State は現在の状態を返す。
func (g *ReadinessGate) State() ReadinessState {
	return g.state
}

// Polls は確認回数を返す。
func (g *ReadinessGate) Polls() int {
	return g.polls
}

// WaitUntilReady はホストのフレーム通知ごとに確認し、初期化完了で nil を返す。
// timeout が0なら無期限に待つ。
func WaitUntilReady(ctx context.Context, ticks <-chan struct{}, gate *ReadinessGate, timeout time.Duration) error {
	if gate.State() == ReadinessReady {
		return nil
	}
	if gate.Poll() {
		return nil
	}

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return &DeviceNotReadyError{Timeout: timeout, Polls: gate.Polls()}
		case _, ok := <-ticks:
			if !ok {
				return &DeviceNotReadyError{Timeout: timeout, Polls: gate.Polls(), Closed: true}
			}
			if gate.Poll() {
				return nil
			}
		}
	}
}
