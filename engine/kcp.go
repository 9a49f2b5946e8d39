package engine

import (
	kcp "github.com/xtaci/kcp-go/v5"

	"github.com/kcpmux/kcpmux-go/errors"
)

// KCPは、github.com/xtaci/kcp-go のKCP制御ブロックをEngineとして適合させる実装です。
//
// kcpmuxのスケジューリングモデルに従い、KCPはゴルーチンセーフではありません。
// 排他制御は所有するセッション側で行います。
type KCP struct {
	kcp        *kcp.KCP
	ackNoDelay bool
}

var _ Engine = (*KCP)(nil)

// NewKCPは、セッションID（conv）に紐づくKCPエンジンを生成します。
//
// convは通信の両端で一致している必要があります。一致しない場合、
// 入力されたデータグラムはエンジンによって拒否されます。
func NewKCP(conv uint32, config Config, output OutputFunc) *KCP {
	config = config.normalized()
	cb := kcp.NewKCP(conv, func(buf []byte, size int) {
		if size <= 0 {
			return
		}
		output(buf[:size])
	})
	cb.NoDelay(boolToInt(config.NoDelay), config.IntervalMs, config.Resend, boolToInt(config.NoCongestion))
	cb.WndSize(config.SndWnd, config.RcvWnd)
	cb.SetMtu(config.MTU)
	return &KCP{
		kcp:        cb,
		ackNoDelay: config.AckNoDelay,
	}
}

// Inputは、受信したデータグラムをKCPへ入力します。
func (e *KCP) Input(data []byte) error {
	if e.kcp == nil {
		return errors.ErrSessionClosed
	}
	if ret := e.kcp.Input(data, true, e.ackNoDelay); ret < 0 {
		return errors.Errorf("kcp input rejected (code %d): %w", ret, errors.ErrMalformedDatagram)
	}
	return nil
}

// Sendは、信頼性のある送信経路へデータを書き込みます。
func (e *KCP) Send(data []byte) error {
	if e.kcp == nil {
		return errors.ErrSessionClosed
	}
	if ret := e.kcp.Send(data); ret < 0 {
		return errors.Errorf("kcp send rejected (code %d): %w", ret, errors.ErrMessageTooLarge)
	}
	return nil
}

// Recvは、再構成済みのメッセージを1件bufへ取り出します。
func (e *KCP) Recv(buf []byte) (int, bool) {
	if e.kcp == nil {
		return 0, false
	}
	n := e.kcp.Recv(buf)
	if n < 0 {
		return 0, false
	}
	return n, true
}

// PeekSizeは、次に取り出せるメッセージのサイズを返します。
func (e *KCP) PeekSize() int {
	if e.kcp == nil {
		return -1
	}
	return e.kcp.PeekSize()
}

// Updateは、KCPの時刻ベースの内部処理を実行します。
//
// KCPは自前の単調時計を参照するため、nowは使用しません。
// インターフェース上のnowは呼び出し周期の契約を表します。
func (e *KCP) Update(now uint32) {
	if e.kcp == nil {
		return
	}
	e.kcp.Update()
}

// WaitSndは、送信キューおよび送信バッファ内のセグメント数を返します。
func (e *KCP) WaitSnd() int {
	if e.kcp == nil {
		return 0
	}
	return e.kcp.WaitSnd()
}

// SetNoDelayは、動作モードを変更します。
func (e *KCP) SetNoDelay(noDelay bool, intervalMs, resend int, noCongestion bool) {
	if e.kcp == nil {
		return
	}
	e.kcp.NoDelay(boolToInt(noDelay), intervalMs, resend, boolToInt(noCongestion))
}

// SetWindowSizeは、送受信ウィンドウサイズを変更します。
func (e *KCP) SetWindowSize(sndWnd, rcvWnd int) {
	if e.kcp == nil {
		return
	}
	e.kcp.WndSize(sndWnd, rcvWnd)
}

// SetMTUは、1データグラムの最大ペイロードサイズを変更します。
func (e *KCP) SetMTU(mtu int) error {
	if e.kcp == nil {
		return errors.ErrSessionClosed
	}
	if ret := e.kcp.SetMtu(mtu); ret < 0 {
		return errors.Errorf("invalid mtu %d: %w", mtu, errors.ErrKCPMux)
	}
	return nil
}

// Releaseは、エンジンを解放します。
func (e *KCP) Release() {
	e.kcp = nil
}
