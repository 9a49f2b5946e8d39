/*
Package engine は、 kcpmux が利用するARQエンジン（KCP）を抽象化したパッケージです。

エンジンはセッションごとに1つ生成され、受信データグラムの入力、アプリケーションデータの送信、
出力コールバック経由でのデータグラム送出、および時刻ベースの内部処理（Update）を提供します。
*/
package engine

// HeaderSizeは、エンジンのセグメントヘッダーの最小サイズ（バイト）です。
//
// これより短いデータグラムは有効なセグメントを含み得ないため、
// 多重化レイヤーはエンジンへ入力せずに破棄します。
const HeaderSize = 24

// OutputFuncは、エンジンがデータグラムを送出する必要があるときに呼び出されるコールバックです。
//
// bufはエンジン内部で再利用されるため、呼び出しをまたいで保持する場合はコピーしてください。
type OutputFunc func(buf []byte)

// Engineは、1セッション分のARQエンジンのインターフェースです。
type Engine interface {
	// Inputは、受信したデータグラムをエンジンへ入力します。
	//
	// 不正なデータグラムの場合はエラーを返します。入力の失敗はそのデータグラムの
	// 破棄を意味するだけで、エンジンの状態には影響しません。
	Input(data []byte) error

	// Sendは、信頼性のある送信経路へデータを書き込みます。
	//
	// 任意長のペイロードを受け付け、エンジンが複数セグメントへ自動分割します。
	// 分割数が上限を超える場合はエラーを返します。
	Send(data []byte) error

	// Recvは、再構成済みのメッセージを1件bufへ取り出します。
	//
	// 取り出すメッセージが無い場合はfalseを返します。
	Recv(buf []byte) (int, bool)

	// PeekSizeは、次に取り出せるメッセージのサイズを返します。無い場合は負数を返します。
	PeekSize() int

	// Updateは、時刻に基づく内部処理（再送評価・ACKフラッシュ・ウィンドウ更新）を実行します。
	//
	// nowはミリ秒単位の単調増加タイムスタンプです。設定された内部更新間隔以下の
	// 周期で呼び出す必要があります。
	Update(now uint32)

	// WaitSndは、送信キューおよび送信バッファ内の未確認セグメント数を返します。
	WaitSnd() int

	// SetNoDelayは、エンジンの動作モードを変更します。
	SetNoDelay(noDelay bool, intervalMs, resend int, noCongestion bool)

	// SetWindowSizeは、送受信ウィンドウサイズ（セグメント数）を変更します。
	SetWindowSize(sndWnd, rcvWnd int)

	// SetMTUは、1データグラムの最大ペイロードサイズを変更します。
	SetMTU(mtu int) error

	// Releaseは、エンジンを解放します。以後の操作はすべて何もしません。
	Release()
}

// Configは、エンジンの設定です。
type Config struct {
	// NoDelayは、低遅延モードを有効にします。
	NoDelay bool

	// IntervalMsは、エンジン内部の更新時計の間隔（ミリ秒）です。
	IntervalMs int

	// Resendは、高速再送のトリガーとなるACKスキップ回数です。0で無効です。
	Resend int

	// NoCongestionは、輻輳制御を無効にします。
	NoCongestion bool

	// SndWndは、送信ウィンドウサイズ（セグメント数）です。
	SndWnd int

	// RcvWndは、受信ウィンドウサイズ（セグメント数）です。
	RcvWnd int

	// MTUは、1データグラムの最大サイズ（バイト）です。
	MTU int

	// AckNoDelayは、受信セグメントへのACKを即時に返します。
	AckNoDelay bool
}

// DefaultConfigは、低遅延向けのデフォルト設定を返却します。
func DefaultConfig() Config {
	return Config{
		NoDelay:      true,
		IntervalMs:   10,
		Resend:       2,
		NoCongestion: true,
		SndWnd:       128,
		RcvWnd:       128,
		MTU:          1400,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.IntervalMs <= 0 {
		c.IntervalMs = d.IntervalMs
	}
	if c.SndWnd <= 0 {
		c.SndWnd = d.SndWnd
	}
	if c.RcvWnd <= 0 {
		c.RcvWnd = d.RcvWnd
	}
	if c.MTU <= 0 {
		c.MTU = d.MTU
	}
	return c
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
