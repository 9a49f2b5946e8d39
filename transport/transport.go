/*
Package transport は、 kcpmux で使用するデータグラム境界の送受信を抽象化したパッケージです。
*/
package transport

import (
	"net"
)

// Nameは、トランスポート名です。
type Name string

const (
	// UDPトランスポート
	NameUDP Name = "udp"
	// テスト用のインメモリトランスポート
	NamePipe Name = "pipe"
)

// Connは、データグラムの送受信境界のインターフェースです。
//
// 送信はベストエフォートです。ネットワークレベルでの欠落・重複・順序入れ替わりは
// 上位レイヤー（ARQエンジン）が吸収します。
type Conn interface {
	// ReadFromは、データグラムを1つ受信し、pへ読み込みます。
	//
	// 読み込んだバイト数と送信元アドレスを返します。
	ReadFrom(p []byte) (int, net.Addr, error)

	// WriteToは、データグラムをaddr宛に送信します。
	//
	// pは呼び出しの間だけ有効であれば十分です。実装は必要に応じてコピーします。
	WriteTo(p []byte, addr net.Addr) (int, error)

	// Closeは、トランスポートを閉じます。
	Close() error

	// LocalAddrは、ローカルアドレスを返却します。
	LocalAddr() net.Addr

	// RxBytesCounterValueは、現在の受信バイトカウンターの値を返します。
	RxBytesCounterValue() uint64

	// TxBytesCounterValueは、現在の送信バイトカウンターの値を返します。
	TxBytesCounterValue() uint64

	// Nameは、トランスポート名を返却します。
	Name() Name
}
