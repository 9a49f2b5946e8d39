package transport

import (
	"net"
	"sync/atomic"

	"github.com/kcpmux/kcpmux-go/errors"
)

// UDPConnは、UDPソケットによるConnの実装です。
type UDPConn struct {
	conn *net.UDPConn

	rxBytesCounter *uint64
	txBytesCounter *uint64
}

var _ Conn = (*UDPConn)(nil)

// ListenUDPは、addressへバインドしたUDPトランスポートを生成します。
//
// サーバー側で使用します。バインドに失敗した場合はエラーを返します。
func ListenUDP(address string) (*UDPConn, error) {
	laddr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, errors.Errorf("udp: failed to resolve %s: %w", address, err)
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, errors.Errorf("udp: failed to bind %s: %w", address, err)
	}
	return newUDPConn(conn), nil
}

// DialUDPは、エフェメラルポートへバインドしたUDPトランスポートを生成し、
// addressを解決した対向アドレスを返します。
//
// クライアント側で使用します。接続の確立は行いません。
func DialUDP(address string) (*UDPConn, net.Addr, error) {
	raddr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, nil, errors.Errorf("udp: failed to resolve %s: %w", address, err)
	}
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return nil, nil, errors.Errorf("udp: failed to bind local address: %w", err)
	}
	return newUDPConn(conn), raddr, nil
}

func newUDPConn(conn *net.UDPConn) *UDPConn {
	return &UDPConn{
		conn:           conn,
		rxBytesCounter: func(u uint64) *uint64 { return &u }(0),
		txBytesCounter: func(u uint64) *uint64 { return &u }(0),
	}
}

// ReadFromは、データグラムを1つ受信します。
func (c *UDPConn) ReadFrom(p []byte) (int, net.Addr, error) {
	n, addr, err := c.conn.ReadFromUDP(p)
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return 0, nil, errors.ErrTransportClosed
		}
		return 0, nil, errors.Errorf("udp: failed to read: %w", err)
	}
	atomic.AddUint64(c.rxBytesCounter, uint64(n))
	return n, addr, nil
}

// WriteToは、データグラムをaddr宛に送信します。
func (c *UDPConn) WriteTo(p []byte, addr net.Addr) (int, error) {
	n, err := c.conn.WriteTo(p, addr)
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return 0, errors.ErrTransportClosed
		}
		return 0, errors.Errorf("udp: failed to write: %w", err)
	}
	atomic.AddUint64(c.txBytesCounter, uint64(n))
	return n, nil
}

// Closeは、ソケットを閉じます。
func (c *UDPConn) Close() error {
	return c.conn.Close()
}

// LocalAddrは、バインドされたローカルアドレスを返却します。
func (c *UDPConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RxBytesCounterValueは、読み込んだ総バイト数を返却します。
func (c *UDPConn) RxBytesCounterValue() uint64 {
	return atomic.LoadUint64(c.rxBytesCounter)
}

// TxBytesCounterValueは、書き込んだ総バイト数を返却します。
func (c *UDPConn) TxBytesCounterValue() uint64 {
	return atomic.LoadUint64(c.txBytesCounter)
}

// Nameはトランスポート名を返却します。
func (c *UDPConn) Name() Name {
	return NameUDP
}
