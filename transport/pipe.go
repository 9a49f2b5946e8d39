package transport

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/kcpmux/kcpmux-go/errors"
)

const pipeQueueSize = 128

type pipeAddr string

func (a pipeAddr) Network() string { return "pipe" }
func (a pipeAddr) String() string  { return string(a) }

type pipePacket struct {
	payload []byte
	from    net.Addr
}

type pipe struct {
	rx <-chan pipePacket
	tx chan<- pipePacket

	local  net.Addr
	remote net.Addr

	drop func([]byte) bool

	rxCounter *uint64
	txCounter *uint64

	once           sync.Once
	closedCh       chan struct{}
	remoteClosedCh <-chan struct{}
}

// Pipeは、インメモリで接続されたトランスポートのペアを返します。
//
// UDPと同じ性質を持ちます。送信はブロックせず、受信キューが溢れた場合や
// 対向が閉じている場合、データグラムは黙って欠落します。
func Pipe() (Conn, Conn) {
	return PipeWithDrop(nil)
}

// PipeWithDropは、dropがtrueを返したデータグラムを欠落させるペアを返します。
//
// dropは両方向の送信に適用されます。損失のあるネットワークのシミュレーションに使用します。
func PipeWithDrop(drop func(p []byte) bool) (Conn, Conn) {
	ch1 := make(chan pipePacket, pipeQueueSize)
	ch2 := make(chan pipePacket, pipeQueueSize)

	chClosed1 := make(chan struct{})
	chClosed2 := make(chan struct{})

	addr1 := pipeAddr("pipe:1")
	addr2 := pipeAddr("pipe:2")

	return &pipe{
			rx: ch2,
			tx: ch1,

			local:  addr1,
			remote: addr2,

			drop: drop,

			rxCounter: func(u uint64) *uint64 { return &u }(0),
			txCounter: func(u uint64) *uint64 { return &u }(0),

			once:           sync.Once{},
			closedCh:       chClosed1,
			remoteClosedCh: chClosed2,
		}, &pipe{
			rx: ch1,
			tx: ch2,

			local:  addr2,
			remote: addr1,

			drop: drop,

			rxCounter: func(u uint64) *uint64 { return &u }(0),
			txCounter: func(u uint64) *uint64 { return &u }(0),

			once:           sync.Once{},
			closedCh:       chClosed2,
			remoteClosedCh: chClosed1,
		}
}

func (p *pipe) ReadFrom(b []byte) (int, net.Addr, error) {
	select {
	case <-p.closedCh:
		return 0, nil, errors.ErrTransportClosed
	case pkt := <-p.rx:
		n := copy(b, pkt.payload)
		atomic.AddUint64(p.rxCounter, uint64(n))
		return n, pkt.from, nil
	}
}

func (p *pipe) WriteTo(b []byte, _ net.Addr) (int, error) {
	select {
	case <-p.closedCh:
		return 0, errors.ErrTransportClosed
	default:
	}
	if p.drop != nil && p.drop(b) {
		return len(b), nil
	}
	pkt := pipePacket{payload: append([]byte(nil), b...), from: p.local}
	select {
	case <-p.remoteClosedCh:
		// UDPと同様、対向の切断は送信側では検知しない
		return len(b), nil
	case p.tx <- pkt:
		atomic.AddUint64(p.txCounter, uint64(len(b)))
		return len(b), nil
	default:
		// キュー溢れはデータグラムの欠落として扱う
		return len(b), nil
	}
}

func (p *pipe) Close() error {
	p.once.Do(func() {
		close(p.closedCh)
	})
	return nil
}

func (p *pipe) LocalAddr() net.Addr {
	return p.local
}

func (p *pipe) RxBytesCounterValue() uint64 {
	return atomic.LoadUint64(p.rxCounter)
}

func (p *pipe) TxBytesCounterValue() uint64 {
	return atomic.LoadUint64(p.txCounter)
}

func (p *pipe) Name() Name {
	return NamePipe
}
