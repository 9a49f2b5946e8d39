package mux

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/kcpmux/kcpmux-go/engine"
	"github.com/kcpmux/kcpmux-go/errors"
	"github.com/kcpmux/kcpmux-go/internal/clock"
	"github.com/kcpmux/kcpmux-go/log"
	"github.com/kcpmux/kcpmux-go/transport"
)

// Stateは、セッションの状態です。
//
// 状態はConnecting、Connected、Disconnecting、Disconnectedの順にのみ遷移します。
type State int

const (
	// 接続中
	StateConnecting State = iota
	// 接続済み
	StateConnected
	// 切断中
	StateDisconnecting
	// 切断済み
	StateDisconnected
)

// Stringは、状態の文字列表現を返します。
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// DataHandlerは、セッションが信頼配送のメッセージを受信した時に呼び出されるハンドラーです。
//
// dataはハンドラーの呼び出しの間だけ有効です。保持する場合はコピーしてください。
type DataHandler func(s *Session, data []byte)

// CloseHandlerは、セッションが切断された時に一度だけ呼び出されるハンドラーです。
type CloseHandler func(s *Session)

// テストからエンジンを差し替えるためのフック
var newEngine = func(conv uint32, config engine.Config, output engine.OutputFunc) engine.Engine {
	return engine.NewKCP(conv, config, output)
}

// Sessionは、多重化された1つの仮想接続です。
//
// すべてのメソッドは複数のゴルーチンから同時に呼び出せます。
type Session struct {
	id   uint32
	peer net.Addr
	conn transport.Conn

	cfg    *Config
	logger log.Logger
	ctx    context.Context

	mu           sync.Mutex
	eng          engine.Engine
	state        State
	lastActive   uint32
	dataHandler  DataHandler
	closeHandler CloseHandler
	onRemove     func(s *Session)

	recvBuf []byte
}

func newSession(id uint32, peer net.Addr, conn transport.Conn, cfg *Config, logger log.Logger, onRemove func(s *Session)) *Session {
	// SetMTU等のセッション単位の変更が他のセッションへ波及しないようコピーを持つ
	sessionCfg := *cfg
	s := &Session{
		id:         id,
		peer:       peer,
		conn:       conn,
		cfg:        &sessionCfg,
		logger:     logger,
		ctx:        log.WithSessionID(context.Background(), id),
		state:      StateConnecting,
		lastActive: clock.NowMS(),
		onRemove:   onRemove,
		recvBuf:    make([]byte, 64*1024),
	}
	s.eng = newEngine(id, cfg.engineConfig(), s.output)
	return s
}

// outputは、エンジンが組み立てたデータグラムをトランスポートへ書き込みます。
func (s *Session) output(buf []byte) {
	if _, err := s.conn.WriteTo(buf, s.peer); err != nil {
		if errors.Is(err, errors.ErrTransportClosed) {
			return
		}
		s.logger.Warnf(s.ctx, "failed to write a datagram to %v: %v", s.peer, err)
	}
}

// IDは、セッションIDを返します。
func (s *Session) ID() uint32 {
	return s.id
}

// Peerは、対向アドレスを返します。
//
// セッションの生成時に決定され、以降変化しません。
func (s *Session) Peer() net.Addr {
	return s.peer
}

// Stateは、現在の状態を返します。
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnDataは、信頼配送メッセージの受信ハンドラーを登録します。
func (s *Session) OnData(h DataHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataHandler = h
}

// OnCloseは、切断ハンドラーを登録します。
func (s *Session) OnClose(h CloseHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeHandler = h
}

// SendReliableは、dataを信頼配送で送信します。
//
// 順序と到達が保証されます。送信キューが上限に達している場合は
// ErrSendQueueFullを返します。
func (s *Session) SendReliable(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnected {
		return errors.Errorf("session %d is %v: %w", s.id, s.state, errors.ErrSessionNotConnected)
	}
	if pending := s.eng.WaitSnd(); pending >= s.cfg.SendBacklog {
		return errors.Errorf("session %d has %d pending segments: %w", s.id, pending, errors.ErrSendQueueFull)
	}
	return s.eng.Send(data)
}

// SendDirectは、dataを信頼配送を経由せず1つのデータグラムとして送信します。
//
// 到達も順序も保証されません。MTUを超えるデータは警告を出力した上で送信を試みます。
func (s *Session) SendDirect(data []byte) error {
	s.mu.Lock()
	if s.state != StateConnected {
		defer s.mu.Unlock()
		return errors.Errorf("session %d is %v: %w", s.id, s.state, errors.ErrSessionNotConnected)
	}
	conn, peer, mtu := s.conn, s.peer, s.cfg.MTU
	s.mu.Unlock()

	if len(data) > mtu {
		s.logger.Warnf(s.ctx, "direct send of %d bytes exceeds MTU %d, the datagram may be fragmented or dropped", len(data), mtu)
	}
	if _, err := conn.WriteTo(data, peer); err != nil {
		return errors.Errorf("failed to send a direct datagram: %w", err)
	}
	return nil
}

// PendingCountは、送信キューに滞留しているセグメント数を返します。
func (s *Session) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		return 0
	}
	return s.eng.WaitSnd()
}

// SetNoDelayは、このセッションの低遅延パラメーターを変更します。
func (s *Session) SetNoDelay(noDelay bool, interval time.Duration, resend int, noCongestion bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		return
	}
	s.eng.SetNoDelay(noDelay, int(interval/time.Millisecond), resend, noCongestion)
}

// SetWindowSizeは、このセッションのウィンドウサイズを変更します。
func (s *Session) SetWindowSize(sndWnd, rcvWnd int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		return
	}
	s.eng.SetWindowSize(sndWnd, rcvWnd)
}

// SetMTUは、このセッションのMTUを変更します。
func (s *Session) SetMTU(mtu int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		return errors.ErrSessionClosed
	}
	if err := s.eng.SetMTU(mtu); err != nil {
		return err
	}
	s.cfg.MTU = mtu
	return nil
}

// Closeは、セッションを切断します。
//
// 滞留中の送信データは破棄されます。切断ハンドラーはセッションごとに
// 一度だけ呼び出されます。2回目以降の呼び出しは何もしません。
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateDisconnecting || s.state == StateDisconnected {
		s.mu.Unlock()
		return nil
	}
	s.state = StateDisconnecting
	s.eng.Release()
	s.state = StateDisconnected
	onRemove, closeHandler := s.onRemove, s.closeHandler
	s.mu.Unlock()

	if onRemove != nil {
		onRemove(s)
	}
	if closeHandler != nil {
		closeHandler(s)
	}
	s.logger.Infof(s.ctx, "session %d disconnected", s.id)
	return nil
}

func (s *Session) setConnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateConnecting {
		s.state = StateConnected
	}
}

// inputは、このセッション宛のデータグラムをエンジンへ投入し、
// 組み立てが完了したメッセージをハンドラーへ配送します。
func (s *Session) input(data []byte, now uint32) {
	s.mu.Lock()
	if s.state == StateDisconnecting || s.state == StateDisconnected {
		s.mu.Unlock()
		return
	}
	s.lastActive = now
	if err := s.eng.Input(data); err != nil {
		s.mu.Unlock()
		s.logger.Warnf(s.ctx, "dropped an invalid datagram from %v: %v", s.peer, err)
		return
	}
	msgs, handler := s.drainReceivedWithLock()
	s.mu.Unlock()

	s.dispatch(msgs, handler)
}

// tickは、エンジンの定期更新を行います。再送やACKの送出はここで駆動されます。
func (s *Session) tick(now uint32) {
	s.mu.Lock()
	if s.state == StateDisconnecting || s.state == StateDisconnected {
		s.mu.Unlock()
		return
	}
	s.eng.Update(now)
	msgs, handler := s.drainReceivedWithLock()
	s.mu.Unlock()

	s.dispatch(msgs, handler)
}

// drainReceivedWithLockは、組み立て済みメッセージをすべて取り出します。
//
// ハンドラーの呼び出し中に受信ハンドラーからセッションのメソッドを
// 呼び出せるよう、配送はロックの解放後に行います。
func (s *Session) drainReceivedWithLock() ([][]byte, DataHandler) {
	var msgs [][]byte
	for {
		size := s.eng.PeekSize()
		if size < 0 {
			break
		}
		if size > len(s.recvBuf) {
			s.recvBuf = make([]byte, size)
		}
		n, ok := s.eng.Recv(s.recvBuf)
		if !ok {
			break
		}
		msgs = append(msgs, append([]byte(nil), s.recvBuf[:n]...))
	}
	return msgs, s.dataHandler
}

func (s *Session) dispatch(msgs [][]byte, handler DataHandler) {
	if handler == nil {
		return
	}
	for _, msg := range msgs {
		handler(s, msg)
	}
}

// isTimedOutは、最終アクティブ時刻からtimeoutMSを超えて経過したかを返します。
func (s *Session) isTimedOut(now, timeoutMS uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clock.Since(now, s.lastActive) > timeoutMS
}
