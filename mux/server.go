package mux

import (
	"context"
	"encoding/binary"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kcpmux/kcpmux-go/engine"
	"github.com/kcpmux/kcpmux-go/errors"
	"github.com/kcpmux/kcpmux-go/internal/clock"
	"github.com/kcpmux/kcpmux-go/log"
	"github.com/kcpmux/kcpmux-go/transport"
)

const datagramQueueSize = 1024

type datagram struct {
	payload []byte
	from    net.Addr
}

type serverState int

const (
	serverStateIdle serverState = iota
	serverStateRunning
	serverStateClosed
)

// Serverは、1つのトランスポート上で複数のセッションを受け付けるサーバーです。
type Server struct {
	cfg    *ServerConfig
	logger log.Logger

	mu     sync.Mutex
	state  serverState
	conn   transport.Conn
	cancel context.CancelFunc
	table  *sessionTable
}

// NewServerは、サーバーを生成します。
//
// configがnilの場合、すべての項目にデフォルト値が使用されます。
func NewServer(config *ServerConfig) *Server {
	cfg := config.normalize()
	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		table:  newSessionTable(),
	}
}

// ListenAndServeは、addressへバインドしたUDPトランスポートでServeを呼び出します。
func (s *Server) ListenAndServe(address string) error {
	conn, err := transport.ListenUDP(address)
	if err != nil {
		return err
	}
	return s.Serve(conn)
}

// Serveは、connからの受信処理とセッションの定期更新を開始します。
//
// Stopが呼ばれるまでブロックします。Serveの終了時、connは閉じられ、
// 残っているすべてのセッションは切断されます。
func (s *Server) Serve(conn transport.Conn) error {
	s.mu.Lock()
	switch s.state {
	case serverStateRunning:
		s.mu.Unlock()
		return ErrServerStarted
	case serverStateClosed:
		s.mu.Unlock()
		return ErrServerClosed
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.state = serverStateRunning
	s.conn = conn
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Infof(ctx, "server started on %v", conn.LocalAddr())

	datagramCh := make(chan datagram, datagramQueueSize)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return readLoop(ctx, conn, datagramCh)
	})
	eg.Go(func() error {
		return s.loop(ctx, datagramCh)
	})
	err := eg.Wait()

	s.teardown()
	conn.Close()
	s.mu.Lock()
	s.state = serverStateClosed
	s.mu.Unlock()
	s.logger.Infof(ctx, "server stopped")
	return err
}

// Stopは、サーバーを停止します。
//
// 受け付けていたすべてのセッションは切断され、切断ハンドラーが呼び出されます。
// 停止後のサーバーを再開することはできません。
func (s *Server) Stop() {
	s.mu.Lock()
	cancel, conn := s.cancel, s.conn
	s.state = serverStateClosed
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if conn != nil {
		// ReadFromのブロックを解除する
		conn.Close()
	}
}

// SessionCountは、現在接続中のセッション数を返します。
func (s *Server) SessionCount() int {
	return s.table.len()
}

// readLoopは、トランスポートから受信したデータグラムをチャネルへ送ります。
func readLoop(ctx context.Context, conn transport.Conn, datagramCh chan<- datagram) error {
	buf := make([]byte, 64*1024)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, errors.ErrTransportClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		d := datagram{payload: append([]byte(nil), buf[:n]...), from: from}
		select {
		case <-ctx.Done():
			return nil
		case datagramCh <- d:
		}
	}
}

// loopは、データグラムの振り分けとセッションの定期更新を直列に実行します。
func (s *Server) loop(ctx context.Context, datagramCh <-chan datagram) error {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case d := <-datagramCh:
			s.demux(ctx, d, clock.NowMS())
		case <-ticker.C:
			s.sweep(clock.NowMS())
		}
	}
}

// demuxは、データグラムを先頭4バイトのセッションIDで該当セッションへ振り分けます。
//
// 未知のIDのデータグラムはセッションを生成します。セッションの対向アドレスは
// 最初のデータグラムの送信元に固定されます。
func (s *Server) demux(ctx context.Context, d datagram, now uint32) {
	if len(d.payload) < engine.HeaderSize {
		s.logger.Debugf(ctx, "dropped a runt datagram (%d bytes) from %v", len(d.payload), d.from)
		return
	}
	id := binary.LittleEndian.Uint32(d.payload)
	if id == 0 {
		s.logger.Debugf(ctx, "dropped a datagram with reserved session id 0 from %v", d.from)
		return
	}
	sess, created := s.table.loadOrStore(id, func() *Session {
		return newSession(id, d.from, s.conn, s.cfg.Config, s.logger, s.removeSession)
	})
	if created {
		sess.setConnected()
		s.logger.Infof(sess.ctx, "session %d connected from %v", id, d.from)
		s.cfg.SessionHandler.OnSession(sess)
	}
	sess.input(d.payload, now)
}

// sweepは、全セッションの定期更新とタイムアウト監視を行います。
func (s *Server) sweep(now uint32) {
	for _, sess := range s.table.snapshot() {
		if sess.isTimedOut(now, uint32(s.cfg.Timeout/time.Millisecond)) {
			s.logger.Infof(sess.ctx, "session %d timed out", sess.ID())
			sess.Close()
			continue
		}
		sess.tick(now)
	}
}

func (s *Server) removeSession(sess *Session) {
	s.table.delete(sess.ID())
}

func (s *Server) teardown() {
	for _, sess := range s.table.snapshot() {
		sess.Close()
	}
}
