package mux

import (
	"context"
	"encoding/binary"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kcpmux/kcpmux-go/engine"
	"github.com/kcpmux/kcpmux-go/internal/clock"
	"github.com/kcpmux/kcpmux-go/log"
	"github.com/kcpmux/kcpmux-go/transport"
)

// Clientは、サーバーとの間に1つのセッションを確立するクライアントです。
type Client struct {
	cfg    *ClientConfig
	logger log.Logger

	mu     sync.Mutex
	sess   *Session
	conn   transport.Conn
	cancel context.CancelFunc
	doneCh chan struct{}
}

// NewClientは、クライアントを生成します。
//
// configがnilの場合、すべての項目にデフォルト値が使用されます。
func NewClient(config *ClientConfig) *Client {
	cfg := config.normalize()
	doneCh := make(chan struct{})
	close(doneCh)
	return &Client{
		cfg:    cfg,
		logger: cfg.Logger,
		doneCh: doneCh,
	}
}

// Dialは、addressのサーバーに対してidのセッションを確立します。
func (c *Client) Dial(address string, id uint32) (*Session, error) {
	conn, peer, err := transport.DialUDP(address)
	if err != nil {
		return nil, err
	}
	sess, err := c.Connect(conn, peer, id)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return sess, nil
}

// Connectは、conn上でpeerに対してidのセッションを確立します。
//
// ハンドシェイクは行わず、セッションは即座に送信可能になります。
// connの所有権はクライアントへ移り、セッションの切断時に閉じられます。
func (c *Client) Connect(conn transport.Conn, peer net.Addr, id uint32) (*Session, error) {
	if id == 0 {
		return nil, ErrInvalidSessionID
	}
	c.mu.Lock()
	if c.sess != nil {
		c.mu.Unlock()
		return nil, ErrAlreadyConnected
	}
	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan struct{})
	sess := newSession(id, peer, conn, c.cfg.Config, c.logger, c.removeSession)
	sess.setConnected()
	c.sess = sess
	c.conn = conn
	c.cancel = cancel
	c.doneCh = doneCh
	c.mu.Unlock()

	c.logger.Infof(sess.ctx, "session %d connected to %v", id, peer)

	datagramCh := make(chan datagram, datagramQueueSize)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return readLoop(ctx, conn, datagramCh)
	})
	eg.Go(func() error {
		return c.loop(ctx, sess, datagramCh)
	})
	go func() {
		defer close(doneCh)
		if err := eg.Wait(); err != nil {
			c.logger.Errorf(sess.ctx, "session %d loop failed: %v", id, err)
		}
		// トランスポート異常等でループが先に終了した場合もセッションを畳む
		sess.Close()
	}()
	return sess, nil
}

// Sessionは、現在のセッションを返します。未接続の場合はnilを返します。
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Doneは、セッションの受信処理が終了した時に閉じられるチャネルを返します。
//
// 一度も接続していない場合、閉じられたチャネルを返します。
func (c *Client) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doneCh
}

// Disconnectは、セッションを切断します。
//
// 滞留中の送信データは破棄されます。切断済みの場合は何もしません。
func (c *Client) Disconnect() {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()
	if sess == nil {
		return
	}
	sess.Close()
}

// removeSessionは、セッションのCloseから呼び出され、受信処理を停止します。
func (c *Client) removeSession(sess *Session) {
	c.mu.Lock()
	cancel, conn := c.cancel, c.conn
	c.sess = nil
	c.cancel = nil
	c.conn = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close()
	}
}

// loopは、データグラムの振り分けとセッションの定期更新を直列に実行します。
//
// サーバーと同じ処理を単一のセッションに限定したものです。
func (c *Client) loop(ctx context.Context, sess *Session, datagramCh <-chan datagram) error {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case d := <-datagramCh:
			c.demux(ctx, sess, d)
		case <-ticker.C:
			now := clock.NowMS()
			if sess.isTimedOut(now, uint32(c.cfg.Timeout/time.Millisecond)) {
				c.logger.Infof(sess.ctx, "session %d timed out", sess.ID())
				sess.Close()
				continue
			}
			sess.tick(now)
		}
	}
}

func (c *Client) demux(ctx context.Context, sess *Session, d datagram) {
	if len(d.payload) < engine.HeaderSize {
		c.logger.Debugf(ctx, "dropped a runt datagram (%d bytes) from %v", len(d.payload), d.from)
		return
	}
	if id := binary.LittleEndian.Uint32(d.payload); id != sess.ID() {
		c.logger.Debugf(ctx, "dropped a datagram for unknown session %d from %v", id, d.from)
		return
	}
	sess.input(d.payload, clock.NowMS())
}
