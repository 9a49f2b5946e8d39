package mux_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcpmux/kcpmux-go/engine"
	"github.com/kcpmux/kcpmux-go/transport"

	. "github.com/kcpmux/kcpmux-go/mux"
)

func TestClient_Connect_errors(t *testing.T) {
	cli := NewClient(&ClientConfig{TickInterval: time.Millisecond * 5})
	clientSide, serverSide := transport.Pipe()
	defer serverSide.Close()

	_, err := cli.Connect(clientSide, serverSide.LocalAddr(), 0)
	assert.ErrorIs(t, err, ErrInvalidSessionID)

	sess, err := cli.Connect(clientSide, serverSide.LocalAddr(), 1)
	require.NoError(t, err)
	assert.Equal(t, StateConnected, sess.State())
	assert.Same(t, sess, cli.Session())

	_, err = cli.Connect(clientSide, serverSide.LocalAddr(), 2)
	assert.ErrorIs(t, err, ErrAlreadyConnected)

	cli.Disconnect()
	<-cli.Done()
	assert.Nil(t, cli.Session())
	assert.Equal(t, StateDisconnected, sess.State())
}

func TestClient_Done_beforeConnect(t *testing.T) {
	cli := NewClient(nil)
	select {
	case <-cli.Done():
	default:
		t.Fatal("Done must be closed before the first Connect")
	}
}

func TestClient_Disconnect_idempotent(t *testing.T) {
	cli := NewClient(&ClientConfig{TickInterval: time.Millisecond * 5})
	clientSide, serverSide := transport.Pipe()
	defer serverSide.Close()

	sess, err := cli.Connect(clientSide, serverSide.LocalAddr(), 1)
	require.NoError(t, err)

	var closes int
	var mu sync.Mutex
	sess.OnClose(func(s *Session) {
		mu.Lock()
		defer mu.Unlock()
		closes++
	})

	cli.Disconnect()
	cli.Disconnect()
	<-cli.Done()
	cli.Disconnect()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, closes)
}

func TestClient_timeoutEviction(t *testing.T) {
	cli := NewClient(&ClientConfig{
		Timeout:      time.Millisecond * 50,
		TickInterval: time.Millisecond * 5,
	})
	clientSide, serverSide := transport.Pipe()
	defer serverSide.Close()

	sess, err := cli.Connect(clientSide, serverSide.LocalAddr(), 1)
	require.NoError(t, err)

	// 無通信のままタイムアウトを超過すると切断される
	select {
	case <-cli.Done():
	case <-time.After(time.Second * 3):
		t.Fatal("session was not evicted")
	}
	assert.Equal(t, StateDisconnected, sess.State())
	assert.Nil(t, cli.Session())
}

// echoServerは、受信メッセージへ接頭辞を付けて送り返すサーバーを起動します。
func echoServer(t *testing.T, conn transport.Conn) (*Server, <-chan error) {
	t.Helper()
	srv := NewServer(&ServerConfig{
		TickInterval: time.Millisecond * 5,
		SessionHandler: SessionHandlerFunc(func(s *Session) {
			s.OnData(func(s *Session, data []byte) {
				if bytes.HasPrefix(data, []byte("ATTACK")) || bytes.HasPrefix(data, []byte("BUY")) {
					s.SendReliable(append([]byte("服务器确认: "), data...))
					return
				}
				s.SendReliable(append([]byte("服务器回复: "), data...))
			})
		}),
	})
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(conn) }()
	return srv, errCh
}

func TestClientServer_reliableEcho(t *testing.T) {
	serverSide, clientSide := transport.Pipe()
	srv, errCh := echoServer(t, serverSide)

	cli := NewClient(&ClientConfig{TickInterval: time.Millisecond * 5})
	sess, err := cli.Connect(clientSide, serverSide.LocalAddr(), NewSessionID())
	require.NoError(t, err)

	var mu sync.Mutex
	var replies [][]byte
	sess.OnData(func(s *Session, data []byte) {
		mu.Lock()
		defer mu.Unlock()
		replies = append(replies, append([]byte(nil), data...))
	})

	require.NoError(t, sess.SendReliable([]byte("ATTACK: Enemy #123")))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(replies) == 1
	}, time.Second*3, time.Millisecond*10)

	mu.Lock()
	assert.Equal(t, []byte("服务器确认: ATTACK: Enemy #123"), replies[0])
	mu.Unlock()

	require.NoError(t, sess.SendReliable([]byte("hello")))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(replies) == 2
	}, time.Second*3, time.Millisecond*10)

	mu.Lock()
	assert.Equal(t, []byte("服务器回复: hello"), replies[1])
	mu.Unlock()

	cli.Disconnect()
	<-cli.Done()
	srv.Stop()
	require.NoError(t, <-errCh)
}

func TestClientServer_reliableOrdering(t *testing.T) {
	serverSide, clientSide := transport.Pipe()
	srv, errCh := echoServer(t, serverSide)

	cli := NewClient(&ClientConfig{TickInterval: time.Millisecond * 5})
	sess, err := cli.Connect(clientSide, serverSide.LocalAddr(), NewSessionID())
	require.NoError(t, err)

	var mu sync.Mutex
	var replies [][]byte
	sess.OnData(func(s *Session, data []byte) {
		mu.Lock()
		defer mu.Unlock()
		replies = append(replies, append([]byte(nil), data...))
	})

	want := [][]byte{
		[]byte("服务器回复: first"),
		[]byte("服务器回复: second"),
		[]byte("服务器回复: third"),
	}
	require.NoError(t, sess.SendReliable([]byte("first")))
	require.NoError(t, sess.SendReliable([]byte("second")))
	require.NoError(t, sess.SendReliable([]byte("third")))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(replies) == 3
	}, time.Second*3, time.Millisecond*10)

	// 信頼配送は送信順に届く
	mu.Lock()
	assert.Equal(t, want, replies)
	mu.Unlock()

	cli.Disconnect()
	<-cli.Done()
	srv.Stop()
	require.NoError(t, <-errCh)
}

func TestClientServer_directPathIsBestEffort(t *testing.T) {
	// 信頼配送のヘッダー長未満のデータグラム、すなわち直接送信だけを欠落させる
	serverSide, clientSide := transport.PipeWithDrop(func(p []byte) bool {
		return len(p) < engine.HeaderSize
	})
	srv, errCh := echoServer(t, serverSide)

	cli := NewClient(&ClientConfig{TickInterval: time.Millisecond * 5})
	sess, err := cli.Connect(clientSide, serverSide.LocalAddr(), NewSessionID())
	require.NoError(t, err)

	// 欠落しても送信側にはエラーが返らない
	require.NoError(t, sess.SendDirect([]byte("PING")))

	// 信頼配送は同じ損失条件でも到達する
	var mu sync.Mutex
	var replies int
	sess.OnData(func(s *Session, data []byte) {
		mu.Lock()
		defer mu.Unlock()
		replies++
	})
	require.NoError(t, sess.SendReliable([]byte("still works")))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return replies == 1
	}, time.Second*3, time.Millisecond*10)

	cli.Disconnect()
	<-cli.Done()
	srv.Stop()
	require.NoError(t, <-errCh)
}
