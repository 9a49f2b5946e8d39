package mux

import (
	"time"

	"github.com/kcpmux/kcpmux-go/engine"
	"github.com/kcpmux/kcpmux-go/log"
)

const (
	defaultTimeout      = time.Second * 30
	defaultTickInterval = time.Millisecond * 10
)

// Configは、セッションのKCPパラメーターの設定です。
//
// DefaultConfigをベースに必要なフィールドだけを変更してください。
// 数値フィールドのゼロ値はデフォルト値として扱われます。
type Config struct {
	// NoDelayは、低遅延モードを有効にします。
	NoDelay bool
	// Intervalは、プロトコルの内部更新間隔です。
	Interval time.Duration
	// Resendは、高速再送のトリガーとなる重複ACK数です。0の場合無効です。
	Resend int
	// NoCongestionは、輻輳制御を無効にします。
	NoCongestion bool
	// SndWndは、送信ウィンドウサイズ（セグメント数）です。
	SndWnd int
	// RcvWndは、受信ウィンドウサイズ（セグメント数）です。
	RcvWnd int
	// MTUは、1データグラムの最大サイズです。
	MTU int
	// SendBacklogは、送信キューに滞留できるセグメント数の上限です。
	//
	// これを超えるとSendReliableはErrSendQueueFullを返します。
	// 0の場合、SndWndの2倍が使用されます。
	SendBacklog int
	// AckNoDelayは、ACKを即時送信します。
	AckNoDelay bool
}

// DefaultConfigは、低遅延向けのデフォルト設定を返します。
func DefaultConfig() *Config {
	return &Config{
		NoDelay:      true,
		Interval:     time.Millisecond * 10,
		Resend:       2,
		NoCongestion: true,
		SndWnd:       128,
		RcvWnd:       128,
		MTU:          1400,
		SendBacklog:  0,
		AckNoDelay:   true,
	}
}

func (c *Config) normalize() *Config {
	if c == nil {
		return DefaultConfig()
	}
	res := *c
	def := DefaultConfig()
	if res.Interval == 0 {
		res.Interval = def.Interval
	}
	if res.SndWnd == 0 {
		res.SndWnd = def.SndWnd
	}
	if res.RcvWnd == 0 {
		res.RcvWnd = def.RcvWnd
	}
	if res.MTU == 0 {
		res.MTU = def.MTU
	}
	if res.SendBacklog == 0 {
		res.SendBacklog = res.SndWnd * 2
	}
	return &res
}

func (c *Config) engineConfig() engine.Config {
	return engine.Config{
		NoDelay:      c.NoDelay,
		IntervalMs:   int(c.Interval / time.Millisecond),
		Resend:       c.Resend,
		NoCongestion: c.NoCongestion,
		SndWnd:       c.SndWnd,
		RcvWnd:       c.RcvWnd,
		MTU:          c.MTU,
		AckNoDelay:   c.AckNoDelay,
	}
}

// SessionHandlerは、サーバーが新しいセッションを受け付けた時に呼び出されるハンドラーです。
//
// セッションへの最初のデータ配送より前に、セッションごとに一度だけ呼び出されます。
type SessionHandler interface {
	OnSession(s *Session)
}

// SessionHandlerFuncは、関数をSessionHandlerとして使用するためのアダプターです。
type SessionHandlerFunc func(s *Session)

// OnSessionは、f(s)を呼び出します。
func (f SessionHandlerFunc) OnSession(s *Session) { f(s) }

type nopSessionHandler struct{}

func (nopSessionHandler) OnSession(s *Session) {}

// ServerConfigは、サーバーの設定です。
type ServerConfig struct {
	// Configは、受け付けたセッションに適用するKCPパラメーターです。
	//
	// nilの場合、DefaultConfigが使用されます。
	Config *Config
	// Timeoutは、セッションの無通信タイムアウトです。デフォルトは30秒です。
	Timeout time.Duration
	// TickIntervalは、セッションの定期更新とタイムアウト監視の間隔です。
	//
	// デフォルトは10ミリ秒です。
	TickInterval time.Duration
	// SessionHandlerは、新しいセッションの通知先です。
	SessionHandler SessionHandler
	// Loggerは、使用するロガーです。デフォルトはログ出力を行いません。
	Logger log.Logger
}

func (c *ServerConfig) normalize() *ServerConfig {
	var res ServerConfig
	if c != nil {
		res = *c
	}
	res.Config = res.Config.normalize()
	if res.Timeout == 0 {
		res.Timeout = defaultTimeout
	}
	if res.TickInterval == 0 {
		res.TickInterval = defaultTickInterval
	}
	if res.SessionHandler == nil {
		res.SessionHandler = nopSessionHandler{}
	}
	if res.Logger == nil {
		res.Logger = log.NewNop()
	}
	return &res
}

// ClientConfigは、クライアントの設定です。
type ClientConfig struct {
	// Configは、セッションに適用するKCPパラメーターです。
	//
	// nilの場合、DefaultConfigが使用されます。
	Config *Config
	// Timeoutは、セッションの無通信タイムアウトです。デフォルトは30秒です。
	Timeout time.Duration
	// TickIntervalは、セッションの定期更新とタイムアウト監視の間隔です。
	//
	// デフォルトは10ミリ秒です。
	TickInterval time.Duration
	// Loggerは、使用するロガーです。デフォルトはログ出力を行いません。
	Logger log.Logger
}

func (c *ClientConfig) normalize() *ClientConfig {
	var res ClientConfig
	if c != nil {
		res = *c
	}
	res.Config = res.Config.normalize()
	if res.Timeout == 0 {
		res.Timeout = defaultTimeout
	}
	if res.TickInterval == 0 {
		res.TickInterval = defaultTickInterval
	}
	if res.Logger == nil {
		res.Logger = log.NewNop()
	}
	return &res
}
