package mux

import (
	"net"

	"github.com/kcpmux/kcpmux-go/engine"
	"github.com/kcpmux/kcpmux-go/log"
	"github.com/kcpmux/kcpmux-go/transport"
)

type SessionTable = sessionTable

var NewSessionTable = newSessionTable

func NewSessionForTest(id uint32, peer net.Addr, conn transport.Conn, cfg *Config, logger log.Logger, onRemove func(s *Session)) *Session {
	return newSession(id, peer, conn, cfg.normalize(), logger, onRemove)
}

func (s *Session) SetConnectedForTest() { s.setConnected() }

func (s *Session) InputForTest(data []byte, now uint32) { s.input(data, now) }

func (s *Session) TickForTest(now uint32) { s.tick(now) }

func (s *Session) IsTimedOutForTest(now, timeoutMS uint32) bool { return s.isTimedOut(now, timeoutMS) }

func (s *Session) SwapEngineForTest(e engine.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng = e
}

func (t *sessionTable) LoadForTest(id uint32) (*Session, bool) { return t.load(id) }

func (t *sessionTable) LoadOrStoreForTest(id uint32, create func() *Session) (*Session, bool) {
	return t.loadOrStore(id, create)
}

func (t *sessionTable) DeleteForTest(id uint32) { t.delete(id) }

func (t *sessionTable) SnapshotForTest() []*Session { return t.snapshot() }

func (t *sessionTable) LenForTest() int { return t.len() }
