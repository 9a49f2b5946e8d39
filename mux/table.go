package mux

import (
	"sync"
)

// sessionTableは、セッションIDとセッションの対応表です。
type sessionTable struct {
	mu       sync.Mutex
	sessions map[uint32]*Session
}

func newSessionTable() *sessionTable {
	return &sessionTable{
		sessions: map[uint32]*Session{},
	}
}

func (t *sessionTable) load(id uint32) (*Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[id]
	return s, ok
}

// loadOrStoreは、idのセッションを返します。存在しない場合はcreateで生成して格納します。
//
// 生成した場合はtrueを返します。createはロックを保持したまま呼び出されるため、
// このテーブルを操作してはいけません。
func (t *sessionTable) loadOrStore(id uint32, create func() *Session) (*Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.sessions[id]; ok {
		return s, false
	}
	s := create()
	t.sessions[id] = s
	return s, true
}

func (t *sessionTable) delete(id uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, id)
}

// snapshotは、現在のセッション一覧のコピーを返します。
//
// 掃引中のCloseによる削除とイテレーションを分離するために使用します。
func (t *sessionTable) snapshot() []*Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := make([]*Session, 0, len(t.sessions))
	for _, s := range t.sessions {
		res = append(res, s)
	}
	return res
}

func (t *sessionTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
