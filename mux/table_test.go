package mux_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcpmux/kcpmux-go/log"
	"github.com/kcpmux/kcpmux-go/transport"

	. "github.com/kcpmux/kcpmux-go/mux"
)

func newTableSession(t *testing.T, id uint32) *Session {
	t.Helper()
	c1, c2 := transport.Pipe()
	t.Cleanup(func() {
		c1.Close()
		c2.Close()
	})
	return NewSessionForTest(id, c2.LocalAddr(), c1, DefaultConfig(), log.NewNop(), nil)
}

func TestSessionTable_loadOrStore(t *testing.T) {
	table := NewSessionTable()
	sess := newTableSession(t, 1)

	var created int
	got, ok := table.LoadOrStoreForTest(1, func() *Session {
		created++
		return sess
	})
	assert.True(t, ok)
	assert.Same(t, sess, got)

	got, ok = table.LoadOrStoreForTest(1, func() *Session {
		created++
		return newTableSession(t, 1)
	})
	assert.False(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, table.LenForTest())
}

func TestSessionTable_loadOrStore_concurrent(t *testing.T) {
	table := NewSessionTable()
	sessions := make([]*Session, 16)
	for i := range sessions {
		sessions[i] = newTableSession(t, 1)
	}

	var created int
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table.LoadOrStoreForTest(1, func() *Session {
				// createはロック下で呼ばれるため排他される
				created++
				return sessions[i]
			})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, table.LenForTest())
}

func TestSessionTable_delete(t *testing.T) {
	table := NewSessionTable()
	table.LoadOrStoreForTest(1, func() *Session { return newTableSession(t, 1) })
	table.LoadOrStoreForTest(2, func() *Session { return newTableSession(t, 2) })
	require.Equal(t, 2, table.LenForTest())

	table.DeleteForTest(1)
	_, ok := table.LoadForTest(1)
	assert.False(t, ok)
	_, ok = table.LoadForTest(2)
	assert.True(t, ok)
	assert.Equal(t, 1, table.LenForTest())

	// 存在しないIDの削除は何もしない
	table.DeleteForTest(99)
	assert.Equal(t, 1, table.LenForTest())
}

func TestSessionTable_snapshot(t *testing.T) {
	table := NewSessionTable()
	for id := uint32(1); id <= 4; id++ {
		id := id
		table.LoadOrStoreForTest(id, func() *Session { return newTableSession(t, id) })
	}

	snapshot := table.SnapshotForTest()
	require.Len(t, snapshot, 4)

	// スナップショットは取得後の削除の影響を受けない
	table.DeleteForTest(1)
	assert.Len(t, snapshot, 4)
	assert.Equal(t, 3, table.LenForTest())
}
