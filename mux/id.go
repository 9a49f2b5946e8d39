package mux

import (
	"github.com/google/uuid"
)

// NewSessionIDは、新しいセッションIDを採番します。
//
// 0は予約されているため返却されません。
func NewSessionID() uint32 {
	for {
		if id := uuid.New().ID(); id != 0 {
			return id
		}
	}
}
