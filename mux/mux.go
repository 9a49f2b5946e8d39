/*
Package mux は、単一のデータグラムトランスポート上で複数のKCPセッションを多重化するパッケージです。

各データグラムの先頭4バイト（リトルエンディアンのセッションID）により、
受信データグラムを該当セッションへ振り分けます。サーバーは未知のIDの
データグラムを受信するとセッションを生成し、クライアントは単一の
セッションだけを扱います。
*/
package mux

import (
	"github.com/kcpmux/kcpmux-go/errors"
)

var (
	// ErrServerStartedは、すでに開始済みのサーバーを開始しようとした場合のエラーです。
	ErrServerStarted = errors.New("server already started")
	// ErrServerClosedは、停止済みのサーバーを操作した場合のエラーです。
	ErrServerClosed = errors.New("server closed")
	// ErrAlreadyConnectedは、接続済みのクライアントで再度接続を試みた場合のエラーです。
	ErrAlreadyConnected = errors.New("already connected")
	// ErrInvalidSessionIDは、セッションIDが不正な場合のエラーです。
	ErrInvalidSessionID = errors.New("invalid session id")
)
