package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrKCPMuxはkcpmuxライブラリで定義されている基底エラーです。
	ErrKCPMux = errors.New("kcpmux")
	// ErrTransportClosedは、トランスポートが閉じられている状態で読み書きをした場合のエラーです。
	ErrTransportClosed = fmt.Errorf("closed transport: %w", ErrKCPMux)
	// ErrSessionClosedは、セッションが閉じられている状態で操作をした場合のエラーです。
	ErrSessionClosed = fmt.Errorf("closed kcp session: %w", ErrKCPMux)
	// ErrSessionNotConnectedは、Connected状態でないセッションに対して送信をした場合のエラーです。
	ErrSessionNotConnected = fmt.Errorf("session is not connected: %w", ErrKCPMux)
	// ErrMalformedDatagramは、データグラムがエンジンでデコードできなかった場合のエラーです。
	ErrMalformedDatagram = fmt.Errorf("malformed datagram: %w", ErrKCPMux)
	// ErrMessageTooLargeは、メッセージが大きすぎてエンジンが受け付けられない場合のエラーです。
	ErrMessageTooLarge = fmt.Errorf("message is too large: %w", ErrKCPMux)
	// ErrSendQueueFullは、信頼性のある送信経路のキューが上限に達している場合のエラーです。
	//
	// 呼び出し側はこのエラーを受けてバックプレッシャーを適用できます
	// （直接送信経路への切り替えやリトライなど）。
	ErrSendQueueFull = fmt.Errorf("send queue is full: %w", ErrKCPMux)
)

func New(text string) error {
	return errors.New(text)
}

func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
