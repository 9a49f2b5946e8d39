package log

import (
	"context"
	"strconv"
)

// Loggerは、kcpmux-go内で使用するロガーインターフェースです。
type Logger interface {
	Infof(context.Context, string, ...interface{})
	Warnf(context.Context, string, ...interface{})
	Errorf(context.Context, string, ...interface{})
	Debugf(context.Context, string, ...interface{})
}

var sessionIDKey = "sessionIDKey"

// WithSessionIDは、セッションIDをコンテキストにセットします。
//
// セッションIDはセッションが生成されたタイミングでセットします。
// ここで設定されたセッションIDは常にログ出力します。
func WithSessionID(ctx context.Context, id uint32) context.Context {
	return context.WithValue(ctx, &sessionIDKey, id)
}

// SessionIDは、コンテキストにセットされたセッションIDを取得します。
func SessionID(ctx context.Context) string {
	v, ok := ctx.Value(&sessionIDKey).(uint32)
	if !ok {
		return ""
	}
	return strconv.FormatUint(uint64(v), 10)
}
