// Package clock は、セッションレイヤーで使用する単調増加のミリ秒時計です。
//
// タイムスタンプはuint32で表現され、約49日でラップアラウンドします。
// 経過時間の比較は必ず Since による減算で行います。
package clock

import "time"

var refTime = time.Now()

// NowMSは、プロセス起動からの経過ミリ秒を返却します。
func NowMS() uint32 {
	return uint32(time.Since(refTime) / time.Millisecond)
}

// Sinceは、sinceからnowまでの経過ミリ秒をラップアラウンド安全に計算します。
func Since(now, since uint32) uint32 {
	return now - since
}
