/*
Package kcpmuxは、単一のUDPソケット上に複数のKCPセッションを多重化するセッションレイヤーの実装パッケージです。

各データグラムの先頭4バイトに載るセッションID（KCPのconv）でデマルチプレクスを行い、
セッションのライフサイクル（生成・アクティビティ追跡・タイムアウト破棄・クローズ）と、
信頼性のある送信経路（KCP経由）／ベストエフォートの直接送信経路の二系統を提供します。

# Server

サーバーはUDPソケットへバインドし、未知のセッションIDを持つデータグラムを受信したタイミングで
セッションを生成します。

	srv := mux.NewServer(&mux.ServerConfig{
		Timeout: 30 * time.Second,
		SessionHandler: mux.SessionHandlerFunc(func(sess *mux.Session) {
			sess.OnData(func(sess *mux.Session, payload []byte) {
				// 受信メッセージはセッションごとに順序が保証されます。
				sess.SendReliable(payload)
			})
		}),
	})
	if err := srv.ListenAndServe("0.0.0.0:8888"); err != nil {
		log.Fatal(err)
	}

# Client

クライアントは単一セッションの特殊化です。セッションIDは通信の両端で一致している必要があります。

	cli := mux.NewClient(nil)
	sess, err := cli.Dial("127.0.0.1:8888", mux.NewSessionID())
	if err != nil {
		log.Fatal(err)
	}
	defer cli.Disconnect()

	sess.OnData(func(sess *mux.Session, payload []byte) {
		log.Printf("received: %s", payload)
	})
	if err := sess.SendReliable([]byte("hello")); err != nil {
		log.Fatal(err)
	}
	<-cli.Done()
*/
package kcpmux
