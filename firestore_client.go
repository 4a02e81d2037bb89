// firestore_client.go
package messagecleanup

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewFirestoreClient はFirebase Admin SDK経由でFirestoreクライアントを作成します。
// プロセスごとに一度だけ呼び出し、各ハンドラーへ明示的に渡してください。
func NewFirestoreClient(ctx context.Context, cfg Config) (*firestore.Client, error) {
	Info("Initializing Firestore client...")

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	// 未設定の場合はApplication Default Credentialsを使う（Cloud Functions上など）

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("Firebase Admin SDKの初期化に失敗しました: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの取得に失敗しました: %w", err)
	}

	Info("Firestore client initialized successfully.")
	return client, nil
}
