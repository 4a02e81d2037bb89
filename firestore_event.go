package messagecleanup

import (
	"fmt"
	"strings"
	"time"
)

// FirestoreEvent はFirestoreトリガー（providers/cloud.firestore/eventTypes/document.update）の
// ペイロードです。oldValue が更新前、value が更新後のドキュメントです。
type FirestoreEvent struct {
	OldValue   FirestoreValue `json:"oldValue"`
	Value      FirestoreValue `json:"value"`
	UpdateMask struct {
		FieldPaths []string `json:"fieldPaths"`
	} `json:"updateMask"`
}

// FirestoreValue はイベント内のドキュメントのスナップショットです
type FirestoreValue struct {
	CreateTime time.Time                 `json:"createTime"`
	Fields     map[string]FirestoreField `json:"fields"`
	Name       string                    `json:"name"`
	UpdateTime time.Time                 `json:"updateTime"`
}

// FirestoreField は型付きの値です。このパッケージで使う型だけを持ちます。
type FirestoreField struct {
	BooleanValue   *bool      `json:"booleanValue,omitempty"`
	TimestampValue *time.Time `json:"timestampValue,omitempty"`
}

// Snapshot はハンドラーが判定に使う更新前後の状態です。
// Delivered が nil の場合はフィールドが存在しないことを表します。
type Snapshot struct {
	Delivered *bool
	ExpiresAt *time.Time
}

// Snapshot はイベントの値を判定用の Snapshot に変換します
func (v FirestoreValue) Snapshot() Snapshot {
	var snap Snapshot
	if f, ok := v.Fields["delivered"]; ok {
		snap.Delivered = f.BooleanValue
	}
	if f, ok := v.Fields["expiresAt"]; ok {
		snap.ExpiresAt = f.TimestampValue
	}
	return snap
}

// parseMessagePath はドキュメントのリソース名から userId と messageId を取り出します。
// 例: projects/p/databases/(default)/documents/messages/u1/incoming/m1
func parseMessagePath(name, rootCollection, inboxCollection string) (MessageRef, error) {
	path := name
	if i := strings.Index(name, "/documents/"); i >= 0 {
		path = name[i+len("/documents/"):]
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 4 || segments[0] != rootCollection || segments[2] != inboxCollection {
		return MessageRef{}, fmt.Errorf("unexpected document path %q", name)
	}
	if segments[1] == "" || segments[3] == "" {
		return MessageRef{}, fmt.Errorf("document path %q has an empty id", name)
	}

	return MessageRef{UserID: segments[1], MessageID: segments[3]}, nil
}
