package messagecleanup

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Message は messages/{userId}/incoming/{messageId} に保存されるメッセージです
type Message struct {
	UserID    string    `firestore:"-"`
	MessageID string    `firestore:"-"`
	ExpiresAt time.Time `firestore:"expiresAt"`
	Delivered bool      `firestore:"delivered"`
}

// MessageRef は1件のメッセージドキュメントを指します
type MessageRef struct {
	UserID    string
	MessageID string
}

func (r MessageRef) String() string {
	return r.UserID + "/" + r.MessageID
}

// MessageStore は両ハンドラーが利用するストア操作です
type MessageStore interface {
	// Partitions はルートコレクション配下のユーザーIDを返します
	Partitions(ctx context.Context) ([]string, error)
	// ExpiredMessages は expiresAt <= now のメッセージを返します
	ExpiredMessages(ctx context.Context, userID string, now time.Time) ([]MessageRef, error)
	// DeleteMessage はメッセージを削除します。存在しない場合もエラーにしません
	DeleteMessage(ctx context.Context, ref MessageRef) error
}

// FirestoreStore はFirestore上の MessageStore 実装です
type FirestoreStore struct {
	client          *firestore.Client
	rootCollection  string
	inboxCollection string
}

func NewFirestoreStore(client *firestore.Client, cfg Config) *FirestoreStore {
	return &FirestoreStore{
		client:          client,
		rootCollection:  cfg.RootCollection,
		inboxCollection: cfg.InboxCollection,
	}
}

func (s *FirestoreStore) inbox(userID string) *firestore.CollectionRef {
	return s.client.Collection(s.rootCollection).Doc(userID).Collection(s.inboxCollection)
}

// Partitions は親ドキュメントが存在しないユーザーも含めて列挙します
func (s *FirestoreStore) Partitions(ctx context.Context) ([]string, error) {
	iter := s.client.Collection(s.rootCollection).DocumentRefs(ctx)

	var userIDs []string
	for {
		ref, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s partitions: %w", s.rootCollection, err)
		}
		userIDs = append(userIDs, ref.ID)
	}

	return userIDs, nil
}

func (s *FirestoreStore) ExpiredMessages(ctx context.Context, userID string, now time.Time) ([]MessageRef, error) {
	iter := s.inbox(userID).Where("expiresAt", "<=", now).Documents(ctx)
	defer iter.Stop()

	var refs []MessageRef
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query expired messages for user %s: %w", userID, err)
		}
		refs = append(refs, MessageRef{UserID: userID, MessageID: doc.Ref.ID})
	}

	return refs, nil
}

func (s *FirestoreStore) DeleteMessage(ctx context.Context, ref MessageRef) error {
	// 前提条件なしのDeleteは存在しないドキュメントに対しても成功する
	_, err := s.inbox(ref.UserID).Doc(ref.MessageID).Delete(ctx)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete message %s: %w", ref, err)
	}

	return nil
}

// GetMessage は1件のメッセージを取得します（ローカル確認用）
func (s *FirestoreStore) GetMessage(ctx context.Context, ref MessageRef) (*Message, error) {
	doc, err := s.inbox(ref.UserID).Doc(ref.MessageID).Get(ctx)
	if err != nil {
		return nil, err
	}

	var msg Message
	if err := doc.DataTo(&msg); err != nil {
		return nil, fmt.Errorf("failed to decode message %s: %w", ref, err)
	}
	msg.UserID = ref.UserID
	msg.MessageID = ref.MessageID

	return &msg, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
