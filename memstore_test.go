package messagecleanup

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memStore はテスト用のインメモリ MessageStore です
type memStore struct {
	mu       sync.Mutex
	messages map[MessageRef]Message

	partitionsErr error
	queryErr      error
	deleteErr     error
	// failDeleteAt 回目（1始まり）の削除で deleteErr を返す。0なら毎回返す
	failDeleteAt int

	deleteCalls int
	deleted     []MessageRef
	onDelete    func(ref MessageRef)
}

func newMemStore() *memStore {
	return &memStore{messages: map[MessageRef]Message{}}
}

func (m *memStore) put(userID, messageID string, expiresAt time.Time, delivered bool) MessageRef {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref := MessageRef{UserID: userID, MessageID: messageID}
	m.messages[ref] = Message{
		UserID:    userID,
		MessageID: messageID,
		ExpiresAt: expiresAt,
		Delivered: delivered,
	}
	return ref
}

func (m *memStore) has(ref MessageRef) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.messages[ref]
	return ok
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.messages)
}

func (m *memStore) Partitions(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.partitionsErr != nil {
		return nil, m.partitionsErr
	}

	seen := map[string]bool{}
	var userIDs []string
	for ref := range m.messages {
		if !seen[ref.UserID] {
			seen[ref.UserID] = true
			userIDs = append(userIDs, ref.UserID)
		}
	}
	sort.Strings(userIDs)
	return userIDs, nil
}

func (m *memStore) ExpiredMessages(_ context.Context, userID string, now time.Time) ([]MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.queryErr != nil {
		return nil, m.queryErr
	}

	var refs []MessageRef
	for ref, msg := range m.messages {
		if ref.UserID == userID && !msg.ExpiresAt.After(now) {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].MessageID < refs[j].MessageID })
	return refs, nil
}

func (m *memStore) DeleteMessage(_ context.Context, ref MessageRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteCalls++
	if m.deleteErr != nil && (m.failDeleteAt == 0 || m.failDeleteAt == m.deleteCalls) {
		return m.deleteErr
	}
	if m.onDelete != nil {
		m.onDelete(ref)
	}

	delete(m.messages, ref)
	m.deleted = append(m.deleted, ref)
	return nil
}
