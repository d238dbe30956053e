// Package flash 存放一次性的狀態訊息：redirect 前寫入，下一次渲染頁面時取出並清除。
package flash

import (
	"context"
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindDanger  Kind = "danger"
)

type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type Store interface {
	// 加入一則訊息到 sid 對應的佇列
	Add(ctx context.Context, sid string, msg Message) error
	// 取出 sid 所有訊息並清空
	Pop(ctx context.Context, sid string) ([]Message, error)
}

// Session 綁定單一瀏覽器 session id 的 flash 操作
type Session struct {
	store Store
	id    string
}

func NewSession(store Store, id string) *Session {
	return &Session{store: store, id: id}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Success(ctx context.Context, text string) error {
	return s.store.Add(ctx, s.id, Message{Kind: KindSuccess, Text: text})
}

func (s *Session) Danger(ctx context.Context, text string) error {
	return s.store.Add(ctx, s.id, Message{Kind: KindDanger, Text: text})
}

func (s *Session) Pop(ctx context.Context) ([]Message, error) {
	return s.store.Pop(ctx, s.id)
}

type memoryEntry struct {
	messages  []Message
	expiresAt time.Time
}

// MemoryStore 單機用，測試與本機開發使用
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]*memoryEntry),
	}
}

func (m *MemoryStore) Add(ctx context.Context, sid string, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[sid]
	if !ok || m.expired(entry) {
		entry = &memoryEntry{}
		m.entries[sid] = entry
	}
	entry.messages = append(entry.messages, msg)
	if m.ttl > 0 {
		entry.expiresAt = time.Now().Add(m.ttl)
	}
	return nil
}

func (m *MemoryStore) Pop(ctx context.Context, sid string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[sid]
	if !ok {
		return nil, nil
	}
	delete(m.entries, sid)
	if m.expired(entry) {
		return nil, nil
	}
	return entry.messages, nil
}

func (m *MemoryStore) expired(entry *memoryEntry) bool {
	return !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)
}
