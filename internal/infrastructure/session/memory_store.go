package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain/intent"
)

var _ ports.ConversationStore = (*MemoryStore)(nil)

// MemoryStore store de un solo proceso para desarrollo (sin REDIS_ADDR).
// Guarda copias serializadas para que los llamadores no compartan punteros.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[uuid.UUID]memoryItem
}

type memoryItem struct {
	raw       []byte
	expiresAt time.Time
}

// NewMemoryStore construye el store. ttl 0 = sin expiración.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, items: make(map[uuid.UUID]memoryItem)}
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*intent.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, ports.ErrConversationNotFound
	}
	if !item.expiresAt.IsZero() && s.now().After(item.expiresAt) {
		delete(s.items, id)
		return nil, ports.ErrConversationNotFound
	}
	var conv intent.Conversation
	if err := json.Unmarshal(item.raw, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *MemoryStore) Save(_ context.Context, conv *intent.Conversation) error {
	raw, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	item := memoryItem{raw: raw}
	if s.ttl > 0 {
		item.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.items[conv.ID] = item
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}
