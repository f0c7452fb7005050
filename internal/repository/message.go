// message.go — in-memory репозиторий демонстрационных сообщений.
// Сообщения живут только в памяти процесса и теряются при рестарте.
package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/bigkaa/gorefbook/internal/domain/model"
)

// MessageRepository — интерфейс хранилища сообщений.
type MessageRepository interface {
	// GetAll возвращает все сообщения в порядке добавления.
	GetAll(ctx context.Context) ([]*model.Message, error)
	// GetByID возвращает сообщение по UUID. ErrNotFound, если сообщения нет.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Message, error)
	// Add сохраняет новое сообщение.
	Add(ctx context.Context, msg *model.Message) error
}

// memoryMessageRepo — потокобезопасное in-memory хранилище сообщений.
type memoryMessageRepo struct {
	mu       sync.RWMutex
	messages []*model.Message
}

// NewMemoryMessageRepository создаёт пустой репозиторий сообщений.
func NewMemoryMessageRepository() MessageRepository {
	return &memoryMessageRepo{}
}

func (r *memoryMessageRepo) GetAll(ctx context.Context) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Message, len(r.messages))
	for i, msg := range r.messages {
		m := *msg
		result[i] = &m
	}
	return result, nil
}

func (r *memoryMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, msg := range r.messages {
		if msg.ID == id {
			m := *msg
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryMessageRepo) Add(ctx context.Context, msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := *msg
	r.messages = append(r.messages, &m)
	return nil
}
