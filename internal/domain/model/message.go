package model

import (
	"time"

	"github.com/google/uuid"
)

// Message — демонстрационное сообщение.
// Хранится только в памяти, идентификатор — UUID.
type Message struct {
	// ID — UUID сообщения
	ID uuid.UUID
	// Content — текст сообщения
	Content string
	// Author — автор сообщения
	Author string
	// CreatedAt — время создания (UTC)
	CreatedAt time.Time
}

// NewMessage создаёт новое сообщение с UUID и временем создания UTC.
func NewMessage(content, author string) *Message {
	return &Message{
		ID:        uuid.New(),
		Content:   content,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
}
