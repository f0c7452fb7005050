// dto.go — DTO на границе сервисного слоя.
// Чистые данные без поведения: сервис принимает и возвращает только их,
// доменные сущности наружу не выходят.
package service

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceDTO — полная проекция записи справочника.
// Все поля отображаются из сущности 1:1, вычисляемых полей нет.
type ReferenceDTO struct {
	ID          int        `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Value       *string    `json:"value,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  *time.Time `json:"modified_at,omitempty"`
}

// CreateReferenceDTO — данные для создания записи справочника.
// Code и Name обязательны; Active по умолчанию true.
type CreateReferenceDTO struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Value       *string `json:"value,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// UpdateReferenceDTO — данные частичного обновления записи.
// nil-поле означает «не менять»; непустой указатель — «установить значение».
// Code после создания не меняется и в DTO обновления отсутствует.
type UpdateReferenceDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Value       *string `json:"value,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// MessageDTO — проекция демонстрационного сообщения.
type MessageDTO struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMessageDTO — данные для создания сообщения.
type CreateMessageDTO struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// APIInfoDTO — информация о сервисе для /api/v1/info.
type APIInfoDTO struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Description  string    `json:"description"`
	Architecture string    `json:"architecture"`
	Layers       []string  `json:"layers"`
	Environment  string    `json:"environment"`
	Timestamp    time.Time `json:"timestamp"`
}
