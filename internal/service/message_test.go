package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/bigkaa/gorefbook/internal/repository"
)

// newMessageService собирает сервис поверх реального in-memory репозитория.
func newMessageService() *MessageService {
	return NewMessageService(repository.NewMemoryMessageRepository(), "test", slog.Default())
}

// TestMessageService_Hello проверяет создание приветственного сообщения.
func TestMessageService_Hello(t *testing.T) {
	svc := newMessageService()

	dto, err := svc.Hello(context.Background())
	if err != nil {
		t.Fatalf("Hello() ошибка: %v", err)
	}

	if dto.Content == "" {
		t.Error("Content пустой")
	}
	if dto.Author != "system" {
		t.Errorf("Author = %q, ожидается system", dto.Author)
	}
	if dto.CreatedAt.IsZero() {
		t.Error("CreatedAt не установлен")
	}

	// Сообщение сохранено в хранилище
	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List() вернул %d сообщений, ожидается 1", len(list))
	}
}

// TestMessageService_Create проверяет создание сообщения и порядок в списке.
func TestMessageService_Create(t *testing.T) {
	svc := newMessageService()
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateMessageDTO{Content: "первое", Author: "alice"})
	if err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	second, err := svc.Create(ctx, CreateMessageDTO{Content: "второе", Author: "bob"})
	if err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	if first.ID == second.ID {
		t.Error("ID сообщений совпадают")
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() вернул %d сообщений, ожидается 2", len(list))
	}
	if list[0].Content != "первое" || list[1].Content != "второе" {
		t.Errorf("порядок сообщений нарушен: %+v", list)
	}
}

// TestMessageService_Create_Validation проверяет обязательность content и author.
func TestMessageService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		dto  CreateMessageDTO
	}{
		{"пустой content", CreateMessageDTO{Content: "", Author: "alice"}},
		{"пробельный content", CreateMessageDTO{Content: "  ", Author: "alice"}},
		{"пустой author", CreateMessageDTO{Content: "текст", Author: ""}},
	}

	svc := newMessageService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.dto)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Create() = %v, ожидается ErrValidation", err)
			}
		})
	}
}

// TestMessageService_Info проверяет информацию о сервисе.
func TestMessageService_Info(t *testing.T) {
	svc := NewMessageService(repository.NewMemoryMessageRepository(), "production", slog.Default())

	info := svc.Info()
	if info.Name != "Ref Module" {
		t.Errorf("Name = %q, ожидается Ref Module", info.Name)
	}
	if info.Environment != "production" {
		t.Errorf("Environment = %q, ожидается production", info.Environment)
	}
	if len(info.Layers) != 4 {
		t.Errorf("Layers = %v, ожидается 4 слоя", info.Layers)
	}
	if info.Timestamp.IsZero() {
		t.Error("Timestamp не установлен")
	}
}
