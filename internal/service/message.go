// message.go — сервис демонстрационных сообщений и информации о сервисе.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bigkaa/gorefbook/internal/config"
	"github.com/bigkaa/gorefbook/internal/domain/model"
	"github.com/bigkaa/gorefbook/internal/repository"
)

// MessageService — сервис демонстрационных сообщений.
type MessageService struct {
	repo        repository.MessageRepository
	environment string
	logger      *slog.Logger
}

// NewMessageService создаёт сервис сообщений.
func NewMessageService(repo repository.MessageRepository, environment string, logger *slog.Logger) *MessageService {
	return &MessageService{
		repo:        repo,
		environment: environment,
		logger:      logger.With(slog.String("component", "message_service")),
	}
}

// Hello создаёт приветственное сообщение, сохраняет его и возвращает DTO.
func (s *MessageService) Hello(ctx context.Context) (*MessageDTO, error) {
	msg := model.NewMessage("Привет от ref-module!", "system")
	if err := s.repo.Add(ctx, msg); err != nil {
		return nil, fmt.Errorf("сохранение приветственного сообщения: %w", err)
	}
	dto := mapMessage(msg)
	return &dto, nil
}

// List возвращает все сообщения в порядке добавления.
func (s *MessageService) List(ctx context.Context) ([]MessageDTO, error) {
	msgs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение списка сообщений: %w", err)
	}
	result := make([]MessageDTO, len(msgs))
	for i, msg := range msgs {
		result[i] = mapMessage(msg)
	}
	return result, nil
}

// Create создаёт новое сообщение. Content и Author обязательны.
func (s *MessageService) Create(ctx context.Context, dto CreateMessageDTO) (*MessageDTO, error) {
	if strings.TrimSpace(dto.Content) == "" {
		return nil, fmt.Errorf("%w: текст сообщения обязателен", ErrValidation)
	}
	if strings.TrimSpace(dto.Author) == "" {
		return nil, fmt.Errorf("%w: автор сообщения обязателен", ErrValidation)
	}

	msg := model.NewMessage(dto.Content, dto.Author)
	if err := s.repo.Add(ctx, msg); err != nil {
		return nil, fmt.Errorf("сохранение сообщения: %w", err)
	}

	s.logger.Info("Сообщение создано",
		slog.String("message_id", msg.ID.String()),
		slog.String("author", msg.Author),
	)

	result := mapMessage(msg)
	return &result, nil
}

// Info возвращает информацию о сервисе.
func (s *MessageService) Info() APIInfoDTO {
	return APIInfoDTO{
		Name:         "Ref Module",
		Version:      config.Version,
		Description:  "Справочник универсальных записей (код/имя/описание/значение)",
		Architecture: "Ports and Adapters",
		Layers:       []string{"domain", "repository", "service", "api"},
		Environment:  s.environment,
		Timestamp:    time.Now().UTC(),
	}
}

// mapMessage — проекция сущности сообщения в DTO.
func mapMessage(msg *model.Message) MessageDTO {
	return MessageDTO{
		ID:        msg.ID,
		Content:   msg.Content,
		Author:    msg.Author,
		CreatedAt: msg.CreatedAt,
	}
}
