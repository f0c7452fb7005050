// reference.go — сервис справочника: оркестрация CRUD-операций
// между DTO и доменными сущностями.
// Частичное обновление выполняется здесь: переносятся только поля,
// явно присутствующие в DTO; репозиторий сохраняет запись целиком.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bigkaa/gorefbook/internal/domain/model"
	"github.com/bigkaa/gorefbook/internal/repository"
)

// ReferenceService — сервис записей справочника.
// Не хранит состояния между вызовами: каждый вызов — одна операция репозитория.
type ReferenceService struct {
	repo   repository.ReferenceRepository
	logger *slog.Logger
}

// NewReferenceService создаёт сервис справочника.
func NewReferenceService(repo repository.ReferenceRepository, logger *slog.Logger) *ReferenceService {
	return &ReferenceService{
		repo:   repo,
		logger: logger.With(slog.String("component", "reference_service")),
	}
}

// List возвращает все записи справочника по возрастанию id.
func (s *ReferenceService) List(ctx context.Context) ([]ReferenceDTO, error) {
	recs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение списка записей: %w", err)
	}
	return mapReferences(recs), nil
}

// ListActive возвращает только активные записи по возрастанию id.
func (s *ReferenceService) ListActive(ctx context.Context) ([]ReferenceDTO, error) {
	recs, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение активных записей: %w", err)
	}
	return mapReferences(recs), nil
}

// GetByID возвращает запись по id. ErrNotFound, если записи нет.
func (s *ReferenceService) GetByID(ctx context.Context, id int) (*ReferenceDTO, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение записи: %w", err)
	}
	dto := mapReference(rec)
	return &dto, nil
}

// GetByCode возвращает запись по бизнес-коду. ErrNotFound, если записи нет.
func (s *ReferenceService) GetByCode(ctx context.Context, code string) (*ReferenceDTO, error) {
	rec, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение записи по коду: %w", err)
	}
	dto := mapReference(rec)
	return &dto, nil
}

// Create создаёт новую запись справочника.
// Code и Name обязательны (ErrValidation), Active по умолчанию true,
// CreatedAt устанавливается при конструировании сущности.
// Дублирующийся код — ErrConflict (уникальность обеспечивает хранилище).
func (s *ReferenceService) Create(ctx context.Context, dto CreateReferenceDTO) (*ReferenceDTO, error) {
	if strings.TrimSpace(dto.Code) == "" {
		return nil, fmt.Errorf("%w: код записи обязателен", ErrValidation)
	}
	if strings.TrimSpace(dto.Name) == "" {
		return nil, fmt.Errorf("%w: имя записи обязательно", ErrValidation)
	}

	rec := model.NewReferenceRecord(dto.Code, dto.Name, dto.Description, dto.Value)
	if dto.Active != nil {
		rec.Active = *dto.Active
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: запись с кодом %q уже существует", ErrConflict, dto.Code)
		}
		return nil, fmt.Errorf("создание записи: %w", err)
	}

	s.logger.Info("Запись справочника создана",
		slog.Int("id", rec.ID),
		slog.String("code", rec.Code),
	)

	result := mapReference(rec)
	return &result, nil
}

// Update выполняет частичное обновление записи по id.
// Переносятся только не-nil поля DTO, остальные значения сохраняются.
// ModifiedAt устанавливается при каждом успешном обновлении, даже если
// ни одно видимое поле не изменилось. ErrNotFound, если записи нет.
func (s *ReferenceService) Update(ctx context.Context, id int, dto UpdateReferenceDTO) (*ReferenceDTO, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение записи для обновления: %w", err)
	}

	// Применяем только явно переданные поля
	if dto.Name != nil {
		rec.Name = *dto.Name
	}
	if dto.Description != nil {
		rec.Description = dto.Description
	}
	if dto.Value != nil {
		rec.Value = dto.Value
	}
	if dto.Active != nil {
		rec.Active = *dto.Active
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("обновление записи: %w", err)
	}

	s.logger.Info("Запись справочника обновлена",
		slog.Int("id", rec.ID),
	)

	result := mapReference(rec)
	return &result, nil
}

// Delete удаляет запись по id. Возвращает true, если запись существовала.
func (s *ReferenceService) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("удаление записи: %w", err)
	}
	if deleted {
		s.logger.Info("Запись справочника удалена",
			slog.Int("id", id),
		)
	}
	return deleted, nil
}

// Exists проверяет наличие записи с указанным id.
func (s *ReferenceService) Exists(ctx context.Context, id int) (bool, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("проверка существования записи: %w", err)
	}
	return exists, nil
}

// --- Маппинг сущность → DTO ---

// mapReference — чистая проекция сущности в DTO, все поля 1:1.
func mapReference(rec *model.ReferenceRecord) ReferenceDTO {
	return ReferenceDTO{
		ID:          rec.ID,
		Code:        rec.Code,
		Name:        rec.Name,
		Description: rec.Description,
		Value:       rec.Value,
		Active:      rec.Active,
		CreatedAt:   rec.CreatedAt,
		ModifiedAt:  rec.ModifiedAt,
	}
}

// mapReferences проецирует срез сущностей с сохранением порядка.
func mapReferences(recs []*model.ReferenceRecord) []ReferenceDTO {
	result := make([]ReferenceDTO, len(recs))
	for i, rec := range recs {
		result[i] = mapReference(rec)
	}
	return result
}
