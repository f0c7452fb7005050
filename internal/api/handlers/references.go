// references.go — обработчики /api/v1/references endpoints.
// CRUD записей справочника: список, активные, по id, по коду,
// создание, частичное обновление, удаление, проверка существования.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/gorefbook/internal/api/errors"
	"github.com/bigkaa/gorefbook/internal/service"
)

// ListReferences — GET /api/v1/references.
// Возвращает все записи справочника по возрастанию id.
func (h *APIHandler) ListReferences(w http.ResponseWriter, r *http.Request) {
	refs, err := h.references.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения списка записей", "error", err)
		apierrors.InternalError(w, "Ошибка получения списка записей")
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

// ListActiveReferences — GET /api/v1/references/active.
// Возвращает только активные записи.
func (h *APIHandler) ListActiveReferences(w http.ResponseWriter, r *http.Request) {
	refs, err := h.references.ListActive(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения активных записей", "error", err)
		apierrors.InternalError(w, "Ошибка получения активных записей")
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

// GetReference — GET /api/v1/references/{id}.
// Возвращает запись по id.
func (h *APIHandler) GetReference(w http.ResponseWriter, r *http.Request) {
	id, ok := referenceID(w, r)
	if !ok {
		return
	}

	ref, err := h.references.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, fmt.Sprintf("Запись с id %d не найдена", id))
			return
		}
		h.logger.Error("Ошибка получения записи", "id", id, "error", err)
		apierrors.InternalError(w, "Ошибка получения записи")
		return
	}

	writeJSON(w, http.StatusOK, ref)
}

// GetReferenceByCode — GET /api/v1/references/code/{code}.
// Возвращает запись по бизнес-коду.
func (h *APIHandler) GetReferenceByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		apierrors.ValidationError(w, "Код записи обязателен")
		return
	}

	ref, err := h.references.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, fmt.Sprintf("Запись с кодом %q не найдена", code))
			return
		}
		h.logger.Error("Ошибка получения записи по коду", "code", code, "error", err)
		apierrors.InternalError(w, "Ошибка получения записи")
		return
	}

	writeJSON(w, http.StatusOK, ref)
}

// CreateReference — POST /api/v1/references.
// Создаёт новую запись справочника.
func (h *APIHandler) CreateReference(w http.ResponseWriter, r *http.Request) {
	var req service.CreateReferenceDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	ref, err := h.references.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		if errors.Is(err, service.ErrConflict) {
			apierrors.Conflict(w, err.Error())
			return
		}
		h.logger.Error("Ошибка создания записи", "error", err)
		apierrors.InternalError(w, "Ошибка создания записи")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/references/%d", ref.ID))
	writeJSON(w, http.StatusCreated, ref)
}

// UpdateReference — PUT /api/v1/references/{id}.
// Частичное обновление: переносятся только поля, присутствующие в теле.
func (h *APIHandler) UpdateReference(w http.ResponseWriter, r *http.Request) {
	id, ok := referenceID(w, r)
	if !ok {
		return
	}

	var req service.UpdateReferenceDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	ref, err := h.references.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, fmt.Sprintf("Запись с id %d не найдена", id))
			return
		}
		if errors.Is(err, service.ErrConflict) {
			apierrors.Conflict(w, err.Error())
			return
		}
		h.logger.Error("Ошибка обновления записи", "id", id, "error", err)
		apierrors.InternalError(w, "Ошибка обновления записи")
		return
	}

	writeJSON(w, http.StatusOK, ref)
}

// DeleteReference — DELETE /api/v1/references/{id}.
// Возвращает 204, если запись удалена, 404 — если записи не было.
func (h *APIHandler) DeleteReference(w http.ResponseWriter, r *http.Request) {
	id, ok := referenceID(w, r)
	if !ok {
		return
	}

	deleted, err := h.references.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("Ошибка удаления записи", "id", id, "error", err)
		apierrors.InternalError(w, "Ошибка удаления записи")
		return
	}
	if !deleted {
		apierrors.NotFound(w, fmt.Sprintf("Запись с id %d не найдена", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReferenceExists — HEAD /api/v1/references/{id}.
// 200 если запись существует, 404 — если нет. Тело не возвращается.
func (h *APIHandler) ReferenceExists(w http.ResponseWriter, r *http.Request) {
	id, ok := referenceID(w, r)
	if !ok {
		return
	}

	exists, err := h.references.Exists(r.Context(), id)
	if err != nil {
		h.logger.Error("Ошибка проверки существования записи", "id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// referenceID извлекает целочисленный id из URL.
// При некорректном значении пишет 400 и возвращает ok=false.
func referenceID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректный id записи: %q", raw))
		return 0, false
	}
	return id, true
}
