// messages.go — обработчики /api/v1/messages, /api/v1/hello и /api/v1/info.
// Демонстрационный ресурс: сообщения живут в памяти процесса.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/bigkaa/gorefbook/internal/api/errors"
	"github.com/bigkaa/gorefbook/internal/service"
)

// Hello — GET /api/v1/hello.
// Создаёт приветственное сообщение, сохраняет его и возвращает.
func (h *APIHandler) Hello(w http.ResponseWriter, r *http.Request) {
	msg, err := h.messages.Hello(r.Context())
	if err != nil {
		h.logger.Error("Ошибка создания приветственного сообщения", "error", err)
		apierrors.InternalError(w, "Ошибка создания сообщения")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// ListMessages — GET /api/v1/messages.
// Возвращает все сообщения в порядке добавления.
func (h *APIHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messages.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения списка сообщений", "error", err)
		apierrors.InternalError(w, "Ошибка получения сообщений")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// CreateMessage — POST /api/v1/messages.
// Создаёт новое сообщение. Content и Author обязательны.
func (h *APIHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	msg, err := h.messages.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка создания сообщения", "error", err)
		apierrors.InternalError(w, "Ошибка создания сообщения")
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// GetInfo — GET /api/v1/info.
// Возвращает информацию о сервисе.
func (h *APIHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.messages.Info())
}
