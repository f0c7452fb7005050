package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/gorefbook/internal/repository"
	"github.com/bigkaa/gorefbook/internal/service"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// errorEnvelope — формат тела ответа ошибки API.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newTestRouter собирает API handler поверх in-memory хранилищ
// и chi-роутер с маршрутами справочника и сообщений.
func newTestRouter() *chi.Mux {
	logger := testLogger()
	refSvc := service.NewReferenceService(repository.NewMemoryReferenceRepository(), logger)
	msgSvc := service.NewMessageService(repository.NewMemoryMessageRepository(), "test", logger)
	h := NewAPIHandler(refSvc, msgSvc, NewHealthHandler(MemoryChecker{}), logger)

	router := chi.NewRouter()
	router.Route("/api/v1/references", func(r chi.Router) {
		r.Get("/", h.ListReferences)
		r.Post("/", h.CreateReference)
		r.Get("/active", h.ListActiveReferences)
		r.Get("/code/{code}", h.GetReferenceByCode)
		r.Get("/{id}", h.GetReference)
		r.Put("/{id}", h.UpdateReference)
		r.Delete("/{id}", h.DeleteReference)
		r.Head("/{id}", h.ReferenceExists)
	})
	router.Get("/api/v1/hello", h.Hello)
	router.Get("/api/v1/messages", h.ListMessages)
	router.Post("/api/v1/messages", h.CreateMessage)
	router.Get("/api/v1/info", h.GetInfo)
	router.Get("/health/live", h.HealthLive)
	router.Get("/health/ready", h.HealthReady)
	return router
}

// doRequest выполняет запрос к тестовому роутеру.
func doRequest(router *chi.Mux, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// createReference создаёт запись через API и возвращает её DTO.
func createReference(t *testing.T, router *chi.Mux, body string) service.ReferenceDTO {
	t.Helper()
	rec := doRequest(router, http.MethodPost, "/api/v1/references", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /references: статус %d, тело: %s", rec.Code, rec.Body.String())
	}
	var dto service.ReferenceDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Декодирование ответа: %v", err)
	}
	return dto
}

// --- Тесты создания ---

func TestCreateReference(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodPost, "/api/v1/references",
		`{"code":"GEN-001","name":"Первая запись","description":"описание","value":"значение"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус = %d, ожидается 201, тело: %s", rec.Code, rec.Body.String())
	}

	var dto service.ReferenceDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Декодирование ответа: %v", err)
	}
	if dto.ID != 1 {
		t.Errorf("ID = %d, ожидается 1", dto.ID)
	}
	if dto.Code != "GEN-001" {
		t.Errorf("Code = %q, ожидается GEN-001", dto.Code)
	}
	if !dto.Active {
		t.Error("Active = false, ожидается true по умолчанию")
	}
	if dto.CreatedAt.IsZero() {
		t.Error("CreatedAt не установлен")
	}
	if dto.ModifiedAt != nil {
		t.Errorf("ModifiedAt = %v, ожидается null", dto.ModifiedAt)
	}

	location := rec.Header().Get("Location")
	if location != "/api/v1/references/1" {
		t.Errorf("Location = %q, ожидается /api/v1/references/1", location)
	}
}

func TestCreateReference_Validation(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"без code", `{"name":"Имя"}`},
		{"без name", `{"code":"GEN-001"}`},
		{"некорректный JSON", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, http.MethodPost, "/api/v1/references", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("статус = %d, ожидается 400", rec.Code)
			}
			var envelope errorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("Декодирование ошибки: %v", err)
			}
			if envelope.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("код ошибки = %q, ожидается VALIDATION_ERROR", envelope.Error.Code)
			}
		})
	}
}

func TestCreateReference_DuplicateCode(t *testing.T) {
	router := newTestRouter()
	createReference(t, router, `{"code":"DUP-001","name":"Первая"}`)

	rec := doRequest(router, http.MethodPost, "/api/v1/references",
		`{"code":"DUP-001","name":"Вторая"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("статус = %d, ожидается 409", rec.Code)
	}
	var envelope errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Декодирование ошибки: %v", err)
	}
	if envelope.Error.Code != "CONFLICT" {
		t.Errorf("код ошибки = %q, ожидается CONFLICT", envelope.Error.Code)
	}
}

// --- Тесты чтения ---

func TestGetReference(t *testing.T) {
	router := newTestRouter()
	created := createReference(t, router, `{"code":"GEN-001","name":"Запись"}`)

	rec := doRequest(router, http.MethodGet, "/api/v1/references/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	var dto service.ReferenceDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Декодирование ответа: %v", err)
	}
	if dto.ID != created.ID || dto.Code != "GEN-001" {
		t.Errorf("получена неверная запись: %+v", dto)
	}
}

func TestGetReference_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodGet, "/api/v1/references/404", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("статус = %d, ожидается 404", rec.Code)
	}
	var envelope errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Декодирование ошибки: %v", err)
	}
	if envelope.Error.Code != "NOT_FOUND" {
		t.Errorf("код ошибки = %q, ожидается NOT_FOUND", envelope.Error.Code)
	}
}

func TestGetReference_InvalidID(t *testing.T) {
	router := newTestRouter()

	for _, id := range []string{"abc", "0", "-5"} {
		rec := doRequest(router, http.MethodGet, "/api/v1/references/"+id, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id=%q: статус = %d, ожидается 400", id, rec.Code)
		}
	}
}

func TestGetReferenceByCode(t *testing.T) {
	router := newTestRouter()
	createReference(t, router, `{"code":"GEN-007","name":"Запись"}`)

	rec := doRequest(router, http.MethodGet, "/api/v1/references/code/GEN-007", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	var dto service.ReferenceDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Декодирование ответа: %v", err)
	}
	if dto.Code != "GEN-007" {
		t.Errorf("Code = %q, ожидается GEN-007", dto.Code)
	}

	rec = doRequest(router, http.MethodGet, "/api/v1/references/code/NOPE", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("статус = %d, ожидается 404 для неизвестного кода", rec.Code)
	}
}

func TestListReferences(t *testing.T) {
	router := newTestRouter()
	createReference(t, router, `{"code":"A","name":"Первая"}`)
	createReference(t, router, `{"code":"B","name":"Вторая","active":false}`)

	rec := doRequest(router, http.MethodGet, "/api/v1/references", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	var list []service.ReferenceDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Декодирование ответа: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("вернулось %d записей, ожидается 2", len(list))
	}
	if list[0].ID != 1 || list[1].ID != 2 {
		t.Errorf("порядок записей нарушен: %+v", list)
	}

	// Только активные
	rec = doRequest(router, http.MethodGet, "/api/v1/references/active", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Декодирование ответа: %v", err)
	}
	if len(list) != 1 || list[0].Code != "A" {
		t.Errorf("active вернул %+v, ожидается только запись A", list)
	}
}

// --- Тесты обновления ---

func TestUpdateReference_Partial(t *testing.T) {
	router := newTestRouter()
	createReference(t, router,
		`{"code":"GEN-001","name":"Исходное имя","description":"исходное описание","value":"исходное значение"}`)

	// Передаём только name: остальные поля не должны измениться
	rec := doRequest(router, http.MethodPut, "/api/v1/references/1", `{"name":"Новое имя"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200, тело: %s", rec.Code, rec.Body.String())
	}
	var dto service.ReferenceDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Декодирование ответа: %v", err)
	}
	if dto.Name != "Новое имя" {
		t.Errorf("Name = %q, ожидается Новое имя", dto.Name)
	}
	if dto.Description == nil || *dto.Description != "исходное описание" {
		t.Errorf("Description = %v, не должен меняться", dto.Description)
	}
	if dto.Value == nil || *dto.Value != "исходное значение" {
		t.Errorf("Value = %v, не должен меняться", dto.Value)
	}
	if !dto.Active {
		t.Error("Active = false, не должен меняться")
	}
	if dto.ModifiedAt == nil {
		t.Error("ModifiedAt не установлен после обновления")
	}
}

func TestUpdateReference_Deactivate(t *testing.T) {
	router := newTestRouter()
	createReference(t, router, `{"code":"GEN-001","name":"Запись"}`)

	rec := doRequest(router, http.MethodPut, "/api/v1/references/1", `{"active":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	var dto service.ReferenceDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Декодирование ответа: %v", err)
	}
	if dto.Active {
		t.Error("Active = true, ожидается false")
	}
	if dto.Name != "Запись" {
		t.Errorf("Name = %q, не должен меняться", dto.Name)
	}
}

func TestUpdateReference_NotFound(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodPut, "/api/v1/references/404", `{"name":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("статус = %d, ожидается 404", rec.Code)
	}
}

// --- Тесты удаления и существования ---

func TestDeleteReference(t *testing.T) {
	router := newTestRouter()
	createReference(t, router, `{"code":"GEN-001","name":"Запись"}`)

	rec := doRequest(router, http.MethodDelete, "/api/v1/references/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("статус = %d, ожидается 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("тело ответа не пустое: %s", rec.Body.String())
	}

	// Повторное удаление — 404
	rec = doRequest(router, http.MethodDelete, "/api/v1/references/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("повторное удаление: статус = %d, ожидается 404", rec.Code)
	}
}

func TestReferenceExists(t *testing.T) {
	router := newTestRouter()
	createReference(t, router, `{"code":"GEN-001","name":"Запись"}`)

	rec := doRequest(router, http.MethodHead, "/api/v1/references/1", "")
	if rec.Code != http.StatusOK {
		t.Errorf("HEAD существующей записи: статус = %d, ожидается 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD не должен возвращать тело: %s", rec.Body.String())
	}

	rec = doRequest(router, http.MethodHead, "/api/v1/references/404", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("HEAD отсутствующей записи: статус = %d, ожидается 404", rec.Code)
	}
}
