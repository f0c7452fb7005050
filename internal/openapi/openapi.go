// Пакет openapi — встроенный OpenAPI-контракт Ref Module.
// Контракт парсится и валидируется при старте (kin-openapi),
// чтобы несогласованный документ не попал в работающий сервис,
// и отдаётся на /openapi.json.
package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// Load парсит и валидирует встроенный OpenAPI-документ.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга OpenAPI-документа: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("ошибка валидации OpenAPI-документа: %w", err)
	}

	return doc, nil
}

// Handler возвращает обработчик, отдающий контракт в формате JSON.
func Handler(doc *openapi3.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := doc.MarshalJSON()
		if err != nil {
			http.Error(w, "ошибка сериализации OpenAPI-документа", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
