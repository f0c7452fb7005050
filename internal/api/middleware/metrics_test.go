package middleware

import (
	"testing"
)

// TestNormalizePath проверяет нормализацию путей для лейблов метрик.
func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "путь без переменных сегментов",
			input:    "/api/v1/references",
			expected: "/api/v1/references",
		},
		{
			name:     "числовой id",
			input:    "/api/v1/references/42",
			expected: "/api/v1/references/{id}",
		},
		{
			name:     "бизнес-код",
			input:    "/api/v1/references/code/GEN-001",
			expected: "/api/v1/references/code/{code}",
		},
		{
			name:     "UUID",
			input:    "/api/v1/messages/4f0c2a1e-9a7b-4c3d-8e2f-1a2b3c4d5e6f",
			expected: "/api/v1/messages/{id}",
		},
		{
			name:     "active не нормализуется",
			input:    "/api/v1/references/active",
			expected: "/api/v1/references/active",
		},
		{
			name:     "health endpoint",
			input:    "/health/ready",
			expected: "/health/ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizePath(tt.input)
			if result != tt.expected {
				t.Errorf("normalizePath(%q) = %q, ожидалось %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestIsUUID проверяет распознавание UUID-сегментов.
func TestIsUUID(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"4f0c2a1e-9a7b-4c3d-8e2f-1a2b3c4d5e6f", true},
		{"4F0C2A1E-9A7B-4C3D-8E2F-1A2B3C4D5E6F", true},
		{"not-a-uuid", false},
		{"4f0c2a1e-9a7b-4c3d-8e2f-1a2b3c4d5e6g", false},
		{"", false},
		{"42", false},
	}

	for _, tt := range tests {
		if got := isUUID(tt.input); got != tt.expected {
			t.Errorf("isUUID(%q) = %v, ожидалось %v", tt.input, got, tt.expected)
		}
	}
}
