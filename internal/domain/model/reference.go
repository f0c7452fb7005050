// Пакет model — доменные сущности Ref Module.
package model

import "time"

// ReferenceRecord — запись справочника.
// Хранится в таблице reference_records.
type ReferenceRecord struct {
	// ID — идентификатор записи, назначается хранилищем при создании
	ID int
	// Code — бизнес-код записи, уникален в пределах справочника
	Code string
	// Name — отображаемое имя
	Name string
	// Description — произвольное описание (может быть nil)
	Description *string
	// Value — произвольное значение записи (может быть nil)
	Value *string
	// Active — флаг активности записи
	Active bool
	// CreatedAt — время создания (UTC), устанавливается один раз
	CreatedAt time.Time
	// ModifiedAt — время последнего обновления, nil до первого обновления
	ModifiedAt *time.Time
}

// NewReferenceRecord создаёт новую запись справочника.
// Code и Name обязательны, Active по умолчанию true,
// CreatedAt устанавливается на текущее время UTC.
func NewReferenceRecord(code, name string, description, value *string) *ReferenceRecord {
	return &ReferenceRecord{
		Code:        code,
		Name:        name,
		Description: description,
		Value:       value,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
}
