// reference_memory.go — in-memory реализация ReferenceRepository.
// Используется при RM_STORAGE_BACKEND=memory (dev/тесты без PostgreSQL).
// Семантика совпадает с PostgreSQL-реализацией: последовательные id,
// уникальность кода, ModifiedAt при каждом Update.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bigkaa/gorefbook/internal/domain/model"
)

// memoryReferenceRepo — потокобезопасное in-memory хранилище записей справочника.
type memoryReferenceRepo struct {
	mu     sync.RWMutex
	items  map[int]*model.ReferenceRecord
	nextID int
}

// NewMemoryReferenceRepository создаёт пустой in-memory репозиторий справочника.
func NewMemoryReferenceRepository() ReferenceRepository {
	return &memoryReferenceRepo{
		items:  make(map[int]*model.ReferenceRecord),
		nextID: 1,
	}
}

// cloneReference возвращает копию записи, чтобы вызывающий код
// не мог изменить хранимое состояние напрямую.
func cloneReference(rec *model.ReferenceRecord) *model.ReferenceRecord {
	c := *rec
	if rec.Description != nil {
		d := *rec.Description
		c.Description = &d
	}
	if rec.Value != nil {
		v := *rec.Value
		c.Value = &v
	}
	if rec.ModifiedAt != nil {
		m := *rec.ModifiedAt
		c.ModifiedAt = &m
	}
	return &c
}

func (r *memoryReferenceRepo) GetAll(ctx context.Context) ([]*model.ReferenceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(*model.ReferenceRecord) bool { return true }), nil
}

func (r *memoryReferenceRepo) GetActive(ctx context.Context) ([]*model.ReferenceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(rec *model.ReferenceRecord) bool { return rec.Active }), nil
}

// listLocked возвращает копии записей, прошедших фильтр, по возрастанию id.
// Вызывается под блокировкой.
func (r *memoryReferenceRepo) listLocked(keep func(*model.ReferenceRecord) bool) []*model.ReferenceRecord {
	var result []*model.ReferenceRecord
	for _, rec := range r.items {
		if keep(rec) {
			result = append(result, cloneReference(rec))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *memoryReferenceRepo) GetByID(ctx context.Context, id int) (*model.ReferenceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneReference(rec), nil
}

func (r *memoryReferenceRepo) GetByCode(ctx context.Context, code string) (*model.ReferenceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.items {
		if rec.Code == code {
			return cloneReference(rec), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryReferenceRepo) Create(ctx context.Context, rec *model.ReferenceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Code == rec.Code {
			return fmt.Errorf("%w: код %q уже занят", ErrConflict, rec.Code)
		}
	}

	rec.ID = r.nextID
	r.nextID++
	r.items[rec.ID] = cloneReference(rec)
	return nil
}

func (r *memoryReferenceRepo) Update(ctx context.Context, rec *model.ReferenceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[rec.ID]; !ok {
		return ErrNotFound
	}

	now := time.Now().UTC()
	rec.ModifiedAt = &now
	r.items[rec.ID] = cloneReference(rec)
	return nil
}

func (r *memoryReferenceRepo) Delete(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *memoryReferenceRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}
