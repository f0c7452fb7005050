// reference.go — порт и PostgreSQL-реализация CRUD справочника.
// Частичное слияние полей здесь не выполняется — это задача сервисного слоя,
// репозиторий сохраняет запись целиком.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/gorefbook/internal/domain/model"
)

// ReferenceRepository — интерфейс CRUD для записей справочника.
type ReferenceRepository interface {
	// GetAll возвращает все записи, упорядоченные по id.
	GetAll(ctx context.Context) ([]*model.ReferenceRecord, error)
	// GetByID возвращает запись по id. ErrNotFound, если записи нет.
	GetByID(ctx context.Context, id int) (*model.ReferenceRecord, error)
	// GetByCode возвращает запись по бизнес-коду. ErrNotFound, если записи нет.
	GetByCode(ctx context.Context, code string) (*model.ReferenceRecord, error)
	// GetActive возвращает только активные записи, упорядоченные по id.
	GetActive(ctx context.Context) ([]*model.ReferenceRecord, error)
	// Create сохраняет новую запись; id назначается хранилищем.
	Create(ctx context.Context, rec *model.ReferenceRecord) error
	// Update сохраняет изменения существующей записи и устанавливает ModifiedAt.
	Update(ctx context.Context, rec *model.ReferenceRecord) error
	// Delete удаляет запись. Возвращает true, если запись существовала.
	Delete(ctx context.Context, id int) (bool, error)
	// Exists проверяет наличие записи с указанным id.
	Exists(ctx context.Context, id int) (bool, error)
}

// referenceRepo — реализация ReferenceRepository поверх PostgreSQL.
type referenceRepo struct {
	db DBTX
}

// NewReferenceRepository создаёт PostgreSQL-репозиторий справочника.
func NewReferenceRepository(db DBTX) ReferenceRepository {
	return &referenceRepo{db: db}
}

const referenceColumns = `id, code, name, description, value, active, created_at, modified_at`

func scanReference(row pgx.Row) (*model.ReferenceRecord, error) {
	rec := &model.ReferenceRecord{}
	err := row.Scan(
		&rec.ID, &rec.Code, &rec.Name, &rec.Description, &rec.Value,
		&rec.Active, &rec.CreatedAt, &rec.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *referenceRepo) GetAll(ctx context.Context) ([]*model.ReferenceRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM reference_records ORDER BY id`, referenceColumns)
	return r.queryList(ctx, query)
}

func (r *referenceRepo) GetActive(ctx context.Context) ([]*model.ReferenceRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM reference_records WHERE active ORDER BY id`, referenceColumns)
	return r.queryList(ctx, query)
}

func (r *referenceRepo) queryList(ctx context.Context, query string, args ...any) ([]*model.ReferenceRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	var result []*model.ReferenceRecord
	for rows.Next() {
		rec, err := scanReference(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (r *referenceRepo) GetByID(ctx context.Context, id int) (*model.ReferenceRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM reference_records WHERE id = $1`, referenceColumns)

	rec, err := scanReference(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}
	return rec, nil
}

func (r *referenceRepo) GetByCode(ctx context.Context, code string) (*model.ReferenceRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM reference_records WHERE code = $1`, referenceColumns)

	rec, err := scanReference(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи по коду: %w", err)
	}
	return rec, nil
}

func (r *referenceRepo) Create(ctx context.Context, rec *model.ReferenceRecord) error {
	query := `
		INSERT INTO reference_records (code, name, description, value, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		rec.Code, rec.Name, rec.Description, rec.Value, rec.Active, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: код %q уже занят", ErrConflict, rec.Code)
		}
		return fmt.Errorf("ошибка создания записи: %w", err)
	}
	return nil
}

func (r *referenceRepo) Update(ctx context.Context, rec *model.ReferenceRecord) error {
	query := `
		UPDATE reference_records
		SET name = $2, description = $3, value = $4, active = $5,
			modified_at = now()
		WHERE id = $1
		RETURNING modified_at`

	err := r.db.QueryRow(ctx, query,
		rec.ID, rec.Name, rec.Description, rec.Value, rec.Active,
	).Scan(&rec.ModifiedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: код %q уже занят", ErrConflict, rec.Code)
		}
		return fmt.Errorf("ошибка обновления записи: %w", err)
	}
	return nil
}

func (r *referenceRepo) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reference_records WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления записи: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *referenceRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM reference_records WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки существования записи: %w", err)
	}
	return exists, nil
}
