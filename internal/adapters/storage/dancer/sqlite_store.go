package dancer

import (
	"context"
	"database/sql"
	"errors"

	"feisworks/internal/adapters/storage"
	domain "feisworks/internal/domain/dancer"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new DancerStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Dancer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Dancer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, parent_id, school_id FROM dancer WHERE id = ?", id)
	var entity domain.Dancer
	err := row.Scan(&entity.ID, &entity.Name, &entity.ParentID, &entity.SchoolID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Dancer{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a Dancer to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Dancer) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO dancer (id, name, parent_id, school_id) VALUES (?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, parent_id=excluded.parent_id, school_id=excluded.school_id",
		entity.ID, entity.Name, entity.ParentID, entity.SchoolID,
	)
	return err
}

// Delete removes a Dancer from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM dancer WHERE id = ?", id)
	return err
}

// List retrieves all Dancers.
// PRE: none
// POST: Returns all entities ordered by name
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Dancer, error) {
	return s.queryDancers(ctx, "SELECT id, name, parent_id, school_id FROM dancer ORDER BY name")
}

// ListByParentID retrieves all Dancers of one family.
// PRE: parentID is non-empty
// POST: Returns the siblings sharing the parent
func (s *SQLiteStore) ListByParentID(ctx context.Context, parentID string) ([]domain.Dancer, error) {
	return s.queryDancers(ctx, "SELECT id, name, parent_id, school_id FROM dancer WHERE parent_id = ? ORDER BY name", parentID)
}

func (s *SQLiteStore) queryDancers(ctx context.Context, query string, args ...any) ([]domain.Dancer, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Dancer
	for rows.Next() {
		var entity domain.Dancer
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.ParentID, &entity.SchoolID); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
