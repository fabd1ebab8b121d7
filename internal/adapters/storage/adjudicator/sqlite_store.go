package adjudicator

import (
	"context"
	"database/sql"
	"errors"

	"feisworks/internal/adapters/storage"
	domain "feisworks/internal/domain/adjudicator"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AdjudicatorStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Adjudicator by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Adjudicator, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, school_id FROM adjudicator WHERE id = ?", id)
	var entity domain.Adjudicator
	err := row.Scan(&entity.ID, &entity.Name, &entity.SchoolID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Adjudicator{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists an Adjudicator to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Adjudicator) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO adjudicator (id, name, school_id) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, school_id=excluded.school_id",
		entity.ID, entity.Name, entity.SchoolID,
	)
	return err
}

// Delete removes an Adjudicator and its availability from the database.
// PRE: id is non-empty
// POST: Entity and dependent availability rows are removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM adjudicator_availability WHERE adjudicator_id = ?", id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM adjudicator WHERE id = ?", id)
	return err
}

// List retrieves all Adjudicators.
// PRE: none
// POST: Returns all entities ordered by name
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Adjudicator, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, school_id FROM adjudicator ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Adjudicator
	for rows.Next() {
		var entity domain.Adjudicator
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.SchoolID); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// SaveAvailability persists an availability block.
// PRE: block has been validated
// POST: Block is persisted (insert or update)
func (s *SQLiteStore) SaveAvailability(ctx context.Context, block domain.AvailabilityBlock) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO adjudicator_availability (id, adjudicator_id, day, start_time, end_time, type) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET adjudicator_id=excluded.adjudicator_id, day=excluded.day,
		 start_time=excluded.start_time, end_time=excluded.end_time, type=excluded.type`,
		block.ID, block.AdjudicatorID, block.Day, block.StartTime, block.EndTime, block.Type,
	)
	return err
}

// DeleteAvailability removes an availability block.
// PRE: id is non-empty
// POST: Block with given id is removed
func (s *SQLiteStore) DeleteAvailability(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM adjudicator_availability WHERE id = ?", id)
	return err
}

// ListAvailabilityByDay retrieves every declared availability block for a
// day.
// PRE: day is YYYY-MM-DD
// POST: Returns matching blocks ordered by judge and start time
func (s *SQLiteStore) ListAvailabilityByDay(ctx context.Context, day string) ([]domain.AvailabilityBlock, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, adjudicator_id, day, start_time, end_time, type FROM adjudicator_availability WHERE day = ? ORDER BY adjudicator_id, start_time",
		day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.AvailabilityBlock
	for rows.Next() {
		var block domain.AvailabilityBlock
		if err := rows.Scan(&block.ID, &block.AdjudicatorID, &block.Day, &block.StartTime, &block.EndTime, &block.Type); err != nil {
			return nil, err
		}
		results = append(results, block)
	}
	return results, rows.Err()
}
