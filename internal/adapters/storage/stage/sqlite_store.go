package stage

import (
	"context"
	"database/sql"
	"errors"

	"feisworks/internal/adapters/storage"
	domain "feisworks/internal/domain/stage"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new StageStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Stage by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Stage, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, feis_id, name, sequence FROM stage WHERE id = ?", id)
	var entity domain.Stage
	err := row.Scan(&entity.ID, &entity.FeisID, &entity.Name, &entity.Sequence)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Stage{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a Stage to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Stage) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO stage (id, feis_id, name, sequence) VALUES (?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET feis_id=excluded.feis_id, name=excluded.name, sequence=excluded.sequence",
		entity.ID, entity.FeisID, entity.Name, entity.Sequence,
	)
	return err
}

// Delete removes a Stage and its coverage from the database.
// PRE: id is non-empty
// POST: Entity and dependent coverage rows are removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM judge_coverage WHERE stage_id = ?", id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM stage WHERE id = ?", id)
	return err
}

// ListByFeisID retrieves all Stages of a feis in sequence order.
// PRE: feisID is non-empty
// POST: Returns matching entities
func (s *SQLiteStore) ListByFeisID(ctx context.Context, feisID string) ([]domain.Stage, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, feis_id, name, sequence FROM stage WHERE feis_id = ? ORDER BY sequence, name", feisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Stage
	for rows.Next() {
		var entity domain.Stage
		if err := rows.Scan(&entity.ID, &entity.FeisID, &entity.Name, &entity.Sequence); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// SaveCoverage persists a judge coverage block.
// PRE: block has been validated
// POST: Block is persisted (insert or update)
func (s *SQLiteStore) SaveCoverage(ctx context.Context, block domain.CoverageBlock) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO judge_coverage (id, stage_id, adjudicator_id, day, start_time, end_time) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET stage_id=excluded.stage_id, adjudicator_id=excluded.adjudicator_id,
		 day=excluded.day, start_time=excluded.start_time, end_time=excluded.end_time`,
		block.ID, block.StageID, block.AdjudicatorID, block.Day, block.StartTime, block.EndTime,
	)
	return err
}

// DeleteCoverage removes a coverage block.
// PRE: id is non-empty
// POST: Block with given id is removed
func (s *SQLiteStore) DeleteCoverage(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM judge_coverage WHERE id = ?", id)
	return err
}

// ListCoverageByFeisID retrieves every coverage block across the stages of
// a feis.
// PRE: feisID is non-empty
// POST: Returns matching blocks ordered by stage and start time
func (s *SQLiteStore) ListCoverageByFeisID(ctx context.Context, feisID string) ([]domain.CoverageBlock, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT jc.id, jc.stage_id, jc.adjudicator_id, jc.day, jc.start_time, jc.end_time
		 FROM judge_coverage jc JOIN stage st ON st.id = jc.stage_id
		 WHERE st.feis_id = ? ORDER BY jc.stage_id, jc.start_time`,
		feisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.CoverageBlock
	for rows.Next() {
		var block domain.CoverageBlock
		if err := rows.Scan(&block.ID, &block.StageID, &block.AdjudicatorID, &block.Day, &block.StartTime, &block.EndTime); err != nil {
			return nil, err
		}
		results = append(results, block)
	}
	return results, rows.Err()
}
