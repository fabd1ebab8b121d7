package entry

import (
	"context"
	"database/sql"
	"errors"

	"feisworks/internal/adapters/storage"
	domain "feisworks/internal/domain/entry"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new EntryStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Entry by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, competition_id, dancer_id FROM entry WHERE id = ?", id)
	var entity domain.Entry
	err := row.Scan(&entity.ID, &entity.CompetitionID, &entity.DancerID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Entry{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists an Entry to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Entry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO entry (id, competition_id, dancer_id) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET competition_id=excluded.competition_id, dancer_id=excluded.dancer_id",
		entity.ID, entity.CompetitionID, entity.DancerID,
	)
	return err
}

// Delete removes an Entry from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM entry WHERE id = ?", id)
	return err
}

// ListByCompetitionID retrieves the Entries of one competition.
// PRE: competitionID is non-empty
// POST: Returns matching entities
func (s *SQLiteStore) ListByCompetitionID(ctx context.Context, competitionID string) ([]domain.Entry, error) {
	return s.queryEntries(ctx, "SELECT id, competition_id, dancer_id FROM entry WHERE competition_id = ? ORDER BY id", competitionID)
}

// ListByFeisID retrieves every Entry across all competitions of a feis.
// PRE: feisID is non-empty
// POST: Returns matching entities
func (s *SQLiteStore) ListByFeisID(ctx context.Context, feisID string) ([]domain.Entry, error) {
	return s.queryEntries(ctx,
		"SELECT e.id, e.competition_id, e.dancer_id FROM entry e JOIN competition c ON c.id = e.competition_id WHERE c.feis_id = ? ORDER BY e.id",
		feisID)
}

func (s *SQLiteStore) queryEntries(ctx context.Context, query string, args ...any) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Entry
	for rows.Next() {
		var entity domain.Entry
		if err := rows.Scan(&entity.ID, &entity.CompetitionID, &entity.DancerID); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
