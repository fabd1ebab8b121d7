package feis

import (
	"context"
	"database/sql"
	"errors"

	"feisworks/internal/adapters/storage"
	domain "feisworks/internal/domain/feis"
)

const feisColumns = "id, name, date, venue, organizer_email, notes, venue_open, venue_close, lunch_window_start, lunch_window_end, lunch_duration_minutes"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new FeisStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Feis by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Feis, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+feisColumns+" FROM feis WHERE id = ?", id)
	entity, err := scanFeis(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Feis{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a Feis to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Feis) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feis (`+feisColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, date=excluded.date, venue=excluded.venue,
		 organizer_email=excluded.organizer_email, notes=excluded.notes, venue_open=excluded.venue_open,
		 venue_close=excluded.venue_close, lunch_window_start=excluded.lunch_window_start,
		 lunch_window_end=excluded.lunch_window_end, lunch_duration_minutes=excluded.lunch_duration_minutes`,
		entity.ID, entity.Name, entity.Date, entity.Venue, entity.OrganizerEmail, entity.Notes,
		entity.VenueOpen, entity.VenueClose, entity.LunchWindowStart, entity.LunchWindowEnd, entity.LunchDurationMinutes,
	)
	return err
}

// Delete removes a Feis from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM feis WHERE id = ?", id)
	return err
}

// List retrieves all Feiseanna ordered by date.
// PRE: none
// POST: Returns all entities
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Feis, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+feisColumns+" FROM feis ORDER BY date, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Feis
	for rows.Next() {
		entity, err := scanFeis(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanFeis(scan func(...any) error) (domain.Feis, error) {
	var entity domain.Feis
	err := scan(&entity.ID, &entity.Name, &entity.Date, &entity.Venue, &entity.OrganizerEmail,
		&entity.Notes, &entity.VenueOpen, &entity.VenueClose, &entity.LunchWindowStart,
		&entity.LunchWindowEnd, &entity.LunchDurationMinutes)
	return entity, err
}
