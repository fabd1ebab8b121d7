package competition

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"feisworks/internal/adapters/storage"
	domain "feisworks/internal/domain/competition"
)

const competitionColumns = "id, feis_id, name, min_age, max_age, level, gender, dance_type, scoring_method, bars, tempo_bpm, stage_id, scheduled_start, duration_minutes, adjudicator_id"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new CompetitionStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Competition by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Competition, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+competitionColumns+" FROM competition WHERE id = ?", id)
	entity, err := scanCompetition(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Competition{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a Competition to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Competition) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO competition (`+competitionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET feis_id=excluded.feis_id, name=excluded.name, min_age=excluded.min_age,
		 max_age=excluded.max_age, level=excluded.level, gender=excluded.gender, dance_type=excluded.dance_type,
		 scoring_method=excluded.scoring_method, bars=excluded.bars, tempo_bpm=excluded.tempo_bpm,
		 stage_id=excluded.stage_id, scheduled_start=excluded.scheduled_start,
		 duration_minutes=excluded.duration_minutes, adjudicator_id=excluded.adjudicator_id`,
		entity.ID, entity.FeisID, entity.Name, entity.MinAge, entity.MaxAge, entity.Level,
		entity.Gender, entity.DanceType, entity.ScoringMethod, entity.Bars, entity.TempoBPM,
		entity.StageID, encodeTime(entity.ScheduledStart), entity.DurationMinutes, entity.AdjudicatorID,
	)
	return err
}

// Delete removes a Competition from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM competition WHERE id = ?", id)
	return err
}

// ListByFeisID retrieves all Competitions of a feis.
// PRE: feisID is non-empty
// POST: Returns matching entities in a stable order
func (s *SQLiteStore) ListByFeisID(ctx context.Context, feisID string) ([]domain.Competition, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+competitionColumns+" FROM competition WHERE feis_id = ? ORDER BY level, min_age, name", feisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Competition
	for rows.Next() {
		entity, err := scanCompetition(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanCompetition(scan func(...any) error) (domain.Competition, error) {
	var entity domain.Competition
	var scheduledStart string
	err := scan(&entity.ID, &entity.FeisID, &entity.Name, &entity.MinAge, &entity.MaxAge,
		&entity.Level, &entity.Gender, &entity.DanceType, &entity.ScoringMethod, &entity.Bars,
		&entity.TempoBPM, &entity.StageID, &scheduledStart, &entity.DurationMinutes, &entity.AdjudicatorID)
	if err != nil {
		return domain.Competition{}, err
	}
	entity.ScheduledStart, err = decodeTime(scheduledStart)
	return entity, err
}

// encodeTime stores the zero time as the empty string so unscheduled
// competitions round-trip cleanly.
func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func decodeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid scheduled_start %q: %w", s, err)
	}
	return t, nil
}
