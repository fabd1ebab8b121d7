package scheduler

import (
	"context"
	"time"

	"feisworks/internal/adapters/storage"
	adjudicatorstore "feisworks/internal/adapters/storage/adjudicator"
	competitionstore "feisworks/internal/adapters/storage/competition"
	dancerstore "feisworks/internal/adapters/storage/dancer"
	entrystore "feisworks/internal/adapters/storage/entry"
	feisstore "feisworks/internal/adapters/storage/feis"
	stagestore "feisworks/internal/adapters/storage/stage"
	"feisworks/internal/domain/scheduling"
)

// SQLiteStore implements Store using SQLite, composing the entity stores
// for the batched read.
type SQLiteStore struct {
	db           storage.SQLDB
	feis         *feisstore.SQLiteStore
	competitions *competitionstore.SQLiteStore
	entries      *entrystore.SQLiteStore
	dancers      *dancerstore.SQLiteStore
	stages       *stagestore.SQLiteStore
	adjudicators *adjudicatorstore.SQLiteStore
}

// NewSQLiteStore creates a new SchedulerStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{
		db:           db,
		feis:         feisstore.NewSQLiteStore(db),
		competitions: competitionstore.NewSQLiteStore(db),
		entries:      entrystore.NewSQLiteStore(db),
		dancers:      dancerstore.NewSQLiteStore(db),
		stages:       stagestore.NewSQLiteStore(db),
		adjudicators: adjudicatorstore.NewSQLiteStore(db),
	}
}

// LoadContext reads everything one scheduler run needs in one batch.
// PRE: feisID is non-empty
// POST: Returns the full snapshot or feis.ErrNotFound
func (s *SQLiteStore) LoadContext(ctx context.Context, feisID string) (*scheduling.Context, error) {
	f, err := s.feis.GetByID(ctx, feisID)
	if err != nil {
		return nil, err
	}

	sctx := &scheduling.Context{Feis: f}
	if sctx.Competitions, err = s.competitions.ListByFeisID(ctx, feisID); err != nil {
		return nil, err
	}
	if sctx.Entries, err = s.entries.ListByFeisID(ctx, feisID); err != nil {
		return nil, err
	}
	if sctx.Dancers, err = s.dancers.List(ctx); err != nil {
		return nil, err
	}
	if sctx.Stages, err = s.stages.ListByFeisID(ctx, feisID); err != nil {
		return nil, err
	}
	if sctx.Coverage, err = s.stages.ListCoverageByFeisID(ctx, feisID); err != nil {
		return nil, err
	}
	if sctx.Adjudicators, err = s.adjudicators.List(ctx); err != nil {
		return nil, err
	}
	if sctx.Availability, err = s.adjudicators.ListAvailabilityByDay(ctx, f.Date); err != nil {
		return nil, err
	}
	return sctx, nil
}

// PersistPlacements replaces the feis schedule in a single transaction:
// every competition is cleared first, then the new placements are written.
// A failure rolls back to the previous schedule untouched.
// PRE: placements reference competitions of the given feis
// POST: Exactly the given placements are stored; everything else is
// unscheduled
func (s *SQLiteStore) PersistPlacements(ctx context.Context, feisID string, placements []scheduling.Placement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Durations survive the wipe: an organizer-set duration on a
	// competition that ends up unplaced must not be lost.
	if _, err := tx.ExecContext(ctx,
		"UPDATE competition SET stage_id = '', scheduled_start = '' WHERE feis_id = ?",
		feisID); err != nil {
		return err
	}

	for _, p := range placements {
		if _, err := tx.ExecContext(ctx,
			"UPDATE competition SET stage_id = ?, scheduled_start = ?, duration_minutes = ? WHERE id = ? AND feis_id = ?",
			p.StageID, p.ScheduledStart.Format(time.RFC3339), p.DurationMinutes, p.CompetitionID, feisID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ClearSchedule unschedules every competition of the feis. Durations are
// preserved, same as the PersistPlacements wipe: an organizer-set duration
// outlives the placement it was scheduled with.
// PRE: feisID is non-empty
// POST: Returns how many competitions carried placement data
func (s *SQLiteStore) ClearSchedule(ctx context.Context, feisID string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE competition SET stage_id = '', scheduled_start = '' WHERE feis_id = ? AND (stage_id != '' OR scheduled_start != '')",
		feisID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
