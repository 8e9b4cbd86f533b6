package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	m "github.com/Dealer86/Monte-Carlo/models"
	q "github.com/Dealer86/Monte-Carlo/queries"
)

func (pg *Postgres) InsertSimulationRun(ctx context.Context, coinID string, years int, principal float64, horizon int, iterations int, seed int64) (int32, error) {
	sql := q.Get(q.QueryHelper.Insert.SimulationRun)
	args := pgx.NamedArgs{
		"coin_id":    coinID,
		"years":      years,
		"principal":  principal,
		"horizon":    horizon,
		"iterations": iterations,
		"seed":       seed,
	}

	var runId int32
	if err := pg.db.QueryRow(ctx, sql, args).Scan(&runId); err != nil {
		return 0, fmt.Errorf("error inserting simulation run history: %w", err)
	}

	return runId, nil
}

func (pg *Postgres) UpdateSimulationRunAsSuccess(ctx context.Context, runId int32, durationMs int64) error {
	return pg.updateSimulationRun(ctx, pgx.NamedArgs{
		"id":            runId,
		"duration_ms":   durationMs,
		"error_message": nil,
	})
}

func (pg *Postgres) UpdateSimulationRunAsFailure(ctx context.Context, runId int32, durationMs int64, errorMessage string) error {
	cleanErrorMessage := strings.TrimSpace(errorMessage)
	if cleanErrorMessage == "" {
		return fmt.Errorf("error message is required if simulation run is failing, occurred in %d", runId)
	}

	return pg.updateSimulationRun(ctx, pgx.NamedArgs{
		"id":            runId,
		"duration_ms":   durationMs,
		"error_message": cleanErrorMessage,
	})
}

func (pg *Postgres) updateSimulationRun(ctx context.Context, args pgx.NamedArgs) error {
	sql := q.Get(q.QueryHelper.Update.SimulationRun)
	if _, err := pg.db.Exec(ctx, sql, args); err != nil {
		return fmt.Errorf("error updating simulation run: %w", err)
	}
	return nil
}

func (pg *Postgres) GetRecentSimulationRuns(ctx context.Context, limit int) ([]*m.SimulationRun, error) {
	sql := q.Get(q.QueryHelper.Select.RecentSimulationRuns)
	args := pgx.NamedArgs{
		"limit": limit,
	}

	res, err := Query[m.SimulationRun](ctx, pg, sql, args)
	if err != nil {
		return nil, fmt.Errorf("unable to query recent simulation runs: %w", err)
	}
	return res, nil
}
