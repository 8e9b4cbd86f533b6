package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// SimulationRun is one row of run history. Only the request settings and the
// outcome are stored, never the simulated terminal values.
type SimulationRun struct {
	Id           int32       `db:"id"`
	CoinID       string      `db:"coin_id"`
	Years        int         `db:"years"`
	Principal    float64     `db:"principal"`
	Horizon      int         `db:"horizon"`
	Iterations   int         `db:"iterations"`
	Seed         int64       `db:"seed"`
	Status       string      `db:"status"`
	ErrorMessage null.String `db:"error_message"`
	StartedAt    time.Time   `db:"started_at"`
	CompletedAt  null.Time   `db:"completed_at"`
	DurationMs   null.Int    `db:"duration_ms"`
}

const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusFailure = "failure"
)
