package queries

import (
	"embed"
	"fmt"
)

//go:embed insert/*.sql select/*.sql update/*.sql
var Files embed.FS

type InsertQueries struct {
	SimulationRun string
}

type SelectQueries struct {
	RecentSimulationRuns string
}

type UpdateQueries struct {
	SimulationRun string
}

type QueryHelperStruct struct {
	Insert InsertQueries
	Select SelectQueries
	Update UpdateQueries
}

var QueryHelper = QueryHelperStruct{
	Insert: InsertQueries{
		SimulationRun: "insert/simulation_run.sql",
	},
	Select: SelectQueries{
		RecentSimulationRuns: "select/recent_simulation_runs.sql",
	},
	Update: UpdateQueries{
		SimulationRun: "update/simulation_run.sql",
	},
}

func Get(path string) string {
	content, err := Files.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("error reading query file: %w", err))
	}

	return string(content)
}
