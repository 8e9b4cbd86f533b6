package models

// SimulationConfig is the request from the front end to the simulation controller.
// It fully determines a simulation run.
type SimulationConfig struct {
	CoinID         string  `json:"coinId"`         // coingecko coin identifier, e.g. "bitcoin"
	Years          int     `json:"years"`          // years of price history to parameterize from
	Principal      float64 `json:"principal"`      // initial invested amount
	Horizon        int     `json:"horizon"`        // number of days each trial projects forward
	NumSimulations int     `json:"numSimulations"` // trial count
	Seed           int64   `json:"seed"`           // 0 means a fresh seed is drawn per run
}

// SummaryStatistics are the descriptive statistics over the terminal values of one run
type SummaryStatistics struct {
	Min                      float64 `json:"min"`
	Max                      float64 `json:"max"`
	Mean                     float64 `json:"mean"`
	Trials                   int     `json:"trials"`
	TrialsAtOrAbovePrincipal int     `json:"trialsAtOrAbovePrincipal"`
}

// SimulationRunResult is the response from the simulation controller and what is sent to the front end.
// TerminalValues is the single frozen population for the run; Summary is derived from it, nothing
// downstream re-runs the simulation.
type SimulationRunResult struct {
	Config         SimulationConfig  `json:"config"`
	TerminalValues []float64         `json:"terminalValues"`
	Summary        SummaryStatistics `json:"summary"`
}
