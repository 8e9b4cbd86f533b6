package core

import (
	"context"

	m "github.com/Dealer86/Monte-Carlo/models"
	r "github.com/Dealer86/Monte-Carlo/repos"
)

// PriceHistorySource supplies chronological price history for a coin. The core
// only depends on this contract, so offline fixtures or another vendor can be
// swapped in without touching the simulation code.
type PriceHistorySource interface {
	FetchPriceHistory(ctx context.Context, coinID string, years int) (*m.PriceHistory, error)
}

type ServiceContext struct {
	Context     context.Context
	PriceSource PriceHistorySource
	RunHistory  *r.Postgres // nil disables run history persistence
}

// WithContext returns a copy of the service context scoped to ctx.
// Handlers use this to tie simulations to the request lifetime.
func (sc *ServiceContext) WithContext(ctx context.Context) *ServiceContext {
	scoped := *sc
	scoped.Context = ctx
	return &scoped
}
