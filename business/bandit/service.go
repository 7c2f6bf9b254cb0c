package bandit

import (
	"context"
	"fmt"

	"myGreenField/domain"
)

// ObservationLog is the read side of a recorder that keeps recent steps.
type ObservationLog interface {
	Recent(ctx context.Context, n int) ([]domain.Observation, error)
}

// Service answers read-only queries about a finished (or running) table.
type Service struct {
	table         *EstimateTable
	contextLabels []string
	actionLabels  []string
	log           ObservationLog
}

func NewService(table *EstimateTable, contextLabels, actionLabels []string, log ObservationLog) (*Service, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: table is required", ErrConfiguration)
	}
	return &Service{
		table:         table,
		contextLabels: contextLabels,
		actionLabels:  actionLabels,
		log:           log,
	}, nil
}

func (s *Service) Summaries(ctx context.Context) ([]domain.ContextSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return Summarize(s.table, s.contextLabels, s.actionLabels), nil
}

func (s *Service) ContextSummary(ctx context.Context, context int) (domain.ContextSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContextSummary{}, fmt.Errorf("context error: %w", err)
	}
	return SummarizeContext(s.table, context, s.contextLabels, s.actionLabels)
}

// RecentObservations returns at most n observations, oldest first. Without a
// log it returns an empty slice.
func (s *Service) RecentObservations(ctx context.Context, n int) ([]domain.Observation, error) {
	if s.log == nil {
		return []domain.Observation{}, nil
	}
	return s.log.Recent(ctx, n)
}
