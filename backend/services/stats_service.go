package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aebonlee/stepup-cloud/backend/models"
	"github.com/aebonlee/stepup-cloud/backend/store"
)

type StatsService struct {
	Stats store.StatsStore
}

func NewStatsService(stats store.StatsStore) *StatsService {
	return &StatsService{Stats: stats}
}

// Study runs the daily, subject and weekly breakdowns concurrently. Any failure discards
// the other results.
func (s *StatsService) Study(ctx context.Context, userID uint) (*models.StudyStats, error) {
	var stats models.StudyStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Daily, err = s.Stats.DailyStudyMinutes(gctx, userID, store.DailyLimit)
		return err
	})
	g.Go(func() (err error) {
		stats.Subjects, err = s.Stats.SubjectStudyMinutes(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.Weekly, err = s.Stats.WeeklyStudyMinutes(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, &AggregationError{Stats: "study", Err: err}
	}
	return &stats, nil
}

// Reading runs the monthly, category and review counts concurrently.
func (s *StatsService) Reading(ctx context.Context, userID uint) (*models.ReadingStats, error) {
	var stats models.ReadingStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Monthly, err = s.Stats.MonthlyReadingCounts(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.Categories, err = s.Stats.CategoryReadingCounts(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalReviews, err = s.Stats.ReviewCount(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, &AggregationError{Stats: "reading", Err: err}
	}
	return &stats, nil
}

func (s *StatsService) Overview(ctx context.Context, userID uint) (*models.ProgressOverview, error) {
	overview, err := s.Stats.Overview(ctx, userID)
	if err != nil {
		return nil, &AggregationError{Stats: "overview", Err: err}
	}
	return overview, nil
}
