package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aebonlee/stepup-cloud/backend/models"
)

func (s *Store) DailyStudyMinutes(ctx context.Context, userID uint, limit int) ([]models.DailyMinutes, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT date::text AS date, SUM(minutes)::bigint AS total_minutes
		FROM study_records
		WHERE user_id = $1
		GROUP BY date
		ORDER BY date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Row, v *models.DailyMinutes) error {
		return r.Scan(&v.Date, &v.TotalMinutes)
	})
}

func (s *Store) SubjectStudyMinutes(ctx context.Context, userID uint) ([]models.SubjectMinutes, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT subject, SUM(minutes)::bigint AS total_minutes
		FROM study_records
		WHERE user_id = $1
		GROUP BY subject
		ORDER BY subject
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Row, v *models.SubjectMinutes) error {
		return r.Scan(&v.Subject, &v.TotalMinutes)
	})
}

func (s *Store) WeeklyStudyMinutes(ctx context.Context, userID uint) ([]models.WeeklyMinutes, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT to_char(date, 'IYYY-"W"IW') AS week, SUM(minutes)::bigint AS total_minutes
		FROM study_records
		WHERE user_id = $1
		GROUP BY week
		ORDER BY week DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Row, v *models.WeeklyMinutes) error {
		return r.Scan(&v.Week, &v.TotalMinutes)
	})
}

func (s *Store) MonthlyReadingCounts(ctx context.Context, userID uint) ([]models.MonthlyCount, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM') AS month, COUNT(*) AS book_count
		FROM reading_records
		WHERE user_id = $1
		GROUP BY month
		ORDER BY month DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Row, v *models.MonthlyCount) error {
		return r.Scan(&v.Month, &v.BookCount)
	})
}

func (s *Store) CategoryReadingCounts(ctx context.Context, userID uint) ([]models.CategoryCount, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT category, COUNT(*) AS book_count
		FROM reading_records
		WHERE user_id = $1
		GROUP BY category
		ORDER BY category NULLS FIRST
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Row, v *models.CategoryCount) error {
		return r.Scan(&v.Category, &v.BookCount)
	})
}

func (s *Store) ReviewCount(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reading_records
		WHERE user_id = $1 AND review IS NOT NULL AND review <> ''
	`, userID).Scan(&total)
	return total, err
}

func (s *Store) Overview(ctx context.Context, userID uint) (*models.ProgressOverview, error) {
	var o models.ProgressOverview
	err := s.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COALESCE(SUM(minutes), 0)::bigint FROM study_records WHERE user_id = $1),
			(SELECT COUNT(*) FROM reading_records WHERE user_id = $1),
			(SELECT COUNT(*) FROM awards_activities WHERE user_id = $1 AND type = $2),
			(SELECT COUNT(*) FROM awards_activities WHERE user_id = $1 AND type = $3),
			(SELECT COALESCE(SUM(hours), 0)::bigint FROM awards_activities WHERE user_id = $1 AND type = $2)
	`, userID, models.TypeActivity, models.TypeAward).Scan(
		&o.TotalStudyMinutes, &o.TotalBooks, &o.TotalActivities, &o.TotalAwards, &o.TotalActivityHours,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// collect scans every row with scan and always returns a non-nil slice.
func collect[T any](rows pgx.Rows, scan func(pgx.Row, *T) error) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
