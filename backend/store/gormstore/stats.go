package gormstore

import (
	"context"

	"github.com/aebonlee/stepup-cloud/backend/models"
)

// isoWeekSQL labels a date with its ISO-8601 week ("2024-W01"). The ISO year and week are
// those of the Thursday in the same Monday-based week.
const isoWeekSQL = `strftime('%Y', date(date, '-3 days', 'weekday 4')) || '-W' ||
	printf('%02d', (CAST(strftime('%j', date(date, '-3 days', 'weekday 4')) AS INTEGER) - 1) / 7 + 1)`

func (s *Store) DailyStudyMinutes(ctx context.Context, userID uint, limit int) ([]models.DailyMinutes, error) {
	var rows []models.DailyMinutes
	err := s.db.WithContext(ctx).Raw(`
		SELECT date, SUM(minutes) AS total_minutes
		FROM study_records
		WHERE user_id = ?
		GROUP BY date
		ORDER BY date DESC
		LIMIT ?
	`, userID, limit).Scan(&rows).Error
	return nonNil(rows), err
}

func (s *Store) SubjectStudyMinutes(ctx context.Context, userID uint) ([]models.SubjectMinutes, error) {
	var rows []models.SubjectMinutes
	err := s.db.WithContext(ctx).Raw(`
		SELECT subject, SUM(minutes) AS total_minutes
		FROM study_records
		WHERE user_id = ?
		GROUP BY subject
		ORDER BY subject
	`, userID).Scan(&rows).Error
	return nonNil(rows), err
}

func (s *Store) WeeklyStudyMinutes(ctx context.Context, userID uint) ([]models.WeeklyMinutes, error) {
	var rows []models.WeeklyMinutes
	err := s.db.WithContext(ctx).Raw(`
		SELECT week, SUM(minutes) AS total_minutes
		FROM (
			SELECT `+isoWeekSQL+` AS week, minutes
			FROM study_records
			WHERE user_id = ?
		) AS weeks
		GROUP BY week
		ORDER BY week DESC
	`, userID).Scan(&rows).Error
	return nonNil(rows), err
}

func (s *Store) MonthlyReadingCounts(ctx context.Context, userID uint) ([]models.MonthlyCount, error) {
	var rows []models.MonthlyCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT strftime('%Y-%m', date) AS month, COUNT(*) AS book_count
		FROM reading_records
		WHERE user_id = ?
		GROUP BY month
		ORDER BY month DESC
	`, userID).Scan(&rows).Error
	return nonNil(rows), err
}

func (s *Store) CategoryReadingCounts(ctx context.Context, userID uint) ([]models.CategoryCount, error) {
	var rows []models.CategoryCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT category, COUNT(*) AS book_count
		FROM reading_records
		WHERE user_id = ?
		GROUP BY category
		ORDER BY category
	`, userID).Scan(&rows).Error
	return nonNil(rows), err
}

func (s *Store) ReviewCount(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM reading_records
		WHERE user_id = ? AND review IS NOT NULL AND review <> ''
	`, userID).Scan(&total).Error
	return total, err
}

func (s *Store) Overview(ctx context.Context, userID uint) (*models.ProgressOverview, error) {
	var overview models.ProgressOverview
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COALESCE(SUM(minutes), 0) FROM study_records WHERE user_id = @uid) AS total_study_minutes,
			(SELECT COUNT(*) FROM reading_records WHERE user_id = @uid) AS total_books,
			(SELECT COUNT(*) FROM awards_activities WHERE user_id = @uid AND type = @activity) AS total_activities,
			(SELECT COUNT(*) FROM awards_activities WHERE user_id = @uid AND type = @award) AS total_awards,
			(SELECT COALESCE(SUM(hours), 0) FROM awards_activities WHERE user_id = @uid AND type = @activity) AS total_activity_hours
	`, map[string]interface{}{
		"uid":      userID,
		"activity": models.TypeActivity,
		"award":    models.TypeAward,
	}).Scan(&overview).Error
	if err != nil {
		return nil, err
	}
	return &overview, nil
}
