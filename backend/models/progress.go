package models

// Aggregation rows. They are derived on every request and never stored.

type DailyMinutes struct {
	Date         string `json:"date"`
	TotalMinutes int64  `json:"total_minutes"`
}

type SubjectMinutes struct {
	Subject      string `json:"subject"`
	TotalMinutes int64  `json:"total_minutes"`
}

// WeeklyMinutes is keyed by ISO week, e.g. "2024-W01".
type WeeklyMinutes struct {
	Week         string `json:"week"`
	TotalMinutes int64  `json:"total_minutes"`
}

type MonthlyCount struct {
	Month     string `json:"month"`
	BookCount int64  `json:"book_count"`
}

// CategoryCount has a nil Category for books filed without one.
type CategoryCount struct {
	Category  *string `json:"category"`
	BookCount int64   `json:"book_count"`
}

type StudyStats struct {
	Daily    []DailyMinutes   `json:"daily"`
	Subjects []SubjectMinutes `json:"subjects"`
	Weekly   []WeeklyMinutes  `json:"weekly"`
}

type ReadingStats struct {
	Monthly      []MonthlyCount  `json:"monthly"`
	Categories   []CategoryCount `json:"categories"`
	TotalReviews int64           `json:"totalReviews"`
}

// ProgressOverview backs the dashboard summary cards.
type ProgressOverview struct {
	TotalStudyMinutes  int64 `json:"total_study_minutes"`
	TotalBooks         int64 `json:"total_books"`
	TotalActivities    int64 `json:"total_activities"`
	TotalAwards        int64 `json:"total_awards"`
	TotalActivityHours int64 `json:"total_activity_hours"`
}
