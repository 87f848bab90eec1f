// Package store defines the repository contract shared by the SQLite and Postgres backends.
package store

import (
	"context"
	"errors"

	"github.com/aebonlee/stepup-cloud/backend/models"
)

var (
	ErrDuplicateEmail = errors.New("store: email already registered")
	ErrNotFound       = errors.New("store: record not found")
)

// DailyLimit is how many calendar days the daily study breakdown returns.
const DailyLimit = 30

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

// RecordStore creates and lists records. Create assigns the generated ID to the argument;
// List returns the owner's rows with the most recent date first.
type RecordStore interface {
	CreateStudyRecord(ctx context.Context, rec *models.StudyRecord) error
	ListStudyRecords(ctx context.Context, userID uint) ([]models.StudyRecord, error)
	CreateReadingRecord(ctx context.Context, rec *models.ReadingRecord) error
	ListReadingRecords(ctx context.Context, userID uint) ([]models.ReadingRecord, error)
	CreateAwardActivity(ctx context.Context, rec *models.AwardActivity) error
	ListAwardActivities(ctx context.Context, userID uint) ([]models.AwardActivity, error)
}

// StatsStore runs the grouped queries behind the dashboards. Empty results are empty slices.
type StatsStore interface {
	DailyStudyMinutes(ctx context.Context, userID uint, limit int) ([]models.DailyMinutes, error)
	SubjectStudyMinutes(ctx context.Context, userID uint) ([]models.SubjectMinutes, error)
	WeeklyStudyMinutes(ctx context.Context, userID uint) ([]models.WeeklyMinutes, error)
	MonthlyReadingCounts(ctx context.Context, userID uint) ([]models.MonthlyCount, error)
	CategoryReadingCounts(ctx context.Context, userID uint) ([]models.CategoryCount, error)
	ReviewCount(ctx context.Context, userID uint) (int64, error)
	Overview(ctx context.Context, userID uint) (*models.ProgressOverview, error)
}

type Store interface {
	UserStore
	RecordStore
	StatsStore
	Ping(ctx context.Context) error
	Close() error
}
