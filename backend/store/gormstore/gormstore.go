// Package gormstore is the development store: gorm over an SQLite file with one shared connection.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aebonlee/stepup-cloud/backend/models"
	"github.com/aebonlee/stepup-cloud/backend/store"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects to the SQLite database at path (":memory:" for a throwaway database)
// and creates the schema if it is missing.
func Open(path string, logger *log.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: NewLogger(logger)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive and serialises writers.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Migrate creates the four tables if they do not exist. It is shared with the Postgres store.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// NewLogger routes gorm's warnings and slow queries through the application logger.
func NewLogger(logger *log.Logger) gormlogger.Interface {
	if logger == nil {
		return gormlogger.Discard
	}
	return gormlogger.New(logger, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) CreateStudyRecord(ctx context.Context, rec *models.StudyRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *Store) ListStudyRecords(ctx context.Context, userID uint) ([]models.StudyRecord, error) {
	var recs []models.StudyRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&recs).Error
	return nonNil(recs), err
}

func (s *Store) CreateReadingRecord(ctx context.Context, rec *models.ReadingRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *Store) ListReadingRecords(ctx context.Context, userID uint) ([]models.ReadingRecord, error) {
	var recs []models.ReadingRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&recs).Error
	return nonNil(recs), err
}

func (s *Store) CreateAwardActivity(ctx context.Context, rec *models.AwardActivity) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *Store) ListAwardActivities(ctx context.Context, userID uint) ([]models.AwardActivity, error) {
	var recs []models.AwardActivity
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&recs).Error
	return nonNil(recs), err
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
