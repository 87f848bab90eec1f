// Package pgstore is the production store: a pgx connection pool with native $n placeholders.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aebonlee/stepup-cloud/backend/models"
	"github.com/aebonlee/stepup-cloud/backend/store"
	"github.com/aebonlee/stepup-cloud/backend/store/gormstore"
)

const uniqueViolation = "23505"

type Store struct {
	Pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// Open creates the pool, verifies connectivity and migrates the schema.
func Open(ctx context.Context, databaseURL string, logger *log.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := Migrate(pool, logger); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

// Migrate lets gorm own the table definitions, talking over the same pool.
func Migrate(pool *pgxpool.Pool, logger *log.Logger) error {
	// Not closed here: connections belong to the pool.
	sqlDB := stdlib.OpenDBFromPool(pool)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormstore.NewLogger(logger),
	})
	if err != nil {
		return fmt.Errorf("open gorm over pool: %w", err)
	}
	return gormstore.Migrate(db)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return store.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.Pool.QueryRow(ctx,
		`SELECT id, email, password, created_at FROM users WHERE email = $1`, email))
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.scanUser(s.Pool.QueryRow(ctx,
		`SELECT id, email, password, created_at FROM users WHERE id = $1`, id))
}

func (s *Store) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateStudyRecord(ctx context.Context, rec *models.StudyRecord) error {
	day, err := rec.Date.Time()
	if err != nil {
		return err
	}
	return s.Pool.QueryRow(ctx, `
		INSERT INTO study_records (user_id, date, subject, book, minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, rec.UserID, day, rec.Subject, rec.Book, rec.Minutes).Scan(&rec.ID, &rec.CreatedAt)
}

func (s *Store) ListStudyRecords(ctx context.Context, userID uint) ([]models.StudyRecord, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, user_id, date::text, subject, book, minutes, created_at
		FROM study_records
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []models.StudyRecord{}
	for rows.Next() {
		var rec models.StudyRecord
		var day string
		if err := rows.Scan(&rec.ID, &rec.UserID, &day, &rec.Subject, &rec.Book, &rec.Minutes, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Date = models.Date(day)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *Store) CreateReadingRecord(ctx context.Context, rec *models.ReadingRecord) error {
	day, err := rec.Date.Time()
	if err != nil {
		return err
	}
	return s.Pool.QueryRow(ctx, `
		INSERT INTO reading_records (user_id, date, book_title, review, category, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, rec.UserID, day, rec.BookTitle, rec.Review, rec.Category).Scan(&rec.ID, &rec.CreatedAt)
}

func (s *Store) ListReadingRecords(ctx context.Context, userID uint) ([]models.ReadingRecord, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, user_id, date::text, book_title, review, category, created_at
		FROM reading_records
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []models.ReadingRecord{}
	for rows.Next() {
		var rec models.ReadingRecord
		var day string
		if err := rows.Scan(&rec.ID, &rec.UserID, &day, &rec.BookTitle, &rec.Review, &rec.Category, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Date = models.Date(day)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *Store) CreateAwardActivity(ctx context.Context, rec *models.AwardActivity) error {
	day, err := rec.Date.Time()
	if err != nil {
		return err
	}
	return s.Pool.QueryRow(ctx, `
		INSERT INTO awards_activities (user_id, date, title, type, subject, hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`, rec.UserID, day, rec.Title, rec.Type, rec.Subject, rec.Hours).Scan(&rec.ID, &rec.CreatedAt)
}

func (s *Store) ListAwardActivities(ctx context.Context, userID uint) ([]models.AwardActivity, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, user_id, date::text, title, type, subject, hours, created_at
		FROM awards_activities
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []models.AwardActivity{}
	for rows.Next() {
		var rec models.AwardActivity
		var day string
		if err := rows.Scan(&rec.ID, &rec.UserID, &day, &rec.Title, &rec.Type, &rec.Subject, &rec.Hours, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Date = models.Date(day)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.Pool.Close()
	return nil
}
