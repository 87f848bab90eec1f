package services

import (
	"context"
	"strings"

	"github.com/aebonlee/stepup-cloud/backend/models"
	"github.com/aebonlee/stepup-cloud/backend/store"
)

// StudyInput is the body of POST /api/study-records.
type StudyInput struct {
	Date    string  `json:"date"`
	Subject string  `json:"subject"`
	Book    *string `json:"book"`
	Minutes *int    `json:"minutes"`
}

// ReadingInput is the body of POST /api/reading-records.
type ReadingInput struct {
	Date      string  `json:"date"`
	BookTitle string  `json:"book_title"`
	Review    *string `json:"review"`
	Category  *string `json:"category"`
}

// AwardActivityInput is the body of POST /api/awards-activities.
type AwardActivityInput struct {
	Date    string  `json:"date"`
	Title   string  `json:"title"`
	Type    string  `json:"type"`
	Subject *string `json:"subject"`
	Hours   *int    `json:"hours"`
}

// activityTypes also accepts the Korean labels shown by the client.
var activityTypes = map[string]string{
	models.TypeAward:    models.TypeAward,
	models.TypeActivity: models.TypeActivity,
	"입상":                models.TypeAward,
	"활동":                models.TypeActivity,
}

type RecordService struct {
	Records store.RecordStore
}

func NewRecordService(records store.RecordStore) *RecordService {
	return &RecordService{Records: records}
}

func (s *RecordService) CreateStudy(ctx context.Context, userID uint, in StudyInput) (*models.StudyRecord, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		return nil, invalid("subject", "subject is required")
	}
	if in.Minutes == nil {
		return nil, invalid("minutes", "minutes is required")
	}
	if *in.Minutes <= 0 {
		return nil, invalid("minutes", "minutes must be a positive integer")
	}

	rec := &models.StudyRecord{
		UserID:  userID,
		Date:    date,
		Subject: subject,
		Book:    optional(in.Book),
		Minutes: *in.Minutes,
	}
	if err := s.Records.CreateStudyRecord(ctx, rec); err != nil {
		return nil, &PersistenceError{Op: "create study record", Err: err}
	}
	return rec, nil
}

func (s *RecordService) ListStudy(ctx context.Context, userID uint) ([]models.StudyRecord, error) {
	recs, err := s.Records.ListStudyRecords(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list study records", Err: err}
	}
	return recs, nil
}

func (s *RecordService) CreateReading(ctx context.Context, userID uint, in ReadingInput) (*models.ReadingRecord, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.BookTitle)
	if title == "" {
		return nil, invalid("book_title", "book_title is required")
	}

	rec := &models.ReadingRecord{
		UserID:    userID,
		Date:      date,
		BookTitle: title,
		Review:    optional(in.Review),
		Category:  optional(in.Category),
	}
	if err := s.Records.CreateReadingRecord(ctx, rec); err != nil {
		return nil, &PersistenceError{Op: "create reading record", Err: err}
	}
	return rec, nil
}

func (s *RecordService) ListReading(ctx context.Context, userID uint) ([]models.ReadingRecord, error) {
	recs, err := s.Records.ListReadingRecords(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list reading records", Err: err}
	}
	return recs, nil
}

// CreateAwardActivity stores an award or an activity. Hours are kept for activities only.
func (s *RecordService) CreateAwardActivity(ctx context.Context, userID uint, in AwardActivityInput) (*models.AwardActivity, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "title is required")
	}
	kind, ok := activityTypes[strings.ToLower(strings.TrimSpace(in.Type))]
	if !ok {
		return nil, invalid("type", "type must be award or activity")
	}

	rec := &models.AwardActivity{
		UserID:  userID,
		Date:    date,
		Title:   title,
		Type:    kind,
		Subject: optional(in.Subject),
	}
	if kind == models.TypeActivity && in.Hours != nil {
		if *in.Hours <= 0 {
			return nil, invalid("hours", "hours must be a positive integer")
		}
		hours := *in.Hours
		rec.Hours = &hours
	}

	if err := s.Records.CreateAwardActivity(ctx, rec); err != nil {
		return nil, &PersistenceError{Op: "create award or activity", Err: err}
	}
	return rec, nil
}

func (s *RecordService) ListAwardActivities(ctx context.Context, userID uint) ([]models.AwardActivity, error) {
	recs, err := s.Records.ListAwardActivities(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list awards and activities", Err: err}
	}
	return recs, nil
}

func parseDate(raw string) (models.Date, error) {
	date := models.Date(strings.TrimSpace(raw))
	if date == "" {
		return "", invalid("date", "date is required")
	}
	if !date.Valid() {
		return "", invalid("date", "date must be in YYYY-MM-DD format")
	}
	return date, nil
}

// optional trims s and maps blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
