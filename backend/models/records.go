package models

import "time"

// Activity kinds accepted for AwardActivity.Type.
const (
	TypeAward    = "award"
	TypeActivity = "activity"
)

type StudyRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Date      Date      `gorm:"not null" json:"date"`
	Subject   string    `gorm:"size:100;not null" json:"subject"`
	Book      *string   `gorm:"size:255" json:"book"`
	Minutes   int       `gorm:"not null" json:"minutes"`
	CreatedAt time.Time `json:"created_at"`
}

type ReadingRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Date      Date      `gorm:"not null" json:"date"`
	BookTitle string    `gorm:"size:255;not null" json:"book_title"`
	Review    *string   `gorm:"type:text" json:"review"`
	Category  *string   `gorm:"size:100" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// AwardActivity is either an award or an extracurricular activity; Hours only applies to activities.
type AwardActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Date      Date      `gorm:"not null" json:"date"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Subject   *string   `gorm:"size:100" json:"subject"`
	Hours     *int      `json:"hours"`
	CreatedAt time.Time `json:"created_at"`
}

func (AwardActivity) TableName() string {
	return "awards_activities"
}

// AllModels lists every table in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&StudyRecord{},
		&ReadingRecord{},
		&AwardActivity{},
	}
}
