package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const DateLayout = "2006-01-02"

// Date is a calendar day formatted as YYYY-MM-DD. Postgres stores it as DATE; SQLite keeps it
// as TEXT because go-sqlite3 converts date-typed columns into timestamps on read.
type Date string

func (Date) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "date"
	}
	return "text"
}

func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

func (d Date) Valid() bool {
	_, err := d.Time()
	return err == nil
}
