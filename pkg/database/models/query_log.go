package models

import "time"

// QueryLog persists warnings and errors raised on the query path, with the
// predicate context the logger attached.
type QueryLog struct {
	ID        uint      `gorm:"primaryKey"`
	Component string    `gorm:"index;not null"`
	Level     string    `gorm:"index;not null"`
	Message   string    `gorm:"type:text;not null"`
	Error     string    `gorm:"type:text"`
	Fields    string    `gorm:"type:text"` // JSON-encoded structured fields
	CreatedAt time.Time `gorm:"index;autoCreateTime"`
}

// TableName specifies the table name for QueryLog
func (QueryLog) TableName() string {
	return "query_logs"
}
