package repository

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/ykhknw/pocketnavi/pkg/database/models"
	"github.com/ykhknw/pocketnavi/pkg/logging"
)

// LogRepository persists log entries to the query_logs table
type LogRepository struct {
	db *gorm.DB
}

var _ logging.LogRepository = (*LogRepository)(nil)

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// SaveLog stores one log entry. Structured fields are JSON-encoded;
// unencodable fields are dropped rather than failing the save.
func (r *LogRepository) SaveLog(entry logging.LogEntry) error {
	fields := ""
	if entry.Fields != nil {
		if data, err := json.Marshal(entry.Fields); err == nil {
			fields = string(data)
		}
	}

	record := &models.QueryLog{
		Component: entry.Component,
		Level:     entry.Level,
		Message:   entry.Message,
		Error:     entry.Error,
		Fields:    fields,
	}
	return r.db.Create(record).Error
}
