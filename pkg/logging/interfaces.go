package logging

// Logger provides logging functionality with structured fields
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
	WithContext(ctx map[string]interface{}) Logger
}

// LoggerFactory creates loggers for the service's components
type LoggerFactory interface {
	CreateLogger(component string) Logger
	CreateSearchLogger() Logger
	CreateRepositoryLogger(table string) Logger
	CreateMaintenanceLogger(job string) Logger
}

// LogRepository is the interface for persisting log entries
type LogRepository interface {
	SaveLog(entry LogEntry) error
}

// LogEntry represents a log entry for persistence
type LogEntry struct {
	Component string                 `json:"component"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error,omitempty"`
	Fields    map[string]interface{} `json:"fields"`
}
