package logging

import "sync"

// DefaultLoggerFactory implements LoggerFactory using zap loggers
type DefaultLoggerFactory struct {
	loggers map[string]Logger
	mu      sync.RWMutex
}

// NewLoggerFactory creates a new logger factory
func NewLoggerFactory() LoggerFactory {
	return &DefaultLoggerFactory{
		loggers: make(map[string]Logger),
	}
}

// CreateLogger creates a basic logger for the specified component
func (f *DefaultLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := NewZapLogger(component)
	f.loggers[component] = logger
	return logger
}

// CreateSearchLogger creates a logger for the search engine
func (f *DefaultLoggerFactory) CreateSearchLogger() Logger {
	return f.CreateLogger("search")
}

// CreateRepositoryLogger creates a logger scoped to one storage table
func (f *DefaultLoggerFactory) CreateRepositoryLogger(table string) Logger {
	return f.CreateLogger("repository").WithContext(map[string]interface{}{
		"table": table,
	})
}

// CreateMaintenanceLogger creates a logger for maintenance jobs
func (f *DefaultLoggerFactory) CreateMaintenanceLogger(job string) Logger {
	return f.CreateLogger("maintenance").WithContext(map[string]interface{}{
		"job": job,
	})
}

// DatabaseLoggerFactory extends the default factory with database persistence
type DatabaseLoggerFactory struct {
	*DefaultLoggerFactory
	repository LogRepository
}

// NewDatabaseLoggerFactory creates a logger factory with database persistence
func NewDatabaseLoggerFactory(repository LogRepository) LoggerFactory {
	return &DatabaseLoggerFactory{
		DefaultLoggerFactory: &DefaultLoggerFactory{
			loggers: make(map[string]Logger),
		},
		repository: repository,
	}
}

// CreateLogger creates a database-backed logger for the specified component
func (f *DatabaseLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := NewDatabaseLogger(NewZapLogger(component), component, f.repository)
	f.loggers[component] = logger
	return logger
}

// CreateSearchLogger creates a database-backed logger for the search engine
func (f *DatabaseLoggerFactory) CreateSearchLogger() Logger {
	return f.CreateLogger("search")
}

// CreateRepositoryLogger creates a database-backed logger scoped to one table
func (f *DatabaseLoggerFactory) CreateRepositoryLogger(table string) Logger {
	return f.CreateLogger("repository").WithContext(map[string]interface{}{
		"table": table,
	})
}

// CreateMaintenanceLogger creates a database-backed logger for maintenance jobs
func (f *DatabaseLoggerFactory) CreateMaintenanceLogger(job string) Logger {
	return f.CreateLogger("maintenance").WithContext(map[string]interface{}{
		"job": job,
	})
}
