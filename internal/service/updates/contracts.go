package updates

import (
	"context"
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

// AuditRepository интерфейс журнала изменений
type AuditRepository interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider системное время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
