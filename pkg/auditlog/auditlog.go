package auditlog

import (
	"go.uber.org/zap"

	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

// LogStore persists audit entries; implemented by internal/auditlog.
type LogStore interface {
	PersistLog(entry models.AuditLog, data interface{}) error
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

type Auditlog struct {
	store  LogStore
	logger *zap.Logger
}

func NewAuditLog(store LogStore, logger *zap.Logger) *Auditlog {
	return &Auditlog{store: store, logger: logger}
}

// Log records an action against an auditable resource. Called from handlers
// in a goroutine; failures are logged, never surfaced to the request.
func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	entry := item.CreateLogView()
	entry.Action = action

	if err := a.store.PersistLog(entry, data); err != nil {
		a.logger.Warn("unable to create audit log entry",
			zap.Int("resource_id", entry.ResourceID),
			zap.String("resource_type", entry.ResourceType),
			zap.Error(err),
		)
		return
	}

	a.logger.Debug("created audit log entry",
		zap.Int("resource_id", entry.ResourceID),
		zap.String("resource_type", entry.ResourceType),
	)
}
