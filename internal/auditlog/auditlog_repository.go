package auditlog

import (
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type Repository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{repository: r}
}

func (r *Repository) PersistLog(entry models.AuditLog, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal audit data: %w", err)
	}

	query := r.repository.GoquDBWrapper.Insert("audit_logs").
		Rows(goqu.Record{
			"resource_id":   entry.ResourceID,
			"resource_type": entry.ResourceType,
			"action":        entry.Action,
			"data":          string(raw),
			"user_id":       entry.UserID,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func (r *Repository) GetLogs(resourceType string, resourceID int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	query := r.repository.GoquDBWrapper.
		Select("id", "resource_id", "resource_type", "action", "data", "created_at", "user_id").
		From("audit_logs").
		Where(goqu.Ex{"resource_type": resourceType, "resource_id": resourceID}).
		Order(goqu.I("created_at").Desc())

	if err := query.Executor().ScanStructs(&logs); err != nil {
		return nil, fmt.Errorf("unable to select audit logs: %w", err)
	}

	for i := range logs {
		logs[i].LoadFromDB()
	}

	return logs, nil
}
