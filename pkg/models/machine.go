package models

import (
	"time"

	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
)

type Machine struct {
	ID             int                    `json:"id"`
	OrganizationID int                    `json:"organization_id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Status         metadata.MachineStatus `json:"status"`
	Components     []MachineComponent     `json:"components"`
	Maintenance    *MaintenanceSchedule   `json:"maintenance,omitempty"`
	IsSample       bool                   `json:"is_sample"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// MachineComponent is one catalog component assembled into a machine with
// the number of units it consumes.
type MachineComponent struct {
	ComponentID   int    `json:"component_id" db:"component_id"`
	ComponentName string `json:"component_name" db:"component_name"`
	Quantity      int    `json:"quantity" db:"quantity"`
}

type MaintenanceSchedule struct {
	ID            int               `json:"id" db:"id"`
	MachineID     int               `json:"machine_id" db:"machine_id"`
	Frequency     string            `json:"frequency" db:"frequency"` // weekly, monthly, quarterly, yearly
	LastCompleted *time.Time        `json:"last_completed,omitempty" db:"last_completed"`
	NextDue       *time.Time        `json:"next_due,omitempty" db:"next_due"`
	Tasks         []MaintenanceTask `json:"tasks" db:"-"`
}

type MaintenanceTask struct {
	ID                int    `json:"id" db:"id"`
	ScheduleID        int    `json:"schedule_id" db:"schedule_id"`
	Name              string `json:"name" db:"name"`
	Priority          string `json:"priority" db:"priority"` // low, medium, high
	EstimatedDuration int    `json:"estimated_duration" db:"estimated_duration"`
	Completed         bool   `json:"completed" db:"completed"`
}

type FlatMachineRecord struct {
	ID             int       `db:"machine_id"`
	OrganizationID int       `db:"organization_id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Status         string    `db:"status"`
	IsSample       bool      `db:"is_sample"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (fm *FlatMachineRecord) TransformToMachine() Machine {
	return Machine{
		ID:             fm.ID,
		OrganizationID: fm.OrganizationID,
		Name:           fm.Name,
		Description:    fm.Description,
		Status:         metadata.MachineStatus(fm.Status),
		IsSample:       fm.IsSample,
		CreatedAt:      fm.CreatedAt,
		UpdatedAt:      fm.UpdatedAt,
	}
}

func (m *Machine) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   m.ID,
		ResourceType: "machine",
	}
}
