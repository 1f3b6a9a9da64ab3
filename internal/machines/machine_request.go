package machines

type MachineComponentRequest struct {
	ComponentID int `json:"component_id" binding:"required"`
	Quantity    int `json:"quantity" binding:"required,gte=1"`
}

type MaintenanceTaskRequest struct {
	Name              string `json:"name" binding:"required"`
	Priority          string `json:"priority" binding:"omitempty,oneof=low medium high"`
	EstimatedDuration int    `json:"estimated_duration" binding:"gte=0"`
}

type MaintenanceScheduleRequest struct {
	Frequency string                   `json:"frequency" binding:"required,oneof=weekly monthly quarterly yearly"`
	Tasks     []MaintenanceTaskRequest `json:"tasks"`
}

type MachineRequest struct {
	OrganizationID int                         `json:"organization_id" binding:"required"`
	Name           string                      `json:"name" binding:"required"`
	Description    string                      `json:"description"`
	Status         string                      `json:"status"`
	Components     []MachineComponentRequest   `json:"components"`
	Maintenance    *MaintenanceScheduleRequest `json:"maintenance"`
}

type PatchMachineRequest struct {
	ID          int                        `uri:"id" json:"-" binding:"required"`
	Name        *string                    `json:"name"`
	Description *string                    `json:"description"`
	Status      *string                    `json:"status"`
	Components  *[]MachineComponentRequest `json:"components"`
}
