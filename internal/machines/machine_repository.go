package machines

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type MachineRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *MachineRepository {
	return &MachineRepository{repository: r}
}

func (r *MachineRepository) GetMachine(id int) (*models.Machine, error) {
	var flat models.FlatMachineRecord
	query := r.getMachineQuery().Where(goqu.Ex{"m.id": id})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select machine from database: %s", err.Error())
	}
	if !found {
		return nil, fmt.Errorf("machine %d not found", id)
	}

	machine := flat.TransformToMachine()

	components, err := r.GetMachineComponents(id)
	if err != nil {
		return nil, err
	}
	machine.Components = components

	maintenance, err := r.getMaintenanceSchedule(id)
	if err != nil {
		return nil, err
	}
	machine.Maintenance = maintenance

	return &machine, nil
}

func (r *MachineRepository) GetMachinesBy(conditions repository.QueryBuilder) (*[]models.Machine, error) {
	aliases := map[string]string{
		"organization_id": "m.organization_id",
		"status":          "m.status",
	}

	query := r.getMachineQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("m.id").Asc())

	var flatMachines []models.FlatMachineRecord
	if err := query.Executor().ScanStructs(&flatMachines); err != nil {
		return nil, fmt.Errorf("unable to select machines from database: %s", err.Error())
	}

	var machines []models.Machine
	for _, flat := range flatMachines {
		machine := flat.TransformToMachine()

		components, err := r.GetMachineComponents(machine.ID)
		if err != nil {
			return nil, err
		}
		machine.Components = components

		machines = append(machines, machine)
	}

	return &machines, nil
}

func (r *MachineRepository) GetMachineComponents(machineID int) ([]models.MachineComponent, error) {
	var components []models.MachineComponent
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("mc.component_id").As("component_id"),
			goqu.I("c.name").As("component_name"),
			goqu.I("mc.quantity").As("quantity"),
		).
		From(goqu.T("machine_components").As("mc")).
		LeftJoin(
			goqu.T("components").As("c"),
			goqu.On(goqu.Ex{"mc.component_id": goqu.I("c.id")}),
		).
		Where(goqu.Ex{"mc.machine_id": machineID}).
		Order(goqu.I("mc.component_id").Asc())

	if err := query.Executor().ScanStructs(&components); err != nil {
		return nil, fmt.Errorf("unable to select machine components: %w", err)
	}

	return components, nil
}

func (r *MachineRepository) PersistMachine(req MachineRequest) (*models.Machine, error) {
	status := metadata.MachineInactive
	if req.Status != "" {
		var err error
		status, err = metadata.NewMachineStatus(req.Status)
		if err != nil {
			return nil, err
		}
	}

	var machineID int
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		query := tx.Insert("machines").
			Rows(goqu.Record{
				"organization_id": req.OrganizationID,
				"name":            req.Name,
				"description":     req.Description,
				"status":          string(status),
			}).
			Returning("id")

		if _, err := query.Executor().ScanVal(&machineID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return custom_error.WrapDBError("Duplicate machine name in organization", string(pqErr.Code))
			}
			return fmt.Errorf("failed to insert machine record: %w", err)
		}

		if err := replaceMachineComponents(tx, machineID, req.Components); err != nil {
			return err
		}

		if req.Maintenance != nil {
			if err := insertMaintenanceSchedule(tx, machineID, *req.Maintenance); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetMachine(machineID)
}

func (r *MachineRepository) UpdateMachine(req *PatchMachineRequest) (*models.Machine, error) {
	if err := r.guardSampleData(req.ID); err != nil {
		return nil, err
	}

	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		updates := goqu.Record{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Status != nil {
			status, err := metadata.NewMachineStatus(*req.Status)
			if err != nil {
				return err
			}
			updates["status"] = string(status)
		}

		if len(updates) > 0 {
			updates["updated_at"] = goqu.L("NOW()")
			result, err := tx.Update("machines").
				Set(updates).
				Where(goqu.Ex{"id": req.ID}).
				Executor().Exec()
			if err != nil {
				return fmt.Errorf("failed to update machine: %w", err)
			}
			rowsAffected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to retrieve rows affected: %w", err)
			}
			if rowsAffected == 0 {
				return fmt.Errorf("machine %d not found", req.ID)
			}
		}

		if req.Components != nil {
			if _, err := tx.Delete("machine_components").
				Where(goqu.Ex{"machine_id": req.ID}).
				Executor().Exec(); err != nil {
				return fmt.Errorf("failed to clear machine components: %w", err)
			}
			if err := replaceMachineComponents(tx, req.ID, *req.Components); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetMachine(req.ID)
}

func (r *MachineRepository) RemoveMachine(id int) error {
	if err := r.guardSampleData(id); err != nil {
		return err
	}

	query := r.repository.GoquDBWrapper.
		Delete("machines").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete machine: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("machine %d not found", id)
	}

	return nil
}

func (r *MachineRepository) getMaintenanceSchedule(machineID int) (*models.MaintenanceSchedule, error) {
	var schedule models.MaintenanceSchedule
	query := r.repository.GoquDBWrapper.
		Select("id", "machine_id", "frequency", "last_completed", "next_due").
		From("maintenance_schedules").
		Where(goqu.Ex{"machine_id": machineID})

	found, err := query.Executor().ScanStruct(&schedule)
	if err != nil {
		return nil, fmt.Errorf("unable to select maintenance schedule: %w", err)
	}
	if !found {
		return nil, nil
	}

	tasksQuery := r.repository.GoquDBWrapper.
		Select("id", "schedule_id", "name", "priority", "estimated_duration", "completed").
		From("maintenance_tasks").
		Where(goqu.Ex{"schedule_id": schedule.ID}).
		Order(goqu.I("id").Asc())

	if err := tasksQuery.Executor().ScanStructs(&schedule.Tasks); err != nil {
		return nil, fmt.Errorf("unable to select maintenance tasks: %w", err)
	}

	return &schedule, nil
}

func (r *MachineRepository) guardSampleData(machineID int) error {
	var isSample bool
	query := r.repository.GoquDBWrapper.
		Select("is_sample").
		From("machines").
		Where(goqu.Ex{"id": machineID})

	found, err := query.Executor().ScanVal(&isSample)
	if err != nil {
		return fmt.Errorf("unable to check sample flag: %w", err)
	}
	if found && isSample {
		return &custom_error.SampleDataError{Resource: "machine"}
	}

	return nil
}

func (r *MachineRepository) getMachineQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("m.id").As("machine_id"),
			goqu.I("m.organization_id").As("organization_id"),
			goqu.I("m.name").As("name"),
			goqu.I("m.description").As("description"),
			goqu.I("m.status").As("status"),
			goqu.I("m.is_sample").As("is_sample"),
			goqu.I("m.created_at").As("created_at"),
			goqu.I("m.updated_at").As("updated_at"),
		).
		From(goqu.T("machines").As("m"))
}

func replaceMachineComponents(tx *goqu.TxDatabase, machineID int, components []MachineComponentRequest) error {
	if len(components) == 0 {
		return nil
	}

	records := make([]interface{}, len(components))
	for i, component := range components {
		records[i] = goqu.Record{
			"machine_id":   machineID,
			"component_id": component.ComponentID,
			"quantity":     component.Quantity,
		}
	}

	if _, err := tx.Insert("machine_components").Rows(records...).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert machine components: %w", err)
	}

	return nil
}

func insertMaintenanceSchedule(tx *goqu.TxDatabase, machineID int, req MaintenanceScheduleRequest) error {
	var scheduleID int
	query := tx.Insert("maintenance_schedules").
		Rows(goqu.Record{
			"machine_id": machineID,
			"frequency":  req.Frequency,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&scheduleID); err != nil {
		return fmt.Errorf("failed to insert maintenance schedule: %w", err)
	}

	if len(req.Tasks) == 0 {
		return nil
	}

	records := make([]interface{}, len(req.Tasks))
	for i, task := range req.Tasks {
		priority := task.Priority
		if priority == "" {
			priority = "medium"
		}
		records[i] = goqu.Record{
			"schedule_id":        scheduleID,
			"name":               task.Name,
			"priority":           priority,
			"estimated_duration": task.EstimatedDuration,
		}
	}

	if _, err := tx.Insert("maintenance_tasks").Rows(records...).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert maintenance tasks: %w", err)
	}

	return nil
}
