package machines

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/blazinaj/roboconfig-sub000/internal/inventory"
	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type MachineService struct {
	r  *repository.Repository
	mr *MachineRepository
}

func NewService(r *repository.Repository, mr *MachineRepository) *MachineService {
	return &MachineService{r: r, mr: mr}
}

// AllocateComponents issues the machine's full parts list from inventory.
// Everything happens under one database transaction: an untracked component
// or an insufficient quantity rolls back every issue already posted, so the
// allocation either consumes the whole list or nothing.
func (s *MachineService) AllocateComponents(machineID int) ([]models.InventoryTransaction, error) {
	components, err := s.mr.GetMachineComponents(machineID)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("machine %d has no components to allocate", machineID)
	}

	var transactions []models.InventoryTransaction
	err = repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		resolve := func(componentID int) (int, error) {
			return resolveTrackedItem(tx, componentID)
		}

		transactions, err = issueAllocation(inventory.NewTxLedgerStore(tx), resolve, components, machineID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// issueAllocation posts one issue per component line. The first untracked
// component or rejected decrement aborts with an error so the surrounding
// transaction rolls back every entry already posted.
func issueAllocation(store inventory.LedgerStore, resolveItem func(componentID int) (int, error), components []models.MachineComponent, machineID int) ([]models.InventoryTransaction, error) {
	referenceType := "machine"
	notes := "Allocation to machine"

	var transactions []models.InventoryTransaction
	for _, component := range components {
		itemID, err := resolveItem(component.ComponentID)
		if err != nil {
			return nil, err
		}

		transaction, err := inventory.ApplyToStore(
			store, itemID, metadata.TransactionIssue, component.Quantity,
			&notes, &machineID, &referenceType,
		)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, *transaction)
	}

	return transactions, nil
}

// CompleteTask flips a maintenance task's completion flag. When the last
// open task completes, the schedule's last-completed date is stamped and the
// next due date derived from the frequency.
func (s *MachineService) CompleteTask(machineID, taskID int, completed bool) (*models.MaintenanceSchedule, error) {
	machine, err := s.mr.GetMachine(machineID)
	if err != nil {
		return nil, err
	}
	if machine.Maintenance == nil {
		return nil, fmt.Errorf("machine %d has no maintenance schedule", machineID)
	}
	schedule := machine.Maintenance

	err = repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		result, err := tx.Update("maintenance_tasks").
			Set(goqu.Record{"completed": completed}).
			Where(goqu.Ex{"id": taskID, "schedule_id": schedule.ID}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to update maintenance task: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to retrieve rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("maintenance task %d not found", taskID)
		}

		if !completed || !allOtherTasksComplete(schedule.Tasks, taskID) {
			return nil
		}

		now := time.Now()
		nextDue := NextDue(schedule.Frequency, now)
		if _, err := tx.Update("maintenance_schedules").
			Set(goqu.Record{
				"last_completed": now,
				"next_due":       nextDue,
			}).
			Where(goqu.Ex{"id": schedule.ID}).
			Executor().Exec(); err != nil {
			return fmt.Errorf("failed to roll maintenance schedule: %w", err)
		}

		// Completing a cycle reopens every task for the next one.
		if _, err := tx.Update("maintenance_tasks").
			Set(goqu.Record{"completed": false}).
			Where(goqu.Ex{"schedule_id": schedule.ID}).
			Executor().Exec(); err != nil {
			return fmt.Errorf("failed to reset maintenance tasks: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	machine, err = s.mr.GetMachine(machineID)
	if err != nil {
		return nil, err
	}

	return machine.Maintenance, nil
}

// NextDue derives the next maintenance date from the schedule frequency.
func NextDue(frequency string, from time.Time) time.Time {
	switch frequency {
	case "weekly":
		return from.AddDate(0, 0, 7)
	case "monthly":
		return from.AddDate(0, 1, 0)
	case "quarterly":
		return from.AddDate(0, 3, 0)
	case "yearly":
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

func allOtherTasksComplete(tasks []models.MaintenanceTask, justCompletedID int) bool {
	for _, task := range tasks {
		if task.ID == justCompletedID {
			continue
		}
		if !task.Completed {
			return false
		}
	}
	return true
}

func resolveTrackedItem(tx *goqu.TxDatabase, componentID int) (int, error) {
	var itemID int
	query := tx.Select("id").
		From("inventory_items").
		Where(goqu.Ex{"component_id": componentID})

	found, err := query.Executor().ScanVal(&itemID)
	if err != nil {
		return 0, fmt.Errorf("unable to resolve inventory item for component %d: %w", componentID, err)
	}
	if !found {
		return 0, fmt.Errorf("component %d is not tracked in inventory", componentID)
	}

	return itemID, nil
}
