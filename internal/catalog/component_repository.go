package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type ComponentRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ComponentRepository {
	return &ComponentRepository{repository: r}
}

func (r *ComponentRepository) GetComponent(id int) (*models.Component, error) {
	var flat models.FlatComponentRecord
	query := r.getComponentQuery().Where(goqu.Ex{"c.id": id})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select component from database: %s", err.Error())
	}
	if !found {
		return nil, fmt.Errorf("component %d not found", id)
	}

	component, err := flat.TransformToComponent()
	if err != nil {
		return nil, err
	}

	factors, err := r.GetRiskFactors(id)
	if err != nil {
		return nil, err
	}
	component.RiskFactors = factors
	component.DeriveRisk()

	return &component, nil
}

func (r *ComponentRepository) GetComponentsBy(conditions repository.QueryBuilder) (*[]models.Component, error) {
	aliases := map[string]string{
		"organization_id": "c.organization_id",
		"category":        "c.category",
	}

	query := r.getComponentQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("c.id").Asc())

	var flatComponents []models.FlatComponentRecord
	if err := query.Executor().ScanStructs(&flatComponents); err != nil {
		return nil, fmt.Errorf("unable to select components from database: %s", err.Error())
	}

	var components []models.Component
	for _, flat := range flatComponents {
		component, err := flat.TransformToComponent()
		if err != nil {
			return nil, err
		}

		factors, err := r.GetRiskFactors(component.ID)
		if err != nil {
			return nil, err
		}
		component.RiskFactors = factors
		component.DeriveRisk()

		components = append(components, component)
	}

	return &components, nil
}

func (r *ComponentRepository) GetComponentNames() ([]string, error) {
	var names []string
	query := r.repository.GoquDBWrapper.
		Select("name").
		From("components").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanVals(&names); err != nil {
		return nil, fmt.Errorf("unable to select component names: %w", err)
	}

	return names, nil
}

func (r *ComponentRepository) PersistComponent(req ComponentRequest) (*models.Component, error) {
	specifications, err := json.Marshal(req.Specifications)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal specifications: %w", err)
	}
	compatibility, err := json.Marshal(req.Compatibility)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal compatibility: %w", err)
	}

	var componentID int
	err = repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		query := tx.Insert("components").
			Rows(goqu.Record{
				"organization_id": req.OrganizationID,
				"name":            req.Name,
				"category":        req.Category,
				"component_type":  req.Type,
				"description":     req.Description,
				"specifications":  string(specifications),
				"compatibility":   string(compatibility),
			}).
			Returning("id")

		if _, err := query.Executor().ScanVal(&componentID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return custom_error.WrapDBError("Duplicate component name in organization", string(pqErr.Code))
			}
			return fmt.Errorf("failed to insert component record: %w", err)
		}

		return insertRiskFactors(tx, componentID, req.RiskFactors)
	})
	if err != nil {
		return nil, err
	}

	return r.GetComponent(componentID)
}

func (r *ComponentRepository) UpdateComponent(req *PatchComponentRequest) (*models.Component, error) {
	if err := r.guardSampleData(req.ID); err != nil {
		return nil, err
	}

	updates, err := buildComponentUpdateFields(req)
	if err != nil {
		return nil, err
	}

	query := r.repository.GoquDBWrapper.
		Update("components").
		Set(updates).
		Where(goqu.Ex{"id": req.ID})

	result, err := query.Executor().Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update component: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("no rows updated")
	}

	return r.GetComponent(req.ID)
}

func (r *ComponentRepository) RemoveComponent(id int) error {
	if err := r.guardSampleData(id); err != nil {
		return err
	}

	query := r.repository.GoquDBWrapper.
		Delete("components").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete component: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("component %d not found", id)
	}

	return nil
}

func (r *ComponentRepository) GetRiskFactors(componentID int) ([]models.RiskFactor, error) {
	var factors []models.RiskFactor
	query := r.repository.GoquDBWrapper.
		Select("id", "component_id", "name", "severity", "probability", "description", "mitigation_strategy").
		From("risk_factors").
		Where(goqu.Ex{"component_id": componentID}).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&factors); err != nil {
		return nil, fmt.Errorf("unable to select risk factors: %w", err)
	}

	return factors, nil
}

func (r *ComponentRepository) AddRiskFactor(componentID int, req RiskFactorRequest) (*models.RiskFactor, error) {
	if err := r.guardSampleData(componentID); err != nil {
		return nil, err
	}

	factor := models.RiskFactor{
		ComponentID:        componentID,
		Name:               req.Name,
		Severity:           req.Severity,
		Probability:        req.Probability,
		Description:        req.Description,
		MitigationStrategy: req.MitigationStrategy,
	}

	query := r.repository.GoquDBWrapper.Insert("risk_factors").
		Rows(riskFactorRecord(componentID, req)).
		Returning("id")

	if _, err := query.Executor().ScanVal(&factor.ID); err != nil {
		return nil, fmt.Errorf("failed to insert risk factor: %w", err)
	}

	return &factor, nil
}

// ReplaceRiskFactor is a full-row replacement; risk factors have no partial
// update path.
func (r *ComponentRepository) ReplaceRiskFactor(componentID, factorID int, req RiskFactorRequest) (*models.RiskFactor, error) {
	if err := r.guardSampleData(componentID); err != nil {
		return nil, err
	}

	query := r.repository.GoquDBWrapper.
		Update("risk_factors").
		Set(riskFactorRecord(componentID, req)).
		Where(goqu.Ex{"id": factorID, "component_id": componentID})

	result, err := query.Executor().Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to replace risk factor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("risk factor %d not found for component %d", factorID, componentID)
	}

	return &models.RiskFactor{
		ID:                 factorID,
		ComponentID:        componentID,
		Name:               req.Name,
		Severity:           req.Severity,
		Probability:        req.Probability,
		Description:        req.Description,
		MitigationStrategy: req.MitigationStrategy,
	}, nil
}

func (r *ComponentRepository) DeleteRiskFactor(componentID, factorID int) error {
	if err := r.guardSampleData(componentID); err != nil {
		return err
	}

	query := r.repository.GoquDBWrapper.
		Delete("risk_factors").
		Where(goqu.Ex{"id": factorID, "component_id": componentID})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete risk factor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("risk factor %d not found for component %d", factorID, componentID)
	}

	return nil
}

func (r *ComponentRepository) guardSampleData(componentID int) error {
	var isSample bool
	query := r.repository.GoquDBWrapper.
		Select("is_sample").
		From("components").
		Where(goqu.Ex{"id": componentID})

	found, err := query.Executor().ScanVal(&isSample)
	if err != nil {
		return fmt.Errorf("unable to check sample flag: %w", err)
	}
	if found && isSample {
		return &custom_error.SampleDataError{Resource: "component"}
	}

	return nil
}

func (r *ComponentRepository) getComponentQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("c.id").As("component_id"),
			goqu.I("c.organization_id").As("organization_id"),
			goqu.I("c.name").As("name"),
			goqu.I("c.category").As("category"),
			goqu.I("c.component_type").As("component_type"),
			goqu.I("c.description").As("description"),
			goqu.I("c.specifications").As("specifications"),
			goqu.I("c.compatibility").As("compatibility"),
			goqu.I("c.is_sample").As("is_sample"),
			goqu.I("c.created_at").As("created_at"),
			goqu.I("c.updated_at").As("updated_at"),
		).
		From(goqu.T("components").As("c"))
}

func insertRiskFactors(tx *goqu.TxDatabase, componentID int, factors []RiskFactorRequest) error {
	if len(factors) == 0 {
		return nil
	}

	records := make([]interface{}, len(factors))
	for i, f := range factors {
		records[i] = riskFactorRecord(componentID, f)
	}

	query := tx.Insert("risk_factors").Rows(records...)
	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert risk factors: %w", err)
	}

	return nil
}

func riskFactorRecord(componentID int, req RiskFactorRequest) goqu.Record {
	return goqu.Record{
		"component_id":        componentID,
		"name":                req.Name,
		"severity":            req.Severity,
		"probability":         req.Probability,
		"description":         req.Description,
		"mitigation_strategy": req.MitigationStrategy,
	}
}

func buildComponentUpdateFields(req *PatchComponentRequest) (goqu.Record, error) {
	updates := goqu.Record{}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Type != nil {
		updates["component_type"] = *req.Type
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Specifications != nil {
		raw, err := json.Marshal(*req.Specifications)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal specifications: %w", err)
		}
		updates["specifications"] = string(raw)
	}
	if req.Compatibility != nil {
		raw, err := json.Marshal(*req.Compatibility)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal compatibility: %w", err)
		}
		updates["compatibility"] = string(raw)
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	updates["updated_at"] = goqu.L("NOW()")

	return updates, nil
}
