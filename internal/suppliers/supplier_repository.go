package suppliers

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type SupplierRequest struct {
	OrganizationID int     `json:"organization_id" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	ContactEmail   *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone   *string `json:"contact_phone"`
	Address        *string `json:"address"`
	Rating         *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

type SupplierRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *SupplierRepository {
	return &SupplierRepository{repository: r}
}

func (r *SupplierRepository) GetSupplier(id int) (*models.Supplier, error) {
	var supplier models.Supplier
	query := r.getSupplierQuery().Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&supplier)
	if err != nil {
		return nil, fmt.Errorf("unable to select supplier from database: %s", err.Error())
	}
	if !found {
		return nil, fmt.Errorf("supplier %d not found", id)
	}

	return &supplier, nil
}

func (r *SupplierRepository) GetSuppliersByOrganization(organizationID int) (*[]models.Supplier, error) {
	var suppliersList []models.Supplier
	query := r.getSupplierQuery().
		Where(goqu.Ex{"organization_id": organizationID}).
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&suppliersList); err != nil {
		return nil, fmt.Errorf("unable to select suppliers from database: %s", err.Error())
	}

	return &suppliersList, nil
}

func (r *SupplierRepository) PersistSupplier(req SupplierRequest) (*models.Supplier, error) {
	var supplierID int

	record := goqu.Record{
		"organization_id": req.OrganizationID,
		"name":            req.Name,
	}
	if req.ContactEmail != nil {
		record["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		record["contact_phone"] = *req.ContactPhone
	}
	if req.Address != nil {
		record["address"] = *req.Address
	}
	if req.Rating != nil {
		record["rating"] = *req.Rating
	}

	query := r.repository.GoquDBWrapper.Insert("suppliers").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&supplierID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Duplicate supplier name in organization", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert supplier record: %w", err)
	}

	return r.GetSupplier(supplierID)
}

func (r *SupplierRepository) DeleteSupplier(id int) error {
	query := r.repository.GoquDBWrapper.
		Delete("suppliers").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Supplier has purchase orders", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("supplier %d not found", id)
	}

	return nil
}

func (r *SupplierRepository) getSupplierQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select("id", "organization_id", "name", "contact_email", "contact_phone", "address", "rating", "created_at").
		From("suppliers")
}
