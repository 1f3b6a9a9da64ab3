package organizations

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
)

type OrganizationRequest struct {
	Name    string `json:"name" binding:"required"`
	OwnerID int    `json:"owner_id" binding:"required"`
}

type MemberRequest struct {
	UserID int    `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type OrganizationRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *OrganizationRepository {
	return &OrganizationRepository{repository: r}
}

func (r *OrganizationRepository) GetOrganization(id int) (*models.Organization, error) {
	var organization models.Organization
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "owner_id", "is_sample", "created_at").
		From("organizations").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&organization)
	if err != nil {
		return nil, fmt.Errorf("unable to select organization from database: %s", err.Error())
	}
	if !found {
		return nil, fmt.Errorf("organization %d not found", id)
	}

	return &organization, nil
}

func (r *OrganizationRepository) GetOrganizationsByUser(userID int) (*[]models.Organization, error) {
	var organizations []models.Organization
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("o.id").As("id"),
			goqu.I("o.name").As("name"),
			goqu.I("o.owner_id").As("owner_id"),
			goqu.I("o.is_sample").As("is_sample"),
			goqu.I("o.created_at").As("created_at"),
		).
		From(goqu.T("organizations").As("o")).
		InnerJoin(
			goqu.T("organization_members").As("om"),
			goqu.On(goqu.Ex{"o.id": goqu.I("om.organization_id")}),
		).
		Where(goqu.Ex{"om.user_id": userID}).
		Order(goqu.I("o.name").Asc())

	if err := query.Executor().ScanStructs(&organizations); err != nil {
		return nil, fmt.Errorf("unable to select organizations from database: %s", err.Error())
	}

	return &organizations, nil
}

// PersistOrganization creates the organization and enrolls the owner as
// admin in one transaction.
func (r *OrganizationRepository) PersistOrganization(req OrganizationRequest) (*models.Organization, error) {
	var organizationID int
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		query := tx.Insert("organizations").
			Rows(goqu.Record{
				"name":     req.Name,
				"owner_id": req.OwnerID,
			}).
			Returning("id")

		if _, err := query.Executor().ScanVal(&organizationID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return custom_error.WrapDBError("Duplicate organization name", string(pqErr.Code))
			}
			return fmt.Errorf("failed to insert organization record: %w", err)
		}

		if _, err := tx.Insert("organization_members").
			Rows(goqu.Record{
				"organization_id": organizationID,
				"user_id":         req.OwnerID,
				"role":            string(roles.Admin),
			}).
			Executor().Exec(); err != nil {
			return fmt.Errorf("failed to enroll organization owner: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetOrganization(organizationID)
}

func (r *OrganizationRepository) GetMembers(organizationID int) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("om.organization_id").As("organization_id"),
			goqu.I("om.user_id").As("user_id"),
			goqu.I("u.username").As("username"),
			goqu.I("u.email").As("email"),
			goqu.I("om.role").As("role"),
			goqu.I("om.joined_at").As("joined_at"),
		).
		From(goqu.T("organization_members").As("om")).
		InnerJoin(
			goqu.T("users").As("u"),
			goqu.On(goqu.Ex{"om.user_id": goqu.I("u.id")}),
		).
		Where(goqu.Ex{"om.organization_id": organizationID}).
		Order(goqu.I("u.username").Asc())

	if err := query.Executor().ScanStructs(&members); err != nil {
		return nil, fmt.Errorf("unable to select organization members: %w", err)
	}

	return members, nil
}

func (r *OrganizationRepository) AddMember(organizationID int, req MemberRequest) error {
	role := roles.Role(req.Role)
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", req.Role)
	}

	query := r.repository.GoquDBWrapper.Insert("organization_members").
		Rows(goqu.Record{
			"organization_id": organizationID,
			"user_id":         req.UserID,
			"role":            string(role),
		})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("User is already a member", string(pqErr.Code))
		}
		return fmt.Errorf("failed to add organization member: %w", err)
	}

	return nil
}

func (r *OrganizationRepository) RemoveMember(organizationID, userID int) error {
	query := r.repository.GoquDBWrapper.
		Delete("organization_members").
		Where(goqu.Ex{"organization_id": organizationID, "user_id": userID})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to remove organization member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("membership not found")
	}

	return nil
}

// HasRole reports whether the user holds at least the required role in the
// organization.
func (r *OrganizationRepository) HasRole(organizationID, userID int, required roles.Role) (bool, error) {
	var roleString string
	query := r.repository.GoquDBWrapper.
		Select("role").
		From("organization_members").
		Where(goqu.Ex{"organization_id": organizationID, "user_id": userID})

	found, err := query.Executor().ScanVal(&roleString)
	if err != nil {
		return false, fmt.Errorf("unable to check organization role: %w", err)
	}
	if !found {
		return false, nil
	}

	return roles.Role(roleString).HasPermission(required), nil
}
