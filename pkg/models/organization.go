package models

import (
	"time"

	"github.com/blazinaj/roboconfig-sub000/pkg/roles"
)

type Organization struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   int       `json:"owner_id" db:"owner_id"`
	IsSample  bool      `json:"is_sample" db:"is_sample"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type OrganizationMember struct {
	OrganizationID int        `json:"organization_id" db:"organization_id"`
	UserID         int        `json:"user_id" db:"user_id"`
	Username       string     `json:"username" db:"username"`
	Email          string     `json:"email" db:"email"`
	Role           roles.Role `json:"role" db:"role"`
	JoinedAt       time.Time  `json:"joined_at" db:"joined_at"`
}

func (o *Organization) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   o.ID,
		ResourceType: "organization",
	}
}
