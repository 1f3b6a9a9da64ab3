package models

import "time"

type Supplier struct {
	ID             int       `json:"id" db:"id"`
	OrganizationID int       `json:"organization_id" db:"organization_id"`
	Name           string    `json:"name" db:"name"`
	ContactEmail   *string   `json:"contact_email,omitempty" db:"contact_email"`
	ContactPhone   *string   `json:"contact_phone,omitempty" db:"contact_phone"`
	Address        *string   `json:"address,omitempty" db:"address"`
	Rating         *int      `json:"rating,omitempty" db:"rating"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

func (s *Supplier) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "supplier",
	}
}
