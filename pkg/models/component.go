package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/risk"
)

type Component struct {
	ID             int                    `json:"id"`
	OrganizationID int                    `json:"organization_id"`
	Name           string                 `json:"name"`
	Category       metadata.Category      `json:"category"`
	Type           string                 `json:"type"`
	Description    string                 `json:"description"`
	Specifications map[string]interface{} `json:"specifications"`
	RiskFactors    []RiskFactor           `json:"risk_factors"`
	Compatibility  []int                  `json:"compatibility,omitempty"`
	RiskScore      int                    `json:"risk_score"`
	RiskLevel      risk.Level             `json:"risk_level"`
	IsSample       bool                   `json:"is_sample"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type RiskFactor struct {
	ID                 int     `json:"id" db:"id"`
	ComponentID        int     `json:"component_id" db:"component_id"`
	Name               string  `json:"name" db:"name"`
	Severity           int     `json:"severity" db:"severity"`
	Probability        int     `json:"probability" db:"probability"`
	Description        string  `json:"description" db:"description"`
	MitigationStrategy *string `json:"mitigation_strategy,omitempty" db:"mitigation_strategy"`
}

// DeriveRisk recomputes the risk score and level from the current factors.
// The values are derived on every read, never stored.
func (c *Component) DeriveRisk() {
	ratings := ratingsOf(c.RiskFactors)
	c.RiskScore = risk.Score(ratings)
	c.RiskLevel = risk.Compute(ratings)
}

func ratingsOf(factors []RiskFactor) []risk.Rating {
	ratings := make([]risk.Rating, len(factors))
	for i, f := range factors {
		ratings[i] = risk.Rating{Severity: f.Severity, Probability: f.Probability}
	}
	return ratings
}

type FlatComponentRecord struct {
	ID             int       `db:"component_id"`
	OrganizationID int       `db:"organization_id"`
	Name           string    `db:"name"`
	Category       string    `db:"category"`
	Type           string    `db:"component_type"`
	Description    string    `db:"description"`
	Specifications []byte    `db:"specifications"`
	Compatibility  []byte    `db:"compatibility"`
	IsSample       bool      `db:"is_sample"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (fc *FlatComponentRecord) TransformToComponent() (Component, error) {
	var specifications map[string]interface{}
	if len(fc.Specifications) > 0 {
		if err := json.Unmarshal(fc.Specifications, &specifications); err != nil {
			return Component{}, fmt.Errorf("failed to unmarshal specifications: %w", err)
		}
	}

	var compatibility []int
	if len(fc.Compatibility) > 0 {
		if err := json.Unmarshal(fc.Compatibility, &compatibility); err != nil {
			return Component{}, fmt.Errorf("failed to unmarshal compatibility: %w", err)
		}
	}

	return Component{
		ID:             fc.ID,
		OrganizationID: fc.OrganizationID,
		Name:           fc.Name,
		Category:       metadata.Category(fc.Category),
		Type:           fc.Type,
		Description:    fc.Description,
		Specifications: specifications,
		Compatibility:  compatibility,
		IsSample:       fc.IsSample,
		CreatedAt:      fc.CreatedAt,
		UpdatedAt:      fc.UpdatedAt,
	}, nil
}

func (c *Component) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "component",
	}
}
