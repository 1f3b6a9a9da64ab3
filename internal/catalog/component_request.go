package catalog

type RiskFactorRequest struct {
	Name               string  `json:"name" binding:"required"`
	Severity           int     `json:"severity" binding:"required,min=1,max=5"`
	Probability        int     `json:"probability" binding:"required,min=1,max=5"`
	Description        string  `json:"description"`
	MitigationStrategy *string `json:"mitigation_strategy"`
}

type ComponentRequest struct {
	OrganizationID int                    `json:"organization_id" binding:"required"`
	Name           string                 `json:"name" binding:"required"`
	Category       string                 `json:"category" binding:"required"`
	Type           string                 `json:"type" binding:"required"`
	Description    string                 `json:"description"`
	Specifications map[string]interface{} `json:"specifications"`
	Compatibility  []int                  `json:"compatibility"`
	RiskFactors    []RiskFactorRequest    `json:"risk_factors"`
}

type PatchComponentRequest struct {
	ID             int                     `uri:"id" json:"-" binding:"required"`
	Name           *string                 `json:"name"`
	Category       *string                 `json:"category"`
	Type           *string                 `json:"type"`
	Description    *string                 `json:"description"`
	Specifications *map[string]interface{} `json:"specifications"`
	Compatibility  *[]int                  `json:"compatibility"`
}
