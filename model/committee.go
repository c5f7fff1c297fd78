package model

import "time"

// CommitteeCategory is one of the fixed categories a committee belongs to.
type CommitteeCategory string

const (
	CategoryTechnical  CommitteeCategory = "Technical"
	CategoryMarketing  CommitteeCategory = "Marketing"
	CategoryGovernance CommitteeCategory = "Governance"
	CategoryLegal      CommitteeCategory = "Legal"
	CategoryFinance    CommitteeCategory = "Finance"
	CategoryOutreach   CommitteeCategory = "Outreach"
)

// Categories lists every selectable committee category, in display order.
var Categories = []CommitteeCategory{
	CategoryTechnical,
	CategoryMarketing,
	CategoryGovernance,
	CategoryLegal,
	CategoryFinance,
	CategoryOutreach,
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c CommitteeCategory) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Committee struct {
	ID           string            `json:"id"`
	ProjectID    string            `json:"projectID"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Category     CommitteeCategory `json:"category"`
	EnableVoting bool              `json:"enableVoting"`
	Public       bool              `json:"public"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
