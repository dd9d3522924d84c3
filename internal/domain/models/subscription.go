// internal/domain/models/subscription.go
package models

// Plan names the subscription oracle reports. Only the ones this service
// branches on are named; anything else is treated as a regular paid plan.
const (
	PlanBasic      = "Basic"
	PlanEnterprise = "Enterprise"
)

// Plan carries the limits a company's subscription grants.
type Plan struct {
	ID              string `json:"_id"`
	PlanName        string `json:"planName"`
	TotalProject    int    `json:"totalProject"`
	TotalConsultant int    `json:"totalConsultant"`
	FreeTrial       bool   `json:"freeTrial"`
}

// Subscription is the active subscription of a company as reported by the
// subscription oracle. A nil *Subscription means the plan has expired.
type Subscription struct {
	ID        string `json:"_id"`
	CompanyID string `json:"companyId"`
	PlanID    Plan   `json:"planId"`
	IsActive  bool   `json:"isActive"`
}
