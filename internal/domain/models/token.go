// internal/domain/models/token.go
package models

import "time"

// VerificationToken is an invitation token owned by the identity service.
// It is fetched read-only here, used once, then deleted via the identity
// service after all resulting state transitions succeed.
//
// Exactly one of ProjectID/CompanyID drives the accept/decline scope:
// a project token targets one project (plus its subsections on approval),
// a company token fans out across every project of the company.
type VerificationToken struct {
	ID        string    `json:"_id"`
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ProjectID string    `json:"projectId,omitempty"`
	CompanyID string    `json:"companyId,omitempty"`
	Role      string    `json:"role"`
	AddedBy   string    `json:"addedBy"`
	CreatedAt time.Time `json:"createdAt"`
}
