// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is the top-level membership aggregate for a company.
//
// NOTE:
//   - Resources are embedded in insertion order; index 0 is conventionally
//     the creator/admin entry seeded at creation time.
//   - IsActive is toggled by company-lifecycle events from the broker,
//     independent of membership state. Projects are never hard-deleted.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectName string             `bson:"project_name" json:"projectName"`
	ProjectDesc string             `bson:"project_desc" json:"projectDesc"`
	Technology  string             `bson:"technology" json:"technology"`
	CompanyID   primitive.ObjectID `bson:"company_id" json:"companyId"`
	CompanyName string             `bson:"company_name,omitempty" json:"companyName,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	Resources   []ResourceEntry    `bson:"resources" json:"resources"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Resource returns the entry for userID, or nil if the user has none.
func (p *Project) Resource(userID primitive.ObjectID) *ResourceEntry {
	for i := range p.Resources {
		if p.Resources[i].UserID == userID {
			return &p.Resources[i]
		}
	}
	return nil
}

// ApprovedConsultantCount counts approved entries that fall under the
// plan's consultant quota.
func (p *Project) ApprovedConsultantCount() int {
	n := 0
	for _, r := range p.Resources {
		if r.IsApproved && r.ConsultantClass() {
			n++
		}
	}
	return n
}
