// internal/domain/models/subsection.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubSection is a nested scope under a project.
//
// Resources are seeded at creation from the parent project's admin-tier
// entries and maintained independently afterward; only explicit cascade
// operations touch them again. ProjectName must be unique (case-insensitive)
// among subsections of the same project.
type SubSection struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectName   string             `bson:"project_name" json:"projectName"`
	ProjectNameCI string             `bson:"project_name_ci" json:"-"`
	ProjectDesc   string             `bson:"project_desc" json:"projectDesc"`
	Technology    string             `bson:"technology" json:"technology"`
	ProjectID     primitive.ObjectID `bson:"project_id" json:"projectId"`
	CreatedBy     primitive.ObjectID `bson:"created_by" json:"createdBy"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	Resources     []ResourceEntry    `bson:"resources" json:"resources"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Resource returns the entry for userID, or nil if the user has none.
func (s *SubSection) Resource(userID primitive.ObjectID) *ResourceEntry {
	for i := range s.Resources {
		if s.Resources[i].UserID == userID {
			return &s.Resources[i]
		}
	}
	return nil
}
