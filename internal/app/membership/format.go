// internal/app/membership/format.go

package membership

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/domain/models"
)

// SubSectionMembership is one subsection the user holds an approved entry on.
type SubSectionMembership struct {
	ID          primitive.ObjectID      `json:"_id"`
	ProjectName string                  `json:"projectName"`
	UserID      primitive.ObjectID      `json:"userId"`
	UserRole    string                  `json:"userRole"`
	IsApproved  bool                    `json:"isApproved"`
	Status      models.MembershipStatus `json:"status"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// SubSectionRef names a subsection the user could still be added to.
type SubSectionRef struct {
	ID          primitive.ObjectID `json:"id"`
	ProjectName string             `json:"projectName"`
}

// ResourceView is a user's consolidated standing on one project: their
// project entry, the subsections they are approved on, and the subsections
// they are absent from or pending on.
type ResourceView struct {
	ID                     primitive.ObjectID     `json:"_id"`
	ProjectName            string                 `json:"projectName"`
	Project                *models.ResourceEntry  `json:"matchedResourcesProject"`
	MatchingSubSections    []SubSectionMembership `json:"matchingSubSection"`
	NotMatchingSubSections []SubSectionRef        `json:"notMatchingSubSection"`
}

// FormatResources builds the ResourceView for a user on a project. A nil
// view with nil error means the user has no entry on the project at all;
// callers render that as an empty result, not an error.
func (e *Engine) FormatResources(ctx context.Context, projectID, userID primitive.ObjectID) (*ResourceView, error) {
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apierror.New(apierror.KindNotFound, "Project not found")
	}

	entry := project.Resource(userID)
	if entry == nil {
		return nil, nil
	}

	approved, err := e.subsections.ListForUserApproved(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	matching := make([]SubSectionMembership, 0, len(approved))
	for i := range approved {
		sub := &approved[i]
		if r := sub.Resource(userID); r != nil {
			matching = append(matching, SubSectionMembership{
				ID:          sub.ID,
				ProjectName: sub.ProjectName,
				UserID:      r.UserID,
				UserRole:    r.UserRole,
				IsApproved:  r.IsApproved,
				Status:      r.Status,
				CreatedAt:   r.CreatedAt,
			})
		}
	}

	rest, err := e.subsections.ListNotMatching(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	notMatching := make([]SubSectionRef, 0, len(rest))
	for i := range rest {
		notMatching = append(notMatching, SubSectionRef{ID: rest[i].ID, ProjectName: rest[i].ProjectName})
	}

	return &ResourceView{
		ID:                     project.ID,
		ProjectName:            project.ProjectName,
		Project:                entry,
		MatchingSubSections:    matching,
		NotMatchingSubSections: notMatching,
	}, nil
}

// Model type names accepted by ApprovedResourcesForModel.
const (
	ModelProject    = "Project"
	ModelSubSection = "Subsection"
)

// ApprovedView is the approved slice of one aggregate's roster.
type ApprovedView struct {
	ProjectName string                 `json:"projectName"`
	Data        []models.ResourceEntry `json:"data"`
}

// ApprovedResourcesForModel returns the approved entries of a project or a
// subsection, selected by modelType.
func (e *Engine) ApprovedResourcesForModel(ctx context.Context, id primitive.ObjectID, modelType string) (*ApprovedView, error) {
	var (
		name    string
		entries []models.ResourceEntry
		err     error
	)
	switch modelType {
	case ModelProject:
		name, entries, err = e.projects.ApprovedResources(ctx, id)
	case ModelSubSection:
		name, entries, err = e.subsections.ApprovedResources(ctx, id)
	default:
		return nil, apierror.Validation(map[string]string{"model_type": "must be Project or Subsection"})
	}
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.ResourceEntry{}
	}
	return &ApprovedView{ProjectName: name, Data: entries}, nil
}
