// internal/app/membership/engine.go

// Package membership implements the resource state machine across projects
// and subsections: invite, approve, remove, reject, and the company-wide
// fan-outs. Every transition runs through here; HTTP handlers validate and
// translate, the engine decides.
package membership

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ktguru/project-service/internal/app/clients/identity"
	"github.com/ktguru/project-service/internal/app/clients/subscription"
	"github.com/ktguru/project-service/internal/app/events"
	"github.com/ktguru/project-service/internal/app/store/projects"
	"github.com/ktguru/project-service/internal/app/store/subsections"
	"github.com/ktguru/project-service/internal/app/store/usercache"
	"github.com/ktguru/project-service/internal/app/system/apierror"
	"github.com/ktguru/project-service/internal/domain/models"
)

// Engine owns all resource mutation. Stores, external clients, and the
// emitter are injected; the engine holds no connection state of its own.
type Engine struct {
	projects      *projectstore.Store
	subsections   *subsectionstore.Store
	users         *usercachestore.Store
	identity      *identity.Client
	subscriptions *subscription.Client
	emit          *events.Emitter
	log           *zap.Logger
}

func NewEngine(
	projects *projectstore.Store,
	subsections *subsectionstore.Store,
	users *usercachestore.Store,
	identity *identity.Client,
	subscriptions *subscription.Client,
	emit *events.Emitter,
	log *zap.Logger,
) *Engine {
	return &Engine{
		projects:      projects,
		subsections:   subsections,
		users:         users,
		identity:      identity,
		subscriptions: subscriptions,
		emit:          emit,
		log:           log,
	}
}

// requireManager loads the requester's project entry and rejects
// consultants and non-members. Management endpoints call this first.
func (e *Engine) requireManager(ctx context.Context, projectID, userID primitive.ObjectID) error {
	entry, err := e.projects.Role(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if entry == nil || entry.UserRole == models.RoleConsultant {
		return apierror.New(apierror.KindForbidden, "You don't have enough permissions")
	}
	return nil
}

// AddResourceInput is a validated invite intent.
type AddResourceInput struct {
	ProjectID     primitive.ObjectID
	Email         string
	Role          string
	Message       string
	SubSectionIDs []primitive.ObjectID
	AddedBy       primitive.ObjectID
}

// AddResource invites an email to a project. The project entry goes in as
// pending; a projectAdmin invite cascades a pending entry into every
// subsection, and explicit subsection ids get consultant entries. Cascade
// writes are best effort once the project entry is in: a subsection
// failure is logged and the invite stands.
func (e *Engine) AddResource(ctx context.Context, in AddResourceInput) error {
	if err := e.requireManager(ctx, in.ProjectID, in.AddedBy); err != nil {
		return err
	}

	project, err := e.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		return err
	}
	if project == nil {
		return apierror.New(apierror.KindNotFound, "Project not found")
	}

	sub, err := e.subscriptions.ActiveSubscription(ctx, project.CompanyID.Hex())
	if err != nil {
		return err
	}
	if err := CheckPlanActive(sub, "You cannot add resources because your plan has expired."); err != nil {
		return err
	}
	if err := CheckConsultantQuota(sub, project.ApprovedConsultantCount()); err != nil {
		return err
	}

	user, err := e.identity.AddUser(ctx, identity.AddUserInput{
		Email:     in.Email,
		Role:      in.Role,
		CompanyID: project.CompanyID.Hex(),
		ProjectID: in.ProjectID.Hex(),
		AddedBy:   in.AddedBy.Hex(),
	})
	if err != nil {
		return err
	}
	userID, err := primitive.ObjectIDFromHex(user.UserID)
	if err != nil {
		return apierror.Wrap(apierror.KindDependencyUnavailable, "identity service returned a malformed user id", err)
	}

	if _, err := e.projects.UpsertPending(ctx, in.ProjectID, userID, in.Role); err != nil {
		if err == projectstore.ErrAlreadyMember {
			return apierror.New(apierror.KindAlreadyMember, "This user is already a member of the project.")
		}
		return err
	}

	chatIDs := e.inviteCascade(ctx, in, userID)
	chatIDs = append(chatIDs, in.ProjectID.Hex())

	e.emit.UserInvited(ctx, in.ProjectID.Hex(), user.UserID, false, chatIDs)
	e.emit.ConsultantInvited(ctx, events.Invitation{
		To:          in.Email,
		InvitedID:   user.UserID,
		AddedBy:     in.AddedBy,
		URL:         user.URL,
		DeclineURL:  user.DeclineURL,
		ProjectName: project.ProjectName,
		Role:        in.Role,
		Message:     in.Message,
		CompanyName: user.CompanyName,
	})
	return nil
}

// inviteCascade applies the subsection leg of an invite and returns the
// affected subsection ids for the chat event.
func (e *Engine) inviteCascade(ctx context.Context, in AddResourceInput, userID primitive.ObjectID) []string {
	if in.Role == models.RoleProjectAdmin {
		if err := e.subsections.UpsertPendingAll(ctx, in.ProjectID, userID, models.RoleProjectAdmin); err != nil {
			e.log.Error("subsection cascade failed",
				zap.String("project_id", in.ProjectID.Hex()), zap.Error(err))
			return nil
		}
		ids, err := e.subsections.DistinctIDsByProjects(ctx, []primitive.ObjectID{in.ProjectID})
		if err != nil {
			e.log.Error("subsection id collection failed",
				zap.String("project_id", in.ProjectID.Hex()), zap.Error(err))
			return nil
		}
		return hexIDs(ids)
	}

	if len(in.SubSectionIDs) > 0 {
		if err := e.subsections.UpsertPendingMany(ctx, in.SubSectionIDs, userID, models.RoleConsultant); err != nil {
			e.log.Error("subsection invite failed",
				zap.String("project_id", in.ProjectID.Hex()), zap.Error(err))
			return nil
		}
		return hexIDs(in.SubSectionIDs)
	}
	return nil
}

// Resources returns a project's raw resource list for a managing member.
func (e *Engine) Resources(ctx context.Context, projectID, requester primitive.ObjectID) ([]models.ResourceEntry, error) {
	if err := e.requireManager(ctx, projectID, requester); err != nil {
		return nil, err
	}
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apierror.New(apierror.KindNotFound, "Project not found")
	}
	return project.Resources, nil
}

// RemoveFromProject removes a user from a project and clears approval on
// every subsection entry under it. The project entry records who ended the
// membership; subsection statuses stay as they were.
func (e *Engine) RemoveFromProject(ctx context.Context, projectID, userID, requester primitive.ObjectID) (*models.Project, error) {
	if userID == requester {
		return nil, apierror.New(apierror.KindInvalidOperation,
			"You are unable to remove yourself from the project.")
	}

	project, err := e.projects.Unapprove(ctx, projectID, userID, models.StatusRemovedByAdmin)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apierror.New(apierror.KindNotFound, "Project not found")
	}
	if err := e.subsections.UnapproveAllForUser(ctx, projectID, userID); err != nil {
		e.log.Error("subsection removal cascade failed",
			zap.String("project_id", projectID.Hex()),
			zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	return project, nil
}

// RemoveFromSubSection clears approval on one subsection entry only. The
// parent project entry and its status are untouched; the returned view is
// scoped to the subsection's parent project.
func (e *Engine) RemoveFromSubSection(ctx context.Context, subSectionID, userID, requester primitive.ObjectID) (*ResourceView, error) {
	if userID == requester {
		return nil, apierror.New(apierror.KindInvalidOperation,
			"You are unable to remove yourself from the project.")
	}

	sub, err := e.subsections.UnapproveOne(ctx, subSectionID, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apierror.New(apierror.KindNotFound, "Subsection not found")
	}
	return e.FormatResources(ctx, sub.ProjectID, userID)
}

// AddToSubSection pulls an already-approved project member into one
// subsection, active immediately with no pending leg. New entries are
// announced to the chat service.
func (e *Engine) AddToSubSection(ctx context.Context, subSectionID, userID primitive.ObjectID, role string) (*ResourceView, error) {
	sub, created, err := e.subsections.ApproveOrAddOne(ctx, subSectionID, userID, role)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apierror.New(apierror.KindNotFound, "Subsection not found")
	}
	if created {
		e.emit.UserInvited(ctx, userID.Hex(), userID.Hex(), true, []string{subSectionID.Hex()})
	}
	return e.FormatResources(ctx, sub.ProjectID, userID)
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
